package domain

import (
	"fmt"

	appErrors "notekeeper/internal/errors"
)

func invalidNoteError(reason string) error {
	return appErrors.New(appErrors.CodeInvalidNote, reason, nil)
}

func invalidTagError(reason string) error {
	return appErrors.New(appErrors.CodeInvalidTag, reason, nil)
}

// NotFoundError reports a missing note or tag by kind and id.
func NotFoundError(kind, id string) error {
	return appErrors.New(appErrors.CodeNotFound, fmt.Sprintf("%s %s not found", kind, id), nil)
}

// DuplicateTagError reports a tag label already used by another tag.
func DuplicateTagError(label string) error {
	return appErrors.New(appErrors.CodeInvalidTag, fmt.Sprintf("tag %q already exists", label), nil)
}
