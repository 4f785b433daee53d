// Package domain holds the note and tag types shared by storage and the UI.
package domain

import (
	"strings"
	"time"
)

// Tag is a user-defined label that can be attached to many notes.
type Tag struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`
}

// Validate ensures the tag can be persisted.
func (t Tag) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return invalidTagError("tag id is required")
	}
	if strings.TrimSpace(t.Label) == "" {
		return invalidTagError("tag label is required")
	}
	return nil
}

// NoteData is the user-editable part of a note.
type NoteData struct {
	Title    string
	Markdown string
	Tags     []Tag
}

// Validate checks the rules a note must satisfy before it is saved.
func (d NoteData) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return invalidNoteError("note title is required")
	}
	for _, tag := range d.Tags {
		if err := tag.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// TagIDs returns the ids of the attached tags, de-duplicated in order.
func (d NoteData) TagIDs() []string {
	seen := make(map[string]bool, len(d.Tags))
	ids := make([]string, 0, len(d.Tags))
	for _, tag := range d.Tags {
		if seen[tag.ID] {
			continue
		}
		seen[tag.ID] = true
		ids = append(ids, tag.ID)
	}
	return ids
}

// RawNote is the persisted form of a note; tags are referenced by id.
type RawNote struct {
	ID        string    `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	Markdown  string    `json:"markdown" yaml:"markdown"`
	TagIDs    []string  `json:"tagIds" yaml:"tagIds"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// Note is a RawNote with its tag references resolved.
type Note struct {
	ID        string    `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	Markdown  string    `json:"markdown" yaml:"markdown"`
	Tags      []Tag     `json:"tags" yaml:"tags"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// Resolve attaches tags to the raw note. Tag ids that no longer exist are
// dropped from the result.
func (r RawNote) Resolve(tagsByID map[string]Tag) Note {
	tags := make([]Tag, 0, len(r.TagIDs))
	for _, id := range r.TagIDs {
		if tag, ok := tagsByID[id]; ok {
			tags = append(tags, tag)
		}
	}
	return Note{
		ID:        r.ID,
		Title:     r.Title,
		Markdown:  r.Markdown,
		Tags:      tags,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// HasTag reports whether the note carries the tag id.
func (n Note) HasTag(id string) bool {
	for _, tag := range n.Tags {
		if tag.ID == id {
			return true
		}
	}
	return false
}

// Filter selects notes by title substring and required tags.
type Filter struct {
	Title  string
	TagIDs []string
}

// IsEmpty reports whether the filter accepts every note.
func (f Filter) IsEmpty() bool {
	return strings.TrimSpace(f.Title) == "" && len(f.TagIDs) == 0
}

// Matches reports whether the note's title contains the filter title
// (case-insensitive) and the note carries every filter tag.
func (f Filter) Matches(n Note) bool {
	title := strings.ToLower(strings.TrimSpace(f.Title))
	if title != "" && !strings.Contains(strings.ToLower(n.Title), title) {
		return false
	}
	for _, id := range f.TagIDs {
		if !n.HasTag(id) {
			return false
		}
	}
	return true
}
