package ui

import (
	"context"
	"time"

	"notekeeper/internal/domain"
	"notekeeper/internal/notes"

	tea "github.com/charmbracelet/bubbletea"
)

type noteSavedMsg struct {
	note    domain.Note
	created bool
}

type noteDeletedMsg struct {
	id    string
	title string
}

// tagCreatedMsg reports the outcome of a creation request from the Select
// identified by selectID. created is false when the label matched an
// existing tag.
type tagCreatedMsg struct {
	selectID string
	tag      domain.Tag
	created  bool
}

type tagRenamedMsg struct {
	id    string
	label string
}

type tagDeletedMsg struct {
	id    string
	label string
}

type storageErrMsg struct {
	op  string
	err error
}

type toastTickMsg struct{}

func scheduleToastTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return toastTickMsg{}
	})
}

func saveNoteCmd(repo *notes.Repository, id string, data domain.NoteData) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if id == "" {
			note, err := repo.CreateNote(ctx, data)
			if err != nil {
				return storageErrMsg{op: "save note", err: err}
			}
			return noteSavedMsg{note: note, created: true}
		}
		note, err := repo.UpdateNote(ctx, id, data)
		if err != nil {
			return storageErrMsg{op: "save note", err: err}
		}
		return noteSavedMsg{note: note}
	}
}

func deleteNoteCmd(repo *notes.Repository, note domain.Note) tea.Cmd {
	return func() tea.Msg {
		if err := repo.DeleteNote(context.Background(), note.ID); err != nil {
			return storageErrMsg{op: "delete note", err: err}
		}
		return noteDeletedMsg{id: note.ID, title: note.Title}
	}
}

func ensureTagCmd(repo *notes.Repository, selectID, label string) tea.Cmd {
	return func() tea.Msg {
		tag, created, err := repo.EnsureTag(context.Background(), label)
		if err != nil {
			return storageErrMsg{op: "create tag", err: err}
		}
		return tagCreatedMsg{selectID: selectID, tag: tag, created: created}
	}
}

func renameTagCmd(repo *notes.Repository, id, label string) tea.Cmd {
	return func() tea.Msg {
		if err := repo.RenameTag(context.Background(), id, label); err != nil {
			return storageErrMsg{op: "rename tag", err: err}
		}
		return tagRenamedMsg{id: id, label: label}
	}
}

func deleteTagCmd(repo *notes.Repository, tag domain.Tag) tea.Cmd {
	return func() tea.Msg {
		if err := repo.DeleteTag(context.Background(), tag.ID); err != nil {
			return storageErrMsg{op: "delete tag", err: err}
		}
		return tagDeletedMsg{id: tag.ID, label: tag.Label}
	}
}

// tagOptions maps tags onto Select options keyed by tag id.
func tagOptions(tags []domain.Tag) []Option {
	opts := make([]Option, 0, len(tags))
	for _, t := range tags {
		opts = append(opts, Option{Label: t.Label, Value: t.ID})
	}
	return opts
}

// selectionTags converts a Select selection back into tags.
func selectionTags(sel Selection) []domain.Tag {
	if sel == nil {
		return nil
	}
	opts := sel.Options()
	tags := make([]domain.Tag, 0, len(opts))
	for _, o := range opts {
		tags = append(tags, domain.Tag{ID: o.Value, Label: o.Label})
	}
	return tags
}

// reconcileSelection relabels selected options from the current tag set and
// drops tags that no longer exist.
func reconcileSelection(sel Selection, tags []domain.Tag) Selection {
	byID := make(map[string]domain.Tag, len(tags))
	for _, t := range tags {
		byID[t.ID] = t
	}
	var kept []Option
	for _, o := range sel.Options() {
		if t, ok := byID[o.Value]; ok {
			kept = append(kept, Option{Label: t.Label, Value: t.ID})
		}
	}
	if sel.Mode() == ModeSingle {
		if len(kept) == 0 {
			return Single{}
		}
		return NewSingle(kept[0])
	}
	return NewMulti(kept...)
}
