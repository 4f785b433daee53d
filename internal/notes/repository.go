// Package notes manages notes and tags on top of the storage package.
package notes

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"notekeeper/internal/debug"
	"notekeeper/internal/domain"
	"notekeeper/internal/storage"
)

// Storage keys for the two persisted collections.
const (
	KeyNotes = "NOTES"
	KeyTags  = "TAGS"
)

var logf = debug.Scoped("notes")

// Repository owns the note and tag collections.
// Reads are served from memory; every mutation writes through to storage.
type Repository struct {
	mu    sync.Mutex
	notes *storage.State[[]domain.RawNote]
	tags  *storage.State[[]domain.Tag]
	newID func() string
	now   func() time.Time
}

// Option configures a Repository.
type Option func(*Repository)

// WithIDGenerator overrides UUID generation (tests).
func WithIDGenerator(fn func() string) Option {
	return func(r *Repository) {
		r.newID = fn
	}
}

// WithClock overrides time.Now (tests).
func WithClock(fn func() time.Time) Option {
	return func(r *Repository) {
		r.now = fn
	}
}

// Open loads both collections from kv. Missing or corrupt collections start empty.
func Open(ctx context.Context, kv storage.KV, opts ...Option) (*Repository, error) {
	notes, err := storage.LoadState(ctx, kv, KeyNotes, func() []domain.RawNote { return []domain.RawNote{} })
	if err != nil {
		return nil, err
	}
	tags, err := storage.LoadState(ctx, kv, KeyTags, func() []domain.Tag { return []domain.Tag{} })
	if err != nil {
		return nil, err
	}
	r := &Repository{
		notes: notes,
		tags:  tags,
		newID: uuid.NewString,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	logf("loaded %d notes, %d tags", len(notes.Get()), len(tags.Get()))
	return r, nil
}

// Tags returns all tags in creation order.
func (r *Repository) Tags() []domain.Tag {
	return append([]domain.Tag(nil), r.tags.Get()...)
}

// Tag looks up a tag by id.
func (r *Repository) Tag(id string) (domain.Tag, error) {
	for _, tag := range r.tags.Get() {
		if tag.ID == id {
			return tag, nil
		}
	}
	return domain.Tag{}, domain.NotFoundError("tag", id)
}

// Notes returns every note with tags resolved, newest first.
func (r *Repository) Notes() []domain.Note {
	return r.Filter(domain.Filter{})
}

// Filter returns the notes matching f, newest first.
func (r *Repository) Filter(f domain.Filter) []domain.Note {
	byID := r.tagIndex()
	var out []domain.Note
	for _, raw := range r.notes.Get() {
		note := raw.Resolve(byID)
		if f.Matches(note) {
			out = append(out, note)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out
}

// Note looks up a single note by id.
func (r *Repository) Note(id string) (domain.Note, error) {
	for _, raw := range r.notes.Get() {
		if raw.ID == id {
			return raw.Resolve(r.tagIndex()), nil
		}
	}
	return domain.Note{}, domain.NotFoundError("note", id)
}

// CreateNote validates and stores a new note. Tags in data that are not yet
// known are added to the tag collection.
func (r *Repository) CreateNote(ctx context.Context, data domain.NoteData) (domain.Note, error) {
	if err := data.Validate(); err != nil {
		return domain.Note{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.rememberTagsLocked(ctx, data.Tags); err != nil {
		return domain.Note{}, err
	}
	now := r.now()
	raw := domain.RawNote{
		ID:        r.newID(),
		Title:     strings.TrimSpace(data.Title),
		Markdown:  data.Markdown,
		TagIDs:    data.TagIDs(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := r.notes.Update(ctx, func(prev []domain.RawNote) []domain.RawNote {
		next := make([]domain.RawNote, 0, len(prev)+1)
		next = append(next, prev...)
		return append(next, raw)
	})
	if err != nil {
		return domain.Note{}, err
	}
	logf("created note %s", raw.ID)
	return raw.Resolve(r.tagIndex()), nil
}

// UpdateNote replaces the editable fields of an existing note.
func (r *Repository) UpdateNote(ctx context.Context, id string, data domain.NoteData) (domain.Note, error) {
	if err := data.Validate(); err != nil {
		return domain.Note{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.noteIndexLocked(id)
	if idx < 0 {
		return domain.Note{}, domain.NotFoundError("note", id)
	}
	if err := r.rememberTagsLocked(ctx, data.Tags); err != nil {
		return domain.Note{}, err
	}

	var updated domain.RawNote
	err := r.notes.Update(ctx, func(prev []domain.RawNote) []domain.RawNote {
		next := append([]domain.RawNote(nil), prev...)
		updated = next[idx]
		updated.Title = strings.TrimSpace(data.Title)
		updated.Markdown = data.Markdown
		updated.TagIDs = data.TagIDs()
		updated.UpdatedAt = r.now()
		next[idx] = updated
		return next
	})
	if err != nil {
		return domain.Note{}, err
	}
	return updated.Resolve(r.tagIndex()), nil
}

// DeleteNote removes a note.
func (r *Repository) DeleteNote(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.noteIndexLocked(id)
	if idx < 0 {
		return domain.NotFoundError("note", id)
	}
	return r.notes.Update(ctx, func(prev []domain.RawNote) []domain.RawNote {
		next := make([]domain.RawNote, 0, len(prev)-1)
		next = append(next, prev[:idx]...)
		return append(next, prev[idx+1:]...)
	})
}

// EnsureTag returns the tag whose label matches (case-insensitive, trimmed),
// creating it with a fresh id when none exists. created reports which happened.
func (r *Repository) EnsureTag(ctx context.Context, label string) (tag domain.Tag, created bool, err error) {
	label = strings.TrimSpace(label)
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.tags.Get() {
		if strings.EqualFold(existing.Label, label) {
			return existing, false, nil
		}
	}
	tag = domain.Tag{ID: r.newID(), Label: label}
	if err := tag.Validate(); err != nil {
		return domain.Tag{}, false, err
	}
	if err := r.appendTagsLocked(ctx, []domain.Tag{tag}); err != nil {
		return domain.Tag{}, false, err
	}
	logf("created tag %s (%s)", tag.ID, tag.Label)
	return tag, true, nil
}

// RenameTag changes the label of an existing tag. A label that matches
// another tag (case-insensitive) is rejected.
func (r *Repository) RenameTag(ctx context.Context, id, label string) error {
	renamed := domain.Tag{ID: id, Label: strings.TrimSpace(label)}
	if err := renamed.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.Tag(id); err != nil {
		return err
	}
	for _, other := range r.tags.Get() {
		if other.ID != id && strings.EqualFold(other.Label, renamed.Label) {
			return domain.DuplicateTagError(renamed.Label)
		}
	}
	err := r.tags.Update(ctx, func(prev []domain.Tag) []domain.Tag {
		next := append([]domain.Tag(nil), prev...)
		for i := range next {
			if next[i].ID == id {
				next[i] = renamed
			}
		}
		return next
	})
	if err != nil {
		return err
	}
	logf("renamed tag %s to %s", id, renamed.Label)
	return nil
}

// DeleteTag removes a tag and detaches it from every note.
func (r *Repository) DeleteTag(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.Tag(id); err != nil {
		return err
	}
	err := r.notes.Update(ctx, func(prev []domain.RawNote) []domain.RawNote {
		next := make([]domain.RawNote, len(prev))
		for i, raw := range prev {
			ids := make([]string, 0, len(raw.TagIDs))
			for _, tagID := range raw.TagIDs {
				if tagID != id {
					ids = append(ids, tagID)
				}
			}
			raw.TagIDs = ids
			next[i] = raw
		}
		return next
	})
	if err != nil {
		return err
	}
	return r.tags.Update(ctx, func(prev []domain.Tag) []domain.Tag {
		next := make([]domain.Tag, 0, len(prev))
		for _, tag := range prev {
			if tag.ID != id {
				next = append(next, tag)
			}
		}
		return next
	})
}

// NoteCountByTag reports how many notes reference each tag id.
func (r *Repository) NoteCountByTag() map[string]int {
	counts := make(map[string]int)
	for _, raw := range r.notes.Get() {
		for _, id := range raw.TagIDs {
			counts[id]++
		}
	}
	return counts
}

func (r *Repository) tagIndex() map[string]domain.Tag {
	tags := r.tags.Get()
	byID := make(map[string]domain.Tag, len(tags))
	for _, tag := range tags {
		byID[tag.ID] = tag
	}
	return byID
}

func (r *Repository) noteIndexLocked(id string) int {
	for i, raw := range r.notes.Get() {
		if raw.ID == id {
			return i
		}
	}
	return -1
}

func (r *Repository) rememberTagsLocked(ctx context.Context, tags []domain.Tag) error {
	known := r.tagIndex()
	var missing []domain.Tag
	for _, tag := range tags {
		if _, ok := known[tag.ID]; !ok {
			known[tag.ID] = tag
			missing = append(missing, tag)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return r.appendTagsLocked(ctx, missing)
}

func (r *Repository) appendTagsLocked(ctx context.Context, tags []domain.Tag) error {
	return r.tags.Update(ctx, func(prev []domain.Tag) []domain.Tag {
		next := make([]domain.Tag, 0, len(prev)+len(tags))
		next = append(next, prev...)
		return append(next, tags...)
	})
}
