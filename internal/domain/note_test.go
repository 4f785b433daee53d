package domain

import (
	"testing"

	appErrors "notekeeper/internal/errors"
)

func TestNoteDataValidate(t *testing.T) {
	if err := (NoteData{Title: "Groceries"}).Validate(); err != nil {
		t.Fatalf("expected valid note, got %v", err)
	}

	err := (NoteData{Title: "   "}).Validate()
	if !appErrors.IsCode(err, appErrors.CodeInvalidNote) {
		t.Fatalf("expected invalid_note for blank title, got %v", err)
	}

	err = (NoteData{Title: "x", Tags: []Tag{{ID: "t1", Label: ""}}}).Validate()
	if !appErrors.IsCode(err, appErrors.CodeInvalidTag) {
		t.Fatalf("expected invalid_tag for blank tag label, got %v", err)
	}
}

func TestNoteDataTagIDsDeduplicates(t *testing.T) {
	d := NoteData{Tags: []Tag{{ID: "a", Label: "A"}, {ID: "b", Label: "B"}, {ID: "a", Label: "A"}}}
	got := d.TagIDs()
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("TagIDs() = %v, want [a b]", got)
	}
}

func TestRawNoteResolveDropsMissingTags(t *testing.T) {
	raw := RawNote{ID: "n1", Title: "Trip", TagIDs: []string{"t1", "gone", "t2"}}
	tags := map[string]Tag{
		"t1": {ID: "t1", Label: "Home"},
		"t2": {ID: "t2", Label: "Work"},
	}

	note := raw.Resolve(tags)
	if len(note.Tags) != 2 {
		t.Fatalf("expected 2 resolved tags, got %d", len(note.Tags))
	}
	if note.Tags[0].Label != "Home" || note.Tags[1].Label != "Work" {
		t.Fatalf("unexpected tag order: %+v", note.Tags)
	}
}

func TestFilterMatches(t *testing.T) {
	home := Tag{ID: "1", Label: "Home"}
	work := Tag{ID: "2", Label: "Work"}
	note := Note{Title: "Weekly Plan", Tags: []Tag{home, work}}

	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{"empty", Filter{}, true},
		{"title case-insensitive", Filter{Title: "weekly"}, true},
		{"title miss", Filter{Title: "daily"}, false},
		{"all tags present", Filter{TagIDs: []string{"1", "2"}}, true},
		{"one tag missing", Filter{TagIDs: []string{"1", "3"}}, false},
		{"title and tag", Filter{Title: "plan", TagIDs: []string{"2"}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(note); got != tt.want {
				t.Fatalf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}
