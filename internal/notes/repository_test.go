package notes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"notekeeper/internal/domain"
	appErrors "notekeeper/internal/errors"
	"notekeeper/internal/storage"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func fixedClock() func() time.Time {
	t0 := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time { return t0 }
}

func openRepo(t *testing.T, kv storage.KV) *Repository {
	t.Helper()
	repo, err := Open(context.Background(), kv, WithIDGenerator(sequentialIDs()), WithClock(fixedClock()))
	require.NoError(t, err)
	return repo
}

func TestOpenStartsEmpty(t *testing.T) {
	repo := openRepo(t, storage.NewMemory())
	assert.Empty(t, repo.Notes())
	assert.Empty(t, repo.Tags())
}

func TestOpenFailsSoftOnCorruptCollections(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	require.NoError(t, kv.Set(ctx, KeyNotes, "garbage"))
	require.NoError(t, kv.Set(ctx, KeyTags, `[{"id":"t1","label":"Home"}]`))

	repo := openRepo(t, kv)
	assert.Empty(t, repo.Notes())
	assert.Equal(t, []domain.Tag{{ID: "t1", Label: "Home"}}, repo.Tags())
}

func TestEnsureTagAssignsIDAndDeduplicates(t *testing.T) {
	ctx := context.Background()
	repo := openRepo(t, storage.NewMemory())

	urgent, created, err := repo.EnsureTag(ctx, "  urgent ")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, domain.Tag{ID: "id-1", Label: "urgent"}, urgent)

	again, created, err := repo.EnsureTag(ctx, "URGENT")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, urgent, again)

	_, _, err = repo.EnsureTag(ctx, "   ")
	assert.True(t, appErrors.IsCode(err, appErrors.CodeInvalidTag))
	assert.Len(t, repo.Tags(), 1)
}

func TestCreateUpdateDeleteNote(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	repo := openRepo(t, kv)

	home, _, err := repo.EnsureTag(ctx, "Home")
	require.NoError(t, err)

	note, err := repo.CreateNote(ctx, domain.NoteData{Title: " Groceries ", Markdown: "- milk", Tags: []domain.Tag{home}})
	require.NoError(t, err)
	assert.Equal(t, "Groceries", note.Title)
	assert.Equal(t, []domain.Tag{home}, note.Tags)

	work := domain.Tag{ID: "ext-work", Label: "Work"}
	updated, err := repo.UpdateNote(ctx, note.ID, domain.NoteData{Title: "Errands", Markdown: "- bread", Tags: []domain.Tag{work}})
	require.NoError(t, err)
	assert.Equal(t, "Errands", updated.Title)
	assert.Equal(t, []domain.Tag{work}, updated.Tags)
	assert.Len(t, repo.Tags(), 2, "unknown tags on a note are remembered")

	reloaded := openRepo(t, kv)
	got, err := reloaded.Note(note.ID)
	require.NoError(t, err)
	assert.Equal(t, "- bread", got.Markdown)

	require.NoError(t, repo.DeleteNote(ctx, note.ID))
	_, err = repo.Note(note.ID)
	assert.True(t, appErrors.IsCode(err, appErrors.CodeNotFound))
	assert.True(t, appErrors.IsCode(repo.DeleteNote(ctx, note.ID), appErrors.CodeNotFound))
}

func TestCreateNoteRejectsBlankTitle(t *testing.T) {
	repo := openRepo(t, storage.NewMemory())
	_, err := repo.CreateNote(context.Background(), domain.NoteData{Title: " "})
	assert.True(t, appErrors.IsCode(err, appErrors.CodeInvalidNote))
	assert.Empty(t, repo.Notes())
}

func TestFilterByTitleAndTags(t *testing.T) {
	ctx := context.Background()
	repo := openRepo(t, storage.NewMemory())
	home, _, _ := repo.EnsureTag(ctx, "Home")
	work, _, _ := repo.EnsureTag(ctx, "Work")

	_, err := repo.CreateNote(ctx, domain.NoteData{Title: "Plan week", Tags: []domain.Tag{home, work}})
	require.NoError(t, err)
	_, err = repo.CreateNote(ctx, domain.NoteData{Title: "Plan trip", Tags: []domain.Tag{home}})
	require.NoError(t, err)
	_, err = repo.CreateNote(ctx, domain.NoteData{Title: "Standup"})
	require.NoError(t, err)

	titles := func(notes []domain.Note) []string {
		var out []string
		for _, n := range notes {
			out = append(out, n.Title)
		}
		return out
	}

	assert.Equal(t, []string{"Plan week", "Plan trip"}, titles(repo.Filter(domain.Filter{Title: "plan"})))
	assert.Equal(t, []string{"Plan week"}, titles(repo.Filter(domain.Filter{TagIDs: []string{home.ID, work.ID}})))
	assert.Equal(t, []string{"Plan week", "Plan trip"}, titles(repo.Filter(domain.Filter{TagIDs: []string{home.ID}})))
	assert.Len(t, repo.Notes(), 3)
}

func TestRenameAndDeleteTag(t *testing.T) {
	ctx := context.Background()
	repo := openRepo(t, storage.NewMemory())
	home, _, _ := repo.EnsureTag(ctx, "Home")
	work, _, _ := repo.EnsureTag(ctx, "Work")
	note, err := repo.CreateNote(ctx, domain.NoteData{Title: "Both", Tags: []domain.Tag{home, work}})
	require.NoError(t, err)

	require.NoError(t, repo.RenameTag(ctx, home.ID, "House"))
	got, err := repo.Note(note.ID)
	require.NoError(t, err)
	assert.Equal(t, "House", got.Tags[0].Label)

	assert.True(t, appErrors.IsCode(repo.RenameTag(ctx, "missing", "x"), appErrors.CodeNotFound))
	assert.True(t, appErrors.IsCode(repo.RenameTag(ctx, home.ID, ""), appErrors.CodeInvalidTag))

	assert.Equal(t, map[string]int{home.ID: 1, work.ID: 1}, repo.NoteCountByTag())

	require.NoError(t, repo.DeleteTag(ctx, work.ID))
	got, err = repo.Note(note.ID)
	require.NoError(t, err)
	assert.Equal(t, []domain.Tag{{ID: home.ID, Label: "House"}}, got.Tags)
	assert.Len(t, repo.Tags(), 1)
	assert.True(t, appErrors.IsCode(repo.DeleteTag(ctx, work.ID), appErrors.CodeNotFound))
}

func TestRepositoryOnSQLite(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "notes.db")
	store, err := storage.OpenSQLite(ctx, path)
	require.NoError(t, err)

	repo := openRepo(t, store)
	tag, _, err := repo.EnsureTag(ctx, "Urgent")
	require.NoError(t, err)
	_, err = repo.CreateNote(ctx, domain.NoteData{Title: "Call bank", Tags: []domain.Tag{tag}})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	store, err = storage.OpenSQLite(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	reopened := openRepo(t, store)
	notes := reopened.Notes()
	require.Len(t, notes, 1)
	assert.Equal(t, "Urgent", notes[0].Tags[0].Label)
}

func TestExportFormats(t *testing.T) {
	ctx := context.Background()
	repo := openRepo(t, storage.NewMemory())
	tag, _, _ := repo.EnsureTag(ctx, "Home")
	_, err := repo.CreateNote(ctx, domain.NoteData{Title: "Rent", Markdown: "pay", Tags: []domain.Tag{tag}})
	require.NoError(t, err)

	var jsonOut bytes.Buffer
	require.NoError(t, repo.Export(&jsonOut, FormatJSON))
	var fromJSON Snapshot
	require.NoError(t, json.Unmarshal(jsonOut.Bytes(), &fromJSON))
	assert.Equal(t, "Rent", fromJSON.Notes[0].Title)
	assert.Equal(t, "Home", fromJSON.Tags[0].Label)

	var yamlOut bytes.Buffer
	require.NoError(t, repo.Export(&yamlOut, FormatYAML))
	var fromYAML Snapshot
	require.NoError(t, yaml.Unmarshal(yamlOut.Bytes(), &fromYAML))
	assert.Equal(t, "pay", fromYAML.Notes[0].Markdown)

	err = repo.Export(&bytes.Buffer{}, ExportFormat("xml"))
	assert.True(t, appErrors.IsCode(err, appErrors.CodeExportFailed))
}

func TestFormatForPath(t *testing.T) {
	f, err := FormatForPath("out/notes.YML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	f, err = FormatForPath("notes.json")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = FormatForPath("notes.txt")
	assert.True(t, appErrors.IsCode(err, appErrors.CodeExportFailed))
}

type countingKV struct {
	storage.KV
	sets int
}

func (c *countingKV) Set(ctx context.Context, key, value string) error {
	c.sets++
	return c.KV.Set(ctx, key, value)
}

func TestRenameTagRejections(t *testing.T) {
	ctx := context.Background()
	kv := &countingKV{KV: storage.NewMemory()}
	repo := openRepo(t, kv)
	home, _, err := repo.EnsureTag(ctx, "Home")
	require.NoError(t, err)
	work, _, err := repo.EnsureTag(ctx, "Work")
	require.NoError(t, err)

	t.Run("ClashWithOtherTag", func(t *testing.T) {
		err := repo.RenameTag(ctx, work.ID, "  home ")
		assert.True(t, appErrors.IsCode(err, appErrors.CodeInvalidTag), "got %v", err)
		tag, err := repo.Tag(work.ID)
		require.NoError(t, err)
		assert.Equal(t, "Work", tag.Label)
	})

	t.Run("CaseChangeOfSameTag", func(t *testing.T) {
		require.NoError(t, repo.RenameTag(ctx, home.ID, "HOME"))
		tag, err := repo.Tag(home.ID)
		require.NoError(t, err)
		assert.Equal(t, "HOME", tag.Label)
	})

	t.Run("UnknownIDDoesNotWrite", func(t *testing.T) {
		before := kv.sets
		err := repo.RenameTag(ctx, "missing", "Other")
		assert.True(t, appErrors.IsCode(err, appErrors.CodeNotFound), "got %v", err)
		assert.Equal(t, before, kv.sets)
	})

	_, created, err := repo.EnsureTag(ctx, "work")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Len(t, repo.Tags(), 2)
}
