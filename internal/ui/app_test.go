package ui

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"notekeeper/internal/domain"
	"notekeeper/internal/notes"
	"notekeeper/internal/storage"
)

type appHarness struct {
	t      *testing.T
	app    *App
	repo   *notes.Repository
	copied string
	theme  string
}

// newTestApp opens an in-memory repository with predictable ids and a clock
// that advances one minute per call, seeds it, and sizes the app.
func newTestApp(t *testing.T, seed func(ctx context.Context, repo *notes.Repository)) *appHarness {
	t.Helper()
	ctx := context.Background()

	next := 0
	clock := time.Date(2025, time.March, 1, 9, 0, 0, 0, time.UTC)
	repo, err := notes.Open(ctx, storage.NewMemory(),
		notes.WithIDGenerator(func() string {
			next++
			return fmt.Sprintf("id-%d", next)
		}),
		notes.WithClock(func() time.Time {
			clock = clock.Add(time.Minute)
			return clock
		}),
	)
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	if seed != nil {
		seed(ctx, repo)
	}

	h := &appHarness{t: t, repo: repo}
	app, err := NewApp(Config{
		Repository:   repo,
		OutputFormat: "plain",
		Version:      "1.2.3",
		Clipboard: func(s string) error {
			h.copied = s
			return nil
		},
		SaveTheme: func(name string) error {
			h.theme = name
			return nil
		},
	})
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	h.app = app
	h.send(tea.WindowSizeMsg{Width: 100, Height: 40})
	return h
}

func seedNote(t *testing.T, ctx context.Context, repo *notes.Repository, title, body string, tagLabels ...string) domain.Note {
	t.Helper()
	var tags []domain.Tag
	for _, label := range tagLabels {
		tag, _, err := repo.EnsureTag(ctx, label)
		if err != nil {
			t.Fatalf("EnsureTag(%q): %v", label, err)
		}
		tags = append(tags, tag)
	}
	n, err := repo.CreateNote(ctx, domain.NoteData{Title: title, Markdown: body, Tags: tags})
	if err != nil {
		t.Fatalf("CreateNote(%q): %v", title, err)
	}
	return n
}

func (h *appHarness) send(msg tea.Msg) tea.Cmd {
	h.t.Helper()
	_, cmd := h.app.Update(msg)
	return cmd
}

func (h *appHarness) key(k tea.KeyType) tea.Cmd {
	return h.send(tea.KeyMsg{Type: k})
}

func (h *appHarness) runes(text string) tea.Cmd {
	var last tea.Cmd
	for _, r := range text {
		last = h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return last
}

// run executes a command that is known to return immediately (repository
// commands and Select events) and feeds its message back into the app.
func (h *appHarness) run(cmd tea.Cmd) tea.Cmd {
	h.t.Helper()
	if cmd == nil {
		h.t.Fatal("expected a command, got nil")
	}
	return h.send(cmd())
}

func noteTitles(ns []domain.Note) []string {
	out := make([]string, 0, len(ns))
	for _, n := range ns {
		out = append(out, n.Title)
	}
	return out
}

func TestNewAppRequiresRepository(t *testing.T) {
	if _, err := NewApp(Config{}); err == nil {
		t.Fatal("expected an error without a repository")
	}
}

func TestAppCreateNoteWithNewTag(t *testing.T) {
	h := newTestApp(t, func(ctx context.Context, repo *notes.Repository) {
		for _, label := range []string{"Home", "Work"} {
			if _, _, err := repo.EnsureTag(ctx, label); err != nil {
				t.Fatal(err)
			}
		}
	})

	h.runes("n")
	if h.app.Screen() != ScreenForm {
		t.Fatalf("expected form screen, got %v", h.app.Screen())
	}
	h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Groceries")})
	h.key(tea.KeyTab)
	if h.app.form.focus != formFocusTags || !h.app.form.tags.IsOpen() {
		t.Fatal("tab should focus and open the tag select")
	}

	h.runes("urgent")
	if got := h.app.form.tags.Buffer(); got != "urgent" {
		t.Fatalf("buffer = %q, want urgent", got)
	}
	req := expectMsg[CreateRequestedMsg](t, h.key(tea.KeyEnter))
	if req != (CreateRequestedMsg{ID: noteTagsID, Option: Option{Label: "urgent"}}) {
		t.Fatalf("unexpected creation message %#v", req)
	}
	h.run(h.send(req)) // ensureTagCmd -> tagCreatedMsg

	if got := labels(h.app.form.tags.Selection()); !reflect.DeepEqual(got, []string{"urgent"}) {
		t.Fatalf("selection = %v, want [urgent]", got)
	}
	if got := len(h.app.form.tags.Options()); got != 3 {
		t.Fatalf("expected the new tag among the options, got %d options", got)
	}
	if h.app.form.tags.Buffer() != "" {
		t.Fatal("buffer should reset after creation")
	}

	h.run(h.send(tea.KeyMsg{Type: tea.KeyCtrlS}))
	if h.app.Screen() != ScreenDetail {
		t.Fatalf("expected detail screen after save, got %v", h.app.Screen())
	}
	saved := h.repo.Notes()
	if len(saved) != 1 || saved[0].Title != "Groceries" {
		t.Fatalf("unexpected notes %v", noteTitles(saved))
	}
	if len(saved[0].Tags) != 1 || saved[0].Tags[0].Label != "urgent" {
		t.Fatalf("unexpected tags %#v", saved[0].Tags)
	}
	if len(h.repo.Tags()) != 3 {
		t.Fatalf("expected 3 tags, got %d", len(h.repo.Tags()))
	}
}

func TestAppCreateRequestForExistingTag(t *testing.T) {
	var work domain.Tag
	h := newTestApp(t, func(ctx context.Context, repo *notes.Repository) {
		work, _, _ = repo.EnsureTag(ctx, "Work")
	})

	h.runes("n")
	h.key(tea.KeyTab)
	h.runes("work")
	h.run(h.run(h.key(tea.KeyEnter)))

	sel := h.app.form.tags.Selection()
	if sel.Len() != 1 || !sel.Contains(work.ID) {
		t.Fatalf("expected the existing Work tag to be selected, got %v", sel.Options())
	}
	if len(h.repo.Tags()) != 1 {
		t.Fatalf("no tag should be created, got %d", len(h.repo.Tags()))
	}

	t.Run("AlreadySelectedFlashes", func(t *testing.T) {
		h.runes("WORK")
		h.run(h.run(h.key(tea.KeyEnter)))
		if h.app.form.tags.flashValue != work.ID {
			t.Fatalf("expected the Work chip to flash, got %q", h.app.form.tags.flashValue)
		}
		if h.app.form.tags.Selection().Len() != 1 {
			t.Fatal("selection should be unchanged")
		}
		h.send(chipFlashClearMsg{ID: noteTagsID})
		if h.app.form.tags.flashValue != "" {
			t.Fatal("flash should clear")
		}
	})
}

func TestAppSaveRequiresTitle(t *testing.T) {
	h := newTestApp(t, nil)

	h.runes("n")
	h.run(h.send(tea.KeyMsg{Type: tea.KeyCtrlS}))

	if h.app.Screen() != ScreenForm {
		t.Fatalf("form should stay open, got %v", h.app.Screen())
	}
	if h.app.toast.kind != toastError {
		t.Fatal("expected an error toast")
	}
	if toast := ansi.Strip(h.app.renderToast()); !strings.Contains(toast, "Could not save note") {
		t.Fatalf("unexpected toast %q", toast)
	}
	if len(h.repo.Notes()) != 0 {
		t.Fatal("nothing should be saved")
	}
}

func TestAppEscapeInForm(t *testing.T) {
	h := newTestApp(t, func(ctx context.Context, repo *notes.Repository) {
		_, _, _ = repo.EnsureTag(ctx, "Home")
	})

	h.runes("n")
	h.key(tea.KeyTab)
	if !h.app.form.tags.IsOpen() {
		t.Fatal("tag list should be open")
	}

	h.key(tea.KeyEsc)
	if h.app.Screen() != ScreenForm || h.app.form.tags.IsOpen() {
		t.Fatal("first Esc should only close the tag list")
	}
	h.key(tea.KeyEsc)
	if h.app.Screen() != ScreenList {
		t.Fatalf("second Esc should cancel the form, got %v", h.app.Screen())
	}
}

func TestAppFormTabCycle(t *testing.T) {
	h := newTestApp(t, nil)
	h.runes("n")

	h.key(tea.KeyTab)
	if h.app.form.focus != formFocusTags {
		t.Fatal("expected tags focus")
	}
	// The Select reports Tab instead of consuming it.
	h.run(h.key(tea.KeyTab))
	if h.app.form.focus != formFocusBody {
		t.Fatalf("expected body focus, got %v", h.app.form.focus)
	}
	h.key(tea.KeyShiftTab)
	if h.app.form.focus != formFocusTags {
		t.Fatal("shift+tab should return to tags")
	}
	h.run(h.key(tea.KeyShiftTab))
	if h.app.form.focus != formFocusTitle {
		t.Fatal("shift+tab from tags should return to title")
	}
}

func TestAppEditNoteKeepsTags(t *testing.T) {
	var note domain.Note
	h := newTestApp(t, func(ctx context.Context, repo *notes.Repository) {
		note = seedNote(t, ctx, repo, "Plan", "# Plan", "Work")
	})

	h.runes("e")
	if !h.app.form.editing() || h.app.form.title.Value() != "Plan" {
		t.Fatal("expected the form to edit the selected note")
	}
	if !h.app.form.tags.Selection().Contains(note.Tags[0].ID) {
		t.Fatal("existing tags should be preselected")
	}

	h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(" v2")})
	h.run(h.send(tea.KeyMsg{Type: tea.KeyCtrlS}))

	got, err := h.repo.Note(note.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "Plan v2" || len(got.Tags) != 1 {
		t.Fatalf("unexpected note after edit: %#v", got)
	}
	if len(h.repo.Notes()) != 1 {
		t.Fatal("editing must not create a note")
	}
}

func TestAppTagFilter(t *testing.T) {
	h := newTestApp(t, func(ctx context.Context, repo *notes.Repository) {
		seedNote(t, ctx, repo, "Alpha", "", "Home")
		seedNote(t, ctx, repo, "Beta", "", "Work")
		seedNote(t, ctx, repo, "Gamma", "", "Home", "Work")
	})

	if got := noteTitles(h.app.list.notes); !reflect.DeepEqual(got, []string{"Gamma", "Beta", "Alpha"}) {
		t.Fatalf("unfiltered order = %v", got)
	}

	h.runes("f")
	if h.app.list.focus != listFocusTags || !h.app.list.tags.IsOpen() {
		t.Fatal("f should focus and open the tag filter")
	}
	h.run(h.key(tea.KeyEnter)) // toggles Home

	if got := noteTitles(h.app.list.notes); !reflect.DeepEqual(got, []string{"Gamma", "Alpha"}) {
		t.Fatalf("Home filter = %v", got)
	}

	h.key(tea.KeyDown)
	h.run(h.key(tea.KeyEnter)) // toggles Work
	if got := noteTitles(h.app.list.notes); !reflect.DeepEqual(got, []string{"Gamma"}) {
		t.Fatalf("Home+Work filter = %v", got)
	}

	h.run(h.key(tea.KeyBackspace)) // removes Work
	if got := noteTitles(h.app.list.notes); !reflect.DeepEqual(got, []string{"Gamma", "Alpha"}) {
		t.Fatalf("after backspace = %v", got)
	}

	h.key(tea.KeyEsc)
	if h.app.list.focus != listFocusTags {
		t.Fatal("first Esc closes the list only")
	}
	h.key(tea.KeyEsc)
	if h.app.list.focus != listFocusNotes {
		t.Fatal("second Esc returns to the notes")
	}
}

func TestAppTitleFilter(t *testing.T) {
	h := newTestApp(t, func(ctx context.Context, repo *notes.Repository) {
		seedNote(t, ctx, repo, "Groceries", "")
		seedNote(t, ctx, repo, "Quarterly plan", "")
	})

	h.runes("/")
	h.runes("gro")
	if got := noteTitles(h.app.list.notes); !reflect.DeepEqual(got, []string{"Groceries"}) {
		t.Fatalf("title filter = %v", got)
	}

	t.Run("QDoesNotQuitWhileTyping", func(t *testing.T) {
		h.runes("q")
		if h.app.list.title.Value() != "groq" {
			t.Fatalf("q should be typed, got %q", h.app.list.title.Value())
		}
	})

	h.key(tea.KeyEsc)
	if h.app.list.focus != listFocusNotes {
		t.Fatal("Esc should return focus to the notes")
	}
	if _, ok := h.runes("q")().(tea.QuitMsg); !ok {
		t.Fatal("q should quit from the note list")
	}
}

func TestAppDetailCopyAndDelete(t *testing.T) {
	var note domain.Note
	h := newTestApp(t, func(ctx context.Context, repo *notes.Repository) {
		note = seedNote(t, ctx, repo, "Recipe", "# Pancakes\n\nflour, eggs", "Home")
	})

	h.key(tea.KeyEnter)
	if h.app.Screen() != ScreenDetail || h.app.detail.note.ID != note.ID {
		t.Fatal("enter should open the note")
	}
	if view := ansi.Strip(h.app.View()); !strings.Contains(view, "Pancakes") {
		t.Fatalf("detail view should render the body:\n%s", view)
	}

	h.runes("y")
	if h.copied != note.Markdown {
		t.Fatalf("copied %q, want the note markdown", h.copied)
	}

	h.runes("d")
	h.runes("j")
	h.runes("d")
	if h.app.pendingDelete != note.ID || len(h.repo.Notes()) != 1 {
		t.Fatal("an interrupted d d must not delete")
	}

	h.run(h.runes("d"))
	if h.app.Screen() != ScreenList {
		t.Fatalf("expected list after delete, got %v", h.app.Screen())
	}
	if len(h.repo.Notes()) != 0 || len(h.app.list.notes) != 0 {
		t.Fatal("note should be deleted")
	}
}

func TestAppTagsOverlayRenameAndDelete(t *testing.T) {
	var home, work domain.Tag
	var note domain.Note
	h := newTestApp(t, func(ctx context.Context, repo *notes.Repository) {
		note = seedNote(t, ctx, repo, "Chores", "", "Home", "Work")
		home, work = note.Tags[0], note.Tags[1]
	})

	// Filter by both tags so the rename and delete have to reconcile it.
	h.app.list.tags.SetSelection(NewMulti(tagOptions([]domain.Tag{home, work})...))
	h.app.list.refresh(h.repo)

	h.runes("t")
	if h.app.tagsOverlay == nil {
		t.Fatal("t should open the tags overlay")
	}
	if view := ansi.Strip(h.app.View()); !strings.Contains(view, "Edit tags") {
		t.Fatalf("overlay should be drawn:\n%s", view)
	}

	h.runes("r")
	if !h.app.tagsOverlay.renaming {
		t.Fatal("r should start renaming")
	}
	h.app.tagsOverlay.input.SetValue("House")
	h.run(h.key(tea.KeyEnter))

	if got, _ := h.repo.Tag(home.ID); got.Label != "House" {
		t.Fatalf("tag label = %q, want House", got.Label)
	}
	if got := labels(h.app.list.tags.Selection()); !reflect.DeepEqual(got, []string{"House", "Work"}) {
		t.Fatalf("filter selection = %v", got)
	}

	h.key(tea.KeyDown)
	h.runes("d")
	h.run(h.runes("d"))

	if len(h.repo.Tags()) != 1 {
		t.Fatalf("expected one tag left, got %d", len(h.repo.Tags()))
	}
	got, _ := h.repo.Note(note.ID)
	if len(got.Tags) != 1 || got.Tags[0].ID != home.ID {
		t.Fatalf("Work should be detached from the note, got %#v", got.Tags)
	}
	if got := labels(h.app.list.tags.Selection()); !reflect.DeepEqual(got, []string{"House"}) {
		t.Fatalf("deleted tag should leave the filter, got %v", got)
	}

	h.key(tea.KeyEsc)
	if h.app.tagsOverlay != nil {
		t.Fatal("Esc should close the overlay")
	}
}

func TestAppView(t *testing.T) {
	h := newTestApp(t, func(ctx context.Context, repo *notes.Repository) {
		seedNote(t, ctx, repo, "Standup notes", "", "Work")
	})

	view := ansi.Strip(h.app.View())
	for _, want := range []string{"NOTEKEEPER v1.2.3", "Notes", "Standup notes", "Filter by tags…", "1 notes · 1 tags"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	h.runes("?")
	if view := ansi.Strip(h.app.View()); !strings.Contains(view, "NOTEKEEPER HELP") {
		t.Fatalf("help overlay missing:\n%s", view)
	}
	h.runes("n")
	if h.app.Screen() != ScreenList {
		t.Fatal("keys other than ? and Esc are ignored while help is open")
	}
	h.key(tea.KeyEsc)
	if h.app.showHelp {
		t.Fatal("Esc should close help")
	}
}

func TestAppThemeCycleIsSaved(t *testing.T) {
	h := newTestApp(t, nil)
	h.runes("T")
	if h.theme == "" {
		t.Fatal("cycling the theme should persist it")
	}
}

func TestAppMouseFocusesTagFilter(t *testing.T) {
	h := newTestApp(t, func(ctx context.Context, repo *notes.Repository) {
		seedNote(t, ctx, repo, "Alpha", "", "Home")
	})

	// Body starts at (bodyMargin, headerHeight); the Select's first content
	// row is one below its top border.
	x := bodyMargin + 3
	y := headerHeight + h.app.list.tagsTop() + 1
	h.send(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})

	if h.app.list.focus != listFocusTags {
		t.Fatalf("click should focus the tag filter, focus=%v", h.app.list.focus)
	}
	if !h.app.list.tags.IsOpen() {
		t.Fatal("focusing the filter opens its list")
	}

	// Clicking a note card moves focus back to the notes.
	cardY := headerHeight + h.app.list.cardsTop()
	h.send(tea.MouseMsg{X: bodyMargin + 2, Y: cardY, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if h.app.list.focus != listFocusNotes {
		t.Fatal("clicking a card should focus the notes")
	}
}
