package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"notekeeper/internal/domain"
)

const noteTagsID = "note-tags"

type formFocus int

const (
	formFocusTitle formFocus = iota
	formFocusTags
	formFocusBody
)

// formScreen edits a new or existing note.
type formScreen struct {
	noteID   string
	returnTo Screen

	title textinput.Model
	tags  Select
	body  textarea.Model
	focus formFocus

	width  int
	height int
}

func newFormScreen(note *domain.Note, tags []domain.Tag, maxVisible int) formScreen {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "Note title"
	ti.CharLimit = 200

	sel := NewSelect(tagOptions(tags)).
		WithID(noteTagsID).
		WithMode(ModeMulti).
		WithCreatable(true).
		WithMaxVisible(maxVisible).
		WithPlaceholder("Add tags…")

	f := formScreen{
		returnTo: ScreenList,
		title:    ti,
		tags:     sel,
		body:     newBodyTextarea(40, 10),
	}
	if note != nil {
		f.noteID = note.ID
		f.returnTo = ScreenDetail
		f.title.SetValue(note.Title)
		f.tags.SetSelection(NewMulti(tagOptions(note.Tags)...))
		f.body.SetValue(note.Markdown)
	}
	return f
}

func (f formScreen) editing() bool { return f.noteID != "" }

func (f formScreen) data() domain.NoteData {
	return domain.NoteData{
		Title:    strings.TrimSpace(f.title.Value()),
		Markdown: f.body.Value(),
		Tags:     selectionTags(f.tags.Selection()),
	}
}

func (f *formScreen) setSize(width, height int) {
	f.width = width
	f.height = height
	f.title.Width = max(width-6, 1)
	f.tags = f.tags.WithWidth(width)
	f.layoutBody()
}

// layoutBody gives the editor whatever height the tag list leaves over.
func (f *formScreen) layoutBody() {
	f.body.SetWidth(max(f.width-4, 1))
	f.body.SetHeight(max(f.height-f.bodyTop()-2, 3))
}

func (f *formScreen) setTags(tags []domain.Tag) {
	f.tags.SetOptions(tagOptions(tags))
	f.tags.SetSelection(reconcileSelection(f.tags.Selection(), tags))
}

func (f *formScreen) focusField(ff formFocus) tea.Cmd {
	f.focus = ff
	f.title.Blur()
	f.tags.Blur()
	f.body.Blur()
	switch ff {
	case formFocusTitle:
		return f.title.Focus()
	case formFocusTags:
		return f.tags.Focus()
	default:
		return f.body.Focus()
	}
}

func (f *formScreen) cycleFocus(reverse bool) tea.Cmd {
	next := (int(f.focus) + 1) % 3
	if reverse {
		next = (int(f.focus) + 2) % 3
	}
	return f.focusField(formFocus(next))
}

// Layout, relative to the top of the form body.

func (f formScreen) titleTop() int { return 1 }

func (f formScreen) tagsTop() int { return f.titleTop() + 3 + 1 }

func (f formScreen) bodyTop() int { return f.tagsTop() + f.tags.Height() + 2 }

func (f formScreen) view() string {
	label := func(ff formFocus, text string) string {
		if f.focus == ff {
			return styleFieldLabelFocused().Render(text)
		}
		return styleFieldLabel().Render(text)
	}
	box := func(ff formFocus) lipgloss.Style {
		if f.focus == ff {
			return styleInputBoxFocused()
		}
		return styleInputBox()
	}

	var b strings.Builder
	b.WriteString(label(formFocusTitle, "Title"))
	b.WriteString("\n")
	b.WriteString(box(formFocusTitle).Width(max(f.width-2, 1)).Render(f.title.View()))
	b.WriteString("\n")
	b.WriteString(label(formFocusTags, "Tags"))
	b.WriteString("\n")
	b.WriteString(f.tags.View())
	b.WriteString("\n\n")
	b.WriteString(label(formFocusBody, "Body"))
	b.WriteString("\n")
	b.WriteString(box(formFocusBody).Width(max(f.width-2, 1)).Render(f.body.View()))
	return b.String()
}

func (m *App) openForm(note *domain.Note) tea.Cmd {
	m.pendingDelete = ""
	m.form = newFormScreen(note, m.repo.Tags(), m.maxVisible)
	m.form.setSize(m.bodyWidth(), m.bodyHeight())
	m.screen = ScreenForm
	return m.form.focusField(formFocusTitle)
}

func (m *App) closeForm() {
	f := &m.form
	f.title.Blur()
	f.tags.Blur()
	f.body.Blur()
	if f.returnTo == ScreenDetail {
		if n, err := m.repo.Note(f.noteID); err == nil {
			m.openDetail(n)
			return
		}
	}
	m.screen = ScreenList
}

func (m *App) updateForm(msg tea.KeyMsg) tea.Cmd {
	f := &m.form
	defer f.layoutBody()

	if key.Matches(msg, m.keys.Save) {
		return saveNoteCmd(m.repo, f.noteID, f.data())
	}

	widgetBusy := f.focus == formFocusTags && (f.tags.IsOpen() || f.tags.InputFocused())
	if key.Matches(msg, m.keys.Escape) && !widgetBusy {
		m.closeForm()
		return nil
	}

	switch f.focus {
	case formFocusTags:
		var cmd tea.Cmd
		f.tags, cmd = f.tags.Update(msg)
		return cmd
	case formFocusTitle:
		switch {
		case key.Matches(msg, m.keys.Tab), key.Matches(msg, m.keys.Enter):
			return f.cycleFocus(false)
		case key.Matches(msg, m.keys.ShiftTab):
			return f.cycleFocus(true)
		}
		var cmd tea.Cmd
		f.title, cmd = f.title.Update(msg)
		return cmd
	default:
		switch {
		case key.Matches(msg, m.keys.Tab):
			return f.cycleFocus(false)
		case key.Matches(msg, m.keys.ShiftTab):
			return f.cycleFocus(true)
		}
		var cmd tea.Cmd
		f.body, cmd = f.body.Update(msg)
		return cmd
	}
}

func (m *App) formSelectTab(msg SelectTabMsg) tea.Cmd {
	defer m.form.layoutBody()
	return m.form.cycleFocus(msg.Reverse)
}

// handleTagCreated folds a resolved creation request into the form: the
// tag joins the option list and the selection, or flashes when it was
// already selected.
func (m *App) handleTagCreated(msg tagCreatedMsg) tea.Cmd {
	m.syncTags()
	if m.screen != ScreenForm || msg.selectID != noteTagsID {
		return nil
	}
	f := &m.form
	defer f.layoutBody()

	if f.tags.Selection().Contains(msg.tag.ID) {
		return tea.Batch(
			f.tags.FlashValue(msg.tag.ID),
			m.showToast(toastSuccess, "", "“"+msg.tag.Label+"” is already on this note"),
		)
	}
	opts := append(f.tags.Selection().Options(), Option{Label: msg.tag.Label, Value: msg.tag.ID})
	f.tags.SetSelection(NewMulti(opts...))
	if msg.created {
		return m.showToast(toastSuccess, "", "Created tag “"+msg.tag.Label+"”")
	}
	return nil
}

func (m *App) formMouse(msg tea.MouseMsg) tea.Cmd {
	f := &m.form
	defer f.layoutBody()

	local := TranslateMouse(msg, 0, f.tagsTop())
	if cmd, handled := routeSelectMouse(&f.tags, local, func() tea.Cmd {
		return f.focusField(formFocusTags)
	}); handled {
		return cmd
	}
	if !isLeftPress(msg) {
		if f.focus == formFocusBody {
			var cmd tea.Cmd
			f.body, cmd = f.body.Update(msg)
			return cmd
		}
		return nil
	}
	switch {
	case msg.Y >= f.titleTop() && msg.Y < f.titleTop()+3:
		if f.focus != formFocusTitle {
			return f.focusField(formFocusTitle)
		}
	case msg.Y >= f.bodyTop():
		if f.focus != formFocusBody {
			return f.focusField(formFocusBody)
		}
	}
	return nil
}
