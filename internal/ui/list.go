package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"notekeeper/internal/domain"
	"notekeeper/internal/notes"
)

const filterTagsID = "filter-tags"

// Each note card is a title line, a tag line and a gap.
const noteCardHeight = 3

type listFocus int

const (
	listFocusNotes listFocus = iota
	listFocusTitle
	listFocusTags
)

// listScreen is the note list with its title and tag filters.
type listScreen struct {
	title textinput.Model
	tags  Select
	focus listFocus

	notes  []domain.Note
	total  int
	cursor int
	offset int

	width  int
	height int
}

func newListScreen(maxVisible int) listScreen {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "Filter by title…"
	ti.CharLimit = 120

	tags := NewSelect(nil).
		WithID(filterTagsID).
		WithMode(ModeMulti).
		WithMaxVisible(maxVisible).
		WithPlaceholder("Filter by tags…")

	return listScreen{title: ti, tags: tags}
}

func (l *listScreen) setSize(width, height int) {
	l.width = width
	l.height = height
	l.title.Width = max(width-6, 1)
	l.tags = l.tags.WithWidth(width)
	l.ensureCursorVisible()
}

// setTags refreshes the tag filter options, relabelling or dropping
// selected tags that were renamed or deleted.
func (l *listScreen) setTags(tags []domain.Tag) {
	l.tags.SetOptions(tagOptions(tags))
	l.tags.SetSelection(reconcileSelection(l.tags.Selection(), tags))
}

func (l listScreen) filter() domain.Filter {
	sel := l.tags.Selection().Options()
	ids := make([]string, 0, len(sel))
	for _, o := range sel {
		ids = append(ids, o.Value)
	}
	return domain.Filter{Title: l.title.Value(), TagIDs: ids}
}

// refresh re-runs the filter against the repository.
func (l *listScreen) refresh(repo *notes.Repository) {
	var selectedID string
	if n, ok := l.selected(); ok {
		selectedID = n.ID
	}
	l.notes = repo.Filter(l.filter())
	l.total = len(repo.Notes())
	l.cursor = 0
	for i, n := range l.notes {
		if n.ID == selectedID {
			l.cursor = i
			break
		}
	}
	l.ensureCursorVisible()
}

func (l *listScreen) selectNote(id string) {
	for i, n := range l.notes {
		if n.ID == id {
			l.cursor = i
			l.ensureCursorVisible()
			return
		}
	}
}

func (l listScreen) selected() (domain.Note, bool) {
	if l.cursor < 0 || l.cursor >= len(l.notes) {
		return domain.Note{}, false
	}
	return l.notes[l.cursor], true
}

func (l *listScreen) focusField(f listFocus) tea.Cmd {
	l.focus = f
	l.title.Blur()
	l.tags.Blur()
	switch f {
	case listFocusTitle:
		return l.title.Focus()
	case listFocusTags:
		return l.tags.Focus()
	}
	return nil
}

func (l *listScreen) moveCursor(delta int) {
	if len(l.notes) == 0 {
		return
	}
	l.cursor = min(max(l.cursor+delta, 0), len(l.notes)-1)
	l.ensureCursorVisible()
}

// Layout, relative to the top of the list body.

func (l listScreen) titleTop() int { return 1 }

func (l listScreen) tagsTop() int { return l.titleTop() + 3 + 1 }

func (l listScreen) cardsTop() int { return l.tagsTop() + l.tags.Height() + 1 }

func (l listScreen) visibleCards() int {
	return max((l.height-l.cardsTop())/noteCardHeight, 1)
}

func (l *listScreen) ensureCursorVisible() {
	visible := l.visibleCards()
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+visible {
		l.offset = l.cursor - visible + 1
	}
	l.offset = min(max(l.offset, 0), max(len(l.notes)-visible, 0))
}

func (l listScreen) view() string {
	labelStyle := func(f listFocus) lipgloss.Style {
		if l.focus == f {
			return styleFieldLabelFocused()
		}
		return styleFieldLabel()
	}
	boxStyle := styleInputBox()
	if l.focus == listFocusTitle {
		boxStyle = styleInputBoxFocused()
	}

	var b strings.Builder
	b.WriteString(labelStyle(listFocusTitle).Render("Title"))
	b.WriteString("\n")
	b.WriteString(boxStyle.Width(max(l.width-2, 1)).Render(l.title.View()))
	b.WriteString("\n")
	b.WriteString(labelStyle(listFocusTags).Render("Tags"))
	b.WriteString("\n")
	b.WriteString(l.tags.View())
	b.WriteString("\n\n")
	b.WriteString(l.renderCards())
	return b.String()
}

func (l listScreen) renderCards() string {
	if len(l.notes) == 0 {
		if l.total == 0 {
			return styleEmptyState().Render("No notes yet. Press n to write one.")
		}
		return styleEmptyState().Render("No notes match the filter.")
	}

	end := min(l.offset+l.visibleCards(), len(l.notes))
	cards := make([]string, 0, end-l.offset)
	for i := l.offset; i < end; i++ {
		cards = append(cards, l.renderCard(l.notes[i], i == l.cursor && l.focus == listFocusNotes))
	}
	return strings.Join(cards, "\n\n")
}

func (l listScreen) renderCard(n domain.Note, selected bool) string {
	edited := styleStatsDim().Render(FormatRelativeTime(n.UpdatedAt))
	titleMax := max(l.width-lipgloss.Width(edited)-4, 1)
	title := ansi.Truncate(n.Title, titleMax, "…")

	marker := "  "
	titleStyle := styleNoteTitle()
	if selected {
		marker = styleNoteMarker().Render("▸ ")
		titleStyle = styleNoteSelected()
	}
	left := marker + titleStyle.Render(title)
	gap := max(l.width-lipgloss.Width(left)-lipgloss.Width(edited), 1)
	first := left + strings.Repeat(" ", gap) + edited

	second := "  " + styleStatsDim().Render("no tags")
	if len(n.Tags) > 0 {
		chips := make([]string, 0, len(n.Tags))
		for _, t := range n.Tags {
			chips = append(chips, renderPillChip(t.Label, chipStateNormal))
		}
		second = "  " + ansi.Truncate(strings.Join(chips, " "), max(l.width-2, 1), "…")
	}
	return first + "\n" + second
}

// cardAt maps a body row to a note index.
func (l listScreen) cardAt(y int) (int, bool) {
	rel := y - l.cardsTop()
	if rel < 0 || rel%noteCardHeight == noteCardHeight-1 {
		return 0, false
	}
	idx := l.offset + rel/noteCardHeight
	if idx >= min(l.offset+l.visibleCards(), len(l.notes)) {
		return 0, false
	}
	return idx, true
}

func (m *App) updateList(msg tea.KeyMsg) tea.Cmd {
	l := &m.list
	switch l.focus {
	case listFocusTitle:
		switch {
		case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Enter):
			return l.focusField(listFocusNotes)
		case key.Matches(msg, m.keys.Tab):
			return l.focusField(listFocusTags)
		case key.Matches(msg, m.keys.ShiftTab):
			return l.focusField(listFocusNotes)
		}
		before := l.title.Value()
		var cmd tea.Cmd
		l.title, cmd = l.title.Update(msg)
		if l.title.Value() != before {
			l.refresh(m.repo)
		}
		return cmd

	case listFocusTags:
		if key.Matches(msg, m.keys.Escape) && !l.tags.IsOpen() {
			return l.focusField(listFocusNotes)
		}
		var cmd tea.Cmd
		l.tags, cmd = l.tags.Update(msg)
		return cmd
	}

	if handled, cmd := m.handleGlobalKey(msg); handled {
		return cmd
	}
	if !key.Matches(msg, m.keys.DeleteNote) {
		m.pendingDelete = ""
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		l.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		l.moveCursor(1)
	case key.Matches(msg, m.keys.Home):
		l.moveCursor(-len(l.notes))
	case key.Matches(msg, m.keys.End):
		l.moveCursor(len(l.notes))
	case key.Matches(msg, m.keys.Enter):
		if n, ok := l.selected(); ok {
			m.openDetail(n)
		}
	case key.Matches(msg, m.keys.NewNote):
		return m.openForm(nil)
	case key.Matches(msg, m.keys.EditNote):
		if n, ok := l.selected(); ok {
			return m.openForm(&n)
		}
	case key.Matches(msg, m.keys.DeleteNote):
		if n, ok := l.selected(); ok {
			return m.confirmDelete(n)
		}
	case key.Matches(msg, m.keys.FilterTitle):
		return l.focusField(listFocusTitle)
	case key.Matches(msg, m.keys.FilterTags):
		return l.focusField(listFocusTags)
	case key.Matches(msg, m.keys.Tab):
		return l.focusField(listFocusTitle)
	case key.Matches(msg, m.keys.ShiftTab):
		return l.focusField(listFocusTags)
	}
	return nil
}

func (m *App) listSelectTab(msg SelectTabMsg) tea.Cmd {
	if msg.Reverse {
		return m.list.focusField(listFocusTitle)
	}
	return m.list.focusField(listFocusNotes)
}

// listMouse handles a mouse event in list-body coordinates.
func (m *App) listMouse(msg tea.MouseMsg) tea.Cmd {
	l := &m.list
	local := TranslateMouse(msg, 0, l.tagsTop())
	if cmd, handled := routeSelectMouse(&l.tags, local, func() tea.Cmd {
		return l.focusField(listFocusTags)
	}); handled {
		return cmd
	}
	if !isLeftPress(msg) {
		if msg.Action == tea.MouseActionPress && l.focus == listFocusNotes {
			switch msg.Button {
			case tea.MouseButtonWheelUp:
				l.moveCursor(-1)
			case tea.MouseButtonWheelDown:
				l.moveCursor(1)
			}
		}
		return nil
	}

	switch {
	case msg.Y >= l.titleTop() && msg.Y < l.titleTop()+3:
		return l.focusField(listFocusTitle)
	default:
		if idx, ok := l.cardAt(msg.Y); ok {
			cmd := l.focusField(listFocusNotes)
			l.cursor = idx
			return cmd
		}
	}
	return l.focusField(listFocusNotes)
}

func (l listScreen) status() string {
	if l.total == len(l.notes) {
		return fmt.Sprintf("%d notes", l.total)
	}
	return fmt.Sprintf("%d of %d notes", len(l.notes), l.total)
}
