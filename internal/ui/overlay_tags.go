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
)

const tagsOverlayWidth = 44

// tagsOverlay lists every tag with its note count and supports inline
// rename and two-step delete.
type tagsOverlay struct {
	tags   []domain.Tag
	counts map[string]int
	cursor int

	renaming      bool
	input         textinput.Model
	pendingDelete string
}

func newTagsOverlay(tags []domain.Tag, counts map[string]int) *tagsOverlay {
	ti := textinput.New()
	ti.Prompt = "› "
	ti.CharLimit = 64
	ti.Width = tagsOverlayWidth - 8
	o := &tagsOverlay{input: ti}
	o.setTags(tags, counts)
	return o
}

func (o *tagsOverlay) setTags(tags []domain.Tag, counts map[string]int) {
	o.tags = tags
	o.counts = counts
	o.cursor = min(o.cursor, max(len(tags)-1, 0))
}

func (o *tagsOverlay) current() (domain.Tag, bool) {
	if o.cursor < 0 || o.cursor >= len(o.tags) {
		return domain.Tag{}, false
	}
	return o.tags[o.cursor], true
}

func (o *tagsOverlay) view() string {
	var b strings.Builder
	b.WriteString(styleOverlayTitle().Render("Edit tags"))
	b.WriteString("\n")
	b.WriteString(styleHelpDivider().Render(strings.Repeat("─", tagsOverlayWidth)))
	b.WriteString("\n")

	if len(o.tags) == 0 {
		b.WriteString(styleEmptyState().Render("No tags yet. Create them from a note."))
	}
	for i, t := range o.tags {
		if i > 0 {
			b.WriteString("\n")
		}
		if i == o.cursor && o.renaming {
			b.WriteString(o.input.View())
			continue
		}
		count := styleStatsDim().Render(fmt.Sprintf("%d", o.counts[t.ID]))
		label := ansi.Truncate(t.Label, tagsOverlayWidth-8, "…")

		marker := "  "
		chip := renderPillChip(label, chipStateNormal)
		if i == o.cursor {
			marker = styleNoteMarker().Render("▸ ")
			chip = renderPillChip(label, chipStateHighlight)
		}
		left := marker + chip
		gap := max(tagsOverlayWidth-lipgloss.Width(left)-lipgloss.Width(count), 1)
		b.WriteString(left + strings.Repeat(" ", gap) + count)
	}
	return styleOverlay().Render(b.String())
}

func (m *App) openTagsOverlay() {
	m.tagsOverlay = newTagsOverlay(m.repo.Tags(), m.repo.NoteCountByTag())
}

func (m *App) updateTagsOverlay(msg tea.KeyMsg) tea.Cmd {
	o := m.tagsOverlay
	if o.renaming {
		switch {
		case key.Matches(msg, m.keys.Escape):
			o.renaming = false
			o.input.Blur()
			return nil
		case key.Matches(msg, m.keys.Enter):
			o.renaming = false
			o.input.Blur()
			tag, ok := o.current()
			label := strings.TrimSpace(o.input.Value())
			if !ok || label == "" || label == tag.Label {
				return nil
			}
			return renameTagCmd(m.repo, tag.ID, label)
		}
		var cmd tea.Cmd
		o.input, cmd = o.input.Update(msg)
		return cmd
	}

	if !key.Matches(msg, m.keys.DeleteTag) {
		o.pendingDelete = ""
	}
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.ManageTags):
		m.tagsOverlay = nil
	case key.Matches(msg, m.keys.Up):
		o.cursor = max(o.cursor-1, 0)
	case key.Matches(msg, m.keys.Down):
		o.cursor = min(o.cursor+1, max(len(o.tags)-1, 0))
	case key.Matches(msg, m.keys.RenameTag):
		if tag, ok := o.current(); ok {
			o.renaming = true
			o.input.SetValue(tag.Label)
			o.input.CursorEnd()
			return o.input.Focus()
		}
	case key.Matches(msg, m.keys.DeleteTag):
		tag, ok := o.current()
		if !ok {
			return nil
		}
		if o.pendingDelete == tag.ID {
			o.pendingDelete = ""
			return deleteTagCmd(m.repo, tag)
		}
		o.pendingDelete = tag.ID
		return m.showToast(toastWarning, "Delete tag “"+tag.Label+"”?",
			fmt.Sprintf("It is on %d notes. Press d again.", o.counts[tag.ID]))
	}
	return nil
}
