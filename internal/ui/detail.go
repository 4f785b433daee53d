package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"notekeeper/internal/domain"
)

// detailScreen shows one note with its markdown rendered.
type detailScreen struct {
	note     domain.Note
	viewport viewport.Model
	format   string
	width    int
	height   int
}

// detailHeaderHeight covers the title, tag line, timestamps and divider.
const detailHeaderHeight = 4

func (d *detailScreen) setSize(width, height int) {
	d.width = width
	d.height = height
	d.viewport.Width = max(width, 1)
	d.viewport.Height = max(height-detailHeaderHeight, 1)
	d.render()
}

func (d *detailScreen) render() {
	body := d.note.Markdown
	if strings.TrimSpace(body) == "" {
		d.viewport.SetContent(styleEmptyState().Render("This note has no body."))
		return
	}
	renderMarkdown := buildMarkdownRenderer(d.format, max(d.width-2, 10))
	d.viewport.SetContent(renderMarkdown(body))
}

func (d detailScreen) view() string {
	title := styleNoteTitle().Render(ansi.Truncate(d.note.Title, max(d.width, 1), "…"))

	tagLine := styleStatsDim().Render("no tags")
	if len(d.note.Tags) > 0 {
		chips := make([]string, 0, len(d.note.Tags))
		for _, t := range d.note.Tags {
			chips = append(chips, renderPillChip(t.Label, chipStateNormal))
		}
		tagLine = ansi.Truncate(strings.Join(chips, " "), max(d.width, 1), "…")
	}

	stamps := fmt.Sprintf("created %s · updated %s",
		FormatRelativeTime(d.note.CreatedAt), FormatRelativeTime(d.note.UpdatedAt))
	divider := styleHelpDivider().Render(strings.Repeat("─", max(d.width, 1)))

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		tagLine,
		styleStatsDim().Render(stamps),
		divider,
		d.viewport.View(),
	)
}

func (m *App) openDetail(n domain.Note) {
	m.pendingDelete = ""
	m.detail = detailScreen{
		note:     n,
		viewport: viewport.New(max(m.bodyWidth(), 1), max(m.bodyHeight()-detailHeaderHeight, 1)),
		format:   m.outputFormat,
	}
	m.detail.setSize(m.bodyWidth(), m.bodyHeight())
	m.list.selectNote(n.ID)
	m.screen = ScreenDetail
}

func (m *App) updateDetail(msg tea.KeyMsg) tea.Cmd {
	if handled, cmd := m.handleGlobalKey(msg); handled {
		return cmd
	}
	if !key.Matches(msg, m.keys.DeleteNote) {
		m.pendingDelete = ""
	}

	switch {
	case key.Matches(msg, m.keys.Escape):
		m.screen = ScreenList
		return nil
	case key.Matches(msg, m.keys.EditNote):
		n := m.detail.note
		return m.openForm(&n)
	case key.Matches(msg, m.keys.DeleteNote):
		return m.confirmDelete(m.detail.note)
	case key.Matches(msg, m.keys.Copy):
		return m.copyMarkdown(m.detail.note)
	case key.Matches(msg, m.keys.Home):
		m.detail.viewport.GotoTop()
		return nil
	case key.Matches(msg, m.keys.End):
		m.detail.viewport.GotoBottom()
		return nil
	}

	var cmd tea.Cmd
	m.detail.viewport, cmd = m.detail.viewport.Update(msg)
	return cmd
}

func (m *App) copyMarkdown(n domain.Note) tea.Cmd {
	if err := m.clipboard(n.Markdown); err != nil {
		return m.showError("copy to clipboard", err)
	}
	return m.showToast(toastSuccess, "", fmt.Sprintf("Copied “%s” to clipboard.", n.Title))
}

// confirmDelete arms deletion on the first press and deletes on the second.
func (m *App) confirmDelete(n domain.Note) tea.Cmd {
	if m.pendingDelete == n.ID {
		m.pendingDelete = ""
		return deleteNoteCmd(m.repo, n)
	}
	m.pendingDelete = n.ID
	return m.showToast(toastWarning, "Delete “"+n.Title+"”?", "Press d again to delete.")
}
