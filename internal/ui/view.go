package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func (m *App) View() string {
	if !m.ready {
		return "Loading notes…"
	}

	var body string
	switch m.screen {
	case ScreenForm:
		body = m.form.view()
	case ScreenDetail:
		body = m.detail.view()
	default:
		body = m.list.view()
	}
	body = fitLines(body, m.bodyWidth(), m.bodyHeight())

	f := newFrame(m.width, m.height)
	f.place(0, 0, m.renderHeader())
	f.place(bodyMargin, headerHeight, body)
	f.place(0, m.height-footerHeight, m.renderFooter())

	if m.tagsOverlay != nil {
		f.placeCentered(m.tagsOverlay.view(), headerHeight, footerHeight)
	}
	if m.showHelp {
		f.placeCentered(renderHelpOverlay(m.keys), headerHeight, footerHeight)
	}
	if t := m.renderToast(); t != "" {
		f.placeBottomRight(t, footerHeight)
	}
	return f.String()
}

func (m *App) renderHeader() string {
	title := "NOTEKEEPER"
	if m.version != "" {
		title = fmt.Sprintf("NOTEKEEPER v%s", m.version)
	}

	var context string
	switch m.screen {
	case ScreenForm:
		context = "New note"
		if m.form.editing() {
			context = "Edit note"
		}
	case ScreenDetail:
		context = m.detail.note.Title
	default:
		context = "Notes"
	}

	left := styleAppHeader().Render(title) + " " + styleNoteTitle().Render(context)
	left = ansi.Truncate(left, max(m.width, 1), "…")
	return left + strings.Repeat(" ", max(m.width-lipgloss.Width(left), 0))
}

func (m *App) footerStatus() string {
	return fmt.Sprintf("%s · %d tags", m.list.status(), len(m.repo.Tags()))
}
