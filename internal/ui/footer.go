package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// footerHint is a short key hint for the footer bar. These are terser than
// the KeyMap help text.
type footerHint struct {
	key  string
	desc string
}

var globalFooterHints = []footerHint{
	{"?", "Help"},
	{"q", "Quit"},
}

var listFooterHints = []footerHint{
	{"↑↓", "Navigate"},
	{"⏎", "Open"},
	{"n", "New"},
	{"/", "Title"},
	{"f", "Tags"},
	{"t", "Edit tags"},
}

var filterFooterHints = []footerHint{
	{"⇥", "Next field"},
	{"Esc", "Back to notes"},
}

var formFooterHints = []footerHint{
	{"⇥", "Next field"},
	{"^S", "Save"},
	{"Esc", "Cancel"},
}

var formTagsFooterHints = []footerHint{
	{"↑↓", "Highlight"},
	{"⏎", "Toggle"},
	{"type", "Create"},
	{"⌫", "Remove last"},
}

var detailFooterHints = []footerHint{
	{"↑↓", "Scroll"},
	{"e", "Edit"},
	{"y", "Copy"},
	{"d d", "Delete"},
	{"Esc", "Back"},
}

var tagsOverlayFooterHints = []footerHint{
	{"↑↓", "Navigate"},
	{"r", "Rename"},
	{"d d", "Delete"},
	{"Esc", "Close"},
}

// footerHints returns the hints for the active screen. Screen-specific hints
// come first; globals are only offered where single-letter keys are live.
func (m *App) footerHints() []footerHint {
	if m.tagsOverlay != nil {
		return tagsOverlayFooterHints
	}
	switch m.screen {
	case ScreenForm:
		if m.form.focus == formFocusTags {
			return append(append([]footerHint{}, formTagsFooterHints...), formFooterHints...)
		}
		return formFooterHints
	case ScreenDetail:
		return append(append([]footerHint{}, detailFooterHints...), globalFooterHints...)
	default:
		if m.list.focus != listFocusNotes {
			return filterFooterHints
		}
		return append(append([]footerHint{}, listFooterHints...), globalFooterHints...)
	}
}

// renderFooter renders pill-style key hints with the note count right-aligned.
func (m *App) renderFooter() string {
	right := styleFooterMuted().Render(m.footerStatus())
	available := m.width - lipgloss.Width(right) - 2

	hints := trimHintsToFit(m.footerHints(), available)
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, keyPill(h.key, h.desc))
	}
	left := strings.Join(parts, "  ")

	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 2)
	return left + strings.Repeat(" ", gap) + right
}

func keyPill(key, desc string) string {
	return styleKeyPill().Render(" "+key+" ") + " " + styleKeyDesc().Render(desc)
}

// trimHintsToFit drops hints from the end until the rendered bar fits.
func trimHintsToFit(hints []footerHint, available int) []footerHint {
	for len(hints) > 0 && hintsWidth(hints) > available {
		hints = hints[:len(hints)-1]
	}
	return hints
}

func hintsWidth(hints []footerHint) int {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, keyPill(h.key, h.desc))
	}
	return lipgloss.Width(strings.Join(parts, "  "))
}
