package ui

import (
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/lipgloss"

	"notekeeper/internal/ui/theme"
)

// newBodyTextarea returns the markdown editor used by the note form, without
// prompt or line numbers so the whole box is writable.
func newBodyTextarea(width, height int) textarea.Model {
	ta := textarea.New()
	ta.Prompt = ""
	ta.ShowLineNumbers = false
	ta.Placeholder = "Write markdown…"
	ta.CharLimit = 0
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(theme.Current().TextMuted())
	ta.BlurredStyle.Placeholder = ta.FocusedStyle.Placeholder
	ta.SetWidth(max(width, 1))
	ta.SetHeight(max(height, 1))
	return ta
}
