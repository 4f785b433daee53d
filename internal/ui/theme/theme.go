// Package theme provides a semantic color system for the notekeeper UI.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines the semantic colors used by every view.
// All methods return AdaptiveColor for automatic light/dark terminal support.
type Theme interface {
	Primary() lipgloss.AdaptiveColor   // Main accent (focused borders, header bg)
	Secondary() lipgloss.AdaptiveColor // Highlighted option rows, links
	Accent() lipgloss.AdaptiveColor    // Titles, create row

	Error() lipgloss.AdaptiveColor
	Warning() lipgloss.AdaptiveColor // Duplicate flash, warnings
	Success() lipgloss.AdaptiveColor // Selected checkmarks, success toasts
	Info() lipgloss.AdaptiveColor    // Tag chips

	Text() lipgloss.AdaptiveColor
	TextMuted() lipgloss.AdaptiveColor
	TextEmphasized() lipgloss.AdaptiveColor

	Background() lipgloss.AdaptiveColor
	BackgroundSecondary() lipgloss.AdaptiveColor // Highlighted rows, elevated surfaces
	BackgroundDarker() lipgloss.AdaptiveColor    // Cards, overlays

	BorderNormal() lipgloss.AdaptiveColor
	BorderFocused() lipgloss.AdaptiveColor
	BorderDim() lipgloss.AdaptiveColor
}
