package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"notekeeper/internal/ui/theme"
)

// chipFlashClearMsg clears the duplicate flash of one Select.
type chipFlashClearMsg struct {
	ID string
}

const flashDuration = 150 * time.Millisecond

func flashCmd(id string) tea.Cmd {
	return tea.Tick(flashDuration, func(_ time.Time) tea.Msg {
		return chipFlashClearMsg{ID: id}
	})
}

// Chip visual states for pill rendering
type chipState int

const (
	chipStateNormal chipState = iota
	chipStateHighlight
	chipStateFlash
)

// Powerline characters for pill-shaped chips
const (
	pillLeft  = "\ue0b6" // Left half-circle (rounded left edge)
	pillRight = "\ue0b4" // Right half-circle (rounded right edge)
)

// chipDismiss is appended inside every value chip; clicking a chip removes it.
const chipDismiss = " ×"

// renderPillChip renders a label as a pill-shaped chip using powerline glyphs.
func renderPillChip(label string, state chipState) string {
	var bgColor, fgColor lipgloss.TerminalColor

	t := theme.Current()
	switch state {
	case chipStateHighlight:
		bgColor = t.BackgroundSecondary()
		fgColor = t.Text()
	case chipStateFlash:
		bgColor = t.Warning()
		fgColor = t.Text()
	default:
		bgColor = t.Info()
		fgColor = t.Background()
	}

	leftCap := lipgloss.NewStyle().Foreground(bgColor).Render(pillLeft)
	labelStyle := lipgloss.NewStyle().
		Foreground(fgColor).
		Background(bgColor)
	if state != chipStateNormal {
		labelStyle = labelStyle.Bold(true)
	}
	rightCap := lipgloss.NewStyle().Foreground(bgColor).Render(pillRight)

	return leftCap + labelStyle.Render(label) + rightCap
}

// elementSpan records where a wrapped element landed: line index and the
// half-open column range [start, end) within that line.
type elementSpan struct {
	line  int
	start int
	end   int
}

func (s elementSpan) contains(line, col int) bool {
	return s.line == line && col >= s.start && col < s.end
}

// wrapElements flows rendered elements into lines no wider than width,
// separated by single spaces. An element wider than width gets its own line.
func wrapElements(elements []string, width int) ([]string, []elementSpan) {
	var lines []string
	spans := make([]elementSpan, 0, len(elements))
	var current []string
	currentWidth := 0

	for _, el := range elements {
		w := lipgloss.Width(el)
		needed := w
		if len(current) > 0 {
			needed++
		}
		if width > 0 && currentWidth+needed > width && len(current) > 0 {
			lines = append(lines, strings.Join(current, " "))
			current = nil
			currentWidth = 0
			needed = w
		}
		start := currentWidth
		if len(current) > 0 {
			start++
		}
		spans = append(spans, elementSpan{line: len(lines), start: start, end: start + w})
		current = append(current, el)
		currentWidth += needed
	}
	if len(current) > 0 || len(lines) == 0 {
		lines = append(lines, strings.Join(current, " "))
	}
	return lines, spans
}
