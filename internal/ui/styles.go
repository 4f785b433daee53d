package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"notekeeper/internal/ui/theme"
)

// Styles are functions so a theme switch takes effect on the next frame.

func styleAppHeader() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Background()).
		Background(theme.Current().Primary()).
		Bold(true).
		Padding(0, 1)
}

func styleStatsDim() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().TextMuted())
}

func styleFieldLabel() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Accent()).
		Bold(true)
}

func styleFieldLabelFocused() lipgloss.Style {
	return styleFieldLabel().Foreground(theme.Current().Primary())
}

func styleInputBox() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Current().BorderDim()).
		Padding(0, 1)
}

func styleInputBoxFocused() lipgloss.Style {
	return styleInputBox().BorderForeground(theme.Current().BorderFocused())
}

func styleNoteTitle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().TextEmphasized()).
		Bold(true)
}

func styleNoteSelected() lipgloss.Style {
	return lipgloss.NewStyle().
		Background(theme.Current().BackgroundSecondary()).
		Foreground(theme.Current().Secondary()).
		Bold(true)
}

func styleNoteMarker() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Secondary())
}

func styleEmptyState() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().TextMuted()).
		Italic(true)
}

func styleWarningText() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Warning()).
		Bold(true)
}

func styleErrorToast() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Current().Error()).
		Foreground(theme.Current().Text()).
		Padding(0, 1)
}

func styleSuccessToast() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Current().Success()).
		Foreground(theme.Current().Text()).
		Padding(0, 1)
}

func styleOverlay() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Current().Primary()).
		Padding(1, 2)
}

func styleOverlayTitle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Accent()).
		Bold(true)
}

// Help overlay styles

func styleHelpOverlay() lipgloss.Style {
	return styleOverlay()
}

func styleHelpTitle() lipgloss.Style {
	return styleOverlayTitle()
}

func styleHelpDivider() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Primary())
}

func styleHelpSectionHeader() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Secondary()).
		Bold(true)
}

func styleHelpUnderline() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Secondary())
}

func styleHelpKey() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Info()).
		Bold(true)
}

func styleHelpDesc() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Text())
}

func styleHelpFooter() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().TextMuted()).
		Italic(true)
}

// Footer bar styles

func styleKeyPill() lipgloss.Style {
	return lipgloss.NewStyle().
		Background(theme.Current().Primary()).
		Foreground(theme.Current().Background()).
		Bold(true)
}

func styleKeyDesc() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().TextMuted())
}

func styleFooterMuted() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().TextMuted())
}

// buildMarkdownRenderer returns a glamour renderer for the output format
// (rich, light, plain). Plain output and renderer failures fall back to
// simple word wrapping.
func buildMarkdownRenderer(format string, width int) func(string) string {
	fallback := func(input string) string {
		return wordwrap.String(input, width)
	}

	style := strings.ToLower(strings.TrimSpace(format))
	if style == "" || style == "rich" {
		style = "dark"
	}
	if style == "plain" {
		return fallback
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fallback
	}
	return func(input string) string {
		out, err := renderer.Render(input)
		if err != nil {
			return fallback(input)
		}
		return strings.TrimSpace(out)
	}
}
