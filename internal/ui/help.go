package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// helpSection represents a group of keybindings for display.
type helpSection struct {
	title string
	rows  [][]string // Each row: [keys, description]
}

func helpRow(b key.Binding) []string {
	h := b.Help()
	return []string{h.Key, h.Desc}
}

// getHelpSections returns the help content organized into sections.
// Text is derived from binding.Help() to keep a single source of truth.
func getHelpSections(keys KeyMap) []helpSection {
	return []helpSection{
		{
			title: "NAVIGATION",
			rows: [][]string{
				helpRow(keys.Up),
				helpRow(keys.Home),
				helpRow(keys.End),
				helpRow(keys.Enter),
				helpRow(keys.Tab),
				helpRow(keys.ShiftTab),
				helpRow(keys.Escape),
			},
		},
		{
			title: "NOTES",
			rows: [][]string{
				helpRow(keys.NewNote),
				helpRow(keys.EditNote),
				helpRow(keys.DeleteNote),
				helpRow(keys.Copy),
				helpRow(keys.Save),
			},
		},
		{
			title: "FILTER & TAGS",
			rows: [][]string{
				helpRow(keys.FilterTitle),
				helpRow(keys.FilterTags),
				helpRow(keys.ManageTags),
				helpRow(keys.RenameTag),
				helpRow(keys.DeleteTag),
			},
		},
		{
			title: "GENERAL",
			rows: [][]string{
				helpRow(keys.Theme),
				helpRow(keys.Help),
				helpRow(keys.Quit),
			},
		},
	}
}

// renderHelpOverlay creates the help modal content.
func renderHelpOverlay(keys KeyMap) string {
	sections := getHelpSections(keys)

	leftCol := lipgloss.JoinVertical(lipgloss.Left,
		renderHelpSectionTable(sections[0]),
		"",
		renderHelpSectionTable(sections[3]),
	)
	rightCol := lipgloss.JoinVertical(lipgloss.Left,
		renderHelpSectionTable(sections[1]),
		"",
		renderHelpSectionTable(sections[2]),
	)
	columns := lipgloss.JoinHorizontal(lipgloss.Top, leftCol, "    ", rightCol)

	title := styleHelpTitle().Render("✦ NOTEKEEPER HELP ✦")
	dividerWidth := max(lipgloss.Width(columns), 40)
	divider := styleHelpDivider().Render(strings.Repeat("─", dividerWidth))
	footer := styleHelpFooter().Render("Press ? or Esc to close")

	content := lipgloss.JoinVertical(lipgloss.Center,
		title,
		divider,
		"",
		columns,
		"",
		footer,
	)
	return styleHelpOverlay().Render(content)
}

// renderHelpSectionTable renders a single help section using lipgloss/table.
func renderHelpSectionTable(section helpSection) string {
	t := table.New().
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 0 {
				return styleHelpKey().Width(14)
			}
			return styleHelpDesc()
		}).
		Rows(section.rows...)

	header := styleHelpSectionHeader().Render(section.title)
	underline := styleHelpUnderline().Render(strings.Repeat("─", len(section.title)))

	// Hidden border adds an empty top row
	tableStr := strings.TrimPrefix(t.String(), "\n")

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		underline,
		tableStr,
	)
}
