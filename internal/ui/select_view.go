package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"notekeeper/internal/ui/theme"
)

const (
	selectControlsWidth = 4 // " × ▾"
	selectBoxChrome     = 4 // border + padding on both sides
	selectRowPrefix     = 4 // "▸ ✓ "
	minInputWidth       = 8
)

type rowKind int

const (
	rowHintAbove rowKind = iota
	rowCreate
	rowOption
	rowHintBelow
	rowEmpty
)

// listRow is one line under the box. index is the visible position for
// option rows and CreateRow for the create row.
type listRow struct {
	kind  rowKind
	index int
}

// selectLayout is the geometry shared by View and mouse hit-testing.
type selectLayout struct {
	content    []string // box content lines, controls included
	chipSpans  []elementSpan
	inputSpan  elementSpan
	hasInput   bool
	valueWidth int
	rows       []listRow
}

func (s Select) valueWidth() int {
	w := s.Width - selectBoxChrome - selectControlsWidth
	if w < 4 {
		w = 4
	}
	return w
}

func (s Select) showCreateRow() bool {
	return s.creatable && strings.TrimSpace(s.input.Value()) != ""
}

func (s Select) showInput() bool {
	return s.creatable && (s.focus == selectFocusInput || s.input.Value() != "")
}

func (s Select) layout() selectLayout {
	l := selectLayout{valueWidth: s.valueWidth()}
	labelMax := max(l.valueWidth-lipgloss.Width(chipDismiss)-2, 1)

	var elements []string
	switch sel := s.selection.(type) {
	case Multi:
		for i, opt := range sel.opts {
			state := chipStateNormal
			switch {
			case s.flashValue != "" && opt.Value == s.flashValue:
				state = chipStateFlash
			case i == s.hoverChip:
				state = chipStateHighlight
			}
			label := ansi.Truncate(opt.Label, labelMax, "…")
			elements = append(elements, renderPillChip(label+chipDismiss, state))
		}
	case Single:
		if opt, ok := sel.Selected(); ok {
			elements = append(elements, styleSelectValue().Render(ansi.Truncate(opt.Label, l.valueWidth, "…")))
		}
	}
	chipCount := len(elements)
	if s.mode != ModeMulti {
		chipCount = 0
	}

	switch {
	case s.showInput():
		elements = append(elements, s.inputView(elements, l.valueWidth))
		l.hasInput = true
	case s.selection.Len() == 0:
		elements = append(elements, styleSelectPlaceholder().Render(ansi.Truncate(s.Placeholder, l.valueWidth, "…")))
	}

	lines, spans := wrapElements(elements, l.valueWidth)
	l.chipSpans = spans[:chipCount]
	if l.hasInput {
		l.inputSpan = spans[len(spans)-1]
	}

	for i, line := range lines {
		pad := max(l.valueWidth-lipgloss.Width(line), 0)
		line += strings.Repeat(" ", pad)
		if i == 0 {
			line += " " + s.renderControls()
		} else {
			line += strings.Repeat(" ", selectControlsWidth)
		}
		l.content = append(l.content, line)
	}

	if s.open {
		l.rows = s.listRows()
	}
	return l
}

// inputView renders the creation input in the space left after the chips,
// or on a line of its own when less than minInputWidth cells remain.
func (s Select) inputView(chips []string, width int) string {
	in := s.input
	in.Width = max(width-1, 1)
	if len(chips) > 0 {
		lines, _ := wrapElements(chips, width)
		if rest := width - lipgloss.Width(lines[len(lines)-1]) - 1; rest >= minInputWidth {
			in.Width = rest - 1
		}
	}
	in.SetCursor(in.Position())
	return in.View()
}

func (s Select) listRows() []listRow {
	var rows []listRow
	if s.showCreateRow() {
		rows = append(rows, listRow{kind: rowCreate, index: CreateRow})
	}
	n := len(s.visible)
	if n == 0 {
		if len(rows) == 0 {
			rows = append(rows, listRow{kind: rowEmpty})
		}
		return rows
	}
	if s.scrollOffset > 0 {
		rows = append(rows, listRow{kind: rowHintAbove})
	}
	end := min(s.scrollOffset+s.MaxVisible, n)
	for i := s.scrollOffset; i < end; i++ {
		rows = append(rows, listRow{kind: rowOption, index: i})
	}
	if end < n {
		rows = append(rows, listRow{kind: rowHintBelow})
	}
	return rows
}

func (s Select) renderControls() string {
	clearBtn := styleSelectControl().Render("×")
	if s.selection.Len() > 0 || s.input.Value() != "" {
		clearBtn = styleSelectClear().Render("×")
	}
	caret := "▸"
	if s.open {
		caret = "▾"
	}
	return clearBtn + " " + styleSelectControl().Render(caret)
}

// View implements tea.Model.
func (s Select) View() string {
	l := s.layout()

	boxStyle := styleSelectBox()
	if s.Focused() {
		boxStyle = styleSelectBoxFocused()
	}
	var b strings.Builder
	b.WriteString(boxStyle.Render(strings.Join(l.content, "\n")))

	for _, row := range l.rows {
		b.WriteString("\n")
		b.WriteString(s.renderRow(row))
	}
	return b.String()
}

// Height returns the number of lines View produces.
func (s Select) Height() int {
	l := s.layout()
	return len(l.content) + 2 + len(l.rows)
}

func (s Select) renderRow(row listRow) string {
	labelMax := max(s.Width-selectRowPrefix-2, 1)
	highlighted := s.Highlighted() == row.index

	switch row.kind {
	case rowHintAbove:
		return styleSelectHint().Render("  ▲ more above")
	case rowHintBelow:
		return styleSelectHint().Render("  ▼ more below")
	case rowEmpty:
		if s.creatable {
			return styleSelectNoMatch().Render("  Type to create an option")
		}
		return styleSelectNoMatch().Render("  No options")
	case rowCreate:
		text := "+ Create: " + strings.TrimSpace(s.input.Value())
		text = ansi.Truncate(text, labelMax+2, "…")
		if highlighted {
			return styleSelectHighlight().Width(s.Width).Render("▸ " + text)
		}
		return styleSelectCreate().Width(s.Width).Render("  " + text)
	}

	opt := s.options[s.visible[row.index]]
	selected := s.selection.Contains(opt.Value)
	cursor, check := "  ", "  "
	if highlighted {
		cursor = "▸ "
	}
	if selected {
		check = "✓ "
	}
	text := cursor + check + ansi.Truncate(opt.Label, labelMax, "…")
	switch {
	case highlighted:
		return styleSelectHighlight().Width(s.Width).Render(text)
	case selected:
		return styleSelectSelected().Width(s.Width).Render(text)
	default:
		return styleSelectOption().Width(s.Width).Render(text)
	}
}

// Select styles

func styleSelectBox() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Current().BorderDim()).
		Padding(0, 1)
}

func styleSelectBoxFocused() lipgloss.Style {
	return styleSelectBox().BorderForeground(theme.Current().BorderFocused())
}

func styleSelectValue() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Text())
}

func styleSelectPlaceholder() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().TextMuted()).
		Italic(true)
}

func styleSelectControl() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().TextMuted())
}

func styleSelectClear() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Error())
}

func styleSelectOption() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Text())
}

func styleSelectSelected() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Success())
}

func styleSelectHighlight() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Secondary()).
		Background(theme.Current().BackgroundSecondary()).
		Bold(true)
}

func styleSelectCreate() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Accent())
}

func styleSelectNoMatch() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().BorderNormal()).
		Italic(true)
}

func styleSelectHint() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().TextMuted())
}
