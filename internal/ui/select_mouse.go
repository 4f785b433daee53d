package ui

import tea "github.com/charmbracelet/bubbletea"

// Select mouse coordinates are relative to the top-left corner of its View.
// Hosts shift absolute terminal coordinates with TranslateMouse.

type hitKind int

const (
	hitNone hitKind = iota
	hitBox
	hitChip
	hitInput
	hitClear
	hitCaret
	hitCreate
	hitOption
)

type selectHit struct {
	kind  hitKind
	index int
}

// TranslateMouse shifts msg into the coordinate space of a component whose
// top-left corner is drawn at (x, y).
func TranslateMouse(msg tea.MouseMsg, x, y int) tea.MouseMsg {
	msg.X -= x
	msg.Y -= y
	return msg
}

// InBounds reports whether the relative point (x, y) falls on the Select.
func (s Select) InBounds(x, y int) bool {
	return x >= 0 && x < s.Width && y >= 0 && y < s.Height()
}

func (s Select) hitTest(x, y int) selectHit {
	if x < 0 || y < 0 || x >= s.Width {
		return selectHit{kind: hitNone}
	}
	l := s.layout()
	boxHeight := len(l.content) + 2

	if y < boxHeight {
		line := y - 1
		col := x - 2 // border + padding
		if line < 0 || line >= len(l.content) {
			return selectHit{kind: hitBox}
		}
		if line == 0 {
			switch col {
			case l.valueWidth + 1:
				return selectHit{kind: hitClear}
			case l.valueWidth + 3:
				return selectHit{kind: hitCaret}
			}
		}
		for i, span := range l.chipSpans {
			if span.contains(line, col) {
				return selectHit{kind: hitChip, index: i}
			}
		}
		if l.hasInput && l.inputSpan.contains(line, col) {
			return selectHit{kind: hitInput}
		}
		return selectHit{kind: hitBox}
	}

	rowIdx := y - boxHeight
	if rowIdx >= len(l.rows) {
		return selectHit{kind: hitNone}
	}
	row := l.rows[rowIdx]
	switch row.kind {
	case rowCreate:
		return selectHit{kind: hitCreate, index: CreateRow}
	case rowOption:
		return selectHit{kind: hitOption, index: row.index}
	}
	return selectHit{kind: hitNone}
}

func (s Select) handleMouse(msg tea.MouseMsg) (Select, tea.Cmd) {
	if s.focus == selectFocusNone {
		return s, nil
	}
	hit := s.hitTest(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionMotion:
		s.hoverChip = -1
		switch hit.kind {
		case hitOption, hitCreate:
			s.pointerCursor = hit.index
			s.lastSource = sourcePointer
		case hitChip:
			s.hoverChip = hit.index
		}
		return s, nil

	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			s.scrollOffset--
			s.clampScroll()
		case tea.MouseButtonWheelDown:
			s.scrollOffset++
			s.clampScroll()
		case tea.MouseButtonLeft:
			return s.click(hit)
		}
	}
	return s, nil
}

func (s Select) click(hit selectHit) (Select, tea.Cmd) {
	switch hit.kind {
	case hitChip:
		opts := s.selection.Options()
		if hit.index < len(opts) {
			s.hoverChip = -1
			return s, s.toggleOption(opts[hit.index])
		}

	case hitClear:
		return s, s.Clear()

	case hitCaret:
		s.open = !s.open

	case hitInput:
		return s, s.FocusInput()

	case hitBox:
		if s.creatable {
			return s, s.FocusInput()
		}
		s.open = !s.open

	case hitCreate:
		s.pointerCursor = CreateRow
		s.lastSource = sourcePointer
		return s, s.create()

	case hitOption:
		s.pointerCursor = hit.index
		s.lastSource = sourcePointer
		if hit.index < len(s.visible) {
			return s, s.toggleOption(s.options[s.visible[hit.index]])
		}
	}
	return s, nil
}
