package ui

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"notekeeper/internal/debug"
)

// CreateRow is the highlight index of the virtual "+ Create" row that sits
// above the options of a creatable Select.
const CreateRow = -1

const (
	defaultSelectWidth      = 40
	defaultSelectMaxVisible = 6
	minSelectWidth          = 16
)

var selectLog = debug.Scoped("select")

// SelectionChangedMsg carries the complete new selection after every change.
type SelectionChangedMsg struct {
	ID        string
	Selection Selection
}

// CreateRequestedMsg asks the host to create an option. Option.Value is
// always empty; the host assigns one and feeds the result back through
// SetOptions and SetSelection.
type CreateRequestedMsg struct {
	ID     string
	Option Option
}

// SelectTabMsg reports Tab / Shift+Tab so the host can move focus.
type SelectTabMsg struct {
	ID      string
	Reverse bool
}

type selectFocus int

const (
	selectFocusNone selectFocus = iota
	selectFocusContainer
	selectFocusInput
)

// inputSource records which device moved the highlight last.
type inputSource int

const (
	sourceKeyboard inputSource = iota
	sourcePointer
)

// Select is a searchable single/multi-select combobox with optional
// creation of new options from typed text.
type Select struct {
	// Configuration (set at creation)
	ID          string
	Placeholder string
	Width       int // Visual width including border
	MaxVisible  int // Option rows shown at once

	mode      Mode
	creatable bool

	options   []Option
	visible   []int // indexes into options that match the creation buffer
	selection Selection
	input     textinput.Model
	focus     selectFocus
	open      bool

	keyCursor     int
	pointerCursor int
	lastSource    inputSource
	scrollOffset  int
	hoverChip     int
	flashValue    string
}

// NewSelect creates a single-mode, non-creatable Select over options.
func NewSelect(options []Option) Select {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = ""
	ti.CharLimit = 64

	s := Select{
		Placeholder: "Select…",
		Width:       defaultSelectWidth,
		MaxVisible:  defaultSelectMaxVisible,
		mode:        ModeSingle,
		selection:   Single{},
		input:       ti,
		hoverChip:   -1,
	}
	s.syncInputWidth()
	s.SetOptions(options)
	return s
}

// WithID sets the identifier echoed in every message the Select emits.
func (s Select) WithID(id string) Select {
	s.ID = id
	return s
}

// WithMode switches between single and multi selection, converting the
// current selection.
func (s Select) WithMode(m Mode) Select {
	s.mode = m
	s.selection = coerceSelection(s.selection, m)
	return s
}

// WithCreatable enables the creation input and the "+ Create" row.
func (s Select) WithCreatable(creatable bool) Select {
	s.creatable = creatable
	if !creatable {
		s.input.SetValue("")
		s.input.Blur()
		if s.focus == selectFocusInput {
			s.focus = selectFocusContainer
		}
	}
	s.refilter()
	return s
}

// WithWidth sets the display width.
func (s Select) WithWidth(w int) Select {
	if w < minSelectWidth {
		w = minSelectWidth
	}
	s.Width = w
	s.syncInputWidth()
	return s
}

// syncInputWidth keeps the creation input inside the value column. One cell
// is left for the cursor; longer text scrolls.
func (s *Select) syncInputWidth() {
	s.input.Width = max(s.valueWidth()-1, 1)
}

// WithMaxVisible sets how many option rows are shown before scrolling.
func (s Select) WithMaxVisible(n int) Select {
	if n < 1 {
		n = 1
	}
	s.MaxVisible = n
	s.ensureVisible()
	return s
}

// WithPlaceholder sets the text shown when nothing is selected.
func (s Select) WithPlaceholder(p string) Select {
	s.Placeholder = p
	return s
}

// Init implements tea.Model.
func (s Select) Init() tea.Cmd {
	return nil
}

// SetOptions replaces the option list. Cursors are clamped to the new length;
// the selection is left untouched even when options disappear.
func (s *Select) SetOptions(options []Option) {
	s.options = append([]Option(nil), options...)
	s.refilter()
}

// SetSelection replaces the selection. A selection of the other mode is
// converted; nil means empty.
func (s *Select) SetSelection(sel Selection) {
	s.selection = coerceSelection(sel, s.mode)
}

// Focus gives keyboard focus to the container and opens the list. The
// highlight is reset when the Select was not focused before.
func (s *Select) Focus() tea.Cmd {
	if s.focus == selectFocusNone {
		s.resetCursor()
	}
	s.focus = selectFocusContainer
	s.open = true
	s.input.Blur()
	return nil
}

// FocusInput focuses the creation input. It is a no-op unless creatable.
func (s *Select) FocusInput() tea.Cmd {
	if !s.creatable {
		return s.Focus()
	}
	if s.focus == selectFocusNone {
		s.resetCursor()
	}
	s.focus = selectFocusInput
	s.open = true
	s.keyCursor = s.clampCursor(CreateRow)
	s.lastSource = sourceKeyboard
	s.ensureVisible()
	return s.input.Focus()
}

// Blur removes focus and closes the list.
func (s *Select) Blur() {
	s.focus = selectFocusNone
	s.open = false
	s.hoverChip = -1
	s.input.Blur()
}

// Clear empties the selection and the creation buffer. A change message is
// returned only when something was selected.
func (s *Select) Clear() tea.Cmd {
	if s.input.Value() != "" {
		s.input.SetValue("")
		s.refilter()
	}
	if s.selection.Len() == 0 {
		return nil
	}
	s.selection = s.selection.cleared()
	selectLog("%s: cleared", s.ID)
	return s.changed()
}

// FlashValue briefly highlights the chip holding value, used by hosts when a
// creation request resolved to an option that was already selected.
func (s *Select) FlashValue(value string) tea.Cmd {
	if !s.selection.Contains(value) {
		return nil
	}
	s.flashValue = value
	return flashCmd(s.ID)
}

// Update implements tea.Model.
func (s Select) Update(msg tea.Msg) (Select, tea.Cmd) {
	switch msg := msg.(type) {
	case chipFlashClearMsg:
		if msg.ID == s.ID {
			s.flashValue = ""
		}
		return s, nil

	case tea.MouseMsg:
		return s.handleMouse(msg)

	case tea.KeyMsg:
		switch s.focus {
		case selectFocusContainer:
			return s.handleContainerKey(msg)
		case selectFocusInput:
			return s.handleInputKey(msg)
		}
		return s, nil
	}

	// Cursor blink and friends
	if s.focus == selectFocusInput {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s Select) handleContainerKey(msg tea.KeyMsg) (Select, tea.Cmd) {
	switch msg.Type {
	case tea.KeyDown, tea.KeyCtrlN:
		s.move(1)
		return s, nil

	case tea.KeyUp, tea.KeyCtrlP:
		s.move(-1)
		return s, nil

	case tea.KeyEnter, tea.KeySpace:
		if !s.open {
			s.open = true
			return s, nil
		}
		return s, s.activate()

	case tea.KeyTab:
		return s, s.tab(false)

	case tea.KeyShiftTab:
		return s, s.tab(true)

	case tea.KeyEsc:
		s.open = false
		return s, nil

	case tea.KeyBackspace:
		return s, s.removeLast()

	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return s, nil
		}
		if s.creatable {
			return s.routeToInput(msg)
		}
		s.jumpTo(msg.Runes[0])
		return s, nil
	}
	return s, nil
}

func (s Select) handleInputKey(msg tea.KeyMsg) (Select, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		return s, s.create()

	case tea.KeyDown:
		s.input.Blur()
		s.focus = selectFocusContainer
		s.open = true
		s.keyCursor = s.clampCursor(0)
		s.lastSource = sourceKeyboard
		s.ensureVisible()
		return s, nil

	case tea.KeyEsc:
		if s.input.Value() != "" {
			s.input.SetValue("")
			s.refilter()
			return s, nil
		}
		s.input.Blur()
		s.focus = selectFocusContainer
		return s, nil

	case tea.KeyTab:
		return s, s.tab(false)

	case tea.KeyShiftTab:
		return s, s.tab(true)

	case tea.KeyBackspace:
		if s.input.Value() == "" {
			return s, s.removeLast()
		}
	}

	before := s.input.Value()
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	if s.input.Value() != before {
		s.bufferChanged()
	}
	return s, cmd
}

// routeToInput moves focus from the container into the creation input and
// replays the key that triggered the move.
func (s Select) routeToInput(msg tea.KeyMsg) (Select, tea.Cmd) {
	blink := s.input.Focus()
	s.focus = selectFocusInput
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	s.bufferChanged()
	return s, tea.Batch(blink, cmd)
}

// bufferChanged highlights the create row, or the first option once the
// trimmed buffer is empty again.
func (s *Select) bufferChanged() {
	s.open = true
	s.keyCursor = CreateRow
	s.lastSource = sourceKeyboard
	s.scrollOffset = 0
	s.refilter()
}

// move steps the keyboard cursor from the effective highlight, clamping at
// both ends. A closed list only opens.
func (s *Select) move(delta int) {
	if !s.open {
		s.open = true
		return
	}
	s.keyCursor = s.clampCursor(s.Highlighted() + delta)
	s.lastSource = sourceKeyboard
	s.ensureVisible()
}

// jumpTo highlights the next option whose label starts with r.
func (s *Select) jumpTo(r rune) {
	n := len(s.visible)
	if n == 0 {
		return
	}
	r = unicode.ToLower(r)
	start := s.Highlighted()
	for step := 1; step <= n; step++ {
		i := ((start+step)%n + n) % n
		label := []rune(strings.ToLower(s.options[s.visible[i]].Label))
		if len(label) > 0 && label[0] == r {
			s.open = true
			s.keyCursor = i
			s.lastSource = sourceKeyboard
			s.ensureVisible()
			return
		}
	}
}

// activate acts on the highlighted row: the create row creates, an option
// row toggles.
func (s *Select) activate() tea.Cmd {
	idx := s.Highlighted()
	if idx == CreateRow {
		return s.create()
	}
	if idx < 0 || idx >= len(s.visible) {
		return nil
	}
	return s.toggleOption(s.options[s.visible[idx]])
}

func (s *Select) toggleOption(o Option) tea.Cmd {
	next, changed := s.selection.toggle(o)
	if !changed {
		return nil
	}
	s.selection = next
	if s.mode == ModeSingle {
		s.open = false
	}
	selectLog("%s: toggled %q (%d selected)", s.ID, o.Value, next.Len())
	return s.changed()
}

func (s *Select) removeLast() tea.Cmd {
	if s.mode != ModeMulti {
		return nil
	}
	opts := s.selection.Options()
	if len(opts) == 0 {
		return nil
	}
	return s.toggleOption(opts[len(opts)-1])
}

// create emits a creation request for the trimmed buffer. Blank text is
// ignored.
func (s *Select) create() tea.Cmd {
	if !s.creatable {
		return nil
	}
	label := strings.TrimSpace(s.input.Value())
	if label == "" {
		return nil
	}
	s.input.SetValue("")
	s.refilter()
	selectLog("%s: create requested for %q", s.ID, label)
	id := s.ID
	return func() tea.Msg {
		return CreateRequestedMsg{ID: id, Option: Option{Label: label}}
	}
}

func (s Select) changed() tea.Cmd {
	id, sel := s.ID, s.selection
	return func() tea.Msg {
		return SelectionChangedMsg{ID: id, Selection: sel}
	}
}

func (s Select) tab(reverse bool) tea.Cmd {
	id := s.ID
	return func() tea.Msg {
		return SelectTabMsg{ID: id, Reverse: reverse}
	}
}

func (s *Select) resetCursor() {
	s.keyCursor = s.clampCursor(0)
	if single, ok := s.selection.(Single); ok {
		if opt, set := single.Selected(); set {
			for i, idx := range s.visible {
				if s.options[idx].Value == opt.Value {
					s.keyCursor = i
					break
				}
			}
		}
	}
	s.pointerCursor = s.keyCursor
	s.lastSource = sourceKeyboard
	s.scrollOffset = 0
	s.hoverChip = -1
	s.ensureVisible()
}

// refilter recomputes the visible options from the buffer and clamps cursors.
func (s *Select) refilter() {
	query := ""
	if s.creatable {
		query = s.input.Value()
	}
	s.visible = matchOptions(s.options, query)
	s.keyCursor = s.clampCursor(s.keyCursor)
	s.pointerCursor = s.clampCursor(s.pointerCursor)
	s.ensureVisible()
}

// minIndex is CreateRow only while the create row is drawn.
func (s Select) minIndex() int {
	if s.showCreateRow() {
		return CreateRow
	}
	return 0
}

func (s Select) clampCursor(i int) int {
	if i > len(s.visible)-1 {
		i = len(s.visible) - 1
	}
	if i < s.minIndex() {
		i = s.minIndex()
	}
	return i
}

// ensureVisible scrolls the option window so the highlight is on screen.
func (s *Select) ensureVisible() {
	if s.MaxVisible < 1 {
		s.MaxVisible = 1
	}
	cur := s.Highlighted()
	switch {
	case cur < 0:
		s.scrollOffset = 0
	case cur < s.scrollOffset:
		s.scrollOffset = cur
	case cur >= s.scrollOffset+s.MaxVisible:
		s.scrollOffset = cur - s.MaxVisible + 1
	}
	s.clampScroll()
}

func (s *Select) clampScroll() {
	maxOffset := max(len(s.visible)-s.MaxVisible, 0)
	s.scrollOffset = min(max(s.scrollOffset, 0), maxOffset)
}

// Highlighted returns the effective highlight: whichever of the keyboard and
// pointer cursors moved last. CreateRow means the create row.
func (s Select) Highlighted() int {
	if s.lastSource == sourcePointer {
		return s.pointerCursor
	}
	return s.keyCursor
}

// HighlightedOption returns the option under the effective highlight.
func (s Select) HighlightedOption() (Option, bool) {
	idx := s.Highlighted()
	if idx < 0 || idx >= len(s.visible) {
		return Option{}, false
	}
	return s.options[s.visible[idx]], true
}

// Selection returns the current selection.
func (s Select) Selection() Selection {
	return s.selection
}

// Options returns a copy of the option list.
func (s Select) Options() []Option {
	return append([]Option(nil), s.options...)
}

// VisibleOptions returns the options matching the creation buffer, in the
// order they are listed.
func (s Select) VisibleOptions() []Option {
	out := make([]Option, len(s.visible))
	for i, idx := range s.visible {
		out[i] = s.options[idx]
	}
	return out
}

// Mode returns the selection mode.
func (s Select) Mode() Mode {
	return s.mode
}

// Creatable reports whether free-text creation is enabled.
func (s Select) Creatable() bool {
	return s.creatable
}

// Buffer returns the creation input text.
func (s Select) Buffer() string {
	return s.input.Value()
}

// IsOpen returns whether the option list is visible.
func (s Select) IsOpen() bool {
	return s.open
}

// Focused returns whether the container or the creation input has focus.
func (s Select) Focused() bool {
	return s.focus != selectFocusNone
}

// InputFocused returns whether the creation input has focus.
func (s Select) InputFocused() bool {
	return s.focus == selectFocusInput
}

// KeyboardCursor returns the keyboard highlight (for testing).
func (s Select) KeyboardCursor() int {
	return s.keyCursor
}

// PointerCursor returns the pointer highlight (for testing).
func (s Select) PointerCursor() int {
	return s.pointerCursor
}

// ScrollOffset returns the first visible option row (for testing).
func (s Select) ScrollOffset() int {
	return s.scrollOffset
}
