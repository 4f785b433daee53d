package ui

// Option is one selectable entry of a Select. Value identifies the option
// within one option list; Label is display text and need not be unique.
// An Option with an empty Value is a creation candidate.
type Option struct {
	Label string
	Value string
}

// Mode chooses between single and multiple selection.
type Mode int

const (
	// ModeSingle holds at most one option.
	ModeSingle Mode = iota
	// ModeMulti holds an ordered set of options, unique by Value.
	ModeMulti
)

func (m Mode) String() string {
	if m == ModeMulti {
		return "multi"
	}
	return "single"
}

// Selection is the value a Select reports to its host. It is a closed union
// of Single and Multi; both are immutable, so every change yields a new value.
type Selection interface {
	Mode() Mode
	// Options returns a copy of the selected options in insertion order.
	Options() []Option
	Contains(value string) bool
	Len() int

	toggle(o Option) (Selection, bool)
	cleared() Selection
}

// EmptySelection returns the empty selection for mode.
func EmptySelection(mode Mode) Selection {
	if mode == ModeMulti {
		return Multi{}
	}
	return Single{}
}

// Single is the selection of a single-mode Select. The zero value is "none".
type Single struct {
	opt Option
	set bool
}

// NewSingle returns a Single holding o.
func NewSingle(o Option) Single {
	return Single{opt: o, set: true}
}

// Selected returns the option and whether one is set.
func (s Single) Selected() (Option, bool) {
	return s.opt, s.set
}

func (s Single) Mode() Mode { return ModeSingle }

func (s Single) Options() []Option {
	if !s.set {
		return nil
	}
	return []Option{s.opt}
}

func (s Single) Contains(value string) bool {
	return s.set && s.opt.Value == value
}

func (s Single) Len() int {
	if s.set {
		return 1
	}
	return 0
}

// toggle replaces the selection unless o is already selected.
func (s Single) toggle(o Option) (Selection, bool) {
	if s.Contains(o.Value) {
		return s, false
	}
	return NewSingle(o), true
}

func (s Single) cleared() Selection { return Single{} }

// Multi is the selection of a multi-mode Select.
type Multi struct {
	opts []Option
}

// NewMulti builds a Multi from opts, keeping the first occurrence of each Value.
func NewMulti(opts ...Option) Multi {
	out := make([]Option, 0, len(opts))
	seen := make(map[string]bool, len(opts))
	for _, o := range opts {
		if seen[o.Value] {
			continue
		}
		seen[o.Value] = true
		out = append(out, o)
	}
	return Multi{opts: out}
}

func (m Multi) Mode() Mode { return ModeMulti }

func (m Multi) Options() []Option {
	if len(m.opts) == 0 {
		return nil
	}
	return append([]Option(nil), m.opts...)
}

func (m Multi) Contains(value string) bool {
	for _, o := range m.opts {
		if o.Value == value {
			return true
		}
	}
	return false
}

func (m Multi) Len() int { return len(m.opts) }

// toggle removes o when present (by Value) and appends it otherwise.
func (m Multi) toggle(o Option) (Selection, bool) {
	if m.Contains(o.Value) {
		next := make([]Option, 0, len(m.opts)-1)
		for _, existing := range m.opts {
			if existing.Value != o.Value {
				next = append(next, existing)
			}
		}
		return Multi{opts: next}, true
	}
	next := make([]Option, 0, len(m.opts)+1)
	next = append(next, m.opts...)
	return Multi{opts: append(next, o)}, true
}

func (m Multi) cleared() Selection { return Multi{} }

// coerceSelection converts sel to mode. A multi selection narrowed to single
// keeps its first option.
func coerceSelection(sel Selection, mode Mode) Selection {
	if sel == nil {
		return EmptySelection(mode)
	}
	if sel.Mode() == mode {
		return sel
	}
	opts := sel.Options()
	if mode == ModeMulti {
		return NewMulti(opts...)
	}
	if len(opts) == 0 {
		return Single{}
	}
	return NewSingle(opts[0])
}
