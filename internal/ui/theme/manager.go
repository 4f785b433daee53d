package theme

import (
	"slices"
	"sync"
)

// registry holds the named palettes and the one in use.
type registry struct {
	mu     sync.RWMutex
	byName map[string]Theme
	names  []string // sorted
	active string
}

var themes = &registry{byName: map[string]Theme{}}

// RegisterTheme adds t under name. The first theme registered is active
// until SetTheme picks another.
func RegisterTheme(name string, t Theme) {
	themes.mu.Lock()
	defer themes.mu.Unlock()
	if _, exists := themes.byName[name]; !exists {
		i, _ := slices.BinarySearch(themes.names, name)
		themes.names = slices.Insert(themes.names, i, name)
	}
	themes.byName[name] = t
	if themes.active == "" {
		themes.active = name
	}
}

// SetTheme activates the named theme and reports whether it exists.
func SetTheme(name string) bool {
	themes.mu.Lock()
	defer themes.mu.Unlock()
	if _, ok := themes.byName[name]; !ok {
		return false
	}
	themes.active = name
	return true
}

// Current returns the active theme, or nil before any is registered.
func Current() Theme {
	themes.mu.RLock()
	defer themes.mu.RUnlock()
	return themes.byName[themes.active]
}

func CurrentName() string {
	themes.mu.RLock()
	defer themes.mu.RUnlock()
	return themes.active
}

// Available lists theme names alphabetically.
func Available() []string {
	themes.mu.RLock()
	defer themes.mu.RUnlock()
	return slices.Clone(themes.names)
}

// CycleTheme activates the alphabetically next theme, wrapping at the end,
// and returns its name.
func CycleTheme() string {
	themes.mu.Lock()
	defer themes.mu.Unlock()
	if len(themes.names) == 0 {
		return ""
	}
	next := slices.Index(themes.names, themes.active) + 1
	themes.active = themes.names[next%len(themes.names)]
	return themes.active
}
