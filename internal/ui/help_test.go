package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestRenderHelpOverlay(t *testing.T) {
	keys := DefaultKeyMap()
	overlay := ansi.Strip(renderHelpOverlay(keys))

	t.Run("ContainsTitle", func(t *testing.T) {
		if !strings.Contains(overlay, "NOTEKEEPER HELP") {
			t.Error("expected overlay to contain 'NOTEKEEPER HELP'")
		}
	})

	t.Run("ContainsAllSections", func(t *testing.T) {
		for _, section := range []string{"NAVIGATION", "NOTES", "FILTER & TAGS", "GENERAL"} {
			if !strings.Contains(overlay, section) {
				t.Errorf("expected overlay to contain section %q", section)
			}
		}
	})

	t.Run("ContainsKeyHintsFromKeyMap", func(t *testing.T) {
		for _, want := range []string{keys.Save.Help().Key, keys.ManageTags.Help().Desc, keys.Copy.Help().Desc} {
			if !strings.Contains(overlay, want) {
				t.Errorf("expected overlay to contain %q", want)
			}
		}
	})
}
