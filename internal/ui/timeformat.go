package ui

import (
	"fmt"
	"time"
)

var timeNow = time.Now

// FormatRelativeTime describes how long ago t happened in a few cells:
// "just now", "5m ago", "3h ago", "12d ago", then an absolute date.
func FormatRelativeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	now := timeNow()
	if t.After(now) {
		return formatDate(t, now)
	}

	diff := now.Sub(t)
	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff/time.Minute))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff/time.Hour))
	case diff < 30*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff/(24*time.Hour)))
	default:
		return formatDate(t, now)
	}
}

func formatDate(t, now time.Time) string {
	local := t.In(now.Location())
	if local.Year() == now.Year() {
		return local.Format("Jan 2")
	}
	return local.Format("Jan 2, 2006")
}
