package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type toastKind int

const (
	toastSuccess toastKind = iota
	toastWarning
	toastError
)

const (
	successToastDuration = 4 * time.Second
	errorToastDuration   = 8 * time.Second
)

// toast is the single transient notification shown in the bottom-right
// corner. A newer toast replaces the current one.
type toast struct {
	kind    toastKind
	title   string
	message string
	start   time.Time
}

func (t toast) duration() time.Duration {
	if t.kind == toastError {
		return errorToastDuration
	}
	return successToastDuration
}

func (t toast) expired(now time.Time) bool {
	return t.message == "" || now.Sub(t.start) >= t.duration()
}

func (t toast) remaining(now time.Time) int {
	left := t.duration() - now.Sub(t.start)
	return max(int((left+time.Second-1)/time.Second), 0)
}

// showToast replaces the current toast and starts the countdown tick.
func (m *App) showToast(kind toastKind, title, message string) tea.Cmd {
	first := m.toast.expired(timeNow())
	m.toast = toast{kind: kind, title: title, message: message, start: timeNow()}
	if !first {
		// A tick is already running for the previous toast.
		return nil
	}
	return scheduleToastTick()
}

func (m *App) showError(op string, err error) tea.Cmd {
	if err == nil {
		return nil
	}
	return m.showToast(toastError, "⚠ Could not "+op, shortError(err.Error(), 60))
}

func (m *App) renderToast() string {
	now := timeNow()
	if m.toast.expired(now) {
		return ""
	}
	countdown := styleStatsDim().Render(fmt.Sprintf("[%ds]", m.toast.remaining(now)))
	body := m.toast.message
	width := max(lipgloss.Width(body), lipgloss.Width(m.toast.title), 24)
	pad := max(width-lipgloss.Width(countdown), 0)

	lines := []string{}
	if m.toast.title != "" {
		title := m.toast.title
		if m.toast.kind == toastWarning {
			title = styleWarningText().Render(title)
		}
		lines = append(lines, title)
	}
	lines = append(lines, body, strings.Repeat(" ", pad)+countdown)

	style := styleSuccessToast()
	if m.toast.kind != toastSuccess {
		style = styleErrorToast()
	}
	return style.Render(strings.Join(lines, "\n"))
}
