// Demo program to try the Select component by hand
package main

import (
	"fmt"
	"os"
	"strings"

	"notekeeper/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
)

const (
	assigneeID = "assignee"
	labelsID   = "labels"
)

type model struct {
	assignee ui.Select
	labels   ui.Select
	focus    int
	created  []string
	quit     bool
}

func initialModel() model {
	people := []ui.Option{
		{Label: "Alice", Value: "alice"},
		{Label: "Bob", Value: "bob"},
		{Label: "Carlos", Value: "carlos"},
		{Label: "Diana", Value: "diana"},
		{Label: "Edward", Value: "edward"},
		{Label: "Fiona", Value: "fiona"},
		{Label: "George", Value: "george"},
	}
	labels := []ui.Option{
		{Label: "bug", Value: uuid.NewString()},
		{Label: "feature", Value: uuid.NewString()},
		{Label: "docs", Value: uuid.NewString()},
	}

	return model{
		assignee: ui.NewSelect(people).
			WithID(assigneeID).
			WithPlaceholder("Pick someone…").
			WithWidth(40).
			WithMaxVisible(5),
		labels: ui.NewSelect(labels).
			WithID(labelsID).
			WithMode(ui.ModeMulti).
			WithCreatable(true).
			WithPlaceholder("Add labels…").
			WithWidth(40),
	}
}

func (m model) Init() tea.Cmd {
	return m.assignee.Focus()
}

func (m *model) focused() *ui.Select {
	if m.focus == 1 {
		return &m.labels
	}
	return &m.assignee
}

func (m *model) setFocus(i int) tea.Cmd {
	m.focused().Blur()
	m.focus = i
	return m.focused().Focus()
}

// origins returns the top-left corner of each Select in the view.
func (m model) origins() [2][2]int {
	assigneeTop := 3
	labelsTop := assigneeTop + m.assignee.Height() + 2
	return [2][2]int{{0, assigneeTop}, {0, labelsTop}}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quit = true
			return m, tea.Quit
		}
		if msg.String() == "q" && !m.focused().IsOpen() && !m.focused().InputFocused() {
			m.quit = true
			return m, tea.Quit
		}

	case ui.SelectTabMsg:
		return m, m.setFocus(1 - m.focus)

	case ui.CreateRequestedMsg:
		if msg.ID != labelsID {
			return m, nil
		}
		opt := ui.Option{Label: msg.Option.Label, Value: uuid.NewString()}
		m.labels.SetOptions(append(m.labels.Options(), opt))
		sel := m.labels.Selection().Options()
		m.labels.SetSelection(ui.NewMulti(append(sel, opt)...))
		m.created = append(m.created, opt.Label)
		return m, nil

	case ui.SelectionChangedMsg:
		return m, nil

	case tea.MouseMsg:
		origins := m.origins()
		for i, sel := range []*ui.Select{&m.assignee, &m.labels} {
			local := ui.TranslateMouse(msg, origins[i][0], origins[i][1])
			if !sel.InBounds(local.X, local.Y) {
				continue
			}
			if i != m.focus {
				if msg.Action == tea.MouseActionPress {
					return m, m.setFocus(i)
				}
				return m, nil
			}
			var cmd tea.Cmd
			*sel, cmd = sel.Update(local)
			return m, cmd
		}
		return m, nil
	}

	var cmdA, cmdB tea.Cmd
	m.assignee, cmdA = m.assignee.Update(msg)
	m.labels, cmdB = m.labels.Update(msg)
	return m, tea.Batch(cmdA, cmdB)
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("63"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82")).
			Bold(true)
)

func (m model) View() string {
	if m.quit {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Select Demo"))
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("Assignee") + "\n")
	b.WriteString(m.assignee.View())
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("Labels") + "\n")
	b.WriteString(m.labels.View())
	b.WriteString("\n\n")

	var picked []string
	for _, o := range m.assignee.Selection().Options() {
		picked = append(picked, o.Label)
	}
	for _, o := range m.labels.Selection().Options() {
		picked = append(picked, "#"+o.Label)
	}
	if len(picked) > 0 {
		b.WriteString("Selected: " + selectedStyle.Render(strings.Join(picked, ", ")) + "\n")
	}
	if len(m.created) > 0 {
		b.WriteString("Created: " + strings.Join(m.created, ", ") + "\n")
	}

	b.WriteString(helpStyle.Render("↓ open • type to filter • Enter choose • Backspace remove • Tab next field • q quit"))
	return b.String()
}

func main() {
	p := tea.NewProgram(initialModel(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v", err)
		os.Exit(1)
	}
}
