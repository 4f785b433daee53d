package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"notekeeper/internal/debug"
	"notekeeper/internal/ui/theme"
)

var appLog = debug.Scoped("app")

func (m *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()
		return m, nil

	case toastTickMsg:
		if m.toast.expired(timeNow()) {
			m.toast = toast{}
			return m, nil
		}
		return m, scheduleToastTick()

	case noteSavedMsg:
		appLog("saved note %s (created=%t)", msg.note.ID, msg.created)
		m.syncTags()
		m.openDetail(msg.note)
		text := "Saved “" + msg.note.Title + "”"
		if msg.created {
			text = "Created “" + msg.note.Title + "”"
		}
		return m, m.showToast(toastSuccess, "", text)

	case noteDeletedMsg:
		m.syncTags()
		m.screen = ScreenList
		return m, m.showToast(toastSuccess, "", "Deleted “"+msg.title+"”")

	case tagCreatedMsg:
		return m, m.handleTagCreated(msg)

	case tagRenamedMsg:
		m.syncTags()
		return m, m.showToast(toastSuccess, "", "Renamed tag to “"+msg.label+"”")

	case tagDeletedMsg:
		m.syncTags()
		return m, m.showToast(toastSuccess, "", "Deleted tag “"+msg.label+"”")

	case storageErrMsg:
		appLog("%s failed: %v", msg.op, msg.err)
		return m, m.showError(msg.op, msg.err)

	case SelectionChangedMsg:
		// Views read Selection() from the widget; the payload may be stale
		// when several changes are queued.
		if msg.ID == filterTagsID {
			m.list.refresh(m.repo)
		}
		return m, nil

	case CreateRequestedMsg:
		if msg.ID == noteTagsID {
			return m, ensureTagCmd(m.repo, msg.ID, msg.Option.Label)
		}
		return m, nil

	case SelectTabMsg:
		switch msg.ID {
		case filterTagsID:
			return m, m.listSelectTab(msg)
		case noteTagsID:
			return m, m.formSelectTab(msg)
		}
		return m, nil

	case chipFlashClearMsg:
		m.list.tags, _ = m.list.tags.Update(msg)
		m.form.tags, _ = m.form.tags.Update(msg)
		return m, nil

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	return m, m.forwardToFocused(msg)
}

func (m *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		return tea.Quit
	}
	if m.showHelp {
		if key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Escape) {
			m.showHelp = false
		}
		return nil
	}
	if m.tagsOverlay != nil {
		return m.updateTagsOverlay(msg)
	}
	switch m.screen {
	case ScreenForm:
		return m.updateForm(msg)
	case ScreenDetail:
		return m.updateDetail(msg)
	default:
		return m.updateList(msg)
	}
}

// handleGlobalKey handles keys shared by the list and detail screens. It
// is only consulted when no text field has focus.
func (m *App) handleGlobalKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return true, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return true, nil
	case key.Matches(msg, m.keys.ManageTags):
		m.openTagsOverlay()
		return true, nil
	case key.Matches(msg, m.keys.Theme):
		name := theme.CycleTheme()
		appLog("theme switched to %s", name)
		if m.screen == ScreenDetail {
			m.detail.render()
		}
		if err := m.saveTheme(name); err != nil {
			return true, m.showError("save theme", err)
		}
		return true, m.showToast(toastSuccess, "", "Theme: "+name)
	}
	return false, nil
}

// forwardToFocused delivers non-input messages such as cursor blinks to the
// field that has focus.
func (m *App) forwardToFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if m.tagsOverlay != nil && m.tagsOverlay.renaming {
		m.tagsOverlay.input, cmd = m.tagsOverlay.input.Update(msg)
		return cmd
	}
	switch m.screen {
	case ScreenForm:
		f := &m.form
		switch f.focus {
		case formFocusTitle:
			f.title, cmd = f.title.Update(msg)
		case formFocusTags:
			f.tags, cmd = f.tags.Update(msg)
		case formFocusBody:
			f.body, cmd = f.body.Update(msg)
		}
	case ScreenList:
		if m.list.focus == listFocusTitle {
			m.list.title, cmd = m.list.title.Update(msg)
		}
	}
	return cmd
}

func (m *App) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.showHelp || m.tagsOverlay != nil {
		return nil
	}
	local := TranslateMouse(msg, bodyMargin, headerHeight)
	switch m.screen {
	case ScreenForm:
		return m.formMouse(local)
	case ScreenDetail:
		var cmd tea.Cmd
		m.detail.viewport, cmd = m.detail.viewport.Update(msg)
		return cmd
	default:
		return m.listMouse(local)
	}
}

func isLeftPress(msg tea.MouseMsg) bool {
	return msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft
}

// routeSelectMouse delivers a mouse event, already relative to sel, to a
// Select embedded in a form. A press on an unfocused Select focuses it
// through focus; presses on chips and the clear button act at once. It
// reports false when the event belongs to the host.
func routeSelectMouse(sel *Select, msg tea.MouseMsg, focus func() tea.Cmd) (tea.Cmd, bool) {
	inside := sel.InBounds(msg.X, msg.Y)
	if sel.Focused() {
		if !inside && isLeftPress(msg) {
			return nil, false
		}
		var cmd tea.Cmd
		*sel, cmd = sel.Update(msg)
		return cmd, true
	}
	if !inside || !isLeftPress(msg) {
		return nil, false
	}

	focusCmd := focus()
	var cmd tea.Cmd
	switch hit := sel.hitTest(msg.X, msg.Y); hit.kind {
	case hitChip, hitClear:
		*sel, cmd = sel.Update(msg)
	case hitBox, hitInput:
		if sel.Creatable() {
			cmd = sel.FocusInput()
		}
	}
	return tea.Batch(focusCmd, cmd), true
}
