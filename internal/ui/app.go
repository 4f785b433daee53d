package ui

import (
	"errors"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"notekeeper/internal/config"
	"notekeeper/internal/notes"
)

const (
	headerHeight = 1
	footerHeight = 1
	bodyMargin   = 1
	minBodyWidth = 20
)

// Screen identifies the main view.
type Screen int

const (
	ScreenList Screen = iota
	ScreenForm
	ScreenDetail
)

func (s Screen) String() string {
	switch s {
	case ScreenForm:
		return "form"
	case ScreenDetail:
		return "detail"
	default:
		return "list"
	}
}

// Config configures the UI application.
type Config struct {
	Repository   *notes.Repository
	OutputFormat string // rich, light or plain markdown rendering
	Version      string // shown in the header
	MaxVisible   int    // option rows per Select before scrolling

	// Clipboard and SaveTheme default to the system clipboard and the
	// user config file.
	Clipboard func(string) error
	SaveTheme func(string) error
}

// App implements the Bubble Tea model for notekeeper.
type App struct {
	repo         *notes.Repository
	keys         KeyMap
	version      string
	outputFormat string
	maxVisible   int
	clipboard    func(string) error
	saveTheme    func(string) error

	width  int
	height int
	ready  bool

	screen        Screen
	list          listScreen
	form          formScreen
	detail        detailScreen
	tagsOverlay   *tagsOverlay
	showHelp      bool
	pendingDelete string
	toast         toast
}

// NewApp builds the application around an opened repository.
func NewApp(cfg Config) (*App, error) {
	if cfg.Repository == nil {
		return nil, errors.New("ui: repository is required")
	}
	if cfg.MaxVisible <= 0 {
		cfg.MaxVisible = config.DefaultMaxVisible
	}
	if cfg.Clipboard == nil {
		cfg.Clipboard = clipboard.WriteAll
	}
	if cfg.SaveTheme == nil {
		cfg.SaveTheme = config.SaveTheme
	}

	m := &App{
		repo:         cfg.Repository,
		keys:         DefaultKeyMap(),
		version:      cfg.Version,
		outputFormat: cfg.OutputFormat,
		maxVisible:   cfg.MaxVisible,
		clipboard:    cfg.Clipboard,
		saveTheme:    cfg.SaveTheme,
		screen:       ScreenList,
		list:         newListScreen(cfg.MaxVisible),
	}
	m.list.setTags(m.repo.Tags())
	m.list.refresh(m.repo)
	return m, nil
}

// Init implements tea.Model.
func (m *App) Init() tea.Cmd {
	return nil
}

// Screen reports the active main view.
func (m *App) Screen() Screen {
	return m.screen
}

func (m *App) bodyWidth() int {
	return max(m.width-2*bodyMargin, minBodyWidth)
}

func (m *App) bodyHeight() int {
	return max(m.height-headerHeight-footerHeight, 1)
}

func (m *App) resize() {
	w, h := m.bodyWidth(), m.bodyHeight()
	m.list.setSize(w, h)
	switch m.screen {
	case ScreenForm:
		m.form.setSize(w, h)
	case ScreenDetail:
		m.detail.setSize(w, h)
	}
}

// syncTags pushes the repository's current tags into every open view.
func (m *App) syncTags() {
	tags := m.repo.Tags()
	m.list.setTags(tags)
	m.list.refresh(m.repo)
	if m.screen == ScreenForm {
		m.form.setTags(tags)
		m.form.layoutBody()
	}
	if m.screen == ScreenDetail {
		if n, err := m.repo.Note(m.detail.note.ID); err == nil {
			m.detail.note = n
		}
	}
	if m.tagsOverlay != nil {
		m.tagsOverlay.setTags(tags, m.repo.NoteCountByTag())
	}
}
