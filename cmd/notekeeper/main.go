package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"notekeeper/internal/config"
	"notekeeper/internal/debug"
	"notekeeper/internal/notes"
	"notekeeper/internal/storage"
	"notekeeper/internal/ui"
	"notekeeper/internal/ui/theme"

	tea "github.com/charmbracelet/bubbletea"
)

// memoryStorePath keeps notes in memory for the lifetime of the process.
const memoryStorePath = ":memory:"

func main() {
	if err := config.Initialize(); err != nil {
		fmt.Printf("Error initializing config: %v\n", err)
		os.Exit(1)
	}

	flags := registerFlags(flag.CommandLine)
	flag.Parse()

	if *flags.version {
		printVersion(os.Stdout)
		os.Exit(0)
	}

	runtime := computeRuntimeOptions(flag.CommandLine, flags)

	if err := debug.Init(runtime.debug); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: debug logging disabled: %v\n", err)
	}
	defer debug.Close()

	if runtime.theme != "" && !theme.SetTheme(runtime.theme) {
		fmt.Fprintf(os.Stderr, "Warning: unknown theme %q (available: %s)\n",
			runtime.theme, strings.Join(theme.Available(), ", "))
	}

	if err := run(context.Background(), runtime, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		debug.Close()
		os.Exit(1)
	}
}

func run(ctx context.Context, runtime runtimeOptions, stdout io.Writer) error {
	kv, closeStore, err := openStore(ctx, runtime.dbPath)
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()

	repo, err := notes.Open(ctx, kv)
	if err != nil {
		return fmt.Errorf("load notes: %w", err)
	}

	if runtime.exportPath != "" {
		return exportNotes(repo, runtime.exportPath, stdout)
	}

	appCfg := ui.Config{
		Repository:   repo,
		OutputFormat: runtime.outputFormat,
		Version:      Version,
		MaxVisible:   runtime.maxVisible,
	}
	return runProgram(appCfg, ui.NewApp, func(app *ui.App) programRunner {
		return tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseAllMotion())
	})
}

// openStore opens the SQLite store at path, or an in-memory store for
// ":memory:". An empty path resolves to the per-user default.
func openStore(ctx context.Context, path string) (storage.KV, func() error, error) {
	if path == memoryStorePath {
		return storage.NewMemory(), func() error { return nil }, nil
	}
	if path == "" {
		def, err := config.DefaultStoragePath()
		if err != nil {
			return nil, nil, err
		}
		path = def
	}
	store, err := storage.OpenSQLite(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	debug.Logf("opened store at %s", store.Path())
	return store, store.Close, nil
}

// exportNotes writes every note to path, choosing the format from its
// extension. "-" writes JSON to stdout.
func exportNotes(repo *notes.Repository, path string, stdout io.Writer) error {
	if path == "-" {
		return repo.Export(stdout, notes.FormatJSON)
	}
	format, err := notes.FormatForPath(path)
	if err != nil {
		return err
	}
	//nolint:gosec // G304: export path is supplied by the user
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	if err := repo.Export(f, format); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close export file: %w", err)
	}
	_, err = fmt.Fprintf(stdout, "Exported %d notes to %s\n", len(repo.Notes()), path)
	return err
}

type programRunner interface {
	Run() (tea.Model, error)
}

type programFactory func(*ui.App) programRunner

func runProgram(cfg ui.Config, builder func(ui.Config) (*ui.App, error), factory programFactory) error {
	app, err := builder(cfg)
	if err != nil {
		return fmt.Errorf("initialize UI: %w", err)
	}
	if factory == nil {
		return errors.New("program factory is nil")
	}
	prog := factory(app)
	if prog == nil {
		return errors.New("program is nil")
	}
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("run UI: %w", err)
	}
	return nil
}

type cliFlags struct {
	version      *bool
	dbPath       *string
	theme        *string
	outputFormat *string
	debug        *bool
	export       *string
}

// registerFlags defines the command-line flags with config values as defaults.
func registerFlags(fs *flag.FlagSet) cliFlags {
	return cliFlags{
		version:      fs.Bool("version", false, "Print version information and exit"),
		dbPath:       fs.String("db-path", config.GetString(config.KeyStoragePath), "Path to the notes database (\":memory:\" keeps notes in memory)"),
		theme:        fs.String("theme", config.GetString(config.KeyTheme), "Color theme"),
		outputFormat: fs.String("output-format", config.GetString(config.KeyOutputFormat), "Note body markdown style (rich, light, plain)"),
		debug:        fs.Bool("debug", config.GetBool(config.KeyDebug), "Write a debug log to ~/.notekeeper/debug.log"),
		export:       fs.String("export", "", "Export notes to a .json/.yaml/.yml file (or - for JSON on stdout) and exit"),
	}
}

type runtimeOptions struct {
	dbPath       string
	theme        string
	outputFormat string
	debug        bool
	exportPath   string
	maxVisible   int
}

// computeRuntimeOptions merges configuration with flags the user actually set.
func computeRuntimeOptions(fs *flag.FlagSet, flags cliFlags) runtimeOptions {
	visited := map[string]struct{}{}
	fs.Visit(func(f *flag.Flag) {
		visited[f.Name] = struct{}{}
	})

	opts := runtimeOptions{
		dbPath:       strings.TrimSpace(config.GetString(config.KeyStoragePath)),
		theme:        strings.TrimSpace(config.GetString(config.KeyTheme)),
		outputFormat: strings.TrimSpace(config.GetString(config.KeyOutputFormat)),
		debug:        config.GetBool(config.KeyDebug),
		maxVisible:   config.GetInt(config.KeyMaxVisible),
	}
	if flagWasExplicitlySet(fs, "db-path", visited) {
		opts.dbPath = strings.TrimSpace(*flags.dbPath)
	}
	if flagWasExplicitlySet(fs, "theme", visited) {
		opts.theme = strings.TrimSpace(*flags.theme)
	}
	if flagWasExplicitlySet(fs, "output-format", visited) {
		opts.outputFormat = strings.TrimSpace(*flags.outputFormat)
	}
	if flagWasExplicitlySet(fs, "debug", visited) {
		opts.debug = *flags.debug
	}
	if flags.export != nil {
		opts.exportPath = strings.TrimSpace(*flags.export)
	}
	if opts.maxVisible <= 0 {
		opts.maxVisible = config.DefaultMaxVisible
	}
	return opts
}

func flagWasExplicitlySet(fs *flag.FlagSet, name string, visited map[string]struct{}) bool {
	if _, ok := visited[name]; ok {
		return true
	}
	f := fs.Lookup(name)
	if f == nil {
		return false
	}
	return f.Value.String() != f.DefValue
}
