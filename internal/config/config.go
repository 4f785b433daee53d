// Package config loads notekeeper settings from defaults, YAML files,
// NK_* environment variables and command-line overrides, in that order.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// Configuration keys.
const (
	KeyStoragePath  = "storage.path"
	KeyOutputFormat = "output.format"
	KeyTheme        = "theme"
	KeyDebug        = "debug"
	KeyMaxVisible   = "ui.max-visible"
)

const (
	// DefaultMaxVisible is the number of option rows a Select shows before scrolling.
	DefaultMaxVisible = 6
	// DirName is the per-user and per-project configuration directory.
	DirName   = ".notekeeper"
	fileName  = "config.yaml"
	envPrefix = "NK"
)

var defaults = map[string]any{
	KeyStoragePath:  "",
	KeyOutputFormat: "rich",
	KeyTheme:        "tokyonight",
	KeyDebug:        false,
	KeyMaxVisible:   DefaultMaxVisible,
}

var errNotLoaded = errors.New("configuration not loaded")

// Option changes where Initialize looks for configuration files.
type Option func(*sources)

type sources struct {
	workDir     string
	projectFile string
	userFile    string
}

// WithWorkingDir sets the directory the project file search starts from.
func WithWorkingDir(dir string) Option {
	return func(s *sources) { s.workDir = dir }
}

// WithProjectConfig skips the search and uses path as the project file.
func WithProjectConfig(path string) Option {
	return func(s *sources) { s.projectFile = path }
}

// WithUserConfig replaces ~/.notekeeper/config.yaml.
func WithUserConfig(path string) Option {
	return func(s *sources) { s.userFile = path }
}

var loaded struct {
	sync.RWMutex
	once sync.Once
	v    *viper.Viper
	err  error
}

// saveTarget redirects SaveTheme in tests.
var saveTarget string

// Initialize loads configuration once per process. Later calls return the
// first result and ignore their options.
func Initialize(opts ...Option) error {
	loaded.once.Do(func() {
		var src sources
		for _, opt := range opts {
			opt(&src)
		}
		v, err := load(src)
		loaded.Lock()
		loaded.v, loaded.err = v, err
		loaded.Unlock()
	})
	loaded.RLock()
	defer loaded.RUnlock()
	return loaded.err
}

// ApplyOverrides sets values on top of every other layer.
func ApplyOverrides(values map[string]any) error {
	if len(values) == 0 {
		return nil
	}
	if err := Initialize(); err != nil {
		return err
	}
	loaded.Lock()
	defer loaded.Unlock()
	if loaded.v == nil {
		return errNotLoaded
	}
	for key, value := range values {
		loaded.v.Set(key, value)
	}
	return nil
}

// Set overrides a single key at runtime.
func Set(key string, value any) error {
	return ApplyOverrides(map[string]any{key: value})
}

// GetString returns the string at key, or "" when configuration failed to load.
func GetString(key string) string { return read(key, (*viper.Viper).GetString) }

// GetBool returns the bool at key.
func GetBool(key string) bool { return read(key, (*viper.Viper).GetBool) }

// GetInt returns the int at key.
func GetInt(key string) int { return read(key, (*viper.Viper).GetInt) }

func read[T any](key string, get func(*viper.Viper, string) T) T {
	var zero T
	if err := Initialize(); err != nil {
		return zero
	}
	loaded.RLock()
	defer loaded.RUnlock()
	if loaded.v == nil {
		return zero
	}
	return get(loaded.v, key)
}

// DefaultStoragePath returns ~/.notekeeper/notes.db.
func DefaultStoragePath() (string, error) {
	return inHomeDir("notes.db")
}

func inHomeDir(name string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determine user home: %w", err)
	}
	return filepath.Join(home, DirName, name), nil
}

func load(src sources) (*viper.Viper, error) {
	if err := src.resolve(); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigType("yaml")
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	layers := []struct{ name, path string }{
		{"user", src.userFile},
		{"project", src.projectFile},
	}
	for _, layer := range layers {
		if err := mergeFile(v, layer.path); err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.name, err)
		}
	}
	return v, nil
}

// resolve fills in the working directory and both file locations.
func (s *sources) resolve() error {
	if strings.TrimSpace(s.workDir) == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("determine working directory: %w", err)
		}
		s.workDir = wd
	}
	if strings.TrimSpace(s.userFile) == "" {
		path, err := inHomeDir(fileName)
		if err != nil {
			return err
		}
		s.userFile = path
	}
	if strings.TrimSpace(s.projectFile) == "" {
		path, err := nearestProjectFile(s.workDir)
		if err != nil {
			return err
		}
		s.projectFile = path
	}
	return nil
}

// mergeFile merges a YAML file into v. Missing and empty files are skipped.
func mergeFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	switch info, err := os.Stat(path); {
	case errors.Is(err, fs.ErrNotExist):
		return nil
	case err != nil:
		return err
	case info.IsDir():
		return fmt.Errorf("%s is a directory", path)
	}

	//nolint:gosec // G304: reading the user's own config files
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := v.MergeConfig(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// nearestProjectFile walks up from dir looking for .notekeeper/config.yaml.
// It returns "" when the filesystem root is reached first.
func nearestProjectFile(dir string) (string, error) {
	if strings.TrimSpace(dir) == "" {
		return "", nil
	}
	for {
		candidate := filepath.Join(dir, DirName, fileName)
		info, err := os.Stat(candidate)
		switch {
		case err == nil && info.IsDir():
			return "", fmt.Errorf("%s is a directory", candidate)
		case err == nil:
			return candidate, nil
		case !errors.Is(err, fs.ErrNotExist):
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func reset() {
	loaded.Lock()
	defer loaded.Unlock()
	loaded.v = nil
	loaded.err = nil
	loaded.once = sync.Once{}
	saveTarget = ""
}

// ResetForTesting reloads configuration from an empty temp directory so
// tests in other packages see only defaults. Call the returned func when done.
func ResetForTesting(t interface{ TempDir() string }) func() {
	reset()
	dir := t.TempDir()
	_ = Initialize(WithWorkingDir(dir), WithUserConfig(filepath.Join(dir, fileName)))
	return reset
}

// SaveTheme writes the theme name into the project file when the working
// directory has one, otherwise into the user file.
func SaveTheme(name string) error {
	path, err := themeFile()
	if err != nil {
		return fmt.Errorf("find config path: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(path)
	if _, statErr := os.Stat(path); statErr == nil {
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
	}
	v.Set(KeyTheme, name)

	//nolint:gosec // G301: config directory uses standard permissions
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func themeFile() (string, error) {
	if wd, err := os.Getwd(); err == nil {
		if path, err := nearestProjectFile(wd); err == nil && path != "" {
			return path, nil
		}
	}
	if saveTarget != "" {
		return saveTarget, nil
	}
	return inHomeDir(fileName)
}
