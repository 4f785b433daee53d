package debug

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func useTempLogPath(t *testing.T) string {
	t.Helper()
	resetForTest()

	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, LogDirName, LogFileName)
	origGetLogPath := getLogPath
	getLogPath = func() (string, error) {
		return logPath, nil
	}
	t.Cleanup(func() {
		getLogPath = origGetLogPath
		Close()
		resetForTest()
	})
	return logPath
}

func TestInit_Disabled(t *testing.T) {
	resetForTest()

	if err := Init(false); err != nil {
		t.Fatalf("Init(false) failed: %v", err)
	}
	if Enabled() {
		t.Error("Enabled() should return false when initialized with false")
	}

	// No-ops; must not panic.
	Log("test message")
	Logf("test %s", "formatted")
	Scoped("select")("cursor %d", 3)
}

func TestInit_EnabledWritesLines(t *testing.T) {
	logPath := useTempLogPath(t)

	if err := Init(true); err != nil {
		t.Fatalf("Init(true) failed: %v", err)
	}
	if !Enabled() {
		t.Error("Enabled() should return true when initialized with true")
	}

	Log("plain message")
	Logf("formatted %s %d", "value", 42)
	Scoped("storage")("loaded key %s", "NOTES")

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	text := string(content)
	for _, want := range []string{
		"notekeeper debug log started",
		"plain message",
		"formatted value 42",
		"[storage] loaded key NOTES",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("log file missing %q:\n%s", want, text)
		}
	}
}

func TestInit_TruncatesExistingLog(t *testing.T) {
	logPath := useTempLogPath(t)

	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(logPath, []byte("stale content\n"), 0600); err != nil {
		t.Fatalf("write stale log: %v", err)
	}

	if err := Init(true); err != nil {
		t.Fatalf("Init(true) failed: %v", err)
	}

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if strings.Contains(string(content), "stale content") {
		t.Error("expected previous log content to be truncated")
	}
}

func TestClose_IsIdempotent(t *testing.T) {
	useTempLogPath(t)

	if err := Init(true); err != nil {
		t.Fatalf("Init(true) failed: %v", err)
	}
	Close()
	Close()
}

func TestGetLogPath(t *testing.T) {
	path, err := GetLogPath()
	if err != nil {
		t.Skipf("no home directory available: %v", err)
	}
	if !strings.HasSuffix(path, filepath.Join(LogDirName, LogFileName)) {
		t.Errorf("GetLogPath() = %q, want suffix %q", path, filepath.Join(LogDirName, LogFileName))
	}
}

func resetForTest() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
	enabled = false
	logger = nil
}
