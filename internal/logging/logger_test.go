package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// =============================================================================
// Logger Tests
// =============================================================================

func TestNewLogger_WritesJSON(t *testing.T) {
	dir := t.TempDir()

	logger, err := NewLogger(dir, LevelInfo, DefaultRotationConfig())
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}

	logger.Info("context switched", "context_id", "dev", "subscription_id", "s-1")
	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, LogFileName))
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}

	var entry map[string]any
	if err := json.Unmarshal(data, &entry); err != nil {
		t.Fatalf("log entry is not valid JSON: %v", err)
	}
	if entry["msg"] != "context switched" {
		t.Errorf("msg = %v, want %q", entry["msg"], "context switched")
	}
	if entry["context_id"] != "dev" {
		t.Errorf("context_id = %v, want %q", entry["context_id"], "dev")
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	dir := t.TempDir()

	logger, err := NewLogger(dir, LevelWarn, DefaultRotationConfig())
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Close()

	data, _ := os.ReadFile(filepath.Join(dir, LogFileName))
	content := string(data)

	if strings.Contains(content, "debug message") || strings.Contains(content, "info message") {
		t.Error("messages below WARN were logged")
	}
	if !strings.Contains(content, "warn message") {
		t.Error("WARN message missing from log")
	}
}

func TestLogger_ChildAttributes(t *testing.T) {
	dir := t.TempDir()

	logger, err := NewLogger(dir, LevelInfo, DefaultRotationConfig())
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}

	child := logger.WithOperation("switch").WithContextID("prod")
	child.Info("verified")
	logger.Close()

	data, _ := os.ReadFile(filepath.Join(dir, LogFileName))
	var entry map[string]any
	if err := json.Unmarshal(data, &entry); err != nil {
		t.Fatalf("log entry is not valid JSON: %v", err)
	}
	if entry["operation"] != "switch" {
		t.Errorf("operation = %v, want %q", entry["operation"], "switch")
	}
	if entry["context_id"] != "prod" {
		t.Errorf("context_id = %v, want %q", entry["context_id"], "prod")
	}
}

func TestNopLogger(t *testing.T) {
	logger := NopLogger()
	logger.Info("discarded")
	if err := logger.Close(); err != nil {
		t.Errorf("Close() on nop logger = %v, want nil", err)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"Warn", LevelWarn},
		{"error", LevelError},
		{"bogus", LevelInfo},
		{"", LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.want {
			t.Errorf("ParseLevel(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

// =============================================================================
// RotatingWriter Tests
// =============================================================================

func TestRotatingWriter_RotatesBySize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "azctx.log")

	rw, err := NewRotatingWriter(path, RotationConfig{MaxSizeMB: 1, MaxBackups: 2})
	if err != nil {
		t.Fatalf("NewRotatingWriter failed: %v", err)
	}
	defer rw.Close()

	// Two writes that together exceed one megabyte force a rotation.
	chunk := make([]byte, 600*1024)
	for i := range chunk {
		chunk[i] = 'x'
	}
	if _, err := rw.Write(chunk); err != nil {
		t.Fatalf("first write failed: %v", err)
	}
	if _, err := rw.Write(chunk); err != nil {
		t.Fatalf("second write failed: %v", err)
	}

	if _, err := os.Stat(path + ".1"); err != nil {
		t.Errorf("backup file missing after rotation: %v", err)
	}
	if rw.CurrentSize() != int64(len(chunk)) {
		t.Errorf("CurrentSize() = %d, want %d", rw.CurrentSize(), len(chunk))
	}
}

func TestRotatingWriter_NoRotationWhenDisabled(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "azctx.log")

	rw, err := NewRotatingWriter(path, RotationConfig{MaxSizeMB: 0})
	if err != nil {
		t.Fatalf("NewRotatingWriter failed: %v", err)
	}
	defer rw.Close()

	if _, err := rw.Write(make([]byte, 64*1024)); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	if _, err := os.Stat(path + ".1"); !os.IsNotExist(err) {
		t.Error("rotation happened despite MaxSizeMB=0")
	}
}

func TestRotatingWriter_DropsOldestBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "azctx.log")

	rw := &RotatingWriter{filePath: path, maxBackups: 2}

	// Seed existing backups and a current file.
	for _, p := range []string{path, path + ".1", path + ".2"} {
		if err := os.WriteFile(p, []byte("old"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	rw.rotateBackups()

	if _, err := os.Stat(path + ".2"); err != nil {
		t.Error(".1 was not shifted to .2")
	}
	if _, err := os.Stat(path + ".1"); !os.IsNotExist(err) {
		t.Error(".1 still exists after shifting")
	}
}
