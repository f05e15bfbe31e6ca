package internal

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// TestGolangciLintClean runs golangci-lint over the whole module and fails
// on any reported issue. Skipped when the linter is not installed.
func TestGolangciLintClean(t *testing.T) {
	if _, err := exec.LookPath("golangci-lint"); err != nil {
		t.Skip("golangci-lint not found in PATH, skipping test")
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}

	// The test runs from internal/; the module root is one level up.
	moduleRoot := wd
	if filepath.Base(wd) == "internal" {
		moduleRoot = filepath.Dir(wd)
	}

	// Sandboxed runners may not have a writable default build cache.
	goCacheDir := t.TempDir()

	cmd := exec.Command("golangci-lint", "run", "--allow-parallel-runners", "./...")
	cmd.Dir = moduleRoot
	cmd.Env = append(os.Environ(), "GOCACHE="+goCacheDir)
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Errorf("golangci-lint reported issues:\n%s", output)
	}
}
