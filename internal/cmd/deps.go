package cmd

import (
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/Iron-Ham/azctx/internal/azcli"
	"github.com/Iron-Ham/azctx/internal/config"
	"github.com/Iron-Ham/azctx/internal/contexts"
	"github.com/Iron-Ham/azctx/internal/logging"
	"github.com/Iron-Ham/azctx/internal/orchestrator"
)

// buildStore opens the context store at the configured storage directory.
func buildStore() *contexts.Store {
	return contexts.NewStore(config.Get().Storage.ResolveDir())
}

// buildOrchestrator assembles the store, CLI adapter and logger from the
// loaded configuration. The returned logger must be closed by the caller.
func buildOrchestrator() (*orchestrator.Orchestrator, *logging.Logger) {
	cfg := config.Get()

	// lipgloss already honors NO_COLOR and dumb terminals; ui.color false
	// forces plain output regardless.
	if !cfg.UI.Color {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	store := buildStore()

	opts := []azcli.Option{
		azcli.WithTimeout(cfg.Azure.CommandTimeout()),
		azcli.WithProbeTimeout(cfg.Azure.ProbeTimeout()),
	}
	if cfg.Azure.Binary != "" {
		opts = append(opts, azcli.WithBinary(cfg.Azure.Binary))
	}
	cli := azcli.New(opts...)

	logger := logging.NopLogger()
	if cfg.Logging.Enabled {
		logDir := filepath.Join(cfg.Storage.ResolveDir(), "logs")
		l, err := logging.NewLogger(logDir, cfg.Logging.Level, logging.RotationConfig{
			MaxSizeMB:  cfg.Logging.MaxSizeMB,
			MaxBackups: cfg.Logging.MaxBackups,
		})
		if err == nil {
			logger = l
		}
		// A broken log destination never blocks the command itself.
	}

	return orchestrator.New(store, cli, orchestrator.WithLogger(logger)), logger
}
