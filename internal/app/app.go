// Package app wires the run pipeline together: runtime config loading,
// logger construction, corner generation, simulation fan-out, and the
// final result table.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/vk/ngcsim/internal/config"
	"github.com/vk/ngcsim/internal/ctxlog"
)

// App encapsulates one invocation's dependencies, configuration, and
// lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	cfg    *Config
	model  *config.Model
	runID  string
}

// NewApp constructs the application: it loads the runtime config through
// the given loader, applies the command-line overrides, and builds an
// isolated logger tagged with a fresh run identifier.
func NewApp(outW io.Writer, cfg *Config, loader config.Loader) (*App, error) {
	bootCtx := ctxlog.WithLogger(context.Background(), newLogger(cfg.LogLevel, cfg.LogFormat, outW))

	model, err := loader.Load(bootCtx, cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// Command-line flags win over the config file.
	if cfg.Workers > 0 {
		model.Defaults.Workers = cfg.Workers
	}
	if cfg.TimeoutSeconds > 0 {
		model.Simulator.TimeoutSeconds = cfg.TimeoutSeconds
	}
	if cfg.Simulator != "" {
		model.Simulator.Command = cfg.Simulator
	}
	if cfg.KeepNetlists {
		model.Defaults.KeepNetlists = true
	}
	if cfg.LogLevel != "" {
		model.Defaults.LogLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" {
		model.Defaults.LogFormat = cfg.LogFormat
	}
	if err := model.Validate(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	logger := newLogger(model.Defaults.LogLevel, model.Defaults.LogFormat, outW).With("run_id", runID)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:   outW,
		logger: logger,
		cfg:    cfg,
		model:  model,
		runID:  runID,
	}, nil
}

// Model returns the merged runtime configuration. This is primarily for
// testing.
func (a *App) Model() *config.Model {
	return a.model
}

// RunID returns the run identifier that names the working directory and
// tags this invocation's log records. This is primarily for testing.
func (a *App) RunID() string {
	return a.runID
}
