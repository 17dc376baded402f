// Package config defines the format-agnostic runtime configuration model
// for the tool, its built-in defaults, and the Loader interface concrete
// format implementations (HCL) satisfy.
package config

import (
	"context"
	"fmt"
)

// Model is the merged runtime configuration of one invocation. Precedence
// is command-line flag > config file > built-in default; the CLI applies
// its overrides after a Loader has produced the file-level model.
type Model struct {
	Simulator Simulator
	Defaults  Defaults
}

// Simulator describes how the external simulator is invoked. The corner
// netlist path is always appended as the final positional argument.
type Simulator struct {
	Command        string
	Args           []string
	TimeoutSeconds int
}

// Defaults carries run settings a config file may pre-set so they don't
// have to be repeated on every invocation.
type Defaults struct {
	Workers      int
	KeepNetlists bool
	LogLevel     string
	LogFormat    string
}

// Default returns the built-in configuration: ngspice in batch mode, a
// 300 second per-simulation deadline, and fully sequential execution.
func Default() *Model {
	return &Model{
		Simulator: Simulator{
			Command:        "ngspice",
			Args:           []string{"-b"},
			TimeoutSeconds: 300,
		},
		Defaults: Defaults{
			Workers:   1,
			LogLevel:  "info",
			LogFormat: "text",
		},
	}
}

// Validate rejects models no run could execute with.
func (m *Model) Validate() error {
	if m.Simulator.Command == "" {
		return fmt.Errorf("simulator command must not be empty")
	}
	if m.Simulator.TimeoutSeconds <= 0 {
		return fmt.Errorf("simulator timeout must be positive, got %d", m.Simulator.TimeoutSeconds)
	}
	if m.Defaults.Workers < 1 {
		return fmt.Errorf("worker count must be at least 1, got %d", m.Defaults.Workers)
	}
	return nil
}

// Loader is the interface for a format-specific configuration loader. An
// empty path yields the built-in defaults.
type Loader interface {
	Load(ctx context.Context, path string) (*Model, error)
}
