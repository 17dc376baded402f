// Package hcl is the HCL implementation of config.Loader.
package hcl

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/ngcsim/internal/config"
	"github.com/vk/ngcsim/internal/ctxlog"
)

// Loader parses an ngcsim runtime config file:
//
//	simulator {
//	  command = "ngspice"        # may reference env, e.g. env.NGSPICE
//	  args    = ["-b"]
//	  timeout = 300              # seconds
//	}
//	defaults {
//	  workers       = 4
//	  keep_netlists = false
//	  log_level     = "info"
//	  log_format    = "text"
//	}
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// fileRoot decodes the top-level blocks of a config file. Every attribute
// is optional; anything absent keeps its built-in default.
type fileRoot struct {
	Simulator *simulatorBlock `hcl:"simulator,block"`
	Defaults  *defaultsBlock  `hcl:"defaults,block"`
}

type simulatorBlock struct {
	Command *string  `hcl:"command,optional"`
	Args    []string `hcl:"args,optional"`
	Timeout *int     `hcl:"timeout,optional"`
}

type defaultsBlock struct {
	Workers      *int    `hcl:"workers,optional"`
	KeepNetlists *bool   `hcl:"keep_netlists,optional"`
	LogLevel     *string `hcl:"log_level,optional"`
	LogFormat    *string `hcl:"log_format,optional"`
}

// Load reads the config file at path and overlays it on the built-in
// defaults. An empty path returns the defaults untouched.
func (l *Loader) Load(ctx context.Context, path string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	model := config.Default()
	if path == "" {
		logger.Debug("No config file given, using built-in defaults.")
		return model, nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, diags)
	}

	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, evalContext(), &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, diags)
	}

	if sim := root.Simulator; sim != nil {
		if sim.Command != nil {
			model.Simulator.Command = *sim.Command
		}
		if sim.Args != nil {
			model.Simulator.Args = sim.Args
		}
		if sim.Timeout != nil {
			model.Simulator.TimeoutSeconds = *sim.Timeout
		}
	}
	if def := root.Defaults; def != nil {
		if def.Workers != nil {
			model.Defaults.Workers = *def.Workers
		}
		if def.KeepNetlists != nil {
			model.Defaults.KeepNetlists = *def.KeepNetlists
		}
		if def.LogLevel != nil {
			model.Defaults.LogLevel = *def.LogLevel
		}
		if def.LogFormat != nil {
			model.Defaults.LogFormat = *def.LogFormat
		}
	}

	if err := model.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	logger.Debug("Config file loaded.", "path", path, "command", model.Simulator.Command)
	return model, nil
}

// evalContext exposes the process environment to config expressions as the
// object `env`, so files can write `command = env.NGSPICE`.
func evalContext() *hcl.EvalContext {
	vars := make(map[string]cty.Value)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok && k != "" {
			vars[k] = cty.StringVal(v)
		}
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(vars),
		},
	}
}
