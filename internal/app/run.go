package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vk/ngcsim/internal/corner"
	"github.com/vk/ngcsim/internal/ctxlog"
	"github.com/vk/ngcsim/internal/fsutil"
	"github.com/vk/ngcsim/internal/mutate"
	"github.com/vk/ngcsim/internal/report"
	"github.com/vk/ngcsim/internal/simulate"
	"github.com/vk/ngcsim/internal/sweep"
)

// Run executes the whole pipeline: parse directives, generate corners,
// write one mutated netlist per corner, fan the simulations out, and write
// the sorted result table. Per-corner failures are contained in their
// result rows; only a missing input netlist or an unusable working
// directory abort the run.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	lines, err := fsutil.ReadLines(a.cfg.NetlistPath)
	if err != nil {
		return fmt.Errorf("netlist file not found: %s", a.cfg.NetlistPath)
	}

	cfg, warnings := sweep.Extract(lines)
	for _, w := range warnings {
		a.logger.Warn("Malformed directive skipped.", "detail", w.String())
	}
	a.logger.Info("Netlist parsed.",
		"netlist", a.cfg.NetlistPath,
		"params", len(cfg.Params),
		"libs", len(cfg.Libs),
		"temps", len(cfg.Temperatures()),
		"outputs", len(cfg.Outputs),
	)
	if cfg.Empty() {
		a.logger.Warn("No ngc_ directives found; running a single corner at the default temperature.")
	}
	if len(cfg.Outputs) == 0 {
		a.logger.Warn("No ngc_out measurements defined; no measurement data will be extracted.")
	}

	corners := corner.Generate(cfg)
	a.logger.Info("Corner space generated.", "corners", len(corners))

	workDir, err := fsutil.MakeWorkDir(a.runID)
	if err != nil {
		return err
	}
	keep := a.model.Defaults.KeepNetlists
	defer func() {
		if keep {
			a.logger.Info("Corner netlists preserved.", "dir", workDir)
			return
		}
		if err := os.RemoveAll(workDir); err != nil {
			a.logger.Warn("Failed to remove working directory.", "dir", workDir, "error", err)
			return
		}
		a.logger.Info("Temporary netlists removed.", "dir", workDir)
	}()

	ext := fsutil.NetlistExt(a.cfg.NetlistPath)
	for _, c := range corners {
		m := mutate.New(cfg, c)
		mutated, ambiguities := m.Apply(lines)
		for _, amb := range ambiguities {
			a.logger.Warn("Line matches more than one swept parameter; substitutions applied in sorted order.",
				"line", amb.Line, "params", amb.Params)
		}
		c.NetlistPath = filepath.Join(workDir, c.ID+ext)
		if err := fsutil.WriteLines(c.NetlistPath, mutated); err != nil {
			return fmt.Errorf("failed to write corner netlist %s: %w", c.ID, err)
		}
	}
	a.logger.Info("Corner netlists created.", "dir", workDir, "count", len(corners))

	if a.cfg.NoRun {
		a.logger.Info("Skipping simulations (no-run requested).")
		if !keep {
			a.logger.Warn("no-run without keep-netlists discards the generated netlists.")
		}
		return nil
	}

	runner := &simulate.Runner{
		Command: a.model.Simulator.Command,
		Args:    a.model.Simulator.Args,
		Timeout: time.Duration(a.model.Simulator.TimeoutSeconds) * time.Second,
		Outputs: cfg.Outputs,
	}
	a.logger.Info("🚀 Starting simulations.", "workers", a.model.Defaults.Workers, "command", runner.Command)
	results := simulate.RunAll(ctx, runner, corners, a.model.Defaults.Workers)
	a.logger.Info("🏁 Simulations finished.", "corners", len(results))

	outputPath := a.cfg.OutputPath
	if outputPath == "" {
		outputPath = fsutil.BaseName(a.cfg.NetlistPath) + "_corners.csv"
	}
	table := report.Build(cfg, results)
	if err := table.WriteFile(outputPath); err != nil {
		return err
	}
	a.logger.Info("Results written.", "output", outputPath, "rows", len(table.Rows))
	return nil
}
