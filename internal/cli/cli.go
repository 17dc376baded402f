// Package cli parses the command line into an app.Config.
package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/vk/ngcsim/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated
// app.Config, a boolean indicating the program should exit cleanly (help
// requested), or an ExitError carrying the exit code.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("ngcsim", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
ngcsim - corner simulation driver for ngspice netlists.

Reads ngc_ directives embedded as comments in the netlist, expands every
combination of parameters, library corners and temperatures, runs the
simulator per corner, and collects measurements into a CSV table.

Usage:
  ngcsim [options] NETLIST

Arguments:
  NETLIST
    Path to the input netlist carrying ngc_ directive comments.

Options:
`)
		flagSet.PrintDefaults()
	}

	keepFlag := flagSet.Bool("keep-netlists", false, "Keep the generated corner netlists.")
	kFlag := flagSet.Bool("k", false, "Keep the generated corner netlists (shorthand).")
	workersFlag := flagSet.Int("workers", 0, "Number of parallel simulations. 0 uses the config file value (default 1).")
	jFlag := flagSet.Int("j", 0, "Number of parallel simulations (shorthand).")
	outputFlag := flagSet.String("output", "", "Output CSV path. Defaults to <netlist-base>_corners.csv.")
	oFlag := flagSet.String("o", "", "Output CSV path (shorthand).")
	noRunFlag := flagSet.Bool("no-run", false, "Generate corner netlists only, do not run simulations.")
	nFlag := flagSet.Bool("n", false, "Generate corner netlists only (shorthand).")
	configFlag := flagSet.String("config", "", "Path to an HCL runtime config file.")
	simulatorFlag := flagSet.String("simulator", "", "Override the simulator command.")
	timeoutFlag := flagSet.Int("timeout", 0, "Per-simulation timeout in seconds. 0 uses the config file value (default 300).")
	logFormatFlag := flagSet.String("log-format", "", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "", "Logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	if flagSet.NArg() == 0 {
		flagSet.Usage()
		return nil, false, &ExitError{Code: 2, Message: "a netlist path is required"}
	}
	if flagSet.NArg() > 1 {
		return nil, false, &ExitError{Code: 2, Message: "exactly one netlist path is expected"}
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "" && logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "", "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	workers := *workersFlag
	if workers == 0 {
		workers = *jFlag
	}
	if workers < 0 {
		return nil, false, &ExitError{Code: 2, Message: "worker count must be positive"}
	}
	if *timeoutFlag < 0 {
		return nil, false, &ExitError{Code: 2, Message: "timeout must be positive"}
	}

	outputPath := *outputFlag
	if outputPath == "" {
		outputPath = *oFlag
	}

	cfg, err := app.NewConfig(app.Config{
		NetlistPath:    flagSet.Arg(0),
		OutputPath:     outputPath,
		ConfigPath:     *configFlag,
		KeepNetlists:   *keepFlag || *kFlag,
		NoRun:          *noRunFlag || *nFlag,
		Workers:        workers,
		TimeoutSeconds: *timeoutFlag,
		Simulator:      *simulatorFlag,
		LogFormat:      logFormat,
		LogLevel:       logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	return cfg, false, nil
}
