package app

import "errors"

// Config holds the per-invocation settings collected from the command
// line. Zero values mean "not set"; the runtime config file and built-in
// defaults fill them in (flag > file > default).
type Config struct {
	NetlistPath string
	OutputPath  string // empty: <netlist-base>_corners.csv
	ConfigPath  string // empty: built-in defaults

	KeepNetlists bool
	NoRun        bool

	Workers        int    // 0: from runtime config
	TimeoutSeconds int    // 0: from runtime config
	Simulator      string // empty: from runtime config

	LogFormat string // empty: from runtime config
	LogLevel  string // empty: from runtime config
}

// NewConfig validates the raw flag values into a usable Config.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.NetlistPath == "" {
		return nil, errors.New("NetlistPath is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}
