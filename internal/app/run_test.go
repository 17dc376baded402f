package app

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/ngcsim/internal/hcl"
)

const testNetlist = `* corner test circuit
** ngc_param vdd_p 2.7 3.0 3.3
** ngc_param vss_p 0
** ngc_lib models.lib(mos_typ) tt ff ss
** ngc_temp -40 27 125
** ngc_out tpd

.lib /libs/models.lib mos_typ
.param vdd_p=3.0
.param vss_p=0

Vdd vdd 0 {vdd_p}

.tran 0.1n 100n
.end
`

// writeStubSimulator creates an executable that prints one measurement and
// ignores its arguments, standing in for ngspice.
func writeStubSimulator(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fakesim")
	script := "#!/bin/sh\necho \"tpd  =  1.5e-9\"\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

func writeNetlist(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "circuit.sp")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newTestApp(t *testing.T, cfg Config) *App {
	t.Helper()
	if cfg.LogLevel == "" {
		cfg.LogLevel = "error"
	}
	validated, err := NewConfig(cfg)
	require.NoError(t, err)
	a, err := NewApp(&bytes.Buffer{}, validated, hcl.NewLoader())
	require.NoError(t, err)
	return a
}

func TestRunEndToEnd(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "results.csv")
	a := newTestApp(t, Config{
		NetlistPath: writeNetlist(t, testNetlist),
		OutputPath:  outputPath,
		Simulator:   writeStubSimulator(t),
		Workers:     4,
	})

	require.NoError(t, a.Run(context.Background()))

	f, err := os.Open(outputPath)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	// Header plus 3 temps × 3 vdd × 1 vss × 3 corners = 27 rows.
	require.Len(t, records, 28)
	assert.Equal(t, []string{
		"corner_id", "temperature", "param_vdd_p", "param_vss_p", "lib_models.lib_mos_typ", "tpd",
	}, records[0])
	assert.Equal(t, []string{"c0001", "-40", "2.7", "0", "tt", "1.5e-9"}, records[1])
	assert.Equal(t, []string{"c0027", "125", "3.3", "0", "ss", "1.5e-9"}, records[27])

	// Rows come back sorted by corner id.
	for i := 2; i < len(records); i++ {
		assert.Less(t, records[i-1][0], records[i][0])
	}
}

func TestRunMissingNetlistIsFatal(t *testing.T) {
	a := newTestApp(t, Config{
		NetlistPath: filepath.Join(t.TempDir(), "absent.sp"),
		Simulator:   writeStubSimulator(t),
	})
	err := a.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "netlist file not found")
}

func TestRunNoRunKeepsNetlistsWhenRequested(t *testing.T) {
	a := newTestApp(t, Config{
		NetlistPath:  writeNetlist(t, testNetlist),
		Simulator:    writeStubSimulator(t),
		NoRun:        true,
		KeepNetlists: true,
	})
	require.NoError(t, a.Run(context.Background()))

	workDir := filepath.Join(os.TempDir(), "ngcsim_"+a.RunID())
	t.Cleanup(func() { os.RemoveAll(workDir) })

	entries, err := os.ReadDir(workDir)
	require.NoError(t, err)
	assert.Len(t, entries, 27)
	assert.Equal(t, "c0001.sp", entries[0].Name())

	// Generated netlists carry the corner's substitutions.
	data, err := os.ReadFile(filepath.Join(workDir, "c0001.sp"))
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, ".param vdd_p=2.7")
	assert.Contains(t, content, ".lib /libs/models.lib tt")
	assert.Contains(t, content, ".temp -40")
	assert.Contains(t, content, "** ngc_param vdd_p 2.7 3.0 3.3")
}

func TestRunNoRunWithoutKeepRemovesWorkDir(t *testing.T) {
	a := newTestApp(t, Config{
		NetlistPath: writeNetlist(t, testNetlist),
		Simulator:   writeStubSimulator(t),
		NoRun:       true,
	})
	require.NoError(t, a.Run(context.Background()))

	workDir := filepath.Join(os.TempDir(), "ngcsim_"+a.RunID())
	_, err := os.Stat(workDir)
	assert.True(t, os.IsNotExist(err))
}

func TestRunEmptyConfigDegradesToSingleCorner(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "results.csv")
	a := newTestApp(t, Config{
		NetlistPath: writeNetlist(t, "* bare circuit\nR1 a b 1k\n.end\n"),
		OutputPath:  outputPath,
		Simulator:   writeStubSimulator(t),
	})
	require.NoError(t, a.Run(context.Background()))

	f, err := os.Open(outputPath)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, []string{"corner_id", "temperature"}, records[0])
	assert.Equal(t, []string{"c0001", "25"}, records[1])
}

func TestNewAppFlagOverridesConfigFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "ngcsim.hcl")
	require.NoError(t, os.WriteFile(configPath, []byte(`
defaults {
  workers = 2
}
simulator {
  timeout = 30
}
`), 0o644))

	a := newTestApp(t, Config{
		NetlistPath:    "circuit.sp",
		ConfigPath:     configPath,
		Workers:        6,
		TimeoutSeconds: 0, // unset: file wins
	})
	assert.Equal(t, 6, a.Model().Defaults.Workers)
	assert.Equal(t, 30, a.Model().Simulator.TimeoutSeconds)
}
