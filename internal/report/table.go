// Package report assembles per-corner simulation results into the final
// ordered CSV table.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/vk/ngcsim/internal/simulate"
	"github.com/vk/ngcsim/internal/sweep"
)

// Table is the fully aggregated result set: a fixed header plus one row per
// corner, sorted by corner identifier.
type Table struct {
	Header []string
	Rows   [][]string
}

// Build merges the collected results into the table. Column order is
// corner_id, temperature, param_<name> in sorted name order, lib columns in
// sorted axis order, then the measures in ngc_out order. Completion order
// of the results carries no meaning, so rows are re-sorted by corner_id
// (zero-padded, so lexicographic equals numeric order).
func Build(cfg *sweep.Config, results []*simulate.Result) *Table {
	paramNames := cfg.ParamNames()
	libAxes := cfg.LibAxes()

	header := []string{"corner_id", "temperature"}
	for _, name := range paramNames {
		header = append(header, "param_"+name)
	}
	for _, axis := range libAxes {
		header = append(header, axis.Column())
	}
	header = append(header, cfg.Outputs...)

	sorted := make([]*simulate.Result, len(results))
	copy(sorted, results)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Corner.ID < sorted[j].Corner.ID
	})

	rows := make([][]string, 0, len(sorted))
	for _, res := range sorted {
		row := make([]string, 0, len(header))
		row = append(row, res.Corner.ID, res.Corner.Temperature)
		for _, name := range paramNames {
			row = append(row, res.Corner.Params[name])
		}
		for _, axis := range libAxes {
			row = append(row, res.Corner.Libs[axis])
		}
		for _, measure := range cfg.Outputs {
			row = append(row, res.Measurement(measure))
		}
		rows = append(rows, row)
	}

	return &Table{Header: header, Rows: rows}
}

// Write renders the table as CSV.
func (t *Table) Write(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return err
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile writes the table to path in a single pass; the file is the only
// writer's output and is produced exactly once per run.
func (t *Table) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := t.Write(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return f.Close()
}
