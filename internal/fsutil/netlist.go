// Package fsutil provides file system helpers for netlists and the
// per-run working directory.
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ReadLines reads the file and returns its lines without terminators. A
// trailing newline does not produce an empty final line.
func ReadLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	text := strings.TrimSuffix(string(data), "\n")
	if text == "" {
		return nil, nil
	}
	return strings.Split(text, "\n"), nil
}

// WriteLines writes the lines to path, terminating every line (including
// the last) with a newline. Output is a pure function of the input lines,
// so rewriting the same lines yields a byte-identical file.
func WriteLines(path string, lines []string) error {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

// NetlistExt returns the netlist's file extension, falling back to ".sp"
// when the path has none. Corner netlists reuse it.
func NetlistExt(path string) string {
	if ext := filepath.Ext(path); ext != "" {
		return ext
	}
	return ".sp"
}

// BaseName returns the netlist file name without directory or extension,
// used to derive the default output table path.
func BaseName(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// MakeWorkDir creates the dedicated per-run directory that holds all corner
// netlists, named after the run identifier under the system temp dir.
func MakeWorkDir(runID string) (string, error) {
	dir := filepath.Join(os.TempDir(), "ngcsim_"+runID)
	if err := os.Mkdir(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create working directory: %w", err)
	}
	return dir, nil
}
