package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadWriteLinesRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "circuit.sp")
	lines := []string{"* title", ".param vdd_p = 3.0 ; supply", "", ".end"}

	require.NoError(t, WriteLines(path, lines))
	got, err := ReadLines(path)
	require.NoError(t, err)
	assert.Equal(t, lines, got)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "* title\n.param vdd_p = 3.0 ; supply\n\n.end\n", string(data))
}

func TestReadLinesWithoutTrailingNewline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "circuit.sp")
	require.NoError(t, os.WriteFile(path, []byte("* a\n.end"), 0o644))

	got, err := ReadLines(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"* a", ".end"}, got)
}

func TestReadLinesMissingFile(t *testing.T) {
	_, err := ReadLines(filepath.Join(t.TempDir(), "nope.sp"))
	assert.Error(t, err)
}

func TestNetlistExt(t *testing.T) {
	assert.Equal(t, ".sp", NetlistExt("foo/bar.sp"))
	assert.Equal(t, ".cir", NetlistExt("bar.cir"))
	assert.Equal(t, ".sp", NetlistExt("bare"))
}

func TestBaseName(t *testing.T) {
	assert.Equal(t, "my_circuit", BaseName("/tmp/my_circuit.sp"))
	assert.Equal(t, "bare", BaseName("bare"))
}

func TestMakeWorkDir(t *testing.T) {
	runID := "test-" + filepath.Base(t.TempDir())
	dir, err := MakeWorkDir(runID)
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// A second run with the same ID must not silently reuse the directory.
	_, err = MakeWorkDir(runID)
	assert.Error(t, err)
}
