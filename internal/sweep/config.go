// Package sweep extracts corner-sweep configuration from ngc_ directive
// comments embedded in a netlist and exposes it as an immutable Config.
package sweep

import "sort"

// LibAxis identifies one independently swept library corner axis: a library
// file name plus an optional key constraint. An empty Key means the axis
// applies to any .lib statement referencing File.
type LibAxis struct {
	File string
	Key  string
}

// Column returns the result-table column name for the axis:
// lib_<file> or lib_<file>_<key>.
func (a LibAxis) Column() string {
	if a.Key == "" {
		return "lib_" + a.File
	}
	return "lib_" + a.File + "_" + a.Key
}

// Config is the sweep space described by the netlist's directives. It is
// built once by Extract and treated as read-only afterwards; all downstream
// stages share it by reference.
type Config struct {
	// Params maps a parameter name to its ordered candidate values.
	Params map[string][]string
	// Libs maps a library axis to its ordered corner names.
	Libs map[LibAxis][]string
	// Temps is the ordered temperature list; empty means the default "25".
	Temps []string
	// Outputs is the ordered list of measurement names to extract.
	Outputs []string
}

// DefaultTemperature is used when no ngc_temp directive provides values.
const DefaultTemperature = "25"

// ParamNames returns the parameter names in lexicographic order. This is
// the canonical axis order for corner generation and result columns.
func (c *Config) ParamNames() []string {
	names := make([]string, 0, len(c.Params))
	for name := range c.Params {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LibAxes returns the library axes ordered by (file, key); an absent key
// sorts before any present key.
func (c *Config) LibAxes() []LibAxis {
	axes := make([]LibAxis, 0, len(c.Libs))
	for axis := range c.Libs {
		axes = append(axes, axis)
	}
	sort.Slice(axes, func(i, j int) bool {
		if axes[i].File != axes[j].File {
			return axes[i].File < axes[j].File
		}
		return axes[i].Key < axes[j].Key
	})
	return axes
}

// Temperatures returns the temperature list, substituting the default when
// no ngc_temp values were given.
func (c *Config) Temperatures() []string {
	if len(c.Temps) == 0 {
		return []string{DefaultTemperature}
	}
	return c.Temps
}

// Empty reports whether no directive of any kind was found.
func (c *Config) Empty() bool {
	return len(c.Params) == 0 && len(c.Libs) == 0 && len(c.Temps) == 0 && len(c.Outputs) == 0
}
