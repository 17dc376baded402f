// Package corner expands a sweep configuration into the explicit, ordered
// set of corner descriptors via cartesian product.
package corner

import (
	"fmt"

	"github.com/vk/ngcsim/internal/sweep"
)

// Corner is one concrete combination of a temperature, one value per swept
// parameter, and one corner name per swept library axis. Each corner is
// owned exclusively by the task that processes it.
type Corner struct {
	// ID is sequential, 1-based, and zero-padded to at least 4 digits
	// (c0001, c0002, ...). IDs widen past 9999 and are never reused.
	ID          string
	Temperature string
	Params      map[string]string
	Libs        map[sweep.LibAxis]string

	// NetlistPath is populated once the mutated netlist has been written.
	NetlistPath string
}

// FormatID renders a 1-based corner number as its identifier.
func FormatID(n int) string {
	return fmt.Sprintf("c%04d", n)
}

// Count returns the total number of corners the configuration expands to:
// |temps or 1| × ∏|param value lists| × ∏|lib value lists|. An absent axis
// contributes a factor of 1.
func Count(cfg *sweep.Config) int {
	total := len(cfg.Temperatures())
	for _, values := range cfg.Params {
		total *= len(values)
	}
	for _, corners := range cfg.Libs {
		total *= len(corners)
	}
	return total
}

// Generate expands the configuration into corners in deterministic order.
// Axis order is fixed by Config (sorted parameter names, sorted library
// axes); the product nests temperature outermost, then parameter
// combinations, then library combinations. This exact nesting fixes which
// corner receives which identifier.
func Generate(cfg *sweep.Config) []*Corner {
	paramNames := cfg.ParamNames()
	paramValues := make([][]string, len(paramNames))
	for i, name := range paramNames {
		paramValues[i] = cfg.Params[name]
	}

	libAxes := cfg.LibAxes()
	libValues := make([][]string, len(libAxes))
	for i, axis := range libAxes {
		libValues[i] = cfg.Libs[axis]
	}

	corners := make([]*Corner, 0, Count(cfg))
	for _, temp := range cfg.Temperatures() {
		for _, paramCombo := range product(paramValues) {
			for _, libCombo := range product(libValues) {
				c := &Corner{
					ID:          FormatID(len(corners) + 1),
					Temperature: temp,
					Params:      make(map[string]string, len(paramNames)),
					Libs:        make(map[sweep.LibAxis]string, len(libAxes)),
				}
				for i, name := range paramNames {
					c.Params[name] = paramCombo[i]
				}
				for i, axis := range libAxes {
					c.Libs[axis] = libCombo[i]
				}
				corners = append(corners, c)
			}
		}
	}
	return corners
}

// product returns the cartesian product of the given value lists in
// lexicographic index order. An empty input yields a single empty
// combination, so missing axes contribute a factor of 1.
func product(lists [][]string) [][]string {
	combos := [][]string{nil}
	for _, list := range lists {
		next := make([][]string, 0, len(combos)*len(list))
		for _, combo := range combos {
			for _, value := range list {
				extended := make([]string, len(combo), len(combo)+1)
				copy(extended, combo)
				next = append(next, append(extended, value))
			}
		}
		combos = next
	}
	return combos
}
