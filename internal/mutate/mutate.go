// Package mutate rewrites a netlist's lines for one corner: parameter value
// substitution, library corner substitution, and temperature insertion.
//
// Substitution is deliberately line-level over a small grammar of recognized
// statement shapes (.param, .lib, .temp, analysis statements, .end) rather
// than a structured parse; the source format is too loose for more, and
// each shape reduces to a pure function from a line to its replacement.
package mutate

import (
	"regexp"
	"strings"

	"github.com/vk/ngcsim/internal/corner"
	"github.com/vk/ngcsim/internal/sweep"
)

var (
	tempRe     = regexp.MustCompile(`(?i)^\s*\.temp(?:\s|$)`)
	analysisRe = regexp.MustCompile(`(?i)^\s*\.(?:tran|ac|dc|op)(?:\s|$)`)
	endRe      = regexp.MustCompile(`(?i)^\s*\.end`)
)

// paramRule substitutes the value token of a ".param NAME = VALUE" line.
type paramRule struct {
	name  string
	value string
	re    *regexp.Regexp
}

// apply returns the rewritten line and whether the rule matched. Only the
// value token changes; everything before the '=' and after the token,
// trailing comments included, is preserved verbatim.
func (r paramRule) apply(line string) (string, bool) {
	m := r.re.FindStringSubmatch(line)
	if m == nil {
		return line, false
	}
	return m[1] + r.value + m[3], true
}

// libRule substitutes the key token of a ".lib PATH/FILE KEY" line.
type libRule struct {
	axis   sweep.LibAxis
	corner string
	re     *regexp.Regexp
}

// apply replaces the key token with the corner name, but only when the axis
// carries no key constraint or the constraint equals the token (both
// trimmed). A non-matching key leaves the line untouched for this axis.
func (r libRule) apply(line string) (string, bool) {
	m := r.re.FindStringSubmatch(line)
	if m == nil {
		return line, false
	}
	if r.axis.Key != "" && strings.TrimSpace(m[4]) != strings.TrimSpace(r.axis.Key) {
		return line, false
	}
	return m[1] + m[2] + "/" + r.axis.File + m[3] + r.corner + m[5], true
}

// Ambiguity flags an input line whose text structurally matched more than
// one parameter's substitution pattern. Substitutions still apply in sorted
// parameter order, but the result depends on that order, so the caller
// should surface the line to the user.
type Ambiguity struct {
	Line   int // 1-based line number in the original netlist
	Params []string
}

// Mutator rewrites netlist lines for a single corner. Building one compiles
// every substitution pattern once; Apply is then a pure function of the
// input lines, so repeated invocations yield byte-identical output.
type Mutator struct {
	temperature string
	params      []paramRule
	libs        []libRule
}

// New builds the Mutator for one corner, using the configuration's
// canonical axis order for the substitution rules.
func New(cfg *sweep.Config, c *corner.Corner) *Mutator {
	m := &Mutator{temperature: c.Temperature}

	for _, name := range cfg.ParamNames() {
		value, ok := c.Params[name]
		if !ok {
			continue
		}
		m.params = append(m.params, paramRule{
			name:  name,
			value: value,
			re:    regexp.MustCompile(`(?i)^(\s*\.param\s+` + regexp.QuoteMeta(name) + `\s*=\s*)(\S+)(.*)$`),
		})
	}

	for _, axis := range cfg.LibAxes() {
		name, ok := c.Libs[axis]
		if !ok {
			continue
		}
		m.libs = append(m.libs, libRule{
			axis:   axis,
			corner: name,
			re:     regexp.MustCompile(`(?i)^(\s*\.lib\s+)(.*)/` + regexp.QuoteMeta(axis.File) + `(\s+)(\S+)(.*)$`),
		})
	}

	return m
}

// Apply produces the fully substituted line sequence for the corner. The
// output always contains exactly one .temp statement: an existing .temp line
// is replaced in place (later duplicates are dropped), otherwise the
// statement is inserted before the first analysis statement, before .end, or
// appended, in that order of preference.
func (m *Mutator) Apply(lines []string) ([]string, []Ambiguity) {
	out := make([]string, 0, len(lines)+1)
	var ambiguities []Ambiguity
	inserted := false

	for i, line := range lines {
		// Directive comments stay visible for reproducibility.
		if sweep.IsDirective(line) {
			out = append(out, line)
			continue
		}

		orig := line
		var matched []string
		for _, rule := range m.params {
			if rule.re.MatchString(orig) {
				matched = append(matched, rule.name)
			}
			line, _ = rule.apply(line)
		}
		if len(matched) > 1 {
			ambiguities = append(ambiguities, Ambiguity{Line: i + 1, Params: matched})
		}

		for _, rule := range m.libs {
			line, _ = rule.apply(line)
		}

		if tempRe.MatchString(line) {
			if inserted {
				continue
			}
			out = append(out, ".temp "+m.temperature)
			inserted = true
			continue
		}

		if !inserted && analysisRe.MatchString(line) {
			out = append(out, ".temp "+m.temperature)
			inserted = true
		}
		out = append(out, line)
	}

	if !inserted {
		out = insertBeforeEnd(out, ".temp "+m.temperature)
	}

	return out, ambiguities
}

// insertBeforeEnd places the statement immediately before the last .end
// line, or appends it when no .end exists.
func insertBeforeEnd(lines []string, stmt string) []string {
	for i := len(lines) - 1; i >= 0; i-- {
		if endRe.MatchString(lines[i]) {
			lines = append(lines, "")
			copy(lines[i+1:], lines[i:])
			lines[i] = stmt
			return lines
		}
	}
	return append(lines, stmt)
}
