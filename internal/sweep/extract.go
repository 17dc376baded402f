package sweep

import (
	"fmt"
	"regexp"
	"strings"
)

// Warning describes a malformed directive that was skipped. Warnings are
// never fatal; the caller decides how to surface them.
type Warning struct {
	Line    int // 1-based line number in the netlist
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("line %d: %s", w.Line, w.Message)
}

// libSpecRe matches FILE or FILE(KEY); FILE may not contain parentheses and
// KEY must be non-empty when the parentheses are present.
var libSpecRe = regexp.MustCompile(`^([^()]+)(?:\(([^)]+)\))?$`)

// Extract scans the netlist lines in a single pass and builds the sweep
// Config. Only comment lines (leading '*' markers) whose content starts with
// the literal prefix "ngc_" are considered; everything else is ignored.
//
// ngc_param and ngc_lib overwrite earlier entries for the same name or
// (file, key) pair; ngc_temp and ngc_out replace their lists wholesale, so
// only the last occurrence of each wins. Unrecognized ngc_ commands are
// silently ignored.
func Extract(lines []string) (*Config, []Warning) {
	cfg := &Config{
		Params: make(map[string][]string),
		Libs:   make(map[LibAxis][]string),
	}
	var warnings []Warning

	for i, line := range lines {
		cmd, args, ok := directiveTokens(line)
		if !ok {
			continue
		}

		switch cmd {
		case "ngc_param":
			if len(args) < 2 {
				warnings = append(warnings, Warning{
					Line:    i + 1,
					Message: "ngc_param requires a name and at least one value: " + strings.TrimSpace(line),
				})
				continue
			}
			values := make([]string, len(args)-1)
			copy(values, args[1:])
			cfg.Params[args[0]] = values

		case "ngc_lib":
			if len(args) < 2 {
				warnings = append(warnings, Warning{
					Line:    i + 1,
					Message: "ngc_lib requires a library file and at least one corner: " + strings.TrimSpace(line),
				})
				continue
			}
			m := libSpecRe.FindStringSubmatch(args[0])
			if m == nil {
				warnings = append(warnings, Warning{
					Line:    i + 1,
					Message: "invalid library specification: " + args[0],
				})
				continue
			}
			corners := make([]string, len(args)-1)
			copy(corners, args[1:])
			cfg.Libs[LibAxis{File: m[1], Key: m[2]}] = corners

		case "ngc_temp":
			cfg.Temps = append([]string(nil), args...)

		case "ngc_out":
			cfg.Outputs = append([]string(nil), args...)
		}
	}

	return cfg, warnings
}

// IsDirective reports whether the line is an ngc_ directive comment. The
// mutator uses this to copy directives through untouched.
func IsDirective(line string) bool {
	_, _, ok := directiveTokens(line)
	return ok
}

// directiveTokens strips the comment markers and splits a candidate
// directive line into its command and arguments.
func directiveTokens(line string) (cmd string, args []string, ok bool) {
	stripped := strings.TrimSpace(line)
	if !strings.HasPrefix(stripped, "*") {
		return "", nil, false
	}
	content := strings.TrimSpace(strings.TrimLeft(stripped, "*"))
	if !strings.HasPrefix(content, "ngc_") {
		return "", nil, false
	}
	fields := strings.Fields(content)
	return fields[0], fields[1:], true
}
