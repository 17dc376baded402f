package simulate

import (
	"regexp"
	"strings"
)

// ExtractMeasurements scans the captured simulator output for each
// requested measurement name, matching lines of the shape
//
//	<name> = <value>
//
// case-insensitively, with arbitrary surrounding whitespace. The first
// matching line wins; later occurrences of the same name (e.g. repeated
// analysis passes) are deliberately ignored. Measures with no matching line
// map to SentinelMissing.
func ExtractMeasurements(output string, measures []string) map[string]string {
	lines := strings.Split(output, "\n")
	values := make(map[string]string, len(measures))

	for _, measure := range measures {
		re := regexp.MustCompile(`(?i)^\s*` + regexp.QuoteMeta(measure) + `\s*=\s*(\S+)`)
		values[measure] = SentinelMissing
		for _, line := range lines {
			if m := re.FindStringSubmatch(line); m != nil {
				values[measure] = m[1]
				break
			}
		}
	}

	return values
}
