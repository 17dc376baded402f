// Package simulate fans simulation tasks out to a bounded worker pool,
// invokes the external simulator per corner, and extracts measurement
// values from its captured output.
package simulate

import (
	"github.com/vk/ngcsim/internal/corner"
)

// Status is the terminal state of one corner's simulation task.
type Status int

const (
	// StatusCompleted means the simulator ran to completion and its output
	// was captured. A non-zero exit code still counts as completed; only
	// launch or communication failures do not.
	StatusCompleted Status = iota
	// StatusTimedOut means the simulator exceeded the per-run deadline.
	StatusTimedOut
	// StatusFailed means the simulator could not be invoked at all.
	StatusFailed
)

// Sentinel strings stand in for measurement values at the output-table
// boundary. Inside the pipeline, outcomes stay tagged as Status values.
const (
	SentinelMissing = "N/A"
	SentinelTimeout = "TIMEOUT"
	SentinelError   = "ERROR"
)

// Sentinel returns the measurement sentinel for a failure status, or the
// empty string for StatusCompleted.
func (s Status) Sentinel() string {
	switch s {
	case StatusTimedOut:
		return SentinelTimeout
	case StatusFailed:
		return SentinelError
	default:
		return ""
	}
}

func (s Status) String() string {
	switch s {
	case StatusCompleted:
		return "completed"
	case StatusTimedOut:
		return "timed_out"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is the single outcome of one corner's simulation. Every corner
// yields exactly one Result, success or not; it is immutable once created
// and consumed only by the report stage.
type Result struct {
	Corner *corner.Corner
	Status Status

	// Measurements holds one value per requested measure, including
	// SentinelMissing for measures absent from the output. Populated only
	// when Status is StatusCompleted.
	Measurements map[string]string

	// Err records the invocation fault for StatusFailed results.
	Err error
}

// Measurement returns the table value for one measure, substituting the
// failure sentinel when the corner never produced measurements.
func (r *Result) Measurement(name string) string {
	if r.Status != StatusCompleted {
		return r.Status.Sentinel()
	}
	if v, ok := r.Measurements[name]; ok {
		return v
	}
	return SentinelMissing
}
