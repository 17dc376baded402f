package simulate

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"

	"github.com/vk/ngcsim/internal/corner"
	"github.com/vk/ngcsim/internal/ctxlog"
)

// DefaultTimeout bounds a single simulator invocation.
const DefaultTimeout = 300 * time.Second

// Runner invokes the external simulator for one corner at a time. The
// simulator is an opaque executable that receives the corner's netlist path
// as its final positional argument and writes measurements to stdout.
type Runner struct {
	Command string
	Args    []string
	Timeout time.Duration

	// Outputs is the ordered list of measurement names to extract from the
	// simulator's stdout.
	Outputs []string
}

// Run executes the simulator for the corner and returns its single Result.
// The per-corner state machine is Pending → Running → {Completed, TimedOut,
// Failed}: the deadline turns Running into TimedOut, launch faults into
// Failed, and everything else, non-zero exit included, into Completed.
func (r *Runner) Run(ctx context.Context, c *corner.Corner) *Result {
	logger := ctxlog.FromContext(ctx).With("corner", c.ID)

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := make([]string, 0, len(r.Args)+1)
	args = append(args, r.Args...)
	args = append(args, c.NetlistPath)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(runCtx, r.Command, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Debug("Invoking simulator.", "command", r.Command, "netlist", c.NetlistPath)
	err := cmd.Run()

	if runCtx.Err() == context.DeadlineExceeded {
		logger.Warn("Simulation timed out.", "timeout", timeout)
		return &Result{Corner: c, Status: StatusTimedOut}
	}

	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		logger.Warn("Simulator invocation failed.", "error", err)
		return &Result{Corner: c, Status: StatusFailed, Err: err}
	}
	if exitErr != nil {
		// The simulator ran; its output may still carry measurements.
		logger.Debug("Simulator exited non-zero.", "exit_code", exitErr.ExitCode(), "stderr_bytes", stderr.Len())
	}

	return &Result{
		Corner:       c,
		Status:       StatusCompleted,
		Measurements: ExtractMeasurements(stdout.String(), r.Outputs),
	}
}
