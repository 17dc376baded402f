package simulate

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/vk/ngcsim/internal/corner"
	"github.com/vk/ngcsim/internal/ctxlog"
)

// RunAll executes one simulation task per corner on a bounded pool of
// `workers` goroutines (1 = fully sequential). Tasks are independent: each
// owns its corner, its netlist file, and its result slot, so no mutable
// state is shared across workers. Failures are contained per task; the
// returned slice always holds exactly one Result per corner, in corner
// order regardless of completion order.
func RunAll(ctx context.Context, runner *Runner, corners []*corner.Corner, workers int) []*Result {
	logger := ctxlog.FromContext(ctx)
	if workers < 1 {
		workers = 1
	}

	// Progress is reported roughly every 5% of corners.
	step := len(corners) / 20
	if step < 1 {
		step = 1
	}
	var completed atomic.Int64

	results := make([]*Result, len(corners))
	g := &errgroup.Group{}
	g.SetLimit(workers)

	for i, c := range corners {
		i, c := i, c
		g.Go(func() error {
			results[i] = runner.Run(ctx, c)
			done := completed.Add(1)
			if done%int64(step) == 0 || done == int64(len(corners)) {
				logger.Info("Simulation progress.", "completed", done, "total", len(corners))
			}
			return nil
		})
	}

	// Task errors are captured inside each Result, never returned.
	_ = g.Wait()
	return results
}
