package sim

import (
	"context"
	"fmt"
	"runtime"
	"sync"
)

// RunParallel evaluates frames concurrently. Frames are independent
// pure functions of the frame index, so no ordering constraint exists
// during evaluation; results are assembled back into frame order before
// the statistics are recorded.
func RunParallel(ctx context.Context, sc *Scenario, workers int) (*Result, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers == 1 || sc.Frames == 1 {
		return Run(ctx, sc)
	}
	if workers > sc.Frames {
		workers = sc.Frames
	}

	frames := make([]*Frame, sc.Frames)
	errs := make([]error, sc.Frames)

	chunk := (sc.Frames + workers - 1) / workers
	var wg sync.WaitGroup
	wg.Add(workers)

	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > sc.Frames {
			end = sc.Frames
		}
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				select {
				case <-ctx.Done():
					errs[i] = ctx.Err()
					return
				default:
				}
				frames[i], errs[i] = EvalFrame(sc, i)
			}
		}(start, end)
	}

	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
	}

	stats := NewStats(sc.Frames)
	for _, f := range frames {
		stats.Record(f)
	}

	return &Result{Scenario: sc, Stats: stats, Final: frames[len(frames)-1]}, nil
}
