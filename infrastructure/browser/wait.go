package browser

import (
	"context"
	"fmt"
	"time"
)

const pollInterval = 100 * time.Millisecond

// poll calls check until it reports done or timeout elapses. A check error
// only means "not yet"; on timeout the last one is wrapped together with
// context.DeadlineExceeded.
func poll(ctx context.Context, timeout time.Duration, check func() (bool, error)) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	var last error
	for {
		done, err := check()
		if done && err == nil {
			return nil
		}
		last = err

		select {
		case <-ctx.Done():
			if ctx.Err() == context.DeadlineExceeded && last != nil {
				return fmt.Errorf("%w: %w", context.DeadlineExceeded, last)
			}
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
