package scoring

import (
	"context"
	"time"
)

// Latency draws a duration in milliseconds from r
func Latency(s Scorer, r Range) time.Duration {
	return time.Duration(Int(s, r)) * time.Millisecond
}

// Wait blocks for d or until ctx is done
func Wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
