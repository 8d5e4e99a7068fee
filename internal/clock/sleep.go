// Package clock holds timer waits that give way to cancellation.
package clock

import (
	"context"
	"time"
)

// SleepWithContext waits for d unless ctx is done first.
func SleepWithContext(ctx context.Context, d time.Duration) error {
	return SleepOrWake(ctx, d, nil)
}

// SleepOrWake waits for d, for a receive on wake, or for ctx, whichever
// comes first. Only ctx ending the wait is an error. A nil wake never fires.
func SleepOrWake(ctx context.Context, d time.Duration, wake <-chan struct{}) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-wake:
		return nil
	case <-timer.C:
		return nil
	}
}
