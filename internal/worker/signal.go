package worker

import (
	"context"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-node/internal/clock"
)

// Signal wakes a worker. Notifications sent before the worker wakes
// collapse into one.
type Signal chan struct{}

func NewSignal() Signal {
	return make(Signal, 1)
}

// Notify never blocks.
func (s Signal) Notify() {
	if s == nil {
		return
	}
	select {
	case s <- struct{}{}:
	default:
	}
}

func notifyAll(signals []Signal) {
	for _, s := range signals {
		s.Notify()
	}
}

// waitFor returns after d, when wake fires, or with the context error.
// Without a wake channel it defers to sleep, which tests replace.
func waitFor(ctx context.Context, sleep func(context.Context, time.Duration) error, wake <-chan struct{}, d time.Duration) error {
	if wake == nil {
		return sleep(ctx, d)
	}
	return clock.SleepOrWake(ctx, d, wake)
}
