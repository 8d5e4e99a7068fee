// Package batcher groups queued items into rate-limited batches.
package batcher

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

// ErrStopped is returned by Add once the batcher is stopped.
var ErrStopped = errors.New("batcher stopped")

// Batcher buffers items and flushes them either by size or interval. An
// item already waiting for a flush is not queued again.
type Batcher[T comparable] struct {
	flushCallback func(context.Context, []T) error
	itemsCh       chan T
	flushSize     int
	flushInterval time.Duration
	rl            ratelimit.Limiter
	logger        *zap.Logger

	mu     sync.Mutex
	queued map[T]struct{}

	wg       sync.WaitGroup
	stopOnce sync.Once
	stop     chan struct{}
}

// New constructs a Batcher flushing at most rps batches per second.
func New[T comparable](logger *zap.Logger, flushCallback func(context.Context, []T) error, flushSize int, flushInterval time.Duration, rps int) *Batcher[T] {
	return &Batcher[T]{
		logger:        logger,
		flushCallback: flushCallback,
		itemsCh:       make(chan T, flushSize*2),
		flushSize:     flushSize,
		flushInterval: flushInterval,
		rl:            ratelimit.New(rps),
		queued:        make(map[T]struct{}),
		stop:          make(chan struct{}),
	}
}

// Start begins the background flushing loop.
func (b *Batcher[T]) Start(ctx context.Context) {
	b.wg.Add(1)
	go b.run(ctx)
}

// Stop flushes what is buffered and stops the loop. It is safe to call twice.
func (b *Batcher[T]) Stop() {
	b.stopOnce.Do(func() { close(b.stop) })
	b.wg.Wait()
}

// Add queues an item for batching, respecting context cancellation.
func (b *Batcher[T]) Add(ctx context.Context, item T) error {
	select {
	case <-b.stop:
		return ErrStopped
	default:
	}

	b.mu.Lock()
	if _, ok := b.queued[item]; ok {
		b.mu.Unlock()
		return nil
	}
	b.queued[item] = struct{}{}
	b.mu.Unlock()

	select {
	case <-ctx.Done():
		b.forget([]T{item})
		return ctx.Err()
	case <-b.stop:
		b.forget([]T{item})
		return ErrStopped
	case b.itemsCh <- item:
		return nil
	}
}

// Pending is the number of items queued and not yet flushed.
func (b *Batcher[T]) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.queued)
}

func (b *Batcher[T]) forget(items []T) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, item := range items {
		delete(b.queued, item)
	}
}

func (b *Batcher[T]) run(ctx context.Context) {
	defer b.wg.Done()

	tick := time.NewTicker(b.flushInterval)
	defer tick.Stop()

	batch := make([]T, 0, b.flushSize)
	for {
		select {
		case item := <-b.itemsCh:
			if batch = append(batch, item); len(batch) >= b.flushSize {
				batch = b.flush(ctx, batch)
			}
		case <-tick.C:
			batch = b.flush(ctx, batch)
		case <-ctx.Done():
			b.flush(ctx, b.drain(batch))
			return
		case <-b.stop:
			b.flush(ctx, b.drain(batch))
			return
		}
	}
}

// drain appends items accepted by Add but not yet read by the loop.
func (b *Batcher[T]) drain(batch []T) []T {
	for {
		select {
		case item := <-b.itemsCh:
			batch = append(batch, item)
		default:
			return batch
		}
	}
}

// flush hands batch to the callback and returns it emptied for reuse.
func (b *Batcher[T]) flush(ctx context.Context, batch []T) []T {
	if len(batch) == 0 {
		return batch
	}
	b.rl.Take()
	if err := b.flushCallback(ctx, batch); err != nil {
		b.logger.Error("batch not flushed", zap.Error(err), zap.Int("size", len(batch)))
	} else {
		b.logger.Debug("batch flushed", zap.Int("size", len(batch)))
	}
	b.forget(batch)
	return batch[:0]
}
