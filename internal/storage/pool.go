package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// CursorPool hands out at most capacity cursors at a time and reuses
// returned ones.
type CursorPool struct {
	open    func() (ChainStateCursor, error)
	slots   *semaphore.Weighted
	metrics CursorPoolMetrics
	logger  *zap.Logger

	mu     sync.Mutex
	idle   []ChainStateCursor
	inUse  int
	closed bool
}

// NewCursorPool returns a pool opening cursors from storage.
func NewCursorPool(storage ChainStateStorage, capacity int, metrics CursorPoolMetrics, logger *zap.Logger) (*CursorPool, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("cursor pool capacity must be positive, got %d", capacity)
	}
	if metrics == nil {
		return nil, errors.New("cursor pool metrics is required")
	}
	return &CursorPool{
		open:    storage.OpenCursor,
		slots:   semaphore.NewWeighted(int64(capacity)),
		metrics: metrics,
		logger:  logger.Named("cursorPool"),
	}, nil
}

// PooledCursor is a cursor checked out of a pool. Release must be called on
// every path, typically with defer.
type PooledCursor struct {
	ChainStateCursor
	pool     *CursorPool
	released bool
}

// Acquire blocks until a cursor is available or ctx is done.
func (p *CursorPool) Acquire(ctx context.Context) (*PooledCursor, error) {
	started := time.Now()
	cursor, err := p.acquire(ctx)
	p.metrics.ObserveAcquire(err, started)
	if err != nil {
		return nil, err
	}
	return &PooledCursor{ChainStateCursor: cursor, pool: p}, nil
}

func (p *CursorPool) acquire(ctx context.Context) (ChainStateCursor, error) {
	if err := p.slots.Acquire(ctx, 1); err != nil {
		return nil, err
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		p.slots.Release(1)
		return nil, ErrClosed
	}
	p.inUse++
	p.metrics.SetInUse(p.inUse)
	if n := len(p.idle); n > 0 {
		cursor := p.idle[n-1]
		p.idle = p.idle[:n-1]
		p.mu.Unlock()
		return cursor, nil
	}
	p.mu.Unlock()

	cursor, err := p.open()
	if err != nil {
		p.put(nil)
		return nil, fmt.Errorf("open cursor: %w", err)
	}
	return cursor, nil
}

// put returns a slot to the pool, keeping cursor for reuse when non-nil.
func (p *CursorPool) put(cursor ChainStateCursor) {
	p.mu.Lock()
	p.inUse--
	p.metrics.SetInUse(p.inUse)
	if cursor != nil {
		if p.closed {
			if err := cursor.Close(); err != nil {
				p.logger.Warn("close cursor failed", zap.Error(err))
			}
		} else {
			p.idle = append(p.idle, cursor)
		}
	}
	p.mu.Unlock()
	p.slots.Release(1)
}

// Release returns the cursor to its pool. A transaction left open by the
// caller is rolled back first; a cursor that fails to roll back is closed
// instead of reused.
func (c *PooledCursor) Release() {
	if c.released {
		return
	}
	c.released = true

	cursor := c.ChainStateCursor
	if cursor.InTransaction() {
		c.pool.metrics.ObserveLeakedTransaction()
		c.pool.logger.Warn("cursor returned to pool inside a transaction, rolling back")
		if err := cursor.RollbackTransaction(); err != nil {
			c.pool.logger.Error("rollback of leaked transaction failed, discarding cursor", zap.Error(err))
			if closeErr := cursor.Close(); closeErr != nil {
				c.pool.logger.Warn("close cursor failed", zap.Error(closeErr))
			}
			cursor = nil
		}
	}
	c.pool.put(cursor)
}

// Close closes idle cursors; cursors still checked out are closed on release.
func (p *CursorPool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = true
	var errs []error
	for _, cursor := range p.idle {
		if err := cursor.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	p.idle = nil
	return errors.Join(errs...)
}
