package worker

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-node/internal/chain"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/clock"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/model"
	"go.uber.org/zap"
)

// TargetChainWorker tracks the valid header with the most work and publishes
// the chain ending at it.
type TargetChainWorker struct {
	logger            *zap.Logger
	metrics           IterationMetrics
	headers           HeaderStore
	sleep             func(context.Context, time.Duration) error
	sleepDuration     time.Duration
	longSleepDuration time.Duration
	wake              Signal
	notify            []Signal

	// mu serializes target updates; readers load target without it.
	mu     sync.Mutex
	target atomic.Pointer[chain.Chain]
}

// NewTargetChainWorker builds a TargetChainWorker. wake is notified when new
// headers arrive; notify is signaled whenever the target changes.
func NewTargetChainWorker(
	headers HeaderStore,
	metrics IterationMetrics,
	logger *zap.Logger,
	wake Signal,
	notify ...Signal,
) (*TargetChainWorker, error) {
	if metrics == nil {
		return nil, errors.New("target chain worker metrics is required")
	}
	return &TargetChainWorker{
		logger:            logger.Named("targetChain"),
		metrics:           metrics,
		headers:           headers,
		sleep:             clock.SleepWithContext,
		sleepDuration:     sleepDuration,
		longSleepDuration: longSleepDuration,
		wake:              wake,
		notify:            notify,
	}, nil
}

// TargetChain returns the latest published target, or nil before the first.
func (w *TargetChainWorker) TargetChain() *chain.Chain {
	return w.target.Load()
}

// Run recomputes the target until the context is canceled.
func (w *TargetChainWorker) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		started := time.Now()
		err := w.run(ctx)
		w.metrics.ObserveIteration(err, started)
		d := w.longSleepDuration
		if err != nil {
			w.logger.Warn("run iteration failed, backing off", zap.Error(err), zap.Duration("sleep", w.sleepDuration))
			d = w.sleepDuration
		}
		if err := waitFor(ctx, w.sleep, w.wake, d); err != nil {
			return err
		}
	}
}

func (w *TargetChainWorker) run(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for {
		best, ok, err := w.headers.FindMaxTotalWork(ctx)
		if err != nil {
			return fmt.Errorf("find max total work: %w", err)
		}
		if !ok {
			return nil
		}
		current := w.target.Load()
		if current != nil && current.LastBlock().Equal(best) {
			return nil
		}

		target, invalid, err := w.buildChain(ctx, best, current)
		if err != nil {
			return err
		}
		if invalid != nil {
			// best descends from an invalid block; exclude the whole branch
			// and look for the next candidate.
			if err := w.markInvalid(ctx, invalid); err != nil {
				return err
			}
			continue
		}

		w.publish(target)
		w.logger.Info("target chain updated", zap.Stringer("tip", best))
		return nil
	}
}

// buildChain walks back from best until it meets base, reusing base below
// the fork point. It returns the headers of an invalid branch instead when
// an ancestor of best is marked invalid.
func (w *TargetChainWorker) buildChain(ctx context.Context, best *model.ChainedHeader, base *chain.Chain) (*chain.Chain, []*model.ChainedHeader, error) {
	var path []*model.ChainedHeader
	forkLen := 0
	for h := best; ; {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		if base != nil && base.ContainsAt(h) {
			forkLen = h.Height + 1
			break
		}
		invalid, err := w.headers.IsBlockInvalid(ctx, h.Hash)
		if err != nil {
			return nil, nil, fmt.Errorf("check block %s: %w", h, err)
		}
		path = append(path, h)
		if invalid {
			return nil, path, nil
		}
		if h.Height == 0 {
			break
		}
		prev, ok, err := w.headers.TryGetChainedHeader(ctx, h.PreviousBlockHash())
		if err != nil {
			return nil, nil, fmt.Errorf("get header %s: %w", h.PreviousBlockHash(), err)
		}
		if !ok {
			return nil, nil, fmt.Errorf("header %s: previous header %s not stored", h, h.PreviousBlockHash())
		}
		h = prev
	}

	b := chain.NewBuilder()
	if base != nil && forkLen > 0 {
		b = base.Truncate(forkLen).ToBuilder()
	}
	slices.Reverse(path)
	for _, h := range path {
		if err := b.AddBlock(h); err != nil {
			return nil, nil, fmt.Errorf("build target chain: %w", err)
		}
	}
	return b.ToImmutable(), nil, nil
}

func (w *TargetChainWorker) markInvalid(ctx context.Context, branch []*model.ChainedHeader) error {
	for _, h := range branch {
		if err := w.headers.MarkBlockInvalid(ctx, h.Hash); err != nil {
			return fmt.Errorf("mark block %s invalid: %w", h, err)
		}
	}
	w.logger.Warn("skipping invalid branch",
		zap.Stringer("tip", branch[0]),
		zap.Stringer("invalid", branch[len(branch)-1]),
	)
	return nil
}

// InvalidateBlock marks header invalid and, when it is part of the target,
// immediately publishes the target cut below it. A recomputation follows.
func (w *TargetChainWorker) InvalidateBlock(ctx context.Context, header *model.ChainedHeader) error {
	if err := w.headers.MarkBlockInvalid(ctx, header.Hash); err != nil {
		return fmt.Errorf("mark block %s invalid: %w", header, err)
	}

	w.mu.Lock()
	if t := w.target.Load(); t != nil && t.ContainsAt(header) {
		w.publish(t.Truncate(header.Height))
	}
	w.mu.Unlock()

	w.logger.Warn("block marked invalid", zap.Stringer("block", header))
	w.wake.Notify()
	return nil
}

func (w *TargetChainWorker) publish(target *chain.Chain) {
	w.target.Store(target)
	notifyAll(w.notify)
}
