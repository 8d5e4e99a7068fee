package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/clock"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/model"
	"go.uber.org/zap"
)

// HeaderSyncWorker follows the trusted node's best chain and stores its
// headers.
type HeaderSyncWorker struct {
	logger            *zap.Logger
	metrics           IterationMetrics
	source            BlockSource
	headers           HeaderStore
	params            *chaincfg.Params
	now               func() time.Time
	sleep             func(context.Context, time.Duration) error
	sleepDuration     time.Duration
	longSleepDuration time.Duration
	wake              <-chan struct{}
	notify            []Signal

	// next is the lowest height not yet known to be stored.
	next int
}

// NewHeaderSyncWorker builds a HeaderSyncWorker. wake may carry new-block
// notifications from the node; notify is signaled after headers are stored.
func NewHeaderSyncWorker(
	source BlockSource,
	headers HeaderStore,
	params *chaincfg.Params,
	metrics IterationMetrics,
	logger *zap.Logger,
	wake <-chan struct{},
	notify ...Signal,
) (*HeaderSyncWorker, error) {
	if metrics == nil {
		return nil, errors.New("header sync worker metrics is required")
	}
	return &HeaderSyncWorker{
		logger:            logger.Named("headerSync"),
		metrics:           metrics,
		source:            source,
		headers:           headers,
		params:            params,
		now:               time.Now,
		sleep:             clock.SleepWithContext,
		sleepDuration:     sleepDuration,
		longSleepDuration: longSleepDuration,
		wake:              wake,
		notify:            notify,
	}, nil
}

// Run syncs headers until the context is canceled.
func (w *HeaderSyncWorker) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		started := time.Now()
		caughtUp, err := w.run(ctx)
		w.metrics.ObserveIteration(err, started)
		switch {
		case err != nil:
			w.logger.Warn("run iteration failed, backing off", zap.Error(err), zap.Duration("sleep", w.sleepDuration))
			if err := waitFor(ctx, w.sleep, nil, w.sleepDuration); err != nil {
				return err
			}
		case caughtUp:
			if err := waitFor(ctx, w.sleep, w.wake, w.longSleepDuration); err != nil {
				return err
			}
		}
	}
}

// run stores up to one batch of headers and reports whether the node's best
// height has been reached.
func (w *HeaderSyncWorker) run(ctx context.Context) (bool, error) {
	best, err := w.source.BestHeight(ctx)
	if err != nil {
		return false, err
	}
	if w.next > best {
		return true, nil
	}

	end := min(best, w.next+headerSyncBatch-1)
	added := 0
	defer func() {
		if added > 0 {
			w.logger.Info("headers stored", zap.Int("count", added), zap.Int("height", w.next-1))
			notifyAll(w.notify)
		}
	}()

	var prev *model.ChainedHeader
	for height := w.next; height <= end; height++ {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		hash, err := w.source.BlockHash(ctx, height)
		if err != nil {
			return false, err
		}
		if stored, ok, err := w.headers.TryGetChainedHeader(ctx, hash); err != nil {
			return false, fmt.Errorf("get header %s: %w", hash, err)
		} else if ok {
			prev = stored
			w.next = height + 1
			continue
		}

		header, err := w.source.BlockHeader(ctx, hash)
		if err != nil {
			return false, err
		}

		var chained *model.ChainedHeader
		if height == 0 {
			if hash != *w.params.GenesisHash {
				return false, fmt.Errorf("node genesis %s does not match %s genesis %s", hash, w.params.Name, w.params.GenesisHash)
			}
			chained = model.NewGenesisHeader(header, w.now())
		} else {
			if prev == nil || prev.Hash != header.PrevBlock {
				p, ok, err := w.headers.TryGetChainedHeader(ctx, header.PrevBlock)
				if err != nil {
					return false, fmt.Errorf("get header %s: %w", header.PrevBlock, err)
				}
				if !ok {
					// The node switched branches below this height.
					w.logger.Info("previous header unknown, stepping back", zap.Int("height", height))
					w.next = height - 1
					return false, nil
				}
				prev = p
			}
			if chained, err = model.NewChainedHeader(prev, header, w.now()); err != nil {
				return false, err
			}
		}

		if _, err := w.headers.TryAddChainedHeader(ctx, chained); err != nil {
			return false, fmt.Errorf("store header %s: %w", chained, err)
		}
		added++
		prev = chained
		w.next = height + 1
	}
	return w.next > best, nil
}
