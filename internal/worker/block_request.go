package worker

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/chain"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/clock"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-node/pkg/batcher"
	"github.com/goodnatureofminers/blockinsight7000-node/pkg/workerpool"
	"go.uber.org/zap"
)

// BlockRequestConfig tunes block fetching.
type BlockRequestConfig struct {
	BatchSize     int
	FlushInterval time.Duration
	RPS           int
	Workers       int
	// Lookahead is how many target blocks past the chain state are fetched
	// ahead of time.
	Lookahead int
}

func (c BlockRequestConfig) withDefaults() BlockRequestConfig {
	if c.BatchSize <= 0 {
		c.BatchSize = blockRequestBatchSize
	}
	if c.FlushInterval <= 0 {
		c.FlushInterval = blockRequestFlushInterval
	}
	if c.RPS <= 0 {
		c.RPS = blockRequestRPS
	}
	if c.Workers <= 0 {
		c.Workers = blockRequestWorkers
	}
	if c.Lookahead <= 0 {
		c.Lookahead = blockLookahead
	}
	return c
}

// BlockRequestWorker fetches blocks from the trusted node. Requests are
// batched and rate limited; the worker also prefetches target blocks the
// chain state will need next.
type BlockRequestWorker struct {
	logger            *zap.Logger
	metrics           BlockRequestMetrics
	iterations        IterationMetrics
	source            BlockSource
	headers           HeaderStore
	blockTxes         BlockTxesStore
	target            TargetChainSource
	processed         func() *chain.Chain
	now               func() time.Time
	sleep             func(context.Context, time.Duration) error
	longSleepDuration time.Duration
	wake              <-chan struct{}
	notify            []Signal
	cfg               BlockRequestConfig

	batcher *batcher.Batcher[chainhash.Hash]
}

// NewBlockRequestWorker builds a BlockRequestWorker. processed returns the
// chain the chain state is at; notify is signaled after blocks are stored.
func NewBlockRequestWorker(
	source BlockSource,
	headers HeaderStore,
	blockTxes BlockTxesStore,
	target TargetChainSource,
	processed func() *chain.Chain,
	metrics BlockRequestMetrics,
	iterations IterationMetrics,
	cfg BlockRequestConfig,
	logger *zap.Logger,
	wake <-chan struct{},
	notify ...Signal,
) (*BlockRequestWorker, error) {
	if metrics == nil || iterations == nil {
		return nil, errors.New("block request worker metrics is required")
	}
	cfg = cfg.withDefaults()
	w := &BlockRequestWorker{
		logger:            logger.Named("blockRequest"),
		metrics:           metrics,
		iterations:        iterations,
		source:            source,
		headers:           headers,
		blockTxes:         blockTxes,
		target:            target,
		processed:         processed,
		now:               time.Now,
		sleep:             clock.SleepWithContext,
		longSleepDuration: longSleepDuration,
		wake:              wake,
		notify:            notify,
		cfg:               cfg,
	}
	w.batcher = batcher.New(w.logger, w.flush, cfg.BatchSize, cfg.FlushInterval, cfg.RPS)
	return w, nil
}

// RequestBlock queues a block to be fetched. Requests for a block already
// queued are dropped.
func (w *BlockRequestWorker) RequestBlock(ctx context.Context, blockHash chainhash.Hash) error {
	return w.batcher.Add(ctx, blockHash)
}

// Run prefetches target blocks until the context is canceled. Queued
// requests are flushed before it returns.
func (w *BlockRequestWorker) Run(ctx context.Context) error {
	w.batcher.Start(ctx)
	defer w.batcher.Stop()

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		started := time.Now()
		err := w.run(ctx)
		w.iterations.ObserveIteration(err, started)
		if err != nil && ctx.Err() == nil {
			w.logger.Warn("prefetch failed", zap.Error(err))
		}
		if err := waitFor(ctx, w.sleep, w.wake, w.longSleepDuration); err != nil {
			return err
		}
	}
}

// run queues target blocks past the fork point with the processed chain
// that are not stored yet.
func (w *BlockRequestWorker) run(ctx context.Context) error {
	target := w.target.TargetChain()
	if target == nil || target.IsEmpty() {
		return nil
	}
	from := 0
	if fork, ok := w.processed().FindForkPoint(target); ok {
		from = fork.Height + 1
	}
	to := min(from+w.cfg.Lookahead, target.Height()+1)

	queued := 0
	for height := from; height < to; height++ {
		// Leave room for requests from the chain state worker.
		if w.batcher.Pending() >= w.cfg.BatchSize {
			break
		}
		header, _ := target.BlockAt(height)
		stored, err := w.blockTxes.ContainsBlock(header.Hash)
		if err != nil {
			return fmt.Errorf("check block %s: %w", header, err)
		}
		if stored {
			continue
		}
		if err := w.RequestBlock(ctx, header.Hash); err != nil {
			return fmt.Errorf("request block %s: %w", header, err)
		}
		queued++
	}
	if queued > 0 {
		w.logger.Debug("blocks queued", zap.Int("count", queued), zap.Int("from", from))
	}
	return nil
}

func (w *BlockRequestWorker) flush(ctx context.Context, hashes []chainhash.Hash) (err error) {
	started := time.Now()
	var stored atomic.Int64
	defer func() {
		w.metrics.ObserveFlush(err, int(stored.Load()), started)
		if stored.Load() > 0 {
			notifyAll(w.notify)
		}
	}()

	workers := min(w.cfg.Workers, len(hashes))
	err = workerpool.Process(ctx, workers, hashes, func(ctx context.Context, hash chainhash.Hash) error {
		added, err := w.fetch(ctx, hash)
		if added {
			stored.Add(1)
		}
		return err
	}, nil)
	if stored.Load() > 0 {
		if flushErr := w.blockTxes.Flush(); flushErr != nil && err == nil {
			err = fmt.Errorf("flush block transactions: %w", flushErr)
		}
	}
	return err
}

// fetch downloads one block and stores its transactions, and its header
// when the header is new and connects to a known one.
func (w *BlockRequestWorker) fetch(ctx context.Context, hash chainhash.Hash) (bool, error) {
	ok, err := w.blockTxes.ContainsBlock(hash)
	if err != nil {
		return false, fmt.Errorf("check block %s: %w", hash, err)
	}
	if ok {
		return false, nil
	}

	block, err := w.source.Block(ctx, hash)
	if err != nil {
		return false, err
	}
	if err := w.storeHeader(ctx, block.Header); err != nil {
		return false, err
	}
	added, err := w.blockTxes.TryAddBlockTransactions(hash, block.Transactions)
	if err != nil {
		return false, fmt.Errorf("store block %s transactions: %w", hash, err)
	}
	return added, nil
}

func (w *BlockRequestWorker) storeHeader(ctx context.Context, header wire.BlockHeader) error {
	hash := header.BlockHash()
	if _, ok, err := w.headers.TryGetChainedHeader(ctx, hash); err != nil || ok {
		return err
	}
	prev, ok, err := w.headers.TryGetChainedHeader(ctx, header.PrevBlock)
	if err != nil {
		return fmt.Errorf("get header %s: %w", header.PrevBlock, err)
	}
	if !ok {
		return nil
	}
	chained, err := model.NewChainedHeader(prev, header, w.now())
	if err != nil {
		return err
	}
	if _, err := w.headers.TryAddChainedHeader(ctx, chained); err != nil {
		return fmt.Errorf("store header %s: %w", chained, err)
	}
	return nil
}
