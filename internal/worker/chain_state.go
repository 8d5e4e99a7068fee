package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/chain"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/chainstate"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/clock"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/model"
	"go.uber.org/zap"
)

// ChainStateWorker moves the chain state towards the target chain one block
// at a time.
type ChainStateWorker struct {
	logger            *zap.Logger
	metrics           IterationMetrics
	builder           ChainStateBuilder
	target            TargetChainSource
	invalidator       BlockInvalidator
	blockTxes         BlockTxesStore
	requester         BlockRequester
	sleep             func(context.Context, time.Duration) error
	longSleepDuration time.Duration
	wake              <-chan struct{}
	notify            []Signal
}

// NewChainStateWorker builds a ChainStateWorker. notify is signaled after
// every applied or rolled back block.
func NewChainStateWorker(
	builder ChainStateBuilder,
	target TargetChainSource,
	invalidator BlockInvalidator,
	blockTxes BlockTxesStore,
	requester BlockRequester,
	metrics IterationMetrics,
	logger *zap.Logger,
	wake <-chan struct{},
	notify ...Signal,
) (*ChainStateWorker, error) {
	if metrics == nil {
		return nil, errors.New("chain state worker metrics is required")
	}
	return &ChainStateWorker{
		logger:            logger.Named("chainState"),
		metrics:           metrics,
		builder:           builder,
		target:            target,
		invalidator:       invalidator,
		blockTxes:         blockTxes,
		requester:         requester,
		sleep:             clock.SleepWithContext,
		longSleepDuration: longSleepDuration,
		wake:              wake,
		notify:            notify,
	}, nil
}

// Run follows the target until the context is canceled. Errors other than
// invalid blocks and missing data stop the worker.
func (w *ChainStateWorker) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		started := time.Now()
		err := w.run(ctx)
		w.metrics.ObserveIteration(err, started)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			w.logger.Error("chain state worker halted", zap.Error(err))
			return err
		}
		if err := waitFor(ctx, w.sleep, w.wake, w.longSleepDuration); err != nil {
			return err
		}
	}
}

// run applies steps until the target is reached or a block cannot be
// processed yet. Applied steps are flushed before it returns.
func (w *ChainStateWorker) run(ctx context.Context) (err error) {
	applied := 0
	defer func() {
		if applied == 0 {
			return
		}
		if flushErr := w.builder.Flush(context.WithoutCancel(ctx)); flushErr != nil && err == nil {
			err = flushErr
		}
	}()

	for step, err := range w.builder.Chain().NavigateTowards(w.target.TargetChain) {
		if err != nil {
			return fmt.Errorf("navigate towards target: %w", err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		done, err := w.step(ctx, step)
		if err != nil || !done {
			return err
		}
		applied++
	}
	return nil
}

func (w *ChainStateWorker) step(ctx context.Context, step chain.Step) (bool, error) {
	header := step.Header
	txes, ok, err := w.loadTxes(header)
	if err != nil {
		return false, err
	}
	if !ok {
		w.logger.Debug("block transactions not stored, requesting", zap.Stringer("block", header))
		return false, w.request(ctx, header)
	}

	if step.Direction == chain.Advance {
		err = w.builder.AddBlock(ctx, header, txes)
	} else {
		err = w.builder.RollbackBlock(ctx, header, txes)
	}

	var validationErr *chainstate.ValidationError
	var missingErr *chainstate.MissingDataError
	switch {
	case err == nil:
		notifyAll(w.notify)
		return true, nil
	case errors.As(err, &validationErr):
		w.logger.Warn("block failed validation", zap.Stringer("block", header), zap.Error(err))
		if err := w.invalidator.InvalidateBlock(ctx, header); err != nil {
			return false, err
		}
		return false, nil
	case errors.As(err, &missingErr):
		w.logger.Info("previous transactions missing, requesting block",
			zap.Stringer("block", header),
			zap.Stringer("missing", missingErr.BlockHash),
		)
		return false, w.requester.RequestBlock(ctx, missingErr.BlockHash)
	default:
		return false, fmt.Errorf("%s block %s: %w", step.Direction, header, err)
	}
}

func (w *ChainStateWorker) request(ctx context.Context, header *model.ChainedHeader) error {
	if err := w.requester.RequestBlock(ctx, header.Hash); err != nil {
		return fmt.Errorf("request block %s: %w", header, err)
	}
	return nil
}

// loadTxes reads a block's transactions. Pruned blocks cannot be replayed.
func (w *ChainStateWorker) loadTxes(header *model.ChainedHeader) ([]*wire.MsgTx, bool, error) {
	nodes, ok, err := w.blockTxes.ReadBlockTransactions(header.Hash)
	if err != nil {
		return nil, false, fmt.Errorf("read block %s transactions: %w", header, err)
	}
	if !ok {
		return nil, false, nil
	}
	txes := make([]*wire.MsgTx, 0, len(nodes))
	for _, node := range nodes {
		if node.Pruned {
			return nil, false, fmt.Errorf("block %s is pruned at tx %d", header, node.Index)
		}
		tx, err := node.Tx()
		if err != nil {
			return nil, false, fmt.Errorf("block %s: %w", header, err)
		}
		txes = append(txes, tx)
	}
	return txes, true, nil
}
