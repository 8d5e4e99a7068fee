package worker

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/chain"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/clock"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-node/pkg/workerpool"
	"go.uber.org/zap"
)

// PruneMode selects what the pruning worker removes.
type PruneMode string

const (
	// PruneNone keeps everything.
	PruneNone PruneMode = "none"
	// PruneSpent drops the replay logs of blocks behind the buffer.
	PruneSpent PruneMode = "spent"
	// PruneMerkle also prunes fully spent transactions from block storage,
	// keeping only the Merkle nodes needed for each block's root.
	PruneMerkle PruneMode = "merkle"
)

func ParsePruneMode(s string) (PruneMode, error) {
	switch m := PruneMode(s); m {
	case PruneNone, PruneSpent, PruneMerkle:
		return m, nil
	default:
		return "", fmt.Errorf("unknown prune mode %q", s)
	}
}

type PruningConfig struct {
	Mode PruneMode
	// Buffer is how many blocks below the processed tip are never pruned.
	Buffer  int
	Workers int
	// DefragmentEvery is how many pruned blocks trigger a defragment of
	// the stores.
	DefragmentEvery int
}

// PruningWorker prunes blocks once they are Buffer blocks behind the chain
// state tip. Pruned blocks can no longer be rolled back.
type PruningWorker struct {
	logger            *zap.Logger
	metrics           PruningMetrics
	iterations        IterationMetrics
	pool              CursorPool
	blockTxes         BlockTxesStore
	processed         func() *chain.Chain
	cfg               PruningConfig
	sleep             func(context.Context, time.Duration) error
	longSleepDuration time.Duration
	wake              <-chan struct{}

	// pruned is the chain of blocks already pruned by this worker.
	pruned          *chain.Builder
	sinceDefragment int
}

func NewPruningWorker(
	pool CursorPool,
	blockTxes BlockTxesStore,
	processed func() *chain.Chain,
	metrics PruningMetrics,
	iterations IterationMetrics,
	cfg PruningConfig,
	logger *zap.Logger,
	wake <-chan struct{},
) (*PruningWorker, error) {
	if metrics == nil || iterations == nil {
		return nil, errors.New("pruning worker metrics is required")
	}
	if cfg.Mode == "" {
		cfg.Mode = PruneNone
	}
	if cfg.Buffer <= 0 {
		cfg.Buffer = DefaultPruneBuffer
	}
	if cfg.Workers <= 0 {
		cfg.Workers = defaultPruneWorkers
	}
	if cfg.DefragmentEvery <= 0 {
		cfg.DefragmentEvery = defaultDefragmentEvery
	}
	return &PruningWorker{
		logger:            logger.Named("pruning").With(zap.String("mode", string(cfg.Mode))),
		metrics:           metrics,
		iterations:        iterations,
		pool:              pool,
		blockTxes:         blockTxes,
		processed:         processed,
		cfg:               cfg,
		sleep:             clock.SleepWithContext,
		longSleepDuration: longSleepDuration,
		wake:              wake,
		pruned:            chain.NewBuilder(),
	}, nil
}

// Run prunes as the chain state advances until the context is canceled.
func (w *PruningWorker) Run(ctx context.Context) error {
	if w.cfg.Mode == PruneNone {
		w.logger.Info("pruning disabled")
		return nil
	}
	w.metrics.SetPrunedHeight(-1)
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		started := time.Now()
		err := w.run(ctx)
		w.iterations.ObserveIteration(err, started)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			w.logger.Error("pruning worker halted", zap.Error(err))
			return err
		}
		if err := waitFor(ctx, w.sleep, w.wake, w.longSleepDuration); err != nil {
			return err
		}
	}
}

func (w *PruningWorker) run(ctx context.Context) (err error) {
	processed := w.processed()
	target := processed.Truncate(processed.Len() - w.cfg.Buffer)
	if target.IsEmpty() {
		return nil
	}

	pruned := 0
	defer func() {
		if passErr := w.finishPass(context.WithoutCancel(ctx), pruned); passErr != nil && err == nil {
			err = passErr
		}
	}()

	for step, err := range w.pruned.ToImmutable().NavigateTowardsChain(target) {
		if err != nil {
			return fmt.Errorf("navigate towards prune target: %w", err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if step.Direction == chain.Rewind {
			w.logger.Warn("pruned block left the processed chain", zap.Stringer("block", step.Header))
			if err := w.pruned.RemoveBlock(step.Header); err != nil {
				return err
			}
			continue
		}
		if err := w.pruneBlock(ctx, step.Header, target); err != nil {
			return err
		}
		if err := w.pruned.AddBlock(step.Header); err != nil {
			return err
		}
		pruned++
		w.metrics.SetPrunedHeight(step.Header.Height)
	}
	return nil
}

// finishPass flushes block storage after a Merkle pass and defragments the
// stores once DefragmentEvery blocks were pruned since the last time.
func (w *PruningWorker) finishPass(ctx context.Context, pruned int) error {
	if pruned == 0 {
		return nil
	}
	if w.cfg.Mode == PruneMerkle {
		if err := w.blockTxes.Flush(); err != nil {
			return fmt.Errorf("flush block transactions: %w", err)
		}
	}
	w.sinceDefragment += pruned
	if w.sinceDefragment < w.cfg.DefragmentEvery {
		return nil
	}
	w.sinceDefragment = 0
	return w.defragment(ctx)
}

func (w *PruningWorker) defragment(ctx context.Context) error {
	started := time.Now()
	cursor, err := w.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer cursor.Release()

	if err := cursor.Defragment(); err != nil {
		return fmt.Errorf("defragment chain state: %w", err)
	}
	if w.cfg.Mode == PruneMerkle {
		if err := w.blockTxes.Defragment(); err != nil {
			return fmt.Errorf("defragment block transactions: %w", err)
		}
	}
	w.logger.Info("storage defragmented", zap.Duration("took", time.Since(started)))
	return nil
}

// pruneBlock prunes the transactions the block fully spent, then drops the
// block's replay logs. Blocks whose logs are gone were pruned already.
func (w *PruningWorker) pruneBlock(ctx context.Context, header *model.ChainedHeader, target *chain.Chain) (err error) {
	started := time.Now()
	prunedTxes := 0
	defer func() {
		w.metrics.ObservePruneBlock(err, prunedTxes, started)
	}()

	spent, ok, err := w.readSpentTxes(ctx, header.Height)
	if err != nil || !ok {
		return err
	}
	if w.cfg.Mode == PruneMerkle {
		if prunedTxes, err = w.pruneTxes(ctx, spent, target); err != nil {
			return fmt.Errorf("prune block %s: %w", header, err)
		}
	}
	if err := w.removeReplayLogs(ctx, header); err != nil {
		return fmt.Errorf("prune block %s: %w", header, err)
	}
	w.logger.Debug("block pruned", zap.Stringer("block", header), zap.Int("txes", prunedTxes))
	return nil
}

func (w *PruningWorker) readSpentTxes(ctx context.Context, height int) (model.BlockSpentTxes, bool, error) {
	cursor, err := w.pool.Acquire(ctx)
	if err != nil {
		return nil, false, err
	}
	defer cursor.Release()

	if err := cursor.BeginTransaction(ctx, true); err != nil {
		return nil, false, err
	}
	defer func() { _ = cursor.RollbackTransaction() }()

	spent, ok, err := cursor.TryGetBlockSpentTxes(height)
	if err != nil {
		return nil, false, fmt.Errorf("get spent txes at height %d: %w", height, err)
	}
	return spent, ok, nil
}

type pruneGroup struct {
	blockHash chainhash.Hash
	txIndices []int
}

// pruneTxes prunes spent transactions from the blocks that confirmed them,
// one block per pool worker.
func (w *PruningWorker) pruneTxes(ctx context.Context, spent model.BlockSpentTxes, target *chain.Chain) (int, error) {
	byHeight := make(map[int][]int)
	for _, s := range spent {
		byHeight[s.ConfirmedBlockHeight] = append(byHeight[s.ConfirmedBlockHeight], s.TxIndex)
	}

	groups := make([]pruneGroup, 0, len(byHeight))
	for height, indices := range byHeight {
		block, ok := target.BlockAt(height)
		if !ok {
			return 0, fmt.Errorf("spent tx confirmed at height %d beyond prune target", height)
		}
		slices.Sort(indices)
		groups = append(groups, pruneGroup{blockHash: block.Hash, txIndices: indices})
	}
	if len(groups) == 0 {
		return 0, nil
	}

	workers := min(w.cfg.Workers, len(groups))
	err := workerpool.Process(ctx, workers, groups, func(_ context.Context, g pruneGroup) error {
		if err := w.blockTxes.PruneElements(g.blockHash, g.txIndices); err != nil {
			return fmt.Errorf("prune txes of %s: %w", g.blockHash, err)
		}
		return nil
	}, nil)
	if err != nil {
		return 0, err
	}
	return len(spent), nil
}

// removeReplayLogs drops the block's spent and unminted logs, unless the
// block was rolled back in the meantime.
func (w *PruningWorker) removeReplayLogs(ctx context.Context, header *model.ChainedHeader) error {
	cursor, err := w.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer cursor.Release()

	if err := cursor.BeginTransaction(ctx, false); err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = cursor.RollbackTransaction()
		}
	}()

	applied, err := cursor.ContainsHeader(header.Hash)
	if err != nil {
		return fmt.Errorf("check header: %w", err)
	}
	if !applied {
		return nil
	}
	if _, err := cursor.TryRemoveBlockSpentTxes(header.Height); err != nil {
		return fmt.Errorf("remove spent txes: %w", err)
	}
	if _, err := cursor.TryRemoveBlockUnmintedTxes(header.Hash); err != nil {
		return fmt.Errorf("remove unminted txes: %w", err)
	}
	if err := cursor.CommitTransaction(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	committed = true
	return nil
}
