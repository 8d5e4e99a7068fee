// Package chainstate applies and rolls back blocks against the UTXO set and
// hands out consistent read snapshots of it.
package chainstate

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"slices"
	"sync"

	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/chain"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/storage"
	"go.uber.org/zap"
)

// Config tunes a Builder.
type Config struct {
	// ValidateScripts runs the script engine on every input.
	ValidateScripts bool
	// ValidationWorkers bounds parallel transaction validation. Zero means
	// one per CPU.
	ValidationWorkers int
}

// Builder owns the chain-state write path. AddBlock and RollbackBlock must be
// called from one goroutine; Chain and ToChainState are safe for concurrent
// use.
type Builder struct {
	pool     *storage.CursorPool
	rules    Rules
	txLookup TxLookup
	metrics  Metrics
	logger   *zap.Logger
	cfg      Config

	// mu is held for writing across commit and chain update, so a snapshot
	// never sees one without the other.
	mu      sync.RWMutex
	chain   *chain.Builder
	current *chain.Chain
}

// NewBuilder restores the applied chain from the stored chain tip.
func NewBuilder(
	ctx context.Context,
	pool *storage.CursorPool,
	rules Rules,
	txLookup TxLookup,
	metrics Metrics,
	cfg Config,
	logger *zap.Logger,
) (*Builder, error) {
	if cfg.ValidationWorkers <= 0 {
		cfg.ValidationWorkers = runtime.NumCPU()
	}
	b := &Builder{
		pool:     pool,
		rules:    rules,
		txLookup: txLookup,
		metrics:  metrics,
		logger:   logger.Named("chainStateBuilder"),
		cfg:      cfg,
	}

	headers, err := b.loadChain(ctx)
	if err != nil {
		return nil, fmt.Errorf("load chain: %w", err)
	}
	b.chain = chain.NewBuilder()
	for _, h := range headers {
		if err := b.chain.AddBlock(h); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrStateMismatch, err)
		}
	}
	b.current = b.chain.ToImmutable()
	b.metrics.SetTip(b.current.Height())
	if tip := b.current.LastBlock(); tip != nil {
		b.logger.Info("chain state loaded", zap.Int("height", tip.Height), zap.Stringer("tip", tip.Hash))
	}
	return b, nil
}

// loadChain walks the stored headers back from the chain tip.
func (b *Builder) loadChain(ctx context.Context) ([]*model.ChainedHeader, error) {
	cursor, err := b.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer cursor.Release()

	if err := cursor.BeginTransaction(ctx, true); err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.RollbackTransaction()
	}()

	tip, err := cursor.ChainTip()
	if err != nil || tip == nil {
		return nil, err
	}
	headers := []*model.ChainedHeader{tip}
	for h := tip; h.Height > 0; {
		prev, ok, err := cursor.TryGetHeader(h.PreviousBlockHash())
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%w: header %s missing below %s", ErrStateMismatch, h.PreviousBlockHash(), h)
		}
		headers = append(headers, prev)
		h = prev
	}
	slices.Reverse(headers)
	return headers, nil
}

// Chain returns the chain of applied blocks.
func (b *Builder) Chain() *chain.Chain {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.current
}

// Flush makes the applied blocks durable.
func (b *Builder) Flush(ctx context.Context) error {
	cursor, err := b.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer cursor.Release()
	if err := cursor.Flush(); err != nil {
		return fmt.Errorf("flush chain state: %w", err)
	}
	return nil
}

// beginWrite acquires a cursor and opens a write transaction whose stored
// tip must equal tip.
func (b *Builder) beginWrite(ctx context.Context, tip *model.ChainedHeader) (*storage.PooledCursor, error) {
	cursor, err := b.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	if err := cursor.BeginTransaction(ctx, false); err != nil {
		cursor.Release()
		return nil, err
	}
	stored, err := cursor.ChainTip()
	if err == nil && !tip.Equal(stored) {
		err = fmt.Errorf("%w: stored tip %v, chain tip %v", ErrStateMismatch, stored, tip)
	}
	if err != nil {
		_ = cursor.RollbackTransaction()
		cursor.Release()
		return nil, err
	}
	return cursor, nil
}

// commit commits cursor's transaction and moves the chain with update while
// holding mu.
func (b *Builder) commit(cursor storage.ChainStateCursor, update func(*chain.Builder) error) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := cursor.CommitTransaction(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	if err := update(b.chain); err != nil {
		// The store moved but the chain could not follow.
		return fmt.Errorf("%w: %w", ErrStateMismatch, err)
	}
	b.current = b.chain.ToImmutable()
	b.metrics.SetTip(b.current.Height())
	return nil
}

// Counts are the chain-state counters.
type Counts struct {
	UnspentTx     int
	UnspentOutput int
	TotalTx       int
	TotalInput    int
	TotalOutput   int
}

func readCounts(cursor storage.ChainStateCursor) (Counts, error) {
	var (
		c   Counts
		err error
	)
	read := func(dst *int, get func() (int, error)) {
		if err == nil {
			*dst, err = get()
		}
	}
	read(&c.UnspentTx, cursor.UnspentTxCount)
	read(&c.UnspentOutput, cursor.UnspentOutputCount)
	read(&c.TotalTx, cursor.TotalTxCount)
	read(&c.TotalInput, cursor.TotalInputCount)
	read(&c.TotalOutput, cursor.TotalOutputCount)
	return c, err
}

func writeCounts(cursor storage.ChainStateCursor, c Counts) error {
	return errors.Join(
		cursor.SetUnspentTxCount(c.UnspentTx),
		cursor.SetUnspentOutputCount(c.UnspentOutput),
		cursor.SetTotalTxCount(c.TotalTx),
		cursor.SetTotalInputCount(c.TotalInput),
		cursor.SetTotalOutputCount(c.TotalOutput),
	)
}

// addCounts applies sign times delta to the stored counters.
func addCounts(cursor storage.ChainStateCursor, delta Counts, sign int) error {
	c, err := readCounts(cursor)
	if err != nil {
		return fmt.Errorf("read counters: %w", err)
	}
	c.UnspentTx += sign * delta.UnspentTx
	c.UnspentOutput += sign * delta.UnspentOutput
	c.TotalTx += sign * delta.TotalTx
	c.TotalInput += sign * delta.TotalInput
	c.TotalOutput += sign * delta.TotalOutput
	if err := writeCounts(cursor, c); err != nil {
		return fmt.Errorf("write counters: %w", err)
	}
	return nil
}

// blockCounts is the counter delta a block applies. unspentTx is computed
// from the number of transactions it fully spent; overwritten entries leave
// the unspent set together with their remaining outputs.
func blockCounts(txes []*wire.MsgTx, fullySpent int, overwritten []model.UnspentTx) Counts {
	var c Counts
	for i, tx := range txes {
		c.TotalTx++
		c.TotalOutput += len(tx.TxOut)
		if i > 0 {
			c.TotalInput += len(tx.TxIn)
		}
		if len(tx.TxOut) > 0 {
			c.UnspentTx++
		}
	}
	c.UnspentTx -= fullySpent + len(overwritten)
	c.UnspentOutput = c.TotalOutput - c.TotalInput
	for _, u := range overwritten {
		c.UnspentOutput -= u.OutputStates.UnspentCount()
	}
	return c
}
