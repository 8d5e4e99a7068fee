package chainstate

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"iter"
	"slices"
	"sync"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/chain"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/codec"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/storage"
)

// ChainState is a read-only snapshot of the chain state at one chain tip.
// It holds its own read transactions, so later blocks never show through.
// Methods are safe for concurrent use; Close must be called.
type ChainState struct {
	chain   *chain.Chain
	cursors []*storage.PooledCursor
	idle    chan *storage.PooledCursor

	closeOnce sync.Once
	closeErr  error
}

// ToChainState opens a snapshot backed by n cursors from the builder's pool.
func (b *Builder) ToChainState(ctx context.Context, n int) (*ChainState, error) {
	if n <= 0 {
		return nil, fmt.Errorf("snapshot needs at least one cursor, got %d", n)
	}
	cursors := make([]*storage.PooledCursor, 0, n)
	release := func() {
		for _, c := range cursors {
			if c.InTransaction() {
				_ = c.RollbackTransaction()
			}
			c.Release()
		}
	}
	for range n {
		c, err := b.pool.Acquire(ctx)
		if err != nil {
			release()
			return nil, err
		}
		cursors = append(cursors, c)
	}

	// Commits hold mu exclusively, so every transaction begun here sees the
	// same committed tip as the chain captured with them.
	b.mu.RLock()
	current := b.current
	err := beginSnapshot(ctx, cursors, current.LastBlock())
	b.mu.RUnlock()
	if err != nil {
		release()
		return nil, err
	}

	s := &ChainState{
		chain:   current,
		cursors: cursors,
		idle:    make(chan *storage.PooledCursor, n),
	}
	for _, c := range cursors {
		s.idle <- c
	}
	return s, nil
}

func beginSnapshot(ctx context.Context, cursors []*storage.PooledCursor, tip *model.ChainedHeader) error {
	for _, c := range cursors {
		if err := c.BeginTransaction(ctx, true); err != nil {
			return fmt.Errorf("begin snapshot: %w", err)
		}
		stored, err := c.ChainTip()
		if err != nil {
			return fmt.Errorf("read snapshot tip: %w", err)
		}
		if !tip.Equal(stored) {
			return fmt.Errorf("%w: snapshot tip %v, chain tip %v", ErrStateMismatch, stored, tip)
		}
	}
	return nil
}

// Chain returns the chain the snapshot was taken at.
func (s *ChainState) Chain() *chain.Chain {
	return s.chain
}

func (s *ChainState) acquire(ctx context.Context) (*storage.PooledCursor, error) {
	select {
	case c, ok := <-s.idle:
		if !ok {
			return nil, storage.ErrClosed
		}
		return c, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *ChainState) release(c *storage.PooledCursor) {
	s.idle <- c
}

func (s *ChainState) TryGetUnspentTx(ctx context.Context, txHash chainhash.Hash) (model.UnspentTx, bool, error) {
	c, err := s.acquire(ctx)
	if err != nil {
		return model.UnspentTx{}, false, err
	}
	defer s.release(c)
	return c.TryGetUnspentTx(txHash)
}

func (s *ChainState) TryGetUnspentTxOutput(ctx context.Context, outPoint wire.OutPoint) (*wire.TxOut, bool, error) {
	c, err := s.acquire(ctx)
	if err != nil {
		return nil, false, err
	}
	defer s.release(c)
	return c.TryGetUnspentTxOutput(outPoint)
}

// Counts returns the counters at the snapshot's tip.
func (s *ChainState) Counts(ctx context.Context) (Counts, error) {
	c, err := s.acquire(ctx)
	if err != nil {
		return Counts{}, err
	}
	defer s.release(c)
	return readCounts(c)
}

// ReadUnspentTransactions lists the unspent set in no particular order. One
// snapshot cursor is held until iteration stops.
func (s *ChainState) ReadUnspentTransactions(ctx context.Context) iter.Seq2[model.UnspentTx, error] {
	return func(yield func(model.UnspentTx, error) bool) {
		c, err := s.acquire(ctx)
		if err != nil {
			yield(model.UnspentTx{}, err)
			return
		}
		defer s.release(c)
		for u, err := range c.ReadUnspentTransactions() {
			if !yield(u, err) || err != nil {
				return
			}
		}
	}
}

// ReadUnspentOutputs lists every unspent output, grouped by transaction in
// output order.
func (s *ChainState) ReadUnspentOutputs(ctx context.Context) iter.Seq2[model.UnspentOutput, error] {
	return func(yield func(model.UnspentOutput, error) bool) {
		c, err := s.acquire(ctx)
		if err != nil {
			yield(model.UnspentOutput{}, err)
			return
		}
		defer s.release(c)
		for u, err := range c.ReadUnspentTransactions() {
			if err != nil {
				yield(model.UnspentOutput{}, err)
				return
			}
			for out, err := range unspentOutputs(c, u) {
				if !yield(out, err) || err != nil {
					return
				}
			}
		}
	}
}

func unspentOutputs(c storage.ChainStateCursor, u model.UnspentTx) iter.Seq2[model.UnspentOutput, error] {
	return func(yield func(model.UnspentOutput, error) bool) {
		for i := range u.OutputStates.Len() {
			if u.OutputStates.Get(i) != model.Unspent {
				continue
			}
			op := wire.OutPoint{Hash: u.TxHash, Index: uint32(i)}
			txOut, ok, err := c.TryGetUnspentTxOutput(op)
			if err == nil && !ok {
				err = fmt.Errorf("%w: unspent output %s not stored", ErrStateMismatch, op)
			}
			if err != nil {
				yield(model.UnspentOutput{}, err)
				return
			}
			if !yield(model.UnspentOutput{OutPoint: op, TxOut: txOut}, nil) {
				return
			}
		}
	}
}

// UtxoCommitment is the double SHA-256 of the unspent set ordered by
// transaction hash: each entry's encoding followed by its unspent outputs.
// Equal unspent sets give equal commitments on every backend.
func (s *ChainState) UtxoCommitment(ctx context.Context) (chainhash.Hash, error) {
	c, err := s.acquire(ctx)
	if err != nil {
		return chainhash.Hash{}, err
	}
	defer s.release(c)

	var unspent []model.UnspentTx
	for u, err := range c.ReadUnspentTransactions() {
		if err != nil {
			return chainhash.Hash{}, err
		}
		unspent = append(unspent, u)
	}
	slices.SortFunc(unspent, func(a, b model.UnspentTx) int {
		return bytes.Compare(a.TxHash[:], b.TxHash[:])
	})

	h := sha256.New()
	for _, u := range unspent {
		if err := ctx.Err(); err != nil {
			return chainhash.Hash{}, err
		}
		if err := codec.EncodeUnspentTx(h, u); err != nil {
			return chainhash.Hash{}, fmt.Errorf("encode unspent tx %s: %w", u.TxHash, err)
		}
		for out, err := range unspentOutputs(c, u) {
			if err != nil {
				return chainhash.Hash{}, err
			}
			if err := codec.EncodeTxOut(h, out.TxOut); err != nil {
				return chainhash.Hash{}, fmt.Errorf("encode output %s: %w", out.OutPoint, err)
			}
		}
	}
	return chainhash.HashH(h.Sum(nil)), nil
}

// Close ends the snapshot's transactions and returns its cursors to the
// pool. It waits for in-flight reads to finish.
func (s *ChainState) Close() error {
	s.closeOnce.Do(func() {
		var errs []error
		for range s.cursors {
			c := <-s.idle
			if err := c.RollbackTransaction(); err != nil {
				errs = append(errs, err)
			}
			c.Release()
		}
		close(s.idle)
		s.closeErr = errors.Join(errs...)
	})
	return s.closeErr
}
