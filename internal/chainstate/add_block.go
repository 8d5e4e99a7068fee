package chainstate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/chain"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/merkle"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/storage"
	"github.com/goodnatureofminers/blockinsight7000-node/pkg/workerpool"
	"go.uber.org/zap"
)

// AddBlock validates the block at header and applies its transactions to
// the chain state. Nothing is committed unless the whole block is valid;
// rule violations are returned as *ValidationError.
func (b *Builder) AddBlock(ctx context.Context, header *model.ChainedHeader, txes []*wire.MsgTx) (err error) {
	started := time.Now()
	defer func() {
		b.metrics.ObserveAddBlock(err, len(txes), started)
	}()

	current := b.Chain()
	if tip := current.LastBlock(); tip == nil {
		if header.Height != 0 {
			return fmt.Errorf("%w: %s onto empty chain", chain.ErrNotConnected, header)
		}
	} else if header.Height != tip.Height+1 || header.PreviousBlockHash() != tip.Hash {
		return fmt.Errorf("%w: %s onto %s", chain.ErrNotConnected, header, tip)
	}

	if err := b.rules.PreValidateBlock(current, header); err != nil {
		return invalid(header.Hash, err)
	}
	if err := checkMerkleRoot(header, txes); err != nil {
		return err
	}

	cursor, err := b.beginWrite(ctx, current.LastBlock())
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = cursor.RollbackTransaction()
		}
		cursor.Release()
	}()

	apply := &blockApply{
		cursor:         cursor,
		chain:          current,
		header:         header,
		allowDuplicate: b.rules.DuplicateTxAllowed(header),
	}
	for i, tx := range txes {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := apply.applyTx(i, tx); err != nil {
			return err
		}
	}

	if err := b.validate(ctx, header, apply.loaded); err != nil {
		return err
	}
	if err := b.rules.PostValidateBlock(current, header, apply.tally); err != nil {
		return invalid(header.Hash, err)
	}

	if err := apply.finish(txes); err != nil {
		return err
	}
	if err := b.commit(cursor, func(c *chain.Builder) error { return c.AddBlock(header) }); err != nil {
		return err
	}
	committed = true

	b.logger.Debug("block added",
		zap.Stringer("block", header),
		zap.Int("txes", len(txes)),
		zap.Int("spent_txes", len(apply.spent)),
	)
	return nil
}

func checkMerkleRoot(header *model.ChainedHeader, txes []*wire.MsgTx) error {
	leaves := make([]model.MerkleTreeNode, len(txes))
	for i, tx := range txes {
		leaves[i] = model.MerkleTreeNode{Index: i, Hash: tx.TxHash()}
	}
	root, err := merkle.ComputeRoot(leaves)
	if err != nil {
		return invalid(header.Hash, err)
	}
	if root != header.Header.MerkleRoot {
		return invalid(header.Hash, fmt.Errorf("%w: computed %s, header %s", ErrMerkleRootMismatch, root, header.Header.MerkleRoot))
	}
	return nil
}

// validate runs the per-transaction rules across the validation workers.
func (b *Builder) validate(ctx context.Context, header *model.ChainedHeader, loaded []model.LoadedTx) error {
	workers := min(b.cfg.ValidationWorkers, len(loaded))
	err := workerpool.Process(ctx, workers, loaded, func(_ context.Context, tx model.LoadedTx) error {
		if err := b.rules.ValidateTransaction(header, tx); err != nil {
			return invalid(header.Hash, fmt.Errorf("tx %d %s: %w", tx.TxIndex, tx.TxHash, err))
		}
		if !b.cfg.ValidateScripts {
			return nil
		}
		if err := b.rules.ValidateTransactionScript(header, tx); err != nil {
			return invalid(header.Hash, fmt.Errorf("tx %d %s: %w", tx.TxIndex, tx.TxHash, err))
		}
		return nil
	}, nil)
	if err == nil {
		return nil
	}
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr
	}
	return err
}

// blockApply carries the serial part of AddBlock: cursor mutations, replay
// logs and the running tally.
type blockApply struct {
	cursor storage.ChainStateCursor
	chain  *chain.Chain
	header *model.ChainedHeader

	// allowDuplicate lets the block overwrite unspent transactions.
	allowDuplicate bool

	loaded   []model.LoadedTx
	spent       model.BlockSpentTxes
	unminted    model.BlockUnmintedTxes
	overwritten []model.UnspentTx
	tally       model.BlockTally
}

func (a *blockApply) applyTx(txIndex int, tx *wire.MsgTx) error {
	loaded := model.LoadedTx{Tx: tx, TxHash: tx.TxHash(), TxIndex: txIndex}
	unminted := model.UnmintedTx{TxHash: loaded.TxHash}

	if txIndex > 0 {
		loaded.PrevOutputs = make([]model.PrevOutput, 0, len(tx.TxIn))
		unminted.PrevOutputTxKeys = make([]model.TxLookupKey, 0, len(tx.TxIn))
		for _, in := range tx.TxIn {
			prev, key, err := a.spend(in.PreviousOutPoint)
			if err != nil {
				return err
			}
			loaded.PrevOutputs = append(loaded.PrevOutputs, prev)
			unminted.PrevOutputTxKeys = append(unminted.PrevOutputTxKeys, key)
		}
		a.tally.InputCount += len(tx.TxIn)
		a.tally.TotalFees += loaded.InputValue() - loaded.OutputValue()
	} else {
		a.tally.CoinbaseValue = loaded.OutputValue()
	}

	if err := a.mint(loaded, &unminted); err != nil {
		return err
	}
	a.tally.TxCount++
	a.tally.OutputCount += len(tx.TxOut)
	a.loaded = append(a.loaded, loaded)
	a.unminted = append(a.unminted, unminted)
	return nil
}

// spend marks the output at op spent and returns it with the lookup key of
// the transaction that created it.
func (a *blockApply) spend(op wire.OutPoint) (model.PrevOutput, model.TxLookupKey, error) {
	unspent, ok, err := a.cursor.TryGetUnspentTx(op.Hash)
	if err != nil {
		return model.PrevOutput{}, model.TxLookupKey{}, fmt.Errorf("get unspent tx %s: %w", op.Hash, err)
	}
	if !ok || int(op.Index) >= unspent.OutputStates.Len() {
		return model.PrevOutput{}, model.TxLookupKey{}, invalid(a.header.Hash, fmt.Errorf("%w: %s", ErrMissingPrevOutput, op))
	}
	if unspent.OutputStates.Get(int(op.Index)) == model.Spent {
		return model.PrevOutput{}, model.TxLookupKey{}, invalid(a.header.Hash, fmt.Errorf("%w: %s", ErrDoubleSpend, op))
	}

	txOut, ok, err := a.cursor.TryGetUnspentTxOutput(op)
	if err != nil {
		return model.PrevOutput{}, model.TxLookupKey{}, fmt.Errorf("get unspent output %s: %w", op, err)
	}
	if !ok {
		return model.PrevOutput{}, model.TxLookupKey{}, fmt.Errorf("%w: output %s unspent but not stored", ErrStateMismatch, op)
	}
	if _, err := a.cursor.TryRemoveUnspentTxOutput(op); err != nil {
		return model.PrevOutput{}, model.TxLookupKey{}, fmt.Errorf("remove unspent output %s: %w", op, err)
	}

	unspent = unspent.SetOutputState(int(op.Index), model.Spent)
	if unspent.IsFullySpent() {
		if _, err := a.cursor.TryRemoveUnspentTx(op.Hash); err != nil {
			return model.PrevOutput{}, model.TxLookupKey{}, fmt.Errorf("remove unspent tx %s: %w", op.Hash, err)
		}
		a.spent = append(a.spent, unspent.ToSpentTx())
	} else if _, err := a.cursor.TryUpdateUnspentTx(unspent); err != nil {
		return model.PrevOutput{}, model.TxLookupKey{}, fmt.Errorf("update unspent tx %s: %w", op.Hash, err)
	}

	blockHash := a.header.Hash
	if unspent.BlockHeight != a.header.Height {
		confirmed, ok := a.chain.BlockAt(unspent.BlockHeight)
		if !ok {
			return model.PrevOutput{}, model.TxLookupKey{}, fmt.Errorf("%w: tx %s confirmed at height %d above tip", ErrStateMismatch, op.Hash, unspent.BlockHeight)
		}
		blockHash = confirmed.Hash
	}

	prev := model.PrevOutput{
		TxOut:       txOut,
		BlockHeight: unspent.BlockHeight,
		IsCoinbase:  unspent.TxIndex == 0,
	}
	return prev, model.TxLookupKey{BlockHash: blockHash, TxIndex: unspent.TxIndex}, nil
}

// mint adds the transaction's outputs to the unspent set.
func (a *blockApply) mint(tx model.LoadedTx, unminted *model.UnmintedTx) error {
	if len(tx.Tx.TxOut) == 0 {
		return nil
	}
	entry := model.NewUnspentTx(tx.TxHash, a.header.Height, tx.TxIndex, len(tx.Tx.TxOut))
	added, err := a.cursor.TryAddUnspentTx(entry)
	if err != nil {
		return fmt.Errorf("add unspent tx %s: %w", tx.TxHash, err)
	}
	if !added {
		if !a.allowDuplicate {
			return invalid(a.header.Hash, fmt.Errorf("%w: %s", ErrDuplicateTx, tx.TxHash))
		}
		if unminted.Overwritten, err = a.overwrite(entry); err != nil {
			return err
		}
	}
	for i, out := range tx.Tx.TxOut {
		op := wire.OutPoint{Hash: tx.TxHash, Index: uint32(i)}
		if _, err := a.cursor.TryAddUnspentTxOutput(op, out); err != nil {
			return fmt.Errorf("add unspent output %s: %w", op, err)
		}
	}
	return nil
}

// overwrite replaces the unspent entry sharing entry's hash and returns the
// replaced entry. Its unspent outputs are dropped; the caller re-adds the
// outputs of the new transaction.
func (a *blockApply) overwrite(entry model.UnspentTx) (*model.UnspentTx, error) {
	prev, ok, err := a.cursor.TryGetUnspentTx(entry.TxHash)
	if err != nil {
		return nil, fmt.Errorf("get unspent tx %s: %w", entry.TxHash, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: tx %s neither added nor stored", ErrStateMismatch, entry.TxHash)
	}
	if err := removeUnspentOutputs(a.cursor, prev); err != nil {
		return nil, err
	}
	if _, err := a.cursor.TryUpdateUnspentTx(entry); err != nil {
		return nil, fmt.Errorf("overwrite unspent tx %s: %w", entry.TxHash, err)
	}
	a.overwritten = append(a.overwritten, prev)
	return &prev, nil
}

func removeUnspentOutputs(cursor storage.ChainStateCursor, u model.UnspentTx) error {
	for i := 0; i < u.OutputStates.Len(); i++ {
		if u.OutputStates.Get(i) != model.Unspent {
			continue
		}
		op := wire.OutPoint{Hash: u.TxHash, Index: uint32(i)}
		if _, err := cursor.TryRemoveUnspentTxOutput(op); err != nil {
			return fmt.Errorf("remove unspent output %s: %w", op, err)
		}
	}
	return nil
}

// finish writes the replay logs, header, counters and the new tip.
func (a *blockApply) finish(txes []*wire.MsgTx) error {
	h := a.header
	if ok, err := a.cursor.TryAddBlockSpentTxes(h.Height, a.spent); err != nil {
		return fmt.Errorf("add spent txes: %w", err)
	} else if !ok {
		return fmt.Errorf("%w: spent txes already stored at height %d", ErrStateMismatch, h.Height)
	}
	if ok, err := a.cursor.TryAddBlockUnmintedTxes(h.Hash, a.unminted); err != nil {
		return fmt.Errorf("add unminted txes: %w", err)
	} else if !ok {
		return fmt.Errorf("%w: unminted txes already stored for %s", ErrStateMismatch, h.Hash)
	}
	if _, err := a.cursor.TryAddHeader(h); err != nil {
		return fmt.Errorf("add header: %w", err)
	}
	if err := addCounts(a.cursor, blockCounts(txes, len(a.spent), a.overwritten), 1); err != nil {
		return err
	}
	if err := a.cursor.SetChainTip(h); err != nil {
		return fmt.Errorf("set chain tip: %w", err)
	}
	return nil
}
