package chainstate

import (
	"context"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/chain"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/storage"
	"go.uber.org/zap"
)

// RollbackBlock undoes AddBlock for the tip block at header. Transactions
// are unwound in reverse so outputs spent within the block are restored
// before their creating transaction is removed. Previous outputs are read
// back through the block's unminted log; a *MissingDataError means a
// previous transaction is not stored locally.
func (b *Builder) RollbackBlock(ctx context.Context, header *model.ChainedHeader, txes []*wire.MsgTx) (err error) {
	started := time.Now()
	defer func() {
		b.metrics.ObserveRollbackBlock(err, len(txes), started)
	}()

	current := b.Chain()
	tip := current.LastBlock()
	if tip == nil || tip.Hash != header.Hash {
		return fmt.Errorf("%w: %s", chain.ErrNotTip, header)
	}
	var prevTip *model.ChainedHeader
	if header.Height > 0 {
		prevTip, _ = current.BlockAt(header.Height - 1)
	}

	cursor, err := b.beginWrite(ctx, tip)
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

	spent, ok, err := cursor.TryGetBlockSpentTxes(header.Height)
	if err != nil {
		return fmt.Errorf("get spent txes: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: spent txes at height %d", ErrReplayLogMissing, header.Height)
	}
	unminted, ok, err := cursor.TryGetBlockUnmintedTxes(header.Hash)
	if err != nil {
		return fmt.Errorf("get unminted txes: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: unminted txes for %s", ErrReplayLogMissing, header.Hash)
	}
	if len(unminted) != len(txes) {
		return fmt.Errorf("%w: %d unminted entries for %d txes", ErrStateMismatch, len(unminted), len(txes))
	}

	undo := &blockUndo{
		cursor:   cursor,
		lookup:   b.txLookup,
		header:   header,
		txes:     txes,
		spent:    make(map[chainhash.Hash]model.SpentTx, len(spent)),
		prevTxes: make(map[model.TxLookupKey]*wire.MsgTx),
	}
	for _, s := range spent {
		undo.spent[s.TxHash] = s
	}
	var overwritten []model.UnspentTx
	for _, u := range unminted {
		if u.Overwritten != nil {
			overwritten = append(overwritten, *u.Overwritten)
		}
	}
	for i := len(txes) - 1; i >= 0; i-- {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := undo.undoTx(i, unminted[i]); err != nil {
			return err
		}
	}

	if err := undo.finish(prevTip, len(spent), overwritten); err != nil {
		return err
	}
	if err := b.commit(cursor, func(c *chain.Builder) error { return c.RemoveBlock(header) }); err != nil {
		return err
	}
	committed = true

	b.logger.Debug("block rolled back",
		zap.Stringer("block", header),
		zap.Int("txes", len(txes)),
		zap.Int("restored_txes", len(spent)),
	)
	return nil
}

type blockUndo struct {
	cursor storage.ChainStateCursor
	lookup TxLookup
	header *model.ChainedHeader
	txes   []*wire.MsgTx
	spent  map[chainhash.Hash]model.SpentTx
	// prevTxes caches transactions read back from block storage.
	prevTxes map[model.TxLookupKey]*wire.MsgTx
}

func (u *blockUndo) undoTx(txIndex int, unminted model.UnmintedTx) error {
	tx := u.txes[txIndex]
	txHash := tx.TxHash()
	if unminted.TxHash != txHash {
		return fmt.Errorf("%w: unminted entry %d is %s, block has %s", ErrStateMismatch, txIndex, unminted.TxHash, txHash)
	}

	if err := u.unmint(txHash, tx); err != nil {
		return err
	}
	if unminted.Overwritten != nil {
		if err := u.restoreOverwritten(*unminted.Overwritten, tx); err != nil {
			return err
		}
	}
	if txIndex == 0 {
		return nil
	}

	if len(unminted.PrevOutputTxKeys) != len(tx.TxIn) {
		return fmt.Errorf("%w: tx %s has %d inputs, %d lookup keys", ErrStateMismatch, txHash, len(tx.TxIn), len(unminted.PrevOutputTxKeys))
	}
	for i := len(tx.TxIn) - 1; i >= 0; i-- {
		if err := u.unspend(tx.TxIn[i].PreviousOutPoint, unminted.PrevOutputTxKeys[i]); err != nil {
			return err
		}
	}
	return nil
}

// unmint removes the outputs the transaction created. Every later spender in
// the block has been undone already, so they must all be unspent.
func (u *blockUndo) unmint(txHash chainhash.Hash, tx *wire.MsgTx) error {
	if len(tx.TxOut) == 0 {
		return nil
	}
	unspent, ok, err := u.cursor.TryGetUnspentTx(txHash)
	if err != nil {
		return fmt.Errorf("get unspent tx %s: %w", txHash, err)
	}
	if !ok || !unspent.OutputStates.All(model.Unspent) {
		return fmt.Errorf("%w: tx %s not fully unspent at rollback", ErrStateMismatch, txHash)
	}
	for i := range tx.TxOut {
		op := wire.OutPoint{Hash: txHash, Index: uint32(i)}
		if _, err := u.cursor.TryRemoveUnspentTxOutput(op); err != nil {
			return fmt.Errorf("remove unspent output %s: %w", op, err)
		}
	}
	if _, err := u.cursor.TryRemoveUnspentTx(txHash); err != nil {
		return fmt.Errorf("remove unspent tx %s: %w", txHash, err)
	}
	return nil
}

// restoreOverwritten puts back the entry a duplicate transaction replaced.
// Both share a hash, so the remaining outputs are read from tx.
func (u *blockUndo) restoreOverwritten(prev model.UnspentTx, tx *wire.MsgTx) error {
	if prev.OutputStates.Len() != len(tx.TxOut) {
		return fmt.Errorf("%w: overwritten tx %s has %d outputs, block tx %d", ErrStateMismatch, prev.TxHash, prev.OutputStates.Len(), len(tx.TxOut))
	}
	if ok, err := u.cursor.TryAddUnspentTx(prev); err != nil {
		return fmt.Errorf("restore unspent tx %s: %w", prev.TxHash, err)
	} else if !ok {
		return fmt.Errorf("%w: tx %s still unspent at rollback", ErrStateMismatch, prev.TxHash)
	}
	for i, out := range tx.TxOut {
		if prev.OutputStates.Get(i) != model.Unspent {
			continue
		}
		op := wire.OutPoint{Hash: prev.TxHash, Index: uint32(i)}
		if _, err := u.cursor.TryAddUnspentTxOutput(op, out); err != nil {
			return fmt.Errorf("restore unspent output %s: %w", op, err)
		}
	}
	return nil
}

// unspend marks op unspent again, recreating its transaction from the spent
// log when the block had spent it fully.
func (u *blockUndo) unspend(op wire.OutPoint, key model.TxLookupKey) error {
	unspent, ok, err := u.cursor.TryGetUnspentTx(op.Hash)
	if err != nil {
		return fmt.Errorf("get unspent tx %s: %w", op.Hash, err)
	}
	if !ok {
		s, ok := u.spent[op.Hash]
		if !ok {
			return fmt.Errorf("%w: tx %s neither unspent nor in spent log", ErrStateMismatch, op.Hash)
		}
		unspent = model.UnspentTx{
			TxHash:       s.TxHash,
			BlockHeight:  s.ConfirmedBlockHeight,
			TxIndex:      s.TxIndex,
			OutputStates: model.NewOutputStates(s.OutputCount, model.Spent),
		}
		if _, err := u.cursor.TryAddUnspentTx(unspent); err != nil {
			return fmt.Errorf("restore unspent tx %s: %w", op.Hash, err)
		}
	}
	if int(op.Index) >= unspent.OutputStates.Len() || unspent.OutputStates.Get(int(op.Index)) != model.Spent {
		return fmt.Errorf("%w: output %s not spent at rollback", ErrStateMismatch, op)
	}

	txOut, err := u.prevOutput(op, key)
	if err != nil {
		return err
	}
	if _, err := u.cursor.TryUpdateUnspentTx(unspent.SetOutputState(int(op.Index), model.Unspent)); err != nil {
		return fmt.Errorf("update unspent tx %s: %w", op.Hash, err)
	}
	if _, err := u.cursor.TryAddUnspentTxOutput(op, txOut); err != nil {
		return fmt.Errorf("restore unspent output %s: %w", op, err)
	}
	return nil
}

func (u *blockUndo) prevOutput(op wire.OutPoint, key model.TxLookupKey) (*wire.TxOut, error) {
	prevTx, ok := u.prevTxes[key]
	if !ok {
		switch {
		case key.BlockHash == u.header.Hash:
			if key.TxIndex >= len(u.txes) {
				return nil, fmt.Errorf("%w: lookup key %d beyond block", ErrStateMismatch, key.TxIndex)
			}
			prevTx = u.txes[key.TxIndex]
		default:
			var err error
			prevTx, ok, err = u.lookup.TryGetTransaction(key.BlockHash, key.TxIndex)
			if err != nil {
				return nil, fmt.Errorf("read tx %d of %s: %w", key.TxIndex, key.BlockHash, err)
			}
			if !ok {
				return nil, &MissingDataError{BlockHash: key.BlockHash}
			}
		}
		if prevTx.TxHash() != op.Hash {
			return nil, fmt.Errorf("%w: tx %d of %s is not %s", ErrStateMismatch, key.TxIndex, key.BlockHash, op.Hash)
		}
		u.prevTxes[key] = prevTx
	}
	if int(op.Index) >= len(prevTx.TxOut) {
		return nil, fmt.Errorf("%w: %s beyond %d outputs", ErrStateMismatch, op, len(prevTx.TxOut))
	}
	return prevTx.TxOut[op.Index], nil
}

func (u *blockUndo) finish(prevTip *model.ChainedHeader, fullySpent int, overwritten []model.UnspentTx) error {
	h := u.header
	if _, err := u.cursor.TryRemoveBlockSpentTxes(h.Height); err != nil {
		return fmt.Errorf("remove spent txes: %w", err)
	}
	if _, err := u.cursor.TryRemoveBlockUnmintedTxes(h.Hash); err != nil {
		return fmt.Errorf("remove unminted txes: %w", err)
	}
	if _, err := u.cursor.TryRemoveHeader(h.Hash); err != nil {
		return fmt.Errorf("remove header: %w", err)
	}
	if err := addCounts(u.cursor, blockCounts(u.txes, fullySpent, overwritten), -1); err != nil {
		return err
	}
	if err := u.cursor.SetChainTip(prevTip); err != nil {
		return fmt.Errorf("set chain tip: %w", err)
	}
	return nil
}
