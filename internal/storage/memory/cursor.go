package memory

import (
	"context"
	"iter"
	"slices"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/codec"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/storage"
)

// Cursor is a ChainStateCursor over a Store. It is not safe for concurrent use.
type Cursor struct {
	store *Store

	inTx     bool
	readOnly bool
	closed   bool
	snap     fields
}

var _ storage.ChainStateCursor = (*Cursor)(nil)

func (c *Cursor) InTransaction() bool {
	return c.inTx
}

func (c *Cursor) BeginTransaction(ctx context.Context, readOnly bool) error {
	if c.closed {
		return storage.ErrClosed
	}
	if c.inTx {
		return storage.ErrInTransaction
	}
	if !readOnly {
		if err := c.store.writer.Acquire(ctx, 1); err != nil {
			return err
		}
	}
	snap, err := c.store.snapshot()
	if err != nil {
		if !readOnly {
			c.store.writer.Release(1)
		}
		return err
	}
	c.snap, c.inTx, c.readOnly = snap, true, readOnly
	return nil
}

func (c *Cursor) CommitTransaction() error {
	if !c.inTx {
		return storage.ErrNotInTransaction
	}
	if !c.readOnly {
		c.store.commit(c.snap)
	}
	c.end()
	return nil
}

func (c *Cursor) RollbackTransaction() error {
	if !c.inTx {
		return storage.ErrNotInTransaction
	}
	c.end()
	return nil
}

func (c *Cursor) end() {
	if !c.readOnly {
		c.store.writer.Release(1)
	}
	c.snap = fields{}
	c.inTx, c.readOnly = false, false
}

func (c *Cursor) check(write bool) error {
	switch {
	case c.closed:
		return storage.ErrClosed
	case !c.inTx:
		return storage.ErrNotInTransaction
	case write && c.readOnly:
		return storage.ErrReadOnlyTransaction
	}
	return nil
}

func (c *Cursor) ChainTip() (*model.ChainedHeader, error) {
	if err := c.check(false); err != nil {
		return nil, err
	}
	return c.snap.chainTip.value, nil
}

func (c *Cursor) SetChainTip(tip *model.ChainedHeader) error {
	if err := c.check(true); err != nil {
		return err
	}
	c.snap.chainTip.value, c.snap.chainTip.dirty = tip, true
	return nil
}

func (c *Cursor) counter(i int) (int, error) {
	if err := c.check(false); err != nil {
		return 0, err
	}
	return c.snap.counters[i].value, nil
}

func (c *Cursor) setCounter(i, value int) error {
	if err := c.check(true); err != nil {
		return err
	}
	c.snap.counters[i].value, c.snap.counters[i].dirty = value, true
	return nil
}

func (c *Cursor) UnspentTxCount() (int, error) {
	return c.counter(unspentTxCount)
}

func (c *Cursor) SetUnspentTxCount(value int) error {
	return c.setCounter(unspentTxCount, value)
}

func (c *Cursor) UnspentOutputCount() (int, error) {
	return c.counter(unspentOutputCount)
}

func (c *Cursor) SetUnspentOutputCount(value int) error {
	return c.setCounter(unspentOutputCount, value)
}

func (c *Cursor) TotalTxCount() (int, error) {
	return c.counter(totalTxCount)
}

func (c *Cursor) SetTotalTxCount(value int) error {
	return c.setCounter(totalTxCount, value)
}

func (c *Cursor) TotalInputCount() (int, error) {
	return c.counter(totalInputCount)
}

func (c *Cursor) SetTotalInputCount(value int) error {
	return c.setCounter(totalInputCount, value)
}

func (c *Cursor) TotalOutputCount() (int, error) {
	return c.counter(totalOutputCount)
}

func (c *Cursor) SetTotalOutputCount(value int) error {
	return c.setCounter(totalOutputCount, value)
}

func contains[V any](c *Cursor, f *field[*tree[V]], key string) (bool, error) {
	if err := c.check(false); err != nil {
		return false, err
	}
	return f.value.Has(item[V]{key: key}), nil
}

func tryGet[V any](c *Cursor, f *field[*tree[V]], key string) (V, bool, error) {
	if err := c.check(false); err != nil {
		var zero V
		return zero, false, err
	}
	it, ok := f.value.Get(item[V]{key: key})
	return it.value, ok, nil
}

func tryAdd[V any](c *Cursor, f *field[*tree[V]], key string, value V) (bool, error) {
	if err := c.check(true); err != nil {
		return false, err
	}
	if f.value.Has(item[V]{key: key}) {
		return false, nil
	}
	f.value.ReplaceOrInsert(item[V]{key: key, value: value})
	f.dirty = true
	return true, nil
}

func tryUpdate[V any](c *Cursor, f *field[*tree[V]], key string, value V) (bool, error) {
	if err := c.check(true); err != nil {
		return false, err
	}
	if !f.value.Has(item[V]{key: key}) {
		return false, nil
	}
	f.value.ReplaceOrInsert(item[V]{key: key, value: value})
	f.dirty = true
	return true, nil
}

func tryRemove[V any](c *Cursor, f *field[*tree[V]], key string) (bool, error) {
	if err := c.check(true); err != nil {
		return false, err
	}
	if _, ok := f.value.Delete(item[V]{key: key}); !ok {
		return false, nil
	}
	f.dirty = true
	return true, nil
}

func hashKey(h chainhash.Hash) string {
	return string(codec.HashKey(h))
}

func heightKey(height int) (string, error) {
	key, err := codec.HeightKey(height)
	return string(key), err
}

func (c *Cursor) ContainsHeader(blockHash chainhash.Hash) (bool, error) {
	return contains(c, &c.snap.headers, hashKey(blockHash))
}

func (c *Cursor) TryGetHeader(blockHash chainhash.Hash) (*model.ChainedHeader, bool, error) {
	return tryGet(c, &c.snap.headers, hashKey(blockHash))
}

func (c *Cursor) TryAddHeader(header *model.ChainedHeader) (bool, error) {
	return tryAdd(c, &c.snap.headers, hashKey(header.Hash), header)
}

func (c *Cursor) TryRemoveHeader(blockHash chainhash.Hash) (bool, error) {
	return tryRemove(c, &c.snap.headers, hashKey(blockHash))
}

func (c *Cursor) ContainsUnspentTx(txHash chainhash.Hash) (bool, error) {
	return contains(c, &c.snap.unspentTxes, hashKey(txHash))
}

func (c *Cursor) TryGetUnspentTx(txHash chainhash.Hash) (model.UnspentTx, bool, error) {
	return tryGet(c, &c.snap.unspentTxes, hashKey(txHash))
}

func (c *Cursor) TryAddUnspentTx(unspentTx model.UnspentTx) (bool, error) {
	return tryAdd(c, &c.snap.unspentTxes, hashKey(unspentTx.TxHash), unspentTx)
}

func (c *Cursor) TryRemoveUnspentTx(txHash chainhash.Hash) (bool, error) {
	return tryRemove(c, &c.snap.unspentTxes, hashKey(txHash))
}

func (c *Cursor) TryUpdateUnspentTx(unspentTx model.UnspentTx) (bool, error) {
	return tryUpdate(c, &c.snap.unspentTxes, hashKey(unspentTx.TxHash), unspentTx)
}

func (c *Cursor) ReadUnspentTransactions() iter.Seq2[model.UnspentTx, error] {
	return func(yield func(model.UnspentTx, error) bool) {
		if err := c.check(false); err != nil {
			yield(model.UnspentTx{}, err)
			return
		}
		c.snap.unspentTxes.value.Ascend(func(it item[model.UnspentTx]) bool {
			return yield(it.value, nil)
		})
	}
}

func copyTxOut(out *wire.TxOut) *wire.TxOut {
	return wire.NewTxOut(out.Value, slices.Clone(out.PkScript))
}

func (c *Cursor) ContainsUnspentTxOutput(outPoint wire.OutPoint) (bool, error) {
	return contains(c, &c.snap.outputs, string(codec.OutPointKey(outPoint)))
}

func (c *Cursor) TryGetUnspentTxOutput(outPoint wire.OutPoint) (*wire.TxOut, bool, error) {
	out, ok, err := tryGet(c, &c.snap.outputs, string(codec.OutPointKey(outPoint)))
	if !ok || err != nil {
		return nil, ok, err
	}
	return copyTxOut(out), true, nil
}

func (c *Cursor) TryAddUnspentTxOutput(outPoint wire.OutPoint, txOut *wire.TxOut) (bool, error) {
	return tryAdd(c, &c.snap.outputs, string(codec.OutPointKey(outPoint)), copyTxOut(txOut))
}

func (c *Cursor) TryRemoveUnspentTxOutput(outPoint wire.OutPoint) (bool, error) {
	return tryRemove(c, &c.snap.outputs, string(codec.OutPointKey(outPoint)))
}

func (c *Cursor) ContainsBlockSpentTxes(blockHeight int) (bool, error) {
	key, err := heightKey(blockHeight)
	if err != nil {
		return false, err
	}
	return contains(c, &c.snap.spentTxes, key)
}

func (c *Cursor) TryGetBlockSpentTxes(blockHeight int) (model.BlockSpentTxes, bool, error) {
	key, err := heightKey(blockHeight)
	if err != nil {
		return nil, false, err
	}
	txes, ok, err := tryGet(c, &c.snap.spentTxes, key)
	return slices.Clone(txes), ok, err
}

func (c *Cursor) TryAddBlockSpentTxes(blockHeight int, spentTxes model.BlockSpentTxes) (bool, error) {
	key, err := heightKey(blockHeight)
	if err != nil {
		return false, err
	}
	return tryAdd(c, &c.snap.spentTxes, key, slices.Clone(spentTxes))
}

func (c *Cursor) TryRemoveBlockSpentTxes(blockHeight int) (bool, error) {
	key, err := heightKey(blockHeight)
	if err != nil {
		return false, err
	}
	return tryRemove(c, &c.snap.spentTxes, key)
}

func (c *Cursor) ContainsBlockUnmintedTxes(blockHash chainhash.Hash) (bool, error) {
	return contains(c, &c.snap.unmintedTxes, hashKey(blockHash))
}

func (c *Cursor) TryGetBlockUnmintedTxes(blockHash chainhash.Hash) (model.BlockUnmintedTxes, bool, error) {
	txes, ok, err := tryGet(c, &c.snap.unmintedTxes, hashKey(blockHash))
	return slices.Clone(txes), ok, err
}

func (c *Cursor) TryAddBlockUnmintedTxes(blockHash chainhash.Hash, unmintedTxes model.BlockUnmintedTxes) (bool, error) {
	return tryAdd(c, &c.snap.unmintedTxes, hashKey(blockHash), slices.Clone(unmintedTxes))
}

func (c *Cursor) TryRemoveBlockUnmintedTxes(blockHash chainhash.Hash) (bool, error) {
	return tryRemove(c, &c.snap.unmintedTxes, hashKey(blockHash))
}

// Flush is a no-op; committed state lives in memory only.
func (c *Cursor) Flush() error {
	return nil
}

// Defragment is a no-op.
func (c *Cursor) Defragment() error {
	return nil
}

func (c *Cursor) Close() error {
	if c.inTx {
		c.end()
	}
	c.closed = true
	return nil
}
