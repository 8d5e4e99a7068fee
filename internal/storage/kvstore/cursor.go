package kvstore

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/codec"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/storage"
	"go.uber.org/zap"
)

var (
	chainTipKey           = []byte("chainTip")
	unspentTxCountKey     = []byte("unspentTxCount")
	unspentOutputCountKey = []byte("unspentOutputCount")
	totalTxCountKey       = []byte("totalTxCount")
	totalInputCountKey    = []byte("totalInputCount")
	totalOutputCountKey   = []byte("totalOutputCount")
)

var errStopIteration = errors.New("stop iteration")

// Cursor is a ChainStateCursor over a KV engine. It is not safe for concurrent use.
type Cursor struct {
	kv     KV
	logger *zap.Logger

	tx       Tx
	readOnly bool
	closed   bool
}

var _ storage.ChainStateCursor = (*Cursor)(nil)

func (c *Cursor) InTransaction() bool {
	return c.tx != nil
}

func (c *Cursor) BeginTransaction(ctx context.Context, readOnly bool) error {
	if c.closed {
		return storage.ErrClosed
	}
	if c.tx != nil {
		return storage.ErrInTransaction
	}
	tx, err := c.kv.Begin(ctx, readOnly)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	c.tx, c.readOnly = tx, readOnly
	return nil
}

func (c *Cursor) CommitTransaction() error {
	if c.tx == nil {
		return storage.ErrNotInTransaction
	}
	tx := c.tx
	c.tx = nil
	if c.readOnly {
		return tx.Rollback()
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (c *Cursor) RollbackTransaction() error {
	if c.tx == nil {
		return storage.ErrNotInTransaction
	}
	tx := c.tx
	c.tx = nil
	return tx.Rollback()
}

func (c *Cursor) check(write bool) error {
	switch {
	case c.closed:
		return storage.ErrClosed
	case c.tx == nil:
		return storage.ErrNotInTransaction
	case write && c.readOnly:
		return storage.ErrReadOnlyTransaction
	}
	return nil
}

func (c *Cursor) get(table Table, key []byte) ([]byte, bool, error) {
	if err := c.check(false); err != nil {
		return nil, false, err
	}
	value, ok, err := c.tx.Get(table, key)
	if err != nil {
		return nil, false, fmt.Errorf("get %s: %w", table, err)
	}
	return value, ok, nil
}

func (c *Cursor) contains(table Table, key []byte) (bool, error) {
	_, ok, err := c.get(table, key)
	return ok, err
}

func (c *Cursor) put(table Table, key, value []byte) error {
	if err := c.check(true); err != nil {
		return err
	}
	if err := c.tx.Put(table, key, value); err != nil {
		return fmt.Errorf("put %s: %w", table, err)
	}
	return nil
}

// tryAdd writes value unless key exists. encode runs only when the write happens.
func (c *Cursor) tryAdd(table Table, key []byte, encode func() ([]byte, error)) (bool, error) {
	if err := c.check(true); err != nil {
		return false, err
	}
	ok, err := c.contains(table, key)
	if err != nil || ok {
		return false, err
	}
	value, err := encode()
	if err != nil {
		return false, fmt.Errorf("encode %s: %w", table, err)
	}
	return true, c.put(table, key, value)
}

func (c *Cursor) tryUpdate(table Table, key []byte, encode func() ([]byte, error)) (bool, error) {
	if err := c.check(true); err != nil {
		return false, err
	}
	ok, err := c.contains(table, key)
	if err != nil || !ok {
		return false, err
	}
	value, err := encode()
	if err != nil {
		return false, fmt.Errorf("encode %s: %w", table, err)
	}
	return true, c.put(table, key, value)
}

func (c *Cursor) tryRemove(table Table, key []byte) (bool, error) {
	if err := c.check(true); err != nil {
		return false, err
	}
	ok, err := c.contains(table, key)
	if err != nil || !ok {
		return false, err
	}
	if err := c.tx.Delete(table, key); err != nil {
		return false, fmt.Errorf("delete %s: %w", table, err)
	}
	return true, nil
}

func tryGet[T any](c *Cursor, table Table, key []byte, decode func([]byte) (T, error)) (T, bool, error) {
	var zero T
	value, ok, err := c.get(table, key)
	if err != nil || !ok {
		return zero, false, err
	}
	v, err := decode(value)
	if err != nil {
		return zero, false, fmt.Errorf("decode %s: %w", table, err)
	}
	return v, true, nil
}

func (c *Cursor) ChainTip() (*model.ChainedHeader, error) {
	tip, _, err := tryGet(c, Globals, chainTipKey, codec.ChainedHeaderFromBytes)
	return tip, err
}

func (c *Cursor) SetChainTip(tip *model.ChainedHeader) error {
	if err := c.check(true); err != nil {
		return err
	}
	if tip == nil {
		if err := c.tx.Delete(Globals, chainTipKey); err != nil {
			return fmt.Errorf("delete chain tip: %w", err)
		}
		return nil
	}
	value, err := codec.ChainedHeaderBytes(tip)
	if err != nil {
		return fmt.Errorf("encode chain tip: %w", err)
	}
	return c.put(Globals, chainTipKey, value)
}

func (c *Cursor) counter(key []byte) (int, error) {
	v, _, err := tryGet(c, Globals, key, codec.Int64FromBytes)
	return int(v), err
}

func (c *Cursor) setCounter(key []byte, value int) error {
	return c.put(Globals, key, codec.Int64Bytes(int64(value)))
}

func (c *Cursor) UnspentTxCount() (int, error) {
	return c.counter(unspentTxCountKey)
}

func (c *Cursor) SetUnspentTxCount(value int) error {
	return c.setCounter(unspentTxCountKey, value)
}

func (c *Cursor) UnspentOutputCount() (int, error) {
	return c.counter(unspentOutputCountKey)
}

func (c *Cursor) SetUnspentOutputCount(value int) error {
	return c.setCounter(unspentOutputCountKey, value)
}

func (c *Cursor) TotalTxCount() (int, error) {
	return c.counter(totalTxCountKey)
}

func (c *Cursor) SetTotalTxCount(value int) error {
	return c.setCounter(totalTxCountKey, value)
}

func (c *Cursor) TotalInputCount() (int, error) {
	return c.counter(totalInputCountKey)
}

func (c *Cursor) SetTotalInputCount(value int) error {
	return c.setCounter(totalInputCountKey, value)
}

func (c *Cursor) TotalOutputCount() (int, error) {
	return c.counter(totalOutputCountKey)
}

func (c *Cursor) SetTotalOutputCount(value int) error {
	return c.setCounter(totalOutputCountKey, value)
}

func (c *Cursor) ContainsHeader(blockHash chainhash.Hash) (bool, error) {
	return c.contains(Headers, codec.HashKey(blockHash))
}

func (c *Cursor) TryGetHeader(blockHash chainhash.Hash) (*model.ChainedHeader, bool, error) {
	return tryGet(c, Headers, codec.HashKey(blockHash), codec.ChainedHeaderFromBytes)
}

func (c *Cursor) TryAddHeader(header *model.ChainedHeader) (bool, error) {
	return c.tryAdd(Headers, codec.HashKey(header.Hash), func() ([]byte, error) {
		return codec.ChainedHeaderBytes(header)
	})
}

func (c *Cursor) TryRemoveHeader(blockHash chainhash.Hash) (bool, error) {
	return c.tryRemove(Headers, codec.HashKey(blockHash))
}

func (c *Cursor) ContainsUnspentTx(txHash chainhash.Hash) (bool, error) {
	return c.contains(UnspentTxes, codec.HashKey(txHash))
}

func (c *Cursor) TryGetUnspentTx(txHash chainhash.Hash) (model.UnspentTx, bool, error) {
	return tryGet(c, UnspentTxes, codec.HashKey(txHash), codec.UnspentTxFromBytes)
}

func (c *Cursor) TryAddUnspentTx(unspentTx model.UnspentTx) (bool, error) {
	return c.tryAdd(UnspentTxes, codec.HashKey(unspentTx.TxHash), func() ([]byte, error) {
		return codec.UnspentTxBytes(unspentTx)
	})
}

func (c *Cursor) TryRemoveUnspentTx(txHash chainhash.Hash) (bool, error) {
	return c.tryRemove(UnspentTxes, codec.HashKey(txHash))
}

func (c *Cursor) TryUpdateUnspentTx(unspentTx model.UnspentTx) (bool, error) {
	return c.tryUpdate(UnspentTxes, codec.HashKey(unspentTx.TxHash), func() ([]byte, error) {
		return codec.UnspentTxBytes(unspentTx)
	})
}

func (c *Cursor) ReadUnspentTransactions() iter.Seq2[model.UnspentTx, error] {
	return func(yield func(model.UnspentTx, error) bool) {
		if err := c.check(false); err != nil {
			yield(model.UnspentTx{}, err)
			return
		}
		err := c.tx.ForEach(UnspentTxes, func(_, value []byte) error {
			u, err := codec.UnspentTxFromBytes(value)
			if err != nil {
				return fmt.Errorf("decode %s: %w", UnspentTxes, err)
			}
			if !yield(u, nil) {
				return errStopIteration
			}
			return nil
		})
		if err != nil && !errors.Is(err, errStopIteration) {
			yield(model.UnspentTx{}, err)
		}
	}
}

func (c *Cursor) ContainsUnspentTxOutput(outPoint wire.OutPoint) (bool, error) {
	return c.contains(UnspentTxOutputs, codec.OutPointKey(outPoint))
}

func (c *Cursor) TryGetUnspentTxOutput(outPoint wire.OutPoint) (*wire.TxOut, bool, error) {
	return tryGet(c, UnspentTxOutputs, codec.OutPointKey(outPoint), codec.TxOutFromBytes)
}

func (c *Cursor) TryAddUnspentTxOutput(outPoint wire.OutPoint, txOut *wire.TxOut) (bool, error) {
	return c.tryAdd(UnspentTxOutputs, codec.OutPointKey(outPoint), func() ([]byte, error) {
		return codec.TxOutBytes(txOut)
	})
}

func (c *Cursor) TryRemoveUnspentTxOutput(outPoint wire.OutPoint) (bool, error) {
	return c.tryRemove(UnspentTxOutputs, codec.OutPointKey(outPoint))
}

func (c *Cursor) ContainsBlockSpentTxes(blockHeight int) (bool, error) {
	key, err := codec.HeightKey(blockHeight)
	if err != nil {
		return false, err
	}
	return c.contains(BlockSpentTxes, key)
}

func (c *Cursor) TryGetBlockSpentTxes(blockHeight int) (model.BlockSpentTxes, bool, error) {
	key, err := codec.HeightKey(blockHeight)
	if err != nil {
		return nil, false, err
	}
	return tryGet(c, BlockSpentTxes, key, codec.BlockSpentTxesFromBytes)
}

func (c *Cursor) TryAddBlockSpentTxes(blockHeight int, spentTxes model.BlockSpentTxes) (bool, error) {
	key, err := codec.HeightKey(blockHeight)
	if err != nil {
		return false, err
	}
	return c.tryAdd(BlockSpentTxes, key, func() ([]byte, error) {
		return codec.BlockSpentTxesBytes(spentTxes)
	})
}

func (c *Cursor) TryRemoveBlockSpentTxes(blockHeight int) (bool, error) {
	key, err := codec.HeightKey(blockHeight)
	if err != nil {
		return false, err
	}
	return c.tryRemove(BlockSpentTxes, key)
}

func (c *Cursor) ContainsBlockUnmintedTxes(blockHash chainhash.Hash) (bool, error) {
	return c.contains(BlockUnmintedTxes, codec.HashKey(blockHash))
}

func (c *Cursor) TryGetBlockUnmintedTxes(blockHash chainhash.Hash) (model.BlockUnmintedTxes, bool, error) {
	return tryGet(c, BlockUnmintedTxes, codec.HashKey(blockHash), codec.BlockUnmintedTxesFromBytes)
}

func (c *Cursor) TryAddBlockUnmintedTxes(blockHash chainhash.Hash, unmintedTxes model.BlockUnmintedTxes) (bool, error) {
	return c.tryAdd(BlockUnmintedTxes, codec.HashKey(blockHash), func() ([]byte, error) {
		return codec.BlockUnmintedTxesBytes(unmintedTxes)
	})
}

func (c *Cursor) TryRemoveBlockUnmintedTxes(blockHash chainhash.Hash) (bool, error) {
	return c.tryRemove(BlockUnmintedTxes, codec.HashKey(blockHash))
}

func (c *Cursor) Flush() error {
	if c.closed {
		return storage.ErrClosed
	}
	return c.kv.Flush()
}

func (c *Cursor) Defragment() error {
	if c.closed {
		return storage.ErrClosed
	}
	return c.kv.Defragment()
}

// Close rolls back an open transaction. The engine stays open; it belongs
// to the Store.
func (c *Cursor) Close() error {
	var err error
	if c.tx != nil {
		err = c.RollbackTransaction()
	}
	c.closed = true
	if err != nil {
		c.logger.Warn("rollback on close failed", zap.Error(err))
	}
	return err
}
