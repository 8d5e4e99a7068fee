// Package storage defines the chain-state cursor contract shared by every
// backend, the cursor pool, and the block storage collaborators.
//
// A cursor is a small state machine: BeginTransaction opens a read-only or
// writable transaction and CommitTransaction or RollbackTransaction ends it.
// Violations do not panic. Beginning twice, ending or accessing data outside
// a transaction, and writing in a read-only one return errors wrapping
// ErrInvalidOperation. A closed cursor refuses new transactions with
// ErrClosed.
package storage

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

import (
	"context"
	"iter"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/model"
)

// ChainStateCursor is a transactional view over the chain-state tables.
// Reads require a transaction; writes require a write transaction. Try*
// methods report expected misses and duplicates through their bool result.
type ChainStateCursor interface {
	InTransaction() bool
	// BeginTransaction starts a transaction. Write transactions wait for the
	// store's single writer slot.
	BeginTransaction(ctx context.Context, readOnly bool) error
	CommitTransaction() error
	RollbackTransaction() error

	ChainTip() (*model.ChainedHeader, error)
	SetChainTip(tip *model.ChainedHeader) error
	UnspentTxCount() (int, error)
	SetUnspentTxCount(value int) error
	UnspentOutputCount() (int, error)
	SetUnspentOutputCount(value int) error
	TotalTxCount() (int, error)
	SetTotalTxCount(value int) error
	TotalInputCount() (int, error)
	SetTotalInputCount(value int) error
	TotalOutputCount() (int, error)
	SetTotalOutputCount(value int) error

	ContainsHeader(blockHash chainhash.Hash) (bool, error)
	TryGetHeader(blockHash chainhash.Hash) (*model.ChainedHeader, bool, error)
	TryAddHeader(header *model.ChainedHeader) (bool, error)
	TryRemoveHeader(blockHash chainhash.Hash) (bool, error)

	ContainsUnspentTx(txHash chainhash.Hash) (bool, error)
	TryGetUnspentTx(txHash chainhash.Hash) (model.UnspentTx, bool, error)
	TryAddUnspentTx(unspentTx model.UnspentTx) (bool, error)
	TryRemoveUnspentTx(txHash chainhash.Hash) (bool, error)
	TryUpdateUnspentTx(unspentTx model.UnspentTx) (bool, error)
	// ReadUnspentTransactions lists every unspent tx in no particular order.
	ReadUnspentTransactions() iter.Seq2[model.UnspentTx, error]

	ContainsUnspentTxOutput(outPoint wire.OutPoint) (bool, error)
	TryGetUnspentTxOutput(outPoint wire.OutPoint) (*wire.TxOut, bool, error)
	TryAddUnspentTxOutput(outPoint wire.OutPoint, txOut *wire.TxOut) (bool, error)
	TryRemoveUnspentTxOutput(outPoint wire.OutPoint) (bool, error)

	ContainsBlockSpentTxes(blockHeight int) (bool, error)
	TryGetBlockSpentTxes(blockHeight int) (model.BlockSpentTxes, bool, error)
	TryAddBlockSpentTxes(blockHeight int, spentTxes model.BlockSpentTxes) (bool, error)
	TryRemoveBlockSpentTxes(blockHeight int) (bool, error)

	ContainsBlockUnmintedTxes(blockHash chainhash.Hash) (bool, error)
	TryGetBlockUnmintedTxes(blockHash chainhash.Hash) (model.BlockUnmintedTxes, bool, error)
	TryAddBlockUnmintedTxes(blockHash chainhash.Hash, unmintedTxes model.BlockUnmintedTxes) (bool, error)
	TryRemoveBlockUnmintedTxes(blockHash chainhash.Hash) (bool, error)

	// Flush makes committed transactions durable.
	Flush() error
	// Defragment reclaims storage space where the backend can do so online.
	// Backends without online compaction only report free space.
	Defragment() error
	Close() error
}

// ChainStateStorage opens cursors over one chain-state store.
type ChainStateStorage interface {
	OpenCursor() (ChainStateCursor, error)
	Close() error
}

// BlockStorage persists chained headers and invalid-block marks.
type BlockStorage interface {
	TryAddChainedHeader(ctx context.Context, header *model.ChainedHeader) (bool, error)
	TryGetChainedHeader(ctx context.Context, blockHash chainhash.Hash) (*model.ChainedHeader, bool, error)
	TryRemoveChainedHeader(ctx context.Context, blockHash chainhash.Hash) (bool, error)
	// FindMaxTotalWork returns the valid header with the most cumulative work.
	FindMaxTotalWork(ctx context.Context) (*model.ChainedHeader, bool, error)
	// ReadChainedHeaders returns every header not marked invalid.
	ReadChainedHeaders(ctx context.Context) ([]*model.ChainedHeader, error)
	IsBlockInvalid(ctx context.Context, blockHash chainhash.Hash) (bool, error)
	MarkBlockInvalid(ctx context.Context, blockHash chainhash.Hash) error
	Flush(ctx context.Context) error
	Defragment(ctx context.Context) error
}

// BlockTxesStorage stores block transactions as Merkle tree nodes so spent
// transactions can be pruned without losing the block's Merkle root.
type BlockTxesStorage interface {
	ContainsBlock(blockHash chainhash.Hash) (bool, error)
	TryAddBlockTransactions(blockHash chainhash.Hash, txes []*wire.MsgTx) (bool, error)
	// TryGetTransaction returns the leaf at txIndex; it is false once pruned.
	TryGetTransaction(blockHash chainhash.Hash, txIndex int) (*wire.MsgTx, bool, error)
	// ReadBlockTransactions returns the current node set of a block in index order.
	ReadBlockTransactions(blockHash chainhash.Hash) ([]model.BlockTx, bool, error)
	TryRemoveBlockTransactions(blockHash chainhash.Hash) (bool, error)
	// PruneElements prunes the leaves at txIndices, merging pruned siblings.
	PruneElements(blockHash chainhash.Hash, txIndices []int) error
	BlockCount() (int, error)
	Flush() error
	Defragment() error
}

// CursorPoolMetrics observes cursor pool usage.
type CursorPoolMetrics interface {
	ObserveAcquire(err error, started time.Time)
	ObserveLeakedTransaction()
	SetInUse(count int)
}
