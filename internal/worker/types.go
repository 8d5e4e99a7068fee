// Package worker runs the background loops that keep the chain state
// following the best valid chain: header sync, target chain selection,
// block requests, chain-state navigation and pruning.
package worker

import (
	"context"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/chain"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/storage"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// HeaderStore is the header side of block storage.
	HeaderStore interface {
		TryAddChainedHeader(ctx context.Context, header *model.ChainedHeader) (bool, error)
		TryGetChainedHeader(ctx context.Context, blockHash chainhash.Hash) (*model.ChainedHeader, bool, error)
		FindMaxTotalWork(ctx context.Context) (*model.ChainedHeader, bool, error)
		IsBlockInvalid(ctx context.Context, blockHash chainhash.Hash) (bool, error)
		MarkBlockInvalid(ctx context.Context, blockHash chainhash.Hash) error
	}

	// BlockTxesStore holds block transactions as Merkle tree nodes.
	BlockTxesStore interface {
		ContainsBlock(blockHash chainhash.Hash) (bool, error)
		TryAddBlockTransactions(blockHash chainhash.Hash, txes []*wire.MsgTx) (bool, error)
		ReadBlockTransactions(blockHash chainhash.Hash) ([]model.BlockTx, bool, error)
		PruneElements(blockHash chainhash.Hash, txIndices []int) error
		Flush() error
		Defragment() error
	}

	// BlockSource fetches headers and blocks from a trusted node.
	BlockSource interface {
		BestHeight(ctx context.Context) (int, error)
		BlockHash(ctx context.Context, height int) (chainhash.Hash, error)
		BlockHeader(ctx context.Context, blockHash chainhash.Hash) (wire.BlockHeader, error)
		Block(ctx context.Context, blockHash chainhash.Hash) (*wire.MsgBlock, error)
	}

	// ChainStateBuilder applies and rolls back blocks.
	ChainStateBuilder interface {
		Chain() *chain.Chain
		AddBlock(ctx context.Context, header *model.ChainedHeader, txes []*wire.MsgTx) error
		RollbackBlock(ctx context.Context, header *model.ChainedHeader, txes []*wire.MsgTx) error
		Flush(ctx context.Context) error
	}

	// CursorPool hands out chain-state cursors.
	CursorPool interface {
		Acquire(ctx context.Context) (*storage.PooledCursor, error)
	}

	// BlockRequester queues blocks to be fetched.
	BlockRequester interface {
		RequestBlock(ctx context.Context, blockHash chainhash.Hash) error
	}

	// BlockInvalidator excludes a block, and every chain through it, from
	// the target.
	BlockInvalidator interface {
		InvalidateBlock(ctx context.Context, header *model.ChainedHeader) error
	}

	// TargetChainSource publishes the chain the node should follow.
	TargetChainSource interface {
		TargetChain() *chain.Chain
	}

	// IterationMetrics observes worker loop iterations.
	IterationMetrics interface {
		ObserveIteration(err error, started time.Time)
	}

	PruningMetrics interface {
		ObservePruneBlock(err error, prunedTxes int, started time.Time)
		SetPrunedHeight(height int)
	}

	BlockRequestMetrics interface {
		ObserveFlush(err error, blocks int, started time.Time)
	}
)
