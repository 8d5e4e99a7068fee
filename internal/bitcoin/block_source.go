package bitcoin

import (
	"context"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// BlockSource reads headers and blocks from a trusted node.
type BlockSource struct {
	rpc RPCClient
}

func NewBlockSource(rpc RPCClient) *BlockSource {
	return &BlockSource{rpc: rpc}
}

// BestHeight returns the height of the node's best block.
func (s *BlockSource) BestHeight(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	count, err := s.rpc.GetBlockCount()
	if err != nil {
		return 0, fmt.Errorf("get block count: %w", err)
	}
	return int(count), nil
}

func (s *BlockSource) BlockHash(ctx context.Context, height int) (chainhash.Hash, error) {
	if err := ctx.Err(); err != nil {
		return chainhash.Hash{}, err
	}
	hash, err := s.rpc.GetBlockHash(int64(height))
	if err != nil {
		return chainhash.Hash{}, fmt.Errorf("get block hash at height %d: %w", height, err)
	}
	return *hash, nil
}

// BlockHeader fetches a header and checks it hashes to blockHash.
func (s *BlockSource) BlockHeader(ctx context.Context, blockHash chainhash.Hash) (wire.BlockHeader, error) {
	if err := ctx.Err(); err != nil {
		return wire.BlockHeader{}, err
	}
	header, err := s.rpc.GetBlockHeader(&blockHash)
	if err != nil {
		return wire.BlockHeader{}, fmt.Errorf("get block header %s: %w", blockHash, err)
	}
	if got := header.BlockHash(); got != blockHash {
		return wire.BlockHeader{}, fmt.Errorf("block header %s: node returned header hashing to %s", blockHash, got)
	}
	return *header, nil
}

// Block fetches a full block and checks its header hashes to blockHash.
func (s *BlockSource) Block(ctx context.Context, blockHash chainhash.Hash) (*wire.MsgBlock, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	block, err := s.rpc.GetBlock(&blockHash)
	if err != nil {
		return nil, fmt.Errorf("get block %s: %w", blockHash, err)
	}
	if got := block.BlockHash(); got != blockHash {
		return nil, fmt.Errorf("block %s: node returned block hashing to %s", blockHash, got)
	}
	return block, nil
}
