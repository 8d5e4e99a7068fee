package memory

import (
	"fmt"
	"sync"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/merkle"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/storage"
)

// BlockTxesStorage keeps block transactions as Merkle nodes in memory.
type BlockTxesStorage struct {
	mu     sync.RWMutex
	blocks map[chainhash.Hash][]model.BlockTx
}

var _ storage.BlockTxesStorage = (*BlockTxesStorage)(nil)

func NewBlockTxesStorage() *BlockTxesStorage {
	return &BlockTxesStorage{blocks: make(map[chainhash.Hash][]model.BlockTx)}
}

func (s *BlockTxesStorage) ContainsBlock(blockHash chainhash.Hash) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.blocks[blockHash]
	return ok, nil
}

func (s *BlockTxesStorage) TryAddBlockTransactions(blockHash chainhash.Hash, txes []*wire.MsgTx) (bool, error) {
	nodes := make([]model.BlockTx, len(txes))
	for i, tx := range txes {
		node, err := model.NewBlockTx(i, tx)
		if err != nil {
			return false, fmt.Errorf("block %s: %w", blockHash, err)
		}
		nodes[i] = node
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.blocks[blockHash]; ok {
		return false, nil
	}
	s.blocks[blockHash] = nodes
	return true, nil
}

func (s *BlockTxesStorage) TryGetTransaction(blockHash chainhash.Hash, txIndex int) (*wire.MsgTx, bool, error) {
	s.mu.RLock()
	nodes, ok := s.blocks[blockHash]
	s.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	for _, node := range nodes {
		if node.Index == txIndex && node.Depth == 0 && !node.Pruned {
			tx, err := node.Tx()
			if err != nil {
				return nil, false, err
			}
			return tx, true, nil
		}
	}
	return nil, false, nil
}

func (s *BlockTxesStorage) ReadBlockTransactions(blockHash chainhash.Hash) ([]model.BlockTx, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	nodes, ok := s.blocks[blockHash]
	if !ok {
		return nil, false, nil
	}
	return append([]model.BlockTx(nil), nodes...), true, nil
}

func (s *BlockTxesStorage) TryRemoveBlockTransactions(blockHash chainhash.Hash) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.blocks[blockHash]; !ok {
		return false, nil
	}
	delete(s.blocks, blockHash)
	return true, nil
}

func (s *BlockTxesStorage) PruneElements(blockHash chainhash.Hash, txIndices []int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	nodes, ok := s.blocks[blockHash]
	if !ok {
		return nil
	}
	cursor := merkle.NewMemoryCursor(nodes)
	for _, index := range txIndices {
		if err := merkle.PruneNode(cursor, index); err != nil {
			return fmt.Errorf("prune block %s tx %d: %w", blockHash, index, err)
		}
	}
	s.blocks[blockHash] = cursor.Nodes()
	return nil
}

func (s *BlockTxesStorage) BlockCount() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blocks), nil
}

func (s *BlockTxesStorage) Flush() error      { return nil }
func (s *BlockTxesStorage) Defragment() error { return nil }
