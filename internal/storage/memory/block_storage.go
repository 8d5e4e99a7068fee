package memory

import (
	"context"
	"sync"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/storage"
)

// BlockStorage keeps chained headers in memory.
type BlockStorage struct {
	mu      sync.RWMutex
	headers map[chainhash.Hash]*model.ChainedHeader
	invalid map[chainhash.Hash]struct{}
}

var _ storage.BlockStorage = (*BlockStorage)(nil)

func NewBlockStorage() *BlockStorage {
	return &BlockStorage{
		headers: make(map[chainhash.Hash]*model.ChainedHeader),
		invalid: make(map[chainhash.Hash]struct{}),
	}
}

func (s *BlockStorage) TryAddChainedHeader(_ context.Context, header *model.ChainedHeader) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.headers[header.Hash]; ok {
		return false, nil
	}
	s.headers[header.Hash] = header
	return true, nil
}

func (s *BlockStorage) TryGetChainedHeader(_ context.Context, blockHash chainhash.Hash) (*model.ChainedHeader, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.headers[blockHash]
	return h, ok, nil
}

func (s *BlockStorage) TryRemoveChainedHeader(_ context.Context, blockHash chainhash.Hash) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.headers[blockHash]; !ok {
		return false, nil
	}
	delete(s.headers, blockHash)
	return true, nil
}

// moreWork orders candidates by total work, then earliest seen, then hash.
func moreWork(a, b *model.ChainedHeader) bool {
	if c := a.TotalWork.Cmp(b.TotalWork); c != 0 {
		return c > 0
	}
	if !a.DateSeen.Equal(b.DateSeen) {
		return a.DateSeen.Before(b.DateSeen)
	}
	return a.Hash.String() < b.Hash.String()
}

func (s *BlockStorage) FindMaxTotalWork(_ context.Context) (*model.ChainedHeader, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var best *model.ChainedHeader
	for hash, h := range s.headers {
		if _, bad := s.invalid[hash]; bad {
			continue
		}
		if best == nil || moreWork(h, best) {
			best = h
		}
	}
	return best, best != nil, nil
}

func (s *BlockStorage) ReadChainedHeaders(_ context.Context) ([]*model.ChainedHeader, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	headers := make([]*model.ChainedHeader, 0, len(s.headers))
	for hash, h := range s.headers {
		if _, bad := s.invalid[hash]; !bad {
			headers = append(headers, h)
		}
	}
	return headers, nil
}

func (s *BlockStorage) IsBlockInvalid(_ context.Context, blockHash chainhash.Hash) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, bad := s.invalid[blockHash]
	return bad, nil
}

func (s *BlockStorage) MarkBlockInvalid(_ context.Context, blockHash chainhash.Hash) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invalid[blockHash] = struct{}{}
	return nil
}

func (s *BlockStorage) Flush(context.Context) error      { return nil }
func (s *BlockStorage) Defragment(context.Context) error { return nil }
