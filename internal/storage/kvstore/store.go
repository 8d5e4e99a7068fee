package kvstore

import (
	"github.com/goodnatureofminers/blockinsight7000-node/internal/storage"
	"go.uber.org/zap"
)

// Store opens cursors over a KV engine.
type Store struct {
	kv     KV
	logger *zap.Logger
}

var _ storage.ChainStateStorage = (*Store)(nil)

func NewStore(kv KV, logger *zap.Logger) *Store {
	return &Store{kv: kv, logger: logger}
}

func (s *Store) OpenCursor() (storage.ChainStateCursor, error) {
	return &Cursor{kv: s.kv, logger: s.logger}, nil
}

func (s *Store) Close() error {
	return s.kv.Close()
}
