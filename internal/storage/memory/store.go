// Package memory is an in-memory chain-state backend with optimistic
// multi-version concurrency: every table is a versioned committed record and
// transactions work on copy-on-write snapshots.
package memory

import (
	"fmt"
	"sync"

	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/storage"
	"github.com/google/btree"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

const treeDegree = 32

type item[V any] struct {
	key   string
	value V
}

type tree[V any] = btree.BTreeG[item[V]]

func newTree[V any]() *tree[V] {
	return btree.NewG(treeDegree, func(a, b item[V]) bool { return a.key < b.key })
}

// field is a committed record: a value and the version it was committed at.
// Inside a transaction dirty marks fields the transaction has written.
type field[T any] struct {
	value   T
	version uint64
	dirty   bool
}

const (
	unspentTxCount = iota
	unspentOutputCount
	totalTxCount
	totalInputCount
	totalOutputCount
	counterCount
)

type fields struct {
	chainTip     field[*model.ChainedHeader]
	counters     [counterCount]field[int]
	headers      field[*tree[*model.ChainedHeader]]
	unspentTxes  field[*tree[model.UnspentTx]]
	outputs      field[*tree[*wire.TxOut]]
	spentTxes    field[*tree[model.BlockSpentTxes]]
	unmintedTxes field[*tree[model.BlockUnmintedTxes]]
}

// Store holds the committed chain state.
type Store struct {
	logger *zap.Logger
	writer *semaphore.Weighted

	mu        sync.Mutex
	committed fields
	version   uint64
	closed    bool
}

var _ storage.ChainStateStorage = (*Store)(nil)

// NewStore returns an empty store.
func NewStore(logger *zap.Logger) *Store {
	return &Store{
		logger: logger.Named("memoryChainState"),
		writer: semaphore.NewWeighted(1),
		committed: fields{
			headers:      field[*tree[*model.ChainedHeader]]{value: newTree[*model.ChainedHeader]()},
			unspentTxes:  field[*tree[model.UnspentTx]]{value: newTree[model.UnspentTx]()},
			outputs:      field[*tree[*wire.TxOut]]{value: newTree[*wire.TxOut]()},
			spentTxes:    field[*tree[model.BlockSpentTxes]]{value: newTree[model.BlockSpentTxes]()},
			unmintedTxes: field[*tree[model.BlockUnmintedTxes]]{value: newTree[model.BlockUnmintedTxes]()},
		},
	}
}

// OpenCursor returns a new cursor over the store.
func (s *Store) OpenCursor() (storage.ChainStateCursor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, storage.ErrClosed
	}
	return &Cursor{store: s}, nil
}

// Close marks the store closed; open cursors keep their snapshots.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func snapshotTree[V any](f field[*tree[V]]) field[*tree[V]] {
	return field[*tree[V]]{value: f.value.Clone(), version: f.version}
}

// snapshot copies every committed record. Tree clones are O(1) and share
// nodes until either side writes.
func (s *Store) snapshot() (fields, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return fields{}, storage.ErrClosed
	}

	snap := fields{
		chainTip:     s.committed.chainTip,
		counters:     s.committed.counters,
		headers:      snapshotTree(s.committed.headers),
		unspentTxes:  snapshotTree(s.committed.unspentTxes),
		outputs:      snapshotTree(s.committed.outputs),
		spentTxes:    snapshotTree(s.committed.spentTxes),
		unmintedTxes: snapshotTree(s.committed.unmintedTxes),
	}
	return snap, nil
}

func checkVersion[T any](name string, committed, snap field[T]) {
	if committed.version != snap.version {
		panic(fmt.Sprintf("memory chain state: %s committed at version %d since snapshot at version %d", name, committed.version, snap.version))
	}
}

func apply[T any](committed *field[T], snap field[T], version uint64) {
	if snap.dirty {
		*committed = field[T]{value: snap.value, version: version}
	}
}

// commit publishes the dirty fields of snap. Every field must still be at
// its snapshot version; anything else means the single-writer discipline was
// broken and the state can no longer be trusted.
func (s *Store) commit(snap fields) {
	s.mu.Lock()
	defer s.mu.Unlock()

	checkVersion("chain tip", s.committed.chainTip, snap.chainTip)
	for i := range snap.counters {
		checkVersion(fmt.Sprintf("counter %d", i), s.committed.counters[i], snap.counters[i])
	}
	checkVersion("headers", s.committed.headers, snap.headers)
	checkVersion("unspent txes", s.committed.unspentTxes, snap.unspentTxes)
	checkVersion("unspent outputs", s.committed.outputs, snap.outputs)
	checkVersion("spent txes", s.committed.spentTxes, snap.spentTxes)
	checkVersion("unminted txes", s.committed.unmintedTxes, snap.unmintedTxes)

	s.version++
	apply(&s.committed.chainTip, snap.chainTip, s.version)
	for i := range snap.counters {
		apply(&s.committed.counters[i], snap.counters[i], s.version)
	}
	apply(&s.committed.headers, snap.headers, s.version)
	apply(&s.committed.unspentTxes, snap.unspentTxes, s.version)
	apply(&s.committed.outputs, snap.outputs, s.version)
	apply(&s.committed.spentTxes, snap.spentTxes, s.version)
	apply(&s.committed.unmintedTxes, snap.unmintedTxes, s.version)
}
