// Package badgerdb provides the Badger (LSM tree) chain-state backend.
package badgerdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/storage/kvstore"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

const gcDiscardRatio = 0.5

// Options tune a Badger directory.
type Options struct {
	// InMemory keeps every table in memory and ignores the path.
	InMemory bool
}

// KV adapts Badger to kvstore.KV. Tables share one keyspace under a one byte
// prefix. Badger allows concurrent write transactions and resolves them
// optimistically, so writers are serialized here instead.
type KV struct {
	db     *badger.DB
	writer *semaphore.Weighted
	logger *zap.Logger
}

var _ kvstore.KV = (*KV)(nil)

// OpenChainState opens or creates a Badger chain-state store in dir.
func OpenChainState(dir string, opts Options, logger *zap.Logger) (*kvstore.Store, error) {
	badgerOpts := badger.DefaultOptions(dir).
		WithLogger(nil).
		WithSyncWrites(false)
	if opts.InMemory {
		badgerOpts = badgerOpts.WithDir("").WithValueDir("").WithInMemory(true)
	}
	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, fmt.Errorf("open badger %s: %w", dir, err)
	}
	logger = logger.Named("badgerChainState").With(zap.String("dir", dir))
	return kvstore.NewStore(&KV{
		db:     db,
		writer: semaphore.NewWeighted(1),
		logger: logger,
	}, logger), nil
}

func prefixed(table kvstore.Table, key []byte) []byte {
	out := make([]byte, 0, len(key)+1)
	out = append(out, byte(table))
	return append(out, key...)
}

func (k *KV) Begin(ctx context.Context, readOnly bool) (kvstore.Tx, error) {
	if readOnly {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return &badgerTx{txn: k.db.NewTransaction(false)}, nil
	}
	if err := k.writer.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	return &badgerTx{
		txn:     k.db.NewTransaction(true),
		release: func() { k.writer.Release(1) },
	}, nil
}

func (k *KV) Flush() error {
	return k.db.Sync()
}

// Defragment runs value log GC until Badger finds nothing to rewrite.
func (k *KV) Defragment() error {
	rewrites := 0
	for {
		err := k.db.RunValueLogGC(gcDiscardRatio)
		switch {
		case err == nil:
			rewrites++
			continue
		case errors.Is(err, badger.ErrNoRewrite),
			errors.Is(err, badger.ErrRejected),
			errors.Is(err, badger.ErrGCInMemoryMode):
			lsm, vlog := k.db.Size()
			k.logger.Info("badger value log gc",
				zap.Int("rewrites", rewrites),
				zap.Int64("lsmBytes", lsm),
				zap.Int64("vlogBytes", vlog),
			)
			return nil
		default:
			return fmt.Errorf("value log gc: %w", err)
		}
	}
}

func (k *KV) Close() error {
	return k.db.Close()
}

type badgerTx struct {
	txn     *badger.Txn
	release func()
}

func (t *badgerTx) done() {
	t.txn.Discard()
	if t.release != nil {
		t.release()
		t.release = nil
	}
}

func (t *badgerTx) Get(table kvstore.Table, key []byte) ([]byte, bool, error) {
	item, err := t.txn.Get(prefixed(table, key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	value, err := item.ValueCopy(nil)
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (t *badgerTx) Put(table kvstore.Table, key, value []byte) error {
	return t.txn.Set(prefixed(table, key), value)
}

func (t *badgerTx) Delete(table kvstore.Table, key []byte) error {
	return t.txn.Delete(prefixed(table, key))
}

func (t *badgerTx) ForEach(table kvstore.Table, fn func(key, value []byte) error) error {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte{byte(table)}
	it := t.txn.NewIterator(opts)
	defer it.Close()
	for it.Rewind(); it.Valid(); it.Next() {
		item := it.Item()
		key := item.Key()[1:]
		err := item.Value(func(value []byte) error {
			return fn(key, value)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (t *badgerTx) Commit() error {
	defer t.done()
	return t.txn.Commit()
}

func (t *badgerTx) Rollback() error {
	t.done()
	return nil
}
