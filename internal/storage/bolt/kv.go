package bolt

import (
	"context"
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-node/internal/storage/kvstore"
	"go.etcd.io/bbolt"
	"go.uber.org/zap"
)

func bucketName(t kvstore.Table) []byte {
	return []byte(t.String())
}

// KV adapts a bbolt file to kvstore.KV. bbolt allows one writer at a time
// and gives read transactions a consistent page snapshot.
type KV struct {
	db     *bbolt.DB
	logger *zap.Logger
}

var _ kvstore.KV = (*KV)(nil)

// OpenChainState opens or creates a bbolt chain-state store at path.
func OpenChainState(path string, opts Options, logger *zap.Logger) (*kvstore.Store, error) {
	buckets := make([][]byte, 0, len(kvstore.Tables))
	for _, t := range kvstore.Tables {
		buckets = append(buckets, bucketName(t))
	}
	db, err := openDB(path, opts, buckets...)
	if err != nil {
		return nil, err
	}
	logger = logger.Named("boltChainState").With(zap.String("path", path))
	return kvstore.NewStore(&KV{db: db, logger: logger}, logger), nil
}

// Begin starts a bbolt transaction. A write transaction waits for the file's
// writer lock; bbolt gives no way to abandon that wait, so ctx is only
// checked before it.
func (k *KV) Begin(ctx context.Context, readOnly bool) (kvstore.Tx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tx, err := k.db.Begin(!readOnly)
	if err != nil {
		return nil, err
	}
	return &boltTx{tx: tx}, nil
}

func (k *KV) Flush() error {
	return k.db.Sync()
}

// Defragment only logs free-page stats and reclaims nothing. bbolt reuses
// freed pages in place; shrinking the file needs an offline `bbolt compact`.
func (k *KV) Defragment() error {
	stats := k.db.Stats()
	k.logger.Info("bolt free space",
		zap.Int("freePages", stats.FreePageN),
		zap.Int("pendingPages", stats.PendingPageN),
		zap.Int("freeBytes", stats.FreeAlloc),
	)
	return nil
}

func (k *KV) Close() error {
	return k.db.Close()
}

type boltTx struct {
	tx *bbolt.Tx
}

func (t *boltTx) bucket(table kvstore.Table) (*bbolt.Bucket, error) {
	b := t.tx.Bucket(bucketName(table))
	if b == nil {
		return nil, fmt.Errorf("bucket %s missing", table)
	}
	return b, nil
}

func (t *boltTx) Get(table kvstore.Table, key []byte) ([]byte, bool, error) {
	b, err := t.bucket(table)
	if err != nil {
		return nil, false, err
	}
	v := b.Get(key)
	return v, v != nil, nil
}

func (t *boltTx) Put(table kvstore.Table, key, value []byte) error {
	b, err := t.bucket(table)
	if err != nil {
		return err
	}
	return b.Put(key, value)
}

func (t *boltTx) Delete(table kvstore.Table, key []byte) error {
	b, err := t.bucket(table)
	if err != nil {
		return err
	}
	return b.Delete(key)
}

func (t *boltTx) ForEach(table kvstore.Table, fn func(key, value []byte) error) error {
	b, err := t.bucket(table)
	if err != nil {
		return err
	}
	return b.ForEach(fn)
}

func (t *boltTx) Commit() error {
	return t.tx.Commit()
}

func (t *boltTx) Rollback() error {
	return t.tx.Rollback()
}
