// Package bolt provides the bbolt (B+tree, page-level isolation) chain-state
// backend and bbolt block transaction storage.
package bolt

import (
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

// DefaultInitialMmapSize keeps read transactions from blocking a writer that
// would otherwise need to remap a growing file.
const DefaultInitialMmapSize = 1 << 30

// Options tune a bbolt file.
type Options struct {
	InitialMmapSize int
	// Timeout bounds waiting for the file lock held by another process.
	Timeout time.Duration
	// NoSync skips the fsync on every commit. Commits are then only durable
	// after Flush, and a power loss before it can leave the file corrupt.
	NoSync bool
}

func openDB(path string, opts Options, buckets ...[]byte) (*bbolt.DB, error) {
	if opts.InitialMmapSize == 0 {
		opts.InitialMmapSize = DefaultInitialMmapSize
	}
	if opts.Timeout == 0 {
		opts.Timeout = 5 * time.Second
	}
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{
		Timeout:         opts.Timeout,
		NoSync:          opts.NoSync,
		NoFreelistSync:  true,
		FreelistType:    bbolt.FreelistMapType,
		InitialMmapSize: opts.InitialMmapSize,
	})
	if err != nil {
		return nil, fmt.Errorf("open bolt %s: %w", path, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range buckets {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("create bucket %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
