package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

const (
	countInvalidQuery = `
SELECT count()
FROM invalid_blocks FINAL
WHERE network = ? AND hash = ?`

	insertInvalidQuery = `
INSERT INTO invalid_blocks (
	network,
	hash,
	marked_at
) VALUES`
)

func (r *HeaderRepository) IsBlockInvalid(ctx context.Context, blockHash chainhash.Hash) (invalid bool, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("is_block_invalid", r.network, err, start)
	}()

	n, err := r.count(ctx, countInvalidQuery, string(r.network), blockHash.String())
	if err != nil {
		return false, fmt.Errorf("count invalid block %s: %w", blockHash, err)
	}
	return n > 0, nil
}

// MarkBlockInvalid records blockHash as invalid. Marking twice leaves one row
// after merges.
func (r *HeaderRepository) MarkBlockInvalid(ctx context.Context, blockHash chainhash.Hash) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("mark_block_invalid", r.network, err, start)
	}()

	batch, err := r.conn.PrepareBatch(ctx, insertInvalidQuery)
	if err != nil {
		return fmt.Errorf("prepare invalid blocks batch: %w", err)
	}
	if err = batch.Append(string(r.network), blockHash.String(), r.now().UTC()); err != nil {
		_ = batch.Abort()
		return fmt.Errorf("append invalid block: %w", err)
	}
	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert invalid block: %w", err)
	}
	return nil
}

// Flush is a no-op: ClickHouse inserts are durable once Send returns.
func (r *HeaderRepository) Flush(context.Context) error {
	return nil
}

// Defragment forces merges so replaced and deleted rows are dropped.
func (r *HeaderRepository) Defragment(ctx context.Context) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("defragment", r.network, err, start)
	}()

	for _, table := range []string{"chained_headers", "invalid_blocks"} {
		if err = r.conn.Exec(ctx, "OPTIMIZE TABLE "+table+" FINAL"); err != nil {
			return fmt.Errorf("optimize %s: %w", table, err)
		}
	}
	return nil
}
