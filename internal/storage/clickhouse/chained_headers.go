package clickhouse

import (
	"context"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/codec"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-node/pkg/safe"
)

const (
	countHeaderQuery = `
SELECT count()
FROM chained_headers FINAL
WHERE network = ? AND hash = ? AND is_deleted = 0`

	insertHeaderQuery = `
INSERT INTO chained_headers (
	network,
	hash,
	height,
	total_work,
	date_seen,
	encoded,
	version,
	is_deleted
) VALUES`

	selectHeaderQuery = `
SELECT encoded
FROM chained_headers FINAL
WHERE network = ? AND hash = ? AND is_deleted = 0`

	selectMaxWorkQuery = `
SELECT encoded
FROM chained_headers FINAL
WHERE network = ? AND is_deleted = 0
	AND hash NOT IN (SELECT hash FROM invalid_blocks FINAL WHERE network = ?)
ORDER BY total_work DESC, date_seen ASC, hash ASC
LIMIT 1`

	selectValidHeadersQuery = `
SELECT encoded
FROM chained_headers FINAL
WHERE network = ? AND is_deleted = 0
	AND hash NOT IN (SELECT hash FROM invalid_blocks FINAL WHERE network = ?)
ORDER BY height`
)

func (r *HeaderRepository) version() (uint64, error) {
	return safe.Uint64(r.now().UnixNano())
}

func (r *HeaderRepository) headerExists(ctx context.Context, blockHash chainhash.Hash) (bool, error) {
	n, err := r.count(ctx, countHeaderQuery, string(r.network), blockHash.String())
	if err != nil {
		return false, fmt.Errorf("count header %s: %w", blockHash, err)
	}
	return n > 0, nil
}

func (r *HeaderRepository) insertHeader(ctx context.Context, header *model.ChainedHeader, deleted bool) error {
	encoded, err := codec.ChainedHeaderBytes(header)
	if err != nil {
		return err
	}
	height, err := safe.Uint32(header.Height)
	if err != nil {
		return fmt.Errorf("height: %w", err)
	}
	version, err := r.version()
	if err != nil {
		return fmt.Errorf("version: %w", err)
	}
	var isDeleted uint8
	if deleted {
		isDeleted = 1
	}

	batch, err := r.conn.PrepareBatch(ctx, insertHeaderQuery)
	if err != nil {
		return fmt.Errorf("prepare headers batch: %w", err)
	}
	if err = batch.Append(
		string(r.network),
		header.Hash.String(),
		height,
		header.TotalWork,
		header.DateSeen,
		hex.EncodeToString(encoded),
		version,
		isDeleted,
	); err != nil {
		_ = batch.Abort()
		return fmt.Errorf("append header: %w", err)
	}
	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert header: %w", err)
	}
	return nil
}

func scanHeader(rows Rows) (*model.ChainedHeader, error) {
	var encoded string
	if err := rows.Scan(&encoded); err != nil {
		return nil, fmt.Errorf("scan header: %w", err)
	}
	b, err := hex.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode header hex: %w", err)
	}
	return codec.ChainedHeaderFromBytes(b)
}

func (r *HeaderRepository) TryAddChainedHeader(ctx context.Context, header *model.ChainedHeader) (added bool, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("add_chained_header", r.network, err, start)
	}()

	exists, err := r.headerExists(ctx, header.Hash)
	if err != nil || exists {
		return false, err
	}
	if err = r.insertHeader(ctx, header, false); err != nil {
		return false, err
	}
	return true, nil
}

func (r *HeaderRepository) TryGetChainedHeader(ctx context.Context, blockHash chainhash.Hash) (header *model.ChainedHeader, ok bool, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("get_chained_header", r.network, err, start)
	}()

	err = r.queryRows(ctx, selectHeaderQuery, func(rows Rows) error {
		header, err = scanHeader(rows)
		return err
	}, string(r.network), blockHash.String())
	if err != nil {
		return nil, false, fmt.Errorf("query header %s: %w", blockHash, err)
	}
	return header, header != nil, nil
}

func (r *HeaderRepository) TryRemoveChainedHeader(ctx context.Context, blockHash chainhash.Hash) (removed bool, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("remove_chained_header", r.network, err, start)
	}()

	var header *model.ChainedHeader
	err = r.queryRows(ctx, selectHeaderQuery, func(rows Rows) error {
		header, err = scanHeader(rows)
		return err
	}, string(r.network), blockHash.String())
	if err != nil {
		return false, fmt.Errorf("query header %s: %w", blockHash, err)
	}
	if header == nil {
		return false, nil
	}
	if err = r.insertHeader(ctx, header, true); err != nil {
		return false, err
	}
	return true, nil
}

func (r *HeaderRepository) FindMaxTotalWork(ctx context.Context) (header *model.ChainedHeader, ok bool, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("find_max_total_work", r.network, err, start)
	}()

	err = r.queryRows(ctx, selectMaxWorkQuery, func(rows Rows) error {
		header, err = scanHeader(rows)
		return err
	}, string(r.network), string(r.network))
	if err != nil {
		return nil, false, fmt.Errorf("query max total work: %w", err)
	}
	return header, header != nil, nil
}

func (r *HeaderRepository) ReadChainedHeaders(ctx context.Context) (headers []*model.ChainedHeader, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("read_chained_headers", r.network, err, start)
	}()

	err = r.queryRows(ctx, selectValidHeadersQuery, func(rows Rows) error {
		header, err := scanHeader(rows)
		if err != nil {
			return err
		}
		headers = append(headers, header)
		return nil
	}, string(r.network), string(r.network))
	if err != nil {
		return nil, fmt.Errorf("query chained headers: %w", err)
	}
	return headers, nil
}
