// Package clickhouse stores chained headers and invalid-block marks in
// ClickHouse.
package clickhouse

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/storage"
)

// HeaderRepository implements storage.BlockStorage. Rows are versioned in
// ReplacingMergeTree tables and read with FINAL, so a removal is an insert
// of a deleted row.
type HeaderRepository struct {
	conn    Conn
	network model.Network
	metrics Metrics
	now     func() time.Time
}

var _ storage.BlockStorage = (*HeaderRepository)(nil)

func NewHeaderRepository(dsn string, network model.Network, metrics Metrics) (*HeaderRepository, error) {
	if dsn == "" {
		return nil, errors.New("clickhouse dsn is required")
	}

	options, err := clickhouse.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse clickhouse dsn: %w", err)
	}

	conn, err := clickhouse.Open(options)
	if err != nil {
		return nil, fmt.Errorf("open clickhouse connection: %w", err)
	}

	return &HeaderRepository{
		conn:    driverConn{conn: conn},
		network: network,
		metrics: metrics,
		now:     time.Now,
	}, nil
}

func (r *HeaderRepository) Close() error {
	return r.conn.Close()
}

// queryRows runs query and hands every row to scan.
func (r *HeaderRepository) queryRows(ctx context.Context, query string, scan func(Rows) error, args ...any) (err error) {
	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	for rows.Next() {
		if err = scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

func (r *HeaderRepository) count(ctx context.Context, query string, args ...any) (uint64, error) {
	var n uint64
	err := r.queryRows(ctx, query, func(rows Rows) error {
		return rows.Scan(&n)
	}, args...)
	return n, err
}

// driverConn narrows a clickhouse-go connection to Conn.
type driverConn struct {
	conn driver.Conn
}

func (c driverConn) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	rows, err := c.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (c driverConn) Exec(ctx context.Context, query string, args ...any) error {
	return c.conn.Exec(ctx, query, args...)
}

func (c driverConn) PrepareBatch(ctx context.Context, query string) (Batch, error) {
	batch, err := c.conn.PrepareBatch(ctx, query)
	if err != nil {
		return nil, err
	}
	return batch, nil
}

func (c driverConn) Close() error {
	return c.conn.Close()
}
