package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goodnatureofminers/blockinsight7000-node/internal/metrics"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/storage"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/storage/badgerdb"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/storage/bolt"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/storage/clickhouse"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/storage/memory"
	"go.uber.org/zap"
)

const (
	backendMemory = "memory"
	backendBolt   = "bolt"
	backendBadger = "badger"
)

type stores struct {
	chainState storage.ChainStateStorage
	blockTxes  storage.BlockTxesStorage
	headers    storage.BlockStorage
	closers    []func() error
}

func (s *stores) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		errs = append(errs, s.closers[i]())
	}
	return errors.Join(errs...)
}

// openStores opens the chain-state backend, block transaction storage and
// header storage named by cfg. Everything opened is closed by Close, also
// when a later store fails to open.
func openStores(cfg config, logger *zap.Logger) (_ *stores, err error) {
	s := &stores{}
	defer func() {
		if err != nil {
			_ = s.Close()
		}
	}()

	if cfg.Backend != backendMemory {
		if err := os.MkdirAll(cfg.DataDir, 0o750); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	switch cfg.Backend {
	case backendMemory:
		s.chainState = memory.NewStore(logger)
	case backendBolt:
		s.chainState, err = bolt.OpenChainState(filepath.Join(cfg.DataDir, "chainstate.db"), bolt.Options{NoSync: cfg.BoltNoSync}, logger)
	case backendBadger:
		s.chainState, err = badgerdb.OpenChainState(filepath.Join(cfg.DataDir, "chainstate"), badgerdb.Options{}, logger)
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, err
	}
	s.closers = append(s.closers, s.chainState.Close)

	if cfg.Backend == backendMemory {
		s.blockTxes = memory.NewBlockTxesStorage()
	} else {
		blockTxes, err := bolt.OpenBlockTxes(filepath.Join(cfg.DataDir, "blocks.db"), bolt.Options{NoSync: cfg.BoltNoSync}, logger)
		if err != nil {
			return nil, err
		}
		s.blockTxes = blockTxes
		s.closers = append(s.closers, blockTxes.Close)
	}

	if cfg.ClickhouseDSN == "" {
		logger.Warn("no ClickHouse DSN, headers are kept in memory")
		s.headers = memory.NewBlockStorage()
		return s, nil
	}
	headers, err := clickhouse.NewHeaderRepository(cfg.ClickhouseDSN, cfg.Network, metrics.NewHeaderRepository())
	if err != nil {
		return nil, fmt.Errorf("init header repository: %w", err)
	}
	s.headers = headers
	s.closers = append(s.closers, headers.Close)
	return s, nil
}
