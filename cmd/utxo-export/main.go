// Command utxo-export writes the UTXO set of a stopped node's chain state to
// a Parquet file.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/goodnatureofminers/blockinsight7000-node/internal/chainstate"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/export"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/metrics"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/rules"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/storage"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/storage/badgerdb"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/storage/bolt"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/storage/memory"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/xitongsys/parquet-go-source/local"
	"go.uber.org/zap"
)

type config struct {
	Network model.Network `long:"network" env:"NODE_NETWORK" description:"bitcoin network" default:"mainnet"`
	Backend string        `long:"backend" env:"NODE_BACKEND" description:"chain-state backend (bolt, badger)" default:"bolt"`
	DataDir string        `long:"data-dir" env:"NODE_DATA_DIR" description:"node data directory" default:"data"`
	Output  string        `long:"output" short:"o" env:"UTXO_EXPORT_OUTPUT" description:"Parquet file to write" default:"utxo.parquet"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn("failed to load .env", zap.Error(err))
	}

	cfg := config{}
	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("utxo export failed", zap.Error(err))
	}
}

func openChainState(cfg config, logger *zap.Logger) (storage.ChainStateStorage, error) {
	switch cfg.Backend {
	case "bolt":
		return bolt.OpenChainState(filepath.Join(cfg.DataDir, "chainstate.db"), bolt.Options{}, logger)
	case "badger":
		return badgerdb.OpenChainState(filepath.Join(cfg.DataDir, "chainstate"), badgerdb.Options{}, logger)
	default:
		return nil, fmt.Errorf("backend %q has nothing on disk to export", cfg.Backend)
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	params, err := cfg.Network.Params()
	if err != nil {
		return err
	}
	store, err := openChainState(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close chain state", zap.Error(err))
		}
	}()

	pool, err := storage.NewCursorPool(store, 2, metrics.NewCursorPool(cfg.Backend), logger)
	if err != nil {
		return err
	}
	defer func() {
		_ = pool.Close()
	}()

	// The builder only serves the snapshot here, so rollback lookups are
	// never needed and block transactions are not opened.
	builder, err := chainstate.NewBuilder(ctx, pool, rules.New(params), memory.NewBlockTxesStorage(),
		metrics.NewChainState(cfg.Network, cfg.Backend), chainstate.Config{}, logger)
	if err != nil {
		return fmt.Errorf("load chain state: %w", err)
	}
	snapshot, err := builder.ToChainState(ctx, 2)
	if err != nil {
		return err
	}
	defer func() {
		if err := snapshot.Close(); err != nil {
			logger.Error("failed to close snapshot", zap.Error(err))
		}
	}()

	file, err := local.NewLocalFileWriter(cfg.Output)
	if err != nil {
		return fmt.Errorf("create %s: %w", cfg.Output, err)
	}
	summary, err := export.WriteUnspentOutputs(ctx, snapshot, file, logger)
	if closeErr := file.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("close %s: %w", cfg.Output, closeErr)
	}
	if err != nil {
		return err
	}

	logger.Info("utxo set exported",
		zap.String("output", cfg.Output),
		zap.Int("height", summary.Height),
		zap.Int("outputs", summary.Outputs),
		zap.Int64("value", summary.Value),
	)
	return nil
}
