// Command node keeps a validated UTXO set in sync with a trusted bitcoin node.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-node/internal/model"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type config struct {
	Network model.Network `long:"network" env:"NODE_NETWORK" description:"bitcoin network (mainnet, testnet3, regtest, signet)" default:"mainnet"`

	Backend         string `long:"backend" env:"NODE_BACKEND" description:"chain-state backend (memory, bolt, badger)" default:"bolt"`
	DataDir         string `long:"data-dir" env:"NODE_DATA_DIR" description:"directory holding the chain-state and block files" default:"data"`
	BoltNoSync      bool   `long:"bolt-no-sync" env:"NODE_BOLT_NO_SYNC" description:"skip fsync on bolt commits, a power loss can then corrupt the files"`
	CursorPoolSize  int    `long:"cursor-pool-size" env:"NODE_CURSOR_POOL_SIZE" description:"chain-state cursors open at once" default:"16"`
	ClickhouseDSN   string `long:"clickhouse-dsn" env:"NODE_CLICKHOUSE_DSN" description:"ClickHouse DSN for header storage; headers are kept in memory when empty"`
	ValidateScripts bool   `long:"validate-scripts" env:"NODE_VALIDATE_SCRIPTS" description:"run the script engine on every input"`
	ValidationWork  int    `long:"validation-workers" env:"NODE_VALIDATION_WORKERS" description:"parallel transaction validators, 0 for one per CPU" default:"0"`

	PruneMode    string `long:"prune-mode" env:"NODE_PRUNE_MODE" description:"pruning mode (none, spent, merkle)" default:"merkle"`
	PruneBuffer  int    `long:"prune-buffer" env:"NODE_PRUNE_BUFFER" description:"blocks below the tip that are never pruned" default:"1008"`
	PruneWorkers int    `long:"prune-workers" env:"NODE_PRUNE_WORKERS" description:"parallel block pruners" default:"8"`
	DefragEvery  int    `long:"defragment-every" env:"NODE_DEFRAGMENT_EVERY" description:"pruned blocks between storage defragments" default:"10000"`

	RPCURL      string        `long:"rpc-url" env:"NODE_RPC_URL" description:"trusted node RPC URL" default:"http://127.0.0.1:8332"`
	RPCUser     string        `long:"rpc-user" env:"NODE_RPC_USER" description:"trusted node RPC username"`
	RPCPassword string        `long:"rpc-password" env:"NODE_RPC_PASSWORD" description:"trusted node RPC password"`
	BatchSize   int           `long:"block-batch-size" env:"NODE_BLOCK_BATCH_SIZE" description:"blocks fetched per request batch" default:"16"`
	BatchEvery  time.Duration `long:"block-batch-interval" env:"NODE_BLOCK_BATCH_INTERVAL" description:"flush interval of a partial block batch" default:"1s"`
	BatchRPS    int           `long:"block-batch-rps" env:"NODE_BLOCK_BATCH_RPS" description:"block batches per second" default:"50"`

	MetricsAddr string `long:"metrics-addr" env:"NODE_METRICS_ADDR" description:"address for metrics server" default:":2112"`
	GRPCAddr    string `long:"grpc-addr" env:"NODE_GRPC_ADDR" description:"address for the gRPC health server" default:":8000"`
	StatusAddr  string `long:"status-addr" env:"NODE_STATUS_ADDR" description:"address for the HTTP status server" default:":8001"`
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

	logger = logger.With(zap.String("network", string(cfg.Network)), zap.String("backend", cfg.Backend))
	if err := run(ctx, cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("node failed", zap.Error(err))
	}
	logger.Info("node stopped")
}
