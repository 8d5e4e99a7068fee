package main

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/btcsuite/btcd/rpcclient"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/bitcoin"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/chainstate"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/metrics"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/rules"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/storage"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/transport"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/worker"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	params, err := cfg.Network.Params()
	if err != nil {
		return err
	}
	pruneMode, err := worker.ParsePruneMode(cfg.PruneMode)
	if err != nil {
		return err
	}

	stores, err := openStores(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := stores.Close(); err != nil {
			logger.Error("failed to close storage", zap.Error(err))
		}
	}()

	pool, err := storage.NewCursorPool(stores.chainState, cfg.CursorPoolSize, metrics.NewCursorPool(cfg.Backend), logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := pool.Close(); err != nil {
			logger.Error("failed to close cursor pool", zap.Error(err))
		}
	}()

	builder, err := chainstate.NewBuilder(ctx, pool, rules.New(params), stores.blockTxes,
		metrics.NewChainState(cfg.Network, cfg.Backend),
		chainstate.Config{ValidateScripts: cfg.ValidateScripts, ValidationWorkers: cfg.ValidationWork},
		logger)
	if err != nil {
		return fmt.Errorf("init chain state: %w", err)
	}

	rpcClient, err := newRPCClient(cfg.RPCURL, cfg.RPCUser, cfg.RPCPassword)
	if err != nil {
		return fmt.Errorf("init rpc client: %w", err)
	}
	defer func() {
		rpcClient.Shutdown()
		rpcClient.WaitForShutdown()
	}()
	source := bitcoin.NewBlockSource(bitcoin.NewObservedClient(rpcClient, metrics.NewRPCClient(cfg.Network)))

	var (
		targetWake       = worker.NewSignal()
		chainStateWake   = worker.NewSignal()
		blockRequestWake = worker.NewSignal()
		pruningWake      = worker.NewSignal()
	)
	iterations := func(name string) *metrics.Worker { return metrics.NewWorker(name, cfg.Network) }

	headerSync, err := worker.NewHeaderSyncWorker(source, stores.headers, params, iterations("header_sync"),
		logger, nil, targetWake)
	if err != nil {
		return err
	}
	target, err := worker.NewTargetChainWorker(stores.headers, iterations("target_chain"), logger,
		targetWake, chainStateWake, blockRequestWake)
	if err != nil {
		return err
	}
	blockRequest, err := worker.NewBlockRequestWorker(source, stores.headers, stores.blockTxes, target, builder.Chain,
		metrics.NewBlockRequest(cfg.Network), iterations("block_request"),
		worker.BlockRequestConfig{BatchSize: cfg.BatchSize, FlushInterval: cfg.BatchEvery, RPS: cfg.BatchRPS},
		logger, blockRequestWake, chainStateWake)
	if err != nil {
		return err
	}
	chainState, err := worker.NewChainStateWorker(builder, target, target, stores.blockTxes, blockRequest,
		iterations("chain_state"), logger, chainStateWake, pruningWake, blockRequestWake)
	if err != nil {
		return err
	}
	pruning, err := worker.NewPruningWorker(pool, stores.blockTxes, builder.Chain,
		metrics.NewPruning(cfg.Network, string(pruneMode)), iterations("pruning"),
		worker.PruningConfig{Mode: pruneMode, Buffer: cfg.PruneBuffer, Workers: cfg.PruneWorkers, DefragmentEvery: cfg.DefragEvery},
		logger, pruningWake)
	if err != nil {
		return err
	}

	healthServer := health.NewServer()
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	status := transport.NewStatusHandler(cfg.Network, cfg.Backend, builder, target, logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return serveMetrics(gctx, cfg.MetricsAddr, logger) })
	g.Go(func() error { return serveHealth(gctx, cfg.GRPCAddr, healthServer, logger) })
	g.Go(func() error { return serveStatus(gctx, cfg.StatusAddr, status, logger) })
	for _, w := range []interface{ Run(context.Context) error }{headerSync, target, blockRequest, chainState, pruning} {
		g.Go(func() error {
			if err := w.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
				healthServer.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
				return err
			}
			return nil
		})
	}

	logger.Info("node started", zap.String("chain", params.Name), zap.String("prune_mode", string(pruneMode)))
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

func newRPCClient(rawURL, user, password string) (*rpcclient.Client, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse rpc url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("rpc url scheme %q not supported, use http or https", parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, errors.New("rpc url missing host")
	}
	return bitcoin.Dial(bitcoin.ConnConfig{
		Host:       parsed.Host,
		User:       user,
		Password:   password,
		DisableTLS: parsed.Scheme == "http",
	})
}
