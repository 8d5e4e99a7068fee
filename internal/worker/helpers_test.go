package worker

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/blockgen"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/chain"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/chainstate"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/metrics"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/rules"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/storage"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/storage/memory"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var regtest = &chaincfg.RegressionNetParams

func noSleep(context.Context, time.Duration) error { return nil }

func iterations(name string) *metrics.Worker {
	return metrics.NewWorker(name, model.Regtest)
}

func chainOf(t *testing.T, blocks []blockgen.Block) *chain.Chain {
	t.Helper()
	headers := make([]*model.ChainedHeader, len(blocks))
	for i, b := range blocks {
		headers[i] = b.Header
	}
	c, err := chain.New(headers...)
	require.NoError(t, err)
	return c
}

func storeHeaders(t *testing.T, s *memory.BlockStorage, blocks []blockgen.Block) {
	t.Helper()
	for _, b := range blocks {
		_, err := s.TryAddChainedHeader(context.Background(), b.Header)
		require.NoError(t, err)
	}
}

func storeTxes(t *testing.T, s *memory.BlockTxesStorage, blocks []blockgen.Block) {
	t.Helper()
	for _, b := range blocks {
		_, err := s.TryAddBlockTransactions(b.Header.Hash, b.Block.Transactions)
		require.NoError(t, err)
	}
}

type chainStateFixture struct {
	pool      *storage.CursorPool
	blockTxes *memory.BlockTxesStorage
	builder   *chainstate.Builder
}

func newChainStateFixture(t *testing.T) chainStateFixture {
	t.Helper()
	pool, err := storage.NewCursorPool(memory.NewStore(zap.NewNop()), 4, metrics.NewCursorPool("memory"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = pool.Close() })

	blockTxes := memory.NewBlockTxesStorage()
	builder, err := chainstate.NewBuilder(context.Background(), pool, rules.New(regtest), blockTxes,
		metrics.NewChainState(model.Regtest, "memory"), chainstate.Config{ValidateScripts: true}, zap.NewNop())
	require.NoError(t, err)
	return chainStateFixture{pool: pool, blockTxes: blockTxes, builder: builder}
}

func (f chainStateFixture) apply(t *testing.T, blocks []blockgen.Block) {
	t.Helper()
	storeTxes(t, f.blockTxes, blocks)
	for _, b := range blocks {
		require.NoError(t, f.builder.AddBlock(context.Background(), b.Header, b.Block.Transactions))
	}
}

func (f chainStateFixture) commitment(t *testing.T) chainhash.Hash {
	t.Helper()
	s, err := f.builder.ToChainState(context.Background(), 1)
	require.NoError(t, err)
	defer func() { require.NoError(t, s.Close()) }()
	h, err := s.UtxoCommitment(context.Background())
	require.NoError(t, err)
	return h
}

// fixedTarget is a TargetChainSource tests can move.
type fixedTarget struct {
	mu sync.Mutex
	c  *chain.Chain
}

func (f *fixedTarget) TargetChain() *chain.Chain {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.c
}

func (f *fixedTarget) set(c *chain.Chain) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.c = c
}

// nodeSource serves a generated chain as the trusted node would.
type nodeSource struct {
	mu     sync.Mutex
	blocks []blockgen.Block
}

func (s *nodeSource) set(blocks []blockgen.Block) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blocks = blocks
}

func (s *nodeSource) BestHeight(context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.blocks) - 1, nil
}

func (s *nodeSource) BlockHash(_ context.Context, height int) (chainhash.Hash, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if height < 0 || height >= len(s.blocks) {
		return chainhash.Hash{}, fmt.Errorf("height %d out of range", height)
	}
	return s.blocks[height].Header.Hash, nil
}

func (s *nodeSource) find(hash chainhash.Hash) (*wire.MsgBlock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.blocks {
		if b.Header.Hash == hash {
			return b.Block, nil
		}
	}
	return nil, fmt.Errorf("block %s not found", hash)
}

func (s *nodeSource) BlockHeader(_ context.Context, hash chainhash.Hash) (wire.BlockHeader, error) {
	b, err := s.find(hash)
	if err != nil {
		return wire.BlockHeader{}, err
	}
	return b.Header, nil
}

func (s *nodeSource) Block(_ context.Context, hash chainhash.Hash) (*wire.MsgBlock, error) {
	return s.find(hash)
}

func received(s Signal) bool {
	select {
	case <-s:
		return true
	default:
		return false
	}
}
