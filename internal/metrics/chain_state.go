package metrics

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-node/internal/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	chainStateBlocksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "chain_state",
		Name:      "blocks_total",
		Help:      "Count of blocks added to or rolled back from the chain state.",
	}, []string{"network", "backend", "direction", "status"})

	chainStateBlockDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "chain_state",
		Name:      "block_duration_seconds",
		Help:      "Duration of applying or rolling back a block.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "backend", "direction", "status"})

	chainStateBlockTxes = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "chain_state",
		Name:      "block_transactions",
		Help:      "Number of transactions per applied or rolled back block.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 14), // 1..8192
	}, []string{"network", "backend", "direction"})

	chainStateTipHeight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "blockinsight7000",
		Subsystem: "chain_state",
		Name:      "tip_height",
		Help:      "Height of the chain state tip, -1 when empty.",
	}, []string{"network", "backend"})
)

// ChainState tracks chain-state builder metrics.
type ChainState struct {
	network string
	backend string
}

func NewChainState(network model.Network, backend string) *ChainState {
	return &ChainState{network: orUnknown(network), backend: orUnknown(backend)}
}

func (m ChainState) ObserveAddBlock(err error, txCount int, started time.Time) {
	m.observe("add", err, txCount, started)
}

func (m ChainState) ObserveRollbackBlock(err error, txCount int, started time.Time) {
	m.observe("rollback", err, txCount, started)
}

func (m ChainState) observe(direction string, err error, txCount int, started time.Time) {
	s := status(err)
	chainStateBlocksTotal.WithLabelValues(m.network, m.backend, direction, s).Inc()
	chainStateBlockDuration.WithLabelValues(m.network, m.backend, direction, s).
		Observe(time.Since(started).Seconds())
	if err == nil {
		chainStateBlockTxes.WithLabelValues(m.network, m.backend, direction).Observe(float64(txCount))
	}
}

func (m ChainState) SetTip(height int) {
	chainStateTipHeight.WithLabelValues(m.network, m.backend).Set(float64(height))
}
