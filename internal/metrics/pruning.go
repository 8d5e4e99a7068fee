package metrics

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-node/internal/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	pruningBlocksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "pruning",
		Name:      "blocks_total",
		Help:      "Count of blocks pruned.",
	}, []string{"network", "mode", "status"})

	pruningBlockDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "pruning",
		Name:      "block_duration_seconds",
		Help:      "Duration of pruning one block.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "mode", "status"})

	pruningTxesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "pruning",
		Name:      "transactions_total",
		Help:      "Count of spent transactions pruned from block storage.",
	}, []string{"network", "mode"})

	pruningHeight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "blockinsight7000",
		Subsystem: "pruning",
		Name:      "pruned_height",
		Help:      "Height of the last pruned block, -1 when none.",
	}, []string{"network", "mode"})
)

// Pruning tracks pruning worker metrics.
type Pruning struct {
	network string
	mode    string
}

func NewPruning(network model.Network, mode string) *Pruning {
	return &Pruning{network: orUnknown(network), mode: orUnknown(mode)}
}

func (m Pruning) ObservePruneBlock(err error, prunedTxes int, started time.Time) {
	s := status(err)
	pruningBlocksTotal.WithLabelValues(m.network, m.mode, s).Inc()
	pruningBlockDuration.WithLabelValues(m.network, m.mode, s).Observe(time.Since(started).Seconds())
	if err == nil {
		pruningTxesTotal.WithLabelValues(m.network, m.mode).Add(float64(prunedTxes))
	}
}

func (m Pruning) SetPrunedHeight(height int) {
	pruningHeight.WithLabelValues(m.network, m.mode).Set(float64(height))
}
