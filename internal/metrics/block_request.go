package metrics

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-node/internal/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	blockRequestFlushTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "block_request",
		Name:      "flush_total",
		Help:      "Count of block request batches flushed.",
	}, []string{"network", "status"})

	blockRequestFlushDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "block_request",
		Name:      "flush_duration_seconds",
		Help:      "Duration of fetching and storing a batch of blocks.",
		Buckets:   []float64{.01, .05, .1, .5, 1, 5, 10, 30, 60, 120},
	}, []string{"network", "status"})

	blockRequestBlocksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "block_request",
		Name:      "blocks_total",
		Help:      "Count of blocks fetched and stored.",
	}, []string{"network"})
)

// BlockRequest tracks block request worker metrics.
type BlockRequest struct {
	network string
}

func NewBlockRequest(network model.Network) *BlockRequest {
	return &BlockRequest{network: orUnknown(network)}
}

func (m BlockRequest) ObserveFlush(err error, blocks int, started time.Time) {
	s := status(err)
	blockRequestFlushTotal.WithLabelValues(m.network, s).Inc()
	blockRequestFlushDuration.WithLabelValues(m.network, s).Observe(time.Since(started).Seconds())
	blockRequestBlocksTotal.WithLabelValues(m.network).Add(float64(blocks))
}
