package metrics

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-node/internal/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	nodeCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "trusted_node",
		Name:      "calls_total",
		Help:      "JSON-RPC calls made to the trusted node.",
	}, []string{"network", "method", "status"})
	nodeCallDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "trusted_node",
		Name:      "call_duration_seconds",
		Help:      "Latency of JSON-RPC calls to the trusted node.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
	}, []string{"network", "method", "status"})
	nodeBestHeight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "blockinsight7000",
		Subsystem: "trusted_node",
		Name:      "best_height",
		Help:      "Best block height last reported by the trusted node.",
	}, []string{"network"})
)

// RPCClient records calls to the trusted node.
type RPCClient struct {
	network string
}

func NewRPCClient(network model.Network) *RPCClient {
	return &RPCClient{network: orUnknown(network)}
}

func (m *RPCClient) Observe(method string, err error, started time.Time) {
	s := status(err)
	nodeCallsTotal.WithLabelValues(m.network, method, s).Inc()
	nodeCallDuration.WithLabelValues(m.network, method, s).Observe(time.Since(started).Seconds())
}

// SetBestHeight publishes the node's block count minus one.
func (m *RPCClient) SetBestHeight(height int64) {
	nodeBestHeight.WithLabelValues(m.network).Set(float64(height))
}
