package metrics

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-node/internal/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	headerRepositoryRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "header_repository",
		Name:      "operations_total",
		Help:      "Count of header repository operations.",
	}, []string{"operation", "network", "status"})
	headerRepositoryRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "header_repository",
		Name:      "operation_duration_seconds",
		Help:      "Duration of header repository operations.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 15, 20, 30},
	}, []string{"operation", "network", "status"})
)

// HeaderRepository tracks metrics for ClickHouse header storage operations.
type HeaderRepository struct{}

func NewHeaderRepository() *HeaderRepository {
	return &HeaderRepository{}
}

// Observe records duration and status of a repository operation.
func (m HeaderRepository) Observe(operation string, network model.Network, err error, started time.Time) {
	s := status(err)
	headerRepositoryRequestsTotal.WithLabelValues(operation, orUnknown(network), s).Inc()
	headerRepositoryRequestDuration.WithLabelValues(operation, orUnknown(network), s).Observe(time.Since(started).Seconds())
}
