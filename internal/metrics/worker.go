package metrics

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-node/internal/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	workerIterationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "worker",
		Name:      "iterations_total",
		Help:      "Count of worker loop iterations.",
	}, []string{"worker", "network", "status"})

	workerIterationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "worker",
		Name:      "iteration_duration_seconds",
		Help:      "Duration of a worker loop iteration.",
		Buckets:   []float64{.001, .01, .1, .5, 1, 5, 15, 60, 300},
	}, []string{"worker", "network", "status"})
)

// Worker tracks loop iterations of one background worker.
type Worker struct {
	name    string
	network string
}

func NewWorker(name string, network model.Network) *Worker {
	return &Worker{name: orUnknown(name), network: orUnknown(network)}
}

func (m Worker) ObserveIteration(err error, started time.Time) {
	s := status(err)
	workerIterationsTotal.WithLabelValues(m.name, m.network, s).Inc()
	workerIterationDuration.WithLabelValues(m.name, m.network, s).Observe(time.Since(started).Seconds())
}
