package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cursorPoolAcquireTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "cursor_pool",
		Name:      "acquire_total",
		Help:      "Count of cursor acquisitions.",
	}, []string{"backend", "status"})

	cursorPoolAcquireWait = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "cursor_pool",
		Name:      "acquire_wait_seconds",
		Help:      "Time spent waiting for a free cursor.",
		Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1, 5},
	}, []string{"backend", "status"})

	cursorPoolLeakedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "cursor_pool",
		Name:      "leaked_transactions_total",
		Help:      "Count of cursors returned to the pool with an open transaction.",
	}, []string{"backend"})

	cursorPoolInUse = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "blockinsight7000",
		Subsystem: "cursor_pool",
		Name:      "in_use",
		Help:      "Number of cursors checked out of the pool.",
	}, []string{"backend"})
)

// CursorPool tracks chain-state cursor pool usage.
type CursorPool struct {
	backend string
}

func NewCursorPool(backend string) *CursorPool {
	return &CursorPool{backend: orUnknown(backend)}
}

func (m CursorPool) ObserveAcquire(err error, started time.Time) {
	s := status(err)
	cursorPoolAcquireTotal.WithLabelValues(m.backend, s).Inc()
	cursorPoolAcquireWait.WithLabelValues(m.backend, s).Observe(time.Since(started).Seconds())
}

func (m CursorPool) ObserveLeakedTransaction() {
	cursorPoolLeakedTotal.WithLabelValues(m.backend).Inc()
}

func (m CursorPool) SetInUse(count int) {
	cursorPoolInUse.WithLabelValues(m.backend).Set(float64(count))
}
