// Package metrics exposes Prometheus counters for comment stream synchronization.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	OpCreate  = "create"
	OpDestroy = "destroy"
)

type Metrics struct {
	// StreamItemsUpdated counts stream items saved by the synchronizer, by op.
	StreamItemsUpdated *prometheus.CounterVec
	// StreamItemsSkipped counts album stream items skipped because the picture
	// is not part of them.
	StreamItemsSkipped prometheus.Counter
	// SyncFailures counts synchronizer runs aborted by an error, by op.
	SyncFailures *prometheus.CounterVec
}

// New registers the counters on reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		StreamItemsUpdated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "community",
			Subsystem: "stream_sync",
			Name:      "items_updated_total",
			Help:      "Stream items whose comment summaries were rewritten.",
		}, []string{"op"}),
		StreamItemsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "community",
			Subsystem: "stream_sync",
			Name:      "items_skipped_total",
			Help:      "Album stream items skipped because they do not list the picture.",
		}),
		SyncFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "community",
			Subsystem: "stream_sync",
			Name:      "failures_total",
			Help:      "Synchronizer runs aborted by a persistence error.",
		}, []string{"op"}),
	}

	for _, c := range []prometheus.Collector{m.StreamItemsUpdated, m.StreamItemsSkipped, m.SyncFailures} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (m *Metrics) RecordUpdated(op string) {
	m.StreamItemsUpdated.WithLabelValues(op).Inc()
}

func (m *Metrics) RecordSkipped() {
	m.StreamItemsSkipped.Inc()
}

func (m *Metrics) RecordFailure(op string) {
	m.SyncFailures.WithLabelValues(op).Inc()
}
