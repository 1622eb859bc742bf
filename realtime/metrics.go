package realtime

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"

	bt "github.com/comalice/behaviortree"
)

// Metrics holds the Prometheus collectors a Runner reports into.
type Metrics struct {
	Ticks        *prometheus.CounterVec
	TickDuration prometheus.Histogram
	Panics       prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg. A nil reg
// skips registration, which is convenient in tests.
func NewMetrics(namespace string, reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Ticks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "behaviortree",
				Name:      "ticks_total",
				Help:      "Root ticks by resulting status.",
			},
			[]string{"status"},
		),
		TickDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "behaviortree",
				Name:      "tick_duration_seconds",
				Help:      "Wall time of one root tick.",
				Buckets:   []float64{0.00001, 0.0001, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
		),
		Panics: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "behaviortree",
				Name:      "panics_total",
				Help:      "Ticks aborted by a panicking callback.",
			},
		),
	}
	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.Ticks, m.TickDuration, m.Panics} {
		if err := reg.Register(c); err != nil {
			return nil, errors.Wrap(err, "register behaviortree metrics")
		}
	}
	return m, nil
}

func (m *Metrics) observe(status bt.Status, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Ticks.WithLabelValues(status.String()).Inc()
	m.TickDuration.Observe(elapsed.Seconds())
}

func (m *Metrics) observePanic() {
	if m == nil {
		return
	}
	m.Panics.Inc()
}
