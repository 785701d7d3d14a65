package cache

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "logrush"

type metrics struct {
	hits          prometheus.Counter
	misses        prometheus.Counter
	parseFailures prometheus.Counter
}

func newMetrics() *metrics {
	return &metrics{
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "Total cache lookups served without parsing",
		}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "misses_total",
			Help:      "Total cache lookups that required a fresh parse",
		}),
		parseFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "parse_failures_total",
			Help:      "Total documents that failed to parse",
		}),
	}
}

// register adds the counters to r; counters already registered elsewhere are reused
func (m *metrics) register(r prometheus.Registerer) error {
	if r == nil {
		return nil
	}
	for _, target := range []*prometheus.Counter{&m.hits, &m.misses, &m.parseFailures} {
		if err := r.Register(*target); err != nil {
			var already prometheus.AlreadyRegisteredError
			if !errors.As(err, &already) {
				return err
			}
			existing, ok := already.ExistingCollector.(prometheus.Counter)
			if !ok {
				return err
			}
			*target = existing
		}
	}
	return nil
}
