package httpapi

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	operations *prometheus.CounterVec
	exclusions prometheus.Gauge
}

func newMetrics(registry prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sitefilter",
			Name:      "operations_total",
			Help:      "API operations by name and result.",
		}, []string{"operation", "result"}),
		exclusions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "sitefilter",
			Name:      "exclusions",
			Help:      "Number of excluded domains seen on the last read or write.",
		}),
	}

	for _, c := range []prometheus.Collector{m.operations, m.exclusions} {
		if err := registry.Register(c); err != nil {
			return nil, fmt.Errorf("registering metrics: %w", err)
		}
	}
	return m, nil
}

func (m *metrics) observe(operation string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.operations.WithLabelValues(operation, result).Inc()
}
