package server

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts generations and queries served
type Metrics struct {
	generated *prometheus.CounterVec
	failures  *prometheus.CounterVec
	queries   *prometheus.CounterVec
}

// NewMetrics creates the counters and registers them with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		generated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "world",
			Name:      "generated_total",
			Help:      "Worlds generated, by generator kind.",
		}, []string{"kind"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "world",
			Name:      "generation_failures_total",
			Help:      "Generation requests that failed, by generator kind and reason.",
		}, []string{"kind", "reason"}),
		queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "world",
			Name:      "query_points_total",
			Help:      "Points evaluated against obstacles, by query type.",
		}, []string{"query"}),
	}
	reg.MustRegister(m.generated, m.failures, m.queries)
	return m
}
