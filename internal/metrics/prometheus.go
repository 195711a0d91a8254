package metrics

import "github.com/prometheus/client_golang/prometheus"

// Prometheus holds the counters tracked during a search run.
type Prometheus struct {
	Evaluations *prometheus.CounterVec
	Failures    *prometheus.CounterVec
}

func NewPrometheusMetrics() Prometheus {
	return Prometheus{
		Evaluations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "odsearch",
				Name:      "evaluations",
			}, []string{"detector"}),
		Failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "odsearch",
				Name:      "failures",
			}, []string{"detector"}),
	}
}

// Register registers the counters with the default registry.
func (p Prometheus) Register() error {
	if err := prometheus.Register(p.Evaluations); err != nil {
		return err
	}
	return prometheus.Register(p.Failures)
}
