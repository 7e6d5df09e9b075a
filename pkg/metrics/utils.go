package metrics

import "github.com/prometheus/client_golang/prometheus"

// createCounterVec defines a new CounterVec with standard options.
func createCounterVec(namespace, name, help string, labels []string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		},
		labels,
	)
}

// createHistogramVec defines a new HistogramVec with configurable buckets.
func createHistogramVec(namespace, name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
			Buckets:   buckets,
		},
		labels,
	)
}

// statusOf maps an operation error to the "status" label.
func statusOf(err error, isMiss func(error) bool) string {
	switch {
	case err == nil:
		return "ok"
	case isMiss(err):
		return "miss"
	default:
		return "error"
	}
}

func outcomeOf(supported bool) string {
	if supported {
		return "supported"
	}
	return "unsupported"
}
