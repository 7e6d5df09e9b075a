package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Aleph-Alpha/vectorset/pkg/vectorset"
)

// Metrics encapsulates the Prometheus registry, the vector set collectors,
// and the HTTP server exposing them.
//
// Metrics implements vectorset.Recorder.
type Metrics struct {
	// Server defines the HTTP server used to expose the /metrics endpoint.
	Server *http.Server

	// Registry is the isolated Prometheus registry of this service.
	Registry *prometheus.Registry

	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	probesTotal       *prometheus.CounterVec
}

var _ vectorset.Recorder = (*Metrics)(nil)

// NewMetrics sets up a dedicated registry wrapped with a constant service
// label, registers the vector set collectors, and prepares (but does not
// start) the /metrics HTTP server.
//
// Example:
//
//	m := metrics.NewMetrics(metrics.Config{ServiceName: "vsetctl"})
//	client := vectorset.NewClient(transport, vectorset.Config{}).WithMetrics(m)
//	go m.Server.ListenAndServe()
func NewMetrics(cfg Config) *Metrics {
	if cfg.Address == "" {
		cfg.Address = DefaultMetricsAddress
	}

	registry := prometheus.NewRegistry()
	wrappedRegistry := prometheus.WrapRegistererWith(
		prometheus.Labels{"service": cfg.ServiceName},
		registry,
	)

	m := &Metrics{
		Registry: registry,
		operationsTotal: createCounterVec(cfg.Namespace, "vectorset_operations_total",
			"Total number of vector set operations by outcome.",
			[]string{"operation", "status"}),
		operationDuration: createHistogramVec(cfg.Namespace, "vectorset_operation_duration_seconds",
			"Duration of vector set operations in seconds.",
			[]string{"operation"}, prometheus.DefBuckets),
		probesTotal: createCounterVec(cfg.Namespace, "vectorset_capability_probes_total",
			"Capability probes by capability and outcome.",
			[]string{"capability", "outcome"}),
	}

	wrappedRegistry.MustRegister(m.operationsTotal, m.operationDuration, m.probesTotal)

	if cfg.EnableDefaultCollectors {
		wrappedRegistry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	m.Server = &http.Server{
		Addr:              cfg.Address,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return m
}

// ObserveOperation records the outcome and latency of one vector set operation.
// Not-found, conflict, type and validation errors count as "miss".
func (m *Metrics) ObserveOperation(operation string, start time.Time, err error) {
	m.operationsTotal.WithLabelValues(operation, statusOf(err, isMiss)).Inc()
	m.operationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// ObserveCapabilityProbe records the outcome of a capability probe.
func (m *Metrics) ObserveCapabilityProbe(capability string, supported bool) {
	m.probesTotal.WithLabelValues(capability, outcomeOf(supported)).Inc()
}

func isMiss(err error) bool {
	return vectorset.IsNotFound(err) ||
		vectorset.IsAlreadyExists(err) ||
		vectorset.IsTypeMismatch(err) ||
		vectorset.IsInvalidRequest(err)
}
