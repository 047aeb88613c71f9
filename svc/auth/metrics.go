package auth

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder observes the outcome of every use case.
type Recorder interface {
	Observe(operation, outcome string, d time.Duration)
}

type noopRecorder struct{}

func (noopRecorder) Observe(string, string, time.Duration) {}

// PrometheusRecorder exports use case counters and latencies.
type PrometheusRecorder struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// NewPrometheusRecorder registers the auth collectors on reg.
func NewPrometheusRecorder(reg prometheus.Registerer) *PrometheusRecorder {
	r := &PrometheusRecorder{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "authkit",
			Name:      "operations_total",
			Help:      "Total number of auth use cases by outcome.",
		}, []string{"operation", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "authkit",
			Name:      "operation_duration_seconds",
			Help:      "Auth use case latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}
	reg.MustRegister(r.operations, r.duration)
	return r
}

// Observe counts one run of operation under outcome and records its
// latency.
func (r *PrometheusRecorder) Observe(operation, outcome string, d time.Duration) {
	r.operations.WithLabelValues(operation, outcome).Inc()
	r.duration.WithLabelValues(operation).Observe(d.Seconds())
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	return KindOf(err).String()
}
