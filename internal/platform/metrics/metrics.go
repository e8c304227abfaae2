package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for the application subsystem.
// Consumers treat a nil *Metrics as "metrics disabled", so tests can pass nil
// without touching the default registry.
type Metrics struct {
	ApplicationsCreated prometheus.Counter
	AccessDenied        prometheus.Counter
	SensitiveReads      prometheus.Counter
	StatusTransitions   *prometheus.CounterVec
	RequestDuration     *prometheus.HistogramVec
}

// New creates and registers all metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		ApplicationsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "lendfold_applications_created_total",
			Help: "Total number of loan applications created.",
		}),
		AccessDenied: promauto.NewCounter(prometheus.CounterOpts{
			Name: "lendfold_access_denied_total",
			Help: "Total number of reads or writes rejected by the access guard.",
		}),
		SensitiveReads: promauto.NewCounter(prometheus.CounterOpts{
			Name: "lendfold_sensitive_reads_total",
			Help: "Total number of reads that touched sensitive fields.",
		}),
		StatusTransitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "lendfold_status_transitions_total",
			Help: "Status transitions applied by the state machine.",
		}, []string{"status"}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "lendfold_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
	}
}
