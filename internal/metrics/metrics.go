package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the adoption marketplace. Lifecycle
// transitions are the business-critical path; HTTP volume is tracked per
// method and status for capacity planning.
type Metrics struct {
	AdoptionTransitions *prometheus.CounterVec
	TransitionDuration  prometheus.Histogram
	HTTPRequests        *prometheus.CounterVec
}

// New registers all marketplace metrics on the default registry. Call it
// once from main; services tolerate a nil *Metrics.
func New() *Metrics {
	return &Metrics{
		AdoptionTransitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "tailpair_adoption_transitions_total",
			Help: "Total adoption lifecycle transitions by kind",
		}, []string{"transition"}),
		TransitionDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "tailpair_adoption_transition_duration_seconds",
			Help:    "Duration of adoption lifecycle transitions including the transaction",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		HTTPRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "tailpair_http_requests_total",
			Help: "Total HTTP requests by method and status",
		}, []string{"method", "status"}),
	}
}

// IncTransition records a successful lifecycle transition.
func (m *Metrics) IncTransition(transition string) {
	if m == nil {
		return
	}
	m.AdoptionTransitions.WithLabelValues(transition).Inc()
}

// ObserveTransition records the duration of a lifecycle transition.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveTransition(start time.Time) {
	if m == nil {
		return
	}
	m.TransitionDuration.Observe(time.Since(start).Seconds())
}

// IncHTTPRequest records one handled HTTP request.
func (m *Metrics) IncHTTPRequest(method, status string) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, status).Inc()
}
