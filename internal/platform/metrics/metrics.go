package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application. A nil *Metrics
// is a valid no-op receiver so tests can skip registration entirely.
type Metrics struct {
	ContactsCreated    prometheus.Counter
	ContactsUpdated    prometheus.Counter
	ContactsDeleted    prometheus.Counter
	ValidationFailures *prometheus.CounterVec
	RequestDuration    *prometheus.HistogramVec
}

// New creates and registers all metrics on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ContactsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "contactbook_contacts_created_total",
			Help: "Total number of contacts created",
		}),
		ContactsUpdated: factory.NewCounter(prometheus.CounterOpts{
			Name: "contactbook_contacts_updated_total",
			Help: "Total number of contacts updated",
		}),
		ContactsDeleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "contactbook_contacts_deleted_total",
			Help: "Total number of contacts deleted",
		}),
		ValidationFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "contactbook_validation_failures_total",
			Help: "Validation failures by form field",
		}, []string{"field"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "contactbook_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

func (m *Metrics) IncContactsCreated() {
	if m == nil {
		return
	}
	m.ContactsCreated.Inc()
}

func (m *Metrics) IncContactsUpdated() {
	if m == nil {
		return
	}
	m.ContactsUpdated.Inc()
}

func (m *Metrics) IncContactsDeleted() {
	if m == nil {
		return
	}
	m.ContactsDeleted.Inc()
}

func (m *Metrics) IncValidationFailure(field string) {
	if m == nil {
		return
	}
	m.ValidationFailures.WithLabelValues(field).Inc()
}

func (m *Metrics) ObserveRequestDuration(method, route string, seconds float64) {
	if m == nil {
		return
	}
	m.RequestDuration.WithLabelValues(method, route).Observe(seconds)
}
