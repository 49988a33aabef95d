package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Admission outcomes recorded by RecordAdmission.
const (
	OutcomeAdmitted        = "admitted"
	OutcomeOccupied        = "occupied"
	OutcomeInvalidInterval = "invalid_interval"
	OutcomePastInterval    = "past_interval"
	OutcomeVenueNotFound   = "venue_not_found"
	OutcomeMovieNotFound   = "movie_not_found"
	OutcomeSeatsExceeded   = "seats_exceeded"
	OutcomeLockTimeout     = "lock_timeout"
	OutcomeError           = "error"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinema_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cinema_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	FunctionAdmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinema_function_admissions_total",
			Help: "Function scheduling attempts by outcome",
		},
		[]string{"outcome"},
	)

	FunctionAdmissionRetriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cinema_function_admission_retries_total",
			Help: "Admissions retried after losing a race on the same start slot",
		},
	)

	FunctionCancellationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cinema_function_cancellations_total",
			Help: "Total number of cancelled functions",
		},
	)

	EventsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinema_events_published_total",
			Help: "Domain events handed to the broker",
		},
		[]string{"queue", "status"},
	)
)

// RecordHTTPRequest counts a served request and observes its latency in
// seconds. path is the route pattern, not the raw URL.
func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// RecordAdmission counts one admission attempt by its final outcome.
func RecordAdmission(outcome string) {
	FunctionAdmissionsTotal.WithLabelValues(outcome).Inc()
}

// RecordAdmissionRetry counts a retry after a lost insert race.
func RecordAdmissionRetry() {
	FunctionAdmissionRetriesTotal.Inc()
}

// RecordCancellation counts a deleted function.
func RecordCancellation() {
	FunctionCancellationsTotal.Inc()
}

// RecordEvent counts a publish attempt; status is "ok" or "failed".
func RecordEvent(queue, status string) {
	EventsPublishedTotal.WithLabelValues(queue, status).Inc()
}
