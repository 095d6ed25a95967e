package metrics

import (
	"regexp"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, path, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts HTTP requests by method, path, status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// AuthEventsTotal counts authentication outcomes by event
	// (register, login, refresh) and result (ok, rejected).
	AuthEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "timetrack_auth_events_total",
			Help: "Total number of authentication attempts by event and result",
		},
		[]string{"event", "result"},
	)

	// MutationsTotal counts successful writes by resource and action.
	MutationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "timetrack_mutations_total",
			Help: "Total number of created, updated and deleted records",
		},
		[]string{"resource", "action"},
	)
)

var (
	numericPathSegment = regexp.MustCompile(`/[0-9]+(/|$)`)
	initOnce           sync.Once
)

func init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestDuration, RequestTotal, AuthEventsTotal, MutationsTotal)
	})
}

// NormalizePath reduces cardinality by replacing numeric path segments with {id}.
// E.g. /api/project/12 -> /api/project/{id}.
func NormalizePath(path string) string {
	return numericPathSegment.ReplaceAllString(path, "/{id}$1")
}

// RecordRequest records duration and count for an HTTP request.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	path = NormalizePath(path)
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}

// RecordAuth counts one register, login or refresh attempt.
func RecordAuth(event string, ok bool) {
	result := "ok"
	if !ok {
		result = "rejected"
	}
	AuthEventsTotal.WithLabelValues(event, result).Inc()
}

// RecordMutation counts a successful create, update or delete.
func RecordMutation(resource, action string) {
	MutationsTotal.WithLabelValues(resource, action).Inc()
}
