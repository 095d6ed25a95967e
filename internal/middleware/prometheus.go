package middleware

import (
	"net/http"
	"time"

	"github.com/crucial707/timetrack/internal/metrics"
)

// unmeteredPaths are polled by Prometheus and the orchestrator, not by API
// clients, and would drown the /api series.
var unmeteredPaths = map[string]struct{}{
	"/metrics": {},
	"/health":  {},
	"/ready":   {},
}

// Prometheus observes latency and status of API requests. Numeric ids in the
// path are collapsed by metrics.RecordRequest, so /api/project/3 and
// /api/project/4 share one series.
func Prometheus(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, skip := unmeteredPaths[r.URL.Path]; skip {
			next.ServeHTTP(w, r)
			return
		}
		start := time.Now()
		sw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		metrics.RecordRequest(r.Method, r.URL.Path, sw.status, time.Since(start).Seconds())
	})
}
