package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/iho/studentledger/internal/infrastructure/metrics"
)

const transactionsPrefix = "/api/v1/transactions/"

// Metrics returns a middleware that records HTTP metrics into m.
func Metrics(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			m.HTTPInFlight.Inc()
			defer m.HTTPInFlight.Dec()

			// Wrap response writer to capture status code
			wrapped := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(wrapped, r)

			path := normalizePath(r.URL.Path)

			m.HTTPRequests.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.statusCode)).Inc()
			m.HTTPDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
		})
	}
}

// normalizePath collapses record IDs to keep label cardinality bounded.
// /api/v1/transactions/01ABC -> /api/v1/transactions/:id
func normalizePath(path string) string {
	if !strings.HasPrefix(path, transactionsPrefix) || len(path) == len(transactionsPrefix) {
		return path
	}

	rest := path[len(transactionsPrefix):]
	suffix := ""
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		suffix = rest[i:]
	}

	return transactionsPrefix + ":id" + suffix
}
