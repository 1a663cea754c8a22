package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hamzasiddiqui/bazaarline-backend/pkg/metrics"
)

// Metrics records request counts and latency against the chi route pattern
// rather than the raw path, keeping label cardinality bounded.
func Metrics(m *metrics.HTTPMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if m == nil {
				next.ServeHTTP(w, r)
				return
			}

			m.InFlight.Inc()
			defer m.InFlight.Dec()

			rec := &statusRecorder{ResponseWriter: w}
			start := time.Now()

			next.ServeHTTP(rec, r)

			if rec.status == 0 {
				rec.status = http.StatusOK
			}

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					route = pattern
				}
			}

			m.Requests.WithLabelValues(route, r.Method, strconv.Itoa(rec.status)).Inc()
			m.Duration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
		})
	}
}
