package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/clawdbotatg/nerve-cord/internal/metrics"
)

// Metrics records Prometheus request metrics. The chi route pattern keeps
// metric cardinality bounded regardless of how many ids pass through.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		path := chi.RouteContext(r.Context()).RoutePattern()
		if path == "" {
			path = "unmatched"
		}

		metrics.HTTPRequestsTotal.WithLabelValues(
			r.Method, path, strconv.Itoa(ww.Status()),
		).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(
			r.Method, path,
		).Observe(time.Since(start).Seconds())
	})
}
