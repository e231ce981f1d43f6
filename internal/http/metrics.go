package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// HTTPMetricsRecorder records request counters and latency.
type HTTPMetricsRecorder interface {
	RecordHTTPRequest(ctx context.Context, method, route string, statusCode int, durationMs float64)
}

// MetricsMiddleware records a counter and duration for every request,
// labelled by route template rather than raw path so national IDs do
// not leak into metric labels.
func MetricsMiddleware(metrics HTTPMetricsRecorder) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			route := r.URL.Path
			if current := mux.CurrentRoute(r); current != nil {
				if tmpl, err := current.GetPathTemplate(); err == nil {
					route = tmpl
				}
			}

			metrics.RecordHTTPRequest(r.Context(), r.Method, route, rec.status, float64(time.Since(start).Milliseconds()))
		})
	}
}

// statusRecorder captures the status code written by a handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
