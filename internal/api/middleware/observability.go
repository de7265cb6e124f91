package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/classpulse/backend/internal/infrastructure/observability"
	"go.opentelemetry.io/otel/attribute"
)

type routeKey struct{}

// routeHolder carries the matched mux pattern back out through middleware
// that hands copies of the request downstream.
type routeHolder struct {
	pattern string
}

// ObservabilityMiddleware adds OpenTelemetry tracing and metrics to HTTP requests.
// Route labels come from RecordRoute, which must wrap the mux itself.
func ObservabilityMiddleware(metrics *observability.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := observability.StartSpan(r.Context(), r.Method+" "+r.URL.Path)
			defer span.End()

			holder := &routeHolder{}
			ctx = context.WithValue(ctx, routeKey{}, holder)

			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			req := r.WithContext(ctx)
			start := time.Now()

			next.ServeHTTP(rw, req)

			route := holder.pattern
			if route == "" {
				route = req.Pattern
			}
			if route == "" {
				// Unmatched paths share one label.
				route = r.Method + " unmatched"
			}
			span.SetName(route)
			observability.SetSpanAttributes(span,
				attribute.String("http.method", r.Method),
				attribute.String("http.route", route),
				attribute.String("http.target", r.URL.Path),
				attribute.String("http.user_agent", r.UserAgent()),
				attribute.Int("http.status_code", rw.statusCode),
			)
			observability.RecordRequestMetric(ctx, metrics, r.Method, route, rw.statusCode, time.Since(start))
		})
	}
}

// RecordRoute wraps a ServeMux and reports the pattern it matched to the
// enclosing ObservabilityMiddleware.
func RecordRoute(mux http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mux.ServeHTTP(w, r)
		if holder, ok := r.Context().Value(routeKey{}).(*routeHolder); ok {
			holder.pattern = r.Pattern
		}
	})
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	rw.statusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}
