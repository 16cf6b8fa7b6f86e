package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"petshub/internal/platform/logger"
	"petshub/internal/platform/metrics"
)

const requestIDHeader = "X-Request-Id"

// RequestLogger va después de chi RequestID: expone el id en la respuesta, deja en el
// contexto un logger con request_id y al final loguea status/duración y alimenta métricas.
func RequestLogger(base logger.Logger, m *metrics.HTTPMetrics) func(http.Handler) http.Handler {
	if base == nil {
		base = logger.Nop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := chimw.GetReqID(r.Context())
			if reqID != "" {
				w.Header().Set(requestIDHeader, reqID)
			}

			l := base.With(map[string]any{
				"request_id": reqID,
				"method":     r.Method,
				"path":       r.URL.Path,
			})
			ctx := logger.WithContext(r.Context(), l)

			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r.WithContext(ctx))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			elapsed := time.Since(start)

			route := ""
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				route = rctx.RoutePattern()
			}
			m.ObserveRequest(route, r.Method, status, elapsed)

			fields := map[string]any{
				"status":      status,
				"duration_ms": elapsed.Milliseconds(),
				"route":       route,
			}
			if status >= http.StatusInternalServerError {
				l.Error("request.complete", fields)
				return
			}
			l.Info("request.complete", fields)
		})
	}
}
