package web

import (
	"context"
	"net/http"
	"time"

	"petak-app/internal/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

// WithAdminSession rejects requests without a valid admin session cookie and
// puts the admin into the request context otherwise.
func (s *Server) WithAdminSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		admin, err := s.currentAdmin(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Potrebna je prijava.")
			return
		}
		ctx := context.WithValue(r.Context(), adminCtxKey{}, admin)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Instrument logs every request and records it in the HTTP metrics under its
// route pattern.
func Instrument(log *logrus.Entry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			route := ""
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				route = rctx.RoutePattern()
			}
			elapsed := time.Since(start)
			metrics.ObserveRequest(r.Method, route, status, elapsed)

			entry := log.WithFields(logrus.Fields{
				"method":      r.Method,
				"path":        r.URL.Path,
				"route":       route,
				"status":      status,
				"duration_ms": elapsed.Milliseconds(),
				"request_id":  middleware.GetReqID(r.Context()),
			})
			if status >= http.StatusInternalServerError {
				entry.Error("request failed")
			} else {
				entry.Info("request")
			}
		})
	}
}
