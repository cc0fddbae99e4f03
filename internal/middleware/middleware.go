// Package middleware tem os middlewares HTTP comuns a todas as rotas.
package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/KromaEnergia/api-faturamento/internal/config"
	"github.com/KromaEnergia/api-faturamento/internal/metrics"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

const RequestIDHeader = "X-Request-ID"

type ctxKey string

const ctxRequestID ctxKey = "requestID"

// statusRecorder guarda o status escrito pelo handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// RequestID reaproveita o X-Request-ID recebido ou gera um novo
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		ctx := context.WithValue(r.Context(), ctxRequestID, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(ctxRequestID).(string)
	return id
}

// Logger registra cada requisição e alimenta o histograma de latência.
// A rota é o template do mux, para não explodir a cardinalidade.
func Logger(m *metrics.Metrics) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			elapsed := time.Since(start)

			route := "unknown"
			if cur := mux.CurrentRoute(r); cur != nil {
				if tpl, err := cur.GetPathTemplate(); err == nil {
					route = tpl
				}
			}
			m.ObserveHTTP(r.Method, route, rec.status, elapsed)

			entry := config.GetLogger().WithFields(logrus.Fields{
				"requestId": RequestIDFrom(r.Context()),
				"method":    r.Method,
				"path":      r.URL.Path,
				"route":     route,
				"status":    rec.status,
				"latencyMs": elapsed.Milliseconds(),
			})
			if rec.status >= http.StatusInternalServerError {
				entry.Warn("requisição com erro")
				return
			}
			entry.Info("requisição")
		})
	}
}
