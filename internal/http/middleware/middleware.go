// Package middleware wraps the router with request ids, access logging and
// the session requirement for account-only routes.
package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/boraler/boraler-web/internal/http/session"
	"github.com/boraler/boraler-web/internal/utils/response"
	"github.com/google/uuid"
)

// RequestIDHeader carries the id assigned to each request.
const RequestIDHeader = "X-Request-ID"

// MessageLoginRequired is returned to callers without a session.
const MessageLoginRequired = "Faça login para continuar"

// statusRecorder remembers the status code written by the wrapped handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

// Logger assigns a request id (reusing an incoming X-Request-ID) and logs
// one line per request once it completes.
func Logger(log *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		log.Info("request completed",
			slog.String("request_id", id),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", rec.status),
			slog.Duration("duration", time.Since(start)),
		)
	})
}

// RequireSession rejects requests without a session cookie with 401 and
// otherwise stores the user id in the request context.
func RequireSession(sessions *session.Manager, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := sessions.UserID(r)
		if !ok {
			response.WriteJSON(w, http.StatusUnauthorized, response.Message(MessageLoginRequired))
			return
		}
		next(w, r.WithContext(session.WithUserID(r.Context(), id)))
	}
}
