package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type ctxKey int

const (
	requestIDKey ctxKey = iota + 1
	loggerKey
)

const headerRequestID = "X-Request-ID"

// RequestID проставляет X-Request-ID (берёт входящий или генерирует uuid)
// и кладёт в контекст логгер с полем rid.
func RequestID(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rid := r.Header.Get(headerRequestID)
			if rid == "" {
				rid = uuid.NewString()
			}
			l := logger.With().Str("rid", rid).Logger()
			ctx := context.WithValue(r.Context(), requestIDKey, rid)
			ctx = context.WithValue(ctx, loggerKey, l)
			w.Header().Set(headerRequestID, rid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetRequestID(r *http.Request) string {
	if v, ok := r.Context().Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

// Logger — логгер запроса; без RequestID — глобальный.
func Logger(r *http.Request) zerolog.Logger {
	if l, ok := r.Context().Value(loggerKey).(zerolog.Logger); ok {
		return l
	}
	return log.Logger
}
