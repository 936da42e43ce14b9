package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/go-chi/render"
)

func Recover() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				l := Logger(r)
				l.Error().
					Interface("panic", rec).
					Bytes("stack", debug.Stack()).
					Msg("panic")
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, map[string]string{"error": "internal"})
			}()
			next.ServeHTTP(w, r)
		})
	}
}
