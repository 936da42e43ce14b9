package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS: "*" в списке — любой origin. Content-Disposition отдаём наружу для скачивания отчёта.
func CORS(allowOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{headerRequestID, "Content-Disposition"},
	})
	return c.Handler
}
