package serverhttp

import (
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"prodrecon/internal/config"
	"prodrecon/internal/middleware"
	recHnd "prodrecon/internal/reconcile/handler"
	"prodrecon/server/http/handlers"
)

func NewRouter(cfg config.Config, logger zerolog.Logger) (*chi.Mux, error) {
	rec, err := recHnd.New(cfg)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()

	// порядок важен: requestID -> recover -> logging -> cors -> limit
	// (requestID кладёт в контекст логгер, которым пишут остальные)
	r.Use(middleware.RequestID(logger))
	r.Use(middleware.Recover())
	r.Use(middleware.Logging())
	r.Use(middleware.CORS(cfg.AllowOrigins))
	r.Use(middleware.LimitBytes(int64(cfg.MaxUploadMB) * 1024 * 1024))

	// health-check
	r.Get("/health", handlers.Health)

	// основной эндпоинт
	r.Post("/reconcile", rec.Reconcile)
	r.Route("/sessions/{id}", func(r chi.Router) {
		r.Get("/", rec.Session)
		r.Get("/report.xlsx", rec.Report)
	})

	return r, nil
}
