package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

// Routes wires every route and the logging middleware.
func (h *Handler) Routes(logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(hlog.NewHandler(logger))
	r.Use(hlog.RequestIDHandler("req_id", "Request-Id"))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request")
	}))
	r.Use(middleware.Recoverer)

	// Generated charts
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(h.charts.Dir()))))

	// Pages
	r.Get("/", h.Index)
	r.Get("/graficos", h.Charts)
	r.Get("/relatorio", h.Report)

	// Entries
	r.Post("/registrar", h.Register)
	r.Post("/voz_web", h.Voice)

	r.Handle("/metrics", h.metrics.Handler())

	return r
}
