package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	router.Get("/healthz", h.healthz)
	router.Get("/version", h.getVersion)
	router.Handle("/metrics", promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{}))

	router.Route("/api/sync", func(r chi.Router) {
		r.Get("/status", h.getStatus)
		r.Post("/resync", h.resync)

		r.Get("/channels", h.getChannels)
		r.Get("/channels/{id}", h.getChannel)
		r.Post("/channels/{id}/open", h.openChannel)
		r.Post("/channels/{id}/close", h.closeChannel)
		r.Post("/channels/{id}/active", h.setActiveChannel)
		r.Delete("/channels/active", h.clearActiveChannel)
	})

	return router
}
