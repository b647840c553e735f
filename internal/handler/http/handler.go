package http

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/MKhiriev/go-chat-sync/internal/logger"
)

type Handler struct {
	engine   Engine
	gatherer prometheus.Gatherer
	version  string

	logger *logger.Logger
}

// NewHandler builds a handler over engine. Metrics are served from gatherer;
// a nil gatherer falls back to the default registry.
func NewHandler(engine Engine, gatherer prometheus.Gatherer, version string, logger *logger.Logger) *Handler {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	logger.Info().Msg("http handler created")
	return &Handler{
		engine:   engine,
		gatherer: gatherer,
		version:  version,
		logger:   logger,
	}
}
