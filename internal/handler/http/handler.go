package http

import (
	"github.com/MKhiriev/road-condition-analyzer/internal/config"
	"github.com/MKhiriev/road-condition-analyzer/internal/logger"
)

// Handler holds the values the HTTP application needs from settings. They are
// copied once at construction and never re-read.
type Handler struct {
	appName     string
	appVersion  string
	environment string
	origins     config.Origins

	logger *logger.Logger
}

func NewHandler(settings *config.Settings, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		appName:     settings.AppName(),
		appVersion:  settings.AppVersion(),
		environment: settings.Environment(),
		origins:     settings.CORSOrigins(),
		logger:      logger,
	}
}
