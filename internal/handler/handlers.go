package handler

import (
	"github.com/MKhiriev/road-condition-analyzer/internal/config"
	"github.com/MKhiriev/road-condition-analyzer/internal/handler/http"
	"github.com/MKhiriev/road-condition-analyzer/internal/logger"
)

// Handlers groups the transport handlers of the API process.
type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(settings *config.Settings, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if settings == nil {
		return nil, errNoHandlersAreCreated
	}

	return &Handlers{
		HTTP: http.NewHandler(settings, logger),
	}, nil
}
