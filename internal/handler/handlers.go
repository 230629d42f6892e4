package handler

import (
	"github.com/MKhiriev/go-course-catalog/internal/authz"
	"github.com/MKhiriev/go-course-catalog/internal/config"
	"github.com/MKhiriev/go-course-catalog/internal/handler/http"
	"github.com/MKhiriev/go-course-catalog/internal/logger"
	"github.com/MKhiriev/go-course-catalog/internal/service"
	"github.com/MKhiriev/go-course-catalog/internal/session"
)

type Handlers struct {
	HTTP *http.Handler
}

// NewHandlers builds the transport handlers enabled by cfg.Server. The
// access policy is compiled from the catalog rules and the configured CSRF
// exemptions.
func NewHandlers(services *service.Services, sessions session.Store, cfg config.StructuredConfig, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.Server.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	policy, err := authz.NewCatalogPolicy(cfg.Security.CSRFExemptPaths)
	if err != nil {
		return nil, err
	}

	httpHandler, err := http.NewHandler(services, sessions, policy, cfg, logger)
	if err != nil {
		return nil, err
	}

	return &Handlers{HTTP: httpHandler}, nil
}
