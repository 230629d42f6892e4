package http

import (
	"fmt"

	"github.com/MKhiriev/go-course-catalog/internal/authz"
	"github.com/MKhiriev/go-course-catalog/internal/config"
	"github.com/MKhiriev/go-course-catalog/internal/logger"
	"github.com/MKhiriev/go-course-catalog/internal/service"
	"github.com/MKhiriev/go-course-catalog/internal/session"
	"github.com/MKhiriev/go-course-catalog/internal/utils"
	"github.com/MKhiriev/go-course-catalog/internal/validators"
)

type Handler struct {
	services  *service.Services
	sessions  session.Store
	policy    *authz.Policy
	validator validators.Validator
	views     *views
	traceIDs  *utils.UUIDGenerator

	security config.Security
	app      config.App

	logger *logger.Logger
}

func NewHandler(services *service.Services, sessions session.Store, policy *authz.Policy, cfg config.StructuredConfig, logger *logger.Logger) (*Handler, error) {
	v, err := loadViews()
	if err != nil {
		return nil, fmt.Errorf("error loading templates: %w", err)
	}

	logger.Info().Msg("http handler created")
	return &Handler{
		services:  services,
		sessions:  sessions,
		policy:    policy,
		validator: validators.NewFormValidator(),
		views:     v,
		traceIDs:  utils.NewUUIDGenerator(),
		security:  cfg.Security,
		app:       cfg.App,
		logger:    logger,
	}, nil
}
