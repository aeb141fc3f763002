// Package geocode provides the coordinate resolution bounded context module.
package geocode

import (
	"solarestimate_backend/internal/geocode/client"
	"solarestimate_backend/internal/geocode/service"
	"solarestimate_backend/platform/config"
	"solarestimate_backend/platform/logger"
)

// Module is the geocode bounded context module. It has no HTTP routes of
// its own; the yield module consumes its service as the pipeline's first
// stage.
type Module struct {
	service *service.Service
}

// NewModule creates and initializes the geocode module.
func NewModule(cfg config.GeocodeConfig, log *logger.Logger) *Module {
	apiClient := client.New(cfg.GetGeocodeBaseURL(), cfg.GetGeocodeTimeout(), log)
	svc := service.New(apiClient, log)

	return &Module{service: svc}
}

// Service returns the geocode service for use by other modules.
func (m *Module) Service() *service.Service {
	return m.service
}
