// Package yield provides the solar yield bounded context module.
// This file defines the module that encapsulates the pipeline setup.
package yield

import (
	geoservice "solarestimate_backend/internal/geocode/service"
	apphttp "solarestimate_backend/internal/http"
	pvclient "solarestimate_backend/internal/pvwatts/client"
	"solarestimate_backend/internal/yield/handler"
	"solarestimate_backend/internal/yield/service"
	"solarestimate_backend/platform/config"
	"solarestimate_backend/platform/logger"
	"solarestimate_backend/platform/validator"
)

// Module is the solar yield bounded context module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the yield module. The resolver comes
// from the geocode module; the PVWatts client is constructed here with the
// server-held credential from configuration.
func NewModule(cfg config.PVWattsConfig, resolver *geoservice.Service, val *validator.Validator, log *logger.Logger) *Module {
	simClient := pvclient.New(cfg.GetPVWattsBaseURL(), cfg.GetNRELAPIKey(), cfg.GetPVWattsTimeout(), log)
	svc := service.New(resolver, simClient, log)
	h := handler.New(svc, simClient, val, log)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "solar"
}

// RegisterRoutes mounts the solar endpoints.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/solar")
	group.POST("/estimate", m.handler.Estimate)
	group.POST("/pvwatts", m.handler.Proxy)
}

// Service returns the yield service for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

var _ apphttp.Module = (*Module)(nil)
