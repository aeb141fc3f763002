// Package handler exposes the yield pipeline and the simulation relay over HTTP.
package handler

import (
	"context"
	"net/http"

	"solarestimate_backend/internal/yield/service"
	"solarestimate_backend/internal/yield/transport"
	"solarestimate_backend/platform/apperr"
	"solarestimate_backend/platform/httpkit"
	"solarestimate_backend/platform/logger"
	"solarestimate_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// GenericFetchMessage is the single user-visible failure message. All
// pipeline failure causes collapse to this string; the distinction lives
// in server-side logs only.
const GenericFetchMessage = "Data cannot be fetched for this postcode."

const invalidRequestMessage = "postalCode, countryCode and a positive capacityKW are required"

// RawSimulator returns the upstream simulation payload verbatim.
// Implemented by the PVWatts client.
type RawSimulator interface {
	SimulateRaw(ctx context.Context, lat, lon float64) ([]byte, error)
}

// Handler exposes the solar endpoints.
type Handler struct {
	svc *service.Service
	raw RawSimulator
	val *validator.Validator
	log *logger.Logger
}

// New creates a new yield handler.
func New(svc *service.Service, raw RawSimulator, val *validator.Validator, log *logger.Logger) *Handler {
	return &Handler{svc: svc, raw: raw, val: val, log: log}
}

// Estimate handles POST /api/v1/solar/estimate.
// It runs the full pipeline and returns the yield bundle, or the generic
// failure message when any stage fails.
func (h *Handler) Estimate(c *gin.Context) {
	var req transport.EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, invalidRequestMessage)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, invalidRequestMessage)
		return
	}

	bundle, err := h.svc.Estimate(c.Request.Context(), req.PostalCode, req.CountryCode, req.CapacityKW)
	if err != nil {
		h.failPipeline(c, req.PostalCode, err)
		return
	}

	httpkit.OK(c, bundle)
}

// Proxy handles POST /api/v1/solar/pvwatts.
// It forwards the coordinates to the upstream simulation service with the
// server-held credential and relays the JSON body verbatim on success, or
// a generic error object on any failure.
func (h *Handler) Proxy(c *gin.Context) {
	var req transport.ProxyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "lat and long are required")
		return
	}

	body, err := h.raw.SimulateRaw(c.Request.Context(), *req.Lat, *req.Long)
	if err != nil {
		h.log.Error("simulation relay failed", "kind", int(apperr.GetKind(err)), "error", err)
		httpkit.Error(c, http.StatusInternalServerError, "failed to fetch solar data")
		return
	}

	c.Data(http.StatusOK, "application/json", body)
}

func (h *Handler) failPipeline(c *gin.Context, postalCode string, err error) {
	kind := apperr.GetKind(err)
	h.log.Warn("estimate pipeline failed",
		"postal_code", postalCode,
		"kind", int(kind),
		"error", err,
	)

	status := http.StatusBadGateway
	if domainErr, ok := err.(*apperr.Error); ok {
		status = domainErr.HTTPStatus()
	}
	httpkit.Error(c, status, GenericFetchMessage)
}
