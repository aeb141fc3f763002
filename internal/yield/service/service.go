// Package service implements the solar yield pipeline: coordinate
// resolution, reference simulation retrieval, rescaling and temporal
// reshaping.
package service

import (
	"context"

	geotransport "solarestimate_backend/internal/geocode/transport"
	pvtransport "solarestimate_backend/internal/pvwatts/transport"
	"solarestimate_backend/internal/yield/transport"
	"solarestimate_backend/platform/logger"
)

// CoordinateResolver resolves a postal code and country code to coordinates.
// Implemented by the geocode service.
type CoordinateResolver interface {
	Resolve(ctx context.Context, postalCode, countryCode string) (geotransport.Coordinates, error)
}

// Simulator runs the reference photovoltaic simulation for coordinates.
// Implemented by the PVWatts client.
type Simulator interface {
	Simulate(ctx context.Context, lat, lon float64) (*pvtransport.SimulationOutputs, error)
}

// Service is the yield pipeline service.
type Service struct {
	resolver  CoordinateResolver
	simulator Simulator
	log       *logger.Logger
}

// New creates a new yield service.
func New(resolver CoordinateResolver, simulator Simulator, log *logger.Logger) *Service {
	return &Service{
		resolver:  resolver,
		simulator: simulator,
		log:       log,
	}
}

// FetchYield retrieves the reference simulation for the given coordinates
// and rescales it to the requested capacity. Deterministic given its
// inputs and the upstream payload.
func (s *Service) FetchYield(ctx context.Context, coords geotransport.Coordinates, capacityKW float64) (*transport.YieldBundle, error) {
	outputs, err := s.simulator.Simulate(ctx, coords.Latitude, coords.Longitude)
	if err != nil {
		return nil, err
	}

	bundle := BuildBundle(outputs, capacityKW)
	bundle.Coordinates = coords
	return bundle, nil
}

// Estimate is the two-stage pipeline: resolve the postal code first, then
// feed the coordinates into the yield retrieval. The stages run strictly
// in sequence; the simulation call is never attempted when resolution
// fails.
func (s *Service) Estimate(ctx context.Context, postalCode, countryCode string, capacityKW float64) (*transport.YieldBundle, error) {
	coords, err := s.resolver.Resolve(ctx, postalCode, countryCode)
	if err != nil {
		return nil, err
	}

	s.log.Debug("postal code resolved",
		"postal_code", postalCode,
		"lat", coords.Latitude,
		"lon", coords.Longitude,
	)

	return s.FetchYield(ctx, coords, capacityKW)
}
