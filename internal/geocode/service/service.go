// Package service resolves postal codes to geographic coordinates.
package service

import (
	"context"
	"math"
	"strconv"

	"solarestimate_backend/internal/geocode/client"
	"solarestimate_backend/internal/geocode/transport"
	"solarestimate_backend/platform/apperr"
	"solarestimate_backend/platform/logger"
)

// Service performs postal code to coordinate resolution.
type Service struct {
	client *client.Client
	log    *logger.Logger
}

// New creates a new geocode service.
func New(client *client.Client, log *logger.Logger) *Service {
	return &Service{client: client, log: log}
}

// Resolve looks up a postal code and country code and returns coordinates.
// Every failure mode collapses to a KindUnresolvable error: transport
// failure, non-success upstream status, an empty result list, or a first
// candidate whose coordinate strings do not parse to finite in-range
// numbers. When multiple candidates come back, only the first is used.
// Nothing is retried.
func (s *Service) Resolve(ctx context.Context, postalCode, countryCode string) (transport.Coordinates, error) {
	candidates, err := s.client.Lookup(ctx, postalCode, countryCode)
	if err != nil {
		s.log.Warn("postal lookup failed", "postal_code", postalCode, "country_code", countryCode, "kind", apperr.GetKind(err), "error", err)
		return transport.Coordinates{}, apperr.Wrap(apperr.KindUnresolvable, "postal code could not be resolved", err)
	}

	if len(candidates) == 0 {
		s.log.Info("postal lookup returned no candidates", "postal_code", postalCode, "country_code", countryCode)
		return transport.Coordinates{}, apperr.Unresolvable("postal code could not be resolved")
	}

	coords, ok := parseCandidate(candidates[0])
	if !ok {
		s.log.Warn("postal lookup candidate unparseable",
			"postal_code", postalCode,
			"latitude", candidates[0].Latitude,
			"longitude", candidates[0].Longitude,
		)
		return transport.Coordinates{}, apperr.Unresolvable("postal code could not be resolved")
	}

	return coords, nil
}

func parseCandidate(candidate transport.Candidate) (transport.Coordinates, bool) {
	lat, err := strconv.ParseFloat(candidate.Latitude, 64)
	if err != nil {
		return transport.Coordinates{}, false
	}
	lon, err := strconv.ParseFloat(candidate.Longitude, 64)
	if err != nil {
		return transport.Coordinates{}, false
	}

	if !isFinite(lat) || !isFinite(lon) {
		return transport.Coordinates{}, false
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return transport.Coordinates{}, false
	}

	return transport.Coordinates{Latitude: lat, Longitude: lon}, true
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
