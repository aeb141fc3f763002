// Package client provides the HTTP client for the NREL PVWatts simulation API.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"solarestimate_backend/internal/pvwatts/transport"
	"solarestimate_backend/platform/apperr"
	"solarestimate_backend/platform/logger"
)

const defaultBaseURL = "https://developer.nrel.gov/api/pvwatts/v8.json"

// Reference system parameters. The model is always run at a fixed 1 kW
// reference capacity, south-facing at 40 degrees tilt with 10% losses;
// callers rescale the output to the requested capacity.
const (
	refSystemCapacityKW = 1
	refAzimuthDeg       = 180
	refTiltDeg          = 40
	refArrayType        = 1
	refModuleType       = 1
	refLossesPct        = 10
)

// Client is the HTTP client for the PVWatts API. The API key is injected
// at construction from configuration and is never read ad hoc.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *logger.Logger
}

// New creates a new PVWatts client. An empty baseURL selects the public
// NREL endpoint; tests point it at a local server.
func New(baseURL, apiKey string, timeout time.Duration, log *logger.Logger) *Client {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    trimmed,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// SimulateRaw runs the hourly reference simulation for the given
// coordinates and returns the upstream JSON body verbatim. The proxy
// endpoint relays this body without interpretation.
func (c *Client) SimulateRaw(ctx context.Context, lat, lon float64) ([]byte, error) {
	reqURL := c.buildURL(lat, lon)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "create request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.UpstreamError("pvwatts", "simulate", err)
		return nil, apperr.Wrap(apperr.KindUpstream, "pvwatts request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Error("pvwatts read failed", "error", err)
		return nil, apperr.Wrap(apperr.KindUpstream, "read pvwatts response", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.log.Error("pvwatts upstream error", "status", resp.StatusCode)
		return nil, apperr.Upstream(fmt.Sprintf("pvwatts status %d", resp.StatusCode))
	}

	return body, nil
}

// Simulate runs the hourly reference simulation and decodes the output
// families the yield pipeline consumes.
func (c *Client) Simulate(ctx context.Context, lat, lon float64) (*transport.SimulationOutputs, error) {
	body, err := c.SimulateRaw(ctx, lat, lon)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Outputs *transport.SimulationOutputs `json:"outputs"`
		Errors  []string                     `json:"errors"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		c.log.Error("pvwatts decode failed", "error", err)
		return nil, apperr.Wrap(apperr.KindMalformed, "decode pvwatts response", err)
	}

	if len(payload.Errors) > 0 {
		c.log.Error("pvwatts reported errors", "errors", strings.Join(payload.Errors, "; "))
		return nil, apperr.Upstream("pvwatts reported errors")
	}
	if payload.Outputs == nil || len(payload.Outputs.AC) == 0 {
		c.log.Error("pvwatts response missing outputs")
		return nil, apperr.Malformed("pvwatts response missing outputs")
	}

	return payload.Outputs, nil
}

func (c *Client) buildURL(lat, lon float64) string {
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("lat", formatCoord(lat))
	params.Set("lon", formatCoord(lon))
	params.Set("system_capacity", strconv.Itoa(refSystemCapacityKW))
	params.Set("azimuth", strconv.Itoa(refAzimuthDeg))
	params.Set("tilt", strconv.Itoa(refTiltDeg))
	params.Set("array_type", strconv.Itoa(refArrayType))
	params.Set("module_type", strconv.Itoa(refModuleType))
	params.Set("losses", strconv.Itoa(refLossesPct))
	params.Set("timeframe", "hourly")

	return fmt.Sprintf("%s?%s", c.baseURL, params.Encode())
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
