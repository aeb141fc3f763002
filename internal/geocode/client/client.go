// Package client provides the HTTP client for the postal geocoding lookup service.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"solarestimate_backend/internal/geocode/transport"
	"solarestimate_backend/platform/apperr"
	"solarestimate_backend/platform/logger"
)

const defaultBaseURL = "https://api.worldpostallocations.com/pincode"

// Client is the HTTP client for the postal lookup API. The lookup is
// read-only and unauthenticated; no credential is attached.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

// New creates a new postal lookup client. An empty baseURL selects the
// public endpoint; tests point it at a local server.
func New(baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(trimmed, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// lookupResponse mirrors the relevant parts of the postal lookup payload.
// status/message are only populated on failure responses.
type lookupResponse struct {
	Status  bool                  `json:"status"`
	Message string                `json:"message"`
	Result  []transport.Candidate `json:"result"`
}

// Lookup fetches the candidate list for a postal code and country code.
// A single attempt is made; any transport or upstream failure is returned
// as-is for the service to classify.
func (c *Client) Lookup(ctx context.Context, postalCode, countryCode string) ([]transport.Candidate, error) {
	params := url.Values{}
	params.Set("postalcode", postalCode)
	params.Set("countrycode", countryCode)

	reqURL := fmt.Sprintf("%s?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "create request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.UpstreamError("postal-lookup", "lookup", err)
		return nil, apperr.Wrap(apperr.KindUpstream, "postal lookup request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Error("postal lookup upstream error", "status", resp.StatusCode)
		return nil, apperr.Upstream(fmt.Sprintf("postal lookup status %d", resp.StatusCode))
	}

	var payload lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.log.Error("postal lookup decode failed", "error", err)
		return nil, apperr.Wrap(apperr.KindMalformed, "decode postal lookup response", err)
	}

	if payload.Message != "" && len(payload.Result) == 0 {
		c.log.Debug("postal lookup reported no results", "message", payload.Message)
	}

	return payload.Result, nil
}
