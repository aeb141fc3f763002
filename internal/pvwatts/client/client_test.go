package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"solarestimate_backend/platform/apperr"
	"solarestimate_backend/platform/logger"
)

const simulationBody = `{"outputs":{"ac":[1.0,2.0,3.0],"ac_monthly":[100],"poa_monthly":[90],"solrad_monthly":[4.5],"dc_monthly":[105],"ac_annual":1745,"solrad_annual":4.56,"capacity_factor":19.9}}`

func newClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(server.URL, "test-key", 5*time.Second, logger.New("test"))
}

func TestSimulate_SendsFixedParameterSet(t *testing.T) {
	var query map[string]string
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		query = map[string]string{}
		for key, values := range r.URL.Query() {
			query[key] = values[0]
		}
		_, _ = w.Write([]byte(simulationBody))
	})

	if _, err := c.Simulate(context.Background(), 51.501, -0.1416); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := map[string]string{
		"api_key":         "test-key",
		"lat":             "51.501",
		"lon":             "-0.1416",
		"system_capacity": "1",
		"azimuth":         "180",
		"tilt":            "40",
		"array_type":      "1",
		"module_type":     "1",
		"losses":          "10",
		"timeframe":       "hourly",
	}
	for key, want := range expected {
		if got := query[key]; got != want {
			t.Fatalf("query %q: expected %q, got %q", key, want, got)
		}
	}
	if len(query) != len(expected) {
		t.Fatalf("expected %d query parameters, got %d: %v", len(expected), len(query), query)
	}
}

func TestSimulate_DecodesOutputs(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(simulationBody))
	})

	outputs, err := c.Simulate(context.Background(), 40, -105)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(outputs.AC) != 3 || outputs.AC[1] != 2.0 {
		t.Fatalf("unexpected ac series: %v", outputs.AC)
	}
	if outputs.ACAnnual != 1745 || outputs.SolradAnnual != 4.56 || outputs.CapacityFactor != 19.9 {
		t.Fatalf("unexpected annual scalars: %+v", outputs)
	}
}

func TestSimulate_UpstreamStatusError(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.Simulate(context.Background(), 40, -105)
	if !apperr.Is(err, apperr.KindUpstream) {
		t.Fatalf("expected KindUpstream, got kind %d (%v)", apperr.GetKind(err), err)
	}
}

func TestSimulate_MalformedBody(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	})

	_, err := c.Simulate(context.Background(), 40, -105)
	if !apperr.Is(err, apperr.KindMalformed) {
		t.Fatalf("expected KindMalformed, got kind %d (%v)", apperr.GetKind(err), err)
	}
}

func TestSimulate_MissingOutputs(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"version":"8.0.0"}`))
	})

	_, err := c.Simulate(context.Background(), 40, -105)
	if !apperr.Is(err, apperr.KindMalformed) {
		t.Fatalf("expected KindMalformed, got kind %d (%v)", apperr.GetKind(err), err)
	}
}

func TestSimulate_UpstreamReportedErrors(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"errors":["You have exceeded your rate limit."]}`))
	})

	_, err := c.Simulate(context.Background(), 40, -105)
	if !apperr.Is(err, apperr.KindUpstream) {
		t.Fatalf("expected KindUpstream, got kind %d (%v)", apperr.GetKind(err), err)
	}
}

func TestSimulateRaw_RelaysBodyVerbatim(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(simulationBody))
	})

	body, err := c.SimulateRaw(context.Background(), 40, -105)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(body) != simulationBody {
		t.Fatalf("body was not relayed verbatim: %s", body)
	}
}
