package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"solarestimate_backend/internal/geocode"
	apphttp "solarestimate_backend/internal/http"
	"solarestimate_backend/internal/yield"
	"solarestimate_backend/internal/yield/handler"
	"solarestimate_backend/internal/yield/transport"
	"solarestimate_backend/platform/config"
	"solarestimate_backend/platform/httpkit"
	"solarestimate_backend/platform/logger"
	"solarestimate_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const geocodeBody = `{"status":true,"result":[{"latitude":"51.501","longitude":"-0.1416"}]}`

const simulationBody = `{"outputs":{"ac":[2.0,2.0,2.0,2.0,2.0,2.0,2.0,2.0,2.0,2.0,2.0,2.0,2.0,2.0,2.0,2.0,2.0,2.0,2.0,2.0,2.0,2.0,2.0,2.0],` +
	`"ac_monthly":[100,110,140,160,180,190,200,185,150,130,105,95],` +
	`"poa_monthly":[90,100,130,150,170,180,190,175,140,120,95,85],` +
	`"solrad_monthly":[2.9,3.6,4.5,5.2,5.8,6.1,6.3,5.9,4.9,3.9,3.0,2.6],` +
	`"dc_monthly":[105,115,145,165,185,195,205,190,155,135,110,100],` +
	`"ac_annual":1745,"solrad_annual":4.56,"capacity_factor":19.9}}`

type fixture struct {
	engine        *gin.Engine
	pvwattsCalls  *int64
	geocodeServer *httptest.Server
	pvwattsServer *httptest.Server
}

func newFixture(t *testing.T, geocodeHandler, pvwattsHandler http.HandlerFunc) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var pvwattsCalls int64
	pvwattsServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&pvwattsCalls, 1)
		pvwattsHandler(w, r)
	}))
	t.Cleanup(pvwattsServer.Close)

	geocodeServer := httptest.NewServer(geocodeHandler)
	t.Cleanup(geocodeServer.Close)

	cfg := &config.Config{
		Env:            "test",
		NRELAPIKey:     "test-key",
		PVWattsBaseURL: pvwattsServer.URL,
		PVWattsTimeout: 5 * time.Second,
		GeocodeBaseURL: geocodeServer.URL,
		GeocodeTimeout: 5 * time.Second,
	}
	log := logger.New("test")
	val := validator.New()

	geocodeModule := geocode.NewModule(cfg, log)
	yieldModule := yield.NewModule(cfg, geocodeModule.Service(), val, log)

	engine := gin.New()
	ctx := &apphttp.RouterContext{
		Engine: engine,
		V1:     engine.Group("/api/v1"),
	}
	yieldModule.RegisterRoutes(ctx)

	return &fixture{
		engine:        engine,
		pvwattsCalls:  &pvwattsCalls,
		geocodeServer: geocodeServer,
		pvwattsServer: pvwattsServer,
	}
}

func (f *fixture) post(t *testing.T, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.engine.ServeHTTP(rec, req)
	return rec
}

func okGeocode(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte(geocodeBody))
}

func okPVWatts(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte(simulationBody))
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var payload httpkit.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	return payload.Error
}

func TestEstimate_HappyPath(t *testing.T) {
	f := newFixture(t, okGeocode, okPVWatts)

	rec := f.post(t, "/api/v1/solar/estimate", `{"postalCode":"SW1A 1AA","countryCode":"GB","capacityKW":1000}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var bundle transport.YieldBundle
	if err := json.Unmarshal(rec.Body.Bytes(), &bundle); err != nil {
		t.Fatalf("failed to decode bundle: %v", err)
	}
	if bundle.Coordinates.Latitude != 51.501 || bundle.Coordinates.Longitude != -0.1416 {
		t.Fatalf("unexpected coordinates: %+v", bundle.Coordinates)
	}
	if len(bundle.Hourly) != 24 || bundle.Hourly[0] != 2.0 {
		t.Fatalf("unexpected hourly series: len=%d first=%v", len(bundle.Hourly), bundle.Hourly)
	}
	if len(bundle.DailyAverages) != 1 || bundle.DailyAverages[0].AverageKW != 2.0 {
		t.Fatalf("unexpected daily averages: %+v", bundle.DailyAverages)
	}
	if bundle.Annual.ACAnnual != 1745 {
		t.Fatalf("expected ac_annual 1745 at baseline capacity, got %v", bundle.Annual.ACAnnual)
	}
	if bundle.Monthly.Solrad[0] != 2.9 {
		t.Fatalf("expected solrad passthrough, got %v", bundle.Monthly.Solrad[0])
	}
}

func TestEstimate_UnresolvablePostcodeSkipsSimulation(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":false,"message":"no results found","result":[]}`))
	}, okPVWatts)

	rec := f.post(t, "/api/v1/solar/estimate", `{"postalCode":"00000","countryCode":"GB","capacityKW":5}`)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if msg := decodeError(t, rec); msg != handler.GenericFetchMessage {
		t.Fatalf("expected generic message, got %q", msg)
	}
	if calls := atomic.LoadInt64(f.pvwattsCalls); calls != 0 {
		t.Fatalf("simulation must not be called when resolution fails, got %d calls", calls)
	}
}

func TestEstimate_UpstreamFailureReturnsGenericMessage(t *testing.T) {
	f := newFixture(t, okGeocode, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	rec := f.post(t, "/api/v1/solar/estimate", `{"postalCode":"SW1A 1AA","countryCode":"GB","capacityKW":5}`)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	if msg := decodeError(t, rec); msg != handler.GenericFetchMessage {
		t.Fatalf("expected generic message, got %q", msg)
	}
}

func TestEstimate_RejectsNonPositiveCapacity(t *testing.T) {
	f := newFixture(t, okGeocode, okPVWatts)

	for _, body := range []string{
		`{"postalCode":"SW1A 1AA","countryCode":"GB","capacityKW":0}`,
		`{"postalCode":"SW1A 1AA","countryCode":"GB","capacityKW":-3}`,
		`{"postalCode":"SW1A 1AA","countryCode":"GB"}`,
	} {
		rec := f.post(t, "/api/v1/solar/estimate", body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, rec.Code)
		}
	}

	if calls := atomic.LoadInt64(f.pvwattsCalls); calls != 0 {
		t.Fatalf("simulation must not be called for invalid requests, got %d calls", calls)
	}
}

func TestProxy_RelaysUpstreamBodyVerbatim(t *testing.T) {
	f := newFixture(t, okGeocode, okPVWatts)

	rec := f.post(t, "/api/v1/solar/pvwatts", `{"lat":51.501,"long":-0.1416}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != simulationBody {
		t.Fatalf("body was not relayed verbatim: %s", rec.Body.String())
	}
}

func TestProxy_UpstreamFailureReturnsGenericError(t *testing.T) {
	f := newFixture(t, okGeocode, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	rec := f.post(t, "/api/v1/solar/pvwatts", `{"lat":51.501,"long":-0.1416}`)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if msg := decodeError(t, rec); msg != "failed to fetch solar data" {
		t.Fatalf("expected generic proxy error, got %q", msg)
	}
}

func TestProxy_RequiresCoordinates(t *testing.T) {
	f := newFixture(t, okGeocode, okPVWatts)

	rec := f.post(t, "/api/v1/solar/pvwatts", `{"lat":51.501}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
