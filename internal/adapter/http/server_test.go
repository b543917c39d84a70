package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	httpadapter "github.com/couchcryptid/weather-lookup/internal/adapter/http"
	"github.com/couchcryptid/weather-lookup/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockReadiness struct {
	err error
}

func (m *mockReadiness) CheckReadiness(_ context.Context) error { return m.err }

type mockWeather struct {
	result domain.WeatherResult
	err    error
	cities []string
}

func (m *mockWeather) GetWeather(_ context.Context, city string) (domain.WeatherResult, error) {
	m.cities = append(m.cities, city)
	return m.result, m.err
}

func newTestServer(weather httpadapter.WeatherService, readyErr error) *httpadapter.Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return httpadapter.NewServer(":0", weather, &mockReadiness{err: readyErr}, "*", logger)
}

func get(t *testing.T, srv http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestWeatherReturns200(t *testing.T) {
	weather := &mockWeather{result: domain.WeatherResult{City: "London", Temperature: 15, Description: "partly cloudy", Icon: "02d"}}
	srv := newTestServer(weather, nil)

	rec := get(t, srv, "/weather?city=london")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"city":"London","temperature":15,"description":"partly cloudy","icon":"02d"}`, rec.Body.String())
	assert.Equal(t, []string{"london"}, weather.cities)
}

func TestWeatherPassesEscapedCity(t *testing.T) {
	weather := &mockWeather{result: domain.WeatherResult{City: "New York"}}
	srv := newTestServer(weather, nil)

	rec := get(t, srv, "/weather?city=New%20York")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"New York"}, weather.cities)
}

func TestWeatherErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"missing city", domain.ErrMissingParameter, http.StatusBadRequest, "City parameter is required"},
		{"not found", fmt.Errorf("openweather %q: %w", "Atlantis", domain.ErrCityNotFound), http.StatusNotFound, "City not found"},
		{"misconfigured", domain.ErrMisconfigured, http.StatusInternalServerError, "Failed to fetch weather data"},
		{"unauthorized", domain.ErrUnauthorized, http.StatusInternalServerError, "Failed to fetch weather data"},
		{"upstream", fmt.Errorf("%w: status 502: secret detail", domain.ErrUpstream), http.StatusInternalServerError, "Failed to fetch weather data"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(&mockWeather{err: tt.err}, nil)

			rec := get(t, srv, "/weather?city=Atlantis")

			assert.Equal(t, tt.status, rec.Code)
			body := decodeBody(t, rec)
			assert.Equal(t, tt.message, body["error"])
			assert.Len(t, body, 1, "only the error field is exposed")
		})
	}
}

func TestWeatherWithoutCityParameter(t *testing.T) {
	weather := &mockWeather{err: domain.ErrMissingParameter}
	srv := newTestServer(weather, nil)

	rec := get(t, srv, "/weather")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{""}, weather.cities)
}

func TestHealthReturns200(t *testing.T) {
	srv := newTestServer(&mockWeather{}, nil)

	rec := get(t, srv, "/health")

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "OK", body["status"])
	assert.Equal(t, "Weather API is running", body["message"])
}

func TestHealthzReturns200(t *testing.T) {
	srv := newTestServer(&mockWeather{}, nil)
	assert.Equal(t, http.StatusOK, get(t, srv, "/healthz").Code)
}

func TestReadyzReturns200WhenReady(t *testing.T) {
	srv := newTestServer(&mockWeather{}, nil)
	assert.Equal(t, http.StatusOK, get(t, srv, "/readyz").Code)
}

func TestReadyzReturns503WhenNotReady(t *testing.T) {
	srv := newTestServer(&mockWeather{}, domain.ErrMisconfigured)
	assert.Equal(t, http.StatusServiceUnavailable, get(t, srv, "/readyz").Code)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(&mockWeather{}, nil)

	rec := get(t, srv, "/metrics")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestCORSHeaders(t *testing.T) {
	srv := newTestServer(&mockWeather{}, nil)

	rec := get(t, srv, "/health")

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(&mockWeather{}, nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/weather", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodGet)
}

func TestCORSSpecificOrigin(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := httpadapter.NewServer(":0", &mockWeather{}, &mockReadiness{}, "http://localhost:5173", logger)

	rec := get(t, srv, "/health")

	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Origin", rec.Header().Get("Vary"))
}

func TestUnknownRouteReturns404(t *testing.T) {
	srv := newTestServer(&mockWeather{}, nil)

	rec := get(t, srv, "/unknown")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
