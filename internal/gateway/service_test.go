package gateway_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/couchcryptid/weather-lookup/internal/domain"
	"github.com/couchcryptid/weather-lookup/internal/gateway"
	"github.com/couchcryptid/weather-lookup/internal/observability"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type fakeProvider struct {
	mu     sync.Mutex
	calls  []string
	result domain.WeatherResult
	err    error
}

func (f *fakeProvider) CurrentWeather(_ context.Context, city string) (domain.WeatherResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, city)
	return f.result, f.err
}

type fakeRecorder struct {
	events []domain.LookupEvent
	err    error
}

func (f *fakeRecorder) Record(_ context.Context, event domain.LookupEvent) error {
	f.events = append(f.events, event)
	return f.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

var london = domain.WeatherResult{City: "London", Temperature: 15, Description: "partly cloudy", Icon: "02d"}

// --- tests ---

func TestService_GetWeather_Success(t *testing.T) {
	provider := &fakeProvider{result: london}
	recorder := &fakeRecorder{}
	metrics := observability.NewMetricsForTesting()
	svc := gateway.New(provider, recorder, discardLogger(), metrics)

	result, err := svc.GetWeather(context.Background(), "  london ")
	require.NoError(t, err)

	assert.Equal(t, london, result)
	assert.Equal(t, []string{"london"}, provider.calls, "city is trimmed before the upstream call")
	assert.InDelta(t, 1, counterValue(t, metrics.LookupRequests.WithLabelValues(domain.OutcomeSuccess)), 0)

	require.Len(t, recorder.events, 1)
	want := domain.LookupEvent{City: "london", Outcome: domain.OutcomeSuccess, Status: 200, Icon: "02d"}
	diff := cmp.Diff(want, recorder.events[0],
		cmpopts.IgnoreFields(domain.LookupEvent{}, "ID", "Temp", "Duration", "OccurredAt"))
	assert.Empty(t, diff)
	assert.InDelta(t, 1, counterValue(t, metrics.EventsPublished.WithLabelValues("ok")), 0)
}

func TestService_GetWeather_MissingCity(t *testing.T) {
	for _, city := range []string{"", "   ", "\t\n"} {
		t.Run(fmt.Sprintf("%q", city), func(t *testing.T) {
			provider := &fakeProvider{result: london}
			svc := gateway.New(provider, nil, discardLogger(), observability.NewMetricsForTesting())

			_, err := svc.GetWeather(context.Background(), city)
			require.ErrorIs(t, err, domain.ErrMissingParameter)
			assert.Empty(t, provider.calls)
		})
	}
}

func TestService_GetWeather_Misconfigured(t *testing.T) {
	metrics := observability.NewMetricsForTesting()
	recorder := &fakeRecorder{}
	svc := gateway.New(nil, recorder, discardLogger(), metrics)

	for _, city := range []string{"London", "Atlantis", "x"} {
		_, err := svc.GetWeather(context.Background(), city)
		require.ErrorIs(t, err, domain.ErrMisconfigured)
		assert.Equal(t, 500, domain.StatusFor(err))
	}
	assert.InDelta(t, 3, counterValue(t, metrics.LookupRequests.WithLabelValues(domain.OutcomeMisconfigured)), 0)
	require.Len(t, recorder.events, 3)
	assert.Equal(t, domain.OutcomeMisconfigured, recorder.events[0].Outcome)
}

func TestService_GetWeather_MissingCityBeatsMisconfigured(t *testing.T) {
	svc := gateway.New(nil, nil, discardLogger(), observability.NewMetricsForTesting())

	_, err := svc.GetWeather(context.Background(), " ")
	require.ErrorIs(t, err, domain.ErrMissingParameter)
}

func TestService_GetWeather_UpstreamErrorsPassThrough(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		outcome string
	}{
		{"not found", fmt.Errorf("openweather %q: %w", "Atlantis", domain.ErrCityNotFound), domain.OutcomeNotFound},
		{"unauthorized", domain.ErrUnauthorized, domain.OutcomeUnauthorized},
		{"upstream", fmt.Errorf("%w: status 503", domain.ErrUpstream), domain.OutcomeUpstreamError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &fakeProvider{err: tt.err}
			metrics := observability.NewMetricsForTesting()
			svc := gateway.New(provider, nil, discardLogger(), metrics)

			_, err := svc.GetWeather(context.Background(), "Atlantis")
			require.ErrorIs(t, err, tt.err)
			assert.Len(t, provider.calls, 1, "no retries")
			assert.InDelta(t, 1, counterValue(t, metrics.LookupRequests.WithLabelValues(tt.outcome)), 0)
		})
	}
}

func TestService_GetWeather_RecorderFailureDoesNotFailLookup(t *testing.T) {
	provider := &fakeProvider{result: london}
	recorder := &fakeRecorder{err: errors.New("broker unavailable")}
	metrics := observability.NewMetricsForTesting()
	svc := gateway.New(provider, recorder, discardLogger(), metrics)

	result, err := svc.GetWeather(context.Background(), "London")
	require.NoError(t, err)
	assert.Equal(t, london, result)
	assert.InDelta(t, 1, counterValue(t, metrics.EventsPublished.WithLabelValues("error")), 0)
}

func TestService_CheckReadiness(t *testing.T) {
	ready := gateway.New(&fakeProvider{}, nil, discardLogger(), observability.NewMetricsForTesting())
	require.NoError(t, ready.CheckReadiness(context.Background()))

	notReady := gateway.New(nil, nil, discardLogger(), observability.NewMetricsForTesting())
	require.ErrorIs(t, notReady.CheckReadiness(context.Background()), domain.ErrMisconfigured)
}
