package gateway

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/couchcryptid/weather-lookup/internal/domain"
	"github.com/couchcryptid/weather-lookup/internal/observability"
)

// EventRecorder publishes lookup events.
type EventRecorder interface {
	Record(ctx context.Context, event domain.LookupEvent) error
}

// Service is the lookup gateway: it validates a city, calls the upstream
// provider and classifies failures into the domain sentinel errors.
type Service struct {
	provider domain.WeatherProvider
	recorder EventRecorder
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// New creates a Service. A nil provider means no upstream credential is
// configured; a nil recorder disables lookup events.
func New(provider domain.WeatherProvider, recorder EventRecorder, logger *slog.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		provider: provider,
		recorder: recorder,
		logger:   logger,
		metrics:  metrics,
	}
}

// GetWeather returns the normalized weather for city. Errors wrap one of
// domain.ErrMissingParameter, domain.ErrMisconfigured, domain.ErrCityNotFound
// or domain.ErrUpstream.
func (s *Service) GetWeather(ctx context.Context, city string) (domain.WeatherResult, error) {
	start := time.Now()
	city = domain.NormalizeCity(city)

	result, err := s.lookup(ctx, city)
	s.observe(ctx, city, result, err, time.Since(start))
	return result, err
}

// CheckReadiness reports an error while no upstream credential is configured.
func (s *Service) CheckReadiness(_ context.Context) error {
	if s.provider == nil {
		return domain.ErrMisconfigured
	}
	return nil
}

func (s *Service) lookup(ctx context.Context, city string) (domain.WeatherResult, error) {
	if city == "" {
		return domain.WeatherResult{}, domain.ErrMissingParameter
	}
	if s.provider == nil {
		return domain.WeatherResult{}, domain.ErrMisconfigured
	}
	return s.provider.CurrentWeather(ctx, city)
}

func (s *Service) observe(ctx context.Context, city string, result domain.WeatherResult, err error, took time.Duration) {
	outcome := domain.Outcome(err)
	s.metrics.LookupRequests.WithLabelValues(outcome).Inc()
	s.metrics.LookupDuration.Observe(took.Seconds())

	switch {
	case err == nil:
		s.logger.Info("weather lookup", "city", city, "resolved", result.City, "duration", took)
	case errors.Is(err, domain.ErrMissingParameter), errors.Is(err, domain.ErrCityNotFound):
		s.logger.Info("weather lookup rejected", "city", city, "outcome", outcome)
	default:
		s.logger.Error("weather lookup failed", "city", city, "outcome", outcome, "error", err)
	}

	if s.recorder == nil {
		return
	}
	if err := s.recorder.Record(ctx, domain.NewLookupEvent(city, result, err, took)); err != nil {
		s.metrics.EventsPublished.WithLabelValues("error").Inc()
		s.logger.Warn("record lookup event failed", "city", city, "error", err)
		return
	}
	s.metrics.EventsPublished.WithLabelValues("ok").Inc()
}
