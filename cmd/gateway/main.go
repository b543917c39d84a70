package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/weather-lookup/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/weather-lookup/internal/adapter/kafka"
	"github.com/couchcryptid/weather-lookup/internal/adapter/openweather"
	"github.com/couchcryptid/weather-lookup/internal/config"
	"github.com/couchcryptid/weather-lookup/internal/domain"
	"github.com/couchcryptid/weather-lookup/internal/gateway"
	"github.com/couchcryptid/weather-lookup/internal/observability"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	// Without a key the gateway still serves; lookups fail as misconfigured.
	var provider domain.WeatherProvider
	if cfg.UpstreamEnabled() {
		provider = openweather.NewClient(cfg.OpenWeatherAPIKey, cfg.OpenWeatherBaseURL, cfg.OpenWeatherTimeout, metrics, logger)
		metrics.UpstreamEnabled.Set(1)
		logger.Info("openweather upstream enabled", "base_url", cfg.OpenWeatherBaseURL, "timeout", cfg.OpenWeatherTimeout)
	} else {
		logger.Warn("OPENWEATHER_API_KEY not set, weather lookups will fail")
	}

	var (
		recorder gateway.EventRecorder
		writer   *kafkaadapter.Writer
	)
	if cfg.EventsEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		recorder = writer
		logger.Info("lookup events enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaLookupTopic)
	}

	svc := gateway.New(provider, recorder, logger, metrics)
	srv := httpadapter.NewServer(cfg.HTTPAddr, svc, svc, cfg.CORSAllowedOrigin, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("weather gateway listening", "addr", cfg.HTTPAddr)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
