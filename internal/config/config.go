package config

import (
	"errors"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds the gateway settings, populated from environment variables.
type Config struct {
	Port            string
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	CORSAllowedOrigin string

	// OpenWeatherMap upstream configuration. An empty key is allowed at
	// startup; lookups then fail as misconfigured.
	OpenWeatherAPIKey  string
	OpenWeatherBaseURL string
	OpenWeatherTimeout time.Duration

	// Lookup event stream. Disabled when KAFKA_BROKERS is unset.
	KafkaBrokers     []string
	KafkaLookupTopic string
	EventsEnabled    bool
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	port := sharedcfg.EnvOrDefault("PORT", "5000")
	if n, err := strconv.Atoi(port); err != nil || n <= 0 || n > 65535 {
		return nil, errors.New("invalid PORT")
	}

	upstreamTimeout, err := parseDuration("OPENWEATHER_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}

	baseURL := strings.TrimRight(sharedcfg.EnvOrDefault("OPENWEATHER_BASE_URL", "https://api.openweathermap.org"), "/")
	if u, err := url.Parse(baseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return nil, errors.New("invalid OPENWEATHER_BASE_URL")
	}

	var brokers []string
	if raw := strings.TrimSpace(os.Getenv("KAFKA_BROKERS")); raw != "" {
		brokers = sharedcfg.ParseBrokers(raw)
	}

	cfg := &Config{
		Port:              port,
		HTTPAddr:          ":" + port,
		LogLevel:          sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:         sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:   shutdownTimeout,
		CORSAllowedOrigin: sharedcfg.EnvOrDefault("CORS_ALLOWED_ORIGIN", "*"),

		OpenWeatherAPIKey:  strings.TrimSpace(os.Getenv("OPENWEATHER_API_KEY")),
		OpenWeatherBaseURL: baseURL,
		OpenWeatherTimeout: upstreamTimeout,

		KafkaBrokers:     brokers,
		KafkaLookupTopic: sharedcfg.EnvOrDefault("KAFKA_LOOKUP_TOPIC", "weather-lookups"),
		EventsEnabled:    len(brokers) > 0,
	}

	if cfg.EventsEnabled && cfg.KafkaLookupTopic == "" {
		return nil, errors.New("KAFKA_LOOKUP_TOPIC is required when KAFKA_BROKERS is set")
	}

	return cfg, nil
}

// UpstreamEnabled reports whether an OpenWeatherMap key is configured.
func (c *Config) UpstreamEnabled() bool {
	return c.OpenWeatherAPIKey != ""
}

func parseDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, errors.New("invalid " + key)
	}
	return d, nil
}
