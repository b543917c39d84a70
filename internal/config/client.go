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

// ClientConfig holds the query client settings.
type ClientConfig struct {
	BaseURL   string
	Mock      bool
	MockDelay time.Duration
	Timeout   time.Duration
	LogLevel  string
}

// LoadClient reads query client configuration from environment variables.
func LoadClient() (*ClientConfig, error) {
	baseURL := strings.TrimRight(sharedcfg.EnvOrDefault("WEATHER_API_BASE_URL", "http://localhost:5000"), "/")
	if u, err := url.Parse(baseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return nil, errors.New("invalid WEATHER_API_BASE_URL")
	}

	mock := false
	if v := os.Getenv("WEATHER_MOCK"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, errors.New("invalid WEATHER_MOCK")
		}
		mock = b
	}

	// Zero is a valid mock delay.
	mockDelay, err := time.ParseDuration(sharedcfg.EnvOrDefault("WEATHER_MOCK_DELAY", "1s"))
	if err != nil || mockDelay < 0 {
		return nil, errors.New("invalid WEATHER_MOCK_DELAY")
	}

	timeout, err := parseDuration("WEATHER_CLIENT_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	return &ClientConfig{
		BaseURL:   baseURL,
		Mock:      mock,
		MockDelay: mockDelay,
		Timeout:   timeout,
		LogLevel:  sharedcfg.EnvOrDefault("LOG_LEVEL", "warn"),
	}, nil
}
