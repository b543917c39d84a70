package openweather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/couchcryptid/weather-lookup/internal/domain"
	"github.com/couchcryptid/weather-lookup/internal/observability"
)

// DefaultBaseURL is the public OpenWeatherMap API host.
const DefaultBaseURL = "https://api.openweathermap.org"

// Client implements domain.WeatherProvider using the OpenWeatherMap current weather API.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates an OpenWeatherMap client.
func NewClient(apiKey, baseURL string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		metrics: metrics,
		logger:  logger,
	}
}

// CurrentWeather fetches and normalizes current conditions for a city.
func (c *Client) CurrentWeather(ctx context.Context, city string) (domain.WeatherResult, error) {
	params := url.Values{
		"q":     {city},
		"appid": {c.apiKey},
		"units": {"metric"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/data/2.5/weather?"+params.Encode(), nil)
	if err != nil {
		return domain.WeatherResult{}, fmt.Errorf("create request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.UpstreamDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.UpstreamRequests.WithLabelValues("error").Inc()
		return domain.WeatherResult{}, fmt.Errorf("%w: %w", domain.ErrUpstream, stripURL(err))
	}
	defer resp.Body.Close()

	c.metrics.UpstreamRequests.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return domain.WeatherResult{}, fmt.Errorf("openweather %q: %w", city, domain.ErrCityNotFound)
	case http.StatusUnauthorized:
		return domain.WeatherResult{}, domain.ErrUnauthorized
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.WeatherResult{}, fmt.Errorf("%w: status %d: %s", domain.ErrUpstream, resp.StatusCode, body)
	}

	var owmResp response
	if err := json.NewDecoder(resp.Body).Decode(&owmResp); err != nil {
		return domain.WeatherResult{}, fmt.Errorf("%w: decode response: %w", domain.ErrUpstream, err)
	}

	result, err := normalize(owmResp)
	if err != nil {
		return domain.WeatherResult{}, fmt.Errorf("%w: %w", domain.ErrUpstream, err)
	}
	c.logger.Debug("openweather lookup", "city", city, "resolved", result.City, "icon", result.Icon)
	return result, nil
}

// normalize reduces the upstream payload to the four public fields.
func normalize(r response) (domain.WeatherResult, error) {
	if r.Main.Temp == nil {
		return domain.WeatherResult{}, errors.New("payload missing main.temp")
	}
	if len(r.Weather) == 0 {
		return domain.WeatherResult{}, errors.New("payload missing weather conditions")
	}
	w := r.Weather[0]
	return domain.WeatherResult{
		City:        r.Name,
		Temperature: int(math.Round(*r.Main.Temp)),
		Description: w.Description,
		Icon:        w.Icon,
	}, nil
}

// stripURL drops the request URL from transport errors; it carries the API key.
func stripURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s: %w", urlErr.Op, urlErr.Err)
	}
	return err
}

// OpenWeatherMap API response types.

type response struct {
	Name    string      `json:"name"`
	Main    mainBlock   `json:"main"`
	Weather []condition `json:"weather"`
}

type mainBlock struct {
	Temp *float64 `json:"temp"`
}

type condition struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}
