package query

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/couchcryptid/weather-lookup/internal/domain"
)

// HTTPLookup calls the lookup gateway's GET /weather endpoint.
type HTTPLookup struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPLookup creates an HTTPLookup against baseURL, e.g. http://localhost:5000.
func NewHTTPLookup(baseURL string, timeout time.Duration) *HTTPLookup {
	return &HTTPLookup{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Lookup fetches weather for city. Gateway error responses become a
// *LookupError carrying the gateway's message.
func (h *HTTPLookup) Lookup(ctx context.Context, city string) (domain.WeatherResult, error) {
	u := h.baseURL + "/weather?" + url.Values{"city": {strings.TrimSpace(city)}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return domain.WeatherResult{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return domain.WeatherResult{}, fmt.Errorf("weather request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var body struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&body)
		if body.Error == "" {
			body.Error = domain.MessageGeneric
		}
		return domain.WeatherResult{}, &LookupError{Message: body.Error}
	}

	var result domain.WeatherResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return domain.WeatherResult{}, fmt.Errorf("decode weather response: %w", err)
	}
	return result, nil
}
