package query

import (
	"context"
	"strings"
	"time"

	"github.com/couchcryptid/weather-lookup/internal/domain"
	"github.com/jonboulle/clockwork"
)

// DefaultMockDelay simulates network latency for the mock lookup.
const DefaultMockDelay = time.Second

// mockCities is the fixed demo table, in display order.
var mockCities = []domain.WeatherResult{
	{City: "London", Temperature: 15, Description: "partly cloudy", Icon: "02d"},
	{City: "New York", Temperature: 22, Description: "clear sky", Icon: "01d"},
	{City: "Tokyo", Temperature: 18, Description: "light rain", Icon: "10d"},
	{City: "Paris", Temperature: 12, Description: "overcast clouds", Icon: "04d"},
	{City: "Sydney", Temperature: 25, Description: "clear sky", Icon: "01d"},
}

// MockLookup answers from a static table after a simulated delay. Keys are
// lower-cased, trimmed city names.
type MockLookup struct {
	table map[string]domain.WeatherResult
	names []string
	delay time.Duration
	clock clockwork.Clock
}

// NewMockLookup creates a MockLookup over the demo table. A nil clock uses
// real time.
func NewMockLookup(delay time.Duration, clock clockwork.Clock) *MockLookup {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	m := &MockLookup{
		table: make(map[string]domain.WeatherResult, len(mockCities)),
		names: make([]string, 0, len(mockCities)),
		delay: delay,
		clock: clock,
	}
	for _, r := range mockCities {
		m.table[strings.ToLower(r.City)] = r
		m.names = append(m.names, r.City)
	}
	return m
}

// Lookup waits for the simulated delay, then resolves city against the table.
func (m *MockLookup) Lookup(ctx context.Context, city string) (domain.WeatherResult, error) {
	if m.delay > 0 {
		select {
		case <-ctx.Done():
			return domain.WeatherResult{}, ctx.Err()
		case <-m.clock.After(m.delay):
		}
	}

	r, ok := m.table[strings.ToLower(strings.TrimSpace(city))]
	if !ok {
		return domain.WeatherResult{}, &LookupError{Message: "City not found. Try: " + m.Hint()}
	}
	return r, nil
}

// KnownCities returns the display names of the table, in order.
func (m *MockLookup) KnownCities() []string {
	return append([]string(nil), m.names...)
}

// Hint lists the known cities as "A, B, or C".
func (m *MockLookup) Hint() string {
	return joinOr(m.names)
}

func joinOr(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " or " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + ", or " + items[len(items)-1]
	}
}
