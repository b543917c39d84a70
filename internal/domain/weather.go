package domain

import (
	"context"
	"strings"
)

// WeatherResult is the normalized current-weather snapshot for one city.
type WeatherResult struct {
	City        string `json:"city"`
	Temperature int    `json:"temperature"` // degrees Celsius
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// WeatherProvider fetches current conditions for a city from an upstream source.
type WeatherProvider interface {
	CurrentWeather(ctx context.Context, city string) (WeatherResult, error)
}

// NormalizeCity strips surrounding whitespace from a city query.
func NormalizeCity(city string) string {
	return strings.TrimSpace(city)
}
