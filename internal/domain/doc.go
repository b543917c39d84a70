// Package domain models current-weather lookups for a single city.
//
// # Data Source
//
// Observations come from the OpenWeatherMap current weather endpoint
// (https://openweathermap.org/current), queried by city name with
// units=metric so temperatures arrive in degrees Celsius.
//
// # Normalization
//
// The upstream payload is reduced to exactly four fields:
//
//	city         upstream "name" (display name, e.g. "London")
//	temperature  upstream "main.temp" rounded half away from zero
//	description  upstream "weather[0].description", e.g. "light rain"
//	icon         upstream "weather[0].icon", e.g. "10d"
//
// Only the first entry of the "weather" array is used. Nothing else from the
// upstream payload is forwarded to callers.
//
// # Icon Codes
//
// OpenWeatherMap icon codes are "<condition><d|n>", where the two-digit
// condition group is what matters for display. [ClassifyIcon] folds them into
// four categories:
//
//	01          clear
//	02, 03, 04  cloudy
//	09, 10      rain
//	13          snow
//	anything    cloudy (fallback, includes 11 thunderstorm and 50 mist)
//
// # Failures
//
// Every failure crossing the gateway boundary is one of the sentinel errors in
// errors.go. Provider details (status bodies, credentials) stay in logs and are
// never part of [PublicMessage].
package domain
