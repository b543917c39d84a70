package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrMissingParameter means the caller sent no usable city.
	ErrMissingParameter = errors.New("city parameter is required")

	// ErrMisconfigured means the gateway has no upstream credential.
	ErrMisconfigured = errors.New("weather API key not configured")

	// ErrCityNotFound means the upstream has no data for the city.
	ErrCityNotFound = errors.New("city not found")

	// ErrUpstream covers every other upstream failure: transport errors,
	// timeouts, unexpected statuses and malformed payloads.
	ErrUpstream = errors.New("upstream weather request failed")

	// ErrUnauthorized means the upstream rejected the credential. It is an
	// ErrUpstream for classification purposes.
	ErrUnauthorized = fmt.Errorf("%w: credential rejected", ErrUpstream)
)

// Client-visible messages.
const (
	MessageMissingCity = "City parameter is required"
	MessageNotFound    = "City not found"
	MessageGeneric     = "Failed to fetch weather data"
)

// Lookup outcomes, used as metric labels and event fields.
const (
	OutcomeSuccess       = "success"
	OutcomeInvalid       = "invalid"
	OutcomeMisconfigured = "misconfigured"
	OutcomeNotFound      = "not_found"
	OutcomeUnauthorized  = "unauthorized"
	OutcomeUpstreamError = "upstream_error"
)

// StatusFor maps a lookup error to the HTTP status returned to callers.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrMissingParameter):
		return http.StatusBadRequest
	case errors.Is(err, ErrCityNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the text a caller may see for err. Misconfiguration and
// all upstream failures collapse into one generic message.
func PublicMessage(err error) string {
	switch {
	case errors.Is(err, ErrMissingParameter):
		return MessageMissingCity
	case errors.Is(err, ErrCityNotFound):
		return MessageNotFound
	default:
		return MessageGeneric
	}
}

// Outcome classifies err for metrics and lookup events.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, ErrMissingParameter):
		return OutcomeInvalid
	case errors.Is(err, ErrMisconfigured):
		return OutcomeMisconfigured
	case errors.Is(err, ErrCityNotFound):
		return OutcomeNotFound
	case errors.Is(err, ErrUnauthorized):
		return OutcomeUnauthorized
	default:
		return OutcomeUpstreamError
	}
}
