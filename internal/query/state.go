package query

import "github.com/couchcryptid/weather-lookup/internal/domain"

// State is the query client's current state. Exactly one of Idle, Loading,
// Success or Failure is active; every transition replaces the whole value.
type State interface {
	isState()
}

// Idle is the initial state, before any submission.
type Idle struct{}

// Loading means one lookup is in flight for City.
type Loading struct {
	City string
}

// Success holds the result of the last lookup.
type Success struct {
	Result domain.WeatherResult
}

// Failure holds the client-visible message of the last failed submission.
type Failure struct {
	Message string
}

func (Idle) isState()    {}
func (Loading) isState() {}
func (Success) isState() {}
func (Failure) isState() {}
