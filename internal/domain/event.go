package domain

import (
	"time"

	"github.com/google/uuid"
)

// LookupEvent records the outcome of one gateway lookup. Events are published
// for analytics and are never read back to serve requests.
type LookupEvent struct {
	ID         string        `json:"id"`
	City       string        `json:"city"`
	Outcome    string        `json:"outcome"`
	Status     int           `json:"status"`
	Temp       *int          `json:"temperature,omitempty"`
	Icon       string        `json:"icon,omitempty"`
	Duration   time.Duration `json:"duration_ns"`
	OccurredAt time.Time     `json:"occurred_at"`
}

// NewLookupEvent builds the event for a finished lookup. result is only
// consulted when err is nil.
func NewLookupEvent(city string, result WeatherResult, err error, took time.Duration) LookupEvent {
	event := LookupEvent{
		ID:         uuid.NewString(),
		City:       city,
		Outcome:    Outcome(err),
		Status:     StatusFor(err),
		Duration:   took,
		OccurredAt: clock.Now().UTC(),
	}
	if err == nil {
		temp := result.Temperature
		event.Temp = &temp
		event.Icon = result.Icon
	}
	return event
}
