package query

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/couchcryptid/weather-lookup/internal/domain"
)

// Client-visible failure messages produced by the client itself.
const (
	MessageEmptyCity  = "Please enter a city name"
	MessageUnexpected = "An unexpected error occurred"
)

// ErrBusy is returned by TrySubmit while a lookup is already in flight.
var ErrBusy = errors.New("a weather lookup is already in progress")

// Lookup resolves a trimmed, non-empty city to a weather result. Errors that
// carry a client-visible message should be a *LookupError.
type Lookup interface {
	Lookup(ctx context.Context, city string) (domain.WeatherResult, error)
}

// LookupFunc adapts a function to the Lookup interface.
type LookupFunc func(ctx context.Context, city string) (domain.WeatherResult, error)

// Lookup calls f.
func (f LookupFunc) Lookup(ctx context.Context, city string) (domain.WeatherResult, error) {
	return f(ctx, city)
}

// LookupError is a lookup failure whose Message may be shown to the user.
type LookupError struct {
	Message string
}

func (e *LookupError) Error() string { return e.Message }

// Client owns the Idle -> Loading -> Success|Failure state machine. The live
// and mock variants differ only in the Lookup they are built with.
type Client struct {
	lookup    Lookup
	logger    *slog.Logger
	observers []func(State)

	mu    sync.Mutex
	state State
}

// Option configures a Client.
type Option func(*Client)

// WithObserver registers fn to be called after every state transition.
// Observers run on the submitting goroutine, outside the client lock.
func WithObserver(fn func(State)) Option {
	return func(c *Client) { c.observers = append(c.observers, fn) }
}

// WithLogger sets the logger used for lookup failures.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// NewClient creates a Client in the Idle state.
func NewClient(lookup Lookup, opts ...Option) *Client {
	c := &Client{
		lookup: lookup,
		logger: slog.Default(),
		state:  Idle{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current state.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Submit runs one submission cycle and returns the resulting state. A
// submission made while another is loading is ignored.
func (c *Client) Submit(ctx context.Context, city string) State {
	s, _ := c.TrySubmit(ctx, city)
	return s
}

// TrySubmit is Submit but reports ErrBusy when the submission was ignored
// because a lookup is in flight.
func (c *Client) TrySubmit(ctx context.Context, city string) (State, error) {
	city = domain.NormalizeCity(city)

	c.mu.Lock()
	if current, busy := c.state.(Loading); busy {
		c.mu.Unlock()
		return current, ErrBusy
	}
	var next State = Loading{City: city}
	if city == "" {
		next = Failure{Message: MessageEmptyCity}
	}
	c.state = next
	c.mu.Unlock()
	c.notify(next)

	if city == "" {
		return next, nil
	}

	result, err := c.lookup.Lookup(ctx, city)
	if err != nil {
		next = Failure{Message: c.failureMessage(city, err)}
	} else {
		next = Success{Result: result}
	}
	c.transition(next)
	return next, nil
}

func (c *Client) transition(next State) {
	c.mu.Lock()
	c.state = next
	c.mu.Unlock()
	c.notify(next)
}

func (c *Client) notify(s State) {
	for _, fn := range c.observers {
		fn(s)
	}
}

func (c *Client) failureMessage(city string, err error) string {
	var lookupErr *LookupError
	if errors.As(err, &lookupErr) && lookupErr.Message != "" {
		return lookupErr.Message
	}
	c.logger.Warn("weather lookup failed", "city", city, "error", err)
	return MessageUnexpected
}
