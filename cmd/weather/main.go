// Command weather looks up current conditions for one or more cities and
// prints each state the query client passes through.
//
// Usage:
//
//	go run ./cmd/weather London Tokyo
//	go run ./cmd/weather -mock
//	go run ./cmd/weather -base-url http://localhost:5000
//
// With no city arguments, cities are read one per line from stdin.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/weather-lookup/internal/config"
	"github.com/couchcryptid/weather-lookup/internal/observability"
	"github.com/couchcryptid/weather-lookup/internal/query"
	"github.com/couchcryptid/weather-lookup/internal/render"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	cfg, err := config.LoadClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	mock := flag.Bool("mock", cfg.Mock, "use built-in sample data instead of the gateway")
	baseURL := flag.String("base-url", cfg.BaseURL, "weather gateway base URL")
	delay := flag.Duration("delay", cfg.MockDelay, "simulated latency for -mock")
	flag.Parse()

	logger := observability.NewLogger(cfg.LogLevel, "text")

	var (
		lookup query.Lookup
		r      render.Renderer
	)
	if *mock {
		m := query.NewMockLookup(*delay, nil)
		lookup = m
		r.Hint = m.Hint()
	} else {
		lookup = query.NewHTTPLookup(*baseURL, cfg.Timeout)
	}

	out := os.Stdout
	client := query.NewClient(lookup,
		query.WithLogger(logger),
		query.WithObserver(func(s query.State) {
			fmt.Fprintln(out, r.Render(s))
			fmt.Fprintln(out)
		}),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cities := flag.Args(); len(cities) > 0 {
		for _, city := range cities {
			client.Submit(ctx, city)
		}
		return
	}

	fmt.Fprintln(out, r.Render(client.State()))
	fmt.Fprintln(out)
	if err := prompt(ctx, client, os.Stdin, out); err != nil {
		fmt.Fprintf(os.Stderr, "read input: %v\n", err)
		os.Exit(1)
	}
}

// prompt submits each input line until EOF or cancellation. Blank lines
// are submitted as well and render the validation failure.
func prompt(ctx context.Context, client *query.Client, in io.Reader, out io.Writer) error {
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "city> ")
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}
		client.Submit(ctx, sc.Text())
		if ctx.Err() != nil {
			return nil
		}
	}
}
