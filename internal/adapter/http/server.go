package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/couchcryptid/weather-lookup/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// WeatherService answers weather lookups for a city.
type WeatherService interface {
	GetWeather(ctx context.Context, city string) (domain.WeatherResult, error)
}

// Server exposes the weather lookup API plus health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	weather    WeatherService
	logger     *slog.Logger
}

type errorResponse struct {
	Error string `json:"error"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// NewServer creates an HTTP server with /weather, /health, /healthz, /readyz, and /metrics routes.
// allowedOrigin is echoed in Access-Control-Allow-Origin on every response.
func NewServer(addr string, weather WeatherService, ready sharedobs.ReadinessChecker, allowedOrigin string, logger *slog.Logger) *Server {
	r := chi.NewRouter()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      r,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		weather: weather,
		logger:  logger,
	}

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors(allowedOrigin))
	r.Use(requestLogger(logger))

	r.Get("/weather", s.handleWeather)
	r.Get("/health", handleHealth)
	r.Get("/healthz", sharedobs.LivenessHandler())
	r.Get("/readyz", sharedobs.ReadinessHandler(ready))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleWeather(w http.ResponseWriter, r *http.Request) {
	result, err := s.weather.GetWeather(r.Context(), r.URL.Query().Get("city"))
	if err != nil {
		writeJSON(w, domain.StatusFor(err), errorResponse{Error: domain.PublicMessage(err)})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "OK", Message: "Weather API is running"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // client may have gone away
}
