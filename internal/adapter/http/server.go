package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/agri-advisor-service/internal/domain"
	"github.com/couchcryptid/agri-advisor-service/internal/observability"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Advisor is the application surface served over HTTP.
type Advisor interface {
	RecommendCrop(ctx context.Context, q domain.CropQuery) (domain.CropRecommendation, error)
	PredictYield(ctx context.Context, q domain.YieldQuery) (domain.YieldPrediction, error)
	Weather(ctx context.Context, city string) (domain.WeatherReport, error)
	YieldOptions() (states, crops []string)
	CheckReadiness(ctx context.Context) error
}

// Options configures the router.
type Options struct {
	AllowedOrigins []string
}

// Server exposes the advisory API plus health, readiness, metrics, and API docs.
type Server struct {
	httpServer *http.Server
	advisor    Advisor
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewServer creates an HTTP server with the API, /healthz, /readyz, /metrics,
// and /swagger routes.
func NewServer(addr string, advisor Advisor, opts Options, logger *slog.Logger, metrics *observability.Metrics) *Server {
	s := &Server{
		advisor: advisor,
		logger:  logger,
		metrics: metrics,
	}
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.routes(opts),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) routes(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		sharedobs.WriteJSON(w, http.StatusNotFound, errorResp{Error: "not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		sharedobs.WriteJSON(w, http.StatusMethodNotAllowed, errorResp{Error: "method not allowed"})
	})

	r.Get("/healthz", sharedobs.LivenessHandler())
	r.Get("/readyz", sharedobs.ReadinessHandler(s.advisor))
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/api/openapi.yaml", handleOpenAPI)
	r.Mount("/swagger", httpSwagger.Handler(
		httpSwagger.URL("/api/openapi.yaml"),
	))

	r.Route("/api", func(api chi.Router) {
		api.Use(s.instrument)
		api.Post("/recommend-crop", s.handleRecommendCrop)
		api.Post("/predict-yield", s.handlePredictYield)
		api.Post("/weather", s.handleWeather)
		api.Get("/yield-options", s.handleYieldOptions)
	})

	return r
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
