// Package api wires the HTTP routes of the station API.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/aquasentinel/aquasentinel/internal/api/handler"
	"github.com/aquasentinel/aquasentinel/internal/api/middleware"
	"github.com/aquasentinel/aquasentinel/internal/api/response"
	"github.com/aquasentinel/aquasentinel/internal/featureflags"
	"github.com/aquasentinel/aquasentinel/internal/fleet"
	"github.com/aquasentinel/aquasentinel/internal/provider/resilience"
	"github.com/aquasentinel/aquasentinel/internal/query"
	"github.com/aquasentinel/aquasentinel/internal/worker"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version     string
	BuildTime   string
	Logger      zerolog.Logger
	ServiceName string
	Metrics     *middleware.Metrics

	Fleet              *fleet.Fleet
	Query              *query.Service
	Scheduler          worker.Controller
	Digest             handler.DigestSource
	FeatureFlagService *featureflags.Service
	Providers          *resilience.Registry
	Clock              clockwork.Clock

	// Gatherer backs /metrics. Nil uses the default Prometheus registry.
	Gatherer prometheus.Gatherer

	// AdminToken guards simulation control and flag management when set.
	AdminToken string
	RequireTLS bool

	// StaleAfter is passed to the ops status check.
	StaleAfter time.Duration
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "aquasentinel-api"
	}
	gatherer := cfg.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)
	r.Use(middleware.Tracing(serviceName))
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware())
	}
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.RequireTLS(cfg.RequireTLS))
	r.Use(middleware.ContentTypeJSON)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		response.NotFound(w, req, "no route for "+req.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		response.Error(w, req, methodNotAllowed(req))
	})

	var registry = cfg.Fleet.Registry()

	opsHandler := handler.NewOpsHandler(handler.OpsConfig{
		Version:    cfg.Version,
		BuildTime:  cfg.BuildTime,
		Fleet:      cfg.Fleet,
		Scheduler:  cfg.Scheduler,
		Providers:  cfg.Providers,
		Clock:      cfg.Clock,
		StaleAfter: cfg.StaleAfter,
	})
	stationHandler := handler.NewStationHandler(cfg.Query)
	readingHandler := handler.NewReadingHandler(cfg.Query)
	statisticsHandler := handler.NewStatisticsHandler(cfg.Query, cfg.Digest)
	simulationHandler := handler.NewSimulationHandler(cfg.Scheduler)
	metadataHandler := handler.NewMetadataHandler(registry)
	featureFlagsHandler := handler.NewFeatureFlagsHandler(cfg.FeatureFlagService, cfg.Logger)

	adminAuth := middleware.AdminToken(cfg.AdminToken)
	controlRateLimit := middleware.RateLimitByIP(middleware.ControlRateLimit)
	listingRateLimit := middleware.RateLimitByIP(middleware.ListingRateLimit)
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit)

	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Route("/v1", func(r chi.Router) {
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
			r.Get("/status", opsHandler.SystemStatus)
		})

		r.With(standardRateLimit).Get("/metadata/enums", metadataHandler.GetEnums)

		r.Route("/stations", func(r chi.Router) {
			r.With(listingRateLimit).Get("/", stationHandler.ListStations)
			r.With(listingRateLimit).Get("/nearby", stationHandler.Nearby)
			r.Group(func(r chi.Router) {
				r.Use(listingRateLimit)
				r.Get("/status/{status}", stationHandler.ByStatus)
				r.Get("/class/{class}", stationHandler.ByWaterClass)
				r.Get("/type/{type}", stationHandler.ByType)
				r.Get("/region/{region}", stationHandler.ByRegion)
			})
			r.Route("/{stationId}", func(r chi.Router) {
				r.Use(standardRateLimit)
				r.Get("/", stationHandler.GetStation)
				r.Get("/reading", stationHandler.GetCurrentReading)
				r.Get("/history", stationHandler.GetHistory)
			})
		})

		r.Route("/readings", func(r chi.Router) {
			r.Use(listingRateLimit)
			r.Get("/", readingHandler.ListCurrentReadings)
			r.Get("/alerts", readingHandler.StationsWithAlerts)
			r.Get("/estimate", readingHandler.Estimate)
		})

		r.Route("/statistics", func(r chi.Router) {
			r.Use(listingRateLimit)
			r.Get("/summary", statisticsHandler.Summary)
			r.Get("/parameters/{parameter}", statisticsHandler.Parameter)
			r.Get("/worst", statisticsHandler.Worst)
			r.Get("/digest", statisticsHandler.Digest)
		})

		r.Route("/simulation", func(r chi.Router) {
			r.Get("/", simulationHandler.Status)
			r.Group(func(r chi.Router) {
				r.Use(adminAuth)
				r.Use(controlRateLimit)
				r.Use(middleware.RequireJSON)
				r.Post("/start", simulationHandler.Start)
				r.Post("/stop", simulationHandler.Stop)
				r.Post("/refresh", simulationHandler.Refresh)
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(adminAuth)
			r.Use(controlRateLimit)
			r.Use(middleware.RequireJSON)

			r.Route("/feature-flags", func(r chi.Router) {
				r.Get("/", featureFlagsHandler.ListFeatureFlags)
				r.Put("/", featureFlagsHandler.UpsertFeatureFlags)
				r.Post("/invalidate", featureFlagsHandler.InvalidateCache)
				r.Delete("/{key}", featureFlagsHandler.ResetFeatureFlag)
			})
		})
	})

	return r
}
