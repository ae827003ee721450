// Package main provides the entrypoint for the AquaSentinel station simulator.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	kafkaadapter "github.com/aquasentinel/aquasentinel/internal/adapter/kafka"
	"github.com/aquasentinel/aquasentinel/internal/api"
	"github.com/aquasentinel/aquasentinel/internal/api/middleware"
	"github.com/aquasentinel/aquasentinel/internal/config"
	"github.com/aquasentinel/aquasentinel/internal/featureflags"
	"github.com/aquasentinel/aquasentinel/internal/fleet"
	"github.com/aquasentinel/aquasentinel/internal/observability"
	"github.com/aquasentinel/aquasentinel/internal/provider/resilience"
	"github.com/aquasentinel/aquasentinel/internal/query"
	"github.com/aquasentinel/aquasentinel/internal/station"
	"github.com/aquasentinel/aquasentinel/internal/telemetry"
	"github.com/aquasentinel/aquasentinel/internal/worker"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

const serviceName = "aquasentinel-api"

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("failed to load config")
	}

	zerolog.SetGlobalLevel(cfg.LogLevel)
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()
	if !cfg.IsProduction() {
		log = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	log.Info().
		Str("build_time", BuildTime).
		Str("env", cfg.Env).
		Msg("starting AquaSentinel")

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("service failed")
	}
	log.Info().Msg("service stopped")
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    cfg.Env,
		OTLPEndpoint:   cfg.OTelEndpoint,
		Enabled:        cfg.OTelEnabled,
		SampleRatio:    cfg.OTelSampleRatio,
	})
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("failed to shutdown telemetry")
		}
	}()
	if cfg.OTelEnabled {
		log.Info().Str("otlp_endpoint", cfg.OTelEndpoint).Msg("OpenTelemetry initialized")
	}

	clock := clockwork.NewRealClock()
	providers := resilience.NewRegistry()

	// Station registry
	stations, err := stationLoader(cfg, providers, log).Load(ctx)
	if err != nil {
		return err
	}
	registry, err := station.NewRegistry(stations)
	if err != nil {
		return err
	}
	log.Info().
		Int("stations", registry.Len()).
		Int("districts", len(registry.Districts())).
		Msg("station registry ready")

	f := fleet.New(registry, fleet.Config{
		HistoryCapacity: cfg.HistoryCapacity,
		Seed:            cfg.StationSeed,
		Logger:          log,
	})

	flags := featureflags.NewService(featureflags.ServiceConfig{
		Logger:   log,
		CacheTTL: time.Minute,
		Clock:    clock,
	})

	promReg := prometheus.NewRegistry()
	promReg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := observability.NewMetrics(promReg)

	httpMetrics, err := middleware.NewMetricsWithMeter(tp.Meter)
	if err != nil {
		return err
	}
	instruments, err := telemetry.NewSimulationInstruments(tp.Meter)
	if err != nil {
		return err
	}

	var sinks []worker.Sink
	if cfg.KafkaEnabled {
		writer, err := kafkaadapter.NewWriter(kafkaadapter.Config{
			Brokers:       cfg.KafkaBrokers,
			ReadingsTopic: cfg.KafkaReadingsTopic,
			AlertsTopic:   cfg.KafkaAlertsTopic,
		}, log, metrics)
		if err != nil {
			return err
		}
		defer func() {
			if err := writer.Close(); err != nil {
				log.Error().Err(err).Msg("kafka writer close error")
			}
		}()
		sinks = append(sinks, writer)
		log.Info().Strs("brokers", cfg.KafkaBrokers).Msg("kafka reading sink enabled")
	}

	scheduler := worker.NewScheduler(worker.SchedulerOptions{
		Config: worker.SchedulerConfig{
			Interval:                cfg.SimulationInterval,
			Concurrency:             cfg.SimulationConcurrency,
			MaxTickDuration:         cfg.MaxTickDuration,
			WQIMethod:               cfg.WQIMethod,
			TemperatureCompensation: cfg.TemperatureCompensation,
			Location:                cfg.Location,
		},
		Fleet:       f,
		Clock:       clock,
		Logger:      log,
		Metrics:     metrics,
		Flags:       flags,
		Sinks:       sinks,
		Tracer:      tp.Tracer,
		Instruments: instruments,
	})

	queries := query.NewService(query.Config{Fleet: f, Clock: clock, Location: cfg.Location})

	digest, err := worker.NewDigestJob(worker.DigestOptions{
		Schedule: cfg.DigestSchedule,
		Location: cfg.Location,
		Query:    queries,
		Enabled:  flags.FleetDigestEnabled,
		Clock:    clock,
		Logger:   log,
		Metrics:  metrics,
	})
	if err != nil {
		return err
	}

	router := api.NewRouter(api.RouterConfig{
		Version:            Version,
		BuildTime:          BuildTime,
		Logger:             log,
		ServiceName:        serviceName,
		Metrics:            httpMetrics,
		Fleet:              f,
		Query:              queries,
		Scheduler:          scheduler,
		Digest:             digest,
		FeatureFlagService: flags,
		Providers:          providers,
		Clock:              clock,
		Gatherer:           promReg,
		AdminToken:         cfg.AdminToken,
		RequireTLS:         cfg.RequireTLS,
		StaleAfter:         3 * cfg.SimulationInterval,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	if cfg.SimulationAutostart {
		if _, err := scheduler.Start(ctx, cfg.SimulationInterval); err != nil {
			return err
		}
	} else {
		// Populate the fleet so the API is ready without a running loop.
		scheduler.Refresh(ctx)
	}
	digest.Start()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", server.Addr).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if cfg.PubSubEnabled() {
		control, err := worker.NewPubSubHandler(gctx, worker.PubSubConfig{
			ProjectID:        cfg.PubSubProjectID,
			SubscriptionName: cfg.PubSubSubscription,
			Controller:       scheduler,
			Logger:           log,
			Metrics:          metrics,
		})
		if err != nil {
			return err
		}
		defer control.Close()
		g.Go(func() error {
			return control.Start(gctx)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		var errs []error
		if err := server.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, err)
		}
		select {
		case <-digest.Stop().Done():
		case <-shutdownCtx.Done():
		}
		if err := scheduler.Stop(); err != nil && !errors.Is(err, worker.ErrNotRunning) {
			errs = append(errs, err)
		}
		return errors.Join(errs...)
	})

	return g.Wait()
}

// stationLoader picks the catalog source: a file, then a remote catalog,
// then the generated network. STATION_DISTRICT narrows any of them.
func stationLoader(cfg *config.Config, providers *resilience.Registry, log zerolog.Logger) station.Loader {
	var loader station.Loader
	switch {
	case cfg.StationsFile != "":
		loader = station.FileLoader{Path: cfg.StationsFile, Logger: log}
	case cfg.StationsURL != "":
		clientCfg := resilience.DefaultClientConfig("station-catalog")
		clientCfg.Registry = providers
		clientCfg.Logger = log
		loader = station.HTTPLoader{
			URL:          cfg.StationsURL,
			Client:       resilience.NewClient(clientCfg),
			Health:       providers,
			ProviderName: clientCfg.Name,
			Logger:       log,
		}
	default:
		network := station.DefaultNetworkConfig()
		network.Seed = cfg.StationSeed
		loader = station.GeneratedLoader{Config: network, Logger: log}
	}

	if cfg.StationDistrict != "" {
		loader = station.DistrictLoader{Next: loader, District: cfg.StationDistrict}
	}
	return loader
}
