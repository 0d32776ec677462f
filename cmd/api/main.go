package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"tripwatch.villagelink.org/internal/app"
	"tripwatch.villagelink.org/internal/appconf"
	"tripwatch.villagelink.org/internal/estimator"
	"tripwatch.villagelink.org/internal/feed"
	"tripwatch.villagelink.org/internal/metrics"
	"tripwatch.villagelink.org/internal/models"
	"tripwatch.villagelink.org/internal/restapi"
	"tripwatch.villagelink.org/internal/tripview"
)

func main() {
	appconf.LoadDotEnv()

	var (
		port        int
		envFlag     string
		apiKeysFlag string
		rateLimit   int
		natsURL     string
		gtfsRtURL   string
		stopsFile   string
	)

	flag.IntVar(&port, "port", defaultPort(), "API server port")
	flag.StringVar(&envFlag, "env", appconf.GetenvDefault("ENV", "development"), "Environment (development|production)")
	flag.StringVar(&apiKeysFlag, "api-keys", appconf.GetenvDefault("API_KEYS", "test"), "Comma Separated API Keys (test, etc)")
	flag.IntVar(&rateLimit, "rate-limit", 100, "Maximum requests per second per API key")
	flag.StringVar(&natsURL, "nats-url", os.Getenv("NATS_URL"), "NATS server URL for the push telemetry feed (empty disables)")
	flag.StringVar(&gtfsRtURL, "gtfs-rt-url", os.Getenv("GTFS_RT_URL"), "GTFS-realtime vehicle positions URL (empty disables)")
	flag.StringVar(&stopsFile, "stops", os.Getenv("STOPS_FILE"), "Path to a JSON file of stop coordinates (empty disables polylines)")
	flag.Parse()

	cfg := appconf.Config{
		Port:      port,
		Env:       appconf.EnvFlagToEnvironment(envFlag),
		ApiKeys:   splitAndTrim(apiKeysFlag),
		RateLimit: rateLimit,
		NATSURL:   natsURL,
		GtfsRtURL: gtfsRtURL,
	}

	var logger *slog.Logger
	if cfg.Env == appconf.Production {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))
	} else {
		logger = slog.New(slog.NewTextHandler(os.Stdout, nil))
	}

	if err := run(cfg, stopsFile, logger); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg appconf.Config, stopsFile string, logger *slog.Logger) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	collector := metrics.NewCollector()
	manager := feed.NewManager(collector)

	var stops *feed.StopDirectory
	if stopsFile != "" {
		var err error
		stops, err = feed.LoadStopsFile(stopsFile)
		if err != nil {
			return fmt.Errorf("loading stops file: %w", err)
		}
		logger.Info("loaded stop directory", "stops", stops.Len(), "path", stopsFile)
	}

	if cfg.NATSURL != "" {
		source, err := feed.ConnectNATS(cfg.NATSURL, manager, logger)
		if err != nil {
			return fmt.Errorf("connecting to NATS: %w", err)
		}
		defer source.Close()
		logger.Info("subscribed to push telemetry feed", "url", cfg.NATSURL)
	}

	if cfg.GtfsRtURL != "" {
		poller := feed.NewPoller(cfg.GtfsRtURL, 30*time.Second, manager, logger)
		poller.Start(ctx)
		defer poller.Shutdown()
		logger.Info("polling GTFS-realtime feed", "url", cfg.GtfsRtURL)
	}

	demand := estimator.NewDemandPredictor()
	manager.Subscribe(nil, func(vehicles []models.VehicleTelemetry) {
		now := time.Now()
		for _, v := range vehicles {
			if len(v.Path) < 2 {
				continue
			}
			demand.AddSample(estimator.RouteKey(v.Path), now, float64(v.Occupancy))
		}
	})

	estimatorCfg := estimator.DefaultConfig()
	composer := tripview.NewComposer(estimatorCfg, stops)
	registry := tripview.NewRegistry(composer, manager, nil, logger)
	defer registry.Shutdown()

	application := &app.Application{
		Config:          cfg,
		Logger:          logger,
		Feed:            manager,
		Stops:           stops,
		EstimatorConfig: estimatorCfg,
		Demand:          demand,
		Composer:        composer,
		Widgets:         registry,
		Metrics:         collector,
	}

	api := restapi.NewRestAPI(application)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      api.Router(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", srv.Addr, "env", cfg.Env.String())
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("shutting down server: %w", err)
	}
	return nil
}

func defaultPort() int {
	if raw := os.Getenv("PORT"); raw != "" {
		if port, err := strconv.Atoi(raw); err == nil {
			return port
		}
	}
	return 4000
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	keys := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			keys = append(keys, p)
		}
	}
	return keys
}
