package app

import (
	"log/slog"

	"tripwatch.villagelink.org/internal/appconf"
	"tripwatch.villagelink.org/internal/estimator"
	"tripwatch.villagelink.org/internal/feed"
	"tripwatch.villagelink.org/internal/metrics"
	"tripwatch.villagelink.org/internal/tripview"
)

// Application holds the dependencies for our HTTP handlers, helpers,
// and middleware.
type Application struct {
	Config          appconf.Config
	Logger          *slog.Logger
	Feed            *feed.Manager
	Stops           *feed.StopDirectory
	EstimatorConfig estimator.Config
	Demand          *estimator.DemandPredictor
	Composer        *tripview.Composer
	Widgets         *tripview.Registry
	Metrics         *metrics.Collector
}
