package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles the tracker's prometheus instruments behind one
// registry so tests can run collectors side by side.
type Collector struct {
	reg *prometheus.Registry

	FeedUpdates      prometheus.Counter
	FeedDecodeErrors prometheus.Counter
	FeedConnected    prometheus.Gauge
	ActiveVehicles   prometheus.Gauge

	EstimatesComputed prometheus.Counter
	ViewsComposed     prometheus.Counter

	RequestDuration *prometheus.HistogramVec
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		FeedUpdates: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tripwatch_feed_updates_total",
			Help: "Total telemetry updates accepted from the feed.",
		}),
		FeedDecodeErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tripwatch_feed_decode_errors_total",
			Help: "Total telemetry reports dropped as undecodable or unusable.",
		}),
		FeedConnected: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tripwatch_feed_connected",
			Help: "1 if the push telemetry feed is connected, 0 otherwise.",
		}),
		ActiveVehicles: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tripwatch_active_vehicles",
			Help: "Number of vehicles in the live snapshot.",
		}),
		EstimatesComputed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tripwatch_estimates_computed_total",
			Help: "Total departure estimates computed for API responses.",
		}),
		ViewsComposed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tripwatch_views_composed_total",
			Help: "Total trip-view compositions served.",
		}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tripwatch_request_duration_seconds",
			Help:    "Duration of API requests.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 15),
		}, []string{"endpoint"}),
	}

	reg.MustRegister(
		c.FeedUpdates, c.FeedDecodeErrors, c.FeedConnected, c.ActiveVehicles,
		c.EstimatesComputed, c.ViewsComposed, c.RequestDuration,
	)

	return c
}

// Feed metric hooks; Collector satisfies feed.Metrics.

func (c *Collector) FeedUpdateReceived() { c.FeedUpdates.Inc() }
func (c *Collector) FeedDecodeError()    { c.FeedDecodeErrors.Inc() }

func (c *Collector) SetFeedConnected(connected bool) {
	if connected {
		c.FeedConnected.Set(1)
	} else {
		c.FeedConnected.Set(0)
	}
}

func (c *Collector) SetActiveVehicles(n int) { c.ActiveVehicles.Set(float64(n)) }

// ObserveRequest records one API request's duration.
func (c *Collector) ObserveRequest(endpoint string, d time.Duration) {
	c.RequestDuration.WithLabelValues(endpoint).Observe(d.Seconds())
}

// Handler exposes the registry for the /metrics endpoint.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{})
}
