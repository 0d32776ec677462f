package feed

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/jamespfennell/gtfs"
	"tripwatch.villagelink.org/internal/logging"
	"tripwatch.villagelink.org/internal/models"
)

// defaultCapacities are assumed seat counts per vehicle kind; GTFS-realtime
// reports occupancy as a percentage without an absolute capacity.
var defaultCapacities = map[models.VehicleKind]int{
	models.VehicleKindBus:  40,
	models.VehicleKindAuto: 6,
	models.VehicleKindCar:  4,
}

// Poller periodically fetches a GTFS-realtime vehicle positions endpoint and
// replays it into the Manager as a snapshot source. It backs getActiveBuses
// style pulls when no push feed is configured.
type Poller struct {
	url      string
	interval time.Duration
	manager  *Manager
	logger   *slog.Logger

	shutdown chan struct{}
	once     sync.Once
	wg       sync.WaitGroup
}

func NewPoller(url string, interval time.Duration, manager *Manager, logger *slog.Logger) *Poller {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Poller{
		url:      url,
		interval: interval,
		manager:  manager,
		logger:   logger,
		shutdown: make(chan struct{}),
	}
}

// Start launches the polling loop. The first fetch happens immediately.
func (p *Poller) Start(ctx context.Context) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()

		p.pollOnce(ctx)

		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-p.shutdown:
				return
			case <-ticker.C:
				p.pollOnce(ctx)
			}
		}
	}()
}

// Shutdown stops the loop and waits for the in-flight fetch to finish.
func (p *Poller) Shutdown() {
	p.once.Do(func() { close(p.shutdown) })
	p.wg.Wait()
}

func (p *Poller) pollOnce(ctx context.Context) {
	realtime, err := p.fetch(ctx)
	if err != nil {
		logging.LogError(p.logger, "failed to fetch vehicle positions", err,
			slog.String("url", p.url))
		return
	}

	batch := make([]models.VehicleTelemetry, 0, len(realtime.Vehicles))
	for i := range realtime.Vehicles {
		if t, ok := telemetryFromVehicle(&realtime.Vehicles[i]); ok {
			batch = append(batch, t)
		}
	}
	p.manager.ApplyBatch(batch)
}

func (p *Poller) fetch(ctx context.Context) (*gtfs.Realtime, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", p.url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer logging.SafeCloseWithLogging(resp.Body, p.logger, "gtfs_rt_response_body")

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return gtfs.ParseRealtime(b, &gtfs.ParseRealtimeOptions{})
}

// telemetryFromVehicle maps one GTFS-realtime vehicle into the internal
// telemetry shape. Missing heading and speed degrade to zero per the feed
// contract; occupancy is reconstructed from the reported percentage against
// an assumed capacity.
func telemetryFromVehicle(v *gtfs.Vehicle) (models.VehicleTelemetry, bool) {
	var t models.VehicleTelemetry

	if v.ID != nil {
		t.VehicleID = v.ID.ID
	}
	if v.Position == nil || v.Position.Latitude == nil || v.Position.Longitude == nil {
		return t, false
	}
	t.Position = models.Coordinate{
		Lat: float64(*v.Position.Latitude),
		Lon: float64(*v.Position.Longitude),
	}
	if v.Position.Bearing != nil {
		t.Heading = float64(*v.Position.Bearing)
	}
	if v.Position.Speed != nil {
		t.SpeedKmh = float64(*v.Position.Speed) * 3.6
	}

	t.Kind = models.VehicleKindBus
	t.Capacity = defaultCapacities[t.Kind]
	if v.OccupancyPercentage != nil {
		t.Occupancy = int(float64(*v.OccupancyPercentage) / 100 * float64(t.Capacity))
	}

	if v.CurrentStatus != nil {
		// STOPPED_AT means the vehicle is boarding at a stop.
		t.Stationary = *v.CurrentStatus == 1
	}
	if v.CurrentStopSequence != nil {
		t.CurrentStopIndex = int(*v.CurrentStopSequence)
	}
	t.Congestion = mapCongestion(v.CongestionLevel)
	if v.Timestamp != nil {
		t.LastUpdateTime = v.Timestamp.UnixMilli()
	}

	return t, true
}

func mapCongestion(level gtfs.CongestionLevel) models.CongestionLevel {
	switch level {
	case 2: // STOP_AND_GO
		return models.CongestionSlow
	case 3: // CONGESTION
		return models.CongestionHeavy
	case 4: // SEVERE_CONGESTION
		return models.CongestionJam
	default:
		return models.CongestionFree
	}
}
