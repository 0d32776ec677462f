// Package feed consumes the live vehicle telemetry feed. Two sources are
// supported: a NATS push subscription and a polled GTFS-realtime vehicle
// positions endpoint. Both funnel into one last-write-wins snapshot store.
package feed

import (
	"sort"
	"sync"

	"tripwatch.villagelink.org/internal/models"
	"tripwatch.villagelink.org/internal/utils"
)

// Metrics is the subset of instrumentation the feed reports. A nil Metrics
// is valid and disables instrumentation.
type Metrics interface {
	FeedUpdateReceived()
	FeedDecodeError()
	SetFeedConnected(connected bool)
	SetActiveVehicles(n int)
}

// ConnectionFunc is notified when the push feed connects or drops.
type ConnectionFunc func(connected bool)

// VehiclesFunc receives the full updated vehicle list on each feed tick.
type VehiclesFunc func(vehicles []models.VehicleTelemetry)

// Manager owns the live telemetry snapshot. Every update replaces the prior
// report for that vehicle immediately; there is no queuing or coalescing.
type Manager struct {
	metrics Metrics

	mu       sync.RWMutex
	vehicles map[string]models.VehicleTelemetry

	subMu         sync.RWMutex
	nextSubID     int
	onConnection  map[int]ConnectionFunc
	onVehicles    map[int]VehiclesFunc
	lastConnected bool
}

func NewManager(metrics Metrics) *Manager {
	return &Manager{
		metrics:      metrics,
		vehicles:     make(map[string]models.VehicleTelemetry),
		onConnection: make(map[int]ConnectionFunc),
		onVehicles:   make(map[int]VehiclesFunc),
	}
}

// Apply stores one telemetry report, normalizing degraded fields first, and
// notifies vehicle subscribers. Reports without a vehicle ID or with a
// non-finite position are dropped.
func (m *Manager) Apply(t models.VehicleTelemetry) bool {
	t.Normalize()
	if t.VehicleID == "" || !t.Position.IsFinite() {
		if m.metrics != nil {
			m.metrics.FeedDecodeError()
		}
		return false
	}

	m.mu.Lock()
	if prev, ok := m.vehicles[t.VehicleID]; ok {
		deriveHeading(&t, prev)
	}
	m.vehicles[t.VehicleID] = t
	count := len(m.vehicles)
	m.mu.Unlock()

	if m.metrics != nil {
		m.metrics.FeedUpdateReceived()
		m.metrics.SetActiveVehicles(count)
	}

	m.notifyVehicles()
	return true
}

// ApplyBatch replaces reports for every vehicle in the batch, then notifies
// subscribers once.
func (m *Manager) ApplyBatch(batch []models.VehicleTelemetry) {
	accepted := 0
	m.mu.Lock()
	for _, t := range batch {
		t.Normalize()
		if t.VehicleID == "" || !t.Position.IsFinite() {
			continue
		}
		if prev, ok := m.vehicles[t.VehicleID]; ok {
			deriveHeading(&t, prev)
		}
		m.vehicles[t.VehicleID] = t
		accepted++
	}
	count := len(m.vehicles)
	m.mu.Unlock()

	if m.metrics != nil && accepted > 0 {
		m.metrics.FeedUpdateReceived()
		m.metrics.SetActiveVehicles(count)
	}
	if accepted > 0 {
		m.notifyVehicles()
	}
}

// ActiveVehicles returns a stable-ordered snapshot of the live vehicle set.
func (m *Manager) ActiveVehicles() []models.VehicleTelemetry {
	m.mu.RLock()
	vehicles := make([]models.VehicleTelemetry, 0, len(m.vehicles))
	for _, v := range m.vehicles {
		vehicles = append(vehicles, v)
	}
	m.mu.RUnlock()

	sort.Slice(vehicles, func(i, j int) bool {
		return vehicles[i].VehicleID < vehicles[j].VehicleID
	})
	return vehicles
}

// Vehicle returns the latest report for one vehicle.
func (m *Manager) Vehicle(id string) (models.VehicleTelemetry, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.vehicles[id]
	return v, ok
}

// deriveHeading fills in a missing bearing from the track. Feeds that omit
// heading default it to 0 in Normalize; when the vehicle has moved since its
// previous fix, the bearing between the two fixes is the better value. A
// vehicle genuinely travelling due north derives roughly north from its
// track anyway.
func deriveHeading(t *models.VehicleTelemetry, prev models.VehicleTelemetry) {
	if t.Heading != 0 {
		return
	}
	if models.CompareCoordinates(prev.Position, t.Position) == 0 {
		return
	}
	t.Heading = utils.BearingBetweenPoints(
		prev.Position.Lat, prev.Position.Lon,
		t.Position.Lat, t.Position.Lon,
	)
}

// Subscription is a handle to registered feed callbacks.
type Subscription struct {
	id      int
	manager *Manager
}

// Cancel removes the subscription's callbacks. Safe to call more than once.
func (s *Subscription) Cancel() {
	s.manager.subMu.Lock()
	delete(s.manager.onConnection, s.id)
	delete(s.manager.onVehicles, s.id)
	s.manager.subMu.Unlock()
}

// Subscribe registers push callbacks. Either may be nil. The connection
// callback is invoked immediately with the current state.
func (m *Manager) Subscribe(onConnection ConnectionFunc, onVehicles VehiclesFunc) *Subscription {
	m.subMu.Lock()
	m.nextSubID++
	sub := &Subscription{id: m.nextSubID, manager: m}
	if onConnection != nil {
		m.onConnection[sub.id] = onConnection
	}
	if onVehicles != nil {
		m.onVehicles[sub.id] = onVehicles
	}
	connected := m.lastConnected
	m.subMu.Unlock()

	if onConnection != nil {
		onConnection(connected)
	}
	return sub
}

// SetConnected records the push feed's connection state and fans it out.
func (m *Manager) SetConnected(connected bool) {
	m.subMu.Lock()
	m.lastConnected = connected
	subs := make([]ConnectionFunc, 0, len(m.onConnection))
	for _, fn := range m.onConnection {
		subs = append(subs, fn)
	}
	m.subMu.Unlock()

	if m.metrics != nil {
		m.metrics.SetFeedConnected(connected)
	}
	for _, fn := range subs {
		fn(connected)
	}
}

func (m *Manager) notifyVehicles() {
	m.subMu.RLock()
	subs := make([]VehiclesFunc, 0, len(m.onVehicles))
	for _, fn := range m.onVehicles {
		subs = append(subs, fn)
	}
	m.subMu.RUnlock()
	if len(subs) == 0 {
		return
	}

	snapshot := m.ActiveVehicles()
	for _, fn := range subs {
		fn(snapshot)
	}
}
