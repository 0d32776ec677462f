package feed

import (
	"encoding/json"
	"os"
	"sync"

	"tripwatch.villagelink.org/internal/models"
)

// Stop is one named boarding point with its geographic position.
type Stop struct {
	Name     string            `json:"name"`
	Position models.Coordinate `json:"position"`
}

// StopDirectory holds the static/semi-static stop list. Stop geometry is
// optional: paths are matched by name, and rendering simply omits polylines
// for stops with no known position.
type StopDirectory struct {
	mu    sync.RWMutex
	stops map[string]Stop
}

func NewStopDirectory() *StopDirectory {
	return &StopDirectory{stops: make(map[string]Stop)}
}

// LoadStopsFile reads a JSON array of stops into a directory.
func LoadStopsFile(path string) (*StopDirectory, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var stops []Stop
	if err := json.Unmarshal(b, &stops); err != nil {
		return nil, err
	}
	dir := NewStopDirectory()
	dir.Register(stops...)
	return dir, nil
}

// Register adds or replaces stops.
func (d *StopDirectory) Register(stops ...Stop) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, s := range stops {
		if s.Name == "" {
			continue
		}
		d.stops[s.Name] = s
	}
}

// Lookup returns the stop with the given name.
func (d *StopDirectory) Lookup(name string) (Stop, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	s, ok := d.stops[name]
	return s, ok
}

// PathCoordinates resolves a named path into coordinates, in order. The
// boolean is false when any stop lacks a known position.
func (d *StopDirectory) PathCoordinates(path []string) ([]models.Coordinate, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	coords := make([]models.Coordinate, 0, len(path))
	for _, name := range path {
		s, ok := d.stops[name]
		if !ok {
			return nil, false
		}
		coords = append(coords, s.Position)
	}
	return coords, true
}

// Len returns the number of registered stops.
func (d *StopDirectory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.stops)
}
