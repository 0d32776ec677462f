package estimator

import (
	"sync"
	"time"
)

// Demand prediction uses a moving average over recent boarding counts with a
// peak-hour adjustment. It backs the demand-for-route endpoint and gives
// drivers a rough boarding expectation per route.

const (
	demandDefaultPrediction = 10
	demandMinSamples        = 5
	demandWindow            = 7
	peakMultiplier          = 1.5
)

type ConfidenceLevel string

const (
	ConfidenceLow    ConfidenceLevel = "LOW"
	ConfidenceMedium ConfidenceLevel = "MEDIUM"
	ConfidenceHigh   ConfidenceLevel = "HIGH"
)

// DemandPrediction is the forecast for one route at one hour of day.
type DemandPrediction struct {
	PredictedDemand int             `json:"predictedDemand"`
	Confidence      ConfidenceLevel `json:"confidence"`
}

type demandSample struct {
	timestamp time.Time
	demand    float64
}

// DemandPredictor accumulates per-route demand history. Safe for concurrent
// use; feed goroutines record samples while handlers read predictions.
type DemandPredictor struct {
	mu      sync.RWMutex
	history map[string][]demandSample
}

func NewDemandPredictor() *DemandPredictor {
	return &DemandPredictor{history: make(map[string][]demandSample)}
}

// AddSample records an observed boarding count for a route.
func (p *DemandPredictor) AddSample(routeID string, timestamp time.Time, demand float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.history[routeID] = append(p.history[routeID], demandSample{timestamp: timestamp, demand: demand})
}

// Predict forecasts demand for a route at the given hour of day. Routes with
// fewer than five recorded samples fall back to a low-confidence default.
func (p *DemandPredictor) Predict(routeID string, hourOfDay int) DemandPrediction {
	p.mu.RLock()
	defer p.mu.RUnlock()

	history := p.history[routeID]
	if len(history) < demandMinSamples {
		return DemandPrediction{PredictedDemand: demandDefaultPrediction, Confidence: ConfidenceLow}
	}

	recent := history
	if len(recent) > demandWindow {
		recent = recent[len(recent)-demandWindow:]
	}
	sum := 0.0
	for _, s := range recent {
		sum += s.demand
	}
	avg := sum / float64(len(recent))

	if isPeakHour(hourOfDay) {
		avg *= peakMultiplier
	}

	confidence := ConfidenceMedium
	if len(recent) >= demandWindow {
		confidence = ConfidenceHigh
	}

	return DemandPrediction{PredictedDemand: int(avg), Confidence: confidence}
}

func isPeakHour(hour int) bool {
	return (hour >= 7 && hour <= 9) || (hour >= 17 && hour <= 19)
}
