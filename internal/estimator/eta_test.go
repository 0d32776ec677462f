package estimator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateStopETAPhases(t *testing.T) {
	cfg := DefaultConfig()
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

	departed := EstimateStopETA(cfg, 1, 2, 0, now)
	assert.Equal(t, ETADeparted, departed.Kind)
	assert.Equal(t, "Departed", departed.Label)

	arriving := EstimateStopETA(cfg, 2, 2, 0, now)
	assert.Equal(t, ETAArriving, arriving.Kind)
	assert.Equal(t, "Arriving", arriving.Label)

	future := EstimateStopETA(cfg, 3, 2, 0, now)
	assert.Equal(t, ETAFuture, future.Kind)
	assert.Equal(t, 8, future.TotalMinutes)
}

func TestEstimateStopETAOrdering(t *testing.T) {
	cfg := DefaultConfig()
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

	// 5-stop path, vehicle at stop 2
	third := EstimateStopETA(cfg, 3, 2, 0, now)
	fourth := EstimateStopETA(cfg, 4, 2, 0, now)

	require.Equal(t, ETAFuture, third.Kind)
	require.Equal(t, ETAFuture, fourth.Kind)
	assert.True(t, third.Arrival.Before(fourth.Arrival))
}

func TestEstimateStopETAWaitAppliedOnce(t *testing.T) {
	cfg := DefaultConfig()
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

	// The wait penalty shifts every downstream stop uniformly; the gap
	// between adjacent stops stays one hop.
	third := EstimateStopETA(cfg, 3, 2, 9, now)
	fourth := EstimateStopETA(cfg, 4, 2, 9, now)

	assert.Equal(t, 17, third.TotalMinutes)
	assert.Equal(t, 25, fourth.TotalMinutes)
	assert.Equal(t, 8*time.Minute, fourth.Arrival.Sub(third.Arrival))
}

func TestEstimateStopETALabelIsWallClock(t *testing.T) {
	cfg := DefaultConfig()
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

	eta := EstimateStopETA(cfg, 3, 2, 0, now)
	assert.Equal(t, "9:08 AM", eta.Label)
}
