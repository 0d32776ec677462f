package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBearingBetweenPoints(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		expected               float64
		tolerance              float64
	}{
		{
			name:      "North direction",
			lat1:      26.0,
			lon1:      80.0,
			lat2:      27.0,
			lon2:      80.0,
			expected:  0.0,
			tolerance: 1.0,
		},
		{
			name:      "East direction",
			lat1:      26.0,
			lon1:      80.0,
			lat2:      26.0,
			lon2:      81.0,
			expected:  90.0,
			tolerance: 1.0,
		},
		{
			name:      "South direction",
			lat1:      27.0,
			lon1:      80.0,
			lat2:      26.0,
			lon2:      80.0,
			expected:  180.0,
			tolerance: 1.0,
		},
		{
			name:      "West direction",
			lat1:      26.0,
			lon1:      81.0,
			lat2:      26.0,
			lon2:      80.0,
			expected:  270.0,
			tolerance: 1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bearing := BearingBetweenPoints(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			assert.InDelta(t, tt.expected, bearing, tt.tolerance)
		})
	}
}

func TestBearingToCompass(t *testing.T) {
	tests := []struct {
		bearing  float64
		expected string
	}{
		{0, "N"},
		{45, "NE"},
		{90, "E"},
		{135, "SE"},
		{180, "S"},
		{225, "SW"},
		{270, "W"},
		{315, "NW"},
		{359, "N"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, BearingToCompass(tt.bearing), "bearing %v", tt.bearing)
	}
}

func TestHaversine(t *testing.T) {
	// One degree of latitude is roughly 111 km everywhere.
	distance := Haversine(26.0, 80.0, 27.0, 80.0)
	assert.InDelta(t, 111195, distance, 500)

	assert.InDelta(t, 0, Haversine(26.85, 80.95, 26.85, 80.95), 0.001)
}

func TestNormalizeHeadingDelta(t *testing.T) {
	tests := []struct {
		name     string
		from, to float64
		expected float64
	}{
		{"no change", 90, 90, 0},
		{"simple clockwise", 10, 40, 30},
		{"simple counterclockwise", 40, 10, -30},
		{"wraps clockwise through north", 350, 10, 20},
		{"wraps counterclockwise through north", 10, 350, -20},
		{"opposite headings pick the positive sweep", 0, 180, 180},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, NormalizeHeadingDelta(tt.from, tt.to), 0.0001)
		})
	}
}
