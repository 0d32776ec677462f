package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoordinateIsFinite(t *testing.T) {
	assert.True(t, Coordinate{Lat: 26.85, Lon: 80.95}.IsFinite())
	assert.True(t, Coordinate{}.IsFinite())

	assert.False(t, Coordinate{Lat: math.NaN(), Lon: 80.95}.IsFinite())
	assert.False(t, Coordinate{Lat: 26.85, Lon: math.Inf(1)}.IsFinite())
	assert.False(t, Coordinate{Lat: math.Inf(-1), Lon: math.NaN()}.IsFinite())
}

func TestCompareCoordinates(t *testing.T) {
	a := Coordinate{Lat: 26.0, Lon: 80.0}
	b := Coordinate{Lat: 27.0, Lon: 80.0}
	c := Coordinate{Lat: 26.0, Lon: 81.0}

	assert.Equal(t, -1, CompareCoordinates(a, b))
	assert.Equal(t, 1, CompareCoordinates(b, a))
	assert.Equal(t, -1, CompareCoordinates(a, c))
	assert.Equal(t, 0, CompareCoordinates(a, a))
}
