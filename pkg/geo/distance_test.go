package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceKm(t *testing.T) {
	paris := Point{Latitude: 48.8566, Longitude: 2.3522}
	london := Point{Latitude: 51.5074, Longitude: -0.1278}

	d := DistanceKm(paris, london)
	assert.InDelta(t, 343.5, d, 1.5)
}

func TestDistanceKmZero(t *testing.T) {
	p := Point{Latitude: 40.7128, Longitude: -74.0060}
	assert.Zero(t, DistanceKm(p, p))
}

func TestDistanceKmSymmetry(t *testing.T) {
	a := Point{Latitude: -23.5505, Longitude: -46.6333}
	b := Point{Latitude: 35.6762, Longitude: 139.6503}
	assert.InDelta(t, DistanceKm(a, b), DistanceKm(b, a), 1e-9)
}

func TestDistanceKmHalfCircumference(t *testing.T) {
	a := Point{Latitude: 0, Longitude: 0}
	b := Point{Latitude: 0, Longitude: 180}
	assert.InDelta(t, math.Pi*6371, DistanceKm(a, b), 0.01)
}

func TestPointValid(t *testing.T) {
	assert.True(t, Point{Latitude: 0, Longitude: 0}.Valid())
	assert.True(t, Point{Latitude: -90, Longitude: 180}.Valid())

	assert.False(t, Point{Latitude: 91, Longitude: 0}.Valid())
	assert.False(t, Point{Latitude: 0, Longitude: -181}.Valid())
	assert.False(t, Point{Latitude: math.NaN(), Longitude: 0}.Valid())
	assert.False(t, Point{Latitude: 0, Longitude: math.Inf(1)}.Valid())
}
