package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceMeters(t *testing.T) {
	tests := []struct {
		name     string
		lat1     float64
		lng1     float64
		lat2     float64
		lng2     float64
		expected float64
		delta    float64
	}{
		{
			name:     "same point",
			lat1:     40.0, lng1: -73.0, lat2: 40.0, lng2: -73.0,
			expected: 0, delta: 0.001,
		},
		{
			name: "one degree of latitude",
			lat1: 40.0, lng1: -73.0, lat2: 41.0, lng2: -73.0,
			expected: 111195, delta: 100,
		},
		{
			name: "short hop",
			// ~14m apart, the Scenario A geometry.
			lat1: 40.0000, lng1: -73.0000, lat2: 40.0001, lng2: -73.0001,
			expected: 14, delta: 1,
		},
		{
			name: "across the antimeridian",
			lat1: 0, lng1: 179.9995, lat2: 0, lng2: -179.9995,
			// Naive longitude subtraction would report half the planet.
			expected: 40030000, delta: 100000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := DistanceMeters(tt.lat1, tt.lng1, tt.lat2, tt.lng2)
			assert.InDelta(t, tt.expected, d, tt.delta)
		})
	}
}

func TestDistanceIsSymmetric(t *testing.T) {
	d1 := DistanceMeters(37.7749, -122.4194, 40.7128, -74.0060)
	d2 := DistanceMeters(40.7128, -74.0060, 37.7749, -122.4194)
	assert.InDelta(t, d1, d2, 0.0001)
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Blue Bottle Coffee", "blue bottle coffee"},
		{"blue bottle  coffee", "blue bottle coffee"},
		{"Blue Bottle Coffee.", "blue bottle coffee"},
		{"  Café  du   Monde ", "café du monde"},
		{"Joe's Pizza", "joes pizza"},
		{"", ""},
		{"---", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeName(tt.in), "input %q", tt.in)
	}
}

func TestSameCoordinate(t *testing.T) {
	assert.True(t, SameCoordinate(40.00001, -73.00001, 40.00001, -73.00001, 1e-5))
	assert.True(t, SameCoordinate(40.000010, -73.0, 40.000015, -73.0, 1e-5))
	assert.False(t, SameCoordinate(40.0, -73.0, 40.001, -73.0, 1e-5))
}
