package geo

import (
	"math"
	"strings"
	"unicode"
)

// earthRadiusMeters is the mean Earth radius used for haversine distance.
const earthRadiusMeters = 6371000.0

// DistanceMeters returns the great-circle distance between two coordinates
// using the haversine formula. Accurate to well under a meter at the
// sub-kilometer ranges the engine cares about (snap and duplicate radii).
func DistanceMeters(lat1, lng1, lat2, lng2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// NormalizeName canonicalizes a place name for duplicate comparison:
// lowercase, punctuation stripped, inner whitespace collapsed. "Blue Bottle
// Coffee", "blue bottle  coffee" and "Blue Bottle Coffee." all normalize to
// the same string.
func NormalizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	lastSpace := true
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastSpace = false
		case unicode.IsSpace(r):
			if !lastSpace {
				b.WriteRune(' ')
				lastSpace = true
			}
		default:
			// Punctuation and symbols are dropped entirely.
		}
	}

	return strings.TrimRight(b.String(), " ")
}

// SameCoordinate reports whether two coordinate pairs are equal within
// epsilon degrees. At mid latitudes 1e-5 degrees is roughly one meter.
func SameCoordinate(lat1, lng1, lat2, lng2, epsilon float64) bool {
	return math.Abs(lat1-lat2) <= epsilon && math.Abs(lng1-lng2) <= epsilon
}
