// Package geo provides the small amount of geodesy the locations engine
// needs: haversine distance between coordinate pairs, coordinate equality
// within an epsilon, and place-name normalization for duplicate comparison.
//
// At personal-gazetteer scale (hundreds of Locations) a plain haversine scan
// is sufficient; no spatial index is used.
package geo
