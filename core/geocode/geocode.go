package geocode

import (
	"context"
	"errors"
)

// ErrNoData is returned by a ReverseGeocoder when the provider has no place
// data for the coordinate. It is a normal outcome, not a failure: the sweep
// records geocode_status=no_data and moves on.
var ErrNoData = errors.New("geocode: no data for coordinate")

// Hierarchy is the address hierarchy a reverse lookup resolves a coordinate
// to. Fields the provider cannot determine are left empty.
type Hierarchy struct {
	Name         string `json:"name"`
	Address      string `json:"address"`
	Neighborhood string `json:"neighborhood"`
	PostalCode   string `json:"postal_code"`
	City         string `json:"city"`
	Subdivision  string `json:"subdivision"`
	Region       string `json:"region"`
	Country      string `json:"country"`
}

// ReverseGeocoder resolves a coordinate to an address hierarchy.
//
// Implementations must respect ctx cancellation and deadlines; the batch
// reconcilers wrap every call in a per-item timeout. Retry and backoff are
// the implementation's own concern, not the caller's.
type ReverseGeocoder interface {
	Lookup(ctx context.Context, lat, lng float64) (*Hierarchy, error)
}
