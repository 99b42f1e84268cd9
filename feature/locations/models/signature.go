package models

import "strings"

// PlaceSignature identifies an entry-derived place: the tuple of place
// fields that makes two unlinked entries "the same place".
//
// Null handling is explicit: two null fields are equal for grouping, a null
// never matches a non-null. Pointers distinguish null from empty string.
type PlaceSignature struct {
	PlaceName *string `json:"place_name"`
	Address   *string `json:"address"`
	City      *string `json:"city"`
	Region    *string `json:"region"`
	Country   *string `json:"country"`
}

// SignatureOf extracts the place signature from an entry.
func SignatureOf(e *Entry) PlaceSignature {
	return PlaceSignature{
		PlaceName: e.PlaceName,
		Address:   e.Address,
		City:      e.City,
		Region:    e.Region,
		Country:   e.Country,
	}
}

// HasPlaceName reports whether the signature names a place at all. Entries
// without one belong to entry-only grouping, not entry-derived places.
func (s PlaceSignature) HasPlaceName() bool {
	return s.PlaceName != nil && *s.PlaceName != ""
}

// Key returns a deterministic grouping key. Null and empty string encode
// differently so they never collide.
func (s PlaceSignature) Key() string {
	fields := []*string{s.PlaceName, s.Address, s.City, s.Region, s.Country}
	parts := make([]string, len(fields))
	for i, f := range fields {
		if f == nil {
			parts[i] = "\x00"
		} else {
			parts[i] = "v" + *f
		}
	}
	return strings.Join(parts, "\x1f")
}

// Matches reports whether an entry carries exactly this signature.
func (s PlaceSignature) Matches(e *Entry) bool {
	return nullEqual(s.PlaceName, e.PlaceName) &&
		nullEqual(s.Address, e.Address) &&
		nullEqual(s.City, e.City) &&
		nullEqual(s.Region, e.Region) &&
		nullEqual(s.Country, e.Country)
}

func nullEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
