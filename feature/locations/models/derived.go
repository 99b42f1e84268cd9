package models

// PlaceFields is the full denormalized field set of a place, as elected from
// a group of entries. It seeds a new Location on promotion.
type PlaceFields struct {
	Name           string   `json:"name"`
	Address        *string  `json:"address"`
	Neighborhood   *string  `json:"neighborhood"`
	PostalCode     *string  `json:"postal_code"`
	City           *string  `json:"city"`
	Subdivision    *string  `json:"subdivision"`
	Region         *string  `json:"region"`
	Country        *string  `json:"country"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
	LocationRadius *float64 `json:"location_radius"`
}

// EntryOnlyLocationGroup is a derived cluster of unlinked, GPS-only entries
// bucketed by coarse geography. Never persisted.
type EntryOnlyLocationGroup struct {
	City       *string `json:"city"`
	Region     *string `json:"region"`
	Country    *string `json:"country"`
	EntryCount int     `json:"entry_count"`
	// Latitude/Longitude is the centroid of the group's entries.
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// EntryDerivedPlace is a derived cluster of unlinked, named entries sharing
// a place signature. A promotion candidate. Never persisted.
type EntryDerivedPlace struct {
	Signature      PlaceSignature `json:"signature"`
	Representative PlaceFields    `json:"representative"`
	EntryCount     int            `json:"entry_count"`
}

// MergeSuggestion pairs two active Locations that look like duplicates.
// Recomputed on every scan; never persisted. A is always the lexically
// smaller id so a pair has one canonical form.
type MergeSuggestion struct {
	A              Location `json:"a"`
	B              Location `json:"b"`
	Score          float64  `json:"score"`
	DistanceMeters *float64 `json:"distance_meters"`
	Reason         string   `json:"reason"`
}

// HealthCounts summarizes the state of the gazetteer for the maintenance UI.
type HealthCounts struct {
	MissingHierarchy     int `json:"missing_hierarchy"`
	UnlinkedWithGPS      int `json:"unlinked_with_gps"`
	UnusedLocations      int `json:"unused_locations"`
	DuplicateSuggestions int `json:"duplicate_suggestions"`
	PendingGeocode       int `json:"pending_geocode"`
	EntryDerivedPlaces   int `json:"entry_derived_places"`
}
