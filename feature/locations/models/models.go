package models

import (
	"time"
)

// GeocodeStatus tracks how an entry's hierarchy data was obtained. The zero
// value means the entry has never been considered for geocoding.
type GeocodeStatus string

const (
	// GeocodeStatusPending marks an entry queued for the next geocode sweep.
	GeocodeStatusPending GeocodeStatus = "pending"
	// GeocodeStatusSuccess marks hierarchy data written by the provider.
	GeocodeStatusSuccess GeocodeStatus = "success"
	// GeocodeStatusSnapped marks an entry linked to a nearby Location without
	// any network lookup.
	GeocodeStatusSnapped GeocodeStatus = "snapped"
	// GeocodeStatusNoData marks a coordinate the provider has no place for.
	GeocodeStatusNoData GeocodeStatus = "no_data"
	// GeocodeStatusError marks a provider or timeout failure; retried on the
	// next sweep.
	GeocodeStatusError GeocodeStatus = "error"
	// GeocodeStatusManual marks user-entered place data; never overwritten.
	GeocodeStatusManual GeocodeStatus = "manual"
)

// Terminal reports whether the status is final unless the user clears the
// entry's location data.
func (s GeocodeStatus) Terminal() bool {
	switch s {
	case GeocodeStatusSuccess, GeocodeStatusSnapped, GeocodeStatusManual:
		return true
	default:
		return false
	}
}

// Retryable reports whether a geocode sweep should pick the entry up again.
func (s GeocodeStatus) Retryable() bool {
	switch s {
	case "", GeocodeStatusPending, GeocodeStatusError:
		return true
	default:
		return false
	}
}

// Location is a canonical personal-gazetteer place record.
// Soft delete is an explicit nullable timestamp rather than gorm.DeletedAt:
// the engine reads and reasons about deleted rows (merge idempotency,
// cleanup) and must not have them filtered out implicitly.
type Location struct {
	LocationID     string     `gorm:"column:location_id;primaryKey" json:"location_id"`
	Name           string     `gorm:"column:name;not null" json:"name"`
	Address        *string    `gorm:"column:address" json:"address"`
	Neighborhood   *string    `gorm:"column:neighborhood" json:"neighborhood"`
	PostalCode     *string    `gorm:"column:postal_code" json:"postal_code"`
	City           *string    `gorm:"column:city" json:"city"`
	Subdivision    *string    `gorm:"column:subdivision" json:"subdivision"`
	Region         *string    `gorm:"column:region" json:"region"`
	Country        *string    `gorm:"column:country" json:"country"`
	Latitude       *float64   `gorm:"column:latitude" json:"latitude"`
	Longitude      *float64   `gorm:"column:longitude" json:"longitude"`
	LocationRadius *float64   `gorm:"column:location_radius" json:"location_radius"`
	CreatedAt      time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt      *time.Time `gorm:"column:deleted_at;index" json:"deleted_at"`
}

// TableName sets the table name for Location.
func (Location) TableName() string {
	return "locations"
}

// IsDeleted reports whether the Location is soft-deleted.
func (l *Location) IsDeleted() bool {
	return l.DeletedAt != nil
}

// HasCoordinates reports whether the Location carries a usable coordinate.
func (l *Location) HasCoordinates() bool {
	return l.Latitude != nil && l.Longitude != nil
}

// MissingHierarchy reports whether any of the core hierarchy fields is
// blank. Used to select enrichment candidates.
func (l *Location) MissingHierarchy() bool {
	return isBlank(l.City) || isBlank(l.Region) || isBlank(l.Country)
}

// LocationWithCount is a Location joined with its live entry count.
type LocationWithCount struct {
	Location   `gorm:"embedded"`
	EntryCount int `gorm:"column:entry_count" json:"entry_count"`
}

// Entry is the engine-visible slice of a journal entry. Entries are owned
// by the journaling collaborator; this engine only reads GPS and writes the
// link and the denormalized place copy.
//
// The denormalized fields are self-sufficient: deleting a Location never
// degrades an entry's displayable place data.
type Entry struct {
	EntryID        string        `gorm:"column:entry_id;primaryKey" json:"entry_id"`
	LocationID     *string       `gorm:"column:location_id;index" json:"location_id"`
	EntryLatitude  *float64      `gorm:"column:entry_latitude" json:"entry_latitude"`
	EntryLongitude *float64      `gorm:"column:entry_longitude" json:"entry_longitude"`
	LocationRadius *float64      `gorm:"column:location_radius" json:"location_radius"`
	PlaceName      *string       `gorm:"column:place_name" json:"place_name"`
	Address        *string       `gorm:"column:address" json:"address"`
	Neighborhood   *string       `gorm:"column:neighborhood" json:"neighborhood"`
	PostalCode     *string       `gorm:"column:postal_code" json:"postal_code"`
	City           *string       `gorm:"column:city" json:"city"`
	Subdivision    *string       `gorm:"column:subdivision" json:"subdivision"`
	Region         *string       `gorm:"column:region" json:"region"`
	Country        *string       `gorm:"column:country" json:"country"`
	GeocodeStatus  GeocodeStatus `gorm:"column:geocode_status" json:"geocode_status"`
	CreatedAt      time.Time     `gorm:"column:created_at" json:"created_at"`
}

// TableName sets the table name for Entry.
func (Entry) TableName() string {
	return "entries"
}

// HasGPS reports whether the entry carries a coordinate.
func (e *Entry) HasGPS() bool {
	return e.EntryLatitude != nil && e.EntryLongitude != nil
}

// IsLinked reports whether the entry references a Location.
func (e *Entry) IsLinked() bool {
	return e.LocationID != nil && *e.LocationID != ""
}

func isBlank(s *string) bool {
	return s == nil || *s == ""
}
