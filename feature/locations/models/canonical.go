package models

// CanonicalEntryValues builds the column updates that resync an entry's
// denormalized place copy to a Location's canonical fields. Used whenever an
// entry is linked (promote, merge, snap): post-link display is always
// consistent with the Location of record.
//
// The entry's own GPS coordinate and location_radius are not included;
// radius follows the ResolveRadius policy and coordinates belong to the
// entry.
func CanonicalEntryValues(loc *Location) map[string]any {
	return map[string]any{
		"place_name":   loc.Name,
		"address":      loc.Address,
		"neighborhood": loc.Neighborhood,
		"postal_code":  loc.PostalCode,
		"city":         loc.City,
		"subdivision":  loc.Subdivision,
		"region":       loc.Region,
		"country":      loc.Country,
	}
}

// ResolveRadius decides an entry's location_radius when it is linked to a
// Location. The Location's radius is copied verbatim, except that an
// entry's existing privacy radius is never silently narrowed.
func ResolveRadius(entryRadius, locationRadius *float64) *float64 {
	if locationRadius == nil {
		return entryRadius
	}
	if entryRadius != nil && *locationRadius < *entryRadius {
		return entryRadius
	}
	return locationRadius
}
