package locations

// Config holds tuning for the location resolution engine.
type Config struct {
	// SnapRadiusMeters is the maximum distance at which a GPS-only entry is
	// linked to an existing Location without a network lookup.
	SnapRadiusMeters float64 `mapstructure:"snap_radius_meters" default:"150"`
	// DuplicateRadiusMeters is the proximity threshold for duplicate
	// candidates that share a city but not a normalized name.
	DuplicateRadiusMeters float64 `mapstructure:"duplicate_radius_meters" default:"500"`
	// ExactCoordinateEpsilonDegrees bounds coordinate equality for the
	// automatic exact-duplicate sweep. 1e-5 degrees is roughly one meter.
	ExactCoordinateEpsilonDegrees float64 `mapstructure:"exact_coordinate_epsilon_degrees" default:"0.00001"`
	// RetryNoData includes no_data entries in geocode sweeps when true.
	// Off by default: a coordinate the provider knows nothing about rarely
	// starts resolving, and re-asking every sweep wastes the provider budget.
	RetryNoData bool `mapstructure:"retry_no_data" default:"false"`
}
