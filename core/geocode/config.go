package geocode

// Config holds configuration for the reverse-geocoding provider.
type Config struct {
	// BaseURL is the root URL of the Nominatim-compatible reverse endpoint.
	BaseURL string `mapstructure:"base_url" default:"https://nominatim.openstreetmap.org"`
	// UserAgent identifies this client to the provider (Nominatim requires one).
	UserAgent string `mapstructure:"user_agent" default:"journal-locations"`
	// TimeoutSeconds is the per-lookup timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"10"`
	// Language is the Accept-Language value for localized place names.
	Language string `mapstructure:"language" default:"en"`
}
