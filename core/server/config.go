package server

import "strconv"

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API. Empty disables
	// authentication (local single-user installs).
	ApiKey string `mapstructure:"api_key" default:""`
}

// IsValidPort checks that the configured port parses as a TCP port number.
func (c Config) IsValidPort() bool {
	p, err := strconv.Atoi(c.Port)
	return err == nil && p > 0 && p <= 65535
}
