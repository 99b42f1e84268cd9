// Package config provides configuration management for the journal
// locations service.
//
// It utilizes Viper for loading configuration from environment variables
// and a .env file, with defaults declared as struct tags on each partial
// config.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings,
// divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Database: SQLite path or MySQL connection details
//   - Geocode: reverse-geocoding provider endpoint and timeout
//   - Locations: resolution-engine tuning (snap and duplicate radii)
//   - Log: Logging level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
