// Package server holds the HTTP server configuration.
//
// While the main application entry point handles the server startup, this
// package defines the configuration structure and validation for server
// settings.
//
// # Configuration
//
// The Config struct defines the HTTP port and API key. An empty key
// disables authentication, which is the expected setup for a local
// single-user install.
package server
