// Package geocode defines the reverse-geocoding collaborator boundary.
//
// The engine only ever talks to the ReverseGeocoder interface; the bundled
// Client implementation speaks the Nominatim reverse API. A provider miss is
// the sentinel ErrNoData, a provider failure is an errs.ExternalService
// error, and both are handled per batch item by the reconcilers.
//
// Network retry and backoff policy belongs to the implementation behind the
// interface, not to the engine.
package geocode
