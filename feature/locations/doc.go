// Package locations implements the journal location reconciliation feature.
//
// It maintains the link between journal entries and saved locations by
// reconciling three kinds of place data:
//  1. Saved locations: the curated gazetteer rows the user manages directly.
//  2. Entry place data: denormalized place fields captured on each entry.
//  3. Geocoding results: hierarchy data fetched from a reverse geocoder.
//
// # Components
//
//   - Store: CRUD over saved locations with the entry cascade.
//   - Index: read-only grouping of unlinked entries (GPS clusters and
//     named place groups).
//   - Merger: promotion, entry linking, and location-to-location merges.
//   - Detector: ranked duplicate suggestions filtered by the dismiss list.
//   - Cleaner: zero-reference location cleanup.
//   - reconcile: resumable batch sweeps (geocode, snap, enrich).
//   - Service: the facade composing all of the above.
//   - Handler: exposes HTTP endpoints for every operation.
//   - Loader: registers the feature with the application.
//
// # HTTP Endpoints
//
//   - GET  /locations              : List active locations.
//   - GET  /locations/suggestions  : Ranked duplicate merge suggestions.
//   - POST /locations/merge        : Merge one saved location into another.
//   - POST /locations/jobs/geocode : Run the reverse-geocoding sweep.
package locations
