// Package reconcile contains the three batch jobs that keep entries and
// Locations in sync: reverse geocoding (network), snap-to-location (purely
// local), and hierarchy enrichment (network, fill-only-blank).
//
// # Batch contract
//
// All three jobs share one contract:
//
//   - Progress is reported to a caller-supplied ProgressFunc after every
//     item as (current, total).
//   - Cancellation is cooperative and checked between items only; an
//     in-flight provider call is not preempted, its result is discarded if
//     the sweep's context was cancelled meanwhile.
//   - A single item's provider failure never aborts the sweep; it is
//     recorded (geocode_status=error on entries, a warning log on
//     Locations) and counted in the returned Summary.
//   - Every write is a single-row update, so a crash mid-sweep leaves a
//     consistent partial state and rerunning resumes from current rows.
//
// Store errors are the exception: they are fatal for the sweep and
// propagate immediately.
package reconcile
