package locations_test

import (
	"context"
	"testing"
	"time"

	"journal-locations/feature/locations/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryOnlyGroupsBucketsByRegionWithCentroid(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	// Two GPS-only entries in the same city bucket, one in another, one with
	// no hierarchy at all.
	seedEntry(t, db, models.Entry{
		EntryID: "e1", EntryLatitude: f64p(40.0), EntryLongitude: f64p(-74.0),
		City: strp("Trenton"), Region: strp("NJ"), Country: strp("US"),
	})
	seedEntry(t, db, models.Entry{
		EntryID: "e2", EntryLatitude: f64p(40.2), EntryLongitude: f64p(-74.2),
		City: strp("Trenton"), Region: strp("NJ"), Country: strp("US"),
	})
	seedEntry(t, db, models.Entry{
		EntryID: "e3", EntryLatitude: f64p(51.5), EntryLongitude: f64p(-0.1),
		City: strp("London"), Country: strp("GB"),
	})
	seedEntry(t, db, models.Entry{
		EntryID: "e4", EntryLatitude: f64p(0.0), EntryLongitude: f64p(0.0),
	})
	// Named and linked entries are out of scope.
	seedEntry(t, db, models.Entry{
		EntryID: "e5", EntryLatitude: f64p(40.0), EntryLongitude: f64p(-74.0),
		PlaceName: strp("Named"),
	})

	groups, err := svc.GetEntryOnlyLocationGroups(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 3)

	// Largest group first.
	assert.Equal(t, 2, groups[0].EntryCount)
	assert.Equal(t, "Trenton", *groups[0].City)
	assert.InDelta(t, 40.1, groups[0].Latitude, 1e-9)
	assert.InDelta(t, -74.1, groups[0].Longitude, 1e-9)
}

// Entries whose hierarchy fields are NULL group together, but never with
// entries that carry a value in that field.
func TestEntryDerivedPlacesNullAwareGrouping(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	seedEntry(t, db, models.Entry{EntryID: "e1", PlaceName: strp("Gym")})
	seedEntry(t, db, models.Entry{EntryID: "e2", PlaceName: strp("Gym")})
	seedEntry(t, db, models.Entry{EntryID: "e3", PlaceName: strp("Gym"), City: strp("Austin")})

	places, err := svc.GetEntryDerivedPlaces(ctx)
	require.NoError(t, err)
	require.Len(t, places, 2)

	assert.Equal(t, 2, places[0].EntryCount)
	assert.Nil(t, places[0].Signature.City)
	assert.Equal(t, 1, places[1].EntryCount)
	assert.Equal(t, "Austin", *places[1].Signature.City)
}

func TestEntryDerivedPlacesRepresentativeElection(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	// Same signature; neighborhood differs across entries, "Mission" occurs
	// twice and must win. The radius election keeps the widest value and the
	// coordinates average over the GPS-carrying entries.
	seedEntry(t, db, models.Entry{
		EntryID: "e1", PlaceName: strp("Taqueria"), City: strp("SF"),
		Neighborhood: strp("Mission"), CreatedAt: base,
		EntryLatitude: f64p(37.75), EntryLongitude: f64p(-122.41),
		LocationRadius: f64p(100),
	})
	seedEntry(t, db, models.Entry{
		EntryID: "e2", PlaceName: strp("Taqueria"), City: strp("SF"),
		Neighborhood: strp("Mission District"), CreatedAt: base.Add(time.Minute),
		LocationRadius: f64p(250),
	})
	seedEntry(t, db, models.Entry{
		EntryID: "e3", PlaceName: strp("Taqueria"), City: strp("SF"),
		Neighborhood: strp("Mission"), CreatedAt: base.Add(2 * time.Minute),
		EntryLatitude: f64p(37.77), EntryLongitude: f64p(-122.43),
	})

	places, err := svc.GetEntryDerivedPlaces(ctx)
	require.NoError(t, err)
	require.Len(t, places, 1)

	rep := places[0].Representative
	assert.Equal(t, "Taqueria", rep.Name)
	assert.Equal(t, "Mission", *rep.Neighborhood)
	assert.Equal(t, 250.0, *rep.LocationRadius)
	assert.InDelta(t, 37.76, *rep.Latitude, 1e-9)
	assert.InDelta(t, -122.42, *rep.Longitude, 1e-9)
	assert.Equal(t, 3, places[0].EntryCount)
}

func TestEntryDerivedPlacesTieBreaksByFirstSeen(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	seedEntry(t, db, models.Entry{
		EntryID: "e1", PlaceName: strp("Library"),
		Neighborhood: strp("Downtown"), CreatedAt: base,
	})
	seedEntry(t, db, models.Entry{
		EntryID: "e2", PlaceName: strp("Library"),
		Neighborhood: strp("Centre"), CreatedAt: base.Add(time.Minute),
	})

	// Neighborhood is not part of the signature, so both entries land in one
	// group with a 1-1 frequency tie; the earlier entry's value wins.
	places, err := svc.GetEntryDerivedPlaces(ctx)
	require.NoError(t, err)
	require.Len(t, places, 1)
	assert.Equal(t, "Downtown", *places[0].Representative.Neighborhood)
}
