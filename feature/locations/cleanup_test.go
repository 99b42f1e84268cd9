package locations_test

import (
	"context"
	"testing"

	"journal-locations/feature/locations/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteUnusedLocations(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	unused := seedLocation(t, db, models.Location{LocationID: "a", Name: "Empty"})
	used := seedLocation(t, db, models.Location{LocationID: "b", Name: "Referenced"})
	seedEntry(t, db, models.Entry{EntryID: "e1", LocationID: &used.LocationID})

	deleted, err := svc.DeleteUnusedLocations(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	assert.True(t, getLocationRow(t, db, unused.LocationID).IsDeleted())
	assert.False(t, getLocationRow(t, db, used.LocationID).IsDeleted())
}

func TestDeleteUnusedLocationsSkipsAlreadyDeleted(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	seedLocation(t, db, models.Location{LocationID: "a", Name: "Empty"})
	deleted, err := svc.DeleteUnusedLocations(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, deleted)

	// Second sweep finds nothing left.
	deleted, err = svc.DeleteUnusedLocations(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, deleted)
}
