package reconcile_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"journal-locations/core/errs"
	"journal-locations/core/geocode"
	"journal-locations/feature/locations/models"
	"journal-locations/feature/locations/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Enrichment only fills blank fields; hand-edited values survive.
func TestEnrichRunFillsOnlyBlankFields(t *testing.T) {
	db := newTestDB(t)

	seedLocation(t, db, models.Location{
		LocationID: "l1", Name: "Cabin",
		City:     strp("My Own Spelling"),
		Latitude: f64p(61.5), Longitude: f64p(8.9),
	})

	provider := &fakeGeocoder{lookup: func(ctx context.Context, lat, lng float64) (*geocode.Hierarchy, error) {
		return &geocode.Hierarchy{
			City:    "Lom",
			Region:  "Innlandet",
			Country: "Norway",
		}, nil
	}}

	e := reconcile.NewEnricher(db, provider, time.Second, zap.NewNop())
	summary, err := e.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Succeeded)

	loc := getLocation(t, db, "l1")
	assert.Equal(t, "My Own Spelling", *loc.City)
	assert.Equal(t, "Innlandet", *loc.Region)
	assert.Equal(t, "Norway", *loc.Country)
}

func TestEnrichRunScope(t *testing.T) {
	db := newTestDB(t)

	// Complete hierarchy: nothing to do.
	seedLocation(t, db, models.Location{
		LocationID: "complete", Name: "Complete",
		City: strp("A"), Region: strp("B"), Country: strp("C"),
		Latitude: f64p(1), Longitude: f64p(1),
	})
	// No coordinates: nothing to look up.
	seedLocation(t, db, models.Location{LocationID: "nocoord", Name: "No Coord"})
	// Deleted.
	now := time.Now().UTC()
	seedLocation(t, db, models.Location{
		LocationID: "deleted", Name: "Deleted",
		Latitude: f64p(1), Longitude: f64p(1), DeletedAt: &now,
	})

	provider := &fakeGeocoder{}
	e := reconcile.NewEnricher(db, provider, time.Second, zap.NewNop())
	summary, err := e.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Processed)
	assert.Equal(t, 0, provider.calls)
}

// Provider failures mark the item failed and the sweep moves on.
func TestEnrichRunIsolatesProviderFailures(t *testing.T) {
	db := newTestDB(t)

	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	seedLocation(t, db, models.Location{
		LocationID: "bad", Name: "Bad",
		Latitude: f64p(1), Longitude: f64p(1), CreatedAt: base,
	})
	seedLocation(t, db, models.Location{
		LocationID: "good", Name: "Good",
		Latitude: f64p(2), Longitude: f64p(2), CreatedAt: base.Add(time.Minute),
	})

	provider := &fakeGeocoder{lookup: func(ctx context.Context, lat, lng float64) (*geocode.Hierarchy, error) {
		if lat == 1 {
			return nil, errs.ExternalService("reverse geocode failed", errors.New("upstream 500"))
		}
		return &geocode.Hierarchy{Country: "Somewhere"}, nil
	}}

	e := reconcile.NewEnricher(db, provider, time.Second, zap.NewNop())
	summary, err := e.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Processed)
	assert.Equal(t, 1, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed)

	assert.Equal(t, "Somewhere", *getLocation(t, db, "good").Country)
	assert.Nil(t, getLocation(t, db, "bad").Country)
}

func TestEnrichOne(t *testing.T) {
	db := newTestDB(t)

	seedLocation(t, db, models.Location{
		LocationID: "l1", Name: "Spot",
		Latitude: f64p(1), Longitude: f64p(1),
	})

	provider := &fakeGeocoder{lookup: func(ctx context.Context, lat, lng float64) (*geocode.Hierarchy, error) {
		return &geocode.Hierarchy{City: "Town"}, nil
	}}

	e := reconcile.NewEnricher(db, provider, time.Second, zap.NewNop())
	require.NoError(t, e.EnrichOne(context.Background(), "l1"))
	assert.Equal(t, "Town", *getLocation(t, db, "l1").City)
}

func TestEnrichOneErrors(t *testing.T) {
	db := newTestDB(t)

	seedLocation(t, db, models.Location{LocationID: "nocoord", Name: "No Coord"})
	seedLocation(t, db, models.Location{
		LocationID: "nodata", Name: "No Data",
		Latitude: f64p(1), Longitude: f64p(1),
	})

	e := reconcile.NewEnricher(db, &fakeGeocoder{}, time.Second, zap.NewNop())

	assert.True(t, errs.Is(e.EnrichOne(context.Background(), "missing"), errs.KindNotFound))
	assert.True(t, errs.Is(e.EnrichOne(context.Background(), "nocoord"), errs.KindValidation))
	// The fake's default answer is ErrNoData.
	assert.True(t, errs.Is(e.EnrichOne(context.Background(), "nodata"), errs.KindConflict))
}
