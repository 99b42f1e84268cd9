package reconcile_test

import (
	"context"
	"testing"
	"time"

	"journal-locations/core/database"
	"journal-locations/core/geocode"
	"journal-locations/feature/locations/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeGeocoder answers lookups from a function, so each test scripts the
// provider behavior per coordinate.
type fakeGeocoder struct {
	calls  int
	lookup func(ctx context.Context, lat, lng float64) (*geocode.Hierarchy, error)
}

func (f *fakeGeocoder) Lookup(ctx context.Context, lat, lng float64) (*geocode.Hierarchy, error) {
	f.calls++
	if f.lookup == nil {
		return nil, geocode.ErrNoData
	}
	return f.lookup(ctx, lat, lng)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Location{}, &models.Entry{}, &models.IgnoredPair{}))
	return db
}

func strp(s string) *string { return &s }

func f64p(f float64) *float64 { return &f }

func seedEntry(t *testing.T, db *gorm.DB, e models.Entry) models.Entry {
	t.Helper()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	require.NoError(t, db.Create(&e).Error)
	return e
}

func seedLocation(t *testing.T, db *gorm.DB, loc models.Location) models.Location {
	t.Helper()
	if loc.CreatedAt.IsZero() {
		loc.CreatedAt = time.Now().UTC()
	}
	require.NoError(t, db.Create(&loc).Error)
	return loc
}

func getEntry(t *testing.T, db *gorm.DB, id string) models.Entry {
	t.Helper()
	var e models.Entry
	require.NoError(t, db.Where("entry_id = ?", id).First(&e).Error)
	return e
}

func getLocation(t *testing.T, db *gorm.DB, id string) models.Location {
	t.Helper()
	var loc models.Location
	require.NoError(t, db.Where("location_id = ?", id).First(&loc).Error)
	return loc
}
