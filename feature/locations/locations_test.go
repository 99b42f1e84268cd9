package locations_test

import (
	"context"
	"testing"
	"time"

	"journal-locations/core/database"
	"journal-locations/core/geocode"
	"journal-locations/feature/locations"
	"journal-locations/feature/locations/models"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// fakeGeocoder is a canned-response ReverseGeocoder for tests.
type fakeGeocoder struct {
	lookup func(ctx context.Context, lat, lng float64) (*geocode.Hierarchy, error)
}

func (f *fakeGeocoder) Lookup(ctx context.Context, lat, lng float64) (*geocode.Hierarchy, error) {
	if f.lookup == nil {
		return nil, geocode.ErrNoData
	}
	return f.lookup(ctx, lat, lng)
}

func newTestService(t *testing.T) (*locations.Service, *gorm.DB) {
	t.Helper()

	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)

	cfg := locations.Config{
		SnapRadiusMeters:              150,
		DuplicateRadiusMeters:         500,
		ExactCoordinateEpsilonDegrees: 0.00001,
	}
	svc := locations.NewService(db, &fakeGeocoder{}, cfg, time.Second, zap.NewNop())
	require.NoError(t, svc.Migrate())
	return svc, db
}

func strp(s string) *string { return &s }

func f64p(f float64) *float64 { return &f }

func seedLocation(t *testing.T, db *gorm.DB, loc models.Location) models.Location {
	t.Helper()
	if loc.CreatedAt.IsZero() {
		loc.CreatedAt = time.Now().UTC()
	}
	require.NoError(t, db.Create(&loc).Error)
	return loc
}

func seedEntry(t *testing.T, db *gorm.DB, e models.Entry) models.Entry {
	t.Helper()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	require.NoError(t, db.Create(&e).Error)
	return e
}

func getEntry(t *testing.T, db *gorm.DB, id string) models.Entry {
	t.Helper()
	var e models.Entry
	require.NoError(t, db.Where("entry_id = ?", id).First(&e).Error)
	return e
}

func getLocationRow(t *testing.T, db *gorm.DB, id string) *models.Location {
	t.Helper()
	var loc models.Location
	require.NoError(t, db.Where("location_id = ?", id).First(&loc).Error)
	return &loc
}
