package locations

import (
	"context"

	"journal-locations/feature/locations/models"

	"gorm.io/gorm"
)

// healthCounts aggregates the gazetteer state for the maintenance view:
// how much work each batch job and the duplicate scan currently has.
func healthCounts(ctx context.Context, db *gorm.DB, detector *Detector, index *Index) (*models.HealthCounts, error) {
	counts := &models.HealthCounts{}

	var n int64
	err := db.WithContext(ctx).Model(&models.Location{}).
		Where("deleted_at IS NULL").
		Where("latitude IS NOT NULL AND longitude IS NOT NULL").
		Where("city IS NULL OR city = '' OR region IS NULL OR region = '' OR country IS NULL OR country = ''").
		Count(&n).Error
	if err != nil {
		return nil, err
	}
	counts.MissingHierarchy = int(n)

	err = db.WithContext(ctx).Model(&models.Entry{}).
		Where("location_id IS NULL").
		Where("entry_latitude IS NOT NULL AND entry_longitude IS NOT NULL").
		Count(&n).Error
	if err != nil {
		return nil, err
	}
	counts.UnlinkedWithGPS = int(n)

	err = db.WithContext(ctx).Model(&models.Location{}).
		Where("deleted_at IS NULL").
		Where("NOT EXISTS (SELECT 1 FROM entries WHERE entries.location_id = locations.location_id)").
		Count(&n).Error
	if err != nil {
		return nil, err
	}
	counts.UnusedLocations = int(n)

	err = db.WithContext(ctx).Model(&models.Entry{}).
		Where("location_id IS NULL").
		Where("entry_latitude IS NOT NULL AND entry_longitude IS NOT NULL").
		Where("geocode_status IS NULL OR geocode_status IN ('', ?, ?)",
			models.GeocodeStatusPending, models.GeocodeStatusError).
		Count(&n).Error
	if err != nil {
		return nil, err
	}
	counts.PendingGeocode = int(n)

	suggestions, err := detector.Suggestions(ctx)
	if err != nil {
		return nil, err
	}
	counts.DuplicateSuggestions = len(suggestions)

	places, err := index.EntryDerivedPlaces(ctx)
	if err != nil {
		return nil, err
	}
	counts.EntryDerivedPlaces = len(places)

	return counts, nil
}
