package reconcile

import (
	"context"

	"journal-locations/core/geo"
	"journal-locations/feature/locations/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Snapper is the purely local batch job that links GPS-only entries to the
// nearest existing Location within a snap radius. No network involved.
type Snapper struct {
	db          *gorm.DB
	radiusMeter float64
	logger      *zap.Logger
}

// NewSnapper creates a snap reconciler with the given radius in meters.
func NewSnapper(db *gorm.DB, radiusMeters float64, logger *zap.Logger) *Snapper {
	return &Snapper{db: db, radiusMeter: radiusMeters, logger: logger}
}

// Run sweeps entries with GPS, no linked Location, and no place name. Each
// entry is linked to the nearest active Location within the snap radius,
// its denormalized fields resynced to that Location, status set to snapped.
// Entries with no Location in range are left untouched and counted as
// skipped. Progress and cancellation follow the shared batch contract.
func (s *Snapper) Run(ctx context.Context, onProgress ProgressFunc) (*Summary, error) {
	var candidates []models.Location
	err := s.db.WithContext(ctx).
		Where("deleted_at IS NULL").
		Where("latitude IS NOT NULL AND longitude IS NOT NULL").
		Order("location_id ASC").
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}

	var entries []models.Entry
	err = s.db.WithContext(ctx).
		Where("location_id IS NULL").
		Where("entry_latitude IS NOT NULL AND entry_longitude IS NOT NULL").
		Where("place_name IS NULL OR place_name = ''").
		Order("created_at ASC, entry_id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	summary := &Summary{}
	total := len(entries)
	for i := range entries {
		if ctx.Err() != nil {
			return summary, ctx.Err()
		}

		e := &entries[i]
		summary.Processed++

		nearest := s.nearestWithinRadius(e, candidates)
		if nearest == nil {
			summary.Skipped++
			summary.report(onProgress, i+1, total)
			continue
		}

		values := models.CanonicalEntryValues(nearest)
		values["location_id"] = nearest.LocationID
		values["location_radius"] = models.ResolveRadius(e.LocationRadius, nearest.LocationRadius)
		values["geocode_status"] = models.GeocodeStatusSnapped

		if err := s.db.WithContext(ctx).Model(&models.Entry{}).
			Where("entry_id = ?", e.EntryID).
			Updates(values).Error; err != nil {
			return summary, err
		}
		summary.Succeeded++

		summary.report(onProgress, i+1, total)
	}

	s.logger.Info("Snap sweep finished",
		zap.Int("processed", summary.Processed),
		zap.Int("snapped", summary.Succeeded),
		zap.Int("skipped", summary.Skipped))
	return summary, nil
}

// nearestWithinRadius finds the closest candidate Location inside the snap
// radius, or nil. Ties at identical distance resolve to the smaller id via
// the candidates' sort order.
func (s *Snapper) nearestWithinRadius(e *models.Entry, candidates []models.Location) *models.Location {
	var best *models.Location
	bestDist := s.radiusMeter
	for i := range candidates {
		c := &candidates[i]
		d := geo.DistanceMeters(*e.EntryLatitude, *e.EntryLongitude, *c.Latitude, *c.Longitude)
		if d < bestDist || (best == nil && d == bestDist) {
			best = c
			bestDist = d
		}
	}
	return best
}
