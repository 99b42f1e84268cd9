package reconcile

import (
	"context"
	"errors"
	"time"

	"journal-locations/core/errs"
	"journal-locations/core/geocode"
	"journal-locations/feature/locations/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Enricher fills missing hierarchy fields on Locations that have
// coordinates, via the external geocoder.
//
// Unlike the entry geocode sweep, enrichment is strictly non-destructive:
// only currently-blank fields are written, a non-null value is never
// overwritten. A Location's hierarchy may have been hand-edited, and the
// provider does not outrank the user.
type Enricher struct {
	db       *gorm.DB
	provider geocode.ReverseGeocoder
	timeout  time.Duration
	logger   *zap.Logger
}

// NewEnricher creates a hierarchy enricher. timeout bounds each provider
// call; zero means 10 seconds.
func NewEnricher(db *gorm.DB, provider geocode.ReverseGeocoder, timeout time.Duration, logger *zap.Logger) *Enricher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Enricher{db: db, provider: provider, timeout: timeout, logger: logger}
}

// Run sweeps active Locations with coordinates and at least one missing
// hierarchy field, filling blanks from the provider. Progress, per-item
// error isolation, and cancellation follow the shared batch contract.
func (e *Enricher) Run(ctx context.Context, onProgress ProgressFunc) (*Summary, error) {
	var locs []models.Location
	err := e.db.WithContext(ctx).
		Where("deleted_at IS NULL").
		Where("latitude IS NOT NULL AND longitude IS NOT NULL").
		Where("city IS NULL OR city = '' OR region IS NULL OR region = '' OR country IS NULL OR country = ''").
		Order("created_at ASC, location_id ASC").
		Find(&locs).Error
	if err != nil {
		return nil, err
	}

	summary := &Summary{}
	total := len(locs)
	for i := range locs {
		if ctx.Err() != nil {
			return summary, ctx.Err()
		}

		switch err := e.enrich(ctx, &locs[i]); {
		case err == nil:
			summary.Processed++
			summary.Succeeded++
		case errors.Is(err, geocode.ErrNoData):
			summary.Processed++
			summary.Skipped++
		case ctx.Err() != nil:
			// Cancelled mid-item; result discarded.
			return summary, ctx.Err()
		case errs.Is(err, errs.KindExternalService):
			e.logger.Warn("Hierarchy enrichment failed",
				zap.String("location_id", locs[i].LocationID),
				zap.Error(err))
			summary.Processed++
			summary.Failed++
		default:
			// Store failure: fatal for the sweep.
			return summary, err
		}

		summary.report(onProgress, i+1, total)
	}

	e.logger.Info("Enrichment sweep finished",
		zap.Int("processed", summary.Processed),
		zap.Int("succeeded", summary.Succeeded),
		zap.Int("failed", summary.Failed),
		zap.Int("skipped", summary.Skipped))
	return summary, nil
}

// EnrichOne enriches a single Location on demand.
func (e *Enricher) EnrichOne(ctx context.Context, id string) error {
	var loc models.Location
	err := e.db.WithContext(ctx).
		Where("location_id = ? AND deleted_at IS NULL", id).
		First(&loc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NotFoundf("location %s", id)
	}
	if err != nil {
		return err
	}
	if !loc.HasCoordinates() {
		return errs.Validationf("location %s has no coordinates to enrich from", id)
	}

	if err := e.enrich(ctx, &loc); err != nil {
		if errors.Is(err, geocode.ErrNoData) {
			return errs.Conflictf("no hierarchy data available for location %s", id)
		}
		return err
	}
	return nil
}

// enrich looks the coordinate up and writes only the blank fields.
func (e *Enricher) enrich(ctx context.Context, loc *models.Location) error {
	itemCtx, cancel := context.WithTimeout(ctx, e.timeout)
	hierarchy, err := e.provider.Lookup(itemCtx, *loc.Latitude, *loc.Longitude)
	cancel()
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	values := make(map[string]any)
	fill := func(column string, current *string, resolved string) {
		if (current == nil || *current == "") && resolved != "" {
			values[column] = resolved
		}
	}
	fill("address", loc.Address, hierarchy.Address)
	fill("neighborhood", loc.Neighborhood, hierarchy.Neighborhood)
	fill("postal_code", loc.PostalCode, hierarchy.PostalCode)
	fill("city", loc.City, hierarchy.City)
	fill("subdivision", loc.Subdivision, hierarchy.Subdivision)
	fill("region", loc.Region, hierarchy.Region)
	fill("country", loc.Country, hierarchy.Country)

	if len(values) == 0 {
		return nil
	}
	values["updated_at"] = time.Now().UTC()

	return e.db.WithContext(ctx).Model(&models.Location{}).
		Where("location_id = ?", loc.LocationID).
		Updates(values).Error
}
