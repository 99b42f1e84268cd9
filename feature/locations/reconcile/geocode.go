package reconcile

import (
	"context"
	"errors"
	"time"

	"journal-locations/core/geocode"
	"journal-locations/feature/locations/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Geocoder is the batch job that resolves hierarchy data for unlinked
// GPS-carrying entries via the external reverse geocoder.
type Geocoder struct {
	db          *gorm.DB
	provider    geocode.ReverseGeocoder
	timeout     time.Duration
	retryNoData bool
	logger      *zap.Logger
}

// NewGeocoder creates a geocoding reconciler. timeout bounds each provider
// call; zero means 10 seconds.
func NewGeocoder(db *gorm.DB, provider geocode.ReverseGeocoder, timeout time.Duration, retryNoData bool, logger *zap.Logger) *Geocoder {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Geocoder{db: db, provider: provider, timeout: timeout, retryNoData: retryNoData, logger: logger}
}

// Run sweeps entries with GPS, no linked Location, and a retryable geocode
// status. Per entry it calls the provider under a per-item timeout:
//
//   - hierarchy resolved: fields written, status success
//   - provider has no data: status no_data
//   - timeout or provider error: status error, no partial field writes
//
// The sweep never aborts on a single item; it reports progress after every
// item and returns a summary. Cancellation is checked between items only;
// if the context is cancelled during an in-flight call, that call's result
// is discarded unwritten.
func (g *Geocoder) Run(ctx context.Context, onProgress ProgressFunc) (*Summary, error) {
	entries, err := g.eligibleEntries(ctx)
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

		itemCtx, cancel := context.WithTimeout(ctx, g.timeout)
		hierarchy, lookupErr := g.provider.Lookup(itemCtx, *e.EntryLatitude, *e.EntryLongitude)
		cancel()

		if ctx.Err() != nil {
			// Cancelled while the call was in flight; discard the result.
			return summary, ctx.Err()
		}
		summary.Processed++

		switch {
		case lookupErr == nil:
			if err := g.writeSuccess(ctx, e, hierarchy); err != nil {
				return summary, err
			}
			summary.Succeeded++
		case errors.Is(lookupErr, geocode.ErrNoData):
			if err := g.writeStatus(ctx, e, models.GeocodeStatusNoData); err != nil {
				return summary, err
			}
			summary.Skipped++
		default:
			// Provider or timeout failure: mark and move on, nothing partial.
			g.logger.Warn("Reverse geocode failed",
				zap.String("entry_id", e.EntryID),
				zap.Error(lookupErr))
			if err := g.writeStatus(ctx, e, models.GeocodeStatusError); err != nil {
				return summary, err
			}
			summary.Failed++
		}

		summary.report(onProgress, i+1, total)
	}

	g.logger.Info("Geocode sweep finished",
		zap.Int("processed", summary.Processed),
		zap.Int("succeeded", summary.Succeeded),
		zap.Int("failed", summary.Failed),
		zap.Int("skipped", summary.Skipped))
	return summary, nil
}

func (g *Geocoder) eligibleEntries(ctx context.Context) ([]models.Entry, error) {
	statuses := []models.GeocodeStatus{models.GeocodeStatusPending, models.GeocodeStatusError}
	if g.retryNoData {
		statuses = append(statuses, models.GeocodeStatusNoData)
	}

	var entries []models.Entry
	err := g.db.WithContext(ctx).
		Where("location_id IS NULL").
		Where("entry_latitude IS NOT NULL AND entry_longitude IS NOT NULL").
		Where("geocode_status IS NULL OR geocode_status = '' OR geocode_status IN ?", statuses).
		Order("created_at ASC, entry_id ASC").
		Find(&entries).Error
	return entries, err
}

// writeSuccess commits the resolved hierarchy and terminal status as one
// row update.
func (g *Geocoder) writeSuccess(ctx context.Context, e *models.Entry, h *geocode.Hierarchy) error {
	values := map[string]any{
		"place_name":     nullable(h.Name),
		"address":        nullable(h.Address),
		"neighborhood":   nullable(h.Neighborhood),
		"postal_code":    nullable(h.PostalCode),
		"city":           nullable(h.City),
		"subdivision":    nullable(h.Subdivision),
		"region":         nullable(h.Region),
		"country":        nullable(h.Country),
		"geocode_status": models.GeocodeStatusSuccess,
	}
	return g.db.WithContext(ctx).Model(&models.Entry{}).
		Where("entry_id = ?", e.EntryID).
		Updates(values).Error
}

func (g *Geocoder) writeStatus(ctx context.Context, e *models.Entry, status models.GeocodeStatus) error {
	return g.db.WithContext(ctx).Model(&models.Entry{}).
		Where("entry_id = ?", e.EntryID).
		Update("geocode_status", status).Error
}

// nullable maps a provider blank to SQL NULL so downstream signature
// grouping sees "unknown", not "empty".
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
