package locations

import (
	"context"
	"time"

	"journal-locations/feature/locations/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Cleaner soft-deletes Locations that no live entry references.
type Cleaner struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewCleaner creates a cleanup service.
func NewCleaner(db *gorm.DB, logger *zap.Logger) *Cleaner {
	return &Cleaner{db: db, logger: logger}
}

// DeleteUnusedLocations soft-deletes every active Location with zero live
// referencing entries. The zero-reference check is embedded in the UPDATE
// itself, so a merge that linked entries to a candidate between the scan
// and the write simply makes that row's update match nothing. Returns the
// number of Locations deleted.
func (c *Cleaner) DeleteUnusedLocations(ctx context.Context) (int, error) {
	var candidates []string
	err := c.db.WithContext(ctx).
		Model(&models.Location{}).
		Where("deleted_at IS NULL").
		Where("NOT EXISTS (SELECT 1 FROM entries WHERE entries.location_id = locations.location_id)").
		Order("location_id ASC").
		Pluck("location_id", &candidates).Error
	if err != nil {
		return 0, err
	}

	deleted := 0
	now := time.Now().UTC()
	for _, id := range candidates {
		res := c.db.WithContext(ctx).Model(&models.Location{}).
			Where("location_id = ? AND deleted_at IS NULL", id).
			Where("NOT EXISTS (SELECT 1 FROM entries WHERE entries.location_id = locations.location_id)").
			Updates(map[string]any{"deleted_at": &now, "updated_at": now})
		if res.Error != nil {
			return deleted, res.Error
		}
		deleted += int(res.RowsAffected)
	}

	if deleted > 0 {
		c.logger.Info("Unused locations deleted", zap.Int("count", deleted))
	}
	return deleted, nil
}
