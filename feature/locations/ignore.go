package locations

import (
	"context"

	"journal-locations/core/errs"
	"journal-locations/feature/locations/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IgnoreList persists dismissed merge suggestions as a canonicalized pair
// set. Dismissing is commutative and idempotent; the relation survives
// across sessions.
type IgnoreList struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewIgnoreList creates an ignore list manager.
func NewIgnoreList(db *gorm.DB, logger *zap.Logger) *IgnoreList {
	return &IgnoreList{db: db, logger: logger}
}

// Dismiss records that the pair (a, b) must never be suggested again.
// Calling it twice, in either argument order, is a no-op, not an error.
func (l *IgnoreList) Dismiss(ctx context.Context, a, b string) error {
	if a == "" || b == "" {
		return errs.Validationf("both location ids are required")
	}
	if a == b {
		return errs.Validationf("cannot dismiss a location paired with itself")
	}

	x, y := models.CanonicalPair(a, b)
	err := l.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.IgnoredPair{LocationA: x, LocationB: y}).Error
	if err != nil {
		return err
	}

	l.logger.Info("Merge suggestion dismissed",
		zap.String("location_a", x),
		zap.String("location_b", y))
	return nil
}

// IsIgnored checks whether the pair has been dismissed, in either order.
func (l *IgnoreList) IsIgnored(ctx context.Context, a, b string) (bool, error) {
	x, y := models.CanonicalPair(a, b)
	var count int64
	err := l.db.WithContext(ctx).
		Model(&models.IgnoredPair{}).
		Where("location_a = ? AND location_b = ?", x, y).
		Count(&count).Error
	return count > 0, err
}

// Snapshot loads the whole relation into an O(1)-membership set. The
// duplicate scan checks every candidate pair against it without a query per
// pair.
func (l *IgnoreList) Snapshot(ctx context.Context) (models.PairSet, error) {
	var pairs []models.IgnoredPair
	if err := l.db.WithContext(ctx).Find(&pairs).Error; err != nil {
		return nil, err
	}

	set := make(models.PairSet, len(pairs))
	for _, p := range pairs {
		set.Add(p.LocationA, p.LocationB)
	}
	return set, nil
}
