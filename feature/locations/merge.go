package locations

import (
	"context"
	"errors"
	"time"

	"journal-locations/core/errs"
	"journal-locations/core/geo"
	"journal-locations/feature/locations/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Merger implements promote, link, and merge: the operations that move
// entries between Locations and soft-delete merge losers.
//
// Every entry reassignment is committed as a single-row update, so a crash
// mid-batch leaves each entry either fully migrated or untouched, and a
// retry re-derives the remaining work from current rows.
type Merger struct {
	db     *gorm.DB
	cfg    Config
	logger *zap.Logger
}

// NewMerger creates a merge engine.
func NewMerger(db *gorm.DB, cfg Config, logger *zap.Logger) *Merger {
	return &Merger{db: db, cfg: cfg, logger: logger}
}

// PromoteEntryPlace converts an entry-derived place into a real Location:
// it creates the Location from the group's representative fields and links
// every entry still matching the group's signature. The group snapshot may
// be stale; zero matching entries at call time is a Conflict, not a silent
// empty Location.
func (m *Merger) PromoteEntryPlace(ctx context.Context, group models.EntryDerivedPlace) (*models.Location, error) {
	if !group.Signature.HasPlaceName() {
		return nil, errs.Validationf("entry place group has no place name")
	}

	name := group.Representative.Name
	if name == "" {
		name = *group.Signature.PlaceName
	}

	var created models.Location
	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var entries []models.Entry
		if err := signatureScope(tx, group.Signature).
			Where("location_id IS NULL").
			Find(&entries).Error; err != nil {
			return err
		}
		if len(entries) == 0 {
			return errs.Conflictf("no unlinked entries match the place group anymore")
		}

		created = models.Location{
			LocationID:     uuid.NewString(),
			Name:           name,
			Address:        group.Representative.Address,
			Neighborhood:   group.Representative.Neighborhood,
			PostalCode:     group.Representative.PostalCode,
			City:           group.Representative.City,
			Subdivision:    group.Representative.Subdivision,
			Region:         group.Representative.Region,
			Country:        group.Representative.Country,
			Latitude:       group.Representative.Latitude,
			Longitude:      group.Representative.Longitude,
			LocationRadius: group.Representative.LocationRadius,
		}
		if err := tx.Create(&created).Error; err != nil {
			return err
		}

		for i := range entries {
			if err := linkEntry(tx, &entries[i], &created, models.GeocodeStatusManual); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	m.logger.Info("Entry place promoted to location",
		zap.String("location_id", created.LocationID),
		zap.String("name", created.Name))
	return &created, nil
}

// MergeEntriesToLocation links every unlinked entry matching the signature
// to an existing Location, overwriting their denormalized fields with the
// Location's canonical values. The overwrite is deliberate: once linked, an
// entry always displays the Location of record.
// Returns the number of entries linked.
func (m *Merger) MergeEntriesToLocation(ctx context.Context, locationID string, match models.PlaceSignature) (int, error) {
	target, err := m.activeLocation(ctx, locationID)
	if err != nil {
		return 0, err
	}

	var entries []models.Entry
	if err := signatureScope(m.db.WithContext(ctx), match).
		Where("location_id IS NULL").
		Find(&entries).Error; err != nil {
		return 0, err
	}

	linked := 0
	for i := range entries {
		if err := linkEntry(m.db.WithContext(ctx), &entries[i], target, models.GeocodeStatusManual); err != nil {
			return linked, err
		}
		linked++
	}

	m.logger.Info("Entries merged into location",
		zap.String("location_id", locationID),
		zap.Int("linked", linked))
	return linked, nil
}

// MergeTwoSavedLocations reassigns every entry referencing the loser to the
// winner and soft-deletes the loser. Safe to resume after a crash: it
// recomputes "entries still pointing at loser" from current rows rather
// than trusting any in-memory plan, and a retry against an
// already-deleted loser is a no-op.
func (m *Merger) MergeTwoSavedLocations(ctx context.Context, winnerID, loserID string) error {
	if winnerID == "" || loserID == "" {
		return errs.Validationf("both winner and loser ids are required")
	}
	if winnerID == loserID {
		return errs.Validationf("cannot merge location %s into itself", winnerID)
	}

	winner, err := m.activeLocation(ctx, winnerID)
	if err != nil {
		if errs.Is(err, errs.KindNotFound) {
			return errs.Validationf("winner location %s is unknown or deleted", winnerID)
		}
		return err
	}

	var loser models.Location
	if err := m.db.WithContext(ctx).Where("location_id = ?", loserID).First(&loser).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.Validationf("loser location %s is unknown", loserID)
		}
		return err
	}
	if loser.IsDeleted() {
		// Retried merge; the previous run already finished. Any entries
		// still pointing at the loser are swept below regardless.
		if err := m.reassignEntries(ctx, &loser, winner); err != nil {
			return err
		}
		return nil
	}

	if err := m.reassignEntries(ctx, &loser, winner); err != nil {
		return err
	}

	now := time.Now().UTC()
	if err := m.db.WithContext(ctx).Model(&models.Location{}).
		Where("location_id = ? AND deleted_at IS NULL", loserID).
		Updates(map[string]any{"deleted_at": &now, "updated_at": now}).Error; err != nil {
		return err
	}

	m.logger.Info("Locations merged",
		zap.String("winner", winnerID),
		zap.String("loser", loserID))
	return nil
}

// MergeDuplicateLocations automatically merges provably-identical active
// Locations: equal normalized name and coordinates equal within epsilon.
//
// Policy: the sweep does NOT consult the ignore list. A dismissal
// suppresses a suggestion; it does not change the fact that two records are
// byte-for-byte the same place, and keeping both forever serves nobody.
// Interactive near-duplicates always go through the Detector, which does
// honor dismissals.
//
// The oldest record wins (ties broken by smaller id), so repeated sweeps
// are deterministic. Returns the number of losers merged away.
func (m *Merger) MergeDuplicateLocations(ctx context.Context) (int, error) {
	var active []models.Location
	err := m.db.WithContext(ctx).
		Where("deleted_at IS NULL").
		Order("created_at ASC, location_id ASC").
		Find(&active).Error
	if err != nil {
		return 0, err
	}

	// Group by normalized name; within a name group, the first record each
	// subsequent one coordinate-matches becomes its winner.
	byName := make(map[string][]*models.Location)
	for i := range active {
		key := geo.NormalizeName(active[i].Name)
		if key == "" {
			continue
		}
		byName[key] = append(byName[key], &active[i])
	}

	merged := 0
	for _, group := range byName {
		for i := 1; i < len(group); i++ {
			loser := group[i]
			for j := 0; j < i; j++ {
				winner := group[j]
				if winner.IsDeleted() || loser.IsDeleted() {
					continue
				}
				if !identicalCoordinates(winner, loser, m.cfg.ExactCoordinateEpsilonDegrees) {
					continue
				}
				if err := m.MergeTwoSavedLocations(ctx, winner.LocationID, loser.LocationID); err != nil {
					return merged, err
				}
				now := time.Now().UTC()
				loser.DeletedAt = &now
				merged++
				break
			}
		}
	}

	if merged > 0 {
		m.logger.Info("Exact duplicate sweep finished", zap.Int("merged", merged))
	}
	return merged, nil
}

// reassignEntries moves every entry still referencing the loser onto the
// winner, one atomic row update at a time.
func (m *Merger) reassignEntries(ctx context.Context, loser, winner *models.Location) error {
	var entries []models.Entry
	if err := m.db.WithContext(ctx).
		Where("location_id = ?", loser.LocationID).
		Find(&entries).Error; err != nil {
		return err
	}

	for i := range entries {
		if err := linkEntry(m.db.WithContext(ctx), &entries[i], winner, entries[i].GeocodeStatus); err != nil {
			return err
		}
	}
	return nil
}

func (m *Merger) activeLocation(ctx context.Context, id string) (*models.Location, error) {
	var loc models.Location
	err := m.db.WithContext(ctx).
		Where("location_id = ? AND deleted_at IS NULL", id).
		First(&loc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFoundf("location %s", id)
	}
	if err != nil {
		return nil, err
	}
	return &loc, nil
}

// linkEntry points one entry at a Location and resyncs its denormalized
// copy to the Location's canonical fields, as a single row update.
func linkEntry(tx *gorm.DB, e *models.Entry, loc *models.Location, status models.GeocodeStatus) error {
	values := models.CanonicalEntryValues(loc)
	values["location_id"] = loc.LocationID
	values["location_radius"] = models.ResolveRadius(e.LocationRadius, loc.LocationRadius)
	if status != "" {
		values["geocode_status"] = status
	}

	return tx.Model(&models.Entry{}).
		Where("entry_id = ?", e.EntryID).
		Updates(values).Error
}

// identicalCoordinates treats two Locations as coordinate-identical when
// both have coordinates equal within epsilon, or both have none.
func identicalCoordinates(a, b *models.Location, epsilon float64) bool {
	if !a.HasCoordinates() || !b.HasCoordinates() {
		return !a.HasCoordinates() && !b.HasCoordinates()
	}
	return geo.SameCoordinate(*a.Latitude, *a.Longitude, *b.Latitude, *b.Longitude, epsilon)
}

// signatureScope builds a null-aware WHERE over the entry columns of a
// place signature: null matches only null, never a non-null value.
func signatureScope(tx *gorm.DB, sig models.PlaceSignature) *gorm.DB {
	fields := []struct {
		column string
		value  *string
	}{
		{"place_name", sig.PlaceName},
		{"address", sig.Address},
		{"city", sig.City},
		{"region", sig.Region},
		{"country", sig.Country},
	}

	scope := tx.Model(&models.Entry{})
	for _, f := range fields {
		if f.value == nil {
			scope = scope.Where(f.column + " IS NULL")
		} else {
			scope = scope.Where(f.column+" = ?", *f.value)
		}
	}
	return scope
}
