package locations

import (
	"context"
	"errors"
	"time"

	"journal-locations/core/errs"
	"journal-locations/feature/locations/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Store provides CRUD over canonical Location rows with soft delete.
type Store struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewStore creates a Location store.
func NewStore(db *gorm.DB, logger *zap.Logger) *Store {
	return &Store{db: db, logger: logger}
}

// LocationInput carries the fields for creating a Location. Name is
// required; everything else is optional.
type LocationInput struct {
	Name           string   `json:"name"`
	Address        *string  `json:"address"`
	Neighborhood   *string  `json:"neighborhood"`
	PostalCode     *string  `json:"postal_code"`
	City           *string  `json:"city"`
	Subdivision    *string  `json:"subdivision"`
	Region         *string  `json:"region"`
	Country        *string  `json:"country"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
	LocationRadius *float64 `json:"location_radius"`
}

// LocationUpdate carries a partial update. Nil means "leave unchanged"; a
// pointer to the empty string clears a nullable field to null.
type LocationUpdate struct {
	Name           *string  `json:"name"`
	Address        *string  `json:"address"`
	Neighborhood   *string  `json:"neighborhood"`
	PostalCode     *string  `json:"postal_code"`
	City           *string  `json:"city"`
	Subdivision    *string  `json:"subdivision"`
	Region         *string  `json:"region"`
	Country        *string  `json:"country"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
	LocationRadius *float64 `json:"location_radius"`
}

// List returns all active Locations ordered by name.
func (s *Store) List(ctx context.Context) ([]models.Location, error) {
	var out []models.Location
	err := s.db.WithContext(ctx).
		Where("deleted_at IS NULL").
		Order("name ASC, location_id ASC").
		Find(&out).Error
	return out, err
}

// ListWithCounts returns all active Locations with their live entry counts.
func (s *Store) ListWithCounts(ctx context.Context) ([]models.LocationWithCount, error) {
	var out []models.LocationWithCount
	err := s.db.WithContext(ctx).
		Model(&models.Location{}).
		Select("locations.*, (SELECT COUNT(*) FROM entries WHERE entries.location_id = locations.location_id) AS entry_count").
		Where("locations.deleted_at IS NULL").
		Order("locations.name ASC, locations.location_id ASC").
		Find(&out).Error
	return out, err
}

// Get returns an active Location by id, or a NotFound error. Soft-deleted
// rows are treated as absent.
func (s *Store) Get(ctx context.Context, id string) (*models.Location, error) {
	var loc models.Location
	err := s.db.WithContext(ctx).
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

// Create inserts a new Location from explicit user input.
func (s *Store) Create(ctx context.Context, input LocationInput) (*models.Location, error) {
	if input.Name == "" {
		return nil, errs.Validationf("location name is required")
	}

	loc := models.Location{
		LocationID:     uuid.NewString(),
		Name:           input.Name,
		Address:        input.Address,
		Neighborhood:   input.Neighborhood,
		PostalCode:     input.PostalCode,
		City:           input.City,
		Subdivision:    input.Subdivision,
		Region:         input.Region,
		Country:        input.Country,
		Latitude:       input.Latitude,
		Longitude:      input.Longitude,
		LocationRadius: input.LocationRadius,
	}

	if err := s.db.WithContext(ctx).Create(&loc).Error; err != nil {
		return nil, err
	}

	s.logger.Info("Location created",
		zap.String("location_id", loc.LocationID),
		zap.String("name", loc.Name))
	return &loc, nil
}

// Update applies a partial edit to an active Location and cascades the
// edited place fields to every referencing entry's denormalized copy, all
// in one transaction.
func (s *Store) Update(ctx context.Context, id string, upd LocationUpdate) (*models.Location, error) {
	if upd.Name != nil && *upd.Name == "" {
		return nil, errs.Validationf("location name cannot be cleared")
	}

	var updated models.Location
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var loc models.Location
		if err := tx.Where("location_id = ? AND deleted_at IS NULL", id).First(&loc).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NotFoundf("location %s", id)
			}
			return err
		}

		locValues, entryValues := buildUpdateValues(upd)
		if len(locValues) == 0 {
			updated = loc
			return nil
		}
		locValues["updated_at"] = time.Now().UTC()

		if err := tx.Model(&models.Location{}).
			Where("location_id = ?", id).
			Updates(locValues).Error; err != nil {
			return err
		}

		// Cascade only the place fields that actually changed; entry GPS and
		// radius are the entry's own.
		if len(entryValues) > 0 {
			if err := tx.Model(&models.Entry{}).
				Where("location_id = ?", id).
				Updates(entryValues).Error; err != nil {
				return err
			}
		}

		return tx.Where("location_id = ?", id).First(&updated).Error
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// UpdateName renames a Location, cascading to referencing entries.
func (s *Store) UpdateName(ctx context.Context, id, name string) (*models.Location, error) {
	return s.Update(ctx, id, LocationUpdate{Name: &name})
}

// Delete soft-deletes a Location and nulls the link on every referencing
// entry. The entries' denormalized place fields are untouched, so their
// displayable data survives the delete.
func (s *Store) Delete(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()
		res := tx.Model(&models.Location{}).
			Where("location_id = ? AND deleted_at IS NULL", id).
			Updates(map[string]any{"deleted_at": &now, "updated_at": now})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errs.NotFoundf("location %s", id)
		}

		return tx.Model(&models.Entry{}).
			Where("location_id = ?", id).
			Update("location_id", nil).Error
	})
	if err == nil {
		s.logger.Info("Location deleted", zap.String("location_id", id))
	}
	return err
}

// buildUpdateValues translates a LocationUpdate into location column values
// and the corresponding entry cascade values. An empty string on a nullable
// field clears it to null.
func buildUpdateValues(upd LocationUpdate) (locValues, entryValues map[string]any) {
	locValues = make(map[string]any)
	entryValues = make(map[string]any)

	if upd.Name != nil {
		locValues["name"] = *upd.Name
		entryValues["place_name"] = *upd.Name
	}

	nullable := []struct {
		column  string
		value   *string
		cascade bool
	}{
		{"address", upd.Address, true},
		{"neighborhood", upd.Neighborhood, true},
		{"postal_code", upd.PostalCode, true},
		{"city", upd.City, true},
		{"subdivision", upd.Subdivision, true},
		{"region", upd.Region, true},
		{"country", upd.Country, true},
	}
	for _, f := range nullable {
		if f.value == nil {
			continue
		}
		var v any
		if *f.value != "" {
			v = *f.value
		}
		locValues[f.column] = v
		if f.cascade {
			entryValues[f.column] = v
		}
	}

	if upd.Latitude != nil {
		locValues["latitude"] = *upd.Latitude
	}
	if upd.Longitude != nil {
		locValues["longitude"] = *upd.Longitude
	}
	if upd.LocationRadius != nil {
		locValues["location_radius"] = *upd.LocationRadius
	}

	return locValues, entryValues
}
