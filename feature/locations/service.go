package locations

import (
	"context"
	"time"

	"journal-locations/core/errs"
	"journal-locations/core/geocode"
	"journal-locations/feature/locations/models"
	"journal-locations/feature/locations/reconcile"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service is the public API of the location resolution engine, consumed by
// the UI layer over HTTP and by the maintenance CLI. It holds no cache;
// every mutation is expected to trigger caller-side invalidation of cached
// Location and Entry views.
type Service struct {
	db       *gorm.DB
	logger   *zap.Logger
	store    *Store
	index    *Index
	ignore   *IgnoreList
	merger   *Merger
	detector *Detector
	cleaner  *Cleaner
	geocoder *reconcile.Geocoder
	snapper  *reconcile.Snapper
	enricher *reconcile.Enricher
}

// NewService wires the engine's components around one database handle and
// one reverse-geocoding provider.
func NewService(db *gorm.DB, provider geocode.ReverseGeocoder, cfg Config, geocodeTimeout time.Duration, logger *zap.Logger) *Service {
	store := NewStore(db, logger)
	ignore := NewIgnoreList(db, logger)

	return &Service{
		db:       db,
		logger:   logger,
		store:    store,
		index:    NewIndex(db),
		ignore:   ignore,
		merger:   NewMerger(db, cfg, logger),
		detector: NewDetector(db, ignore, cfg),
		cleaner:  NewCleaner(db, logger),
		geocoder: reconcile.NewGeocoder(db, provider, geocodeTimeout, cfg.RetryNoData, logger),
		snapper:  reconcile.NewSnapper(db, cfg.SnapRadiusMeters, logger),
		enricher: reconcile.NewEnricher(db, provider, geocodeTimeout, logger),
	}
}

// Migrate creates or updates the engine's tables.
func (s *Service) Migrate() error {
	return s.db.AutoMigrate(
		&models.Location{},
		&models.Entry{},
		&models.IgnoredPair{},
	)
}

// GetLocations returns all active Locations.
func (s *Service) GetLocations(ctx context.Context) ([]models.Location, error) {
	return s.store.List(ctx)
}

// GetLocationsWithCounts returns all active Locations with live entry counts.
func (s *Service) GetLocationsWithCounts(ctx context.Context) ([]models.LocationWithCount, error) {
	return s.store.ListWithCounts(ctx)
}

// GetLocation returns an active Location, or nil when the id is unknown or
// soft-deleted.
func (s *Service) GetLocation(ctx context.Context, id string) (*models.Location, error) {
	loc, err := s.store.Get(ctx, id)
	if errs.Is(err, errs.KindNotFound) {
		return nil, nil
	}
	return loc, err
}

// GetEntryOnlyLocationGroups returns GPS-only entry clusters by geography.
func (s *Service) GetEntryOnlyLocationGroups(ctx context.Context) ([]models.EntryOnlyLocationGroup, error) {
	return s.index.EntryOnlyGroups(ctx)
}

// GetEntryDerivedPlaces returns promotion candidates grouped by signature.
func (s *Service) GetEntryDerivedPlaces(ctx context.Context) ([]models.EntryDerivedPlace, error) {
	return s.index.EntryDerivedPlaces(ctx)
}

// GetMergeSuggestions returns ranked duplicate suggestions, dismissed pairs
// excluded.
func (s *Service) GetMergeSuggestions(ctx context.Context) ([]models.MergeSuggestion, error) {
	return s.detector.Suggestions(ctx)
}

// GetLocationHealthCounts summarizes outstanding gazetteer work.
func (s *Service) GetLocationHealthCounts(ctx context.Context) (*models.HealthCounts, error) {
	return healthCounts(ctx, s.db, s.detector, s.index)
}

// CreateLocation inserts a Location from explicit user input.
func (s *Service) CreateLocation(ctx context.Context, input LocationInput) (*models.Location, error) {
	return s.store.Create(ctx, input)
}

// UpdateLocation applies a partial edit, cascading place-field changes to
// referencing entries.
func (s *Service) UpdateLocation(ctx context.Context, id string, upd LocationUpdate) (*models.Location, error) {
	return s.store.Update(ctx, id, upd)
}

// UpdateLocationName renames a Location, cascading to referencing entries.
func (s *Service) UpdateLocationName(ctx context.Context, id, name string) (*models.Location, error) {
	return s.store.UpdateName(ctx, id, name)
}

// UpdateLocationDetails edits name and address together, cascading both.
func (s *Service) UpdateLocationDetails(ctx context.Context, id string, name string, address *string) (*models.Location, error) {
	return s.store.Update(ctx, id, LocationUpdate{Name: &name, Address: address})
}

// DeleteLocation soft-deletes a Location, unlinking its entries while
// preserving their denormalized place data.
func (s *Service) DeleteLocation(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// PromoteEntryPlaceToLocation converts an entry-derived place into a
// Location and links its entries.
func (s *Service) PromoteEntryPlaceToLocation(ctx context.Context, group models.EntryDerivedPlace) (*models.Location, error) {
	return s.merger.PromoteEntryPlace(ctx, group)
}

// MergeEntriesToLocation links signature-matching unlinked entries to an
// existing Location.
func (s *Service) MergeEntriesToLocation(ctx context.Context, locationID string, match models.PlaceSignature) (int, error) {
	return s.merger.MergeEntriesToLocation(ctx, locationID, match)
}

// EntryPlaceUpdate carries edits to an entry-derived place's denormalized
// fields. Nil leaves a field unchanged; a pointer to the empty string
// clears it to null.
type EntryPlaceUpdate struct {
	PlaceName    *string `json:"place_name"`
	Address      *string `json:"address"`
	Neighborhood *string `json:"neighborhood"`
	PostalCode   *string `json:"postal_code"`
	City         *string `json:"city"`
	Subdivision  *string `json:"subdivision"`
	Region       *string `json:"region"`
	Country      *string `json:"country"`
}

// UpdateEntryPlaceData edits the denormalized fields of every unlinked
// entry matching the signature. Returns the number of entries updated; zero
// matches is a Conflict (the group went stale).
func (s *Service) UpdateEntryPlaceData(ctx context.Context, match models.PlaceSignature, upd EntryPlaceUpdate) (int, error) {
	values := make(map[string]any)
	set := func(column string, v *string) {
		if v == nil {
			return
		}
		if *v == "" {
			values[column] = nil
		} else {
			values[column] = *v
		}
	}
	set("place_name", upd.PlaceName)
	set("address", upd.Address)
	set("neighborhood", upd.Neighborhood)
	set("postal_code", upd.PostalCode)
	set("city", upd.City)
	set("subdivision", upd.Subdivision)
	set("region", upd.Region)
	set("country", upd.Country)

	if len(values) == 0 {
		return 0, errs.Validationf("no fields to update")
	}

	res := signatureScope(s.db.WithContext(ctx), match).
		Where("location_id IS NULL").
		Updates(values)
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, errs.Conflictf("no unlinked entries match the place group anymore")
	}
	return int(res.RowsAffected), nil
}

// MergeDuplicateLocations runs the automatic exact-duplicate sweep. See
// Merger.MergeDuplicateLocations for the dismissal policy.
func (s *Service) MergeDuplicateLocations(ctx context.Context) (int, error) {
	return s.merger.MergeDuplicateLocations(ctx)
}

// MergeTwoSavedLocations merges loser into winner by explicit user action.
func (s *Service) MergeTwoSavedLocations(ctx context.Context, winnerID, loserID string) error {
	return s.merger.MergeTwoSavedLocations(ctx, winnerID, loserID)
}

// DismissMergeSuggestion permanently suppresses a suggestion pair.
func (s *Service) DismissMergeSuggestion(ctx context.Context, a, b string) error {
	return s.ignore.Dismiss(ctx, a, b)
}

// EnrichLocationHierarchy runs the fill-only-blank enrichment sweep.
func (s *Service) EnrichLocationHierarchy(ctx context.Context, onProgress reconcile.ProgressFunc) (*reconcile.Summary, error) {
	return s.enricher.Run(ctx, onProgress)
}

// EnrichSingleLocation enriches one Location on demand.
func (s *Service) EnrichSingleLocation(ctx context.Context, id string) error {
	return s.enricher.EnrichOne(ctx, id)
}

// SnapEntriesToLocations runs the local snap sweep.
func (s *Service) SnapEntriesToLocations(ctx context.Context, onProgress reconcile.ProgressFunc) (*reconcile.Summary, error) {
	return s.snapper.Run(ctx, onProgress)
}

// GeocodeEntries runs the reverse-geocoding sweep.
func (s *Service) GeocodeEntries(ctx context.Context, onProgress reconcile.ProgressFunc) (*reconcile.Summary, error) {
	return s.geocoder.Run(ctx, onProgress)
}

// DeleteUnusedLocations soft-deletes every zero-reference active Location.
func (s *Service) DeleteUnusedLocations(ctx context.Context) (int, error) {
	return s.cleaner.DeleteUnusedLocations(ctx)
}
