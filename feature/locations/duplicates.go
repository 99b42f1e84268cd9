package locations

import (
	"context"
	"sort"

	"journal-locations/core/geo"
	"journal-locations/feature/locations/models"

	"gorm.io/gorm"
)

// Detector runs the deterministic, side-effect-free duplicate scan over
// active Locations. Results are recomputed on every call and filtered by
// the user's ignore list; anything a caller acts on must be re-validated at
// write time because the scan can be stale by then.
type Detector struct {
	db     *gorm.DB
	ignore *IgnoreList
	cfg    Config
}

// NewDetector creates a duplicate detector.
func NewDetector(db *gorm.DB, ignore *IgnoreList, cfg Config) *Detector {
	return &Detector{db: db, ignore: ignore, cfg: cfg}
}

// Similarity score weights. Name identity dominates; proximity and shared
// city refine the ranking within a radius.
const (
	nameMatchScore    = 0.6
	proximityMaxScore = 0.3
	sharedCityScore   = 0.1
)

// Suggestions scans all active Locations pairwise and returns ranked merge
// suggestions, highest score first. A pair is a candidate when the
// normalized names match, or when the two are within the configured radius
// and share a city. Dismissed pairs are filtered out.
func (d *Detector) Suggestions(ctx context.Context) ([]models.MergeSuggestion, error) {
	var active []models.Location
	err := d.db.WithContext(ctx).
		Where("deleted_at IS NULL").
		Order("location_id ASC").
		Find(&active).Error
	if err != nil {
		return nil, err
	}

	ignored, err := d.ignore.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	var suggestions []models.MergeSuggestion
	for i := range active {
		for j := i + 1; j < len(active); j++ {
			a, b := &active[i], &active[j]
			if ignored.Contains(a.LocationID, b.LocationID) {
				continue
			}
			if s, ok := d.compare(a, b); ok {
				suggestions = append(suggestions, s)
			}
		}
	}

	// Highest score first; the id pair breaks ties so ranking is stable
	// across runs.
	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].Score != suggestions[j].Score {
			return suggestions[i].Score > suggestions[j].Score
		}
		if suggestions[i].A.LocationID != suggestions[j].A.LocationID {
			return suggestions[i].A.LocationID < suggestions[j].A.LocationID
		}
		return suggestions[i].B.LocationID < suggestions[j].B.LocationID
	})
	return suggestions, nil
}

// compare scores one pair. Input order follows the id-sorted scan, so A is
// always the lexically smaller id.
func (d *Detector) compare(a, b *models.Location) (models.MergeSuggestion, bool) {
	nameMatch := false
	if na, nb := geo.NormalizeName(a.Name), geo.NormalizeName(b.Name); na != "" && na == nb {
		nameMatch = true
	}

	var distance *float64
	if a.HasCoordinates() && b.HasCoordinates() {
		m := geo.DistanceMeters(*a.Latitude, *a.Longitude, *b.Latitude, *b.Longitude)
		distance = &m
	}

	sameCity := a.City != nil && b.City != nil && *a.City != "" && *a.City == *b.City
	nearby := distance != nil && *distance <= d.cfg.DuplicateRadiusMeters

	if !nameMatch && !(nearby && sameCity) {
		return models.MergeSuggestion{}, false
	}

	score := 0.0
	reason := ""
	if nameMatch {
		score += nameMatchScore
		reason = "same name"
	}
	if nearby {
		// Closer pairs score higher, linearly up to the radius.
		score += proximityMaxScore * (1 - *distance/d.cfg.DuplicateRadiusMeters)
		if reason != "" {
			reason += ", nearby"
		} else {
			reason = "nearby"
		}
	}
	if sameCity {
		score += sharedCityScore
		reason += ", same city"
	}

	return models.MergeSuggestion{
		A:              *a,
		B:              *b,
		Score:          score,
		DistanceMeters: distance,
		Reason:         reason,
	}, true
}
