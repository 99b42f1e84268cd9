package locations

import (
	"context"
	"sort"

	"journal-locations/feature/locations/models"

	"gorm.io/gorm"
)

// Index is the pure read model that groups unlinked entries. It never
// writes; its results can be stale by the time a caller acts on them, which
// is why every mutation re-validates against current rows.
type Index struct {
	db *gorm.DB
}

// NewIndex creates an entry place index.
func NewIndex(db *gorm.DB) *Index {
	return &Index{db: db}
}

// EntryOnlyGroups buckets unlinked, GPS-only entries (no place name) by
// coarse geography, carrying a count and the group centroid.
func (ix *Index) EntryOnlyGroups(ctx context.Context) ([]models.EntryOnlyLocationGroup, error) {
	var entries []models.Entry
	err := ix.db.WithContext(ctx).
		Where("location_id IS NULL").
		Where("entry_latitude IS NOT NULL AND entry_longitude IS NOT NULL").
		Where("place_name IS NULL OR place_name = ''").
		Order("created_at ASC, entry_id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	type bucket struct {
		group  models.EntryOnlyLocationGroup
		sumLat float64
		sumLng float64
	}

	buckets := make(map[string]*bucket)
	order := make([]string, 0)
	for i := range entries {
		e := &entries[i]
		key := regionKey(e.City, e.Region, e.Country)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{group: models.EntryOnlyLocationGroup{
				City:    e.City,
				Region:  e.Region,
				Country: e.Country,
			}}
			buckets[key] = b
			order = append(order, key)
		}
		b.group.EntryCount++
		b.sumLat += *e.EntryLatitude
		b.sumLng += *e.EntryLongitude
	}

	groups := make([]models.EntryOnlyLocationGroup, 0, len(buckets))
	for _, key := range order {
		b := buckets[key]
		b.group.Latitude = b.sumLat / float64(b.group.EntryCount)
		b.group.Longitude = b.sumLng / float64(b.group.EntryCount)
		groups = append(groups, b.group)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].EntryCount != groups[j].EntryCount {
			return groups[i].EntryCount > groups[j].EntryCount
		}
		return regionKey(groups[i].City, groups[i].Region, groups[i].Country) <
			regionKey(groups[j].City, groups[j].Region, groups[j].Country)
	})
	return groups, nil
}

// EntryDerivedPlaces groups unlinked, named entries by place signature and
// elects a representative field set per group for display and promotion.
func (ix *Index) EntryDerivedPlaces(ctx context.Context) ([]models.EntryDerivedPlace, error) {
	entries, err := ix.unlinkedNamedEntries(ctx)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]*models.Entry)
	order := make([]string, 0)
	for i := range entries {
		e := &entries[i]
		key := models.SignatureOf(e).Key()
		if _, ok := grouped[key]; !ok {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], e)
	}

	places := make([]models.EntryDerivedPlace, 0, len(grouped))
	for _, key := range order {
		group := grouped[key]
		places = append(places, models.EntryDerivedPlace{
			Signature:      models.SignatureOf(group[0]),
			Representative: electRepresentative(group),
			EntryCount:     len(group),
		})
	}

	sort.SliceStable(places, func(i, j int) bool {
		if places[i].EntryCount != places[j].EntryCount {
			return places[i].EntryCount > places[j].EntryCount
		}
		return places[i].Signature.Key() < places[j].Signature.Key()
	})
	return places, nil
}

func (ix *Index) unlinkedNamedEntries(ctx context.Context) ([]models.Entry, error) {
	var entries []models.Entry
	err := ix.db.WithContext(ctx).
		Where("location_id IS NULL").
		Where("place_name IS NOT NULL AND place_name != ''").
		Order("created_at ASC, entry_id ASC").
		Find(&entries).Error
	return entries, err
}

// electRepresentative picks, per field, the most frequent non-null value
// across the group's entries, ties broken by the earliest entry (input is
// already in creation order). The centroid of GPS-carrying entries stands
// in for the place coordinate; the radius election keeps the widest value
// so promotion never narrows anyone's privacy radius.
func electRepresentative(group []*models.Entry) models.PlaceFields {
	rep := models.PlaceFields{
		Address:      mostFrequent(group, func(e *models.Entry) *string { return e.Address }),
		Neighborhood: mostFrequent(group, func(e *models.Entry) *string { return e.Neighborhood }),
		PostalCode:   mostFrequent(group, func(e *models.Entry) *string { return e.PostalCode }),
		City:         mostFrequent(group, func(e *models.Entry) *string { return e.City }),
		Subdivision:  mostFrequent(group, func(e *models.Entry) *string { return e.Subdivision }),
		Region:       mostFrequent(group, func(e *models.Entry) *string { return e.Region }),
		Country:      mostFrequent(group, func(e *models.Entry) *string { return e.Country }),
	}

	if name := mostFrequent(group, func(e *models.Entry) *string { return e.PlaceName }); name != nil {
		rep.Name = *name
	}

	var sumLat, sumLng float64
	var gpsCount int
	for _, e := range group {
		if e.HasGPS() {
			sumLat += *e.EntryLatitude
			sumLng += *e.EntryLongitude
			gpsCount++
		}
		if e.LocationRadius != nil {
			if rep.LocationRadius == nil || *e.LocationRadius > *rep.LocationRadius {
				rep.LocationRadius = e.LocationRadius
			}
		}
	}
	if gpsCount > 0 {
		lat := sumLat / float64(gpsCount)
		lng := sumLng / float64(gpsCount)
		rep.Latitude = &lat
		rep.Longitude = &lng
	}

	return rep
}

func mostFrequent(group []*models.Entry, get func(*models.Entry) *string) *string {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	for i, e := range group {
		v := get(e)
		if v == nil || *v == "" {
			continue
		}
		counts[*v]++
		if _, ok := firstSeen[*v]; !ok {
			firstSeen[*v] = i
		}
	}
	if len(counts) == 0 {
		return nil
	}

	var best string
	bestCount := -1
	for v, n := range counts {
		if n > bestCount || (n == bestCount && firstSeen[v] < firstSeen[best]) {
			best, bestCount = v, n
		}
	}
	return &best
}

// regionKey builds a null-aware bucket key over (city, region, country).
func regionKey(city, region, country *string) string {
	encode := func(s *string) string {
		if s == nil {
			return "\x00"
		}
		return "v" + *s
	}
	return encode(city) + "\x1f" + encode(region) + "\x1f" + encode(country)
}
