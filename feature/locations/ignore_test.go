package locations_test

import (
	"context"
	"testing"

	"journal-locations/core/errs"
	"journal-locations/feature/locations"
	"journal-locations/feature/locations/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDismissIsCommutativeAndIdempotent(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	a, err := svc.CreateLocation(ctx, locations.LocationInput{Name: "A"})
	require.NoError(t, err)
	b, err := svc.CreateLocation(ctx, locations.LocationInput{Name: "B"})
	require.NoError(t, err)

	require.NoError(t, svc.DismissMergeSuggestion(ctx, b.LocationID, a.LocationID))
	// Same pair again, the other way round.
	require.NoError(t, svc.DismissMergeSuggestion(ctx, a.LocationID, b.LocationID))

	var count int64
	require.NoError(t, db.Model(&models.IgnoredPair{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var pair models.IgnoredPair
	require.NoError(t, db.First(&pair).Error)
	x, y := models.CanonicalPair(a.LocationID, b.LocationID)
	assert.Equal(t, x, pair.LocationA)
	assert.Equal(t, y, pair.LocationB)
}

func TestDismissValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	err := svc.DismissMergeSuggestion(ctx, "", "x")
	assert.True(t, errs.Is(err, errs.KindValidation))

	err = svc.DismissMergeSuggestion(ctx, "x", "x")
	assert.True(t, errs.Is(err, errs.KindValidation))
}

func TestPairSetContainsEitherOrder(t *testing.T) {
	set := make(models.PairSet)
	set.Add("b", "a")

	assert.True(t, set.Contains("a", "b"))
	assert.True(t, set.Contains("b", "a"))
	assert.False(t, set.Contains("a", "c"))
}
