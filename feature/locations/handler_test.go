package locations_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"journal-locations/feature/locations"
	"journal-locations/feature/locations/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestApp(t *testing.T) (*fiber.App, *locations.Service, *gorm.DB) {
	t.Helper()

	svc, db := newTestService(t)
	app := fiber.New()
	locations.NewHandler(svc, zap.NewNop()).RegisterRoutes(app)
	return app, svc, db
}

func TestHandleCreateAndGetLocation(t *testing.T) {
	app, _, _ := newTestApp(t)

	body := `{"name": "Harbor View", "city": "Hamburg"}`
	req := httptest.NewRequest("POST", "/locations", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created models.Location
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &created))
	assert.Equal(t, "Harbor View", created.Name)

	resp, err = app.Test(httptest.NewRequest("GET", "/locations/"+created.LocationID, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestHandleCreateValidationError(t *testing.T) {
	app, _, _ := newTestApp(t)

	req := httptest.NewRequest("POST", "/locations", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandleGetUnknownLocation(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/locations/nope", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestHandleDeleteLocation(t *testing.T) {
	app, svc, db := newTestApp(t)

	loc, err := svc.CreateLocation(context.Background(), locations.LocationInput{Name: "Doomed"})
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest("DELETE", "/locations/"+loc.LocationID, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.True(t, getLocationRow(t, db, loc.LocationID).IsDeleted())

	// Second delete 404s.
	resp, err = app.Test(httptest.NewRequest("DELETE", "/locations/"+loc.LocationID, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestHandleMergeTwoConflictingInput(t *testing.T) {
	app, svc, _ := newTestApp(t)

	loc, err := svc.CreateLocation(context.Background(), locations.LocationInput{Name: "Only"})
	require.NoError(t, err)

	body := fmt.Sprintf(`{"winner_id": %q, "loser_id": %q}`, loc.LocationID, loc.LocationID)
	req := httptest.NewRequest("POST", "/locations/merge", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandlePromoteStaleGroup(t *testing.T) {
	app, _, _ := newTestApp(t)

	group := models.EntryDerivedPlace{
		Signature:      models.PlaceSignature{PlaceName: strp("Ghost")},
		Representative: models.PlaceFields{Name: "Ghost"},
	}
	raw, err := json.Marshal(group)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/locations/promote", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestHandleSnapJobReturnsSummary(t *testing.T) {
	app, _, db := newTestApp(t)

	seedLocation(t, db, models.Location{
		LocationID: "home", Name: "Home",
		Latitude: f64p(47.3769), Longitude: f64p(8.5417),
	})
	seedEntry(t, db, models.Entry{
		EntryID:       "e1",
		EntryLatitude: f64p(47.37693), EntryLongitude: f64p(8.5417),
	})

	resp, err := app.Test(httptest.NewRequest("POST", "/locations/jobs/snap", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var summary struct {
		Processed int `json:"processed"`
		Succeeded int `json:"succeeded"`
	}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &summary))
	assert.Equal(t, 1, summary.Processed)
	assert.Equal(t, 1, summary.Succeeded)
}
