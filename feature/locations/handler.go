package locations

import (
	"journal-locations/core/errs"
	"journal-locations/core/logger"
	"journal-locations/feature/locations/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the locations engine.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the locations routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/locations")

	group.Get("/", h.HandleList)
	group.Get("/counts", h.HandleListWithCounts)
	group.Get("/health", h.HandleHealth)
	group.Get("/entry-groups", h.HandleEntryOnlyGroups)
	group.Get("/entry-places", h.HandleEntryDerivedPlaces)
	group.Get("/suggestions", h.HandleSuggestions)

	group.Post("/", h.HandleCreate)
	group.Get("/:id", h.HandleGet)
	group.Patch("/:id", h.HandleUpdate)
	group.Delete("/:id", h.HandleDelete)

	group.Post("/promote", h.HandlePromote)
	group.Post("/entry-places/update", h.HandleUpdateEntryPlace)
	group.Post("/merge", h.HandleMergeTwo)
	group.Post("/merge-duplicates", h.HandleMergeDuplicates)
	group.Post("/suggestions/dismiss", h.HandleDismiss)
	group.Post("/cleanup", h.HandleCleanup)
	group.Post("/:id/merge-entries", h.HandleMergeEntries)
	group.Post("/:id/enrich", h.HandleEnrichOne)

	jobs := group.Group("/jobs")
	jobs.Post("/geocode", h.HandleGeocodeJob)
	jobs.Post("/snap", h.HandleSnapJob)
	jobs.Post("/enrich", h.HandleEnrichJob)
}

// respondError maps the engine error taxonomy onto HTTP statuses. Untyped
// (store) errors are internal failures.
func (h *Handler) respondError(c *fiber.Ctx, err error) error {
	l := logger.WithRayID(h.logger, c)

	status := fiber.StatusInternalServerError
	switch errs.KindOf(err) {
	case errs.KindValidation:
		status = fiber.StatusBadRequest
	case errs.KindNotFound:
		status = fiber.StatusNotFound
	case errs.KindConflict:
		status = fiber.StatusConflict
	case errs.KindExternalService:
		status = fiber.StatusBadGateway
	}

	if status == fiber.StatusInternalServerError {
		l.Error("Locations request failed", zap.Error(err))
	} else {
		l.Warn("Locations request rejected", zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// HandleList returns all active locations.
// @Summary List Locations
// @Tags locations
// @Produce json
// @Success 200 {array} models.Location
// @Router /locations [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	locs, err := h.service.GetLocations(c.Context())
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(locs)
}

// HandleListWithCounts returns all active locations with entry counts.
// @Summary List Locations With Counts
// @Tags locations
// @Produce json
// @Success 200 {array} models.LocationWithCount
// @Router /locations/counts [get]
func (h *Handler) HandleListWithCounts(c *fiber.Ctx) error {
	locs, err := h.service.GetLocationsWithCounts(c.Context())
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(locs)
}

// HandleHealth returns gazetteer health counters.
// @Summary Location Health Counts
// @Tags locations
// @Produce json
// @Success 200 {object} models.HealthCounts
// @Router /locations/health [get]
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	counts, err := h.service.GetLocationHealthCounts(c.Context())
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(counts)
}

// HandleEntryOnlyGroups returns GPS-only entry clusters.
// @Summary Entry-Only Location Groups
// @Tags locations
// @Produce json
// @Success 200 {array} models.EntryOnlyLocationGroup
// @Router /locations/entry-groups [get]
func (h *Handler) HandleEntryOnlyGroups(c *fiber.Ctx) error {
	groups, err := h.service.GetEntryOnlyLocationGroups(c.Context())
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(groups)
}

// HandleEntryDerivedPlaces returns promotion candidates.
// @Summary Entry-Derived Places
// @Tags locations
// @Produce json
// @Success 200 {array} models.EntryDerivedPlace
// @Router /locations/entry-places [get]
func (h *Handler) HandleEntryDerivedPlaces(c *fiber.Ctx) error {
	places, err := h.service.GetEntryDerivedPlaces(c.Context())
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(places)
}

// HandleSuggestions returns ranked duplicate merge suggestions.
// @Summary Merge Suggestions
// @Tags locations
// @Produce json
// @Success 200 {array} models.MergeSuggestion
// @Router /locations/suggestions [get]
func (h *Handler) HandleSuggestions(c *fiber.Ctx) error {
	suggestions, err := h.service.GetMergeSuggestions(c.Context())
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(suggestions)
}

// HandleGet returns one location, 404 when absent or deleted.
// @Summary Get Location
// @Tags locations
// @Produce json
// @Param id path string true "Location ID"
// @Success 200 {object} models.Location
// @Failure 404 {object} map[string]string
// @Router /locations/{id} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	loc, err := h.service.GetLocation(c.Context(), c.Params("id"))
	if err != nil {
		return h.respondError(c, err)
	}
	if loc == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "location not found"})
	}
	return c.JSON(loc)
}

// HandleCreate creates a location.
// @Summary Create Location
// @Tags locations
// @Accept json
// @Produce json
// @Param input body LocationInput true "Location fields"
// @Success 201 {object} models.Location
// @Router /locations [post]
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	var input LocationInput
	if err := c.BodyParser(&input); err != nil {
		return h.respondError(c, errs.Validationf("invalid request body: %v", err))
	}

	loc, err := h.service.CreateLocation(c.Context(), input)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(loc)
}

// HandleUpdate applies a partial edit with entry cascade.
// @Summary Update Location
// @Tags locations
// @Accept json
// @Produce json
// @Param id path string true "Location ID"
// @Param update body LocationUpdate true "Partial update"
// @Success 200 {object} models.Location
// @Router /locations/{id} [patch]
func (h *Handler) HandleUpdate(c *fiber.Ctx) error {
	var upd LocationUpdate
	if err := c.BodyParser(&upd); err != nil {
		return h.respondError(c, errs.Validationf("invalid request body: %v", err))
	}

	loc, err := h.service.UpdateLocation(c.Context(), c.Params("id"), upd)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(loc)
}

// HandleDelete soft-deletes a location, unlinking its entries.
// @Summary Delete Location
// @Tags locations
// @Param id path string true "Location ID"
// @Success 204
// @Router /locations/{id} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	if err := h.service.DeleteLocation(c.Context(), c.Params("id")); err != nil {
		return h.respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandlePromote converts an entry-derived place into a location.
// @Summary Promote Entry Place
// @Tags locations
// @Accept json
// @Produce json
// @Param group body models.EntryDerivedPlace true "Entry place group"
// @Success 201 {object} models.Location
// @Failure 409 {object} map[string]string
// @Router /locations/promote [post]
func (h *Handler) HandlePromote(c *fiber.Ctx) error {
	var group models.EntryDerivedPlace
	if err := c.BodyParser(&group); err != nil {
		return h.respondError(c, errs.Validationf("invalid request body: %v", err))
	}

	loc, err := h.service.PromoteEntryPlaceToLocation(c.Context(), group)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(loc)
}

// HandleMergeEntries links matching unlinked entries to a location.
// @Summary Merge Entries Into Location
// @Tags locations
// @Accept json
// @Produce json
// @Param id path string true "Location ID"
// @Param match body models.PlaceSignature true "Place signature"
// @Success 200 {object} map[string]int
// @Router /locations/{id}/merge-entries [post]
func (h *Handler) HandleMergeEntries(c *fiber.Ctx) error {
	var match models.PlaceSignature
	if err := c.BodyParser(&match); err != nil {
		return h.respondError(c, errs.Validationf("invalid request body: %v", err))
	}

	linked, err := h.service.MergeEntriesToLocation(c.Context(), c.Params("id"), match)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(fiber.Map{"linked": linked})
}

type updateEntryPlaceRequest struct {
	Match   models.PlaceSignature `json:"match"`
	Updates EntryPlaceUpdate      `json:"updates"`
}

// HandleUpdateEntryPlace edits the denormalized fields of a place group.
// @Summary Update Entry Place Data
// @Tags locations
// @Accept json
// @Produce json
// @Param request body updateEntryPlaceRequest true "Match and updates"
// @Success 200 {object} map[string]int
// @Router /locations/entry-places/update [post]
func (h *Handler) HandleUpdateEntryPlace(c *fiber.Ctx) error {
	var req updateEntryPlaceRequest
	if err := c.BodyParser(&req); err != nil {
		return h.respondError(c, errs.Validationf("invalid request body: %v", err))
	}

	updated, err := h.service.UpdateEntryPlaceData(c.Context(), req.Match, req.Updates)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(fiber.Map{"updated": updated})
}

type mergeTwoRequest struct {
	WinnerID string `json:"winner_id"`
	LoserID  string `json:"loser_id"`
}

// HandleMergeTwo merges loser into winner.
// @Summary Merge Two Saved Locations
// @Tags locations
// @Accept json
// @Param request body mergeTwoRequest true "Winner and loser ids"
// @Success 204
// @Failure 400 {object} map[string]string
// @Router /locations/merge [post]
func (h *Handler) HandleMergeTwo(c *fiber.Ctx) error {
	var req mergeTwoRequest
	if err := c.BodyParser(&req); err != nil {
		return h.respondError(c, errs.Validationf("invalid request body: %v", err))
	}

	if err := h.service.MergeTwoSavedLocations(c.Context(), req.WinnerID, req.LoserID); err != nil {
		return h.respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleMergeDuplicates runs the automatic exact-duplicate sweep.
// @Summary Merge Exact Duplicates
// @Tags locations
// @Produce json
// @Success 200 {object} map[string]int
// @Router /locations/merge-duplicates [post]
func (h *Handler) HandleMergeDuplicates(c *fiber.Ctx) error {
	merged, err := h.service.MergeDuplicateLocations(c.Context())
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(fiber.Map{"merged": merged})
}

type dismissRequest struct {
	LocationA string `json:"location_a"`
	LocationB string `json:"location_b"`
}

// HandleDismiss suppresses a merge suggestion permanently.
// @Summary Dismiss Merge Suggestion
// @Tags locations
// @Accept json
// @Param request body dismissRequest true "Pair to dismiss"
// @Success 204
// @Router /locations/suggestions/dismiss [post]
func (h *Handler) HandleDismiss(c *fiber.Ctx) error {
	var req dismissRequest
	if err := c.BodyParser(&req); err != nil {
		return h.respondError(c, errs.Validationf("invalid request body: %v", err))
	}

	if err := h.service.DismissMergeSuggestion(c.Context(), req.LocationA, req.LocationB); err != nil {
		return h.respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleCleanup soft-deletes all zero-reference locations.
// @Summary Delete Unused Locations
// @Tags locations
// @Produce json
// @Success 200 {object} map[string]int
// @Router /locations/cleanup [post]
func (h *Handler) HandleCleanup(c *fiber.Ctx) error {
	deleted, err := h.service.DeleteUnusedLocations(c.Context())
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(fiber.Map{"deleted": deleted})
}

// HandleEnrichOne enriches a single location's hierarchy.
// @Summary Enrich Single Location
// @Tags locations
// @Param id path string true "Location ID"
// @Success 204
// @Failure 502 {object} map[string]string
// @Router /locations/{id}/enrich [post]
func (h *Handler) HandleEnrichOne(c *fiber.Ctx) error {
	if err := h.service.EnrichSingleLocation(c.Context(), c.Params("id")); err != nil {
		return h.respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleGeocodeJob runs the reverse-geocoding sweep synchronously and
// returns its summary. Sweeps are item-failure tolerant, so a 200 can carry
// nonzero failed counts.
// @Summary Run Geocode Sweep
// @Tags locations
// @Produce json
// @Success 200 {object} reconcile.Summary
// @Router /locations/jobs/geocode [post]
func (h *Handler) HandleGeocodeJob(c *fiber.Ctx) error {
	summary, err := h.service.GeocodeEntries(c.Context(), nil)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(summary)
}

// HandleSnapJob runs the snap sweep.
// @Summary Run Snap Sweep
// @Tags locations
// @Produce json
// @Success 200 {object} reconcile.Summary
// @Router /locations/jobs/snap [post]
func (h *Handler) HandleSnapJob(c *fiber.Ctx) error {
	summary, err := h.service.SnapEntriesToLocations(c.Context(), nil)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(summary)
}

// HandleEnrichJob runs the enrichment sweep.
// @Summary Run Enrichment Sweep
// @Tags locations
// @Produce json
// @Success 200 {object} reconcile.Summary
// @Router /locations/jobs/enrich [post]
func (h *Handler) HandleEnrichJob(c *fiber.Ctx) error {
	summary, err := h.service.EnrichLocationHierarchy(c.Context(), nil)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(summary)
}
