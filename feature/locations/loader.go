package locations

import (
	"time"

	"journal-locations/core/geocode"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new Locations feature.
func NewFeature(db *gorm.DB, provider geocode.ReverseGeocoder, cfg Config, geocodeTimeout time.Duration, logger *zap.Logger) *Feature {
	svc := NewService(db, provider, cfg, geocodeTimeout, logger)
	h := NewHandler(svc, logger)
	return &Feature{service: svc, handler: h}
}

// Service exposes the feature's service for non-HTTP callers such as CLI
// commands.
func (f *Feature) Service() *Service {
	return f.service
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "locations"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
