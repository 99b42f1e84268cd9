package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "journal.db", cfg.Database.Path)
	assert.Equal(t, 10, cfg.Geocode.TimeoutSeconds)
	assert.InDelta(t, 150, cfg.Locations.SnapRadiusMeters, 0.001)
	assert.InDelta(t, 500, cfg.Locations.DuplicateRadiusMeters, 0.001)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATABASE_DRIVER", "mysql")
	t.Setenv("LOCATIONS_SNAP_RADIUS_METERS", "75")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.InDelta(t, 75, cfg.Locations.SnapRadiusMeters, 0.001)
}
