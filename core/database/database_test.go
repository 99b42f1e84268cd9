package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect(t *testing.T) {
	t.Run("SQLite In-Memory", func(t *testing.T) {
		db, err := Connect(Config{Driver: "sqlite", Path: ":memory:"})
		require.NoError(t, err)
		require.NotNil(t, db)

		// Foreign keys must be enforced for the cascade semantics the
		// locations engine depends on.
		var fk int
		err = db.Raw("PRAGMA foreign_keys").Scan(&fk).Error
		assert.NoError(t, err)
		assert.Equal(t, 1, fk)
	})

	t.Run("Empty Driver Defaults To SQLite", func(t *testing.T) {
		db, err := Connect(Config{Path: ":memory:"})
		assert.NoError(t, err)
		assert.NotNil(t, db)
	})

	t.Run("Unsupported Driver", func(t *testing.T) {
		db, err := Connect(Config{Driver: "postgres"})
		assert.Error(t, err)
		assert.Nil(t, db)
	})

	t.Run("Invalid MySQL Connection", func(t *testing.T) {
		cfg := Config{
			Driver:         "mysql",
			Host:           "localhost",
			Port:           9999, // Unused port
			User:           "root",
			Password:       "wrongpassword",
			Name:           "journal",
			TimeoutSeconds: 1,
		}

		// Connect should fail (timeout or refused).
		db, err := Connect(cfg)
		assert.Error(t, err)
		assert.Nil(t, db)
	})
}
