package database

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func TestGetTableColumns(t *testing.T) {
	db, err := Connect(Config{Driver: "sqlite", Path: ":memory:"})
	require.NoError(t, err)
	require.NotNil(t, db)

	err = db.Exec("CREATE TABLE locations (location_id TEXT PRIMARY KEY, name TEXT, latitude REAL)").Error
	require.NoError(t, err)

	columns, err := GetTableColumns(db, "locations")
	assert.NoError(t, err)
	assert.Len(t, columns, 3)

	colMap := make(map[string]string)
	for _, col := range columns {
		colMap[col.Field] = col.Type
	}

	assert.Equal(t, "text", colMap["location_id"])
	assert.Equal(t, "text", colMap["name"])
	assert.Equal(t, "real", colMap["latitude"])

	// PRAGMA table_info yields an empty result, not an error, for a table
	// that does not exist.
	cols, err := GetTableColumns(db, "non_existent")
	assert.NoError(t, err)
	assert.Empty(t, cols)
}

func TestGetTableColumnsMySQL(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	})
	db, err := gorm.Open(dialector, &gorm.Config{})
	require.NoError(t, err)

	rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
		AddRow("Location_ID", "VARCHAR(36)", "NO", "PRI", nil, "").
		AddRow("Name", "VARCHAR(255)", "NO", "", nil, "")
	mock.ExpectQuery("SHOW COLUMNS FROM `locations`").WillReturnRows(rows)

	columns, err := GetTableColumns(db, "locations")
	assert.NoError(t, err)
	require.Len(t, columns, 2)

	// Field and type names come back lowercased regardless of dialect.
	assert.Equal(t, "location_id", columns[0].Field)
	assert.Equal(t, "varchar(36)", columns[0].Type)
	assert.Equal(t, "name", columns[1].Field)

	assert.NoError(t, mock.ExpectationsWereMet())
}
