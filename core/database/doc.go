// Package database handles database connections and schema inspection.
//
// It wraps GORM connection setup for the two supported drivers: SQLite for
// single-device personal installs (the default) and MySQL for hosted web
// deployments. The locations engine assumes per-row atomic updates from
// whichever driver is active; both provide that.
//
// # Connect
//
// Connect dispatches on Config.Driver and returns a ready *gorm.DB. SQLite
// connections get foreign-key enforcement enabled; MySQL connections get
// pooling limits and a verification ping.
//
// # Schema Inspection
//
// GetTableColumns retrieves column definitions for a table in a
// dialect-aware way (PRAGMA table_info on SQLite, SHOW COLUMNS on MySQL).
// The db inspection CLI command uses it for operator debugging.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
package database
