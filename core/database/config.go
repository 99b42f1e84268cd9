package database

// Config holds configuration for the database connection.
type Config struct {
	// Driver is the database driver (sqlite, mysql). A personal single-device
	// install uses sqlite; mysql serves hosted web deployments.
	Driver string `mapstructure:"driver" default:"sqlite"`
	// Path is the SQLite database file path. ":memory:" opens a throwaway
	// in-memory database.
	Path string `mapstructure:"path" default:"journal.db"`
	// Host is the database host (mysql only).
	Host string `mapstructure:"host" default:"localhost"`
	// Port is the database port (mysql only).
	Port int `mapstructure:"port" default:"3306"`
	// User is the database user (mysql only).
	User string `mapstructure:"user" default:"root"`
	// Password is the database password (mysql only).
	Password string `mapstructure:"password" default:""`
	// Name is the database name (mysql only).
	Name string `mapstructure:"name" default:"journal"`
	// TimeoutSeconds is the connection and I/O timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
