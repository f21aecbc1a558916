package config

const (
	// DefaultDatabasePath is the default path for the sqlite catalog database
	DefaultDatabasePath = "./locallibrary.db"

	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)
