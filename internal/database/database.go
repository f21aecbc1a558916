package database

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ssssstella/locallibrary/internal/config"
	"github.com/ssssstella/locallibrary/internal/entities"
)

// ErrNotFound is returned by repositories when no record matches the lookup.
var ErrNotFound = errors.New("record not found")

// TranslateError maps driver-level lookup misses to ErrNotFound.
func TranslateError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

type Database struct {
	DB     *gorm.DB
	Driver string
}

func NewDatabase(cfg config.Database) (*Database, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: newGormLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Auto-migrate all entities
	err = db.AutoMigrate(
		&entities.Author{},
		&entities.Book{},
		&entities.BookInstance{},
		&entities.AuditEvent{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Info().Str("driver", driverName(cfg)).Msg("Database initialized")

	return &Database{DB: db, Driver: driverName(cfg)}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// IsSQLite reports whether the catalog lives in a sqlite file.
func (d *Database) IsSQLite() bool {
	return d.Driver == config.DriverSQLite
}

func driverName(cfg config.Database) string {
	if cfg.Driver == "" {
		return config.DriverSQLite
	}
	return cfg.Driver
}

func dialectorFor(cfg config.Database) (gorm.Dialector, error) {
	switch driverName(cfg) {
	case config.DriverSQLite:
		if cfg.Path == "" {
			return nil, errors.New("database path is required for sqlite")
		}
		return sqlite.Open(cfg.Path), nil
	case config.DriverPostgres:
		if cfg.DSN == "" {
			return nil, errors.New("database DSN is required for postgres")
		}
		return postgres.Open(cfg.DSN), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// newGormLogger routes gorm's SQL log through zerolog at the global level.
func newGormLogger() logger.Interface {
	level := logger.Warn
	switch zerolog.GlobalLevel() {
	case zerolog.TraceLevel, zerolog.DebugLevel:
		level = logger.Info
	case zerolog.ErrorLevel, zerolog.FatalLevel, zerolog.PanicLevel:
		level = logger.Error
	case zerolog.Disabled:
		level = logger.Silent
	}

	gormLog := log.Logger.With().Str("component", "gorm").Logger()
	return logger.New(&gormLog, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
	})
}
