// Package database provides the data access layer for the catalog.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup (sqlite or postgres), migrations
//	├── bookinstances/   # Book copy CRUD operations
//	├── books/           # Book lookups for pickers
//	├── authors/         # Author persistence
//	└── audit/           # Audit trail storage and retention
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type with domain-specific operations:
//
//	db, err := database.NewDatabase(cfg.Database)
//
//	copies := bookinstances.NewRepository(db.DB)
//	instance, err := copies.GetByID(ctx, id)
//
// Lookups that match nothing return ErrNotFound; check it with errors.Is.
package database
