// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, migrations
//	├── catalog/         # Categories, authors, publishers, books, editions
//	├── members/         # Member profiles
//	└── issues/          # IssuedBook queries and filters
//
// Each sub-package provides a Repository type with domain-specific
// operations:
//
//	db, err := database.NewDatabase("./librarium.db")
//	catalogRepo := catalog.NewRepository(db.DB)
//	book, err := catalogRepo.BookByID(123)
//
// Status transitions on issued books go through the circulation service,
// never through these repositories: the repositories read, the service
// writes.
package database
