package database

import (
	"errors"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewGormDBFromConfig opens the PostgreSQL connection the service runs on.
// The URL comes straight from the loaded configuration.
func NewGormDBFromConfig(databaseURL string) (*gorm.DB, error) {
	return NewGormDB(databaseURL)
}

// NewGormDB opens a GORM session against PostgreSQL for the given DSN. An
// empty DSN is rejected up front so a misconfigured deploy fails at startup
// rather than on the first query.
func NewGormDB(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, errors.New("database DSN is not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	return db, nil
}
