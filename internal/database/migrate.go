package database

import (
	"embed"
	"errors"
	"fmt"

	"github.com/alexivanou/restcountries/internal/config"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrations embed.FS

// NewMigrate builds a migrate instance for db using the embedded migrations of dbType
func NewMigrate(db *sqlx.DB, dbType config.DBType) (*migrate.Migrate, error) {
	dir := "migrations/sqlite"
	name := "sqlite3"
	var (
		driver database.Driver
		err    error
	)

	if dbType == config.DBTypePostgreSQL {
		dir = "migrations/postgres"
		name = "pgx5"
		driver, err = pgxmigrate.WithInstance(db.DB, &pgxmigrate.Config{})
	} else {
		// Use driver instance directly to avoid DSN parsing issues with in-memory SQLite
		driver, err = sqlite3.WithInstance(db.DB, &sqlite3.Config{})
	}
	if err != nil {
		return nil, fmt.Errorf("could not create %s driver: %w", name, err)
	}

	src, err := iofs.New(migrations, dir)
	if err != nil {
		return nil, fmt.Errorf("could not open migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, name, driver)
	if err != nil {
		return nil, fmt.Errorf("could not create migrate instance: %w", err)
	}
	return m, nil
}

// Migrate applies every pending up migration
func Migrate(db *sqlx.DB, dbType config.DBType) error {
	m, err := NewMigrate(db, dbType)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up failed: %w", err)
	}
	return nil
}
