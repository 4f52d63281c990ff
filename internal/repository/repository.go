package repository

import (
	"context"
	"fmt"

	"github.com/alexivanou/restcountries/internal/config"
	"github.com/alexivanou/restcountries/internal/dataset"
	"github.com/alexivanou/restcountries/internal/model"
	"github.com/jmoiron/sqlx"
)

// CountryRepository defines operations for countries
type CountryRepository interface {
	ListCountries(ctx context.Context) ([]model.Country, error)
	CountCountries(ctx context.Context) (int, error)
	BulkInsertCountries(ctx context.Context, countries []model.Country) error
}

// LocationRepository defines operations for states and cities
type LocationRepository interface {
	ListStates(ctx context.Context) ([]model.State, error)
	ListCities(ctx context.Context) ([]model.City, error)
	BulkInsertStates(ctx context.Context, states []model.State) error
	BulkInsertCities(ctx context.Context, cities []model.City) error
}

// Container holds all repositories
type Container struct {
	Country  CountryRepository
	Location LocationRepository

	db      *sqlx.DB
	dialect dialect
}

// NewRepositories creates repository implementations based on DB type
func NewRepositories(db *sqlx.DB, dbType config.DBType) *Container {
	d := sqliteDialect
	if dbType == config.DBTypePostgreSQL {
		d = postgresDialect
	}

	return &Container{
		Country:  &countryRepository{db: db, batchSize: defaultBatchSize},
		Location: &locationRepository{db: db, batchSize: defaultBatchSize},
		db:       db,
		dialect:  d,
	}
}

// WithBatchSize sets how many rows go into one INSERT statement
func (c *Container) WithBatchSize(n int) *Container {
	if n <= 0 {
		return c
	}
	if r, ok := c.Country.(*countryRepository); ok {
		r.batchSize = n
	}
	if r, ok := c.Location.(*locationRepository); ok {
		r.batchSize = n
	}
	return c
}

// LoadDataset reads the whole dataset back in insertion order
func (c *Container) LoadDataset(ctx context.Context) (*dataset.Dataset, error) {
	countries, err := c.Country.ListCountries(ctx)
	if err != nil {
		return nil, err
	}
	states, err := c.Location.ListStates(ctx)
	if err != nil {
		return nil, err
	}
	cities, err := c.Location.ListCities(ctx)
	if err != nil {
		return nil, err
	}

	ds := &dataset.Dataset{Countries: countries, States: states, Cities: cities}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return ds, nil
}

// SaveDataset inserts every record of ds, countries first so foreign keys resolve.
// States and cities are stored under their country's ISO2 code.
func (c *Container) SaveDataset(ctx context.Context, ds *dataset.Dataset) error {
	ds = ds.WithISO2Owners()
	if err := c.Country.BulkInsertCountries(ctx, ds.Countries); err != nil {
		return err
	}
	if err := c.Location.BulkInsertStates(ctx, ds.States); err != nil {
		return err
	}
	return c.Location.BulkInsertCities(ctx, ds.Cities)
}

// Reset removes every row, children first
func (c *Container) Reset(ctx context.Context) error {
	for _, q := range c.dialect.reset {
		if _, err := c.db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("failed to reset %s tables: %w", c.dialect.name, err)
		}
	}
	return nil
}

// IsDatabaseEmpty reports whether no country has been seeded yet.
// A missing countries table counts as empty; any other failure is returned.
func (c *Container) IsDatabaseEmpty(ctx context.Context) (bool, error) {
	count, err := c.Country.CountCountries(ctx)
	if err != nil {
		if c.dialect.missingTable(err) {
			return true, nil
		}
		return false, fmt.Errorf("failed to count countries: %w", err)
	}
	return count == 0, nil
}
