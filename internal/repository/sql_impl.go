package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alexivanou/restcountries/internal/model"
	"github.com/jmoiron/sqlx"
)

// Rows are keyed by position so reading them back restores declaration order.
const defaultBatchSize = 100

type countryRow struct {
	Position     int    `db:"position"`
	CCA2         string `db:"cca2"`
	CCA3         string `db:"cca3"`
	NameCommon   string `db:"name_common"`
	NameOfficial string `db:"name_official"`
	Region       string `db:"region"`
	Population   int64  `db:"population"`
	Data         string `db:"data"`
}

type stateRow struct {
	Position int `db:"position"`
	model.State
}

type cityRow struct {
	Position int `db:"position"`
	model.City
}

type countryRepository struct {
	db        *sqlx.DB
	batchSize int
}

func (r *countryRepository) ListCountries(ctx context.Context) ([]model.Country, error) {
	var rows []countryRow
	if err := r.db.SelectContext(ctx, &rows, "SELECT * FROM countries ORDER BY position"); err != nil {
		return nil, fmt.Errorf("failed to list countries: %w", err)
	}

	countries := make([]model.Country, 0, len(rows))
	for _, row := range rows {
		var c model.Country
		if err := json.Unmarshal([]byte(row.Data), &c); err != nil {
			return nil, fmt.Errorf("failed to decode country %s: %w", row.CCA2, err)
		}
		countries = append(countries, c)
	}
	return countries, nil
}

func (r *countryRepository) CountCountries(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM countries"); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *countryRepository) BulkInsertCountries(ctx context.Context, countries []model.Country) error {
	rows := make([]countryRow, 0, len(countries))
	for i, c := range countries {
		data, err := json.Marshal(c)
		if err != nil {
			return fmt.Errorf("failed to encode country %s: %w", c.CCA2, err)
		}
		rows = append(rows, countryRow{
			Position:     i,
			CCA2:         c.CCA2,
			CCA3:         c.CCA3,
			NameCommon:   c.Name.Common,
			NameOfficial: c.Name.Official,
			Region:       c.Region,
			Population:   c.Population,
			Data:         string(data),
		})
	}

	return insertChunks(ctx, r.db, `
		INSERT INTO countries (position, cca2, cca3, name_common, name_official, region, population, data)
		VALUES (:position, :cca2, :cca3, :name_common, :name_official, :region, :population, :data)`,
		rows, r.batchSize)
}

type locationRepository struct {
	db        *sqlx.DB
	batchSize int
}

func (r *locationRepository) ListStates(ctx context.Context) ([]model.State, error) {
	var states []model.State
	q := "SELECT country_code, code, name FROM states ORDER BY position"
	if err := r.db.SelectContext(ctx, &states, q); err != nil {
		return nil, fmt.Errorf("failed to list states: %w", err)
	}
	return states, nil
}

func (r *locationRepository) ListCities(ctx context.Context) ([]model.City, error) {
	var cities []model.City
	q := "SELECT country_code, state_code, name, lat, lon FROM cities ORDER BY position"
	if err := r.db.SelectContext(ctx, &cities, q); err != nil {
		return nil, fmt.Errorf("failed to list cities: %w", err)
	}
	return cities, nil
}

func (r *locationRepository) BulkInsertStates(ctx context.Context, states []model.State) error {
	rows := make([]stateRow, len(states))
	for i, s := range states {
		rows[i] = stateRow{Position: i, State: s}
	}
	return insertChunks(ctx, r.db, `
		INSERT INTO states (position, country_code, code, name)
		VALUES (:position, :country_code, :code, :name)`,
		rows, r.batchSize)
}

func (r *locationRepository) BulkInsertCities(ctx context.Context, cities []model.City) error {
	rows := make([]cityRow, len(cities))
	for i, c := range cities {
		rows[i] = cityRow{Position: i, City: c}
	}
	return insertChunks(ctx, r.db, `
		INSERT INTO cities (position, country_code, state_code, name, lat, lon)
		VALUES (:position, :country_code, :state_code, :name, :lat, :lon)`,
		rows, r.batchSize)
}

// insertChunks keeps each statement under SQLite's bound variable limit
func insertChunks[T any](ctx context.Context, db *sqlx.DB, q string, rows []T, size int) error {
	if size <= 0 {
		size = defaultBatchSize
	}
	for i := 0; i < len(rows); i += size {
		end := min(i+size, len(rows))
		if _, err := db.NamedExecContext(ctx, q, rows[i:end]); err != nil {
			return fmt.Errorf("failed to insert rows %d-%d: %w", i, end, err)
		}
	}
	return nil
}
