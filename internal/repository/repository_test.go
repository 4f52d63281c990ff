package repository

import (
	"context"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/alexivanou/restcountries/internal/config"
	"github.com/alexivanou/restcountries/internal/database"
	"github.com/alexivanou/restcountries/internal/dataset"
	"github.com/alexivanou/restcountries/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepo(t *testing.T) *Container {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	cfg := config.DBConfig{Type: config.DBTypeMemory, Name: fmt.Sprintf("repo_%d", rng.Int())}

	db, err := database.Connect(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.Migrate(db, config.DBTypeMemory))

	return NewRepositories(db, config.DBTypeMemory)
}

func TestContainer_RoundTrip(t *testing.T) {
	repos := setupRepo(t)
	ctx := context.Background()

	ds, err := dataset.Bundled()
	require.NoError(t, err)

	empty, err := repos.IsDatabaseEmpty(ctx)
	require.NoError(t, err)
	assert.True(t, empty)

	require.NoError(t, repos.SaveDataset(ctx, ds))

	empty, err = repos.IsDatabaseEmpty(ctx)
	require.NoError(t, err)
	assert.False(t, empty)

	loaded, err := repos.LoadDataset(ctx)
	require.NoError(t, err)

	require.Len(t, loaded.Countries, len(ds.Countries))
	assert.Equal(t, "Afghanistan", loaded.Countries[0].Name.Common)
	assert.Equal(t, ds.Countries, loaded.Countries)
	assert.Equal(t, ds.States, loaded.States)
	assert.Equal(t, ds.Cities, loaded.Cities)
}

func TestLocationRepository_OptionalCoordinates(t *testing.T) {
	repos := setupRepo(t)
	ctx := context.Background()

	lat, lon := 48.85341, 2.3488
	require.NoError(t, repos.Country.BulkInsertCountries(ctx, []model.Country{
		{CCA2: "FR", CCA3: "FRA", Name: model.CountryName{Common: "France", Official: "French Republic"}},
	}))
	require.NoError(t, repos.Location.BulkInsertStates(ctx, []model.State{
		{Code: "IDF", Name: "Île-de-France", CountryCode: "FR"},
	}))
	require.NoError(t, repos.Location.BulkInsertCities(ctx, []model.City{
		{Name: "Paris", StateCode: "IDF", CountryCode: "FR", Latitude: &lat, Longitude: &lon},
		{Name: "Versailles", StateCode: "IDF", CountryCode: "FR"},
	}))

	cities, err := repos.Location.ListCities(ctx)
	require.NoError(t, err)
	require.Len(t, cities, 2)

	assert.True(t, cities[0].HasCoordinates())
	assert.InDelta(t, lat, *cities[0].Latitude, 1e-9)
	assert.False(t, cities[1].HasCoordinates())
}

func TestContainer_Reset(t *testing.T) {
	repos := setupRepo(t)
	ctx := context.Background()

	ds, err := dataset.Bundled()
	require.NoError(t, err)
	require.NoError(t, repos.SaveDataset(ctx, ds))

	require.NoError(t, repos.Reset(ctx))

	count, err := repos.Country.CountCountries(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	states, err := repos.Location.ListStates(ctx)
	require.NoError(t, err)
	assert.Empty(t, states)
}

func TestContainer_LoadDatasetEmpty(t *testing.T) {
	repos := setupRepo(t)

	_, err := repos.LoadDataset(context.Background())
	assert.Error(t, err)
}

func TestContainer_WithBatchSize(t *testing.T) {
	repos := setupRepo(t).WithBatchSize(7)
	ctx := context.Background()

	ds, err := dataset.Bundled()
	require.NoError(t, err)
	require.Greater(t, len(ds.Cities), 7)

	require.NoError(t, repos.SaveDataset(ctx, ds))

	loaded, err := repos.LoadDataset(ctx)
	require.NoError(t, err)
	assert.Equal(t, ds.Cities, loaded.Cities)
}

func TestContainer_IsDatabaseEmpty(t *testing.T) {
	ctx := context.Background()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	cfg := config.DBConfig{Type: config.DBTypeMemory, Name: fmt.Sprintf("unmigrated_%d", rng.Int())}

	db, err := database.Connect(ctx, cfg)
	require.NoError(t, err)
	repos := NewRepositories(db, config.DBTypeMemory)

	// no schema yet
	empty, err := repos.IsDatabaseEmpty(ctx)
	require.NoError(t, err)
	assert.True(t, empty)

	// a broken connection is an error, not an empty database
	require.NoError(t, db.Close())
	empty, err = repos.IsDatabaseEmpty(ctx)
	require.Error(t, err)
	assert.False(t, empty)
	assert.Contains(t, err.Error(), "failed to count countries")
}

func TestContainer_SaveDatasetISO3Owners(t *testing.T) {
	repos := setupRepo(t)
	ctx := context.Background()

	ds := &dataset.Dataset{
		Countries: []model.Country{{CCA2: "US", CCA3: "USA", Name: model.CountryName{Common: "United States"}}},
		States:    []model.State{{Code: "CA", Name: "California", CountryCode: "USA"}},
		Cities:    []model.City{{Name: "Los Angeles", StateCode: "CA", CountryCode: "usa"}},
	}
	require.NoError(t, repos.SaveDataset(ctx, ds))

	loaded, err := repos.LoadDataset(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.States, 1)
	assert.Equal(t, "US", loaded.States[0].CountryCode)
	require.Len(t, loaded.Cities, 1)
	assert.Equal(t, "US", loaded.Cities[0].CountryCode)

	// the caller's dataset is left as it was
	assert.Equal(t, "USA", ds.States[0].CountryCode)
}
