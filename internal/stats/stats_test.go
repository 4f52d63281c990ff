package stats

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/alexivanou/restcountries/internal/config"
	"github.com/alexivanou/restcountries/internal/database"
	"github.com/alexivanou/restcountries/internal/dataset"
	"github.com/alexivanou/restcountries/internal/repository"
	"github.com/alexivanou/restcountries/internal/store"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) (*sqlx.DB, config.DBConfig) {
	cfg := config.DBConfig{Type: config.DBTypeMemory, Name: fmt.Sprintf("stats_%d", rand.Int())}
	db, err := database.Connect(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.Migrate(db, cfg.Type))
	return db, cfg
}

func bundledStore(t *testing.T) (*store.Store, *dataset.Dataset) {
	ds, err := dataset.Bundled()
	require.NoError(t, err)
	return store.New(ds, nil, nil), ds
}

func TestCollector_Collect(t *testing.T) {
	db, cfg := setupTestDB(t)
	ctx := context.Background()

	st, ds := bundledStore(t)
	require.NoError(t, repository.NewRepositories(db, cfg.Type).SaveDataset(ctx, ds))

	collector := NewCollector(st, db, cfg)

	stats, err := collector.Collect(ctx)
	require.NoError(t, err)

	assert.Equal(t, len(ds.Countries), stats.Dataset.Countries)
	assert.Equal(t, len(ds.States), stats.Dataset.States)
	assert.Equal(t, len(ds.Cities), stats.Dataset.Cities)
	assert.Less(t, stats.Dataset.CitiesWithCoordinates, stats.Dataset.Cities)
	assert.Greater(t, stats.Dataset.TranslationLanguages, 0)

	require.NotNil(t, stats.Database)
	assert.Equal(t, "memory", stats.Database.Type)
	assert.Equal(t, int64(len(ds.Countries)+len(ds.States)+len(ds.Cities)), stats.Database.TotalRecords)

	var citiesCount int64
	for _, ts := range stats.Database.TableStats {
		if ts.Name == "cities" {
			citiesCount = ts.RowCount
		}
	}
	assert.Equal(t, int64(len(ds.Cities)), citiesCount)

	assert.Greater(t, stats.Memory.Alloc, uint64(0))
	assert.GreaterOrEqual(t, stats.Runtime.NumGoroutines, 1)

	stats2, err := collector.Collect(ctx)
	require.NoError(t, err)
	assert.Equal(t, stats.Memory.Alloc, stats2.Memory.Alloc)
}

func TestCollector_EmptyDB(t *testing.T) {
	db, cfg := setupTestDB(t)
	st, _ := bundledStore(t)

	stats, err := NewCollector(st, db, cfg).Collect(context.Background())
	require.NoError(t, err)

	require.NotNil(t, stats.Database)
	assert.Equal(t, int64(0), stats.Database.TotalRecords)
}

func TestCollector_WithoutDB(t *testing.T) {
	st, ds := bundledStore(t)
	st.Swap(ds)

	stats, err := NewCollector(st, nil, config.DBConfig{}).Collect(context.Background())
	require.NoError(t, err)

	assert.Nil(t, stats.Database)
	assert.Equal(t, int64(1), stats.Dataset.Reloads)
	assert.Equal(t, st.Snapshot().BuiltAt, stats.Dataset.BuiltAt)
}
