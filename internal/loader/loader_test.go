package loader

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/alexivanou/restcountries/internal/config"
	"github.com/alexivanou/restcountries/internal/database"
	"github.com/alexivanou/restcountries/internal/dataset"
	"github.com/alexivanou/restcountries/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupRepos(t *testing.T) *repository.Container {
	cfg := config.DBConfig{Type: config.DBTypeMemory, Name: fmt.Sprintf("loader_%d", rand.Int())}
	db, err := database.Connect(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db, cfg.Type))
	return repository.NewRepositories(db, cfg.Type)
}

func TestNew_Embedded(t *testing.T) {
	load, err := New(config.DatasetConfig{Source: config.DatasetEmbedded}, nil)
	require.NoError(t, err)

	ds, err := load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Afghanistan", ds.Countries[0].Name.Common)
}

func TestNew_Dir(t *testing.T) {
	load, err := New(config.DatasetConfig{Source: config.DatasetDir, Dir: "../dataset/data"}, nil)
	require.NoError(t, err)

	ds, err := load(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, ds.Countries)

	load, err = New(config.DatasetConfig{Source: config.DatasetDir, Dir: t.TempDir()}, nil)
	require.NoError(t, err)
	_, err = load(context.Background())
	assert.Error(t, err)
}

func TestNew_Database(t *testing.T) {
	_, err := New(config.DatasetConfig{Source: config.DatasetDatabase}, nil)
	require.Error(t, err)

	repos := setupRepos(t)
	bundled, err := dataset.Bundled()
	require.NoError(t, err)

	ctx := context.Background()
	seeded, err := SeedIfEmpty(ctx, repos, bundled, zap.NewNop())
	require.NoError(t, err)
	assert.True(t, seeded)

	// second call is a no-op
	seeded, err = SeedIfEmpty(ctx, repos, bundled, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, seeded)

	load, err := New(config.DatasetConfig{Source: config.DatasetDatabase}, repos)
	require.NoError(t, err)
	ds, err := load(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(bundled.Countries), len(ds.Countries))
}

func TestNew_Unknown(t *testing.T) {
	_, err := New(config.DatasetConfig{Source: "s3"}, nil)
	assert.Error(t, err)
}
