// Package loader picks where the dataset comes from: the embedded copy, a
// directory on disk or the SQL tables filled by the seeder.
package loader

import (
	"context"
	"fmt"

	"github.com/alexivanou/restcountries/internal/config"
	"github.com/alexivanou/restcountries/internal/dataset"
	"github.com/alexivanou/restcountries/internal/repository"
	"github.com/alexivanou/restcountries/internal/store"
	"go.uber.org/zap"
)

// New returns the loader for cfg.Source. repos is only used by the database source.
func New(cfg config.DatasetConfig, repos *repository.Container) (store.LoaderFunc, error) {
	switch cfg.Source {
	case config.DatasetEmbedded, "":
		return func(context.Context) (*dataset.Dataset, error) {
			return dataset.Bundled()
		}, nil
	case config.DatasetDir:
		dir := cfg.Dir
		return func(context.Context) (*dataset.Dataset, error) {
			return dataset.FromDir(dir)
		}, nil
	case config.DatasetDatabase:
		if repos == nil {
			return nil, fmt.Errorf("dataset source %q needs a database", cfg.Source)
		}
		return repos.LoadDataset, nil
	default:
		return nil, fmt.Errorf("unknown dataset source %q", cfg.Source)
	}
}

// SeedIfEmpty fills an empty database with ds
func SeedIfEmpty(ctx context.Context, repos *repository.Container, ds *dataset.Dataset, logger *zap.Logger) (bool, error) {
	isEmpty, err := repos.IsDatabaseEmpty(ctx)
	if err != nil {
		return false, err
	}
	if !isEmpty {
		return false, nil
	}

	logger.Info("Database is empty, auto-seeding data...",
		zap.Int("countries", len(ds.Countries)),
		zap.Int("states", len(ds.States)),
		zap.Int("cities", len(ds.Cities)),
	)
	if err := repos.SaveDataset(ctx, ds); err != nil {
		return false, fmt.Errorf("failed to seed database: %w", err)
	}
	return true, nil
}
