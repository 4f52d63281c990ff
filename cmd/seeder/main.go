package main

import (
	"context"
	"log"

	"github.com/alexivanou/restcountries/internal/config"
	"github.com/alexivanou/restcountries/internal/database"
	"github.com/alexivanou/restcountries/internal/dataset"
	"github.com/alexivanou/restcountries/internal/repository"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	ctx := context.Background()
	db, err := database.Connect(ctx, cfg.DB)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatal("Failed to ping database", zap.Error(err))
	}

	logger.Info("Connected to database", zap.String("type", string(cfg.DB.Type)))

	// Migrations are embedded, so the schema is ensured for every database type
	if err := database.Migrate(db, cfg.DB.Type); err != nil {
		logger.Fatal("Failed to run migration", zap.Error(err))
	}

	logger.Info("Starting data import...")

	var ds *dataset.Dataset
	if cfg.Dataset.Source == config.DatasetDir {
		logger.Info("Parsing dataset directory", zap.String("dir", cfg.Dataset.Dir))
		ds, err = dataset.FromDir(cfg.Dataset.Dir)
	} else {
		logger.Info("Parsing bundled dataset")
		ds, err = dataset.Bundled()
	}
	if err != nil {
		logger.Fatal("Failed to parse dataset", zap.Error(err))
	}

	if len(cfg.Seeder.Countries) > 0 {
		ds = ds.Subset(cfg.Seeder.Countries)
		logger.Info("Filtered dataset", zap.Strings("countries", cfg.Seeder.Countries))
	}

	repos := repository.NewRepositories(db, cfg.DB.Type).WithBatchSize(cfg.Seeder.BatchSize)

	if cfg.Seeder.Reset {
		logger.Info("Clearing existing data...")
		if err := repos.Reset(ctx); err != nil {
			logger.Fatal("Failed to reset tables", zap.Error(err))
		}
	}

	logger.Info("Inserting dataset...")
	if err := repos.SaveDataset(ctx, ds); err != nil {
		logger.Fatal("Failed to insert dataset", zap.Error(err))
	}

	logger.Info("Data import completed successfully!",
		zap.Int("countries", len(ds.Countries)),
		zap.Int("states", len(ds.States)),
		zap.Int("cities", len(ds.Cities)),
	)
}
