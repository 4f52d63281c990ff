package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexivanou/restcountries/internal/api"
	"github.com/alexivanou/restcountries/internal/config"
	"github.com/alexivanou/restcountries/internal/database"
	"github.com/alexivanou/restcountries/internal/dataset"
	"github.com/alexivanou/restcountries/internal/index"
	"github.com/alexivanou/restcountries/internal/loader"
	"github.com/alexivanou/restcountries/internal/repository"
	"github.com/alexivanou/restcountries/internal/service"
	"github.com/alexivanou/restcountries/internal/stats"
	"github.com/alexivanou/restcountries/internal/store"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		db    *sqlx.DB
		repos *repository.Container
	)
	if cfg.Dataset.Source == config.DatasetDatabase {
		db, repos = openDatabase(ctx, cfg, logger)
		defer db.Close()
	}

	load, err := loader.New(cfg.Dataset, repos)
	if err != nil {
		logger.Fatal("Failed to configure dataset source", zap.Error(err))
	}

	ds, err := load(ctx)
	if err != nil {
		logger.Fatal("Failed to load dataset", zap.String("source", string(cfg.Dataset.Source)), zap.Error(err))
	}

	var opts []index.Option
	if cfg.Dataset.FoldAccents {
		opts = append(opts, index.WithAccentFolding())
	}
	st := store.New(ds, load, logger, opts...)
	logger.Info("Dataset loaded",
		zap.String("source", string(cfg.Dataset.Source)),
		zap.Int("countries", len(ds.Countries)),
		zap.Int("states", len(ds.States)),
		zap.Int("cities", len(ds.Cities)),
		zap.Bool("fold_accents", cfg.Dataset.FoldAccents),
	)

	switch {
	case cfg.Dataset.Watch && cfg.Dataset.Source != config.DatasetDir:
		logger.Warn("DATASET_WATCH ignored: only a dir dataset can be watched",
			zap.String("source", string(cfg.Dataset.Source)))
	case cfg.Dataset.Watch:
		go func() {
			if err := st.Watch(ctx, cfg.Dataset.Dir); err != nil {
				logger.Error("Dataset watcher stopped", zap.Error(err))
			}
		}()
	}

	svc := service.NewService(st)
	statsCollector := stats.NewCollector(st, db, cfg.DB)
	router := api.NewRouter(svc, statsCollector, logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

// openDatabase connects, migrates and seeds an empty database from the bundled dataset
func openDatabase(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*sqlx.DB, *repository.Container) {
	db, err := database.Connect(ctx, cfg.DB)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := db.PingContext(ctx); err != nil {
		logger.Fatal("Failed to ping database", zap.Error(err))
	}
	logger.Info("Connected to database", zap.String("type", string(cfg.DB.Type)))

	if err := database.Migrate(db, cfg.DB.Type); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	repos := repository.NewRepositories(db, cfg.DB.Type).WithBatchSize(cfg.Seeder.BatchSize)

	bundled, err := dataset.Bundled()
	if err != nil {
		logger.Fatal("Failed to load bundled dataset", zap.Error(err))
	}
	seeded, err := loader.SeedIfEmpty(ctx, repos, bundled.Subset(cfg.Seeder.Countries), logger)
	if err != nil {
		logger.Fatal("Failed to auto-seed database", zap.Error(err))
	}
	if seeded {
		logger.Info("Database seeded successfully")
	}

	return db, repos
}
