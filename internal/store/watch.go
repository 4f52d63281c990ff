package store

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/alexivanou/restcountries/internal/dataset"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// debounce groups the burst of events an editor or a copy produces
const debounce = 250 * time.Millisecond

// Watch reloads the store whenever one of the dataset files in dir changes.
// It blocks until ctx is cancelled.
func (s *Store) Watch(ctx context.Context, dir string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching directory %s: %w", dir, err)
	}
	s.logger.Info("Watching dataset directory", zap.String("dir", dir))

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isDatasetFile(event.Name) || event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			s.logger.Debug("Dataset file changed", zap.String("file", event.Name), zap.String("op", event.Op.String()))
			timer.Reset(debounce)

		case <-timer.C:
			if err := s.Reload(ctx); err != nil {
				s.logger.Warn("Keeping previous dataset snapshot", zap.Error(err))
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("Dataset watcher error", zap.Error(err))
		}
	}
}

func isDatasetFile(path string) bool {
	switch filepath.Base(path) {
	case dataset.CountriesFile, dataset.StatesFile, dataset.CitiesFile:
		return true
	}
	return false
}
