package storage

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/welldrift/wellwarn/internal/warning"
	"github.com/welldrift/wellwarn/pkg/config"
)

// Manager holds the active storage backends and fans each result out to
// all of them.
type Manager struct {
	stores []Store
	logger *zap.SugaredLogger
}

// NewManager builds a Manager from the storage section of the
// configuration, enabling every backend that is configured.
func NewManager(cfg config.StorageData, logger *zap.SugaredLogger) (*Manager, error) {
	m := &Manager{logger: logger}

	if cfg.SQLite != nil {
		store, err := NewSQLiteStore(cfg.SQLite.Path, logger)
		if err != nil {
			return nil, fmt.Errorf("could not add SQLite storage backend: %w", err)
		}
		m.stores = append(m.stores, store)
	}

	if cfg.TimescaleDB != nil {
		store, err := NewTimescaleDBStore(cfg.TimescaleDB.ConnectionString, logger)
		if err != nil {
			return nil, fmt.Errorf("could not add TimescaleDB storage backend: %w", err)
		}
		m.stores = append(m.stores, store)
	}

	if cfg.CSVDir != "" {
		store, err := NewCSVStore(cfg.CSVDir, logger)
		if err != nil {
			return nil, fmt.Errorf("could not add CSV storage backend: %w", err)
		}
		m.stores = append(m.stores, store)
	}

	return m, nil
}

// Len returns the number of active backends.
func (m *Manager) Len() int {
	return len(m.stores)
}

// SaveResult persists one result to every backend. The first failure
// aborts; warning tables are per-well so a later retry replaces cleanly.
func (m *Manager) SaveResult(ctx context.Context, result *warning.WellResult) error {
	for _, store := range m.stores {
		if err := store.SaveResult(ctx, result); err != nil {
			return err
		}
	}
	return nil
}

// Close closes all backends, returning the first error encountered.
func (m *Manager) Close() error {
	var firstErr error
	for _, store := range m.stores {
		if err := store.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
