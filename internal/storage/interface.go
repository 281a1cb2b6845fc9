// Package storage persists assembled warning tables to configurable
// backends: SQLite, TimescaleDB, and columnar CSV files.
package storage

import (
	"context"

	"github.com/welldrift/wellwarn/internal/warning"
)

// Store is the interface all result storage backends implement.
type Store interface {
	// SaveResult persists one well's warning table. Rows from an earlier
	// run for the same well are replaced.
	SaveResult(ctx context.Context, result *warning.WellResult) error

	Close() error
}
