package storage

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/welldrift/wellwarn/internal/warning"
)

// SQLiteStore persists warning tables to a local SQLite database.
type SQLiteStore struct {
	db     *sql.DB
	logger *zap.SugaredLogger
}

// NewSQLiteStore opens (creating if necessary) the SQLite database at path
// and ensures the warning table schema exists.
func NewSQLiteStore(path string, logger *zap.SugaredLogger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to SQLite database: %w", err)
	}

	store := &SQLiteStore{db: db, logger: logger}
	if err := store.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) ensureSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS pressure_warnings (
		well               TEXT NOT NULL,
		run_id             TEXT NOT NULL,
		computed_at        TIMESTAMP NOT NULL,
		depth              REAL NOT NULL,
		spp_z              REAL,
		ap_z               REAL,
		spp_score          REAL,
		ap_score           REAL,
		spp_warning        INTEGER NOT NULL,
		ap_warning         INTEGER NOT NULL,
		common_z           REAL,
		difference_z       REAL,
		common_score       REAL,
		difference_score   REAL,
		common_warning     INTEGER NOT NULL,
		difference_warning INTEGER NOT NULL,
		PRIMARY KEY (well, depth)
	);
	CREATE INDEX IF NOT EXISTS idx_pressure_warnings_run ON pressure_warnings (run_id);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create warning schema: %w", err)
	}
	return nil
}

// SaveResult replaces the stored warning table for the result's well.
// All rows are written in one transaction so a failed save never leaves a
// partial table behind.
func (s *SQLiteStore) SaveResult(ctx context.Context, result *warning.WellResult) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM pressure_warnings WHERE well = ?`, result.Well); err != nil {
		return fmt.Errorf("failed to delete previous rows for well %s: %w", result.Well, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO pressure_warnings
		(well, run_id, computed_at, depth,
		 spp_z, ap_z, spp_score, ap_score, spp_warning, ap_warning,
		 common_z, difference_z, common_score, difference_score,
		 common_warning, difference_warning)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert statement: %w", err)
	}
	defer stmt.Close()

	for _, row := range result.Rows {
		_, err := stmt.ExecContext(ctx,
			result.Well, result.RunID, result.ComputedAt, row.Depth,
			nullableFloat(row.SPPZ), nullableFloat(row.APZ),
			nullableFloat(row.SPPScore), nullableFloat(row.APScore),
			row.SPPWarning, row.APWarning,
			nullableFloat(row.CommonZ), nullableFloat(row.DifferenceZ),
			nullableFloat(row.CommonScore), nullableFloat(row.DifferenceScore),
			row.CommonWarning, row.DifferenceWarning,
		)
		if err != nil {
			return fmt.Errorf("failed to insert row at depth %.3f: %w", row.Depth, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.Debugf("stored %d warning rows for well %s (run %s)",
		len(result.Rows), result.Well, result.RunID)
	return nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
