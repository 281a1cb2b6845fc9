package storage

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/welldrift/wellwarn/internal/warning"
)

// WarningRecord is the GORM model for one row of a well's warning table.
// NaN scores are stored as NULL via pointer fields.
type WarningRecord struct {
	Well       string    `gorm:"column:well;primaryKey"`
	Depth      float64   `gorm:"column:depth;primaryKey"`
	RunID      string    `gorm:"column:run_id;index"`
	ComputedAt time.Time `gorm:"column:computed_at"`

	SPPZ       *float64 `gorm:"column:spp_z"`
	APZ        *float64 `gorm:"column:ap_z"`
	SPPScore   *float64 `gorm:"column:spp_score"`
	APScore    *float64 `gorm:"column:ap_score"`
	SPPWarning bool     `gorm:"column:spp_warning"`
	APWarning  bool     `gorm:"column:ap_warning"`

	CommonZ           *float64 `gorm:"column:common_z"`
	DifferenceZ       *float64 `gorm:"column:difference_z"`
	CommonScore       *float64 `gorm:"column:common_score"`
	DifferenceScore   *float64 `gorm:"column:difference_score"`
	CommonWarning     bool     `gorm:"column:common_warning"`
	DifferenceWarning bool     `gorm:"column:difference_warning"`
}

// TableName implements the GORM Tabler interface
func (WarningRecord) TableName() string {
	return "pressure_warnings"
}

// TimescaleDBStore persists warning tables to TimescaleDB (or plain
// Postgres) via GORM.
type TimescaleDBStore struct {
	conn   *gorm.DB
	logger *zap.SugaredLogger
}

// NewTimescaleDBStore connects to the database and migrates the warning
// table schema.
func NewTimescaleDBStore(connectionString string, logger *zap.SugaredLogger) (*TimescaleDBStore, error) {
	conn, err := gorm.Open(postgres.Open(connectionString), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to TimescaleDB: %w", err)
	}

	if err := conn.AutoMigrate(&WarningRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate warning schema: %w", err)
	}

	return &TimescaleDBStore{conn: conn, logger: logger}, nil
}

// SaveResult replaces the stored warning table for the result's well in a
// single transaction.
func (t *TimescaleDBStore) SaveResult(ctx context.Context, result *warning.WellResult) error {
	records := make([]WarningRecord, len(result.Rows))
	for i, row := range result.Rows {
		records[i] = WarningRecord{
			Well:              result.Well,
			Depth:             row.Depth,
			RunID:             result.RunID,
			ComputedAt:        result.ComputedAt,
			SPPZ:              nullablePtr(row.SPPZ),
			APZ:               nullablePtr(row.APZ),
			SPPScore:          nullablePtr(row.SPPScore),
			APScore:           nullablePtr(row.APScore),
			SPPWarning:        row.SPPWarning,
			APWarning:         row.APWarning,
			CommonZ:           nullablePtr(row.CommonZ),
			DifferenceZ:       nullablePtr(row.DifferenceZ),
			CommonScore:       nullablePtr(row.CommonScore),
			DifferenceScore:   nullablePtr(row.DifferenceScore),
			CommonWarning:     row.CommonWarning,
			DifferenceWarning: row.DifferenceWarning,
		}
	}

	err := t.conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("well = ?", result.Well).Delete(&WarningRecord{}).Error; err != nil {
			return fmt.Errorf("failed to delete previous rows for well %s: %w", result.Well, err)
		}
		if len(records) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(records, 500).Error; err != nil {
			return fmt.Errorf("failed to insert warning rows: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	t.logger.Debugf("stored %d warning rows for well %s (run %s)",
		len(records), result.Well, result.RunID)
	return nil
}

// Close closes the underlying database connection
func (t *TimescaleDBStore) Close() error {
	db, err := t.conn.DB()
	if err != nil {
		return err
	}
	return db.Close()
}
