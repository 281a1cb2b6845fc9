package storage

import (
	"context"
	"math"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/welldrift/wellwarn/internal/warning"
)

func testResult(well string, rows int) *warning.WellResult {
	result := &warning.WellResult{
		Well:       well,
		RunID:      "test-run",
		ComputedAt: time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
		Rows:       make([]warning.ResultRow, rows),
	}
	for i := range result.Rows {
		result.Rows[i] = warning.ResultRow{
			Depth:      1000.0 + float64(i)*0.5,
			SPPZ:       0.1 * float64(i),
			APZ:        math.NaN(), // stored as NULL
			SPPWarning: i%7 == 0,
		}
	}
	return result
}

func TestSQLiteStoreSaveResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "warnings.db")
	store, err := NewSQLiteStore(path, zap.NewNop().Sugar())
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.SaveResult(ctx, testResult("G-1", 20)); err != nil {
		t.Fatal(err)
	}

	var count int
	if err := store.db.QueryRow(
		`SELECT COUNT(*) FROM pressure_warnings WHERE well = ?`, "G-1").Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 20 {
		t.Errorf("expected 20 rows, got %d", count)
	}

	// NaN scores must round-trip as NULL, not zero
	var nulls int
	if err := store.db.QueryRow(
		`SELECT COUNT(*) FROM pressure_warnings WHERE well = ? AND ap_z IS NULL`, "G-1").Scan(&nulls); err != nil {
		t.Fatal(err)
	}
	if nulls != 20 {
		t.Errorf("expected 20 NULL ap_z values, got %d", nulls)
	}

	// a second save replaces the well's table instead of appending
	if err := store.SaveResult(ctx, testResult("G-1", 10)); err != nil {
		t.Fatal(err)
	}
	if err := store.db.QueryRow(
		`SELECT COUNT(*) FROM pressure_warnings WHERE well = ?`, "G-1").Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 10 {
		t.Errorf("expected save to replace previous rows, got %d", count)
	}
}

func TestCSVStoreSaveResult(t *testing.T) {
	dir := t.TempDir()
	store, err := NewCSVStore(dir, zap.NewNop().Sugar())
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	if err := store.SaveResult(context.Background(), testResult("G-2", 5)); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(dir, "G-2_warnings.csv")
	if _, err := readLines(path); err != nil {
		t.Fatalf("expected export at %s: %v", path, err)
	}
	lines, _ := readLines(path)
	if len(lines) != 6 { // header + 5 rows
		t.Errorf("expected 6 lines, got %d", len(lines))
	}
}
