package storage

import (
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/welldrift/wellwarn/internal/warning"
)

// CSVStore writes each well's warning table to <dir>/<well>_warnings.csv,
// the columnar export consumed by downstream summary and plotting tools.
type CSVStore struct {
	dir    string
	logger *zap.SugaredLogger
}

// NewCSVStore creates the output directory if needed.
func NewCSVStore(dir string, logger *zap.SugaredLogger) (*CSVStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create CSV output directory: %w", err)
	}
	return &CSVStore{dir: dir, logger: logger}, nil
}

// SaveResult writes one well's table, overwriting any previous export.
// NaN values are written as empty cells.
func (c *CSVStore) SaveResult(ctx context.Context, result *warning.WellResult) error {
	// well names like "34/10-A" must not introduce path separators
	name := strings.NewReplacer("/", "_", "\\", "_").Replace(result.Well)
	path := filepath.Join(c.dir, name+"_warnings.csv")

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		"depth", "spp_z", "ap_z", "spp_score", "ap_score",
		"spp_warning", "ap_warning",
		"common_z", "difference_z", "common_score", "difference_score",
		"common_warning", "difference_warning",
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, row := range result.Rows {
		record := []string{
			formatFloat(row.Depth),
			formatFloat(row.SPPZ), formatFloat(row.APZ),
			formatFloat(row.SPPScore), formatFloat(row.APScore),
			strconv.FormatBool(row.SPPWarning), strconv.FormatBool(row.APWarning),
			formatFloat(row.CommonZ), formatFloat(row.DifferenceZ),
			formatFloat(row.CommonScore), formatFloat(row.DifferenceScore),
			strconv.FormatBool(row.CommonWarning), strconv.FormatBool(row.DifferenceWarning),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV output: %w", err)
	}

	c.logger.Debugf("exported %d warning rows for well %s to %s",
		len(result.Rows), result.Well, path)
	return nil
}

// Close is a no-op; files are closed per save
func (c *CSVStore) Close() error {
	return nil
}

func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
