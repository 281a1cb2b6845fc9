package wells

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// LoadCSV reads one well's input table from a CSV file with a header row.
// Required columns: depth, spp_actual, spp_predicted, ap_actual,
// ap_predicted. Extra columns are ignored. Empty cells and the literal
// "NaN" parse as NaN; validation of ordering and alignment is left to
// Validate.
func LoadCSV(name, path string) (*WellInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("well %q: %w", name, err)
	}
	defer f.Close()

	well, err := ReadCSV(name, f)
	if err != nil {
		return nil, fmt.Errorf("well %q: %s: %w", name, path, err)
	}
	return well, nil
}

// ReadCSV parses a well input table from r. See LoadCSV.
func ReadCSV(name string, r io.Reader) (*WellInput, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.ToLower(strings.TrimSpace(col))] = i
	}

	well := &WellInput{Name: name}
	targets := map[string]*[]float64{
		ColumnDepth:        &well.Depth,
		ColumnSPPActual:    &well.SPPActual,
		ColumnSPPPredicted: &well.SPPPredicted,
		ColumnAPActual:     &well.APActual,
		ColumnAPPredicted:  &well.APPredicted,
	}

	present := make(map[string]int)
	for col := range targets {
		if i, ok := index[col]; ok {
			present[col] = i
			*targets[col] = []float64{}
		}
	}

	row := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row %d: %w", row, err)
		}
		row++

		for col, i := range present {
			if i >= len(record) {
				return nil, fmt.Errorf("row %d is missing column %s", row, col)
			}
			v, err := parseCell(record[i])
			if err != nil {
				return nil, fmt.Errorf("row %d column %s: %w", row, col, err)
			}
			*targets[col] = append(*targets[col], v)
		}
	}

	return well, nil
}

func parseCell(cell string) (float64, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" || strings.EqualFold(cell, "nan") {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(cell, 64)
}
