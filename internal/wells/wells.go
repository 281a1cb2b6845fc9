// Package wells defines the per-well input model for the warning pipeline:
// a depth-ordered table of actual and predicted pressure values for the
// standpipe (SPP) and annular (AP) channels, plus validation and loading.
package wells

import (
	"fmt"
	"math"
)

// Column names of the required input table fields.
const (
	ColumnDepth        = "depth"
	ColumnSPPActual    = "spp_actual"
	ColumnSPPPredicted = "spp_predicted"
	ColumnAPActual     = "ap_actual"
	ColumnAPPredicted  = "ap_predicted"
)

// WellInput holds one well's depth-ordered input columns. Depth must be
// strictly increasing; all columns must be present and equal in length.
// Well identity is explicit in Name, never inferred from depth gaps.
type WellInput struct {
	Name         string
	Depth        []float64
	SPPActual    []float64
	SPPPredicted []float64
	APActual     []float64
	APPredicted  []float64
}

// InputShapeError reports misaligned or misordered input columns for a well.
type InputShapeError struct {
	Well   string
	Reason string
}

func (e *InputShapeError) Error() string {
	return fmt.Sprintf("well %q: input shape error: %s", e.Well, e.Reason)
}

// MissingColumnError reports a required column absent from a well's input.
type MissingColumnError struct {
	Well   string
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("well %q: missing required column %q", e.Well, e.Column)
}

// Validate checks that all required columns are present, equal in length,
// and that depth is strictly increasing. The whole well fails on the first
// violation; nothing is truncated or zero-filled.
func (w *WellInput) Validate() error {
	columns := []struct {
		name   string
		values []float64
	}{
		{ColumnDepth, w.Depth},
		{ColumnSPPActual, w.SPPActual},
		{ColumnSPPPredicted, w.SPPPredicted},
		{ColumnAPActual, w.APActual},
		{ColumnAPPredicted, w.APPredicted},
	}

	for _, col := range columns {
		if col.values == nil {
			return &MissingColumnError{Well: w.Name, Column: col.name}
		}
	}

	n := len(w.Depth)
	for _, col := range columns[1:] {
		if len(col.values) != n {
			return &InputShapeError{
				Well: w.Name,
				Reason: fmt.Sprintf("column %s has %d samples, depth has %d",
					col.name, len(col.values), n),
			}
		}
	}

	for i := 1; i < n; i++ {
		if math.IsNaN(w.Depth[i]) || !(w.Depth[i] > w.Depth[i-1]) {
			return &InputShapeError{
				Well: w.Name,
				Reason: fmt.Sprintf("depth not strictly increasing at index %d (%.3f after %.3f)",
					i, w.Depth[i], w.Depth[i-1]),
			}
		}
	}
	if n > 0 && math.IsNaN(w.Depth[0]) {
		return &InputShapeError{Well: w.Name, Reason: "depth starts with NaN"}
	}

	return nil
}

// Len returns the number of depth samples.
func (w *WellInput) Len() int {
	return len(w.Depth)
}

// Residuals returns actual−predicted per sample. The inputs must be equal
// in length (guaranteed after Validate).
func Residuals(actual, predicted []float64) []float64 {
	residuals := make([]float64, len(actual))
	for i := range actual {
		residuals[i] = actual[i] - predicted[i]
	}
	return residuals
}
