package wells

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func validWell() *WellInput {
	return &WellInput{
		Name:         "34/10-A",
		Depth:        []float64{1000.0, 1000.5, 1001.0},
		SPPActual:    []float64{150.0, 151.0, 152.0},
		SPPPredicted: []float64{149.5, 151.2, 151.8},
		APActual:     []float64{90.0, 90.5, 91.0},
		APPredicted:  []float64{90.1, 90.4, 91.2},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*WellInput)
		wantErr string // "", "missing", or "shape"
	}{
		{"valid input", func(w *WellInput) {}, ""},
		{"missing depth", func(w *WellInput) { w.Depth = nil }, "missing"},
		{"missing spp actual", func(w *WellInput) { w.SPPActual = nil }, "missing"},
		{"missing ap predicted", func(w *WellInput) { w.APPredicted = nil }, "missing"},
		{"short column", func(w *WellInput) { w.APActual = w.APActual[:2] }, "shape"},
		{"duplicate depth", func(w *WellInput) { w.Depth[2] = w.Depth[1] }, "shape"},
		{"decreasing depth", func(w *WellInput) { w.Depth[1] = 999.0 }, "shape"},
		{"NaN depth", func(w *WellInput) { w.Depth[1] = math.NaN() }, "shape"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			well := validWell()
			tt.mutate(well)
			err := well.Validate()

			switch tt.wantErr {
			case "":
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
			case "missing":
				var missing *MissingColumnError
				if !errors.As(err, &missing) {
					t.Errorf("expected MissingColumnError, got %v", err)
				}
			case "shape":
				var shape *InputShapeError
				if !errors.As(err, &shape) {
					t.Errorf("expected InputShapeError, got %v", err)
				}
			}
		})
	}
}

func TestValidateErrorNamesWell(t *testing.T) {
	well := validWell()
	well.SPPPredicted = nil

	err := well.Validate()
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "34/10-A") {
		t.Errorf("error should name the well: %v", err)
	}
	if !strings.Contains(err.Error(), ColumnSPPPredicted) {
		t.Errorf("error should name the missing column: %v", err)
	}
}

func TestResiduals(t *testing.T) {
	actual := []float64{150.0, 151.0, math.NaN()}
	predicted := []float64{149.0, 151.5, 150.0}

	residuals := Residuals(actual, predicted)
	if len(residuals) != 3 {
		t.Fatalf("expected 3 residuals, got %d", len(residuals))
	}
	if residuals[0] != 1.0 || residuals[1] != -0.5 {
		t.Errorf("unexpected residuals: %v", residuals)
	}
	if !math.IsNaN(residuals[2]) {
		t.Errorf("expected NaN residual for NaN actual, got %g", residuals[2])
	}
}

func TestReadCSV(t *testing.T) {
	input := `depth,spp_actual,spp_predicted,ap_actual,ap_predicted,extra
1000.0,150.0,149.5,90.0,90.1,ignored
1000.5,151.0,,90.5,90.4,ignored
1001.0,152.0,NaN,91.0,91.2,ignored
`
	well, err := ReadCSV("T-1", strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}

	if err := well.Validate(); err != nil {
		t.Fatalf("parsed well should validate: %v", err)
	}
	if well.Len() != 3 {
		t.Fatalf("expected 3 samples, got %d", well.Len())
	}
	if well.Depth[1] != 1000.5 || well.SPPActual[2] != 152.0 {
		t.Errorf("unexpected parsed values: %+v", well)
	}

	// empty cells and the literal NaN both parse as NaN
	if !math.IsNaN(well.SPPPredicted[1]) || !math.IsNaN(well.SPPPredicted[2]) {
		t.Errorf("expected NaN for empty and NaN cells, got %v", well.SPPPredicted)
	}
}

func TestReadCSVMissingColumn(t *testing.T) {
	input := `depth,spp_actual,spp_predicted,ap_actual
1000.0,150.0,149.5,90.0
`
	well, err := ReadCSV("T-2", strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}

	// the absent column surfaces as a MissingColumnError at validation,
	// not as a silent all-NaN column
	var missing *MissingColumnError
	if err := well.Validate(); !errors.As(err, &missing) {
		t.Fatalf("expected MissingColumnError, got %v", err)
	}
	if missing.Column != ColumnAPPredicted {
		t.Errorf("expected missing column %s, got %s", ColumnAPPredicted, missing.Column)
	}
}

func TestReadCSVBadCell(t *testing.T) {
	input := `depth,spp_actual,spp_predicted,ap_actual,ap_predicted
1000.0,150.0,149.5,ninety,90.1
`
	if _, err := ReadCSV("T-3", strings.NewReader(input)); err == nil {
		t.Fatal("expected a parse error for a non-numeric cell")
	}
}
