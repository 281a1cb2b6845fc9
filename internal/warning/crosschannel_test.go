package warning

import (
	"math"
	"testing"
)

func crossConfigs() map[string]Config {
	custom := DefaultConfig()
	custom.Cross = CrossCustom
	custom.CustomCross = func(a, b float64) float64 {
		return math.Sqrt(math.Abs(a*b)) * math.Copysign(1, a+b)
	}

	mean := DefaultConfig()
	mean.Cross = CrossMean

	minMag := DefaultConfig()
	minMag.Cross = CrossMinMagnitude

	return map[string]Config{
		"mean":          mean,
		"min_magnitude": minMag,
		"custom":        custom,
	}
}

func TestCombineCrossSymmetry(t *testing.T) {
	pairs := [][2]float64{
		{1.0, 2.0}, {-1.0, 2.0}, {1.0, -2.0}, {-3.0, -0.5},
		{0.0, 4.0}, {2.5, 2.5}, {0.0, 0.0},
	}

	for name, cfg := range crossConfigs() {
		t.Run(name, func(t *testing.T) {
			for _, pair := range pairs {
				a, b := pair[0], pair[1]

				commonAB, diffAB := CombineCross([]float64{a}, []float64{b}, cfg)
				commonBA, diffBA := CombineCross([]float64{b}, []float64{a}, cfg)

				if commonAB[0] != commonBA[0] {
					t.Errorf("common(%g,%g)=%g != common(%g,%g)=%g",
						a, b, commonAB[0], b, a, commonBA[0])
				}
				if diffAB[0] != -diffBA[0] {
					t.Errorf("difference(%g,%g)=%g != -difference(%g,%g)=%g",
						a, b, diffAB[0], b, a, diffBA[0])
				}

				_, diffAA := CombineCross([]float64{a}, []float64{a}, cfg)
				if diffAA[0] != 0 {
					t.Errorf("difference(%g,%g) = %g, expected 0", a, a, diffAA[0])
				}
			}
		})
	}
}

func TestCombineCrossValues(t *testing.T) {
	tests := []struct {
		name           string
		cross          CrossRule
		sppZ, apZ      float64
		wantCommon     float64
		wantDifference float64
	}{
		{
			name:  "mean of aligned deviations",
			cross: CrossMean,
			sppZ:  2.0, apZ: 4.0,
			wantCommon: 3.0, wantDifference: -2.0,
		},
		{
			name:  "mean of opposed deviations cancels",
			cross: CrossMean,
			sppZ:  2.0, apZ: -2.0,
			wantCommon: 0.0, wantDifference: 4.0,
		},
		{
			name:  "min magnitude requires both channels to deviate",
			cross: CrossMinMagnitude,
			sppZ:  3.0, apZ: 0.5,
			wantCommon: 0.5, wantDifference: 2.5,
		},
		{
			name:  "min magnitude keeps shared sign",
			cross: CrossMinMagnitude,
			sppZ:  -3.0, apZ: -1.0,
			wantCommon: -1.0, wantDifference: -2.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Cross = tt.cross

			common, difference := CombineCross([]float64{tt.sppZ}, []float64{tt.apZ}, cfg)
			if math.Abs(common[0]-tt.wantCommon) > 1e-12 {
				t.Errorf("common: expected %.4f, got %.4f", tt.wantCommon, common[0])
			}
			if math.Abs(difference[0]-tt.wantDifference) > 1e-12 {
				t.Errorf("difference: expected %.4f, got %.4f", tt.wantDifference, difference[0])
			}
		})
	}
}

func TestCombineCrossNaNPropagation(t *testing.T) {
	nan := math.NaN()
	sppZ := []float64{1.0, nan, 2.0, nan}
	apZ := []float64{2.0, 3.0, nan, nan}

	for name, cfg := range crossConfigs() {
		t.Run(name, func(t *testing.T) {
			common, difference := CombineCross(sppZ, apZ, cfg)

			if math.IsNaN(common[0]) || math.IsNaN(difference[0]) {
				t.Error("expected finite outputs when both inputs are finite")
			}
			for _, i := range []int{1, 2, 3} {
				if !math.IsNaN(common[i]) {
					t.Errorf("point %d: expected NaN common, got %g", i, common[i])
				}
				if !math.IsNaN(difference[i]) {
					t.Errorf("point %d: expected NaN difference, got %g", i, difference[i])
				}
			}
		})
	}
}
