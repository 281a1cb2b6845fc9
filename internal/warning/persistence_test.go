package warning

import (
	"math"
	"testing"
)

func TestApplyPersistence(t *testing.T) {
	nan := math.NaN()

	tests := []struct {
		name      string
		scores    []float64
		threshold float64
		minRun    int
		expected  []bool
	}{
		{
			name:      "run one short of minimum never fires",
			scores:    []float64{2.0, 2.0, 2.0, 2.0, 1.0},
			threshold: 1.5,
			minRun:    5,
			expected:  []bool{false, false, false, false, false},
		},
		{
			name:      "fires at the minRun-th exceedance and drops on recovery",
			scores:    []float64{2.0, 2.0, 2.0, 0.5},
			threshold: 1.5,
			minRun:    3,
			expected:  []bool{false, false, true, false},
		},
		{
			name:      "stays active for the remainder of the run",
			scores:    []float64{2.0, 2.0, 2.0, 2.0, 2.0, 2.0},
			threshold: 1.5,
			minRun:    3,
			expected:  []bool{false, false, true, true, true, true},
		},
		{
			name:      "NaN resets the run",
			scores:    []float64{2.0, 2.0, nan, 2.0, 2.0, 2.0},
			threshold: 1.5,
			minRun:    3,
			expected:  []bool{false, false, false, false, false, true},
		},
		{
			name:      "equal to threshold is not an exceedance",
			scores:    []float64{1.5, 1.5, 1.5},
			threshold: 1.5,
			minRun:    1,
			expected:  []bool{false, false, false},
		},
		{
			name:      "minRun one fires immediately",
			scores:    []float64{1.0, 2.0, 1.0, 2.0},
			threshold: 1.5,
			minRun:    1,
			expected:  []bool{false, true, false, true},
		},
		{
			name:      "isolated spikes never fire",
			scores:    []float64{2.0, 1.0, 2.0, 1.0, 2.0, 1.0},
			threshold: 1.5,
			minRun:    2,
			expected:  []bool{false, false, false, false, false, false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags := ApplyPersistence(tt.scores, tt.threshold, tt.minRun)

			if len(flags) != len(tt.expected) {
				t.Fatalf("expected %d flags, got %d", len(tt.expected), len(flags))
			}
			for i, want := range tt.expected {
				if flags[i].Active != want {
					t.Errorf("point %d: expected active=%v, got %v", i, want, flags[i].Active)
				}
			}
		})
	}
}

func TestApplyPersistenceRunLengths(t *testing.T) {
	scores := []float64{2.0, 2.0, 0.5, 2.0, 2.0, 2.0}
	flags := ApplyPersistence(scores, 1.5, 3)

	expectedRuns := []int{1, 2, 0, 1, 2, 3}
	for i, want := range expectedRuns {
		if flags[i].RunLength != want {
			t.Errorf("point %d: expected run length %d, got %d", i, want, flags[i].RunLength)
		}
	}
}

func TestApplyPersistenceNoCarryOver(t *testing.T) {
	// a fresh call always starts idle, even after a previous call ended
	// mid-run
	first := ApplyPersistence([]float64{2.0, 2.0}, 1.5, 3)
	second := ApplyPersistence([]float64{2.0, 2.0}, 1.5, 3)

	for i := range second {
		if second[i].Active || second[i].RunLength != first[i].RunLength {
			t.Errorf("point %d: state leaked across calls", i)
		}
	}
}
