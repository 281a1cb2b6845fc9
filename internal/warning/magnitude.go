package warning

import "math"

// RollingMagnitude aggregates a z-score sequence into a nonnegative score
// per sample over a trailing window of windowSize samples. The score at
// index i summarizes the window ending at i (causal, no look-ahead), as
// either the mean of |z| or the RMS of z depending on kind.
//
// The output is NaN until the trailing window holds windowSize consecutive
// valid (non-NaN) samples: the first windowSize−1 outputs are always NaN,
// and any NaN input invalidates the following windowSize−1 outputs as
// well. windowSize == 1 reduces the score to |z| (or equivalently the RMS
// of the single sample) with no smoothing.
func RollingMagnitude(z []float64, windowSize int, kind MagnitudeKind) []float64 {
	n := len(z)
	scores := make([]float64, n)

	var sum float64 // running sum of |z| or z² over the current valid run
	validRun := 0   // consecutive non-NaN samples ending at i

	for i := 0; i < n; i++ {
		if math.IsNaN(z[i]) {
			scores[i] = math.NaN()
			sum = 0
			validRun = 0
			continue
		}

		sum += contribution(z[i], kind)
		validRun++
		if validRun > windowSize {
			sum -= contribution(z[i-windowSize], kind)
			validRun = windowSize
		}

		if validRun < windowSize {
			scores[i] = math.NaN()
			continue
		}

		mean := sum / float64(windowSize)
		if kind == MagnitudeRMS {
			scores[i] = math.Sqrt(mean)
		} else {
			scores[i] = mean
		}
	}

	return scores
}

func contribution(z float64, kind MagnitudeKind) float64 {
	if kind == MagnitudeRMS {
		return z * z
	}
	return math.Abs(z)
}

// CombineMagnitudes merges the common-mode and difference-mode rolling
// magnitudes into a single cross-channel score per sample under an
// explicit rule: CombineMax takes the larger of the two, CombineMean their
// average. If either input is NaN at a sample the combined score is NaN.
func CombineMagnitudes(common, difference []float64, rule CombineRule) []float64 {
	n := len(common)
	combined := make([]float64, n)
	for i := 0; i < n; i++ {
		a, b := common[i], difference[i]
		if math.IsNaN(a) || math.IsNaN(b) {
			combined[i] = math.NaN()
			continue
		}
		if rule == CombineMean {
			combined[i] = (a + b) / 2
		} else {
			combined[i] = math.Max(a, b)
		}
	}
	return combined
}
