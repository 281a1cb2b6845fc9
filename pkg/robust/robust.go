// Package robust provides robust location and scale estimators for noisy
// sensor series: median, median absolute deviation (MAD), and rolling
// variants built on an incremental sorted window so a full pass costs
// O(n log w) rather than O(n·w log w).
package robust

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// MADConsistency rescales the MAD so it estimates the standard deviation of
// a Gaussian distribution (1 / Φ⁻¹(3/4)).
const MADConsistency = 1.4826

// Median returns the median of values, ignoring NaNs. Even-length input
// returns the midpoint of the two central order statistics. Returns NaN if
// no finite values remain.
func Median(values []float64) float64 {
	finite := filterFinite(values)
	if len(finite) == 0 {
		return math.NaN()
	}
	sort.Float64s(finite)
	return sortedMedian(finite)
}

// MAD returns the median absolute deviation of values about their median,
// scaled by MADConsistency. NaNs are ignored; returns NaN if no finite
// values remain.
func MAD(values []float64) float64 {
	center := Median(values)
	if math.IsNaN(center) {
		return math.NaN()
	}

	deviations := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			deviations = append(deviations, math.Abs(v-center))
		}
	}
	sort.Float64s(deviations)
	return MADConsistency * sortedMedian(deviations)
}

// Quantile returns the q-quantile of sorted (ascending) values, linearly
// interpolating the empirical CDF.
func Quantile(q float64, sorted []float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	return stat.Quantile(q, stat.LinInterp, sorted, nil)
}

func sortedMedian(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func filterFinite(values []float64) []float64 {
	finite := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			finite = append(finite, v)
		}
	}
	return finite
}
