package robust

import (
	"math"
	"sort"
)

// SortedWindow maintains the values of a sliding window in sorted order.
// Push and Remove use binary search so the window never has to be re-sorted
// from scratch. Median is O(1); MAD is O(w) via an outward merge around the
// median, which is still far cheaper than re-sorting deviations every step.
type SortedWindow struct {
	values  []float64
	scratch []float64
}

// NewSortedWindow creates a SortedWindow with room for capacity values.
func NewSortedWindow(capacity int) *SortedWindow {
	return &SortedWindow{
		values:  make([]float64, 0, capacity),
		scratch: make([]float64, 0, capacity),
	}
}

// Push inserts v at its sorted position. NaNs must not be pushed.
func (w *SortedWindow) Push(v float64) {
	i := sort.SearchFloat64s(w.values, v)
	w.values = append(w.values, 0)
	copy(w.values[i+1:], w.values[i:])
	w.values[i] = v
}

// Remove deletes one instance of v from the window. Removing a value that
// was never pushed is a no-op.
func (w *SortedWindow) Remove(v float64) {
	i := sort.SearchFloat64s(w.values, v)
	if i >= len(w.values) || w.values[i] != v {
		return
	}
	w.values = append(w.values[:i], w.values[i+1:]...)
}

// Len returns the number of values currently in the window.
func (w *SortedWindow) Len() int {
	return len(w.values)
}

// Median returns the median of the window, or NaN for an empty window.
func (w *SortedWindow) Median() float64 {
	n := len(w.values)
	if n == 0 {
		return math.NaN()
	}
	if n%2 == 1 {
		return w.values[n/2]
	}
	return (w.values[n/2-1] + w.values[n/2]) / 2
}

// MAD returns the median absolute deviation about the window median, scaled
// by MADConsistency. The deviations are produced already sorted by merging
// outward from the median position, one pointer walking left and one right.
func (w *SortedWindow) MAD() float64 {
	n := len(w.values)
	if n == 0 {
		return math.NaN()
	}

	center := w.Median()
	w.scratch = w.scratch[:0]

	// values left of the split have deviation center-v, right have v-center;
	// both sequences grow away from the split, so a two-pointer merge emits
	// deviations in ascending order.
	l := sort.SearchFloat64s(w.values, center) - 1
	r := l + 1
	for l >= 0 || r < n {
		switch {
		case l < 0:
			w.scratch = append(w.scratch, w.values[r]-center)
			r++
		case r >= n:
			w.scratch = append(w.scratch, center-w.values[l])
			l--
		case center-w.values[l] <= w.values[r]-center:
			w.scratch = append(w.scratch, center-w.values[l])
			l--
		default:
			w.scratch = append(w.scratch, w.values[r]-center)
			r++
		}
	}

	var med float64
	if n%2 == 1 {
		med = w.scratch[n/2]
	} else {
		med = (w.scratch[n/2-1] + w.scratch[n/2]) / 2
	}
	return MADConsistency * med
}

// RollingMedianMAD computes, for each index of values, the median and scaled
// MAD of a centered window of halfWidth samples on each side. Indices whose
// window extends past either end of the series yield NaN for both outputs.
// NaN input values are excluded from their neighbors' windows; a window with
// fewer than halfWidth+1 finite values also yields NaN.
func RollingMedianMAD(values []float64, halfWidth int) (centers, scales []float64) {
	n := len(values)
	centers = make([]float64, n)
	scales = make([]float64, n)
	for i := range centers {
		centers[i] = math.NaN()
		scales[i] = math.NaN()
	}
	if n == 0 || halfWidth < 0 {
		return centers, scales
	}

	window := NewSortedWindow(2*halfWidth + 1)
	minFinite := halfWidth + 1

	for i := 0; i < n; i++ {
		// grow the window to cover [i-halfWidth, i+halfWidth]
		if add := i + halfWidth; add < n && !math.IsNaN(values[add]) {
			window.Push(values[add])
		}
		if i == 0 {
			for j := 0; j < halfWidth && j < n; j++ {
				if !math.IsNaN(values[j]) {
					window.Push(values[j])
				}
			}
		}
		if drop := i - halfWidth - 1; drop >= 0 && !math.IsNaN(values[drop]) {
			window.Remove(values[drop])
		}

		if i-halfWidth < 0 || i+halfWidth >= n {
			continue
		}
		if window.Len() < minFinite {
			continue
		}
		centers[i] = window.Median()
		scales[i] = window.MAD()
	}

	return centers, scales
}
