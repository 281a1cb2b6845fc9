package warning

import (
	"math"

	"github.com/welldrift/wellwarn/pkg/robust"
)

// Standardize converts one well's residual sequence into z-scores using a
// robust center (median) and robust spread (MAD scaled to a Gaussian
// standard deviation).
//
// In local mode the estimates come from a centered neighborhood of
// round(windowFrac·n) samples; depths too close to either end of the well
// to fill the neighborhood yield NaN, which downstream stages must treat
// as "no signal", never as zero. In global mode the estimates are computed
// once over the full well and every sample is standardized against them.
// A local baseline re-centers onto sustained shifts within about half a
// window, so it highlights transients; the global baseline preserves
// sustained offsets.
//
// The scale is floored at epsilon so near-constant segments don't produce
// unbounded z-scores. The output has the same length and depth alignment
// as the input. Pure function of its arguments.
func Standardize(residuals []float64, cfg Config) []float64 {
	n := len(residuals)
	z := make([]float64, n)
	if n == 0 {
		return z
	}

	switch cfg.Baseline {
	case BaselineGlobal:
		center := robust.Median(residuals)
		scale := math.Max(robust.MAD(residuals), cfg.Epsilon)
		for i, r := range residuals {
			if math.IsNaN(r) || math.IsNaN(center) {
				z[i] = math.NaN()
				continue
			}
			z[i] = (r - center) / scale
		}
		return z

	default: // BaselineLocal
		halfWidth := localHalfWidth(n, cfg.WindowFrac)
		centers, scales := robust.RollingMedianMAD(residuals, halfWidth)
		for i, r := range residuals {
			if math.IsNaN(r) || math.IsNaN(centers[i]) || math.IsNaN(scales[i]) {
				z[i] = math.NaN()
				continue
			}
			z[i] = (r - centers[i]) / math.Max(scales[i], cfg.Epsilon)
		}
		return z
	}
}

// localHalfWidth converts a window fraction into the half-width of a
// centered neighborhood. The full window spans 2·halfWidth+1 samples and
// is never narrower than 3 samples for nonempty input.
func localHalfWidth(n int, frac float64) int {
	width := int(math.Round(frac * float64(n)))
	if width < 3 {
		width = 3
	}
	return width / 2
}
