package warning

import "math"

// CombineCross derives the common-mode and difference-mode series from
// aligned SPP and AP z-score sequences for one well.
//
// common expresses shared deviation and is symmetric under swapping the
// channels: the mean rule averages the two z-scores, the min_magnitude
// rule takes the smaller-magnitude z signed by the sum, so both channels
// must deviate together for a large common value. difference is always
// sppZ−apZ, antisymmetric, and captures decoupled deviation.
//
// Wherever either input is NaN, both outputs are NaN at that sample — no
// partial combination from a single valid channel.
func CombineCross(sppZ, apZ []float64, cfg Config) (common, difference []float64) {
	n := len(sppZ)
	common = make([]float64, n)
	difference = make([]float64, n)

	for i := 0; i < n; i++ {
		a, b := sppZ[i], apZ[i]
		if math.IsNaN(a) || math.IsNaN(b) {
			common[i] = math.NaN()
			difference[i] = math.NaN()
			continue
		}
		common[i] = commonMode(a, b, cfg)
		difference[i] = a - b
	}

	return common, difference
}

func commonMode(a, b float64, cfg Config) float64 {
	switch cfg.Cross {
	case CrossMinMagnitude:
		m := math.Min(math.Abs(a), math.Abs(b))
		return math.Copysign(m, a+b)
	case CrossCustom:
		return cfg.CustomCross(a, b)
	default: // CrossMean
		return (a + b) / 2
	}
}
