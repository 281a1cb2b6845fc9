// Package warning implements the residual-to-warning pipeline for
// drilling-hydraulics pressure channels: robust standardization of
// regression residuals into z-scores, rolling magnitude aggregation,
// threshold-plus-persistence filtering, and cross-channel common-mode /
// difference-mode indicators combining the standpipe (SPP) and annular
// (AP) channels.
package warning

import (
	"fmt"
	"math"
)

// BaselineMode selects how the standardizer estimates center and scale.
type BaselineMode string

const (
	// BaselineLocal estimates center and scale per depth over a rolling
	// neighborhood sized by WindowFrac.
	BaselineLocal BaselineMode = "local"

	// BaselineGlobal estimates center and scale once over the full well.
	BaselineGlobal BaselineMode = "global"
)

// MagnitudeKind selects the rolling aggregate applied to z-scores.
type MagnitudeKind string

const (
	// MagnitudeAbsMean is the rolling mean of |z|.
	MagnitudeAbsMean MagnitudeKind = "abs_mean"

	// MagnitudeRMS is the rolling root-mean-square of z.
	MagnitudeRMS MagnitudeKind = "rms"
)

// CrossRule selects the symmetric common-mode combination of SPP and AP
// z-scores. The difference mode is always SPP−AP.
type CrossRule string

const (
	// CrossMean averages the two z-scores.
	CrossMean CrossRule = "mean"

	// CrossMinMagnitude takes the smaller-magnitude deviation, signed by
	// the sum, so a single-channel excursion contributes little.
	CrossMinMagnitude CrossRule = "min_magnitude"

	// CrossCustom uses the Config.CustomCross function.
	CrossCustom CrossRule = "custom"
)

// CombineRule selects how the common and difference rolling magnitudes are
// merged into one cross-channel score by CombineMagnitudes.
type CombineRule string

const (
	// CombineMax takes the larger of the two magnitudes.
	CombineMax CombineRule = "max"

	// CombineMean averages the two magnitudes.
	CombineMean CombineRule = "mean"
)

// Config holds every tunable of the warning pipeline. All values are
// explicit; DefaultConfig documents the defaults and Validate rejects
// invalid combinations before any well is processed.
type Config struct {
	// WindowSize is the trailing window length for magnitude aggregation,
	// in samples.
	WindowSize int

	// Threshold is the magnitude level a sample must exceed to count
	// toward a warning.
	Threshold float64

	// MinRun is the number of consecutive exceedances required before a
	// warning activates.
	MinRun int

	// WindowFrac sizes the standardizer's local neighborhood as a fraction
	// of the well's sample count, in (0, 1].
	WindowFrac float64

	// Baseline selects local or global standardization.
	Baseline BaselineMode

	// Cross selects the common-mode combination rule.
	Cross CrossRule

	// CustomCross is the symmetric combination used when Cross is
	// CrossCustom. Implementations must satisfy f(a,b) == f(b,a).
	CustomCross func(sppZ, apZ float64) float64

	// Magnitude selects the rolling aggregate kind.
	Magnitude MagnitudeKind

	// Combine selects how CombineMagnitudes merges the cross-channel
	// magnitudes.
	Combine CombineRule

	// Epsilon floors the standardizer's scale estimate so near-constant
	// segments don't blow up the z-score.
	Epsilon float64

	// Parallel processes wells concurrently. Intra-well computation stays
	// sequential either way; results are identical.
	Parallel bool
}

// DefaultConfig returns the documented pipeline defaults.
func DefaultConfig() Config {
	return Config{
		WindowSize: 25,
		Threshold:  1.5,
		MinRun:     5,
		WindowFrac: 0.15,
		Baseline:   BaselineLocal,
		Cross:      CrossMean,
		Magnitude:  MagnitudeAbsMean,
		Combine:    CombineMax,
		Epsilon:    1e-6,
	}
}

// Validate checks the configuration, returning a ConfigurationError for
// the first violation found.
func (c Config) Validate() error {
	if c.WindowSize < 1 {
		return &ConfigurationError{Field: "WindowSize", Reason: fmt.Sprintf("must be >= 1, got %d", c.WindowSize)}
	}
	if c.MinRun < 1 {
		return &ConfigurationError{Field: "MinRun", Reason: fmt.Sprintf("must be >= 1, got %d", c.MinRun)}
	}
	if math.IsNaN(c.Threshold) {
		return &ConfigurationError{Field: "Threshold", Reason: "must not be NaN"}
	}
	if !(c.WindowFrac > 0 && c.WindowFrac <= 1) {
		return &ConfigurationError{Field: "WindowFrac", Reason: fmt.Sprintf("must be in (0, 1], got %g", c.WindowFrac)}
	}
	switch c.Baseline {
	case BaselineLocal, BaselineGlobal:
	default:
		return &ConfigurationError{Field: "Baseline", Reason: fmt.Sprintf("unknown mode %q", c.Baseline)}
	}
	switch c.Cross {
	case CrossMean, CrossMinMagnitude:
	case CrossCustom:
		if c.CustomCross == nil {
			return &ConfigurationError{Field: "CustomCross", Reason: "required when Cross is custom"}
		}
	default:
		return &ConfigurationError{Field: "Cross", Reason: fmt.Sprintf("unknown rule %q", c.Cross)}
	}
	switch c.Magnitude {
	case MagnitudeAbsMean, MagnitudeRMS:
	default:
		return &ConfigurationError{Field: "Magnitude", Reason: fmt.Sprintf("unknown kind %q", c.Magnitude)}
	}
	switch c.Combine {
	case CombineMax, CombineMean:
	default:
		return &ConfigurationError{Field: "Combine", Reason: fmt.Sprintf("unknown rule %q", c.Combine)}
	}
	if !(c.Epsilon > 0) {
		return &ConfigurationError{Field: "Epsilon", Reason: fmt.Sprintf("must be > 0, got %g", c.Epsilon)}
	}
	return nil
}

// ConfigurationError reports an invalid pipeline configuration value.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s %s", e.Field, e.Reason)
}
