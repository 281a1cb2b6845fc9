package warning

import "math"

// Flag is one sample of a warning sequence. Active is true only while a
// sustained run of threshold exceedances of length >= MinRun is underway;
// RunLength is the number of consecutive exceedances ending at the sample.
type Flag struct {
	Active    bool
	RunLength int
}

// thresholder state machine states
type persistState int

const (
	stateIdle persistState = iota
	stateAccumulating
	stateActive
)

// ApplyPersistence converts a magnitude sequence into warning flags.
// A sample exceeds when its score is strictly greater than threshold; NaN
// scores never exceed. The flag turns true at the minRun-th consecutive
// exceedance and stays true for the remainder of that run; the first
// non-exceedance (including NaN) drops the flag on that same sample and
// resets the run. An isolated spike therefore never raises a warning, and
// recovery suppresses it immediately — no hysteresis beyond minRun. State
// never carries across calls: each well starts idle.
func ApplyPersistence(scores []float64, threshold float64, minRun int) []Flag {
	flags := make([]Flag, len(scores))

	state := stateIdle
	run := 0

	for i, score := range scores {
		exceeds := !math.IsNaN(score) && score > threshold

		if !exceeds {
			state = stateIdle
			run = 0
			flags[i] = Flag{Active: false, RunLength: 0}
			continue
		}

		run++
		switch state {
		case stateIdle:
			state = stateAccumulating
		case stateAccumulating, stateActive:
		}
		if run >= minRun {
			state = stateActive
		}

		flags[i] = Flag{Active: state == stateActive, RunLength: run}
	}

	return flags
}
