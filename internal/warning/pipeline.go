package warning

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/welldrift/wellwarn/internal/wells"
)

// ResultRow is one depth sample of the assembled output table.
type ResultRow struct {
	Depth float64

	SPPZ       float64
	APZ        float64
	SPPScore   float64
	APScore    float64
	SPPWarning bool
	APWarning  bool
	SPPRun     int
	APRun      int

	CommonZ           float64
	DifferenceZ       float64
	CommonScore       float64
	DifferenceScore   float64
	CommonWarning     bool
	DifferenceWarning bool
	CommonRun         int
	DifferenceRun     int
}

// WellResult is one well's assembled warning table.
type WellResult struct {
	Well       string
	RunID      string
	ComputedAt time.Time
	Rows       []ResultRow
}

// Pipeline runs the residual-to-warning computation over wells. Construct
// with NewPipeline so the configuration is validated before any well is
// processed. Wells are independent: no window, run counter, or estimate
// ever spans a well boundary, and identical inputs with identical
// configuration always produce identical output.
type Pipeline struct {
	cfg    Config
	logger *zap.SugaredLogger
}

// NewPipeline validates cfg and returns a Pipeline. A nil logger is
// replaced with a no-op logger.
func NewPipeline(cfg Config, logger *zap.SugaredLogger) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Pipeline{cfg: cfg, logger: logger}, nil
}

// Config returns the pipeline configuration.
func (p *Pipeline) Config() Config {
	return p.cfg
}

// ProcessWell runs the full per-channel and cross-channel paths for one
// well and assembles its warning table. The input is validated first; a
// malformed well fails as a whole with a typed error.
func (p *Pipeline) ProcessWell(well *wells.WellInput) (*WellResult, error) {
	if err := well.Validate(); err != nil {
		return nil, err
	}

	sppZ := Standardize(wells.Residuals(well.SPPActual, well.SPPPredicted), p.cfg)
	apZ := Standardize(wells.Residuals(well.APActual, well.APPredicted), p.cfg)

	sppScore := RollingMagnitude(sppZ, p.cfg.WindowSize, p.cfg.Magnitude)
	apScore := RollingMagnitude(apZ, p.cfg.WindowSize, p.cfg.Magnitude)
	sppFlags := ApplyPersistence(sppScore, p.cfg.Threshold, p.cfg.MinRun)
	apFlags := ApplyPersistence(apScore, p.cfg.Threshold, p.cfg.MinRun)

	commonZ, differenceZ := CombineCross(sppZ, apZ, p.cfg)
	commonScore := RollingMagnitude(commonZ, p.cfg.WindowSize, p.cfg.Magnitude)
	differenceScore := RollingMagnitude(differenceZ, p.cfg.WindowSize, p.cfg.Magnitude)
	commonFlags := ApplyPersistence(commonScore, p.cfg.Threshold, p.cfg.MinRun)
	differenceFlags := ApplyPersistence(differenceScore, p.cfg.Threshold, p.cfg.MinRun)

	result := &WellResult{
		Well:       well.Name,
		RunID:      uuid.NewString(),
		ComputedAt: time.Now().UTC(),
		Rows:       make([]ResultRow, well.Len()),
	}

	for i := range result.Rows {
		result.Rows[i] = ResultRow{
			Depth:             well.Depth[i],
			SPPZ:              sppZ[i],
			APZ:               apZ[i],
			SPPScore:          sppScore[i],
			APScore:           apScore[i],
			SPPWarning:        sppFlags[i].Active,
			APWarning:         apFlags[i].Active,
			SPPRun:            sppFlags[i].RunLength,
			APRun:             apFlags[i].RunLength,
			CommonZ:           commonZ[i],
			DifferenceZ:       differenceZ[i],
			CommonScore:       commonScore[i],
			DifferenceScore:   differenceScore[i],
			CommonWarning:     commonFlags[i].Active,
			DifferenceWarning: differenceFlags[i].Active,
			CommonRun:         commonFlags[i].RunLength,
			DifferenceRun:     differenceFlags[i].RunLength,
		}
	}

	p.logger.Debugf("processed well %s: %d samples, %d SPP warnings, %d AP warnings",
		well.Name, well.Len(), countActive(sppFlags), countActive(apFlags))

	return result, nil
}

// Run processes each well independently and returns the results in input
// order. Failed wells are reported and skipped; their errors are collected
// into the returned error. When cfg.Parallel is set, wells run
// concurrently — results are identical because no state is shared between
// wells.
func (p *Pipeline) Run(inputs []*wells.WellInput) ([]*WellResult, error) {
	results := make([]*WellResult, len(inputs))
	errs := make([]error, len(inputs))

	if p.cfg.Parallel {
		var wg sync.WaitGroup
		for i, well := range inputs {
			wg.Add(1)
			go func(i int, well *wells.WellInput) {
				defer wg.Done()
				results[i], errs[i] = p.ProcessWell(well)
			}(i, well)
		}
		wg.Wait()
	} else {
		for i, well := range inputs {
			results[i], errs[i] = p.ProcessWell(well)
		}
	}

	kept := results[:0]
	var failed []error
	for i, r := range results {
		if errs[i] != nil {
			p.logger.Errorf("skipping well %s: %v", inputs[i].Name, errs[i])
			failed = append(failed, errs[i])
			continue
		}
		kept = append(kept, r)
	}

	if len(failed) > 0 {
		return kept, fmt.Errorf("%d of %d wells failed: %w", len(failed), len(inputs), failed[0])
	}
	return kept, nil
}

func countActive(flags []Flag) int {
	count := 0
	for _, f := range flags {
		if f.Active {
			count++
		}
	}
	return count
}
