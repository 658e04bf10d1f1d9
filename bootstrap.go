package stone

import (
	"fmt"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// BootstrapConfig controls case-resampling bootstrap.
type BootstrapConfig struct {
	Replicates int     `yaml:"replicates"` // bootstrap refits, default 1000
	Seed       int64   `yaml:"seed"`       // RNG seed for reproducible resampling
	Confidence float64 `yaml:"confidence"` // interval mass, e.g. 0.95
	GridSize   int     `yaml:"grid_size"`  // concentrations per prediction band
}

// DefaultBootstrapConfig returns 1000 replicates and a 95% band.
func DefaultBootstrapConfig() BootstrapConfig {
	return BootstrapConfig{
		Replicates: 1000,
		Seed:       1,
		Confidence: 0.95,
		GridSize:   50,
	}
}

// PredictionBand is an empirical percentile interval for the fitted curve
// of one valency, evaluated on a log-spaced concentration grid.
type PredictionBand struct {
	Valency int
	Conc    []float64
	Lower   []float64
	Upper   []float64
}

// BootstrapResult reports the replicate fits and the derived bands.
type BootstrapResult struct {
	Bands  []PredictionBand
	Fits   []Params // parameters from each converged replicate
	Failed int      // replicates whose refit did not converge
}

// Bootstrap resamples the dataset with replacement, refits each replicate,
// and builds percentile prediction bands across the replicate curves.
// Replicates whose refit fails (degenerate resamples can lose a valency or
// drive the optimizer into an unsolvable corner) are skipped and counted.
func (m Model) Bootstrap(d Dataset, fitCfg FitConfig, cfg BootstrapConfig) (BootstrapResult, error) {
	if cfg.Replicates < 1 {
		return BootstrapResult{}, fmt.Errorf("%w: replicates = %d, must be at least 1",
			ErrInvalidInput, cfg.Replicates)
	}
	if cfg.Confidence <= 0 || cfg.Confidence >= 1 {
		return BootstrapResult{}, fmt.Errorf("%w: confidence = %g, must be in (0,1)",
			ErrInvalidInput, cfg.Confidence)
	}
	if cfg.GridSize < 2 {
		return BootstrapResult{}, fmt.Errorf("%w: grid size = %d, must be at least 2",
			ErrInvalidInput, cfg.GridSize)
	}
	n := d.Len()
	if n == 0 {
		return BootstrapResult{}, fmt.Errorf("%w: empty dataset", ErrInvalidInput)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	result := BootstrapResult{}

	idx := make([]int, n)
	for b := 0; b < cfg.Replicates; b++ {
		for i := range idx {
			idx[i] = rng.Intn(n)
		}
		fit, err := m.Fit(d.Subset(idx), fitCfg)
		if err != nil || !fit.Converged {
			result.Failed++
			continue
		}
		result.Fits = append(result.Fits, fit.Params)
	}

	if len(result.Fits) == 0 {
		return BootstrapResult{}, fmt.Errorf("%w: all %d bootstrap refits failed",
			ErrNoConvergence, cfg.Replicates)
	}

	grid := floats.LogSpan(make([]float64, cfg.GridSize), floats.Min(d.Conc), floats.Max(d.Conc))
	qlo := (1 - cfg.Confidence) / 2
	qhi := 1 - qlo

	for _, v := range d.Valencies() {
		band := PredictionBand{
			Valency: v,
			Conc:    append([]float64(nil), grid...),
			Lower:   make([]float64, len(grid)),
			Upper:   make([]float64, len(grid)),
		}
		preds := make([]float64, 0, len(result.Fits))
		for gi, c := range grid {
			preds = preds[:0]
			for _, p := range result.Fits {
				y, err := m.Predict(p, c, v)
				if err != nil {
					continue
				}
				preds = append(preds, y)
			}
			if len(preds) == 0 {
				return BootstrapResult{}, fmt.Errorf(
					"%w: no replicate prediction at conc %g, valency %d",
					ErrNoConvergence, c, v)
			}
			sort.Float64s(preds)
			band.Lower[gi] = stat.Quantile(qlo, stat.Empirical, preds, nil)
			band.Upper[gi] = stat.Quantile(qhi, stat.Empirical, preds, nil)
		}
		result.Bands = append(result.Bands, band)
	}

	return result, nil
}
