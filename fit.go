package stone

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/optimize"
	"gonum.org/v1/gonum/stat"
)

// Params is the fitted parameter vector.
type Params struct {
	Scale float64 `yaml:"scale"` // response units per multivalently bound receptor
	Kd    float64 `yaml:"kd"`    // dissociation constant, molar
	Kx    float64 `yaml:"kx"`    // cross-linking constant, per receptor
}

// Validate rejects non-physical parameter values.
func (p Params) Validate() error {
	switch {
	case p.Scale < 0 || math.IsNaN(p.Scale):
		return fmt.Errorf("%w: scale = %g, must be non-negative", ErrInvalidInput, p.Scale)
	case p.Kd <= 0:
		return fmt.Errorf("%w: Kd = %g, must be positive", ErrInvalidInput, p.Kd)
	case p.Kx <= 0:
		return fmt.Errorf("%w: Kx = %g, must be positive", ErrInvalidInput, p.Kx)
	}
	return nil
}

// FitConfig controls the least-squares fit.
type FitConfig struct {
	// Start is the optimizer starting point.
	Start Params `yaml:"start"`
}

// DefaultFitConfig starts the optimizer at nanomolar affinity and weak
// cross-linking, a decade or so from typical titration optima.
func DefaultFitConfig() FitConfig {
	return FitConfig{
		Start: Params{Scale: 0.1, Kd: 1e-9, Kx: 1e-5},
	}
}

// FitResult reports a completed fit.
type FitResult struct {
	Params    Params
	SSE       float64
	RSquared  float64
	FuncEvals int
	Converged bool
}

// Predict returns the scaled model response, Scale·Rmulti, for one
// (concentration, valency) pair.
func (m Model) Predict(p Params, conc float64, valency int) (float64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	out, err := m.Eval(conc, valency, p.Kd, p.Kx)
	if err != nil {
		return 0, err
	}
	return p.Scale * out.Rmulti, nil
}

// Residuals returns observed − predicted for every measurement.
func (m Model) Residuals(p Params, d Dataset) ([]float64, error) {
	res := make([]float64, d.Len())
	for i := 0; i < d.Len(); i++ {
		pred, err := m.Predict(p, d.Conc[i], d.Valency[i])
		if err != nil {
			return nil, fmt.Errorf("point %d (conc %g, valency %d): %w",
				i, d.Conc[i], d.Valency[i], err)
		}
		res[i] = d.Response[i] - pred
	}
	return res, nil
}

// SSE returns the sum of squared residuals.
func (m Model) SSE(p Params, d Dataset) (float64, error) {
	res, err := m.Residuals(p, d)
	if err != nil {
		return 0, err
	}
	var sse float64
	for _, r := range res {
		sse += r * r
	}
	return sse, nil
}

// Fit minimizes the SSE over {Scale, Kd, Kx} with Nelder-Mead. All three
// parameters are positive scale-like quantities spanning decades, so the
// search runs in log10 space and results are back-transformed. Points the
// solver cannot evaluate surface as +Inf objective, steering the simplex
// away rather than aborting the fit.
func (m Model) Fit(d Dataset, cfg FitConfig) (FitResult, error) {
	if d.Len() == 0 {
		return FitResult{}, fmt.Errorf("%w: empty dataset", ErrInvalidInput)
	}
	if err := cfg.Start.Validate(); err != nil {
		return FitResult{}, fmt.Errorf("fit start point: %w", err)
	}
	if cfg.Start.Scale == 0 {
		return FitResult{}, fmt.Errorf("%w: fit start scale must be positive", ErrInvalidInput)
	}

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			sse, err := m.SSE(paramsFromLog(x), d)
			if err != nil {
				return math.Inf(1)
			}
			return sse
		},
	}

	result, err := optimize.Minimize(problem, logParams(cfg.Start), nil, &optimize.NelderMead{})
	if err != nil {
		return FitResult{}, fmt.Errorf("least-squares minimization: %w", err)
	}

	p := paramsFromLog(result.X)
	sse := result.F

	// R² against the mean-response null model.
	mean := stat.Mean(d.Response, nil)
	var sst float64
	for _, y := range d.Response {
		sst += (y - mean) * (y - mean)
	}
	r2 := math.NaN()
	if sst > 0 {
		r2 = 1 - sse/sst
	}

	return FitResult{
		Params:    p,
		SSE:       sse,
		RSquared:  r2,
		FuncEvals: result.FuncEvaluations,
		Converged: result.Status != optimize.Failure && !math.IsInf(sse, 1),
	}, nil
}

func logParams(p Params) []float64 {
	return []float64{math.Log10(p.Scale), math.Log10(p.Kd), math.Log10(p.Kx)}
}

func paramsFromLog(x []float64) Params {
	return Params{
		Scale: math.Pow(10, x[0]),
		Kd:    math.Pow(10, x[1]),
		Kx:    math.Pow(10, x[2]),
	}
}
