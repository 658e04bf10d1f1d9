package stone

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// SweepPoint is one step of a parameter sweep.
type SweepPoint struct {
	Factor float64 // multiplier applied to the baseline value
	Value  float64 // parameter value at this step
	SSE    float64
}

// ParamSweep is the one-at-a-time sweep for a single parameter.
type ParamSweep struct {
	Name   string
	Points []SweepPoint
	// Spread is max − min SSE over the sweep, the local sensitivity measure.
	Spread float64
}

// SensitivityResult ranks the parameters by how strongly the fit error
// responds to perturbing them alone.
type SensitivityResult struct {
	Baseline       float64 // SSE at the unperturbed parameters
	Sweeps         []ParamSweep
	MostSensitive  string
	LeastSensitive string
}

// Sensitivity perturbs each parameter of p one at a time over a log-spaced
// [1/10, 10] factor range, holding the others fixed, and reports the SSE at
// every step. gridSize log-spaced factors per parameter; use an odd count
// to include the unperturbed factor 1.
func (m Model) Sensitivity(d Dataset, p Params, gridSize int) (SensitivityResult, error) {
	if gridSize < 2 {
		return SensitivityResult{}, fmt.Errorf("%w: gridSize = %d, need at least 2",
			ErrInvalidInput, gridSize)
	}
	if err := p.Validate(); err != nil {
		return SensitivityResult{}, err
	}

	baseline, err := m.SSE(p, d)
	if err != nil {
		return SensitivityResult{}, fmt.Errorf("baseline SSE: %w", err)
	}

	factors := floats.LogSpan(make([]float64, gridSize), 0.1, 10)
	apply := []struct {
		name string
		with func(factor float64) Params
		base float64
	}{
		{"Scale", func(f float64) Params { q := p; q.Scale *= f; return q }, p.Scale},
		{"Kd", func(f float64) Params { q := p; q.Kd *= f; return q }, p.Kd},
		{"Kx", func(f float64) Params { q := p; q.Kx *= f; return q }, p.Kx},
	}

	result := SensitivityResult{Baseline: baseline}
	for _, a := range apply {
		sweep := ParamSweep{Name: a.name, Points: make([]SweepPoint, 0, gridSize)}
		lo, hi := 0.0, 0.0
		for i, f := range factors {
			sse, err := m.SSE(a.with(f), d)
			if err != nil {
				return SensitivityResult{}, fmt.Errorf("%s at factor %g: %w", a.name, f, err)
			}
			sweep.Points = append(sweep.Points, SweepPoint{Factor: f, Value: a.base * f, SSE: sse})
			if i == 0 {
				lo, hi = sse, sse
			} else {
				if sse < lo {
					lo = sse
				}
				if sse > hi {
					hi = sse
				}
			}
		}
		sweep.Spread = hi - lo
		result.Sweeps = append(result.Sweeps, sweep)
	}

	most, least := result.Sweeps[0], result.Sweeps[0]
	for _, s := range result.Sweeps[1:] {
		if s.Spread > most.Spread {
			most = s
		}
		if s.Spread < least.Spread {
			least = s
		}
	}
	result.MostSensitive = most.Name
	result.LeastSensitive = least.Name

	return result, nil
}
