package stone

import (
	"errors"
	"fmt"
	"math"
)

// Rtot is the total receptor count per cell, fixed for the experiment
// the bundled dataset came from.
const Rtot = 24000.0

var (
	// ErrInvalidInput marks model evaluation with non-physical inputs.
	ErrInvalidInput = errors.New("invalid model input")

	// ErrNoConvergence marks a mass-balance solve that did not reach
	// the configured tolerance within the iteration cap.
	ErrNoConvergence = errors.New("equilibrium solver did not converge")
)

// SolverConfig controls the mass-balance root finder.
type SolverConfig struct {
	// Tol is the relative mass-balance tolerance: the solve is accepted
	// when the residual receptor count falls below Tol·Rtot.
	Tol float64 `yaml:"tol"`

	// MaxIter caps Newton/bisection iterations.
	MaxIter int `yaml:"max_iter"`
}

// DefaultSolverConfig returns tolerances tight enough that the residual
// is far below one receptor per cell.
func DefaultSolverConfig() SolverConfig {
	return SolverConfig{
		Tol:     1e-9,
		MaxIter: 100,
	}
}

// Output holds the equilibrium species for one (concentration, valency) pair.
type Output struct {
	Req    float64 // free receptors per cell
	Lbound float64 // ligand bound at any valency
	Rbound float64 // receptors bound at any valency
	Rmulti float64 // receptors bound multivalently (i ≥ 2)
}

// Model evaluates Stone-model equilibria for a fixed receptor count.
type Model struct {
	Rtot   float64
	Solver SolverConfig
}

// NewModel returns a model with the experimental receptor count and
// default solver tolerances.
func NewModel() Model {
	return Model{Rtot: Rtot, Solver: DefaultSolverConfig()}
}

// Eval computes the equilibrium binding outputs for ligand concentration
// l0 (molar), the given valency, dissociation constant kd (molar), and
// cross-linking constant kx (per receptor).
//
// All inputs must be positive (valency ≥ 1); violations return
// ErrInvalidInput. A mass balance that cannot be driven below tolerance
// returns ErrNoConvergence.
func (m Model) Eval(l0 float64, valency int, kd, kx float64) (Output, error) {
	switch {
	case m.Rtot <= 0:
		return Output{}, fmt.Errorf("%w: Rtot = %g, must be positive", ErrInvalidInput, m.Rtot)
	case l0 <= 0:
		return Output{}, fmt.Errorf("%w: concentration = %g, must be positive", ErrInvalidInput, l0)
	case valency < 1:
		return Output{}, fmt.Errorf("%w: valency = %d, must be at least 1", ErrInvalidInput, valency)
	case kd <= 0:
		return Output{}, fmt.Errorf("%w: Kd = %g, must be positive", ErrInvalidInput, kd)
	case kx <= 0:
		return Output{}, fmt.Errorf("%w: Kx = %g, must be positive", ErrInvalidInput, kx)
	}

	l := l0 / kd // dimensionless free-ligand term
	phi, err := m.solvePhi(l, kx, valency)
	if err != nil {
		return Output{}, err
	}

	req := phi / kx
	v := float64(valency)

	// Closed-form binomial sums over v_i,eq:
	//   Lbound = (L0/Kd)·Req·((1+phi)^v − 1)/phi
	//   Rbound = v·(L0/Kd)·Req·(1+phi)^(v-1)
	//   Rmulti = Rbound − v·(L0/Kd)·Req     (remove the i=1 term)
	// Expm1/Log1p keep Lbound stable as phi → 0.
	rbound := v * l * req * math.Pow(1+phi, v-1)
	lbound := l * req * math.Expm1(v*math.Log1p(phi)) / phi

	return Output{
		Req:    req,
		Lbound: lbound,
		Rbound: rbound,
		Rmulti: rbound - v*l*req,
	}, nil
}

// solvePhi finds the root of the receptor mass balance in phi = Kx·Req:
//
//	f(phi) = (phi/Kx)·(1 + v·l·(1+phi)^(v-1)) − Rtot = 0
//
// f is strictly increasing with f(0) = −Rtot < 0 and f(Kx·Rtot) ≥ 0, so
// the root is bracketed in [0, Kx·Rtot]. Newton steps that leave the
// bracket fall back to bisection.
func (m Model) solvePhi(l, kx float64, valency int) (float64, error) {
	v := float64(valency)

	f := func(phi float64) float64 {
		return (phi/kx)*(1+v*l*math.Pow(1+phi, v-1)) - m.Rtot
	}
	df := func(phi float64) float64 {
		return (1+v*l*math.Pow(1+phi, v-1))/kx +
			(phi/kx)*v*(v-1)*l*math.Pow(1+phi, v-2)
	}

	lo, hi := 0.0, kx*m.Rtot
	phi := 1.0
	if phi >= hi {
		phi = hi / 2
	}

	tol := m.Solver.Tol * m.Rtot
	for i := 0; i < m.Solver.MaxIter; i++ {
		fv := f(phi)
		if math.Abs(fv) <= tol {
			return phi, nil
		}

		// Tighten the bracket around the current iterate.
		if fv > 0 {
			hi = phi
		} else {
			lo = phi
		}

		next := phi - fv/df(phi)
		if !(next > lo && next < hi) || math.IsNaN(next) {
			next = 0.5 * (lo + hi)
		}
		phi = next
	}

	if math.Abs(f(phi)) <= tol {
		return phi, nil
	}
	return 0, fmt.Errorf("%w: residual %.3g receptors after %d iterations (tol %.3g)",
		ErrNoConvergence, f(phi), m.Solver.MaxIter, tol)
}
