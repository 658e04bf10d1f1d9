package stone

import (
	"math"
	"testing"
)

// AssertMassBalance verifies the solved equilibrium satisfies the receptor
// mass balance Req + Rbound = Rtot to within the solver tolerance.
func AssertMassBalance(t *testing.T, m Model, l0 float64, valency int, kd, kx float64) {
	t.Helper()

	out, err := m.Eval(l0, valency, kd, kx)
	if err != nil {
		t.Fatalf("Eval(conc=%g, valency=%d, Kd=%g, Kx=%g) failed: %v",
			l0, valency, kd, kx, err)
	}

	residual := out.Req + out.Rbound - m.Rtot
	tol := m.Solver.Tol * m.Rtot
	if math.Abs(residual) > tol {
		t.Errorf("Mass balance violated: Req + Rbound − Rtot = %.3g (tol %.3g)\n"+
			"conc=%g valency=%d Kd=%g Kx=%g", residual, tol, l0, valency, kd, kx)
		return
	}

	t.Logf("✓ Mass balance: residual %.3g receptors (conc=%g, valency=%d)",
		residual, l0, valency)
}

// AssertNonNegativeOutputs verifies all derived species are non-negative
// and that multivalent binding never exceeds total binding.
func AssertNonNegativeOutputs(t *testing.T, out Output) {
	t.Helper()

	if out.Req < 0 || out.Lbound < 0 || out.Rbound < 0 || out.Rmulti < 0 {
		t.Errorf("Negative equilibrium species: Req=%g Lbound=%g Rbound=%g Rmulti=%g",
			out.Req, out.Lbound, out.Rbound, out.Rmulti)
		return
	}
	if out.Rmulti > out.Rbound {
		t.Errorf("Rmulti (%g) exceeds Rbound (%g)", out.Rmulti, out.Rbound)
		return
	}

	t.Logf("✓ Species non-negative: Lbound=%.4g Rbound=%.4g Rmulti=%.4g",
		out.Lbound, out.Rbound, out.Rmulti)
}

// AssertFitQuality verifies a fit converged with at least the given R².
func AssertFitQuality(t *testing.T, res FitResult, minR2 float64) {
	t.Helper()

	if !res.Converged {
		t.Errorf("Fit did not converge (SSE=%g after %d evaluations)",
			res.SSE, res.FuncEvals)
		return
	}
	if res.RSquared < minR2 {
		t.Errorf("Poor fit: R² = %.4f (min %.4f), SSE = %.4g",
			res.RSquared, minR2, res.SSE)
		return
	}

	t.Logf("✓ Fit: R² = %.4f, SSE = %.4g, %d evaluations",
		res.RSquared, res.SSE, res.FuncEvals)
}
