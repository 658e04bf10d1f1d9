package stone

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// truthParams generated the bundled titration (before noise), so fits and
// sweeps around it are well conditioned.
var truthParams = Params{Scale: 0.15, Kd: 1.5e-9, Kx: 5e-5}

// syntheticData builds a noise-free dataset whose responses are exact
// model predictions at p, on the titration's concentration/valency grid.
func syntheticData(t *testing.T, m Model, p Params) Dataset {
	t.Helper()

	d := TitrationData()
	for i := 0; i < d.Len(); i++ {
		pred, err := m.Predict(p, d.Conc[i], d.Valency[i])
		require.NoError(t, err)
		d.Response[i] = pred
	}
	return d
}

// TestResidualsZeroOnExactMatch: observed == predicted must give exactly
// zero residuals.
func TestResidualsZeroOnExactMatch(t *testing.T) {
	m := NewModel()
	d := syntheticData(t, m, truthParams)

	res, err := m.Residuals(truthParams, d)
	require.NoError(t, err)
	for i, r := range res {
		require.Zero(t, r, "residual[%d]", i)
	}

	sse, err := m.SSE(truthParams, d)
	require.NoError(t, err)
	require.Zero(t, sse)

	t.Logf("✓ %d residuals exactly zero on self-consistent data", len(res))
}

// TestFitRecoversSyntheticOptimum: on noise-free data the SSE optimum is
// zero at the generating parameters, and the fit must stay there.
func TestFitRecoversSyntheticOptimum(t *testing.T) {
	m := NewModel()
	d := syntheticData(t, m, truthParams)

	res, err := m.Fit(d, FitConfig{Start: truthParams})
	require.NoError(t, err)
	require.True(t, res.Converged)
	require.Less(t, res.SSE, 1e-6)

	require.InEpsilon(t, truthParams.Scale, res.Params.Scale, 0.05)
	require.InEpsilon(t, truthParams.Kd, res.Params.Kd, 0.05)
	require.InEpsilon(t, truthParams.Kx, res.Params.Kx, 0.05)

	t.Logf("✓ Fit held the zero-SSE optimum: scale=%.4g Kd=%.4g Kx=%.4g",
		res.Params.Scale, res.Params.Kd, res.Params.Kx)
}

// TestFitTitration fits the real dataset from the default start.
func TestFitTitration(t *testing.T) {
	m := NewModel()

	res, err := m.Fit(TitrationData(), DefaultFitConfig())
	require.NoError(t, err)

	AssertFitQuality(t, res, 0.90)

	require.Positive(t, res.Params.Scale)
	require.Positive(t, res.Params.Kd)
	require.Positive(t, res.Params.Kx)
}

func TestFitRejectsBadInput(t *testing.T) {
	m := NewModel()

	_, err := m.Fit(Dataset{}, DefaultFitConfig())
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = m.Fit(TitrationData(), FitConfig{Start: Params{Scale: 0.1, Kd: -1, Kx: 1e-5}})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = m.Fit(TitrationData(), FitConfig{Start: Params{Scale: 0, Kd: 1e-9, Kx: 1e-5}})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestPredictValidatesParams(t *testing.T) {
	m := NewModel()

	_, err := m.Predict(Params{Scale: -1, Kd: 1e-9, Kx: 1e-5}, 1e-9, 2)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = m.Predict(truthParams, -1e-9, 2)
	require.ErrorIs(t, err, ErrInvalidInput)
}
