package stone

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeaveOneOutShape(t *testing.T) {
	m := NewModel()
	d := TitrationData()

	loo, err := m.LeaveOneOut(d, DefaultFitConfig())
	require.NoError(t, err)

	require.Len(t, loo.Predicted, d.Len())
	require.Len(t, loo.Residual, d.Len())
	require.Len(t, loo.Fits, d.Len())

	var sse float64
	for i, r := range loo.Residual {
		assert.Equal(t, d.Response[i]-loo.Predicted[i], r)
		sse += r * r
	}
	assert.Equal(t, sse, loo.SSE)
	assert.InDelta(t, math.Sqrt(sse/float64(d.Len())), loo.RMSE, 1e-12)

	t.Logf("✓ LOO: SSE=%.4g RMSE=%.4g over %d folds", loo.SSE, loo.RMSE, d.Len())
}

// TestLeaveOneOutDeterministic: no randomness anywhere in LOO, so two
// runs must agree bit for bit.
func TestLeaveOneOutDeterministic(t *testing.T) {
	m := NewModel()
	d := TitrationData()
	cfg := DefaultFitConfig()

	a, err := m.LeaveOneOut(d, cfg)
	require.NoError(t, err)
	b, err := m.LeaveOneOut(d, cfg)
	require.NoError(t, err)

	require.Equal(t, a.Predicted, b.Predicted)
	require.Equal(t, a.SSE, b.SSE)

	t.Logf("✓ Two LOO runs identical (SSE=%.6g)", a.SSE)
}

// TestLeaveOneOutOnSyntheticData: with noise-free data every held-out
// prediction should land close to the observation.
func TestLeaveOneOutOnSyntheticData(t *testing.T) {
	m := NewModel()
	d := syntheticData(t, m, truthParams)

	loo, err := m.LeaveOneOut(d, FitConfig{Start: truthParams})
	require.NoError(t, err)

	var sst float64
	for _, y := range d.Response {
		sst += y * y
	}
	require.Less(t, loo.SSE, 1e-6*sst, "held-out error should be tiny without noise")
}

func TestLeaveOneOutTooFewPoints(t *testing.T) {
	m := NewModel()
	d := TitrationData().Subset([]int{0})

	_, err := m.LeaveOneOut(d, DefaultFitConfig())
	require.ErrorIs(t, err, ErrInvalidInput)
}
