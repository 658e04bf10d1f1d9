package stone

import (
	"fmt"
	"math"
)

// LOOResult holds leave-one-out cross-validation output: for each
// measurement, the prediction from a model fitted without it.
type LOOResult struct {
	Predicted []float64 // held-out prediction per point
	Residual  []float64 // observed − held-out prediction
	Fits      []Params  // fitted parameters per fold
	SSE       float64   // out-of-sample sum of squared error
	RMSE      float64
}

// LeaveOneOut fits the model on every (N−1)-point fold and predicts the
// held-out measurement. There is no randomness: folds, starting point,
// and optimizer are all deterministic, so repeated runs agree exactly.
func (m Model) LeaveOneOut(d Dataset, cfg FitConfig) (LOOResult, error) {
	n := d.Len()
	if n < 2 {
		return LOOResult{}, fmt.Errorf("%w: need at least 2 points for cross-validation, got %d",
			ErrInvalidInput, n)
	}

	out := LOOResult{
		Predicted: make([]float64, n),
		Residual:  make([]float64, n),
		Fits:      make([]Params, n),
	}

	for i := 0; i < n; i++ {
		fit, err := m.Fit(d.Drop(i), cfg)
		if err != nil {
			return LOOResult{}, fmt.Errorf("fold %d: %w", i, err)
		}

		pred, err := m.Predict(fit.Params, d.Conc[i], d.Valency[i])
		if err != nil {
			return LOOResult{}, fmt.Errorf("fold %d held-out prediction: %w", i, err)
		}

		out.Fits[i] = fit.Params
		out.Predicted[i] = pred
		out.Residual[i] = d.Response[i] - pred
		out.SSE += out.Residual[i] * out.Residual[i]
	}

	out.RMSE = math.Sqrt(out.SSE / float64(n))
	return out, nil
}
