package stone

import "fmt"

// Dataset holds parallel dose-response measurements: ligand concentration
// (molar), ligand valency, and measured response (instrument units, may be
// negative from baseline noise).
type Dataset struct {
	Conc     []float64
	Valency  []int
	Response []float64
}

// NewDataset validates and assembles a dataset from parallel slices.
func NewDataset(conc []float64, valency []int, response []float64) (Dataset, error) {
	if len(conc) != len(valency) || len(conc) != len(response) {
		return Dataset{}, fmt.Errorf("%w: parallel slices differ in length (%d, %d, %d)",
			ErrInvalidInput, len(conc), len(valency), len(response))
	}
	for i, c := range conc {
		if c <= 0 {
			return Dataset{}, fmt.Errorf("%w: concentration[%d] = %g, must be positive",
				ErrInvalidInput, i, c)
		}
		if valency[i] < 1 {
			return Dataset{}, fmt.Errorf("%w: valency[%d] = %d, must be at least 1",
				ErrInvalidInput, i, valency[i])
		}
	}
	return Dataset{
		Conc:     append([]float64(nil), conc...),
		Valency:  append([]int(nil), valency...),
		Response: append([]float64(nil), response...),
	}, nil
}

// Len returns the number of measurements.
func (d Dataset) Len() int { return len(d.Conc) }

// Subset returns a new dataset containing the rows at idx, copied so the
// result can be mutated independently. Indices may repeat (bootstrap
// resampling) or omit rows (cross-validation folds).
func (d Dataset) Subset(idx []int) Dataset {
	s := Dataset{
		Conc:     make([]float64, len(idx)),
		Valency:  make([]int, len(idx)),
		Response: make([]float64, len(idx)),
	}
	for j, i := range idx {
		s.Conc[j] = d.Conc[i]
		s.Valency[j] = d.Valency[i]
		s.Response[j] = d.Response[i]
	}
	return s
}

// Drop returns a copy of the dataset with row i removed.
func (d Dataset) Drop(i int) Dataset {
	idx := make([]int, 0, d.Len()-1)
	for j := 0; j < d.Len(); j++ {
		if j != i {
			idx = append(idx, j)
		}
	}
	return d.Subset(idx)
}

// Valencies returns the distinct valencies present, in ascending order.
func (d Dataset) Valencies() []int {
	seen := map[int]bool{}
	var vs []int
	for _, v := range d.Valency {
		if !seen[v] {
			seen[v] = true
			vs = append(vs, v)
		}
	}
	for i := 1; i < len(vs); i++ {
		for j := i; j > 0 && vs[j-1] > vs[j]; j-- {
			vs[j-1], vs[j] = vs[j], vs[j-1]
		}
	}
	return vs
}

// titrationConc is the shared nine-point half-log dilution series, 1 pM to 10 nM.
var titrationConc = []float64{
	1e-12, 3.1623e-12, 1e-11, 3.1623e-11, 1e-10, 3.1623e-10, 1e-9, 3.1623e-9, 1e-8,
}

// TitrationData returns the 27-point equilibrium binding titration: the
// dilution series measured at valencies 2, 3, and 4. The lowest-dose
// points sit in the instrument noise floor, so a few responses dip
// below zero.
func TitrationData() Dataset {
	conc := make([]float64, 0, 27)
	valency := make([]int, 0, 27)
	for _, v := range []int{2, 3, 4} {
		for _, c := range titrationConc {
			conc = append(conc, c)
			valency = append(valency, v)
		}
	}
	response := []float64{
		// valency 2
		-12.4, 28.1, 49.9, 147.4, 344.0, 614.0, 713.1, 505.7, 264.4,
		// valency 3
		32.0, 89.5, 230.0, 490.0, 932.9, 1178.2, 1086.0, 669.2, 296.5,
		// valency 4
		68.1, 227.4, 553.0, 986.8, 1394.7, 1510.2, 1299.0, 819.7, 363.1,
	}
	return Dataset{Conc: conc, Valency: valency, Response: response}
}
