package stats

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// PoissonResult represents the result of a Poisson goodness-of-fit test.
type PoissonResult struct {
	Label     string
	Lambda    float64   // sample mean used as the Poisson rate
	Values    []float64 // distinct observed values, ascending
	Observed  []float64 // count of each distinct value
	Expected  []float64 // rescaled expected count of each distinct value
	Statistic float64
	PValue    float64
	DOF       int
}

// IsPoisson reports whether the fit is not rejected at SignificanceLevel.
func (r *PoissonResult) IsPoisson() bool { return r.PValue > SignificanceLevel }

// Verdict returns the human-readable conclusion of the test.
func (r *PoissonResult) Verdict() string {
	if r.IsPoisson() {
		return "Likely Poisson Distribution"
	}
	return "Not Poisson Distributed"
}

// PoissonFit tests whether data follows a Poisson distribution whose rate is
// the sample mean. Expected counts are n*pmf(v) for each distinct value v,
// then rescaled so they sum to the observed total; no cells are pooled.
// NaN values are ignored.
func PoissonFit(data []float64, label string) (*PoissonResult, error) {
	x := finite(data)
	if len(x) == 0 {
		return nil, ErrEmptySample
	}
	values, counts := uniqueCounts(x)
	lambda := stat.Mean(x, nil)

	pois := distuv.Poisson{Lambda: lambda}
	n := float64(len(x))
	expected := make([]float64, len(values))
	for i, v := range values {
		expected[i] = n * pois.Prob(v)
	}
	floats.Scale(floats.Sum(counts)/floats.Sum(expected), expected)

	chi, p, err := ChiSquare(counts, expected)
	if err != nil {
		return nil, err
	}
	return &PoissonResult{
		Label:     label,
		Lambda:    lambda,
		Values:    values,
		Observed:  counts,
		Expected:  expected,
		Statistic: chi,
		PValue:    p,
		DOF:       len(values) - 1,
	}, nil
}

// uniqueCounts returns the sorted distinct values of x and how often each occurs.
func uniqueCounts(x []float64) (values, counts []float64) {
	sorted := make([]float64, len(x))
	copy(sorted, x)
	sort.Float64s(sorted)
	for i, v := range sorted {
		if i > 0 && v == sorted[i-1] {
			counts[len(counts)-1]++
			continue
		}
		values = append(values, v)
		counts = append(counts, 1)
	}
	return values, counts
}
