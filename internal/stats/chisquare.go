package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// ChiSquare compares observed and expected frequencies. It returns the
// statistic sum((o-e)^2/e) and its upper-tail p-value with len-1 degrees of
// freedom. With a single category the p-value is NaN.
func ChiSquare(observed, expected []float64) (statistic, pValue float64, err error) {
	if len(observed) == 0 {
		return 0, 0, ErrEmptySample
	}
	if len(observed) != len(expected) {
		return 0, 0, fmt.Errorf("chi-square: %d observed vs %d expected frequencies", len(observed), len(expected))
	}
	for i, o := range observed {
		d := o - expected[i]
		statistic += d * d / expected[i]
	}
	return statistic, chiSquaredSurvival(statistic, len(observed)-1), nil
}

// chiSquaredSurvival is P(X >= x) for X ~ chi2(dof).
func chiSquaredSurvival(x float64, dof int) float64 {
	if dof < 1 || math.IsNaN(x) {
		return math.NaN()
	}
	if math.IsInf(x, 1) {
		return 0
	}
	return distuv.ChiSquared{K: float64(dof)}.Survival(x)
}

// finite returns the non-NaN, non-Inf values of x.
func finite(x []float64) []float64 {
	if !floats.HasNaN(x) && !hasInf(x) {
		return x
	}
	out := make([]float64, 0, len(x))
	for _, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		out = append(out, v)
	}
	return out
}

func hasInf(x []float64) bool {
	for _, v := range x {
		if math.IsInf(v, 0) {
			return true
		}
	}
	return false
}
