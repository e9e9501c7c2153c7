package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Skewness returns the biased sample skewness m3/m2^1.5 of the finite values
// in x. It is NaN for an empty or constant sample.
func Skewness(x []float64) float64 {
	x = finite(x)
	m2, ok := secondMoment(x)
	if !ok {
		return math.NaN()
	}
	return stat.Moment(3, x, nil) / math.Pow(m2, 1.5)
}

// Kurtosis returns the biased Pearson kurtosis m4/m2^2 of the finite values
// in x (3 for a normal sample). It is NaN for an empty or constant sample.
func Kurtosis(x []float64) float64 {
	x = finite(x)
	m2, ok := secondMoment(x)
	if !ok {
		return math.NaN()
	}
	return stat.Moment(4, x, nil) / (m2 * m2)
}

// secondMoment returns the population variance, reporting false when it is
// indistinguishable from zero relative to the mean.
func secondMoment(x []float64) (float64, bool) {
	if len(x) == 0 {
		return 0, false
	}
	m2 := stat.Moment(2, x, nil)
	eps := math.Nextafter(1, 2) - 1
	mean := stat.Mean(x, nil)
	if m2 <= (eps*mean)*(eps*mean) {
		return m2, false
	}
	return m2, true
}
