package stats

import (
	"fmt"
	"math"
)

// NormalityResult represents the result of D'Agostino and Pearson's omnibus test.
type NormalityResult struct {
	Label     string
	N         int
	Skewness  float64 // biased sample skewness
	Kurtosis  float64 // biased Pearson kurtosis
	SkewZ     float64 // z-score of the skewness test
	KurtosisZ float64 // z-score of the kurtosis test
	Statistic float64 // SkewZ² + KurtosisZ²
	PValue    float64
}

// IsNormal reports whether normality is not rejected at SignificanceLevel.
func (r *NormalityResult) IsNormal() bool { return r.PValue > SignificanceLevel }

// Verdict returns the human-readable conclusion of the test.
func (r *NormalityResult) Verdict() string {
	if r.IsNormal() {
		return "Data is likely normal"
	}
	return "Data is not normal"
}

// NormalityTest runs the K² omnibus test combining the skewness and kurtosis
// z-scores; K² follows chi2(2) under the null hypothesis of normality.
// NaN values are ignored. At least 8 observations are required.
func NormalityTest(data []float64, label string) (*NormalityResult, error) {
	x := finite(data)
	n := len(x)
	if n < 8 {
		return nil, fmt.Errorf("%w: normality test needs at least 8 observations, got %d", ErrTooFewSamples, n)
	}
	g1 := Skewness(x)
	b2 := Kurtosis(x)
	zs := skewZ(g1, n)
	zk := kurtosisZ(b2, n)
	k2 := zs*zs + zk*zk
	return &NormalityResult{
		Label:     label,
		N:         n,
		Skewness:  g1,
		Kurtosis:  b2,
		SkewZ:     zs,
		KurtosisZ: zk,
		Statistic: k2,
		PValue:    chiSquaredSurvival(k2, 2),
	}, nil
}

// skewZ transforms the sample skewness into an approximately standard normal
// deviate (D'Agostino, 1970).
func skewZ(g1 float64, n int) float64 {
	nf := float64(n)
	y := g1 * math.Sqrt((nf+1)*(nf+3)/(6*(nf-2)))
	beta2 := 3 * (nf*nf + 27*nf - 70) * (nf + 1) * (nf + 3) /
		((nf - 2) * (nf + 5) * (nf + 7) * (nf + 9))
	w2 := -1 + math.Sqrt(2*(beta2-1))
	delta := 1 / math.Sqrt(0.5*math.Log(w2))
	alpha := math.Sqrt(2 / (w2 - 1))
	return delta * math.Asinh(y/alpha)
}

// kurtosisZ transforms the Pearson kurtosis into an approximately standard
// normal deviate (Anscombe and Glynn, 1983).
func kurtosisZ(b2 float64, n int) float64 {
	nf := float64(n)
	e := 3 * (nf - 1) / (nf + 1)
	varb2 := 24 * nf * (nf - 2) * (nf - 3) / ((nf + 1) * (nf + 1) * (nf + 3) * (nf + 5))
	x := (b2 - e) / math.Sqrt(varb2)
	sqrtBeta1 := 6 * (nf*nf - 5*nf + 2) / ((nf + 7) * (nf + 9)) *
		math.Sqrt(6*(nf+3)*(nf+5)/(nf*(nf-2)*(nf-3)))
	a := 6 + 8/sqrtBeta1*(2/sqrtBeta1+math.Sqrt(1+4/(sqrtBeta1*sqrtBeta1)))
	term1 := 1 - 2/(9*a)
	denom := 1 + x*math.Sqrt(2/(a-4))
	if denom == 0 {
		return math.NaN()
	}
	term2 := math.Copysign(math.Cbrt((1-2/a)/math.Abs(denom)), denom)
	return (term1 - term2) / math.Sqrt(2/(9*a))
}
