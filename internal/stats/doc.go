// Package stats provides the goodness-of-fit tests and summary statistics
// used by the exploratory analysis.
//
// # Goodness of Fit
//
// Test whether counts follow a Poisson distribution with rate equal to the
// sample mean:
//
//	res, err := stats.PoissonFit(customers, "Customers")
//	fmt.Printf("chi2=%.4f, p=%.4f, poisson=%v\n",
//	    res.Statistic, res.PValue, res.IsPoisson())
//
// Test whether continuous values are normally distributed (D'Agostino and
// Pearson's omnibus K² test):
//
//	res, err := stats.NormalityTest(transactions, "Crypto Transactions")
//	if res.IsNormal() {
//	    // fail to reject H0 at SignificanceLevel
//	}
//
// Both tests reject their null hypothesis when the p-value does not exceed
// SignificanceLevel.
//
// # Moments
//
//	g1 := stats.Skewness(activeUsers) // biased, third standardized moment
//	b2 := stats.Kurtosis(activeUsers) // Pearson, 3 for a normal sample
//
// # Correlation
//
//	m, err := stats.Correlations(names, columns)
//	r, _ := m.At("Crypto_Low", "Crypto_Open")
//	top := m.TopPairs(5)
package stats

import "errors"

// SignificanceLevel is the p-value threshold shared by every fit test.
const SignificanceLevel = 0.05

var (
	// ErrEmptySample is returned when no finite observations remain.
	ErrEmptySample = errors.New("stats: empty sample")
	// ErrTooFewSamples is returned when a test needs more observations.
	ErrTooFewSamples = errors.New("stats: too few samples")
)
