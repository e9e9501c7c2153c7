package stats

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat/distuv"
)

func TestPoissonFit_ConcreteScenario(t *testing.T) {
	data := []float64{1, 2, 2, 3, 3, 3, 4, 4, 4, 4}
	res, err := PoissonFit(data, "Customers")
	require.NoError(t, err)

	assert.Equal(t, "Customers", res.Label)
	assert.InDelta(t, 3.0, res.Lambda, 1e-12)
	assert.Equal(t, []float64{1, 2, 3, 4}, res.Values)
	assert.Equal(t, []float64{1, 2, 3, 4}, res.Observed)
	assert.Equal(t, 3, res.DOF)

	// pmf(1..4; 3) is proportional to 3, 4.5, 4.5, 3.375
	wantExp := []float64{10 * 3 / 15.375, 10 * 4.5 / 15.375, 10 * 4.5 / 15.375, 10 * 3.375 / 15.375}
	require.Len(t, res.Expected, 4)
	for i := range wantExp {
		assert.InDelta(t, wantExp[i], res.Expected[i], 1e-9)
	}
	assert.InDelta(t, 323.0/144.0, res.Statistic, 1e-9)
	assert.InDelta(t, 0.523517632175249, res.PValue, 1e-6)
	assert.True(t, res.IsPoisson())
	assert.Equal(t, "Likely Poisson Distribution", res.Verdict())
}

func TestPoissonFit_ExpectedTotalMatchesObserved(t *testing.T) {
	data := []float64{0, 0, 1, 1, 1, 2, 2, 3, 5, 9}
	res, err := PoissonFit(data, "sparse")
	require.NoError(t, err)

	var obs, exp float64
	for i := range res.Observed {
		obs += res.Observed[i]
		exp += res.Expected[i]
	}
	assert.InDelta(t, obs, exp, 1e-9)
	assert.InDelta(t, 10, obs, 0)
}

func TestPoissonFit_RejectsOverdispersedCounts(t *testing.T) {
	var data []float64
	for i := 0; i < 50; i++ {
		data = append(data, 0, 20)
	}
	res, err := PoissonFit(data, "bimodal")
	require.NoError(t, err)
	assert.Less(t, res.PValue, SignificanceLevel)
	assert.False(t, res.IsPoisson())
	assert.Equal(t, "Not Poisson Distributed", res.Verdict())
}

func TestPoissonFit_SingleValueHasNoDegreesOfFreedom(t *testing.T) {
	res, err := PoissonFit([]float64{2, 2, 2}, "flat")
	require.NoError(t, err)
	assert.Equal(t, 0, res.DOF)
	assert.InDelta(t, 0, res.Statistic, 1e-12)
	assert.True(t, math.IsNaN(res.PValue))
	assert.Equal(t, "Not Poisson Distributed", res.Verdict())
}

func TestPoissonFit_IgnoresNaNAndRejectsEmpty(t *testing.T) {
	res, err := PoissonFit([]float64{1, math.NaN(), 2, 2, 3, 3, 3, 4, 4, 4, 4}, "gappy")
	require.NoError(t, err)
	assert.InDelta(t, 3.0, res.Lambda, 1e-12)

	_, err = PoissonFit([]float64{math.NaN()}, "none")
	assert.ErrorIs(t, err, ErrEmptySample)
}

func TestChiSquare_IdenticalFrequencies(t *testing.T) {
	obs := []float64{4, 7, 9, 5}
	stat, p, err := ChiSquare(obs, []float64{4, 7, 9, 5})
	require.NoError(t, err)
	assert.InDelta(t, 0, stat, 1e-12)
	assert.InDelta(t, 1, p, 1e-12)
}

func TestChiSquare_Errors(t *testing.T) {
	_, _, err := ChiSquare(nil, nil)
	assert.ErrorIs(t, err, ErrEmptySample)
	_, _, err = ChiSquare([]float64{1, 2}, []float64{1})
	assert.Error(t, err)
}

func TestNormalityTest_ReferenceSample(t *testing.T) {
	// Reference values from D'Agostino-Pearson K² on this sample.
	data := []float64{148, 154, 158, 160, 161, 162, 166, 170, 182, 195, 236}
	res, err := NormalityTest(data, "heights")
	require.NoError(t, err)
	assert.Equal(t, 11, res.N)
	assert.InDelta(t, 2.7788579769903414, res.SkewZ, 1e-9)
	assert.InDelta(t, 2.3048235214240873, res.KurtosisZ, 1e-9)
	assert.InDelta(t, 13.034263121192582, res.Statistic, 1e-8)
	assert.InDelta(t, 0.001477902301310017, res.PValue, 1e-9)
	assert.False(t, res.IsNormal())
	assert.Equal(t, "Data is not normal", res.Verdict())
}

func TestNormalityTest_SmallSymmetricSample(t *testing.T) {
	data := []float64{3.1, 2.9, 3.4, 3.0, 2.8, 3.3, 3.2, 2.7, 3.0, 3.1, 2.95, 3.05}
	res, err := NormalityTest(data, "prices")
	require.NoError(t, err)
	assert.InDelta(t, 0.07223570174938156, res.Statistic, 1e-8)
	assert.InDelta(t, 0.9645266164793728, res.PValue, 1e-8)
	assert.True(t, res.IsNormal())
	assert.Equal(t, "Data is likely normal", res.Verdict())
}

// quantileSample returns n evenly spread quantiles of dist.
func quantileSample(n int, quantile func(float64) float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = quantile((float64(i) + 0.5) / float64(n))
	}
	return out
}

func TestNormalityTest_NormalVersusExponential(t *testing.T) {
	normal := quantileSample(500, distuv.UnitNormal.Quantile)
	res, err := NormalityTest(normal, "normal")
	require.NoError(t, err)
	assert.Greater(t, res.PValue, SignificanceLevel)

	expo := quantileSample(500, distuv.Exponential{Rate: 1}.Quantile)
	res, err = NormalityTest(expo, "exponential")
	require.NoError(t, err)
	assert.Less(t, res.PValue, SignificanceLevel)
}

func TestNormalityTest_SeededNormalSample(t *testing.T) {
	src := rand.New(rand.NewSource(7))
	data := make([]float64, 2000)
	for i := range data {
		data[i] = 50 + 4*src.NormFloat64()
	}
	res, err := NormalityTest(data, "seeded")
	require.NoError(t, err)
	assert.Less(t, math.Abs(res.Skewness), 0.2)
	assert.InDelta(t, 3, res.Kurtosis, 0.4)
}

func TestNormalityTest_TooFewSamples(t *testing.T) {
	_, err := NormalityTest([]float64{1, 2, 3, 4, 5, 6, 7}, "short")
	assert.ErrorIs(t, err, ErrTooFewSamples)
}

func TestSkewness(t *testing.T) {
	symmetric := []float64{-4, -3, -2, -1, 0, 1, 2, 3, 4}
	assert.InDelta(t, 0, Skewness(symmetric), 1e-12)

	centered := []float64{10, 20, 30, 40, 50}
	assert.InDelta(t, 0, Skewness(centered), 1e-12)

	outlier := []float64{1, 2, 3, 4, 5, 100}
	g1 := Skewness(outlier)
	assert.Greater(t, g1, 0.0)
	assert.InDelta(t, 1.7837298139192148, g1, 1e-9)

	assert.True(t, math.IsNaN(Skewness([]float64{0.1, 0.1, 0.1})))
	assert.True(t, math.IsNaN(Skewness(nil)))
}

func TestKurtosis(t *testing.T) {
	data := []float64{148, 154, 158, 160, 161, 162, 166, 170, 182, 195, 236}
	assert.InDelta(t, 4.991297749435572, Kurtosis(data), 1e-9)
	assert.True(t, math.IsNaN(Kurtosis([]float64{5, 5})))
}

func TestCorrelations_IdenticalColumns(t *testing.T) {
	a := []float64{1, 3, 2, 5, 4, 8}
	b := append([]float64(nil), a...)
	c := []float64{6, 5, 4, 3, 2, 1}
	m, err := Correlations([]string{"A", "B", "C"}, [][]float64{a, b, c})
	require.NoError(t, err)

	r, ok := m.At("A", "B")
	require.True(t, ok)
	assert.InDelta(t, 1.0, r, 1e-12)
	for i := range m.Columns {
		assert.Equal(t, 1.0, m.Values[i][i])
		for j := range m.Columns {
			assert.Equal(t, m.Values[i][j], m.Values[j][i])
		}
	}
	r, _ = m.At("A", "C")
	assert.Less(t, r, 0.0)
	_, ok = m.At("A", "missing")
	assert.False(t, ok)
}

func TestCorrelations_IndependentColumnsNearZero(t *testing.T) {
	src := rand.New(rand.NewSource(42))
	x := make([]float64, 2000)
	y := make([]float64, 2000)
	for i := range x {
		x[i] = src.Float64()
		y[i] = src.Float64()
	}
	m, err := Correlations([]string{"x", "y"}, [][]float64{x, y})
	require.NoError(t, err)
	r, _ := m.At("x", "y")
	assert.Less(t, math.Abs(r), 0.15)
}

func TestCorrelations_PairwiseCompleteAndConstant(t *testing.T) {
	nan := math.NaN()
	x := []float64{1, 2, nan, 4, 5}
	y := []float64{2, 4, 100, 8, 10}
	k := []float64{7, 7, 7, 7, 7}
	m, err := Correlations([]string{"x", "y", "k"}, [][]float64{x, y, k})
	require.NoError(t, err)

	r, _ := m.At("x", "y")
	assert.InDelta(t, 1.0, r, 1e-12)
	r, _ = m.At("x", "k")
	assert.True(t, math.IsNaN(r))
	assert.True(t, math.IsNaN(m.Values[2][2]))

	top := m.TopPairs(0)
	require.Len(t, top, 1)
	assert.Equal(t, PairCorr{A: "x", B: "y", R: top[0].R}, top[0])
}

func TestCorrelations_LengthMismatch(t *testing.T) {
	_, err := Correlations([]string{"a", "b"}, [][]float64{{1, 2}, {1}})
	assert.Error(t, err)
	_, err = Correlations([]string{"a"}, [][]float64{{1, 2}, {1, 2}})
	assert.Error(t, err)
}

func TestTopPairsOrdering(t *testing.T) {
	m := &CorrMatrix{
		Columns: []string{"a", "b", "c"},
		Values: [][]float64{
			{1, 0.2, -0.9},
			{0.2, 1, 0.5},
			{-0.9, 0.5, 1},
		},
	}
	top := m.TopPairs(2)
	require.Len(t, top, 2)
	assert.Equal(t, PairCorr{A: "a", B: "c", R: -0.9}, top[0])
	assert.Equal(t, PairCorr{A: "b", B: "c", R: 0.5}, top[1])
}
