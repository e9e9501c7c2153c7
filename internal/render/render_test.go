package render

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KaramelBytes/edastat/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistogramBinsCoverAllFiniteValues(t *testing.T) {
	vals := []float64{1, 2, 2, 3, 3, 3, 4, 4, 4, 4, math.NaN()}
	opt := DefaultHistOptions()
	opt.Bins = 4
	fig, err := Histogram(vals, "Customers Distribution", opt)
	require.NoError(t, err)

	require.Len(t, fig.Bins, 4)
	want := []float64{1, 2, 3, 4}
	for i, b := range fig.Bins {
		assert.Equal(t, want[i], b.Count, "bin %d", i)
	}
	assert.Equal(t, 1.0, fig.Bins[0].Min)
	assert.Equal(t, 4.0, fig.Bins[3].Max)
	assert.InDelta(t, 0.75, fig.Bins[1].Max-fig.Bins[1].Min, 1e-12)

	assert.Equal(t, "customers-distribution", fig.Slug)
	assert.Equal(t, "Customers Distribution", fig.Plot.Title.Text)
	assert.Equal(t, "Customers Distribution", fig.Plot.X.Label.Text)
	assert.Equal(t, "Frequency", fig.Plot.Y.Label.Text)
}

func TestHistogramDefaultBins(t *testing.T) {
	vals := make([]float64, 100)
	for i := range vals {
		vals[i] = float64(i)
	}
	opt := DefaultHistOptions()
	opt.XLabel = "Score"
	fig, err := Histogram(vals, "Scores", opt)
	require.NoError(t, err)
	require.Len(t, fig.Bins, 8)
	total := 0.0
	for _, b := range fig.Bins {
		total += b.Count
	}
	assert.Equal(t, 100.0, total)
	assert.Equal(t, "Score", fig.Plot.X.Label.Text)
}

func TestHistogramConstantValues(t *testing.T) {
	opt := DefaultHistOptions()
	opt.Bins = 1
	fig, err := Histogram([]float64{7, 7, 7}, "Flat", opt)
	require.NoError(t, err)
	require.Len(t, fig.Bins, 1)
	assert.Equal(t, 6.5, fig.Bins[0].Min)
	assert.Equal(t, 7.5, fig.Bins[0].Max)
	assert.Equal(t, 3.0, fig.Bins[0].Count)
}

func TestHistogramErrors(t *testing.T) {
	opt := DefaultHistOptions()
	_, err := Histogram([]float64{math.NaN()}, "Empty", opt)
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = Histogram(nil, "Empty", opt)
	assert.ErrorIs(t, err, ErrEmpty)

	bad := opt
	bad.Bins = 0
	_, err = Histogram([]float64{1}, "Zero", bad)
	assert.Error(t, err)

	bad = opt
	bad.Color = "not-a-color"
	_, err = Histogram([]float64{1}, "Color", bad)
	assert.ErrorContains(t, err, "unknown color")
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("SkyBlue")
	require.NoError(t, err)
	r, g, b, _ := c.RGBA()
	assert.Equal(t, uint32(0x87), r>>8)
	assert.Equal(t, uint32(0xce), g>>8)
	assert.Equal(t, uint32(0xeb), b>>8)

	c, err = ParseColor("#102030")
	require.NoError(t, err)
	r, _, _, _ = c.RGBA()
	assert.Equal(t, uint32(0x10), r>>8)
}

func sampleMatrix(t *testing.T) *stats.CorrMatrix {
	t.Helper()
	m, err := stats.Correlations(
		[]string{"a", "b", "c"},
		[][]float64{{1, 2, 3, 4}, {2, 4, 6, 8}, {4, 3, 2, 1}},
	)
	require.NoError(t, err)
	return m
}

func TestHeatmapGridOrientation(t *testing.T) {
	m := sampleMatrix(t)
	g := corrGrid{m: m}
	c, r := g.Dims()
	assert.Equal(t, 3, c)
	assert.Equal(t, 3, r)
	// top row of the plot is the first column of the matrix
	assert.Equal(t, m.Values[0][2], g.Z(2, 2))
	assert.Equal(t, m.Values[2][0], g.Z(0, 0))
}

func TestHeatmap(t *testing.T) {
	m := sampleMatrix(t)
	fig, err := Heatmap(m, "Correlation Heatmap of Crypto Dataset", DefaultHeatmapOptions())
	require.NoError(t, err)
	assert.Same(t, m, fig.Matrix)
	assert.Equal(t, "correlation-heatmap-of-crypto-dataset", fig.Slug)

	_, err = Heatmap(&stats.CorrMatrix{}, "x", DefaultHeatmapOptions())
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestFileSinkWritesAndDeduplicates(t *testing.T) {
	root := t.TempDir()
	sink, err := NewFileSink(root, "run-1", "svg", nil)
	require.NoError(t, err)

	fig, err := Histogram([]float64{1, 2, 3}, "Customers Distribution", DefaultHistOptions())
	require.NoError(t, err)

	first, err := sink.Emit(fig)
	require.NoError(t, err)
	second, err := sink.Emit(fig)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "run-1", "customers-distribution.svg"), first)
	assert.Equal(t, filepath.Join(root, "run-1", "customers-distribution__2.svg"), second)
	for _, p := range []string{first, second} {
		b, err := os.ReadFile(p)
		require.NoError(t, err)
		assert.True(t, strings.Contains(string(b), "<svg"), "%s is not svg", p)
	}
}

func TestFileSinkPNG(t *testing.T) {
	sink, err := NewFileSink(t.TempDir(), "run", "PNG", nil)
	require.NoError(t, err)
	fig, err := Heatmap(sampleMatrix(t), "Heat", DefaultHeatmapOptions())
	require.NoError(t, err)
	p, err := sink.Emit(fig)
	require.NoError(t, err)
	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "\x89PNG", string(b[:4]))
}

func TestMemorySink(t *testing.T) {
	var mem Memory
	for _, title := range []string{"A", "B"} {
		fig, err := Histogram([]float64{1}, title, DefaultHistOptions())
		require.NoError(t, err)
		_, err = mem.Emit(fig)
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"A", "B"}, mem.Titles())
}
