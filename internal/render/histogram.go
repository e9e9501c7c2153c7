package render

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Bin is one equal-width histogram bucket; the last bucket includes Max.
type Bin struct {
	Min, Max float64
	Count    float64
}

// HistOptions controls histogram rendering.
type HistOptions struct {
	XLabel string // defaults to the title
	Bins   int
	Color  string
	Width  vg.Length
	Height vg.Length
}

// DefaultHistOptions returns 8 skyblue bins on a 6x4 inch canvas.
func DefaultHistOptions() HistOptions {
	return HistOptions{Bins: 8, Color: "skyblue", Width: 6 * vg.Inch, Height: 4 * vg.Inch}
}

// Histogram draws a frequency histogram of the finite values.
func Histogram(values []float64, title string, opt HistOptions) (*Figure, error) {
	if opt.Bins <= 0 {
		return nil, fmt.Errorf("histogram %q: bins must be positive, got %d", title, opt.Bins)
	}
	fill, err := ParseColor(opt.Color)
	if err != nil {
		return nil, fmt.Errorf("histogram %q: %w", title, err)
	}
	bins, err := binValues(values, opt.Bins)
	if err != nil {
		return nil, fmt.Errorf("histogram %q: %w", title, err)
	}

	fig := newFigure(title, opt.Width, opt.Height)
	fig.Bins = bins
	xlabel := opt.XLabel
	if xlabel == "" {
		xlabel = title
	}
	fig.Plot.X.Label.Text = xlabel
	fig.Plot.Y.Label.Text = "Frequency"

	h := &plotter.Histogram{
		Bins:      make([]plotter.HistogramBin, len(bins)),
		Width:     bins[len(bins)-1].Max - bins[0].Min,
		FillColor: fill,
		LineStyle: plotter.DefaultLineStyle,
	}
	h.LineStyle.Color = color.Black
	for i, b := range bins {
		h.Bins[i] = plotter.HistogramBin{Min: b.Min, Max: b.Max, Weight: b.Count}
	}
	fig.Plot.Add(h)
	return fig, nil
}

// binValues splits the range of the finite values into n equal-width bins.
// A zero-width range is widened to [v-0.5, v+0.5].
func binValues(values []float64, n int) ([]Bin, error) {
	x := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			x = append(x, v)
		}
	}
	if len(x) == 0 {
		return nil, ErrEmpty
	}
	sort.Float64s(x)
	lo, hi := x[0], x[len(x)-1]
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	dividers := floats.Span(make([]float64, n+1), lo, hi)
	// stat.Histogram bins are half-open; nudge the top edge so hi is counted.
	dividers[n] = math.Nextafter(hi, math.Inf(1))
	counts := stat.Histogram(nil, dividers, x, nil)

	bins := make([]Bin, n)
	for i := range bins {
		bins[i] = Bin{Min: dividers[i], Max: dividers[i+1], Count: counts[i]}
	}
	bins[n-1].Max = hi
	return bins, nil
}
