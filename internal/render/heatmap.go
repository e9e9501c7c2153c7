package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/KaramelBytes/edastat/internal/stats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
)

// HeatmapOptions controls correlation heatmap rendering.
type HeatmapOptions struct {
	Width  vg.Length
	Height vg.Length
	// Annotation formats the value printed in each cell.
	Annotation string
	// Colors is the number of palette steps between -1 and 1.
	Colors int
}

// DefaultHeatmapOptions returns an 8x6 inch canvas with two-decimal labels.
func DefaultHeatmapOptions() HeatmapOptions {
	return HeatmapOptions{Width: 8 * vg.Inch, Height: 6 * vg.Inch, Annotation: "%.2f", Colors: 255}
}

// corrGrid adapts a CorrMatrix to plotter.GridXYZ with the first
// column at the top row.
type corrGrid struct{ m *stats.CorrMatrix }

func (g corrGrid) Dims() (c, r int) {
	n := len(g.m.Columns)
	return n, n
}

func (g corrGrid) Z(c, r int) float64 {
	return g.m.Values[len(g.m.Columns)-1-r][c]
}

func (g corrGrid) X(c int) float64 { return float64(c) }
func (g corrGrid) Y(r int) float64 { return float64(r) }

// Heatmap draws an annotated correlation matrix on a diverging
// blue-red scale fixed to [-1, 1]. NaN cells are drawn in light grey.
func Heatmap(m *stats.CorrMatrix, title string, opt HeatmapOptions) (*Figure, error) {
	if m == nil || len(m.Columns) == 0 {
		return nil, fmt.Errorf("heatmap %q: %w", title, ErrEmpty)
	}
	if opt.Colors < 2 {
		opt.Colors = 255
	}
	if opt.Annotation == "" {
		opt.Annotation = "%.2f"
	}
	n := len(m.Columns)

	cmap := moreland.SmoothBlueRed()
	cmap.SetMin(-1)
	cmap.SetMax(1)
	hm := plotter.NewHeatMap(corrGrid{m: m}, cmap.Palette(opt.Colors))
	hm.Min, hm.Max = -1, 1
	hm.NaN = color.Gray{Y: 220}

	xys := make(plotter.XYs, 0, n*n)
	labels := make([]string, 0, n*n)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			v := m.Values[n-1-r][c]
			xys = append(xys, plotter.XY{X: float64(c), Y: float64(r)})
			if math.IsNaN(v) {
				labels = append(labels, "nan")
				continue
			}
			labels = append(labels, fmt.Sprintf(opt.Annotation, v))
		}
	}
	ann, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
	if err != nil {
		return nil, fmt.Errorf("heatmap %q: %w", title, err)
	}
	for i := range ann.TextStyle {
		ann.TextStyle[i].XAlign = text.XCenter
		ann.TextStyle[i].YAlign = text.YCenter
	}

	fig := newFigure(title, opt.Width, opt.Height)
	fig.Matrix = m
	fig.Plot.Add(hm, ann)

	xt := make([]plot.Tick, n)
	yt := make([]plot.Tick, n)
	for i, name := range m.Columns {
		xt[i] = plot.Tick{Value: float64(i), Label: name}
		yt[i] = plot.Tick{Value: float64(n - 1 - i), Label: name}
	}
	fig.Plot.X.Tick.Marker = plot.ConstantTicks(xt)
	fig.Plot.Y.Tick.Marker = plot.ConstantTicks(yt)
	fig.Plot.X.Tick.Label.Rotation = math.Pi / 4
	fig.Plot.X.Tick.Label.XAlign = text.XRight
	fig.Plot.X.Tick.Label.Font.Size = vg.Points(8)
	fig.Plot.Y.Tick.Label.Font.Size = vg.Points(8)
	return fig, nil
}
