// Package render draws histograms and correlation heatmaps with gonum/plot
// and hands the finished figures to a Sink.
package render

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/KaramelBytes/edastat/internal/stats"
	"github.com/KaramelBytes/edastat/internal/utils"
	"golang.org/x/image/colornames"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

// ErrEmpty is returned when there is nothing to draw.
var ErrEmpty = errors.New("render: no finite values")

// Figure is a rendered plot ready to be written by a Sink.
type Figure struct {
	Title  string
	Slug   string
	Plot   *plot.Plot
	Width  vg.Length
	Height vg.Length

	// Bins is set for histograms.
	Bins []Bin
	// Matrix is set for heatmaps.
	Matrix *stats.CorrMatrix
}

func newFigure(title string, w, h vg.Length) *Figure {
	p := plot.New()
	p.Title.Text = title
	return &Figure{Title: title, Slug: utils.Slug(title), Plot: p, Width: w, Height: h}
}

// ParseColor resolves an SVG color name ("skyblue") or a #rrggbb literal.
func ParseColor(name string) (color.Color, error) {
	s := strings.ToLower(strings.TrimSpace(name))
	if c, ok := colornames.Map[s]; ok {
		return c, nil
	}
	if strings.HasPrefix(s, "#") && len(s) == 7 {
		var r, g, b uint8
		if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err == nil {
			return color.RGBA{R: r, G: g, B: b, A: 255}, nil
		}
	}
	return nil, fmt.Errorf("unknown color %q", name)
}
