package cmd

import (
	"fmt"

	cfgpkg "github.com/KaramelBytes/edastat/internal/config"
	"github.com/KaramelBytes/edastat/internal/dataset"
	"github.com/KaramelBytes/edastat/internal/render"
	"github.com/KaramelBytes/edastat/internal/report"
	"github.com/KaramelBytes/edastat/internal/utils"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"
)

// parseDelimiter maps the CLI/config spelling to a rune; 0 sniffs by extension.
func parseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case ",":
		return ',', nil
	case "\t", "tab":
		return '\t', nil
	case ";":
		return ';', nil
	default:
		return 0, fmt.Errorf("unsupported --delimiter: %s", s)
	}
}

func loadDataset(c *cfgpkg.Global, path string) (*dataset.Dataset, error) {
	delim, err := parseDelimiter(c.Delimiter)
	if err != nil {
		return nil, err
	}
	ds, err := dataset.Load(path, dataset.Options{Delimiter: delim, Sheet: flagSheet})
	if err != nil {
		return nil, err
	}
	logger.Info("dataset loaded", "file", ds.Name, "rows", ds.Len(), "columns", len(ds.Names()))
	return ds, nil
}

// newSink returns the figure destination for one invocation and its run id.
func newSink(c *cfgpkg.Global) (render.Sink, string, error) {
	runID := uuid.NewString()
	if dryRun {
		return &render.Memory{}, runID, nil
	}
	root, err := utils.ExpandHome(c.OutputDir)
	if err != nil {
		return nil, "", err
	}
	sink, err := render.NewFileSink(root, runID, c.ImageFormat, logger)
	if err != nil {
		return nil, "", err
	}
	logger.Info("writing figures", "dir", sink.Dir)
	return sink, runID, nil
}

func histOptions(c *cfgpkg.Global) render.HistOptions {
	return render.HistOptions{
		Bins:   c.HistBins,
		Color:  c.HistColor,
		Width:  vg.Length(c.HistWidthIn) * vg.Inch,
		Height: vg.Length(c.HistHeightIn) * vg.Inch,
	}
}

func heatmapOptions(c *cfgpkg.Global) render.HeatmapOptions {
	opt := render.DefaultHeatmapOptions()
	opt.Width = vg.Length(c.HeatmapWidthIn) * vg.Inch
	opt.Height = vg.Length(c.HeatmapHeightIn) * vg.Inch
	return opt
}

func newPrinter(cmd *cobra.Command) (*report.Printer, error) {
	return report.New(cmd.OutOrStdout(), outFormat)
}

// column resolves a --column flag against the dataset.
func column(ds *dataset.Dataset, name string) ([]float64, error) {
	vals, err := ds.Column(name)
	if err != nil {
		return nil, fmt.Errorf("column %s: %w", name, err)
	}
	return vals, nil
}

// emit sends a figure to the sink and reports where it went.
func emit(pr *report.Printer, sink render.Sink, fig *render.Figure) (string, error) {
	dest, err := sink.Emit(fig)
	if err != nil {
		return "", err
	}
	if !dryRun {
		pr.Message("✓ Wrote %s", dest)
	}
	return dest, nil
}
