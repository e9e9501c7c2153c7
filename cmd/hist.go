package cmd

import (
	"github.com/KaramelBytes/edastat/internal/render"
	"github.com/spf13/cobra"
)

var (
	histColumn string
	histTitle  string
	histXLabel string
	histBins   int
	histColor  string
)

var histCmd = &cobra.Command{
	Use:   "hist <file>",
	Short: "Render a histogram of one column",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := activeConfig()
		if err != nil {
			return err
		}
		ds, err := loadDataset(c, args[0])
		if err != nil {
			return err
		}
		vals, err := column(ds, histColumn)
		if err != nil {
			return err
		}
		opt := histOptions(c)
		opt.XLabel = histXLabel
		if histBins > 0 {
			opt.Bins = histBins
		}
		if histColor != "" {
			opt.Color = histColor
		}
		title := histTitle
		if title == "" {
			title = histColumn + " Distribution"
		}
		fig, err := render.Histogram(vals, title, opt)
		if err != nil {
			return err
		}
		pr, err := newPrinter(cmd)
		if err != nil {
			return err
		}
		sink, _, err := newSink(c)
		if err != nil {
			return err
		}
		_, err = emit(pr, sink, fig)
		return err
	},
}

func init() {
	rootCmd.AddCommand(histCmd)
	histCmd.Flags().StringVarP(&histColumn, "column", "c", "", "column to plot")
	histCmd.Flags().StringVarP(&histTitle, "title", "t", "", "figure title (default \"<column> Distribution\")")
	histCmd.Flags().StringVar(&histXLabel, "xlabel", "", "x-axis label (default: the title)")
	histCmd.Flags().IntVarP(&histBins, "bins", "b", 0, "number of bins (default from config)")
	histCmd.Flags().StringVar(&histColor, "color", "", "bar color name or #rrggbb (default from config)")
	_ = histCmd.MarkFlagRequired("column")
}
