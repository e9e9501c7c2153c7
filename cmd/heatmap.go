package cmd

import (
	"github.com/KaramelBytes/edastat/internal/render"
	"github.com/KaramelBytes/edastat/internal/stats"
	"github.com/spf13/cobra"
)

var (
	heatTitle    string
	heatPrintMat bool
)

var heatmapCmd = &cobra.Command{
	Use:   "heatmap <file>",
	Short: "Render the Pearson correlation heatmap of all numeric columns",
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
		names, cols := ds.NumericColumns()
		m, err := stats.Correlations(names, cols)
		if err != nil {
			return err
		}
		pr, err := newPrinter(cmd)
		if err != nil {
			return err
		}
		if heatPrintMat {
			if err := pr.Correlation(m); err != nil {
				return err
			}
		}
		fig, err := render.Heatmap(m, heatTitle, heatmapOptions(c))
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
	rootCmd.AddCommand(heatmapCmd)
	heatmapCmd.Flags().StringVarP(&heatTitle, "title", "t", heatmapTitle, "figure title")
	heatmapCmd.Flags().BoolVar(&heatPrintMat, "print", false, "also print the matrix to the console")
}
