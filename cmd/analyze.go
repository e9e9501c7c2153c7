package cmd

import (
	"fmt"

	"github.com/KaramelBytes/edastat/internal/analysis"
	"github.com/KaramelBytes/edastat/internal/report"
	"github.com/KaramelBytes/edastat/internal/utils"
	"github.com/spf13/cobra"
)

var (
	anaOutputPath string
	anaSampleRows int
	anaTopPairs   int
	anaOutliers   bool
	anaOutlierThr float64
)

var analyzeCmd = &cobra.Command{
	Use:     "summary <file>",
	Aliases: []string{"analyze"},
	Short:   "Profile every column of a dataset and produce a concise summary",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := activeConfig()
		if err != nil {
			return err
		}
		ds, err := loadDataset(c, args[0])
		if err != nil {
			return err
		}
		opt := analysis.DefaultOptions()
		if cmd.Flags().Changed("sample-rows") {
			opt.SampleRows = anaSampleRows
		}
		if cmd.Flags().Changed("top-pairs") {
			opt.TopPairs = anaTopPairs
		}
		if cmd.Flags().Changed("outliers") {
			opt.Outliers = anaOutliers
		}
		if anaOutlierThr > 0 {
			opt.OutlierThreshold = anaOutlierThr
		}
		rep, err := analysis.Summarize(ds, opt)
		if err != nil {
			return err
		}

		var out []byte
		switch outFormat {
		case report.FormatJSON:
			if out, err = rep.JSON(); err != nil {
				return err
			}
		case report.FormatTable:
			if anaOutputPath == "" {
				rep.WriteTable(cmd.OutOrStdout())
				return nil
			}
			out = []byte(rep.Markdown())
		default:
			out = []byte(rep.Markdown())
		}

		// Decide where to write: --output path or stdout
		if anaOutputPath != "" {
			if err := utils.SafeWriteFile(anaOutputPath, out); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote analysis to %s\n", anaOutputPath)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&anaOutputPath, "output", "o", "", "optional path to write the summary")
	analyzeCmd.Flags().IntVar(&anaSampleRows, "sample-rows", 5, "number of sample rows to include")
	analyzeCmd.Flags().IntVar(&anaTopPairs, "top-pairs", 10, "correlation pairs to list (0 disables)")
	analyzeCmd.Flags().BoolVar(&anaOutliers, "outliers", true, "compute robust outlier counts (MAD)")
	analyzeCmd.Flags().Float64Var(&anaOutlierThr, "outlier-threshold", 3.5, "robust |z| threshold for outliers (MAD-based)")
}
