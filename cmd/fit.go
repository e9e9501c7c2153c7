package cmd

import (
	cfgpkg "github.com/KaramelBytes/edastat/internal/config"
	"github.com/KaramelBytes/edastat/internal/stats"
	"github.com/spf13/cobra"
)

var (
	fitColumn string
	fitLabel  string
)

// fitInputs loads the dataset and the requested column, falling back to the
// configured default column and to the column name as label.
func fitInputs(args []string, defaultColumn func(cfgpkg.Columns) string) ([]float64, string, error) {
	c, err := activeConfig()
	if err != nil {
		return nil, "", err
	}
	ds, err := loadDataset(c, args[0])
	if err != nil {
		return nil, "", err
	}
	col := fitColumn
	if col == "" {
		col = defaultColumn(c.Columns)
	}
	vals, err := column(ds, col)
	if err != nil {
		return nil, "", err
	}
	label := fitLabel
	if label == "" {
		label = col
	}
	return vals, label, nil
}

var poissonCmd = &cobra.Command{
	Use:   "poisson <file>",
	Short: "Chi-square goodness-of-fit test against a Poisson distribution",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		vals, label, err := fitInputs(args, func(c cfgpkg.Columns) string { return c.Customers })
		if err != nil {
			return err
		}
		res, err := stats.PoissonFit(vals, label)
		if err != nil {
			return err
		}
		pr, err := newPrinter(cmd)
		if err != nil {
			return err
		}
		return pr.Poisson(res)
	},
}

var normalityCmd = &cobra.Command{
	Use:   "normality <file>",
	Short: "D'Agostino-Pearson normality test",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		vals, label, err := fitInputs(args, func(c cfgpkg.Columns) string { return c.Transactions })
		if err != nil {
			return err
		}
		res, err := stats.NormalityTest(vals, label)
		if err != nil {
			return err
		}
		pr, err := newPrinter(cmd)
		if err != nil {
			return err
		}
		return pr.Normality(res)
	},
}

var skewCmd = &cobra.Command{
	Use:   "skew <file>",
	Short: "Print the sample skewness of a column",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		vals, label, err := fitInputs(args, func(c cfgpkg.Columns) string { return c.ActiveUsers })
		if err != nil {
			return err
		}
		pr, err := newPrinter(cmd)
		if err != nil {
			return err
		}
		return pr.Skewness(label, stats.Skewness(vals))
	},
}

func init() {
	for _, c := range []*cobra.Command{poissonCmd, normalityCmd, skewCmd} {
		rootCmd.AddCommand(c)
		c.Flags().StringVarP(&fitColumn, "column", "c", "", "column to test (default from config)")
		c.Flags().StringVarP(&fitLabel, "label", "l", "", "label printed with the result (default: the column name)")
	}
}
