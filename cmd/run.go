package cmd

import (
	"fmt"

	cfgpkg "github.com/KaramelBytes/edastat/internal/config"
	"github.com/KaramelBytes/edastat/internal/dataset"
	"github.com/KaramelBytes/edastat/internal/render"
	"github.com/KaramelBytes/edastat/internal/report"
	"github.com/KaramelBytes/edastat/internal/stats"
	"github.com/spf13/cobra"
)

const heatmapTitle = "Correlation Heatmap of Crypto Dataset"

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Run the full exploratory analysis on a dataset",
	Long: `Run renders the customers and transactions histograms, tests customers for a
Poisson fit and transactions for normality, renders one histogram per selected
column, prints the skewness of active users, and renders the correlation heatmap.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := activeConfig()
		if err != nil {
			return err
		}
		ds, err := loadDataset(c, args[0])
		if err != nil {
			return err
		}
		pr, err := newPrinter(cmd)
		if err != nil {
			return err
		}
		sink, runID, err := newSink(c)
		if err != nil {
			return err
		}
		n, err := explore(ds, c, sink, pr)
		if err != nil {
			return err
		}
		logger.Info("run complete", "run_id", runID, "figures", n)
		return nil
	},
}

// explore runs the fixed analysis sequence and returns the number of figures emitted.
func explore(ds *dataset.Dataset, c *cfgpkg.Global, sink render.Sink, pr *report.Printer) (int, error) {
	sel, err := dataset.Select(ds, c.Columns)
	if err != nil {
		return 0, err
	}
	figures := 0
	hist := func(values []float64, title string, bins int) error {
		opt := histOptions(c)
		if bins > 0 {
			opt.Bins = bins
		}
		fig, err := render.Histogram(values, title, opt)
		if err != nil {
			return err
		}
		if _, err := emit(pr, sink, fig); err != nil {
			return err
		}
		figures++
		return nil
	}

	// Customers: counts per period, tested against Poisson.
	if err := hist(sel.Customers.Values, "Customers Distribution", 5); err != nil {
		return figures, err
	}
	pois, err := stats.PoissonFit(sel.Customers.Values, "Customers")
	if err != nil {
		return figures, fmt.Errorf("poisson test: %w", err)
	}
	if err := pr.Poisson(pois); err != nil {
		return figures, err
	}

	// Transactions: tested against the normal distribution.
	if err := hist(sel.Transactions.Values, "Crypto Transactions (Test Scores)", 8); err != nil {
		return figures, err
	}
	norm, err := stats.NormalityTest(sel.Transactions.Values, "Crypto Transactions")
	if err != nil {
		return figures, fmt.Errorf("normality test: %w", err)
	}
	if err := pr.Normality(norm); err != nil {
		return figures, err
	}

	for _, s := range sel.All() {
		if err := hist(s.Values, s.Name+" Distribution", 0); err != nil {
			return figures, err
		}
	}

	if err := pr.Skewness("Active Users", stats.Skewness(sel.ActiveUsers.Values)); err != nil {
		return figures, err
	}

	names, cols := ds.NumericColumns()
	m, err := stats.Correlations(names, cols)
	if err != nil {
		return figures, err
	}
	fig, err := render.Heatmap(m, heatmapTitle, heatmapOptions(c))
	if err != nil {
		return figures, err
	}
	if _, err := emit(pr, sink, fig); err != nil {
		return figures, err
	}
	figures++
	return figures, nil
}

func init() {
	rootCmd.AddCommand(runCmd)
}
