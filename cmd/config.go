package cmd

import (
	"fmt"
	"strconv"

	cfgpkg "github.com/KaramelBytes/edastat/internal/config"
	"github.com/KaramelBytes/edastat/internal/utils"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set edastat configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := activeConfig()
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		if outFormat == "json" {
			b, err := utils.PrettyJSON(c)
			if err != nil {
				return err
			}
			fmt.Fprintln(w, string(b))
			return nil
		}
		fmt.Fprintf(w, "output_dir: %s\n", c.OutputDir)
		fmt.Fprintf(w, "image_format: %s\n", c.ImageFormat)
		fmt.Fprintf(w, "hist_bins: %d\n", c.HistBins)
		fmt.Fprintf(w, "hist_color: %s\n", c.HistColor)
		fmt.Fprintf(w, "hist_size_in: %gx%g\n", c.HistWidthIn, c.HistHeightIn)
		fmt.Fprintf(w, "heatmap_size_in: %gx%g\n", c.HeatmapWidthIn, c.HeatmapHeightIn)
		if c.Delimiter != "" {
			fmt.Fprintf(w, "delimiter: %q\n", c.Delimiter)
		}
		fmt.Fprintf(w, "columns.customers: %s\n", c.Columns.Customers)
		fmt.Fprintf(w, "columns.website_visits: %s\n", c.Columns.WebsiteVisits)
		fmt.Fprintf(w, "columns.low: %s\n", c.Columns.Low)
		fmt.Fprintf(w, "columns.age_years: %s\n", c.Columns.AgeYears)
		fmt.Fprintf(w, "columns.open: %s\n", c.Columns.Open)
		fmt.Fprintf(w, "columns.active_users: %s\n", c.Columns.ActiveUsers)
		fmt.Fprintf(w, "columns.transactions: %s\n", c.Columns.Transactions)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		var c cfgpkg.Global
		if cfg != nil {
			c = *cfg
		} else {
			loaded, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			c = *loaded
		}
		if err := applySetting(&c, key, val); err != nil {
			return err
		}
		if err := c.Validate(); err != nil {
			return err
		}
		if err := cfgpkg.Save(&c, cfgFile); err != nil {
			return err
		}
		cfg = &c
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func applySetting(c *cfgpkg.Global, key, val string) error {
	parseSize := func() (float64, error) {
		f, err := strconv.ParseFloat(val, 64)
		if err != nil || f <= 0 {
			return 0, fmt.Errorf("invalid size for %s: %v", key, val)
		}
		return f, nil
	}
	var err error
	switch key {
	case "output_dir":
		c.OutputDir = val
	case "image_format":
		c.ImageFormat = val
	case "hist_bins":
		i, perr := strconv.Atoi(val)
		if perr != nil || i <= 0 {
			return fmt.Errorf("invalid int for hist_bins: %v", val)
		}
		c.HistBins = i
	case "hist_color":
		c.HistColor = val
	case "hist_width_in":
		c.HistWidthIn, err = parseSize()
	case "hist_height_in":
		c.HistHeightIn, err = parseSize()
	case "heatmap_width_in":
		c.HeatmapWidthIn, err = parseSize()
	case "heatmap_height_in":
		c.HeatmapHeightIn, err = parseSize()
	case "delimiter":
		c.Delimiter = val
	case "columns.customers":
		c.Columns.Customers = val
	case "columns.website_visits":
		c.Columns.WebsiteVisits = val
	case "columns.low":
		c.Columns.Low = val
	case "columns.age_years":
		c.Columns.AgeYears = val
	case "columns.open":
		c.Columns.Open = val
	case "columns.active_users":
		c.Columns.ActiveUsers = val
	case "columns.transactions":
		c.Columns.Transactions = val
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return err
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
