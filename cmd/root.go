package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	cfgpkg "github.com/KaramelBytes/edastat/internal/config"
	"github.com/KaramelBytes/edastat/internal/report"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile   string
	debug     bool
	outFormat string
	dryRun    bool
	// Config overrides (applied only when set)
	flagOutputDir   string
	flagImageFormat string
	flagDelimiter   string
	flagSheet       string

	// Loaded configuration
	cfg    *cfgpkg.Global
	logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
)

var rootCmd = &cobra.Command{
	Use:   "edastat",
	Short: "edastat: exploratory statistics for tabular datasets",
	Long: `edastat loads a CSV/TSV/XLSX dataset, renders histograms and a correlation
heatmap, and runs Poisson and normality goodness-of-fit tests on its columns.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		outFormat = strings.ToLower(strings.TrimSpace(outFormat))
		_, err := report.New(io.Discard, outFormat)
		return err
	},
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	// Persistent global flags available to all subcommands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.edastat/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&outFormat, "format", "text", "console output: text | table | json")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "render figures without writing them")
	rootCmd.PersistentFlags().StringVar(&flagOutputDir, "output-dir", "", "directory for rendered figures (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagImageFormat, "image-format", "", "png | svg | pdf | jpg | tif | eps (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab' (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagSheet, "sheet", "", "XLSX: sheet name (default first sheet)")
}

func loadConfig() {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(rootCmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: commands fall back to defaults
		fmt.Fprintf(rootCmd.ErrOrStderr(), "⚠ Warning: failed to load config: %v\n", err)
		cfg = nil
		return
	}
	cfg = c

	// Apply CLI overrides if provided
	f := rootCmd.PersistentFlags()
	if f.Changed("output-dir") && flagOutputDir != "" {
		cfg.OutputDir = flagOutputDir
	}
	if f.Changed("image-format") && flagImageFormat != "" {
		cfg.ImageFormat = flagImageFormat
	}
	if f.Changed("delimiter") {
		cfg.Delimiter = flagDelimiter
	}
	logger.Debug("config loaded", "output_dir", cfg.OutputDir, "image_format", cfg.ImageFormat)
}

// activeConfig returns the loaded config, or defaults when loading failed.
func activeConfig() (*cfgpkg.Global, error) {
	if cfg != nil {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	c := cfgpkg.Defaults()
	if flagOutputDir != "" {
		c.OutputDir = flagOutputDir
	}
	if flagImageFormat != "" {
		c.ImageFormat = flagImageFormat
	}
	if flagDelimiter != "" {
		c.Delimiter = flagDelimiter
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}
