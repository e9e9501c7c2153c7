package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/edastat/internal/utils"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Columns names the header of each field the exploratory run binds.
type Columns struct {
	Customers     string `mapstructure:"customers" yaml:"customers"`
	WebsiteVisits string `mapstructure:"website_visits" yaml:"website_visits"`
	Low           string `mapstructure:"low" yaml:"low"`
	AgeYears      string `mapstructure:"age_years" yaml:"age_years"`
	Open          string `mapstructure:"open" yaml:"open"`
	ActiveUsers   string `mapstructure:"active_users" yaml:"active_users"`
	Transactions  string `mapstructure:"transactions" yaml:"transactions"`
}

// Global configuration structure.
type Global struct {
	OutputDir       string  `mapstructure:"output_dir" yaml:"output_dir"`
	ImageFormat     string  `mapstructure:"image_format" yaml:"image_format"`
	HistBins        int     `mapstructure:"hist_bins" yaml:"hist_bins"`
	HistColor       string  `mapstructure:"hist_color" yaml:"hist_color"`
	HistWidthIn     float64 `mapstructure:"hist_width_in" yaml:"hist_width_in"`
	HistHeightIn    float64 `mapstructure:"hist_height_in" yaml:"hist_height_in"`
	HeatmapWidthIn  float64 `mapstructure:"heatmap_width_in" yaml:"heatmap_width_in"`
	HeatmapHeightIn float64 `mapstructure:"heatmap_height_in" yaml:"heatmap_height_in"`

	// Delimiter is one of "", ",", ";", "tab". Empty sniffs by extension.
	Delimiter string  `mapstructure:"delimiter" yaml:"delimiter"`
	Columns   Columns `mapstructure:"columns" yaml:"columns"`
}

// DefaultColumns returns the header names of the crypto dataset.
func DefaultColumns() Columns {
	return Columns{
		Customers:     "Customers",
		WebsiteVisits: "Website_Visits",
		Low:           "Crypto_Low",
		AgeYears:      "Coin_Age_Years",
		Open:          "Crypto_Open",
		ActiveUsers:   "Active_Users",
		Transactions:  "Crypto_Transactions",
	}
}

// Names returns the seven header names in their canonical order.
func (c Columns) Names() []string {
	return []string{c.Customers, c.WebsiteVisits, c.Low, c.AgeYears, c.Open, c.ActiveUsers, c.Transactions}
}

// Defaults returns the configuration used when no file or env overrides exist.
func Defaults() *Global {
	return &Global{
		OutputDir:       "edastat-output",
		ImageFormat:     "png",
		HistBins:        8,
		HistColor:       "skyblue",
		HistWidthIn:     6,
		HistHeightIn:    4,
		HeatmapWidthIn:  8,
		HeatmapHeightIn: 6,
		Columns:         DefaultColumns(),
	}
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".edastat"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.edastat/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := configDir()
		if err != nil {
			return err
		}
		if err := utils.EnsureDir(dir); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := utils.SafeWriteFile(path, b); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("EDASTAT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	d := Defaults()
	cols := d.Columns
	v.SetDefault("output_dir", d.OutputDir)
	v.SetDefault("image_format", d.ImageFormat)
	v.SetDefault("hist_bins", d.HistBins)
	v.SetDefault("hist_color", d.HistColor)
	v.SetDefault("hist_width_in", d.HistWidthIn)
	v.SetDefault("hist_height_in", d.HistHeightIn)
	v.SetDefault("heatmap_width_in", d.HeatmapWidthIn)
	v.SetDefault("heatmap_height_in", d.HeatmapHeightIn)
	v.SetDefault("delimiter", d.Delimiter)
	v.SetDefault("columns.customers", cols.Customers)
	v.SetDefault("columns.website_visits", cols.WebsiteVisits)
	v.SetDefault("columns.low", cols.Low)
	v.SetDefault("columns.age_years", cols.AgeYears)
	v.SetDefault("columns.open", cols.Open)
	v.SetDefault("columns.active_users", cols.ActiveUsers)
	v.SetDefault("columns.transactions", cols.Transactions)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := configDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate rejects values the renderers cannot honor.
func (c *Global) Validate() error {
	c.ImageFormat = strings.ToLower(c.ImageFormat)
	switch c.ImageFormat {
	case "png", "svg", "pdf", "jpg", "jpeg", "tif", "tiff", "eps":
	default:
		return fmt.Errorf("invalid image_format: %q", c.ImageFormat)
	}
	if c.HistBins <= 0 {
		return fmt.Errorf("invalid hist_bins: %d", c.HistBins)
	}
	if c.HistWidthIn <= 0 || c.HistHeightIn <= 0 || c.HeatmapWidthIn <= 0 || c.HeatmapHeightIn <= 0 {
		return fmt.Errorf("figure sizes must be positive")
	}
	switch c.Delimiter {
	case "", ",", ";", "tab", "\t":
	default:
		return fmt.Errorf("invalid delimiter: %q (use ',' | ';' | 'tab')", c.Delimiter)
	}
	return nil
}
