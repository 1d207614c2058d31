package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/worldpop-cli/internal/catalog"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig indicates a configuration value outside its allowed range.
var ErrInvalidConfig = errors.New("invalid config")

// Global configuration structure.
type Global struct {
	// Dashboard selection defaults
	Year      int      `mapstructure:"year" yaml:"year"`
	Countries []string `mapstructure:"countries" yaml:"countries"`
	Regions   []string `mapstructure:"regions" yaml:"regions"`
	TopN      int      `mapstructure:"top_n" yaml:"top_n"`

	// Generator
	Seed      int64   `mapstructure:"seed" yaml:"seed"`
	GrowthMin float64 `mapstructure:"growth_min" yaml:"growth_min"`
	GrowthMax float64 `mapstructure:"growth_max" yaml:"growth_max"`
	NoiseMin  float64 `mapstructure:"noise_min" yaml:"noise_min"`
	NoiseMax  float64 `mapstructure:"noise_max" yaml:"noise_max"`

	// Export
	ExportDir    string `mapstructure:"export_dir" yaml:"export_dir"`
	ExportFormat string `mapstructure:"export_format" yaml:"export_format"`

	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
}

// defaultPath returns ~/.worldpop/config.yaml, creating the directory.
func defaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	dir := filepath.Join(home, ".worldpop")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir config dir: %w", err)
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.worldpop/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		p, err := defaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults. CLI flags are applied by the caller.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("WORLDPOP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("year", 2020)
	v.SetDefault("countries", []string{"China", "India", "United States"})
	v.SetDefault("regions", []string{})
	v.SetDefault("top_n", 10)
	v.SetDefault("seed", 0)
	v.SetDefault("growth_min", 0.005)
	v.SetDefault("growth_max", 0.025)
	v.SetDefault("noise_min", 0.95)
	v.SetDefault("noise_max", 1.05)
	v.SetDefault("export_dir", ".")
	v.SetDefault("export_format", "csv")
	v.SetDefault("log_level", "info")

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		v.AddConfigPath(filepath.Join(home, ".worldpop"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks numeric ranges and enumerations.
func (c *Global) Validate() error {
	if c.TopN < 0 {
		return fmt.Errorf("%w: top_n must be >= 0, got %d", ErrInvalidConfig, c.TopN)
	}
	if c.GrowthMin < catalog.MinGrowthRate || c.GrowthMax > catalog.MaxGrowthRate || c.GrowthMax < c.GrowthMin {
		return fmt.Errorf("%w: growth range [%g, %g] must lie within [%g, %g]", ErrInvalidConfig,
			c.GrowthMin, c.GrowthMax, catalog.MinGrowthRate, catalog.MaxGrowthRate)
	}
	if c.NoiseMin <= 0 || c.NoiseMax < c.NoiseMin {
		return fmt.Errorf("%w: noise range [%g, %g]", ErrInvalidConfig, c.NoiseMin, c.NoiseMax)
	}
	switch strings.ToLower(c.ExportFormat) {
	case "", "csv", "xlsx":
	default:
		return fmt.Errorf("%w: export_format %q (use csv or xlsx)", ErrInvalidConfig, c.ExportFormat)
	}
	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	return nil
}
