package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/KaramelBytes/worldpop-cli/internal/catalog"
	cfgpkg "github.com/KaramelBytes/worldpop-cli/internal/config"
	"github.com/KaramelBytes/worldpop-cli/internal/logging"
	"github.com/KaramelBytes/worldpop-cli/internal/series"
	"github.com/KaramelBytes/worldpop-cli/internal/session"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile  string
	debug    bool
	jsonOut  bool
	flagSeed int64

	// Loaded configuration
	cfg    *cfgpkg.Global
	cfgErr error
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "worldpop",
	Short: "worldpop: explore a simulated world population dataset",
	Long: `worldpop generates a population time series for 20 countries (1950-2020)
and renders the dashboard views over it: filtered tables, summary metrics,
growth rankings, regional totals, trends, age pyramids and CSV/XLSX exports.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		stop()
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.worldpop/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "print results as JSON")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "random seed for the generated series (overrides config; 0 = clock)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	cfgErr = err
	if err != nil {
		// Non-fatal here: config show/set and countries work without it.
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		cfg = nil
		logger = logging.New(os.Stderr, "info", debug)
		return
	}
	cfg = c

	// Apply CLI overrides if provided
	if rootCmd.PersistentFlags().Changed("seed") {
		cfg.Seed = flagSeed
	}
	logger = logging.New(os.Stderr, cfg.LogLevel, debug)
}

// currentLogger returns the configured logger, or slog's default before
// loadConfig has run.
func currentLogger() *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// requireConfig returns the loaded config or the error that prevented loading it.
func requireConfig() (*cfgpkg.Global, error) {
	if cfg != nil {
		return cfg, nil
	}
	if cfgErr != nil {
		return nil, fmt.Errorf("config: %w", cfgErr)
	}
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	cfg = c
	return cfg, nil
}

// generatorOptions maps config onto series generator options.
func generatorOptions(c *cfgpkg.Global) series.Options {
	opt := series.DefaultOptions()
	opt.GrowthMin, opt.GrowthMax = c.GrowthMin, c.GrowthMax
	opt.NoiseMin, opt.NoiseMax = c.NoiseMin, c.NoiseMax
	opt.Seed = c.Seed
	return opt
}

// newSession generates the series for this invocation.
func newSession(ctx context.Context) (*session.Session, error) {
	c, err := requireConfig()
	if err != nil {
		return nil, err
	}
	gen, err := series.NewGenerator(generatorOptions(c))
	if err != nil {
		return nil, err
	}
	cat, err := catalog.Default()
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	log := logger
	if log == nil {
		log = logging.New(os.Stderr, c.LogLevel, debug)
	}
	return session.New(ctx, gen, cat, log)
}
