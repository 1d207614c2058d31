package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/KaramelBytes/worldpop-cli/internal/catalog"
	cfgpkg "github.com/KaramelBytes/worldpop-cli/internal/config"
	"github.com/KaramelBytes/worldpop-cli/internal/export"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set worldpop configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "No config loaded")
			return nil
		}
		if jsonOut {
			return printJSON(cmd.OutOrStdout(), cfg)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "year: %d\n", cfg.Year)
		fmt.Fprintf(out, "countries: %s\n", listOrAll(cfg.Countries))
		fmt.Fprintf(out, "regions: %s\n", listOrAll(cfg.Regions))
		fmt.Fprintf(out, "top_n: %d\n", cfg.TopN)
		if cfg.Seed != 0 {
			fmt.Fprintf(out, "seed: %d\n", cfg.Seed)
		} else {
			fmt.Fprintln(out, "seed: 0 (clock)")
		}
		fmt.Fprintf(out, "growth_min: %.4f\n", cfg.GrowthMin)
		fmt.Fprintf(out, "growth_max: %.4f\n", cfg.GrowthMax)
		fmt.Fprintf(out, "noise_min: %.3f\n", cfg.NoiseMin)
		fmt.Fprintf(out, "noise_max: %.3f\n", cfg.NoiseMax)
		fmt.Fprintf(out, "export_dir: %s\n", cfg.ExportDir)
		fmt.Fprintf(out, "export_format: %s\n", cfg.ExportFormat)
		fmt.Fprintf(out, "log_level: %s\n", cfg.LogLevel)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		// Start from disk, not cfg: cfg carries CLI overrides such as --seed.
		base, err := cfgpkg.Load(cfgFile)
		if err != nil {
			return err
		}
		next := *base
		switch key {
		case "year":
			i, err := strconv.Atoi(val)
			if err != nil {
				return fmt.Errorf("invalid int for year: %w", err)
			}
			next.Year = i
		case "countries":
			next.Countries = splitList(val)
		case "regions":
			names := splitList(val)
			if _, err := catalog.ParseRegions(names); err != nil {
				return err
			}
			next.Regions = names
		case "top_n":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return fmt.Errorf("invalid int for top_n: %v", val)
			}
			next.TopN = i
		case "seed":
			i, err := strconv.ParseInt(val, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid int for seed: %w", err)
			}
			next.Seed = i
		case "growth_min", "growth_max", "noise_min", "noise_max":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return fmt.Errorf("invalid float for %s: %w", key, err)
			}
			switch key {
			case "growth_min":
				next.GrowthMin = f
			case "growth_max":
				next.GrowthMax = f
			case "noise_min":
				next.NoiseMin = f
			case "noise_max":
				next.NoiseMax = f
			}
		case "export_dir":
			next.ExportDir = val
		case "export_format":
			f, err := export.ParseFormat(val)
			if err != nil {
				return err
			}
			next.ExportFormat = string(f)
		case "log_level":
			next.LogLevel = strings.ToLower(val)
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := next.Validate(); err != nil {
			return err
		}
		if err := cfgpkg.Save(&next, cfgFile); err != nil {
			return err
		}
		cfg = &next
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

// splitList parses a comma-separated value; an empty string is an empty list.
func splitList(s string) []string {
	out := []string{}
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func listOrAll(xs []string) string {
	if len(xs) == 0 {
		return "(all)"
	}
	return strings.Join(xs, ", ")
}
