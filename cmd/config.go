package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/KaramelBytes/chartloom-cli/internal/chart"
	cfgpkg "github.com/KaramelBytes/chartloom-cli/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set ChartLoom configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := settings()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "max_rows: %d\n", c.MaxRows)
		fmt.Fprintf(out, "pie_top_n: %d\n", c.PieTopN)
		fmt.Fprintf(out, "preview_rows: %d\n", c.PreviewRows)
		fmt.Fprintf(out, "image_format: %s\n", c.ImageFormat)
		fmt.Fprintf(out, "chart_width: %d\n", c.ChartWidth)
		fmt.Fprintf(out, "chart_height: %d\n", c.ChartHeight)
		fmt.Fprintf(out, "output_dir: %s\n", c.OutputDir)
		fmt.Fprintf(out, "batch_jobs: %d\n", c.BatchJobs)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Long:  "Set a config value and save to disk. Keys: " + strings.Join(cfgpkg.Keys, ", "),
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "max_rows":
			// same rule as --max-rows: digits only, invalid means the default
			cfg.MaxRows = chart.ParseMaxRows(val)
		case "pie_top_n":
			i, err := positiveInt(key, val)
			if err != nil {
				return err
			}
			cfg.PieTopN = i
		case "preview_rows":
			i, err := positiveInt(key, val)
			if err != nil {
				return err
			}
			cfg.PreviewRows = i
		case "image_format":
			f, err := chart.ParseFormat(val)
			if err != nil {
				return err
			}
			cfg.ImageFormat = string(f)
		case "chart_width":
			i, err := positiveInt(key, val)
			if err != nil {
				return err
			}
			cfg.ChartWidth = i
		case "chart_height":
			i, err := positiveInt(key, val)
			if err != nil {
				return err
			}
			cfg.ChartHeight = i
		case "output_dir":
			cfg.OutputDir = val
		case "batch_jobs":
			i, err := positiveInt(key, val)
			if err != nil {
				return err
			}
			cfg.BatchJobs = i
		default:
			return fmt.Errorf("unknown key: %s (known: %s)", key, strings.Join(cfgpkg.Keys, ", "))
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Println("Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

func positiveInt(key, val string) (int, error) {
	i, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil || i <= 0 {
		return 0, fmt.Errorf("invalid positive int for %s: %v", key, val)
	}
	return i, nil
}
