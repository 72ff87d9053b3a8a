package cmd

import (
	"fmt"

	"github.com/KaramelBytes/chartloom-cli/internal/chart"
	"github.com/KaramelBytes/chartloom-cli/internal/utils"
	"github.com/spf13/cobra"
)

var (
	chLoad   loadFlags
	chSelect selectionFlags
	chImage  imageFlags
	chOutput string
)

var chartCmd = &cobra.Command{
	Use:   "chart <file>",
	Short: "Project a CSV/TSV/XLSX file into line, bar, pie and scatter charts",
	Long: `Classify the columns of a file, apply the chart selection, and either print the
chart projections as JSON or render each enabled chart to a PNG/SVG image.

Unset chart toggles keep the default selection: line, bar and pie on; scatter on
only when both X and Y are numeric columns.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		opt, err := chLoad.options()
		if err != nil {
			return err
		}
		format, asImage, err := chImage.imageFormat()
		if err != nil {
			return err
		}
		ds, err := loadDataset(path, opt)
		if err != nil {
			return err
		}
		s, err := chSelect.settingsFor(cmd, ds)
		if err != nil {
			return err
		}
		debugf("selection: %+v", s)
		res := chart.Build(ds, s)

		if !asImage {
			b, err := utils.PrettyJSON(res)
			if err != nil {
				return err
			}
			if chOutput != "" {
				if err := utils.SafeWriteFile(chOutput, b); err != nil {
					return fmt.Errorf("write output: %w", err)
				}
				warn(res.Warnings...)
				fmt.Printf("✓ Wrote chart data to %s\n", chOutput)
				return nil
			}
			warn(res.Warnings...)
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return nil
		}

		warn(res.Warnings...)
		written, warnings, err := renderResult(res, chImage.dir(), utils.BaseName(path), chImage.renderOptions(format))
		warn(warnings...)
		for _, p := range written {
			fmt.Printf("✓ Rendered %s\n", p)
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(chartCmd)
	chLoad.register(chartCmd)
	chSelect.register(chartCmd)
	chImage.register(chartCmd)
	chartCmd.Flags().StringVarP(&chOutput, "output", "o", "", "JSON output: write to this path instead of stdout")
}
