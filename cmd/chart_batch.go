package cmd

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/KaramelBytes/chartloom-cli/internal/chart"
	"github.com/KaramelBytes/chartloom-cli/internal/utils"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	cbLoad   loadFlags
	cbSelect selectionFlags
	cbImage  imageFlags
	cbOutput string
	cbJobs   int
	cbQuiet  bool
)

var chartBatchCmd = &cobra.Command{
	Use:   "chart-batch <files...>",
	Short: "Chart multiple CSV/TSV/XLSX files concurrently",
	Long: `Apply the same chart selection to every file matched by the arguments (globs
are expanded). JSON output is one array in input order; images are written
under --out-dir/<file base>/.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := utils.ExpandInputs(args)
		if err != nil {
			return err
		}
		opt, err := cbLoad.options()
		if err != nil {
			return err
		}
		format, asImage, err := cbImage.imageFormat()
		if err != nil {
			return err
		}
		jobs := settings().BatchJobs
		if cmd.Flags().Changed("jobs") {
			jobs = cbJobs
		}
		if jobs <= 0 {
			jobs = 1
		}
		bases := uniqueBases(files)
		ropt := cbImage.renderOptions(format)
		debugf("chart-batch: %d files, %d jobs", len(files), jobs)

		results := make([]*chart.Result, len(files))
		var (
			mu   sync.Mutex
			done int
		)
		g, ctx := errgroup.WithContext(cmd.Context())
		g.SetLimit(jobs)
		for i, path := range files {
			i, path := i, path
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				ds, err := loadDataset(path, opt)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				s, err := cbSelect.settingsFor(cmd, ds)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				res := chart.Build(ds, s)
				results[i] = res

				var written, warnings []string
				if asImage {
					written, warnings, err = renderResult(res, filepath.Join(cbImage.dir(), bases[i]), bases[i], ropt)
					if err != nil {
						return fmt.Errorf("%s: %w", path, err)
					}
				}
				mu.Lock()
				defer mu.Unlock()
				done++
				warn(res.Warnings...)
				warn(warnings...)
				if !cbQuiet {
					fmt.Printf("[%d/%d] %s\n", done, len(files), filepath.Base(path))
					for _, p := range written {
						fmt.Printf("✓ Rendered %s\n", p)
					}
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
		if asImage {
			return nil
		}

		b, err := utils.PrettyJSON(results)
		if err != nil {
			return err
		}
		if cbOutput != "" {
			if err := utils.SafeWriteFile(cbOutput, b); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Printf("✓ Wrote chart data for %d files to %s\n", len(files), cbOutput)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(b))
		return nil
	},
}

// uniqueBases derives an output name per file, suffixing repeats with
// __2, __3 in input order.
func uniqueBases(files []string) []string {
	out := make([]string, len(files))
	seen := map[string]int{}
	for i, f := range files {
		base := utils.BaseName(f)
		seen[base]++
		if n := seen[base]; n > 1 {
			base = fmt.Sprintf("%s__%d", base, n)
		}
		out[i] = base
	}
	return out
}

func init() {
	rootCmd.AddCommand(chartBatchCmd)
	cbLoad.register(chartBatchCmd)
	cbSelect.register(chartBatchCmd)
	cbImage.register(chartBatchCmd)
	chartBatchCmd.Flags().StringVarP(&cbOutput, "output", "o", "", "JSON output: write the array to this path instead of stdout")
	chartBatchCmd.Flags().IntVar(&cbJobs, "jobs", 0, "files processed concurrently (default from config, 4)")
	chartBatchCmd.Flags().BoolVar(&cbQuiet, "quiet", false, "suppress progress and non-essential output")
}
