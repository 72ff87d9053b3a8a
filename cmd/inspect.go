package cmd

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/chartloom-cli/internal/analysis"
	"github.com/KaramelBytes/chartloom-cli/internal/utils"
	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/spf13/cobra"
)

var (
	insLoad        loadFlags
	insFormat      string
	insOutputPath  string
	insPreviewRows int
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Classify the columns of a CSV/TSV/XLSX file and summarize it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		opt, err := insLoad.options()
		if err != nil {
			return err
		}
		ds, err := loadDataset(path, opt)
		if err != nil {
			return err
		}
		popt := analysis.DefaultProfileOptions()
		popt.PreviewRows = settings().PreviewRows
		if cmd.Flags().Changed("preview-rows") {
			popt.PreviewRows = insPreviewRows
		}
		rep := analysis.Profile(ds, popt)

		var out []byte
		switch strings.ToLower(strings.TrimSpace(insFormat)) {
		case "", "md", "markdown":
			out = []byte(rep.Markdown())
		case "html":
			out = markdownToHTML(rep.Markdown())
		case "json":
			b, err := utils.PrettyJSON(rep)
			if err != nil {
				return err
			}
			out = b
		default:
			return fmt.Errorf("unsupported --format: %s (use md|html|json)", insFormat)
		}

		if insOutputPath != "" {
			if err := utils.SafeWriteFile(insOutputPath, out); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Printf("✓ Wrote profile to %s\n", insOutputPath)
			return nil
		}
		if len(rep.Warnings) > 0 {
			debugf("%s: %d warnings", path, len(rep.Warnings))
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

// markdownToHTML renders the profile as a standalone HTML page.
func markdownToHTML(md string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.NoEmptyLineBeforeBlock)
	r := mdhtml.NewRenderer(mdhtml.RendererOptions{
		Flags: mdhtml.CommonFlags | mdhtml.CompletePage,
		Title: "Dataset profile",
	})
	return markdown.ToHTML([]byte(md), p, r)
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	insLoad.register(inspectCmd)
	inspectCmd.Flags().StringVar(&insFormat, "format", "md", "output format: md | html | json")
	inspectCmd.Flags().StringVarP(&insOutputPath, "output", "o", "", "optional path to write the profile")
	inspectCmd.Flags().IntVar(&insPreviewRows, "preview-rows", 12, "number of leading rows in the data preview (default from config, 12)")
}
