package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/chartloom-cli/internal/analysis"
	"github.com/KaramelBytes/chartloom-cli/internal/chart"
	"github.com/KaramelBytes/chartloom-cli/internal/dataset"
	"github.com/KaramelBytes/chartloom-cli/internal/utils"
	"github.com/spf13/cobra"
)

// loadFlags are the input flags shared by every command that reads a file.
type loadFlags struct {
	delimiter  string
	sheetName  string
	sheetIndex int
}

func (f *loadFlags) register(c *cobra.Command) {
	c.Flags().StringVar(&f.delimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab' (auto-detect if omitted)")
	c.Flags().StringVar(&f.sheetName, "sheet-name", "", "XLSX: sheet name to load")
	c.Flags().IntVar(&f.sheetIndex, "sheet-index", 1, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
}

func (f *loadFlags) options() (dataset.LoadOptions, error) {
	opt := dataset.LoadOptions{SheetName: f.sheetName, SheetIndex: f.sheetIndex}
	switch f.delimiter {
	case "":
	case ",":
		opt.Delimiter = ','
	case "\t", "tab":
		opt.Delimiter = '\t'
	case ";":
		opt.Delimiter = ';'
	default:
		return opt, fmt.Errorf("unsupported --delimiter: %s", f.delimiter)
	}
	return opt, nil
}

// loadDataset reads path. A file that does not parse becomes the empty
// dataset with a warning so callers can carry on in the no-data state.
func loadDataset(path string, opt dataset.LoadOptions) (*dataset.Dataset, error) {
	ds, err := dataset.Load(path, opt)
	if err != nil {
		if errors.Is(err, dataset.ErrParse) && ds != nil {
			ds.Warnings = append(ds.Warnings, err.Error())
			debugf("%s: %v", path, err)
			return ds, nil
		}
		return nil, err
	}
	debugf("%s: %d columns, %d rows", path, len(ds.Header), len(ds.Rows))
	return ds, nil
}

// selectionFlags mirror the chart controls. Chart toggles are tri-state:
// a flag the user did not pass keeps the default selection.
type selectionFlags struct {
	x, y, category          string
	line, bar, pie, scatter bool
	maxRows                 string
	top                     int
}

func (f *selectionFlags) register(c *cobra.Command) {
	c.Flags().StringVar(&f.x, "x", "", "X column (default: first categorical column)")
	c.Flags().StringVar(&f.y, "y", "", "Y column (default: first numeric column)")
	c.Flags().StringVar(&f.category, "category", "", "pie category column (default: first categorical column)")
	c.Flags().BoolVar(&f.line, "line", true, "enable the line chart")
	c.Flags().BoolVar(&f.bar, "bar", true, "enable the bar chart")
	c.Flags().BoolVar(&f.pie, "pie", true, "enable the pie chart")
	c.Flags().BoolVar(&f.scatter, "scatter", false, "enable the scatter chart (needs numeric X and Y)")
	c.Flags().StringVar(&f.maxRows, "max-rows", "", "row cap; non-digits are ignored (default from config, 1000)")
	c.Flags().IntVar(&f.top, "top", 0, "pie chart: keep the N largest categories (default from config, 10)")
}

// settingsFor starts from the default selection for ds, applies the loaded
// configuration and then every flag the user passed.
func (f *selectionFlags) settingsFor(c *cobra.Command, ds *dataset.Dataset) (chart.Settings, error) {
	conf := settings()
	cls := analysis.InferColumnTypes(ds.Rows, ds.Header)
	s := chart.DefaultSelection(cls, ds.Header)
	s.MaxRows = conf.MaxRows
	s.PieTopN = conf.PieTopN

	fl := c.Flags()
	if fl.Changed("x") {
		s.XCol = f.x
	}
	if fl.Changed("y") {
		s.YCol = f.y
	}
	if fl.Changed("category") {
		s.CategoryCol = f.category
	}
	if fl.Changed("line") {
		s.Line = f.line
	}
	if fl.Changed("bar") {
		s.Bar = f.bar
	}
	if fl.Changed("pie") {
		s.Pie = f.pie
	}
	if fl.Changed("scatter") {
		s.Scatter = f.scatter
	} else if fl.Changed("x") || fl.Changed("y") {
		s.Scatter = chart.ScatterAvailable(cls, s.XCol, s.YCol)
	}
	if fl.Changed("max-rows") {
		s.MaxRows = chart.ParseMaxRows(f.maxRows)
	}
	if fl.Changed("top") {
		s.PieTopN = f.top
	}
	if ds.HasData() {
		if err := chart.CheckColumns(s, ds.Header); err != nil {
			return s, err
		}
	}
	return s, nil
}

// imageFlags control rendered output.
type imageFlags struct {
	format string
	outDir string
	width  int
	height int
}

func (f *imageFlags) register(c *cobra.Command) {
	c.Flags().StringVar(&f.format, "format", "json", "output: json | png | svg | image (configured image_format)")
	c.Flags().StringVar(&f.outDir, "out-dir", "", "directory for rendered images (default from config)")
	c.Flags().IntVar(&f.width, "width", 0, "image width in pixels (default from config)")
	c.Flags().IntVar(&f.height, "height", 0, "image height in pixels (default from config)")
}

// imageFormat resolves --format. ok is false for JSON output.
func (f *imageFlags) imageFormat() (chart.Format, bool, error) {
	v := strings.ToLower(strings.TrimSpace(f.format))
	switch v {
	case "", "json":
		return "", false, nil
	case "image":
		v = settings().ImageFormat
	}
	format, err := chart.ParseFormat(v)
	if err != nil {
		return "", false, err
	}
	return format, true, nil
}

func (f *imageFlags) renderOptions(format chart.Format) chart.RenderOptions {
	conf := settings()
	opt := chart.RenderOptions{Format: format, Width: conf.ChartWidth, Height: conf.ChartHeight}
	if f.width > 0 {
		opt.Width = f.width
	}
	if f.height > 0 {
		opt.Height = f.height
	}
	return opt
}

func (f *imageFlags) dir() string {
	if f.outDir != "" {
		return f.outDir
	}
	return settings().OutputDir
}

// renderResult writes one image per enabled chart of res into dir as
// <base>_<kind>.<ext> and returns the written paths. Charts with too little
// data are skipped with a warning.
func renderResult(res *chart.Result, dir, base string, opt chart.RenderOptions) ([]string, []string, error) {
	var written, warnings []string
	if res.NoData {
		return nil, []string{fmt.Sprintf("%s: no data, nothing to render", res.Source)}, nil
	}
	if err := utils.EnsureDir(dir); err != nil {
		return nil, nil, err
	}
	if res.Trend != nil {
		opt.Trend = res.Trend
	}
	for _, kind := range res.Settings.Enabled() {
		var buf bytes.Buffer
		if err := chart.Render(&buf, kind, res.Projection, opt); err != nil {
			if errors.Is(err, chart.ErrNoData) {
				warnings = append(warnings, fmt.Sprintf("%s: %s chart skipped: %v", res.Source, kind, err))
				continue
			}
			return written, warnings, err
		}
		path := filepath.Join(dir, fmt.Sprintf("%s_%s.%s", base, kind, opt.Format))
		if err := utils.SafeWriteFile(path, buf.Bytes()); err != nil {
			return written, warnings, fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, warnings, nil
}

func warn(msgs ...string) {
	for _, m := range msgs {
		fmt.Fprintf(os.Stderr, "⚠ Warning: %s\n", m)
	}
}
