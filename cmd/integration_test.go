package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KaramelBytes/chartloom-cli/internal/chart"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags restores every flag to its default so Changed state does not
// leak between invocations of the shared rootCmd.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// runCmd is a helper to execute the root command with args and return stdout
// written through the command.
func runCmd(t *testing.T, args ...string) string {
	t.Helper()
	out, err := tryCmd(t, args...)
	require.NoError(t, err, "command %v failed", args)
	return out
}

func tryCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	cfg = nil
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	rootCmd.SetOut(nil)
	return buf.String(), err
}

// isolate points HOME at a fresh temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func demoPath(t *testing.T) string {
	t.Helper()
	p, err := filepath.Abs(filepath.Join("testdata", "demo.csv"))
	require.NoError(t, err)
	return p
}

func TestCLI_ChartJSONDefaults(t *testing.T) {
	isolate(t)
	out := runCmd(t, "chart", demoPath(t))

	var res chart.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.False(t, res.NoData)
	assert.NotEmpty(t, res.ID)
	assert.Equal(t, "demo.csv", res.Source)
	assert.Equal(t, "month", res.Settings.XCol)
	assert.Equal(t, "sales", res.Settings.YCol)
	assert.Equal(t, []chart.Kind{chart.KindLine, chart.KindBar, chart.KindPie}, res.Settings.Enabled())
	require.NotNil(t, res.Projection.Pie)
	assert.Len(t, res.Projection.Pie.Labels, 10)
	assert.Nil(t, res.Projection.Scatter)
}

func TestCLI_ChartSelectionFlags(t *testing.T) {
	isolate(t)
	out := runCmd(t, "chart", demoPath(t),
		"--x", "sales", "--y", "profit", "--category", "region",
		"--line=false", "--bar=false", "--top", "2", "--max-rows", "10 rows")

	var res chart.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 10, res.Settings.MaxRows)
	assert.True(t, res.Settings.Scatter, "numeric axes switch scatter on when the flag is unset")
	assert.Nil(t, res.Projection.Line)
	assert.Nil(t, res.Projection.Bar)
	require.NotNil(t, res.Projection.Pie)
	assert.Equal(t, []string{"West", "North"}, res.Projection.Pie.Labels, "only the first ten rows are summed")
	require.NotNil(t, res.Projection.Scatter)
	assert.Len(t, res.Projection.Scatter.Points, 10)
	assert.NotNil(t, res.Trend)
}

func TestCLI_ChartScatterGateWarnsButSucceeds(t *testing.T) {
	isolate(t)
	out := runCmd(t, "chart", demoPath(t), "--scatter")
	var res chart.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.False(t, res.Settings.Scatter)
	assert.NotEmpty(t, res.Warnings)
}

func TestCLI_ChartUnknownColumn(t *testing.T) {
	isolate(t)
	_, err := tryCmd(t, "chart", demoPath(t), "--y", "revenue")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "revenue")
}

func TestCLI_ChartEmptyFileIsNoData(t *testing.T) {
	home := isolate(t)
	empty := filepath.Join(home, "empty.csv")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))

	out := runCmd(t, "chart", empty)
	var res chart.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.True(t, res.NoData)
	assert.Empty(t, res.Settings.Enabled())
	assert.True(t, res.Projection.Empty())
}

func TestCLI_ChartRendersImages(t *testing.T) {
	home := isolate(t)
	outDir := filepath.Join(home, "charts")
	runCmd(t, "chart", demoPath(t), "--format", "png", "--out-dir", outDir, "--width", "400", "--height", "300")

	for _, k := range []string{"line", "bar", "pie"} {
		b, err := os.ReadFile(filepath.Join(outDir, "demo_"+k+".png"))
		require.NoError(t, err, k)
		assert.True(t, bytes.HasPrefix(b, []byte("\x89PNG")), k)
	}
	assert.NoFileExists(t, filepath.Join(outDir, "demo_scatter.png"))
}

func TestCLI_ChartBatchJSONKeepsInputOrder(t *testing.T) {
	home := isolate(t)
	demo, err := os.ReadFile(demoPath(t))
	require.NoError(t, err)
	for _, name := range []string{"c.csv", "a.csv", "b.csv"} {
		require.NoError(t, os.WriteFile(filepath.Join(home, name), demo, 0o644))
	}

	out := runCmd(t, "chart-batch", filepath.Join(home, "*.csv"), "--jobs", "2", "--quiet")
	var results []chart.Result
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 3)
	assert.Equal(t, "a.csv", results[0].Source)
	assert.Equal(t, "b.csv", results[1].Source)
	assert.Equal(t, "c.csv", results[2].Source)
	assert.NotEqual(t, results[0].ID, results[1].ID)
}

func TestCLI_ChartBatchImagesPerFile(t *testing.T) {
	home := isolate(t)
	demo, err := os.ReadFile(demoPath(t))
	require.NoError(t, err)
	for _, d := range []string{"d1", "d2"} {
		require.NoError(t, os.MkdirAll(filepath.Join(home, d), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(home, d, "metrics.csv"), demo, 0o644))
	}
	outDir := filepath.Join(home, "out")
	runCmd(t, "chart-batch", filepath.Join(home, "d*", "metrics.csv"), "--format", "svg", "--out-dir", outDir, "--pie=false", "--quiet")

	for _, p := range []string{
		filepath.Join(outDir, "metrics", "metrics_line.svg"),
		filepath.Join(outDir, "metrics__2", "metrics__2_bar.svg"),
	} {
		b, err := os.ReadFile(p)
		require.NoError(t, err, p)
		assert.Contains(t, string(b), "<svg")
	}
	assert.NoFileExists(t, filepath.Join(outDir, "metrics", "metrics_pie.svg"))
}

func TestCLI_ChartBatchNoMatches(t *testing.T) {
	home := isolate(t)
	_, err := tryCmd(t, "chart-batch", filepath.Join(home, "*.csv"))
	assert.Error(t, err)
}

func TestCLI_Inspect(t *testing.T) {
	isolate(t)
	md := runCmd(t, "inspect", demoPath(t))
	assert.Contains(t, md, "[DATASET SUMMARY]")
	assert.Contains(t, md, "sales")

	html := runCmd(t, "inspect", demoPath(t), "--format", "html")
	assert.Contains(t, strings.ToLower(html), "<html")
	assert.Contains(t, html, "<table>")

	js := runCmd(t, "inspect", demoPath(t), "--format", "json", "--preview-rows", "3")
	var rep struct {
		Rows    int        `json:"rows"`
		Samples [][]string `json:"samples"`
	}
	require.NoError(t, json.Unmarshal([]byte(js), &rep))
	assert.Equal(t, 12, rep.Rows)
	assert.Len(t, rep.Samples, 3)

	_, err := tryCmd(t, "inspect", demoPath(t), "--format", "pdf")
	assert.Error(t, err)
}

func TestCLI_ConfigSetAndShow(t *testing.T) {
	home := isolate(t)
	runCmd(t, "config", "set", "pie_top_n", "3")
	runCmd(t, "config", "set", "image_format", "SVG")
	assert.FileExists(t, filepath.Join(home, ".chartloom", "config.yaml"))

	out := runCmd(t, "config", "show")
	assert.Contains(t, out, "pie_top_n: 3")
	assert.Contains(t, out, "image_format: svg")

	_, err := tryCmd(t, "config", "set", "batch_jobs", "zero")
	assert.Error(t, err)
	_, err = tryCmd(t, "config", "set", "nope", "1")
	assert.Error(t, err)

	// saved pie_top_n applies to chart runs
	js := runCmd(t, "chart", demoPath(t), "--category", "region")
	var res chart.Result
	require.NoError(t, json.Unmarshal([]byte(js), &res))
	require.NotNil(t, res.Projection.Pie)
	assert.Len(t, res.Projection.Pie.Labels, 3)
}

func TestUniqueBases(t *testing.T) {
	got := uniqueBases([]string{"/a/x.csv", "/b/x.csv", "/c/y.xlsx", "/d/x.tsv"})
	assert.Equal(t, []string{"x", "x__2", "y", "x__3"}, got)
}

func TestCLI_ChartRendersFlatAndLossMakingColumns(t *testing.T) {
	home := isolate(t)
	data := "month,units,profit,region\n" +
		"Jan,7,5,North\n" +
		"Feb,7,-5,South\n" +
		"Mar,7,3,East\n" +
		"Apr,7,-3,West\n"
	flat := filepath.Join(home, "flat.csv")
	require.NoError(t, os.WriteFile(flat, []byte(data), 0o644))
	outDir := filepath.Join(home, "charts")

	runCmd(t, "chart", flat, "--y", "units", "--format", "png", "--out-dir", outDir)
	for _, k := range []string{"line", "bar", "pie"} {
		assert.FileExists(t, filepath.Join(outDir, "flat_"+k+".png"), k)
	}

	// all-negative sums leave no pie slices: the pie is skipped, the rest renders
	losses := filepath.Join(home, "losses.csv")
	require.NoError(t, os.WriteFile(losses, []byte("region,profit\nNorth,-1\nSouth,-2\n"), 0o644))
	runCmd(t, "chart-batch", flat, losses, "--y", "profit", "--category", "region", "--format", "png", "--out-dir", outDir, "--quiet")
	assert.FileExists(t, filepath.Join(outDir, "losses", "losses_line.png"))
	assert.NoFileExists(t, filepath.Join(outDir, "losses", "losses_pie.png"))
	assert.FileExists(t, filepath.Join(outDir, "flat", "flat_pie.png"))
}
