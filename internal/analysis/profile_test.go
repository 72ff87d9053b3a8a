package analysis

import (
	"encoding/json"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/KaramelBytes/chartloom-cli/internal/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileDemoAndMarkdown(t *testing.T) {
	ds, err := dataset.Load("testdata/demo.csv", dataset.LoadOptions{})
	require.NoError(t, err)

	opt := DefaultProfileOptions()
	opt.PreviewRows = 3
	rep := Profile(ds, opt)

	assert.Equal(t, "demo.csv", rep.Name)
	assert.Equal(t, 12, rep.Rows)
	require.Len(t, rep.Cols, 4)
	require.Len(t, rep.Samples, 3)
	assert.Equal(t, []string{"Jan", "120", "32", "North"}, rep.Samples[0])

	sales := rep.Cols[1]
	assert.Equal(t, "numeric", sales.Kind)
	assert.Equal(t, 12, sales.NonNull)
	assert.InDelta(t, 90, sales.Min, 1e-9)
	assert.InDelta(t, 300, sales.Max, 1e-9)
	assert.InDelta(t, 2290, sales.Sum, 1e-9)
	assert.InDelta(t, 2290.0/12, sales.Mean, 1e-9)
	assert.InDelta(t, 185, sales.Median, 1e-9)

	region := rep.Cols[3]
	assert.Equal(t, "categorical", region.Kind)
	assert.Equal(t, 4, region.Unique)
	require.NotEmpty(t, region.TopValues)
	assert.Equal(t, CategoryCount{Value: "North", Count: 5}, region.TopValues[0])

	md := rep.Markdown()
	for _, want := range []string{
		"[DATASET SUMMARY]",
		"File: demo.csv",
		"Rows: 12",
		"Numeric: sales, profit",
		"Categorical: month, region",
		"- sales: numeric (non-null 12, missing 0.0%)",
		"- region: categorical",
		"North(5)",
		"[DATA PREVIEW]",
		"| month | sales | profit | region |",
		"| Jan | 120 | 32 | North |",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("markdown missing %q:\n%s", want, md)
		}
	}
	assert.NotContains(t, md, "| Apr |")
}

func TestProfile_NoData(t *testing.T) {
	rep := Profile(dataset.Empty("empty.csv"), ProfileOptions{})
	assert.Equal(t, 0, rep.Rows)
	assert.Empty(t, rep.Cols)
	assert.Contains(t, rep.Markdown(), "no data: charts are unavailable")

	nilRep := Profile(nil, ProfileOptions{})
	assert.Empty(t, nilRep.Cols)
}

func TestProfile_MissingAndPipes(t *testing.T) {
	ds := dataset.New("pipes.csv", []string{"label", "n"}, [][]string{
		{"a|b", "1"},
		{"", "2"},
		{"c"},
	})
	rep := Profile(ds, ProfileOptions{})
	assert.Equal(t, 1, rep.Cols[0].Missing)
	assert.Equal(t, 1, rep.Cols[1].Missing)
	assert.Contains(t, rep.Markdown(), "| a/b | 1 |")
}

func TestProfile_JSONKeepsZeroStats(t *testing.T) {
	ds := dataset.New("counts.csv", []string{"visits"}, [][]string{{"0"}, {"0"}, {"0"}})
	rep := Profile(ds, ProfileOptions{})
	b, err := json.Marshal(rep.Cols[0])
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(b, &got))
	for _, key := range []string{"min", "max", "mean", "median", "sum"} {
		v, ok := got[key]
		require.True(t, ok, "missing %s", key)
		assert.Equal(t, 0.0, v, key)
	}
	assert.Equal(t, 3.0, got["numeric_values"])
}

func TestProfile_PreviewClipsByRune(t *testing.T) {
	long := strings.Repeat("é", 100)
	ds := dataset.New("wide.csv", []string{"text"}, [][]string{{long}})
	md := Profile(ds, ProfileOptions{}).Markdown()
	assert.True(t, utf8.ValidString(md))
	assert.Contains(t, md, "| "+strings.Repeat("é", 77)+"... |")

	assert.Equal(t, "short", clip("short", 80))
}
