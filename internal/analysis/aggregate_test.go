package analysis

import (
	"testing"

	"github.com/KaramelBytes/chartloom-cli/internal/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupByCategory(t *testing.T) {
	rows := []dataset.Row{
		dataset.RowOf("cat", "A", "v", "10"),
		dataset.RowOf("cat", "A", "v", "5"),
		dataset.RowOf("cat", "B", "v", "3"),
	}
	got := GroupByCategory(rows, "cat", "v")
	assert.Equal(t, []string{"A", "B"}, got.Labels)
	assert.Equal(t, []float64{15, 3}, got.Values)
}

func TestGroupByCategory_SkipsBlankAndAbsent(t *testing.T) {
	rows := []dataset.Row{
		dataset.RowOf("cat", "  B ", "v", "1,5"),
		dataset.RowOf("cat", "", "v", "100"),
		dataset.RowOf("cat", "   ", "v", "100"),
		dataset.RowOf("cat", "A", "v", "n/a"),
		dataset.RowOf("cat", "A", "v", ""),
		dataset.RowOf("v", "100"),
		dataset.RowOf("cat", "A"),
		dataset.RowOf("cat", "A", "v", "0"),
		dataset.RowOf("cat", "B", "v", "2"),
	}
	got := GroupByCategory(rows, "cat", "v")
	assert.Equal(t, []string{"B", "A"}, got.Labels)
	assert.Equal(t, []float64{3.5, 0}, got.Values)
}

func TestGroupByCategory_NoQualifyingRows(t *testing.T) {
	got := GroupByCategory([]dataset.Row{dataset.RowOf("cat", "", "v", "x")}, "cat", "v")
	assert.NotNil(t, got.Labels)
	assert.Empty(t, got.Labels)
	assert.Empty(t, got.Values)

	assert.Equal(t, 0, GroupByCategory(nil, "cat", "v").Len())
}

func TestTopN_StableUnderTies(t *testing.T) {
	got := TopN([]string{"A", "B", "C"}, []float64{5, 5, 1}, 2)
	assert.Equal(t, []string{"A", "B"}, got.Labels)
	assert.Equal(t, []float64{5, 5}, got.Values)

	got = TopN([]string{"C", "A", "B", "D"}, []float64{1, 5, 5, 7}, 3)
	assert.Equal(t, []string{"D", "A", "B"}, got.Labels)
	assert.Equal(t, []float64{7, 5, 5}, got.Values)
}

func TestTopN_Bounds(t *testing.T) {
	labels := []string{"a", "b", "c"}
	values := []float64{1, 3, 2}

	all := TopN(labels, values, 10)
	assert.Equal(t, []string{"b", "c", "a"}, all.Labels)

	none := TopN(labels, values, 0)
	assert.Empty(t, none.Labels)
	assert.Empty(t, TopN(labels, values, -1).Labels)

	// parallel slices of unequal length pair up to the shorter one
	short := TopN(labels, []float64{1, 3}, 5)
	assert.Equal(t, []string{"b", "a"}, short.Labels)

	// inputs are left untouched
	assert.Equal(t, []string{"a", "b", "c"}, labels)
	assert.Equal(t, []float64{1, 3, 2}, values)
}

func TestGroupByCategory_Demo(t *testing.T) {
	ds, err := dataset.Load("testdata/demo.csv", dataset.LoadOptions{})
	require.NoError(t, err)

	agg := GroupByCategory(ds.Rows, "region", "sales")
	assert.Equal(t, []string{"North", "South", "West", "East"}, agg.Labels)
	// North: Jan 120, Feb 150, Aug 240, Nov 260, Dec 300
	assert.Equal(t, []float64{1070, 260, 610, 350}, agg.Values)

	top := agg.TopN(DefaultPieTopN)
	assert.Equal(t, []string{"North", "West", "East", "South"}, top.Labels)
	assert.Equal(t, []float64{1070, 610, 350, 260}, top.Values)
}
