package chart

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/KaramelBytes/chartloom-cli/internal/analysis"
	"github.com/KaramelBytes/chartloom-cli/internal/dataset"
)

// Kind names a chart type.
type Kind string

const (
	KindLine    Kind = "line"
	KindBar     Kind = "bar"
	KindPie     Kind = "pie"
	KindScatter Kind = "scatter"
)

// Kinds lists every chart kind in display order.
var Kinds = []Kind{KindLine, KindBar, KindPie, KindScatter}

var (
	// ErrNoData is returned when a chart is requested from an empty projection.
	ErrNoData = errors.New("no data to chart")
	// ErrUnknownKind is returned for chart names outside Kinds.
	ErrUnknownKind = errors.New("unknown chart kind")
)

// ParseKind maps a user-supplied name to a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// LineSeries feeds both line and bar charts: one label and one value per
// row. Values that do not coerce stay in place as Absent.
type LineSeries struct {
	Title  string            `json:"title"`
	Label  string            `json:"label"`
	Labels []string          `json:"labels"`
	Values []analysis.Number `json:"values"`
	Color  string            `json:"color"`
	Fill   string            `json:"fill"`
}

// PieSeries holds the top categories of an aggregated value.
type PieSeries struct {
	Title  string    `json:"title"`
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
	Colors []string  `json:"colors"`
}

// Point is one scatter point.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ScatterSeries holds rows where both axes coerce.
type ScatterSeries struct {
	Title  string  `json:"title"`
	Label  string  `json:"label"`
	XLabel string  `json:"x_label"`
	YLabel string  `json:"y_label"`
	Points []Point `json:"points"`
	Color  string  `json:"color"`
}

// Projection is the per-chart view of a dataset. A nil member means the
// chart is disabled or unavailable.
type Projection struct {
	Rows    int            `json:"rows"`
	Line    *LineSeries    `json:"line,omitempty"`
	Bar     *LineSeries    `json:"bar,omitempty"`
	Pie     *PieSeries     `json:"pie,omitempty"`
	Scatter *ScatterSeries `json:"scatter,omitempty"`
}

// Empty reports whether no chart is present.
func (p Projection) Empty() bool {
	return p.Line == nil && p.Bar == nil && p.Pie == nil && p.Scatter == nil
}

// CapRows returns the leading maxRows rows without copying them.
func CapRows(rows []dataset.Row, maxRows int) []dataset.Row {
	if maxRows <= 0 {
		return rows[:0]
	}
	if len(rows) > maxRows {
		return rows[:maxRows]
	}
	return rows
}

// Project builds every enabled chart from the first s.MaxRows rows. The
// cap is applied before any per-chart work, so pie sums only cover capped
// rows. Scatter is built only when both columns are classified numeric.
func Project(rows []dataset.Row, cls analysis.ColumnClassification, s Settings) Projection {
	s = s.Normalize(cls)
	safe := CapRows(rows, s.MaxRows)
	p := Projection{Rows: len(safe)}
	if s.Line {
		l := ProjectLine(safe, s.XCol, s.YCol)
		p.Line = &l
	}
	if s.Bar {
		b := ProjectBar(safe, s.XCol, s.YCol)
		p.Bar = &b
	}
	if s.Pie {
		pie := ProjectPie(safe, s.CategoryCol, s.YCol, s.PieTopN)
		p.Pie = &pie
	}
	if s.Scatter {
		sc := ProjectScatter(safe, s.XCol, s.YCol)
		p.Scatter = &sc
	}
	return p
}

// ProjectLine labels each row by its X cell, or by its 0-based position
// when the row has no X key, and coerces its Y cell.
func ProjectLine(rows []dataset.Row, xCol, yCol string) LineSeries {
	labels, values := xyValues(rows, xCol, yCol)
	return LineSeries{
		Title:  fmt.Sprintf("Line: %s over %s", yCol, xCol),
		Label:  yCol,
		Labels: labels,
		Values: values,
		Color:  ColorAt(0),
		Fill:   Translucent(ColorAt(0), "33"),
	}
}

// ProjectBar is ProjectLine with bar styling.
func ProjectBar(rows []dataset.Row, xCol, yCol string) LineSeries {
	labels, values := xyValues(rows, xCol, yCol)
	return LineSeries{
		Title:  fmt.Sprintf("Bar: %s by %s", yCol, xCol),
		Label:  yCol,
		Labels: labels,
		Values: values,
		Color:  ColorAt(1),
		Fill:   Translucent(ColorAt(1), "AA"),
	}
}

func xyValues(rows []dataset.Row, xCol, yCol string) ([]string, []analysis.Number) {
	labels := make([]string, len(rows))
	values := make([]analysis.Number, len(rows))
	for i, r := range rows {
		if x, ok := r.Get(xCol); ok {
			labels[i] = x
		} else {
			labels[i] = strconv.Itoa(i)
		}
		values[i] = analysis.ToNumber(r.Value(yCol))
	}
	return labels, values
}

// ProjectPie sums valueCol per category and keeps the topN largest.
func ProjectPie(rows []dataset.Row, categoryCol, valueCol string, topN int) PieSeries {
	top := analysis.GroupByCategory(rows, categoryCol, valueCol).TopN(topN)
	return PieSeries{
		Title:  fmt.Sprintf("%s grouped by %s", valueCol, categoryCol),
		Labels: top.Labels,
		Values: top.Values,
		Colors: Colors(len(top.Labels)),
	}
}

// ProjectScatter keeps only rows where both axes coerce.
func ProjectScatter(rows []dataset.Row, xCol, yCol string) ScatterSeries {
	pts := make([]Point, 0, len(rows))
	for _, r := range rows {
		x, okx := analysis.ToNumber(r.Value(xCol)).Float64()
		y, oky := analysis.ToNumber(r.Value(yCol)).Float64()
		if !okx || !oky {
			continue
		}
		pts = append(pts, Point{X: x, Y: y})
	}
	return ScatterSeries{
		Title:  fmt.Sprintf("Scatter: %s vs %s", yCol, xCol),
		Label:  fmt.Sprintf("%s vs %s", yCol, xCol),
		XLabel: xCol,
		YLabel: yCol,
		Points: pts,
		Color:  ColorAt(2),
	}
}
