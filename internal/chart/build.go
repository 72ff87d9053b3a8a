package chart

import (
	"fmt"

	"github.com/KaramelBytes/chartloom-cli/internal/analysis"
	"github.com/KaramelBytes/chartloom-cli/internal/dataset"
	"github.com/google/uuid"
)

// Result is the output of one chart run over a dataset.
type Result struct {
	ID             string                        `json:"id"`
	Source         string                        `json:"source"`
	NoData         bool                          `json:"no_data"`
	Classification analysis.ColumnClassification `json:"classification"`
	Settings       Settings                      `json:"settings"`
	Projection     Projection                    `json:"projection"`
	Trend          *Fit                          `json:"trend,omitempty"`
	Warnings       []string                      `json:"warnings,omitempty"`
}

// Defaults infers column types for ds and returns the default selection.
func Defaults(ds *dataset.Dataset) Settings {
	if ds == nil {
		return DefaultSelection(analysis.ColumnClassification{}, nil)
	}
	return DefaultSelection(analysis.InferColumnTypes(ds.Rows, ds.Header), ds.Header)
}

// Build classifies ds and projects it with s. A dataset without header or
// rows gives a NoData result with every chart disabled.
func Build(ds *dataset.Dataset, s Settings) *Result {
	res := &Result{ID: uuid.NewString()}
	if ds != nil {
		res.Source = ds.Name
		res.Warnings = append(res.Warnings, ds.Warnings...)
	}
	if !ds.HasData() {
		res.NoData = true
		res.Classification = analysis.InferColumnTypes(nil, nil)
		res.Settings = s.Normalize(res.Classification).Disabled()
		res.Projection = Projection{}
		return res
	}
	res.Classification = analysis.InferColumnTypes(ds.Rows, ds.Header)
	if s.Scatter && !ScatterAvailable(res.Classification, s.XCol, s.YCol) {
		res.Warnings = append(res.Warnings, fmt.Sprintf("scatter disabled: %q and %q must both be numeric", s.XCol, s.YCol))
	}
	res.Settings = s.Normalize(res.Classification)
	res.Projection = Project(ds.Rows, res.Classification, res.Settings)
	if sc := res.Projection.Scatter; sc != nil {
		if fit, ok := FitScatter(sc.Points); ok {
			res.Trend = &fit
		}
	}
	return res
}

// CheckColumns reports selected columns that are not in header. Empty
// selections are allowed.
func CheckColumns(s Settings, header []string) error {
	known := make(map[string]bool, len(header))
	for _, h := range header {
		known[h] = true
	}
	for _, c := range []struct{ flag, col string }{
		{"x", s.XCol}, {"y", s.YCol}, {"category", s.CategoryCol},
	} {
		if c.col != "" && !known[c.col] {
			return fmt.Errorf("unknown %s column %q (available: %v)", c.flag, c.col, header)
		}
	}
	return nil
}
