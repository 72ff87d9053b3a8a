package analysis

import (
	"strings"

	"github.com/KaramelBytes/chartloom-cli/internal/dataset"
)

const (
	// SampleCap bounds how many non-empty values are inspected per column.
	SampleCap = 25
	// NumericRatio is the share of sampled values that must coerce for a
	// column to count as numeric.
	NumericRatio = 0.8
)

// ColumnClassification partitions a header into numeric and categorical
// columns. Both partitions keep the order of All.
type ColumnClassification struct {
	Numeric     []string `json:"numeric"`
	Categorical []string `json:"categorical"`
	All         []string `json:"all"`
}

// IsNumeric reports whether col was classified numeric.
func (c ColumnClassification) IsNumeric(col string) bool { return contains(c.Numeric, col) }

// IsCategorical reports whether col was classified categorical.
func (c ColumnClassification) IsCategorical(col string) bool { return contains(c.Categorical, col) }

// InferColumnTypes classifies every column by sampling up to SampleCap
// non-blank values in row order. A column is numeric when at least
// NumericRatio of its samples coerce; a column with no samples is
// categorical. When header is empty the first row's columns are used.
func InferColumnTypes(rows []dataset.Row, header []string) ColumnClassification {
	all := header
	if len(all) == 0 && len(rows) > 0 {
		all = rows[0].Columns()
	}
	cls := ColumnClassification{
		Numeric:     []string{},
		Categorical: []string{},
		All:         append([]string{}, all...),
	}
	for _, col := range cls.All {
		if sampleNumeric(rows, col) {
			cls.Numeric = append(cls.Numeric, col)
		} else {
			cls.Categorical = append(cls.Categorical, col)
		}
	}
	return cls
}

func sampleNumeric(rows []dataset.Row, col string) bool {
	seen, numeric := 0, 0
	for _, r := range rows {
		v := r.Value(col)
		if strings.TrimSpace(v) == "" {
			continue
		}
		seen++
		if ToNumber(v).IsPresent() {
			numeric++
		}
		if seen >= SampleCap {
			break
		}
	}
	return seen > 0 && float64(numeric)/float64(seen) >= NumericRatio
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
