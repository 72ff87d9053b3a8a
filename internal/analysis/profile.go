package analysis

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/KaramelBytes/chartloom-cli/internal/dataset"
	"github.com/montanaflynn/stats"
)

// ProfileOptions controls the dataset profile.
type ProfileOptions struct {
	// PreviewRows is how many leading rows the report shows. 0 uses 12.
	PreviewRows int
	// TopValues caps the categorical top-value list. 0 uses 5.
	TopValues int
}

// DefaultProfileOptions returns the preview size used by the data preview table.
func DefaultProfileOptions() ProfileOptions {
	return ProfileOptions{PreviewRows: 12, TopValues: 5}
}

// Report is a markdown-friendly profile of a dataset.
type Report struct {
	Name           string               `json:"name"`
	Rows           int                  `json:"rows"`
	Classification ColumnClassification `json:"classification"`
	Cols           []ColumnSummary      `json:"columns"`
	Header         []string             `json:"header"`
	Samples        [][]string           `json:"samples"`
	Warnings       []string             `json:"warnings,omitempty"`
}

// ColumnSummary captures the inferred kind and simple statistics per column.
type ColumnSummary struct {
	Name    string `json:"name"`
	Kind    string `json:"kind"` // numeric|categorical
	NonNull int    `json:"non_null"`
	Missing int    `json:"missing"`
	Unique  int    `json:"unique"`
	// Numeric stats over values that coerce.
	Numeric int     `json:"numeric_values,omitempty"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Mean    float64 `json:"mean"`
	Median  float64 `json:"median"`
	Sum     float64 `json:"sum"`
	// Categorical top values by frequency.
	TopValues []CategoryCount `json:"top_values,omitempty"`
}

// CategoryCount is one categorical value and how often it occurs.
type CategoryCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Profile classifies the dataset's columns and summarizes each one.
// An empty dataset yields an empty report, not an error.
func Profile(ds *dataset.Dataset, opt ProfileOptions) *Report {
	if opt.PreviewRows <= 0 {
		opt.PreviewRows = 12
	}
	if opt.TopValues <= 0 {
		opt.TopValues = 5
	}
	rep := &Report{Cols: []ColumnSummary{}, Samples: [][]string{}}
	if ds == nil {
		rep.Classification = InferColumnTypes(nil, nil)
		return rep
	}
	rep.Name = ds.Name
	rep.Rows = len(ds.Rows)
	rep.Warnings = append(rep.Warnings, ds.Warnings...)
	rep.Classification = InferColumnTypes(ds.Rows, ds.Header)
	rep.Header = rep.Classification.All

	for _, col := range rep.Classification.All {
		rep.Cols = append(rep.Cols, summarize(ds.Rows, col, rep.Classification.IsNumeric(col), opt.TopValues))
	}
	for i := 0; i < len(ds.Rows) && i < opt.PreviewRows; i++ {
		row := make([]string, len(rep.Header))
		for j, h := range rep.Header {
			row[j] = ds.Rows[i].Value(h)
		}
		rep.Samples = append(rep.Samples, row)
	}
	if !ds.HasData() {
		rep.Warnings = append(rep.Warnings, "no data: charts are unavailable")
	}
	return rep
}

func summarize(rows []dataset.Row, col string, numeric bool, topN int) ColumnSummary {
	s := ColumnSummary{Name: col, Kind: "categorical"}
	if numeric {
		s.Kind = "numeric"
	}
	counts := map[string]int{}
	var vals stats.Float64Data
	for _, r := range rows {
		v := strings.TrimSpace(r.Value(col))
		if v == "" {
			s.Missing++
			continue
		}
		s.NonNull++
		counts[v]++
		if f, ok := ToNumber(v).Float64(); ok {
			vals = append(vals, f)
		}
	}
	s.Unique = len(counts)
	if numeric && len(vals) > 0 {
		s.Numeric = len(vals)
		s.Min, _ = stats.Min(vals)
		s.Max, _ = stats.Max(vals)
		s.Mean, _ = stats.Mean(vals)
		s.Median, _ = stats.Median(vals)
		s.Sum, _ = stats.Sum(vals)
		return s
	}
	tops := make([]CategoryCount, 0, len(counts))
	for k, v := range counts {
		tops = append(tops, CategoryCount{Value: k, Count: v})
	}
	sort.Slice(tops, func(i, j int) bool {
		if tops[i].Count == tops[j].Count {
			return tops[i].Value < tops[j].Value
		}
		return tops[i].Count > tops[j].Count
	})
	if len(tops) > topN {
		tops = tops[:topN]
	}
	s.TopValues = tops
	return s
}

// Markdown renders a compact report for terminals or standalone docs.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if r.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", r.Name))
	}
	b.WriteString(fmt.Sprintf("Rows: %d\n", r.Rows))
	b.WriteString(fmt.Sprintf("Columns: %d\n", len(r.Cols)))
	b.WriteString(fmt.Sprintf("Numeric: %s\n", joinOrNone(r.Classification.Numeric)))
	b.WriteString(fmt.Sprintf("Categorical: %s\n\n", joinOrNone(r.Classification.Categorical)))

	if len(r.Cols) > 0 {
		b.WriteString("[SCHEMA]\n")
	}
	for _, c := range r.Cols {
		total := c.NonNull + c.Missing
		missPct := 0.0
		if total > 0 {
			missPct = float64(c.Missing) * 100.0 / float64(total)
		}
		b.WriteString(fmt.Sprintf("- %s: %s (non-null %d, missing %.1f%%)", safeName(c.Name), c.Kind, c.NonNull, missPct))
		switch c.Kind {
		case "numeric":
			if c.Numeric > 0 {
				b.WriteString(fmt.Sprintf(" — min %.4g, max %.4g, mean %.4g, median %.4g, sum %.4g", c.Min, c.Max, c.Mean, c.Median, c.Sum))
			}
		case "categorical":
			if len(c.TopValues) > 0 {
				b.WriteString(" — top: ")
				for i, kv := range c.TopValues {
					if i > 0 {
						b.WriteString(", ")
					}
					b.WriteString(fmt.Sprintf("%s(%d)", safeVal(kv.Value), kv.Count))
				}
				if c.Unique > len(c.TopValues) {
					b.WriteString(fmt.Sprintf("; unique=%d", c.Unique))
				}
			}
		}
		b.WriteString("\n")
	}
	if len(r.Samples) > 0 {
		b.WriteString("\n[DATA PREVIEW]\n\n")
		b.WriteString("| ")
		for i, h := range r.Header {
			if i > 0 {
				b.WriteString(" | ")
			}
			b.WriteString(safeVal(safeName(h)))
		}
		b.WriteString(" |\n| ")
		for i := range r.Header {
			if i > 0 {
				b.WriteString(" | ")
			}
			b.WriteString("---")
		}
		b.WriteString(" |\n")
		for _, row := range r.Samples {
			b.WriteString("| ")
			for i, val := range row {
				if i > 0 {
					b.WriteString(" | ")
				}
				val = clip(val, 80)
				b.WriteString(safeVal(val))
			}
			b.WriteString(" |\n")
		}
	}
	if len(r.Warnings) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, w := range r.Warnings {
			b.WriteString("- ")
			b.WriteString(w)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// clip shortens s to at most n runes, marking the cut with "...".
func clip(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}

func joinOrNone(cols []string) string {
	if len(cols) == 0 {
		return "(none)"
	}
	return strings.Join(cols, ", ")
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return s
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
