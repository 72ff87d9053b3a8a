package analysis

import (
	"sort"
	"strings"

	"github.com/KaramelBytes/chartloom-cli/internal/dataset"
)

// DefaultPieTopN is how many categories a pie chart keeps.
const DefaultPieTopN = 10

// Series is a pair of parallel label/value sequences.
type Series struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// Len is the number of label/value pairs.
func (s Series) Len() int { return min(len(s.Labels), len(s.Values)) }

// TopN is shorthand for TopN(s.Labels, s.Values, n).
func (s Series) TopN(n int) Series { return TopN(s.Labels, s.Values, n) }

// GroupByCategory sums valueCol per trimmed categoryCol value. Rows with a
// blank category or an Absent value are skipped. Labels keep first-seen order.
func GroupByCategory(rows []dataset.Row, categoryCol, valueCol string) Series {
	out := Series{Labels: []string{}, Values: []float64{}}
	pos := map[string]int{}
	for _, r := range rows {
		cat := strings.TrimSpace(r.Value(categoryCol))
		if cat == "" {
			continue
		}
		val, ok := ToNumber(r.Value(valueCol)).Float64()
		if !ok {
			continue
		}
		i, seen := pos[cat]
		if !seen {
			pos[cat] = len(out.Labels)
			out.Labels = append(out.Labels, cat)
			out.Values = append(out.Values, val)
			continue
		}
		out.Values[i] += val
	}
	return out
}

// TopN stable-sorts label/value pairs by value descending and keeps the
// first n. Equal values keep their input order. Inputs of unequal length
// are paired up to the shorter one; negative n keeps nothing.
func TopN(labels []string, values []float64, n int) Series {
	type pair struct {
		label string
		value float64
	}
	size := min(len(labels), len(values))
	pairs := make([]pair, size)
	for i := 0; i < size; i++ {
		pairs[i] = pair{labels[i], values[i]}
	}
	sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].value > pairs[j].value })
	n = max(0, min(n, size))
	out := Series{Labels: make([]string, n), Values: make([]float64, n)}
	for i, p := range pairs[:n] {
		out.Labels[i] = p.label
		out.Values[i] = p.value
	}
	return out
}
