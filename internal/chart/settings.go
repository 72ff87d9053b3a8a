package chart

import (
	"strconv"
	"strings"

	"github.com/KaramelBytes/chartloom-cli/internal/analysis"
)

// DefaultMaxRows is the row cap used when none (or an invalid one) is given.
const DefaultMaxRows = 1000

// Settings is the user's chart selection. Projections are pure functions of
// rows and Settings; changing a selection means building a new Settings.
type Settings struct {
	XCol        string `json:"x"`
	YCol        string `json:"y"`
	CategoryCol string `json:"category"`
	Line        bool   `json:"line"`
	Bar         bool   `json:"bar"`
	Pie         bool   `json:"pie"`
	Scatter     bool   `json:"scatter"`
	MaxRows     int    `json:"max_rows"`
	PieTopN     int    `json:"pie_top_n"`
}

// DefaultSelection picks the initial columns for a freshly loaded dataset:
// Y is the first numeric column, X and Category the first categorical one,
// each falling back to the first header column. Line, bar and pie start
// enabled; scatter only when both X and Y are numeric.
func DefaultSelection(cls analysis.ColumnClassification, header []string) Settings {
	first := ""
	if len(header) > 0 {
		first = header[0]
	} else if len(cls.All) > 0 {
		first = cls.All[0]
	}
	s := Settings{
		YCol:        firstOr(cls.Numeric, first),
		XCol:        firstOr(cls.Categorical, first),
		CategoryCol: firstOr(cls.Categorical, first),
		Line:        true,
		Bar:         true,
		Pie:         true,
		MaxRows:     DefaultMaxRows,
		PieTopN:     analysis.DefaultPieTopN,
	}
	s.Scatter = ScatterAvailable(cls, s.XCol, s.YCol)
	return s
}

// ScatterAvailable reports whether both axes are numeric columns.
func ScatterAvailable(cls analysis.ColumnClassification, xCol, yCol string) bool {
	return cls.IsNumeric(xCol) && cls.IsNumeric(yCol)
}

// Normalize returns s with scatter switched off when its gate fails and
// non-positive limits replaced by their defaults.
func (s Settings) Normalize(cls analysis.ColumnClassification) Settings {
	if s.Scatter && !ScatterAvailable(cls, s.XCol, s.YCol) {
		s.Scatter = false
	}
	if s.MaxRows <= 0 {
		s.MaxRows = DefaultMaxRows
	}
	if s.PieTopN <= 0 {
		s.PieTopN = analysis.DefaultPieTopN
	}
	return s
}

// Disabled returns s with every chart switched off.
func (s Settings) Disabled() Settings {
	s.Line, s.Bar, s.Pie, s.Scatter = false, false, false, false
	return s
}

// Enabled lists the enabled chart kinds in display order.
func (s Settings) Enabled() []Kind {
	var out []Kind
	for _, k := range Kinds {
		if s.enabled(k) {
			out = append(out, k)
		}
	}
	return out
}

func (s Settings) enabled(k Kind) bool {
	switch k {
	case KindLine:
		return s.Line
	case KindBar:
		return s.Bar
	case KindPie:
		return s.Pie
	case KindScatter:
		return s.Scatter
	}
	return false
}

// ParseMaxRows reads a row cap from free-form input, keeping digits only.
// Input with no digits, a zero cap or an overflowing number gives DefaultMaxRows.
func ParseMaxRows(input string) int {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, input)
	n, err := strconv.Atoi(digits)
	if err != nil || n <= 0 {
		return DefaultMaxRows
	}
	return n
}

func firstOr(list []string, fallback string) string {
	if len(list) > 0 {
		return list[0]
	}
	return fallback
}
