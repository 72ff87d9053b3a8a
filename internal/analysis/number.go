package analysis

import (
	"math"
	"strconv"
	"strings"
)

// Number is a coerced cell value: either a finite float64 or Absent.
// The zero value is Absent, so a missing value never reads as 0.
type Number struct {
	v  float64
	ok bool
}

// Present wraps a finite value. Non-finite input yields Absent.
func Present(f float64) Number {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Number{}
	}
	return Number{v: f, ok: true}
}

// Absent is the "not a number" marker.
func Absent() Number { return Number{} }

// Float64 returns the value and whether it is present.
func (n Number) Float64() (float64, bool) { return n.v, n.ok }

// IsPresent reports whether n holds a value.
func (n Number) IsPresent() bool { return n.ok }

func (n Number) String() string {
	if !n.ok {
		return "absent"
	}
	return strconv.FormatFloat(n.v, 'g', -1, 64)
}

// MarshalJSON encodes Absent as null.
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.ok {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, n.v, 'g', -1, 64), nil
}

// UnmarshalJSON accepts a number or null.
func (n *Number) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*n = Number{}
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*n = Present(f)
	return nil
}

// ToNumber coerces a raw cell. Empty or blank input, parse failures and
// non-finite results are Absent. The first comma is read as a decimal
// separator, so "1,5" is 1.5.
func ToNumber(raw string) Number {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Number{}
	}
	s = strings.Replace(s, ",", ".", 1)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Number{}
	}
	return Present(f)
}
