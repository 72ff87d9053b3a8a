package dataset

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrParse wraps structural errors reported while reading a tabular file.
	ErrParse = errors.New("malformed dataset")
	// ErrUnsupported indicates the file extension has no loader.
	ErrUnsupported = errors.New("unsupported dataset format")
)

// Dataset is a parsed table: an ordered header plus rows keyed by it.
type Dataset struct {
	Name     string
	Header   []string
	Rows     []Row
	Warnings []string
}

// Empty returns a dataset with no header and no rows.
func Empty(name string) *Dataset {
	return &Dataset{Name: name, Header: []string{}, Rows: []Row{}}
}

// New builds a dataset from a raw header and records. Header names are
// made unique and non-empty; records shorter than the header leave the
// trailing columns absent, longer records are cut to the header width.
func New(name string, header []string, records [][]string) *Dataset {
	ds := &Dataset{Name: name, Header: UniqueHeader(header)}
	ds.Rows = NewRows(ds.Header, records)
	var long int
	for _, rec := range records {
		if len(rec) > len(ds.Header) {
			long++
		}
	}
	if long > 0 {
		ds.Warnings = append(ds.Warnings, fmt.Sprintf("%d rows had more fields than the header; extra fields ignored", long))
	}
	return ds
}

// HasData reports whether the dataset can feed any chart.
func (d *Dataset) HasData() bool {
	return d != nil && len(d.Header) > 0 && len(d.Rows) > 0
}

// UniqueHeader trims a raw header, names blank cells column_<n> and renames
// repeats name_1, name_2, ... in order of appearance.
func UniqueHeader(raw []string) []string {
	out := make([]string, 0, len(raw))
	used := make(map[string]bool, len(raw))
	for i, h := range raw {
		name := strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if name == "" {
			name = fmt.Sprintf("column_%d", i+1)
		}
		if used[name] {
			base := name
			for n := 1; ; n++ {
				cand := fmt.Sprintf("%s_%d", base, n)
				if !used[cand] {
					name = cand
					break
				}
			}
		}
		used[name] = true
		out = append(out, name)
	}
	return out
}
