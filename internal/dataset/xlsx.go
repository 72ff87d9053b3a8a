package dataset

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// LoadXLSX reads one worksheet of an .xlsx workbook into a Dataset. The
// sheet is chosen by name when opt.SheetName is set, otherwise by the
// 1-based opt.SheetIndex (first sheet when <= 0).
func LoadXLSX(path string, opt LoadOptions) (*Dataset, error) {
	name := filepath.Base(path)
	f, err := excelize.OpenFile(path)
	if err != nil {
		return Empty(name), fmt.Errorf("%w: open xlsx: %w", ErrParse, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Empty(name), nil
	}
	sheet := ""
	if opt.SheetName != "" {
		for _, s := range sheets {
			if strings.EqualFold(s, opt.SheetName) {
				sheet = s
				break
			}
		}
		if sheet == "" {
			return nil, fmt.Errorf("sheet '%s' not found in workbook '%s'.\nAvailable sheets: %s",
				opt.SheetName, name, strings.Join(sheets, ", "))
		}
	} else {
		idx := opt.SheetIndex
		if idx <= 0 {
			idx = 1
		}
		if idx > len(sheets) {
			return nil, fmt.Errorf("sheet index %d out of range: workbook '%s' has %d sheets", idx, name, len(sheets))
		}
		sheet = sheets[idx-1]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return Empty(name), fmt.Errorf("%w: read sheet %s: %w", ErrParse, sheet, err)
	}
	// Drop leading blank rows so the first populated row is the header.
	for len(rows) > 0 && blankCells(rows[0]) {
		rows = rows[1:]
	}
	if len(rows) == 0 {
		return Empty(name), nil
	}
	records := make([][]string, 0, len(rows)-1)
	for _, r := range rows[1:] {
		if blankCells(r) {
			continue
		}
		records = append(records, r)
	}
	return New(name, rows[0], records), nil
}

func blankCells(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
