package dataset

// Row maps column names to raw cell strings. Rows built from the same
// header share its index; a Row is never modified after construction.
type Row struct {
	cols  []string
	index map[string]int
	cells []string
}

// NewRows builds rows for records sharing one header.
func NewRows(header []string, records [][]string) []Row {
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[h] = i
	}
	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		n := len(rec)
		if n > len(header) {
			n = len(header)
		}
		cells := make([]string, n)
		copy(cells, rec[:n])
		rows = append(rows, Row{cols: header, index: index, cells: cells})
	}
	return rows
}

// RowOf builds a standalone row from alternating column/value pairs.
// A trailing column without a value is ignored.
func RowOf(kv ...string) Row {
	n := len(kv) / 2
	r := Row{cols: make([]string, 0, n), index: make(map[string]int, n), cells: make([]string, 0, n)}
	for i := 0; i+1 < len(kv); i += 2 {
		if j, ok := r.index[kv[i]]; ok {
			r.cells[j] = kv[i+1]
			continue
		}
		r.index[kv[i]] = len(r.cols)
		r.cols = append(r.cols, kv[i])
		r.cells = append(r.cells, kv[i+1])
	}
	return r
}

// Get returns the raw cell for col and whether the row carries that key.
func (r Row) Get(col string) (string, bool) {
	i, ok := r.index[col]
	if !ok || i >= len(r.cells) {
		return "", false
	}
	return r.cells[i], true
}

// Value returns the raw cell for col, or "" when the key is absent.
func (r Row) Value(col string) string {
	v, _ := r.Get(col)
	return v
}

// Columns lists the keys present in the row in header order.
func (r Row) Columns() []string {
	out := make([]string, len(r.cells))
	copy(out, r.cols[:len(r.cells)])
	return out
}

// Len is the number of keys present in the row.
func (r Row) Len() int { return len(r.cells) }
