package dataset

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LoadOptions controls how a file is turned into a Dataset.
type LoadOptions struct {
	// Delimiter for CSV. If 0, sniffed from the extension and the first line.
	Delimiter rune
	// XLSX sheet selection. SheetName wins over SheetIndex (1-based).
	SheetName  string
	SheetIndex int
}

// LoadCSV reads a CSV/TSV file into a Dataset. A file that cannot be read is
// an error; a file that cannot be parsed yields the empty dataset and an error
// wrapping ErrParse.
func LoadCSV(path string, opt LoadOptions) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	delim := opt.Delimiter
	if delim == 0 && strings.HasSuffix(strings.ToLower(path), ".tsv") {
		delim = '\t'
	}
	return ParseCSV(f, filepath.Base(path), delim)
}

// ParseCSV parses CSV text whose first record is the header. Blank lines are
// skipped and ragged records are accepted. When delim is 0 it is sniffed from
// the header line.
func ParseCSV(r io.Reader, name string, delim rune) (*Dataset, error) {
	br := bufio.NewReader(r)
	if delim == 0 {
		head, _ := br.Peek(4096)
		delim = sniffDelimiter(head)
	}
	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.Comma = delim

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Empty(name), nil
		}
		return Empty(name), fmt.Errorf("%w: read header: %w", ErrParse, err)
	}
	var records [][]string
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return Empty(name), fmt.Errorf("%w: read row %d: %w", ErrParse, len(records)+1, err)
		}
		if blankRecord(rec) {
			continue
		}
		records = append(records, rec)
	}
	return New(name, header, records), nil
}

// sniffDelimiter picks the most frequent of ',', ';' and tab on the first
// line, preferring ',' on ties.
func sniffDelimiter(head []byte) rune {
	if i := bytes.IndexByte(head, '\n'); i >= 0 {
		head = head[:i]
	}
	best, bestN := ',', bytes.Count(head, []byte{','})
	for _, c := range []rune{';', '\t'} {
		if n := bytes.Count(head, []byte(string(c))); n > bestN {
			best, bestN = c, n
		}
	}
	return best
}

func blankRecord(rec []string) bool {
	return len(rec) == 1 && strings.TrimSpace(rec[0]) == ""
}
