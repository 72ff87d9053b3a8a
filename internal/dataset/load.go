package dataset

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Load picks a loader by file extension.
func Load(path string, opt LoadOptions) (*Dataset, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv", ".txt":
		return LoadCSV(path, opt)
	case ".xlsx":
		return LoadXLSX(path, opt)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, filepath.Base(path))
	}
}

// CanLoad reports whether Load has a loader for the file name.
func CanLoad(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv", ".txt", ".xlsx":
		return true
	}
	return false
}
