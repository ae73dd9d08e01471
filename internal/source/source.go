// Package source reads association records from tabular inputs. Each source
// streams matrix.Record values and leaves normalization to the indexer.
package source

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"crosstab/internal/matrix"
)

// Options select what to read from an input file.
type Options struct {
	Sheet string // xlsx: sheet name; empty means the first sheet
	Table string // sqlite: table name; required for sqlite inputs

	// RowField and ColField are field selectors: a field name, a unique
	// case-insensitive name, or a 1-based column index.
	RowField string
	ColField string
}

// Open opens path as a record source, dispatching on the file extension.
func Open(path string, opts Options) (matrix.RecordSource, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv", ".tsv":
		return OpenCSV(path, opts)
	case ".xlsx":
		return OpenXLSX(path, opts)
	case ".db", ".sqlite", ".sqlite3":
		return OpenSQLite(path, opts)
	default:
		return nil, fmt.Errorf("unsupported input format %q (want .csv, .tsv, .xlsx, .db, .sqlite, .sqlite3)", ext)
	}
}

// Fields returns the selectable field names of the input: the header row for
// CSV and XLSX, the table columns for SQLite.
func Fields(path string, opts Options) ([]string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv", ".tsv":
		return CSVFields(path)
	case ".xlsx":
		return XLSXFields(path, opts.Sheet)
	case ".db", ".sqlite", ".sqlite3":
		return SQLiteFields(path, opts.Table)
	default:
		return nil, fmt.Errorf("unsupported input format %q (want .csv, .tsv, .xlsx, .db, .sqlite, .sqlite3)", ext)
	}
}

// ResolveField matches a user-supplied selector against field names: exact
// match first, then unique case-insensitive match, then 1-based column index.
// Ambiguous and unknown selectors error with the candidates.
func ResolveField(fields []string, selector string) (int, error) {
	if selector == "" {
		return 0, fmt.Errorf("empty field selector")
	}

	// 1. Exact name
	for i, f := range fields {
		if f == selector {
			return i, nil
		}
	}

	// 2. Unique case-insensitive name
	var matches []string
	matchIdx := -1
	for i, f := range fields {
		if strings.EqualFold(f, selector) {
			matches = append(matches, f)
			matchIdx = i
		}
	}
	switch len(matches) {
	case 1:
		return matchIdx, nil
	case 0:
		// fall through to index
	default:
		return 0, fmt.Errorf("ambiguous field %q: matches %s", selector, strings.Join(matches, ", "))
	}

	// 3. 1-based column index
	if n, err := strconv.Atoi(selector); err == nil {
		if n < 1 || n > len(fields) {
			return 0, fmt.Errorf("column index %d out of range 1-%d", n, len(fields))
		}
		return n - 1, nil
	}

	return 0, fmt.Errorf("field not found: %q (have: %s)", selector, strings.Join(fields, ", "))
}

// fieldValue extracts cell i from a record, returning nil for cells beyond
// the record's length so ragged rows read as missing values.
func fieldValue(cells []string, i int) any {
	if i >= len(cells) {
		return nil
	}
	return cells[i]
}
