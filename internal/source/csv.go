package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"crosstab/internal/matrix"
)

type csvSource struct {
	f        *os.File
	r        *csv.Reader
	row, col int
}

// OpenCSV opens a CSV (or TSV) file, reads its header row, and resolves the
// two field selectors against it.
func OpenCSV(path string, opts Options) (matrix.RecordSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}

	r := newCSVReader(f, path)
	header, err := r.Read()
	if err == io.EOF {
		header = nil
	} else if err != nil {
		f.Close()
		return nil, fmt.Errorf("read header: %w", err)
	}
	// The header slice is reused by the next Read; resolve before reading on.
	ri, err := ResolveField(header, opts.RowField)
	if err != nil {
		f.Close()
		return nil, err
	}
	ci, err := ResolveField(header, opts.ColField)
	if err != nil {
		f.Close()
		return nil, err
	}

	return &csvSource{f: f, r: r, row: ri, col: ci}, nil
}

func (s *csvSource) Next() (matrix.Record, error) {
	cells, err := s.r.Read()
	if err != nil {
		return matrix.Record{}, err // io.EOF passes through
	}
	return matrix.Record{Row: fieldValue(cells, s.row), Col: fieldValue(cells, s.col)}, nil
}

func (s *csvSource) Close() error {
	return s.f.Close()
}

// CSVFields returns the header row of a CSV or TSV file.
func CSVFields(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	header, err := newCSVReader(f, path).Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	fields := make([]string, len(header))
	copy(fields, header)
	return fields, nil
}

func newCSVReader(f *os.File, path string) *csv.Reader {
	r := csv.NewReader(f)
	r.ReuseRecord = true
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		r.Comma = '\t'
	}
	return r
}
