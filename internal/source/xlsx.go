package source

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"crosstab/internal/matrix"
)

type xlsxSource struct {
	f        *excelize.File
	rows     *excelize.Rows
	row, col int
}

// OpenXLSX opens a workbook sheet, reads its header row, and resolves the
// two field selectors against it. An empty sheet name means the first sheet.
func OpenXLSX(path string, opts Options) (matrix.RecordSource, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}

	sheet := opts.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.Rows(sheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("open sheet %q: %w", sheet, err)
	}

	var header []string
	if rows.Next() {
		header, err = rows.Columns()
		if err != nil {
			rows.Close()
			f.Close()
			return nil, fmt.Errorf("read header: %w", err)
		}
	}
	ri, err := ResolveField(header, opts.RowField)
	if err != nil {
		rows.Close()
		f.Close()
		return nil, err
	}
	ci, err := ResolveField(header, opts.ColField)
	if err != nil {
		rows.Close()
		f.Close()
		return nil, err
	}

	return &xlsxSource{f: f, rows: rows, row: ri, col: ci}, nil
}

func (s *xlsxSource) Next() (matrix.Record, error) {
	if !s.rows.Next() {
		if err := s.rows.Error(); err != nil {
			return matrix.Record{}, err
		}
		return matrix.Record{}, io.EOF
	}
	// Columns trims trailing empty cells, so short rows read as missing.
	cells, err := s.rows.Columns()
	if err != nil {
		return matrix.Record{}, err
	}
	return matrix.Record{Row: fieldValue(cells, s.row), Col: fieldValue(cells, s.col)}, nil
}

func (s *xlsxSource) Close() error {
	rerr := s.rows.Close()
	if err := s.f.Close(); err != nil && rerr == nil {
		rerr = err
	}
	return rerr
}

// XLSXFields returns the header row of a workbook sheet.
func XLSXFields(path, sheet string) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.Rows(sheet)
	if err != nil {
		return nil, fmt.Errorf("open sheet %q: %w", sheet, err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Error()
	}
	return rows.Columns()
}
