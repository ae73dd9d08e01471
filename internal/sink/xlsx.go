package sink

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// XLSX writes each table to its own worksheet through a stream writer, so a
// sheet holds at most one pending row in memory. Commit writes the workbook
// to a temp file next to the final path and renames it into place.
type XLSX struct {
	f     *excelize.File
	sw    *excelize.StreamWriter
	row   int
	path  string
	first bool
}

// NewXLSX creates an XLSX sink that will publish to path on Commit.
func NewXLSX(path string) *XLSX {
	return &XLSX{f: excelize.NewFile(), path: path, first: true}
}

// BeginTable starts a new worksheet named name. The previous sheet's stream
// is flushed first; stream writers forbid interleaved sheet writes.
func (x *XLSX) BeginTable(name string) error {
	if x.sw != nil {
		if err := x.sw.Flush(); err != nil {
			return err
		}
		x.sw = nil
	}

	if x.first {
		// Rename the default sheet instead of leaving an empty Sheet1 behind.
		if err := x.f.SetSheetName("Sheet1", name); err != nil {
			return err
		}
		x.first = false
	} else if _, err := x.f.NewSheet(name); err != nil {
		return err
	}

	sw, err := x.f.NewStreamWriter(name)
	if err != nil {
		return err
	}
	x.sw = sw
	x.row = 0
	return nil
}

func (x *XLSX) AppendRow(cells []any) error {
	if x.sw == nil {
		return errors.New("xlsx: AppendRow before BeginTable")
	}
	x.row++
	ref, err := excelize.CoordinatesToCellName(1, x.row)
	if err != nil {
		return err
	}
	return x.sw.SetRow(ref, cells)
}

func (x *XLSX) Commit() error {
	if x.sw != nil {
		if err := x.sw.Flush(); err != nil {
			x.f.Close()
			return err
		}
		x.sw = nil
	}

	// SaveAs validates the target extension, so write the workbook through
	// the temp file handle and rename it over the final path.
	tmp, err := os.CreateTemp(filepath.Dir(x.path), ".crosstab-*.xlsx")
	if err != nil {
		x.f.Close()
		return err
	}
	if err := x.f.Write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		x.f.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		x.f.Close()
		return err
	}
	if err := x.f.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), x.path); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return nil
}

func (x *XLSX) Discard() error {
	return x.f.Close()
}
