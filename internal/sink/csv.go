package sink

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// CSV writes each table to its own file next to the requested path: a base
// of report.csv becomes report-summary.csv and report-matrix.csv. Tables
// stream into hidden temp files; Commit renames them all into place.
type CSV struct {
	base  string
	files []*csvFile
	cur   *csvFile
}

type csvFile struct {
	tmp   *os.File
	w     *csv.Writer
	final string
}

// NewCSV creates a CSV sink that will publish next to base on Commit.
func NewCSV(base string) *CSV {
	return &CSV{base: base}
}

func (c *CSV) BeginTable(name string) error {
	dir := filepath.Dir(c.base)
	tmp, err := os.CreateTemp(dir, ".crosstab-*.csv")
	if err != nil {
		return err
	}

	stem := strings.TrimSuffix(c.base, filepath.Ext(c.base))
	c.cur = &csvFile{
		tmp:   tmp,
		w:     csv.NewWriter(tmp),
		final: fmt.Sprintf("%s-%s.csv", stem, strings.ToLower(name)),
	}
	c.files = append(c.files, c.cur)
	return nil
}

func (c *CSV) AppendRow(cells []any) error {
	if c.cur == nil {
		return errors.New("csv: AppendRow before BeginTable")
	}
	record := make([]string, len(cells))
	for i, cell := range cells {
		record[i] = formatCell(cell)
	}
	return c.cur.w.Write(record)
}

func (c *CSV) Commit() error {
	// Flush and close everything before the first rename, so either all
	// files are complete or none is published.
	for _, f := range c.files {
		f.w.Flush()
		if err := f.w.Error(); err != nil {
			c.removeTemps()
			return err
		}
		if err := f.tmp.Close(); err != nil {
			c.removeTemps()
			return err
		}
	}
	for i, f := range c.files {
		if err := os.Rename(f.tmp.Name(), f.final); err != nil {
			for _, done := range c.files[:i] {
				os.Remove(done.final)
			}
			c.removeTemps()
			return err
		}
	}
	return nil
}

func (c *CSV) Discard() error {
	for _, f := range c.files {
		f.tmp.Close()
	}
	c.removeTemps()
	return nil
}

func (c *CSV) removeTemps() {
	for _, f := range c.files {
		os.Remove(f.tmp.Name())
	}
}

func formatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}
