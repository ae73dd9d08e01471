// Package sink writes report tables to output files. Sinks buffer or stream
// into temporary artifacts and publish them in one step, so a failed run
// never leaves a partial report at the output path.
package sink

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Sink receives report tables row by row and publishes them atomically.
// Exactly one of Commit or Discard must be called; after either, the sink is
// spent.
type Sink interface {
	BeginTable(name string) error
	AppendRow(cells []any) error

	// Commit makes the report visible at its final path.
	Commit() error
	// Discard releases resources and removes any partial artifacts.
	Discard() error
}

// New creates a sink for path, dispatching on the file extension.
func New(path string) (Sink, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx":
		return NewXLSX(path), nil
	case ".csv":
		return NewCSV(path), nil
	default:
		return nil, fmt.Errorf("unsupported output format %q (want .xlsx or .csv)", ext)
	}
}
