package matrix

import (
	"errors"
	"fmt"
)

// ErrEmptyInput means cleaning left no valid pair to index.
var ErrEmptyInput = errors.New("matrix: no valid pairs after cleaning")

// ErrDegenerateAxis means one label universe is empty while the other is not.
// BuildIndex cannot produce this state; it guards hand-assembled indexes.
var ErrDegenerateAxis = errors.New("matrix: one axis has no labels")

// SinkError wraps a sink failure with the table and row where it happened.
// Row is 1-based; 0 means the failure occurred before any row was written.
type SinkError struct {
	Table string
	Row   int64
	Err   error
}

func (e *SinkError) Error() string {
	return fmt.Sprintf("matrix: writing %s row %d: %v", e.Table, e.Row, e.Err)
}

func (e *SinkError) Unwrap() error { return e.Err }
