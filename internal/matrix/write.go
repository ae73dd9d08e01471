package matrix

import "time"

// Sink receives the report tables row by row. BeginTable starts a named
// table; AppendRow adds one row to it. Implementations decide how tables map
// onto their container (worksheet, file) and are free to retain nothing:
// rows arrive in final order and cell slices are only valid during the call.
type Sink interface {
	BeginTable(name string) error
	AppendRow(cells []any) error
}

// Table names handed to the sink.
const (
	TableSummary = "Summary"
	TableMatrix  = "Matrix"
)

// WriteOptions control report emission.
type WriteOptions struct {
	RowField    string    // display name of the row-entity field
	ColField    string    // display name of the column-entity field
	GeneratedAt time.Time // summary timestamp; zero means time.Now()

	// Progress, when set, is called after every ProgressEvery matrix rows and
	// once after the last row. ProgressEvery defaults to 100.
	Progress      func(done, total int)
	ProgressEvery int
}

// WriteReport emits the summary table and then the matrix table into sink.
// The first sink failure aborts emission and is returned as a *SinkError;
// nothing is retried. The caller owns the sink lifecycle and decides whether
// partial output is published or discarded.
func WriteReport(idx *Index, st *Stats, sink Sink, opts WriteOptions) error {
	if len(idx.RowLabels) == 0 || len(idx.ColLabels) == 0 {
		if len(idx.RowLabels) != len(idx.ColLabels) {
			return ErrDegenerateAxis
		}
		return ErrEmptyInput
	}

	generatedAt := opts.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = time.Now()
	}
	every := opts.ProgressEvery
	if every <= 0 {
		every = 100
	}

	if err := sink.BeginTable(TableSummary); err != nil {
		return &SinkError{Table: TableSummary, Err: err}
	}
	var written int64
	for _, row := range SummaryRows(st, opts.RowField, opts.ColField, generatedAt) {
		if err := sink.AppendRow(row); err != nil {
			return &SinkError{Table: TableSummary, Row: written + 1, Err: err}
		}
		written++
	}

	if err := sink.BeginTable(TableMatrix); err != nil {
		return &SinkError{Table: TableMatrix, Err: err}
	}
	if err := sink.AppendRow(Header(idx, opts.RowField)); err != nil {
		return &SinkError{Table: TableMatrix, Row: 1, Err: err}
	}

	total := len(idx.RowLabels)
	done := 0
	cells := make([]any, 0, len(idx.ColLabels)+1)
	for row := range Rows(idx) {
		cells = cells[:0]
		cells = append(cells, row.Label)
		for _, present := range row.Cells {
			cells = append(cells, present)
		}
		if err := sink.AppendRow(cells); err != nil {
			return &SinkError{Table: TableMatrix, Row: int64(done) + 2, Err: err}
		}
		done++
		if opts.Progress != nil && (done%every == 0 || done == total) {
			opts.Progress(done, total)
		}
	}

	return nil
}
