package matrix

import "iter"

// MatrixRow is one emitted matrix row: the row label and one presence cell
// per column label, in ColLabels order.
type MatrixRow struct {
	Label string
	Cells []bool
}

// Header returns the matrix header row: the row-entity field name followed
// by every column label in sorted order.
func Header(idx *Index, rowField string) []any {
	header := make([]any, 0, len(idx.ColLabels)+1)
	header = append(header, rowField)
	for _, col := range idx.ColLabels {
		header = append(header, col)
	}
	return header
}

// Rows yields one MatrixRow per row label in RowLabels order. Each cell is a
// membership test against the pair set; the dense matrix is never built, so
// working memory stays at one row regardless of matrix size. The Cells slice
// is a single reused buffer: consumers that retain a row must copy it first.
func Rows(idx *Index) iter.Seq[MatrixRow] {
	return func(yield func(MatrixRow) bool) {
		cells := make([]bool, len(idx.ColLabels))
		for _, row := range idx.RowLabels {
			for j, col := range idx.ColLabels {
				cells[j] = idx.Has(row, col)
			}
			if !yield(MatrixRow{Label: row, Cells: cells}) {
				return
			}
		}
	}
}
