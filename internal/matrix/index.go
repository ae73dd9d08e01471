package matrix

import (
	"fmt"
	"io"
	"sort"
)

// Pair is one deduplicated association between a row label and a column label.
type Pair struct {
	Row string
	Col string
}

// Index is the deduplicated form of the input: the pair set plus the sorted
// label universes projected from it. Built once, read-only afterwards.
type Index struct {
	Pairs     map[Pair]struct{}
	RowLabels []string
	ColLabels []string

	SourceRecords int64 // records read from the source
	Dropped       int64 // records excluded for a missing field
}

// BuildIndex drains src into an Index: normalizes both fields, drops records
// with a missing field, deduplicates the rest. The label universes are
// projections of the surviving pairs, so a label whose every record was
// dropped does not appear. Returns ErrEmptyInput when no valid pair remains.
func BuildIndex(src RecordSource) (*Index, error) {
	idx := &Index{Pairs: make(map[Pair]struct{})}

	for {
		rec, err := src.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading record %d: %w", idx.SourceRecords+1, err)
		}
		idx.SourceRecords++

		row, ok := Canonical(rec.Row)
		if !ok {
			idx.Dropped++
			continue
		}
		col, ok := Canonical(rec.Col)
		if !ok {
			idx.Dropped++
			continue
		}
		idx.Pairs[Pair{Row: row, Col: col}] = struct{}{}
	}

	if len(idx.Pairs) == 0 {
		return nil, ErrEmptyInput
	}

	rowSeen := make(map[string]struct{})
	colSeen := make(map[string]struct{})
	for p := range idx.Pairs {
		if _, ok := rowSeen[p.Row]; !ok {
			rowSeen[p.Row] = struct{}{}
			idx.RowLabels = append(idx.RowLabels, p.Row)
		}
		if _, ok := colSeen[p.Col]; !ok {
			colSeen[p.Col] = struct{}{}
			idx.ColLabels = append(idx.ColLabels, p.Col)
		}
	}
	sort.Strings(idx.RowLabels)
	sort.Strings(idx.ColLabels)

	return idx, nil
}

// Has reports whether the pair (row, col) is present.
func (idx *Index) Has(row, col string) bool {
	_, ok := idx.Pairs[Pair{Row: row, Col: col}]
	return ok
}
