package matrix

import "sort"

// TopN is how many entries each ranking keeps.
const TopN = 10

// LabelCount is one ranking entry: a label and its distinct partner count.
type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Stats summarizes an Index. All counts describe the deduplicated pair set,
// not the raw input.
type Stats struct {
	SourceRecords int64 `json:"source_records"`
	Dropped       int64 `json:"dropped"`

	Pairs      int64 `json:"pairs"`
	RowCount   int   `json:"row_count"`
	ColCount   int   `json:"col_count"`
	TotalCells int64 `json:"total_cells"`
	TrueCells  int64 `json:"true_cells"`
	FalseCells int64 `json:"false_cells"`

	FillPercent float64 `json:"fill_percent"`
	MeanPerRow  float64 `json:"mean_per_row"`
	MeanPerCol  float64 `json:"mean_per_col"`

	RowDegrees map[string]int `json:"-"`
	ColDegrees map[string]int `json:"-"`

	TopRows []LabelCount `json:"top_rows"`
	TopCols []LabelCount `json:"top_cols"`
}

// ComputeStats derives degree counts, rankings, and scalar aggregates from
// idx. Degrees count distinct partners: the pair set is already deduplicated,
// so each partner contributes once. idx is not modified.
func ComputeStats(idx *Index) *Stats {
	rowDeg := make(map[string]int, len(idx.RowLabels))
	colDeg := make(map[string]int, len(idx.ColLabels))
	for p := range idx.Pairs {
		rowDeg[p.Row]++
		colDeg[p.Col]++
	}

	pairs := int64(len(idx.Pairs))
	rows := len(idx.RowLabels)
	cols := len(idx.ColLabels)
	total := int64(rows) * int64(cols)

	st := &Stats{
		SourceRecords: idx.SourceRecords,
		Dropped:       idx.Dropped,
		Pairs:         pairs,
		RowCount:      rows,
		ColCount:      cols,
		TotalCells:    total,
		TrueCells:     pairs,
		FalseCells:    total - pairs,
		RowDegrees:    rowDeg,
		ColDegrees:    colDeg,
		TopRows:       topCounts(rowDeg),
		TopCols:       topCounts(colDeg),
	}
	if total > 0 {
		st.FillPercent = float64(pairs) / float64(total) * 100
	}
	if rows > 0 {
		st.MeanPerRow = float64(pairs) / float64(rows)
	}
	if cols > 0 {
		st.MeanPerCol = float64(pairs) / float64(cols)
	}
	return st
}

// topCounts ranks degrees descending, ties broken by label ascending, and
// truncates to TopN.
func topCounts(degrees map[string]int) []LabelCount {
	ranked := make([]LabelCount, 0, len(degrees))
	for label, count := range degrees {
		ranked = append(ranked, LabelCount{Label: label, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count == ranked[j].Count {
			return ranked[i].Label < ranked[j].Label
		}
		return ranked[i].Count > ranked[j].Count
	})
	if len(ranked) > TopN {
		ranked = ranked[:TopN]
	}
	return ranked
}
