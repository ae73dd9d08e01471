package matrix

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// SummaryRows renders st into the rows of the summary table: a metric/value
// block, a blank spacer, then the two top-10 rankings side by side (row-side
// ranking in columns 1-2, column-side ranking in columns 4-5, padded to equal
// height). Every number comes from st unchanged; this is pure formatting.
func SummaryRows(st *Stats, rowField, colField string, generatedAt time.Time) [][]any {
	rows := [][]any{
		{"Metric", "Value"},
		{"Generated at", generatedAt.Format("2006-01-02 15:04")},
		{"Source records", humanize.Comma(st.SourceRecords)},
		{"Dropped records", humanize.Comma(st.Dropped)},
		{fmt.Sprintf("Unique %s values", rowField), humanize.Comma(int64(st.RowCount))},
		{fmt.Sprintf("Unique %s values", colField), humanize.Comma(int64(st.ColCount))},
		{"Matrix size", fmt.Sprintf("%s x %s", humanize.Comma(int64(st.RowCount)), humanize.Comma(int64(st.ColCount)))},
		{"Total cells", humanize.Comma(st.TotalCells)},
		{"TRUE values", humanize.Comma(st.TrueCells)},
		{"FALSE values", humanize.Comma(st.FalseCells)},
		{"Fill percentage", fmt.Sprintf("%.2f%%", st.FillPercent)},
		{fmt.Sprintf("Avg %s per %s", colField, rowField), fmt.Sprintf("%.1f", st.MeanPerRow)},
		{fmt.Sprintf("Avg %s per %s", rowField, colField), fmt.Sprintf("%.1f", st.MeanPerCol)},
	}

	rows = append(rows, []any{})
	rows = append(rows, []any{
		fmt.Sprintf("TOP %d %s", TopN, strings.ToUpper(rowField)), "", "",
		fmt.Sprintf("TOP %d %s", TopN, strings.ToUpper(colField)),
	})
	rows = append(rows, []any{
		rowField, fmt.Sprintf("%s count", colField), "",
		colField, fmt.Sprintf("%s count", rowField),
	})

	for i := 0; i < TopN; i++ {
		row := make([]any, 0, 5)
		if i < len(st.TopRows) {
			row = append(row, st.TopRows[i].Label, st.TopRows[i].Count, "")
		} else {
			row = append(row, "", "", "")
		}
		if i < len(st.TopCols) {
			row = append(row, st.TopCols[i].Label, st.TopCols[i].Count)
		} else {
			row = append(row, "", "")
		}
		rows = append(rows, row)
	}

	return rows
}
