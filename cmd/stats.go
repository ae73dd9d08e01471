package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"crosstab/internal/matrix"
	"crosstab/internal/source"
)

var (
	statsJSON  bool
	statsRows  string
	statsCols  string
	statsSheet string
	statsTable string
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Index the input and print matrix statistics without writing a report",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := DiscoverInput()
		if err != nil {
			return err
		}
		opts := source.Options{Sheet: statsSheet, Table: statsTable}
		rowField, colField, err := resolveFields(path, &opts, statsRows, statsCols)
		if err != nil {
			return err
		}

		src, err := source.Open(path, opts)
		if err != nil {
			return err
		}
		idx, err := matrix.BuildIndex(src)
		src.Close()
		if err != nil {
			return err
		}
		st := matrix.ComputeStats(idx)

		if statsJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(st)
		}

		printStats(st, rowField, colField)
		return nil
	},
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Output as JSON")
	statsCmd.Flags().StringVar(&statsRows, "rows", "1", "Row-entity field: name or 1-based index")
	statsCmd.Flags().StringVar(&statsCols, "cols", "2", "Column-entity field: name or 1-based index")
	statsCmd.Flags().StringVar(&statsSheet, "sheet", "", "Sheet to read from an .xlsx input (default: first sheet)")
	statsCmd.Flags().StringVar(&statsTable, "from", "", "Table to read from a SQLite input")
	rootCmd.AddCommand(statsCmd)
}

func printStats(st *matrix.Stats, rowField, colField string) {
	fmt.Println("\n  MATRIX")
	fmt.Println("  ────────────────────────────────────────")
	fmt.Printf("  Source records: %s (%s dropped)\n",
		humanize.Comma(st.SourceRecords), humanize.Comma(st.Dropped))
	fmt.Printf("  Unique %s: %s  Unique %s: %s\n",
		rowField, humanize.Comma(int64(st.RowCount)), colField, humanize.Comma(int64(st.ColCount)))
	fmt.Printf("  Cells: %s total, %s TRUE, %s FALSE (%.2f%% filled)\n",
		humanize.Comma(st.TotalCells), humanize.Comma(st.TrueCells),
		humanize.Comma(st.FalseCells), st.FillPercent)
	fmt.Printf("  Avg %s per %s: %.1f  Avg %s per %s: %.1f\n",
		colField, rowField, st.MeanPerRow, rowField, colField, st.MeanPerCol)

	printTop(fmt.Sprintf("TOP %s (by %s count)", strings.ToUpper(rowField), colField), st.TopRows)
	printTop(fmt.Sprintf("TOP %s (by %s count)", strings.ToUpper(colField), rowField), st.TopCols)
	fmt.Println()
}

func printTop(title string, ranked []matrix.LabelCount) {
	if len(ranked) == 0 {
		return
	}
	fmt.Printf("\n  %s\n", title)
	fmt.Println("  ────────────────────────────────────────")
	for _, lc := range ranked {
		fmt.Printf("  %6d  %s\n", lc.Count, truncLabel(lc.Label, 50))
	}
}

func truncLabel(s string, max int) string {
	if len(s) <= max {
		return s
	}
	// Find a safe UTF-8 boundary
	truncated := s[:max]
	for len(truncated) > 0 && truncated[len(truncated)-1]>>6 == 2 {
		truncated = truncated[:len(truncated)-1]
	}
	return truncated + "..."
}
