package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"crosstab/internal/matrix"
	"crosstab/internal/sink"
	"crosstab/internal/source"
)

var (
	buildRows   string
	buildCols   string
	buildOutput string
	buildSheet  string
	buildTable  string
	buildEvery  int
	buildQuiet  bool
	buildJSON   bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the matrix report and write it to an output file",
	Long:  "Reads (row, column) association records from the input, deduplicates them, and writes a Summary + Matrix report. The output format follows the --output extension: .xlsx for a two-sheet workbook, .csv for a -summary.csv/-matrix.csv file pair.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if buildOutput == "" {
			return fmt.Errorf("--output is required")
		}

		path, err := DiscoverInput()
		if err != nil {
			return err
		}
		opts := source.Options{Sheet: buildSheet, Table: buildTable}
		rowField, colField, err := resolveFields(path, &opts, buildRows, buildCols)
		if err != nil {
			return err
		}

		src, err := source.Open(path, opts)
		if err != nil {
			return err
		}

		start := time.Now()
		if !buildQuiet {
			fmt.Printf("[build] indexing %s (%s x %s)\n", path, rowField, colField)
		}

		idx, err := matrix.BuildIndex(src)
		src.Close()
		if err != nil {
			return err
		}
		st := matrix.ComputeStats(idx)

		if !buildQuiet {
			fmt.Printf("[build] %s pairs from %s records (%s dropped), matrix %s x %s\n",
				humanize.Comma(st.Pairs), humanize.Comma(st.SourceRecords), humanize.Comma(st.Dropped),
				humanize.Comma(int64(st.RowCount)), humanize.Comma(int64(st.ColCount)))
		}

		out, err := sink.New(buildOutput)
		if err != nil {
			return err
		}

		wopts := matrix.WriteOptions{
			RowField:      rowField,
			ColField:      colField,
			GeneratedAt:   start,
			ProgressEvery: buildEvery,
		}
		if !buildQuiet && !buildJSON && buildEvery > 0 {
			wopts.Progress = func(done, total int) {
				fmt.Printf("[build] matrix rows %d/%d\n", done, total)
			}
		}
		if buildEvery <= 0 {
			wopts.Progress = nil
		}

		if err := matrix.WriteReport(idx, st, out, wopts); err != nil {
			out.Discard()
			return err
		}
		if err := out.Commit(); err != nil {
			return err
		}

		if !buildQuiet {
			fmt.Printf("[build] wrote %s in %s\n", buildOutput, time.Since(start).Round(time.Millisecond))
		}
		if buildJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(st)
		}
		return nil
	},
}

func init() {
	buildCmd.Flags().StringVar(&buildRows, "rows", "1", "Row-entity field: name or 1-based index")
	buildCmd.Flags().StringVar(&buildCols, "cols", "2", "Column-entity field: name or 1-based index")
	buildCmd.Flags().StringVar(&buildOutput, "output", "", "Output file (.xlsx or .csv)")
	buildCmd.Flags().StringVar(&buildSheet, "sheet", "", "Sheet to read from an .xlsx input (default: first sheet)")
	buildCmd.Flags().StringVar(&buildTable, "from", "", "Table to read from a SQLite input")
	buildCmd.Flags().IntVar(&buildEvery, "progress-every", 100, "Print progress every N matrix rows (0 disables)")
	buildCmd.Flags().BoolVar(&buildQuiet, "quiet", false, "Suppress non-essential output")
	buildCmd.Flags().BoolVar(&buildJSON, "json", false, "Print the matrix statistics as JSON after writing")
	rootCmd.AddCommand(buildCmd)
}
