package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"crosstab/internal/source"
)

var (
	columnsSheet string
	columnsTable string
)

var columnsCmd = &cobra.Command{
	Use:   "columns",
	Short: "List the selectable fields of an input file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := DiscoverInput()
		if err != nil {
			return err
		}

		// Without a table, a SQLite input can only be enumerated.
		if source.IsSQLite(path) && columnsTable == "" {
			tables, err := source.Tables(path)
			if err != nil {
				return err
			}
			if len(tables) == 0 {
				return fmt.Errorf("no tables in %s", path)
			}
			fmt.Printf("Tables in %s (pick one with --from):\n", path)
			for _, table := range tables {
				fmt.Printf("  %s\n", table)
			}
			return nil
		}

		fields, err := source.Fields(path, source.Options{Sheet: columnsSheet, Table: columnsTable})
		if err != nil {
			return err
		}
		if len(fields) == 0 {
			return fmt.Errorf("no fields in %s", path)
		}
		for i, field := range fields {
			fmt.Printf("  %2d  %s\n", i+1, field)
		}
		return nil
	},
}

func init() {
	columnsCmd.Flags().StringVar(&columnsSheet, "sheet", "", "Sheet to read from an .xlsx input (default: first sheet)")
	columnsCmd.Flags().StringVar(&columnsTable, "from", "", "Table to read from a SQLite input")
	rootCmd.AddCommand(columnsCmd)
}
