package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"crosstab/internal/source"
)

var inputPath string

var rootCmd = &cobra.Command{
	Use:   "crosstab",
	Short: "Build presence matrices from two-column association data",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&inputPath, "input", "", "Input file (.csv, .tsv, .xlsx, .db, .sqlite, .sqlite3)")
}

// DiscoverInput finds the input path using priority: flag > CROSSTAB_INPUT env
func DiscoverInput() (string, error) {
	// 1. CLI flag
	if inputPath != "" {
		if _, err := os.Stat(inputPath); err != nil {
			return "", fmt.Errorf("input not found at --input path: %s", inputPath)
		}
		return inputPath, nil
	}

	// 2. Environment variable
	if envPath := os.Getenv("CROSSTAB_INPUT"); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
		return "", fmt.Errorf("input not found at CROSSTAB_INPUT path: %s", envPath)
	}

	return "", fmt.Errorf("no input given (use --input or set CROSSTAB_INPUT)")
}

// resolveFields validates the two field selectors against the input's fields
// and returns their display names. Selectors accept a field name, a unique
// case-insensitive name, or a 1-based column index. The raw selectors are
// carried into opts for the source to resolve: a display name cannot address
// a column whose header name is duplicated, while an index selector can.
func resolveFields(path string, opts *source.Options, rowSel, colSel string) (string, string, error) {
	fields, err := source.Fields(path, *opts)
	if err != nil {
		return "", "", err
	}
	ri, err := source.ResolveField(fields, rowSel)
	if err != nil {
		return "", "", fmt.Errorf("--rows: %w", err)
	}
	ci, err := source.ResolveField(fields, colSel)
	if err != nil {
		return "", "", fmt.Errorf("--cols: %w", err)
	}
	opts.RowField, opts.ColField = rowSel, colSel
	return fields[ri], fields[ci], nil
}
