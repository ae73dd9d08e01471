package cmd

import (
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"

	"crosstab/internal/matrix"
)

func readCSVFile(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	// Summary rows vary in width; the reader must not infer a fixed count.
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	return rows
}

func TestBuildCommand_CSVToCSV(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "orders.csv")
	content := "customer,item\nC1,I1\nC1,I2\nC2,I1\nC1,I1\n"
	if err := os.WriteFile(input, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	output := filepath.Join(dir, "report.csv")

	rootCmd.SetArgs([]string{
		"build",
		"--input", input,
		"--rows", "customer",
		"--cols", "item",
		"--output", output,
		"--quiet",
	})
	if err := rootCmd.Execute(); err != nil {
		t.Fatal(err)
	}

	mat := readCSVFile(t, filepath.Join(dir, "report-matrix.csv"))
	want := [][]string{
		{"customer", "I1", "I2"},
		{"C1", "true", "true"},
		{"C2", "true", "false"},
	}
	if !reflect.DeepEqual(mat, want) {
		t.Errorf("matrix = %v, want %v", mat, want)
	}

	// 13 metric rows plus 2 ranking headers plus 10 ranking rows; the blank
	// spacer line is skipped by the reader.
	sum := readCSVFile(t, filepath.Join(dir, "report-summary.csv"))
	if len(sum) != 25 {
		t.Fatalf("summary rows = %d, want 25", len(sum))
	}
	if sum[0][0] != "Metric" || sum[0][1] != "Value" {
		t.Errorf("summary header = %v", sum[0])
	}
	if sum[13][0] != "TOP 10 CUSTOMER" || sum[13][3] != "TOP 10 ITEM" {
		t.Errorf("ranking headers = %v", sum[13])
	}
}

func TestBuildCommand_XLSXOutput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "orders.csv")
	content := "customer,item\nC1,I1\nC2,I2\n"
	if err := os.WriteFile(input, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	output := filepath.Join(dir, "report.xlsx")

	rootCmd.SetArgs([]string{
		"build",
		"--input", input,
		"--rows", "customer",
		"--cols", "item",
		"--output", output,
		"--quiet",
	})
	if err := rootCmd.Execute(); err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenFile(output)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if got, want := f.GetSheetList(), []string{"Summary", "Matrix"}; !reflect.DeepEqual(got, want) {
		t.Errorf("sheets = %v, want %v", got, want)
	}
	rows, err := f.GetRows("Matrix")
	if err != nil {
		t.Fatal(err)
	}
	want := [][]string{
		{"customer", "I1", "I2"},
		{"C1", "TRUE", "FALSE"},
		{"C2", "FALSE", "TRUE"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("matrix rows = %v, want %v", rows, want)
	}

	// Only the input and the workbook remain; no temp artifacts.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("directory has %d entries, want 2", len(entries))
	}
}

func TestBuildCommand_IndexSelectorsWithDuplicateHeaders(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "orders.csv")
	if err := os.WriteFile(input, []byte("id,x,id\nA,B,C\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	output := filepath.Join(dir, "report.csv")

	rootCmd.SetArgs([]string{
		"build",
		"--input", input,
		"--rows", "3",
		"--cols", "2",
		"--output", output,
		"--quiet",
	})
	if err := rootCmd.Execute(); err != nil {
		t.Fatal(err)
	}

	// Column 3 must be read even though its header name duplicates column 1's.
	mat := readCSVFile(t, filepath.Join(dir, "report-matrix.csv"))
	want := [][]string{
		{"id", "B"},
		{"C", "true"},
	}
	if !reflect.DeepEqual(mat, want) {
		t.Errorf("matrix = %v, want %v", mat, want)
	}
}

func TestBuildCommand_EmptyInputWritesNothing(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "orders.csv")
	if err := os.WriteFile(input, []byte("customer,item\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	output := filepath.Join(dir, "report.xlsx")

	rootCmd.SetArgs([]string{
		"build",
		"--input", input,
		"--rows", "customer",
		"--cols", "item",
		"--output", output,
		"--quiet",
	})
	err := rootCmd.Execute()
	if !errors.Is(err, matrix.ErrEmptyInput) {
		t.Fatalf("err = %v, want ErrEmptyInput", err)
	}
	if _, statErr := os.Stat(output); statErr == nil {
		t.Error("no artifact should exist after a failed run")
	}
}
