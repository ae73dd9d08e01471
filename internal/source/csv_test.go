package source

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"crosstab/internal/matrix"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestOpenCSV_ByName(t *testing.T) {
	path := writeTempFile(t, "orders.csv", "customer,item,qty\nC1,I1,5\nC2,I2,1\n")

	src, err := OpenCSV(path, Options{RowField: "customer", ColField: "item"})
	if err != nil {
		t.Fatal(err)
	}
	recs := drain(t, src)

	want := []matrix.Record{
		{Row: "C1", Col: "I1"},
		{Row: "C2", Col: "I2"},
	}
	if !reflect.DeepEqual(recs, want) {
		t.Errorf("records = %v, want %v", recs, want)
	}
}

func TestOpenCSV_ByIndex(t *testing.T) {
	path := writeTempFile(t, "orders.csv", "a,b,c\nv1,v2,v3\n")

	src, err := OpenCSV(path, Options{RowField: "3", ColField: "1"})
	if err != nil {
		t.Fatal(err)
	}
	recs := drain(t, src)

	want := []matrix.Record{{Row: "v3", Col: "v1"}}
	if !reflect.DeepEqual(recs, want) {
		t.Errorf("records = %v, want %v", recs, want)
	}
}

func TestOpenCSV_DuplicateHeaderByIndex(t *testing.T) {
	path := writeTempFile(t, "orders.csv", "id,x,id\nA,B,C\n")

	src, err := OpenCSV(path, Options{RowField: "3", ColField: "2"})
	if err != nil {
		t.Fatal(err)
	}
	recs := drain(t, src)

	// Index selectors must reach columns whose header names are duplicated.
	want := []matrix.Record{{Row: "C", Col: "B"}}
	if !reflect.DeepEqual(recs, want) {
		t.Errorf("records = %v, want %v", recs, want)
	}
}

func TestOpenCSV_RaggedRowReadsAsMissing(t *testing.T) {
	path := writeTempFile(t, "orders.csv", "customer,item\nC1,I1\nC2\n")

	src, err := OpenCSV(path, Options{RowField: "customer", ColField: "item"})
	if err != nil {
		t.Fatal(err)
	}
	recs := drain(t, src)

	if len(recs) != 2 {
		t.Fatalf("records = %d, want 2", len(recs))
	}
	if recs[1].Row != "C2" || recs[1].Col != nil {
		t.Errorf("short row = %v, want row C2 with nil col", recs[1])
	}
}

func TestOpenCSV_TSVDelimiter(t *testing.T) {
	path := writeTempFile(t, "orders.tsv", "customer\titem\nC1\tI1\n")

	src, err := OpenCSV(path, Options{RowField: "customer", ColField: "item"})
	if err != nil {
		t.Fatal(err)
	}
	recs := drain(t, src)

	want := []matrix.Record{{Row: "C1", Col: "I1"}}
	if !reflect.DeepEqual(recs, want) {
		t.Errorf("records = %v, want %v", recs, want)
	}
}

func TestOpenCSV_HeaderOnlyGivesEmptyInput(t *testing.T) {
	path := writeTempFile(t, "orders.csv", "customer,item\n")

	src, err := OpenCSV(path, Options{RowField: "customer", ColField: "item"})
	if err != nil {
		t.Fatal(err)
	}
	_, err = matrix.BuildIndex(src)
	src.Close()
	if !errors.Is(err, matrix.ErrEmptyInput) {
		t.Fatalf("err = %v, want ErrEmptyInput", err)
	}
}

func TestOpenCSV_UnknownField(t *testing.T) {
	path := writeTempFile(t, "orders.csv", "customer,item\n")

	if _, err := OpenCSV(path, Options{RowField: "nope", ColField: "item"}); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestCSVFields(t *testing.T) {
	path := writeTempFile(t, "orders.csv", "customer,item,qty\nC1,I1,5\n")

	fields, err := CSVFields(path)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"customer", "item", "qty"}
	if !reflect.DeepEqual(fields, want) {
		t.Errorf("fields = %v, want %v", fields, want)
	}
}
