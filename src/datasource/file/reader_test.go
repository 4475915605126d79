package file

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/tealeg/xlsx"
)

const sampleCSV = `AustralianPort,ForeignPort,Country,Passengers_Total,Year
Sydney,Auckland,New Zealand,1000,2019
Melbourne,Singapore,Singapore,2000,2019
`

func writeSampleCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "city_pairs.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadCSV(t *testing.T) {
	df, err := ReadCSV(writeSampleCSV(t))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}

	want := []string{"AustralianPort", "ForeignPort", "Country", "Passengers_Total", "Year"}
	if !reflect.DeepEqual(df.Names(), want) {
		t.Errorf("Names = %v, want %v", df.Names(), want)
	}
	if df.Nrow() != 2 {
		t.Errorf("Nrow = %d, want 2", df.Nrow())
	}
}

func TestReadCSVNotFound(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.csv")
	_, err := ReadCSV(missing)

	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("err = %v, want *NotFoundError", err)
	}
	if notFound.Path != missing {
		t.Errorf("Path = %q, want %q", notFound.Path, missing)
	}
}

func TestReadCSVMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	if err := os.WriteFile(path, []byte("a,b\n1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadCSV(path); err == nil {
		t.Fatal("expected an error for a ragged csv")
	}
}

func TestReadTableDispatch(t *testing.T) {
	df, err := ReadTable(writeSampleCSV(t), "")
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	if df.Nrow() != 2 {
		t.Errorf("Nrow = %d, want 2", df.Nrow())
	}

	var notFound *NotFoundError
	if _, err := ReadTable(filepath.Join(t.TempDir(), "gone.xlsx"), ""); !errors.As(err, &notFound) {
		t.Errorf("missing xlsx should yield *NotFoundError, got %v", err)
	}
}

func writeSampleXLSX(t *testing.T, sheetName string) string {
	t.Helper()

	wb := xlsx.NewFile()
	sheet, err := wb.AddSheet(sheetName)
	if err != nil {
		t.Fatal(err)
	}
	for _, record := range [][]string{
		{"AustralianPort", "ForeignPort", "Passengers_Total"},
		{"Sydney", "Auckland", "1000"},
		{"Brisbane", "Tokyo"}, // short row, pads with an empty cell
	} {
		row := sheet.AddRow()
		for _, value := range record {
			row.AddCell().Value = value
		}
	}

	path := filepath.Join(t.TempDir(), "traffic.xlsx")
	if err := wb.Save(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadXLSX(t *testing.T) {
	path := writeSampleXLSX(t, "Datos")

	df, err := ReadXLSX(path, "Datos")
	if err != nil {
		t.Fatalf("ReadXLSX: %v", err)
	}

	want := []string{"AustralianPort", "ForeignPort", "Passengers_Total"}
	if !reflect.DeepEqual(df.Names(), want) {
		t.Errorf("Names = %v, want %v", df.Names(), want)
	}
	if df.Nrow() != 2 {
		t.Errorf("Nrow = %d, want 2", df.Nrow())
	}

	ports := df.Col("AustralianPort").Records()
	if !reflect.DeepEqual(ports, []string{"Sydney", "Brisbane"}) {
		t.Errorf("AustralianPort = %v", ports)
	}
	padded := df.Col("Passengers_Total").Records()
	if padded[1] != "" {
		t.Errorf("short row should pad with an empty cell, got %q", padded[1])
	}
}

func TestReadXLSXDefaultSheet(t *testing.T) {
	path := writeSampleXLSX(t, "Whatever")
	df, err := ReadXLSX(path, "")
	if err != nil {
		t.Fatalf("ReadXLSX: %v", err)
	}
	if df.Nrow() != 2 {
		t.Errorf("Nrow = %d, want 2", df.Nrow())
	}
}

func TestReadXLSXMissingSheet(t *testing.T) {
	path := writeSampleXLSX(t, "Datos")
	if _, err := ReadXLSX(path, "NoSuchSheet"); err == nil {
		t.Fatal("expected an error for a missing worksheet")
	}
}
