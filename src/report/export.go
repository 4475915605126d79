// export.go
package report

import (
	"github.com/xuri/excelize/v2"

	"AeroDashboard/src/processor"
)

// ExportXLSX writes the aggregate tables into one workbook, a sheet
// per table, so the numbers behind the dashboard can be reworked in a
// spreadsheet.
func ExportXLSX(agg *processor.Aggregates, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	// 1. Yearly traffic.
	if err := f.SetSheetName("Sheet1", "Anual"); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	writeHeader(f, "Anual", []string{"Year", "Passengers_Total", "Freight_Total", "Mail_Total"})
	for i, y := range agg.Yearly {
		writeRow(f, "Anual", i+2, []interface{}{y.Year, y.Passengers, y.Freight, y.Mail})
	}

	// 2. The three rankings, stored ascending like the charts show them.
	rankings := []struct {
		sheet   string
		keyName string
		entries []processor.RankEntry
	}{
		{"Puertos", "AustralianPort", agg.TopPorts},
		{"Paises", "Country", agg.TopCountries},
		{"Rutas", "Route", agg.TopRoutes},
	}
	for _, r := range rankings {
		if _, err := f.NewSheet(r.sheet); err != nil {
			return &WriteError{Path: path, Err: err}
		}
		writeHeader(f, r.sheet, []string{r.keyName, "Passengers_Total"})
		for i, e := range r.entries {
			writeRow(f, r.sheet, i+2, []interface{}{e.Name, e.Passengers})
		}
	}

	// 3. Map table, unmapped countries included with an empty code.
	if _, err := f.NewSheet("Mapa"); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	writeHeader(f, "Mapa", []string{"Country", "ISO3", "Passengers_Total"})
	for i, c := range agg.Countries {
		writeRow(f, "Mapa", i+2, []interface{}{c.Country, c.ISO, c.Passengers})
	}

	if err := f.SaveAs(path); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

func writeHeader(f *excelize.File, sheet string, names []string) {
	for i, name := range names {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, name)
	}
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) {
	for i, val := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		f.SetCellValue(sheet, cell, val)
	}
}
