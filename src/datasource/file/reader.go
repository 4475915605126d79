// reader.go
package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/tealeg/xlsx"
)

// NotFoundError marks a missing input file so the caller can show the
// path-specific remediation message instead of a generic failure.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("input file not found: %s", e.Path)
}

// ReadTable loads the traffic table at path into a DataFrame. XLSX
// files go through the spreadsheet reader, anything else is parsed as
// CSV. sheetName only applies to XLSX inputs; empty means first sheet.
func ReadTable(path, sheetName string) (dataframe.DataFrame, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return ReadXLSX(path, sheetName)
	}
	return ReadCSV(path)
}

// ReadCSV parses a delimited text file with a header row.
func ReadCSV(path string) (dataframe.DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return dataframe.DataFrame{}, &NotFoundError{Path: path}
		}
		return dataframe.DataFrame{}, fmt.Errorf("opening csv file: %w", err)
	}
	defer f.Close()

	df := dataframe.ReadCSV(f)
	if df.Error() != nil {
		return dataframe.DataFrame{}, fmt.Errorf("parsing csv file %s: %w", path, df.Error())
	}
	return df, nil
}

// ReadXLSX loads one worksheet into a DataFrame.
func ReadXLSX(path, sheetName string) (dataframe.DataFrame, error) {
	// 1. Open the workbook with tealeg/xlsx.
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return dataframe.DataFrame{}, &NotFoundError{Path: path}
	}
	xlFile, err := xlsx.OpenFile(path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("opening xlsx file: %w", err)
	}

	// 2. Pick the worksheet.
	if len(xlFile.Sheets) == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("xlsx file %s has no worksheets", path)
	}
	sheet := xlFile.Sheets[0]
	if sheetName != "" {
		named, ok := xlFile.Sheet[sheetName]
		if !ok {
			return dataframe.DataFrame{}, fmt.Errorf("xlsx file %s has no worksheet %q", path, sheetName)
		}
		sheet = named
	}

	// 3. Convert to a Gota DataFrame.
	return convertSheetToDataFrame(sheet), nil
}

// convertSheetToDataFrame turns an xlsx.Sheet into a string-typed
// DataFrame. The first row is the header, every later stage coerces
// types itself.
func convertSheetToDataFrame(sheet *xlsx.Sheet) dataframe.DataFrame {
	if len(sheet.Rows) == 0 {
		return dataframe.New()
	}

	var headers []string
	for _, cell := range sheet.Rows[0].Cells {
		headers = append(headers, cell.Value)
	}

	columns := make([][]string, len(headers))
	for i := range columns {
		columns[i] = make([]string, 0, len(sheet.Rows)-1)
	}

	for _, row := range sheet.Rows[1:] {
		for i := range headers {
			// Short rows pad with empty cells so every column keeps
			// the same length.
			val := ""
			if i < len(row.Cells) {
				val = row.Cells[i].Value
			}
			columns[i] = append(columns[i], val)
		}
	}

	seriesList := make([]series.Series, len(headers))
	for i, colName := range headers {
		seriesList[i] = series.New(columns[i], series.String, colName)
	}

	return dataframe.New(seriesList...)
}
