// clean.go
package processor

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"AeroDashboard/src/utils"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// NumericColumns are the traffic metrics coerced to numbers during
// cleaning. Values that fail to parse become 0, no row is dropped.
var NumericColumns = []string{
	"Passengers_In", "Freight_In", "Mail_In",
	"Passengers_Out", "Freight_Out", "Mail_Out",
	"Passengers_Total", "Freight_Total", "Mail_Total",
}

// RequiredColumns is the canonical column set every later stage
// depends on, checked after name normalization.
var RequiredColumns = append([]string{
	"AustralianPort", "ForeignPort", "Country", "Year",
}, NumericColumns...)

// SchemaError reports an input table whose shape cannot feed the
// pipeline: required columns are missing or the Year column does not
// hold integers.
type SchemaError struct {
	Missing []string
	Reason  string
}

func (e *SchemaError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("input table is missing required columns: %s", strings.Join(e.Missing, ", "))
	}
	return e.Reason
}

// CleanColumns normalizes column names, verifies the required set and
// coerces the numeric traffic columns.
func CleanColumns(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	if df.Error() != nil {
		return df, df.Error()
	}

	// 1. Normalize column names: drop the unit suffix, collapse the
	// doubled separator it leaves behind, trim spaces.
	names := df.Names()
	cleaned := make([]string, len(names))
	for i, n := range names {
		cleaned[i] = CleanColumnName(n)
	}
	if err := df.SetNames(cleaned...); err != nil {
		return df, fmt.Errorf("renaming columns: %w", err)
	}

	// 2. Verify the required columns are all present.
	var missing []string
	for _, col := range RequiredColumns {
		if !utils.HasColumn(df, col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return df, &SchemaError{Missing: missing}
	}

	// 3. Coerce the nine numeric columns. Anything unparseable, NaN
	// or infinite becomes 0 so that every value is a finite number.
	for _, col := range NumericColumns {
		records := df.Col(col).Records()
		values := make([]float64, len(records))
		for i, rec := range records {
			v, err := strconv.ParseFloat(strings.TrimSpace(rec), 64)
			if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
				v = 0
			}
			values[i] = v
		}
		df = df.Mutate(series.New(values, series.Float, col))
		if df.Error() != nil {
			return df, fmt.Errorf("coercing column %s: %w", col, df.Error())
		}
	}

	// 4. Year is the grouping key for every trend aggregate, so a
	// non-integer value there invalidates the whole report.
	records := df.Col("Year").Records()
	years := make([]int, len(records))
	for i, rec := range records {
		y, err := strconv.Atoi(strings.TrimSpace(rec))
		if err != nil {
			return df, &SchemaError{Reason: fmt.Sprintf("row %d: Year %q is not an integer", i+1, rec)}
		}
		years[i] = y
	}
	df = df.Mutate(series.New(years, series.Int, "Year"))
	if df.Error() != nil {
		return df, fmt.Errorf("coercing column Year: %w", df.Error())
	}

	return df, nil
}

// CleanColumnName strips the "_(tonnes)" unit suffix, collapses "__"
// into "_" and trims surrounding spaces.
func CleanColumnName(name string) string {
	name = strings.ReplaceAll(name, "_(tonnes)", "")
	name = strings.ReplaceAll(name, "__", "_")
	return strings.TrimSpace(name)
}
