package processor

import (
	"errors"
	"reflect"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

func TestCleanColumnName(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Freight_In_(tonnes)", "Freight_In"},
		{"Mail_Out_(tonnes)", "Mail_Out"},
		{"Freight__Total_(tonnes)", "Freight_Total"},
		{"Passengers__Total ", "Passengers_Total"},
		{" AustralianPort", "AustralianPort"},
		{"Country", "Country"},
	}
	for _, c := range cases {
		if got := CleanColumnName(c.in); got != c.want {
			t.Errorf("CleanColumnName(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestCleanColumns(t *testing.T) {
	df := dataframe.LoadRecords([][]string{
		{"AustralianPort", "ForeignPort", "Country",
			"Passengers_In", "Freight_In_(tonnes)", "Mail_In_(tonnes)",
			"Passengers_Out", "Freight_Out_(tonnes)", "Mail_Out_(tonnes)",
			"Passengers__Total ", "Freight__Total_(tonnes)", "Mail__Total_(tonnes)", "Year"},
		{"Sydney", "Auckland", "New Zealand", "500", "10.5", "1", "500", "9.5", "1", "1000", "20", "2", "2019"},
		{"Melbourne", "Singapore", "Singapore", "abc", "", "0", "700", "5", "0", "700", "5", "0", "2019"},
	}, dataframe.DetectTypes(false), dataframe.DefaultType(series.String))

	cleaned, err := CleanColumns(df)
	if err != nil {
		t.Fatalf("CleanColumns: %v", err)
	}

	wantNames := []string{
		"AustralianPort", "ForeignPort", "Country",
		"Passengers_In", "Freight_In", "Mail_In",
		"Passengers_Out", "Freight_Out", "Mail_Out",
		"Passengers_Total", "Freight_Total", "Mail_Total", "Year"}
	if !reflect.DeepEqual(cleaned.Names(), wantNames) {
		t.Errorf("Names = %v, want %v", cleaned.Names(), wantNames)
	}

	// Unparseable and empty values become 0, valid ones keep their value.
	if got := cleaned.Col("Passengers_In").Float(); !reflect.DeepEqual(got, []float64{500, 0}) {
		t.Errorf("Passengers_In = %v, want [500 0]", got)
	}
	if got := cleaned.Col("Freight_In").Float(); !reflect.DeepEqual(got, []float64{10.5, 0}) {
		t.Errorf("Freight_In = %v, want [10.5 0]", got)
	}
	if got := cleaned.Col("Passengers_Total").Float(); !reflect.DeepEqual(got, []float64{1000, 700}) {
		t.Errorf("Passengers_Total = %v, want [1000 700]", got)
	}

	if typ := cleaned.Col("Year").Type(); typ != series.Int {
		t.Errorf("Year type = %v, want int", typ)
	}
}

func TestCleanColumnsMissing(t *testing.T) {
	df := dataframe.LoadRecords([][]string{
		{"AustralianPort", "ForeignPort",
			"Passengers_In", "Freight_In", "Mail_In",
			"Passengers_Out", "Freight_Out", "Mail_Out",
			"Passengers_Total", "Freight_Total", "Year"},
		{"Sydney", "Auckland", "500", "10", "1", "500", "10", "1", "1000", "20", "2019"},
	}, dataframe.DetectTypes(false), dataframe.DefaultType(series.String))

	_, err := CleanColumns(df)

	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("err = %v, want *SchemaError", err)
	}
	if want := []string{"Country", "Mail_Total"}; !reflect.DeepEqual(schemaErr.Missing, want) {
		t.Errorf("Missing = %v, want %v", schemaErr.Missing, want)
	}
}

func TestCleanColumnsBadYear(t *testing.T) {
	df := dataframe.LoadRecords([][]string{
		{"AustralianPort", "ForeignPort", "Country",
			"Passengers_In", "Freight_In", "Mail_In",
			"Passengers_Out", "Freight_Out", "Mail_Out",
			"Passengers_Total", "Freight_Total", "Mail_Total", "Year"},
		{"Sydney", "Auckland", "New Zealand", "500", "10", "1", "500", "10", "1", "1000", "20", "2", "20x9"},
	}, dataframe.DetectTypes(false), dataframe.DefaultType(series.String))

	_, err := CleanColumns(df)

	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("err = %v, want *SchemaError", err)
	}
	if len(schemaErr.Missing) != 0 {
		t.Errorf("Missing = %v, want none for a Year parse failure", schemaErr.Missing)
	}
}
