package processor

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// trafficFixture is a small cleaned table covering two years, a tied
// country pair and one country without an ISO mapping.
func trafficFixture(t *testing.T) dataframe.DataFrame {
	t.Helper()

	df := dataframe.LoadRecords([][]string{
		{"AustralianPort", "ForeignPort", "Country",
			"Passengers_In", "Freight_In", "Mail_In",
			"Passengers_Out", "Freight_Out", "Mail_Out",
			"Passengers_Total", "Freight_Total", "Mail_Total", "Year"},
		{"Sydney", "Auckland", "New Zealand", "500", "12", "1", "500", "8", "1", "1000", "20", "2", "2019"},
		{"Melbourne", "Singapore", "Singapore", "350", "2.5", "0", "350", "2.5", "0", "700", "5", "0", "2019"},
		{"Sydney", "Singapore", "Singapore", "150", "10", "0.5", "150", "5", "0.5", "300", "15", "1", "2020"},
		{"Brisbane", "Atlantis City", "Atlantis", "25", "0", "0", "25", "0", "0", "50", "0", "0", "2020"},
	}, dataframe.DetectTypes(false), dataframe.DefaultType(series.String))

	cleaned, err := CleanColumns(df)
	if err != nil {
		t.Fatalf("CleanColumns: %v", err)
	}
	return cleaned
}

func TestAggregateKPIs(t *testing.T) {
	agg, err := NewAggregator(nil).Aggregate(trafficFixture(t))
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}

	if agg.TotalPassengers != 2050 {
		t.Errorf("TotalPassengers = %v, want 2050", agg.TotalPassengers)
	}
	if agg.TotalFreight != 40 {
		t.Errorf("TotalFreight = %v, want 40", agg.TotalFreight)
	}
	if agg.TotalMail != 3 {
		t.Errorf("TotalMail = %v, want 3", agg.TotalMail)
	}
	if agg.NumYears != 2 || agg.StartYear != 2019 || agg.EndYear != 2020 {
		t.Errorf("years = %d (%d-%d), want 2 (2019-2020)", agg.NumYears, agg.StartYear, agg.EndYear)
	}
}

func TestAggregateYearly(t *testing.T) {
	agg, err := NewAggregator(nil).Aggregate(trafficFixture(t))
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}

	want := []YearTraffic{
		{Year: 2019, Passengers: 1700, Freight: 25, Mail: 2},
		{Year: 2020, Passengers: 350, Freight: 15, Mail: 1},
	}
	if !reflect.DeepEqual(agg.Yearly, want) {
		t.Errorf("Yearly = %v, want %v", agg.Yearly, want)
	}

	// The yearly rows partition the grand totals.
	var sumP, sumF, sumM float64
	for _, y := range agg.Yearly {
		sumP += y.Passengers
		sumF += y.Freight
		sumM += y.Mail
	}
	if sumP != agg.TotalPassengers || sumF != agg.TotalFreight || sumM != agg.TotalMail {
		t.Errorf("yearly sums %v/%v/%v do not match totals %v/%v/%v",
			sumP, sumF, sumM, agg.TotalPassengers, agg.TotalFreight, agg.TotalMail)
	}
}

func TestAggregateRankings(t *testing.T) {
	agg, err := NewAggregator(nil).Aggregate(trafficFixture(t))
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}

	wantPorts := []RankEntry{
		{Name: "Brisbane", Passengers: 50},
		{Name: "Melbourne", Passengers: 700},
		{Name: "Sydney", Passengers: 1300},
	}
	if !reflect.DeepEqual(agg.TopPorts, wantPorts) {
		t.Errorf("TopPorts = %v, want %v", agg.TopPorts, wantPorts)
	}

	// New Zealand and Singapore tie at 1000; first appearance in the
	// input decides their relative order.
	wantCountries := []RankEntry{
		{Name: "Atlantis", Passengers: 50},
		{Name: "New Zealand", Passengers: 1000},
		{Name: "Singapore", Passengers: 1000},
	}
	if !reflect.DeepEqual(agg.TopCountries, wantCountries) {
		t.Errorf("TopCountries = %v, want %v", agg.TopCountries, wantCountries)
	}

	wantRoutes := []RankEntry{
		{Name: "Brisbane - Atlantis City", Passengers: 50},
		{Name: "Sydney - Singapore", Passengers: 300},
		{Name: "Melbourne - Singapore", Passengers: 700},
		{Name: "Sydney - Auckland", Passengers: 1000},
	}
	if !reflect.DeepEqual(agg.TopRoutes, wantRoutes) {
		t.Errorf("TopRoutes = %v, want %v", agg.TopRoutes, wantRoutes)
	}
}

func TestTopByPassengersTruncation(t *testing.T) {
	var keys []string
	var values []float64
	for i := 0; i < 9; i++ {
		keys = append(keys, fmt.Sprintf("big%d", i))
		values = append(values, float64(900-100*i))
	}
	// Two groups tie at the cut line; the earlier one wins the last slot.
	keys = append(keys, "early", "late")
	values = append(values, 50, 50)

	top := topByPassengers(keys, values)

	if len(top) != 10 {
		t.Fatalf("len = %d, want 10", len(top))
	}
	if top[0].Name != "early" {
		t.Errorf("top[0] = %v, want the earlier tied group", top[0])
	}
	for _, e := range top {
		if e.Name == "late" {
			t.Error("the later tied group should have been cut")
		}
	}
	for i := 1; i < len(top); i++ {
		if top[i-1].Passengers > top[i].Passengers {
			t.Errorf("ranking not ascending at %d: %v > %v", i, top[i-1], top[i])
		}
	}
}

func TestTopByPassengersSmallInput(t *testing.T) {
	top := topByPassengers([]string{"x", "y", "x"}, []float64{1, 5, 2})
	want := []RankEntry{{Name: "x", Passengers: 3}, {Name: "y", Passengers: 5}}
	if !reflect.DeepEqual(top, want) {
		t.Errorf("top = %v, want %v", top, want)
	}
}

func TestAggregateCountries(t *testing.T) {
	agg, err := NewAggregator(nil).Aggregate(trafficFixture(t))
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}

	want := []CountryTraffic{
		{Country: "Atlantis", ISO: "", Passengers: 50},
		{Country: "New Zealand", ISO: "NZL", Passengers: 1000},
		{Country: "Singapore", ISO: "SGP", Passengers: 1000},
	}
	if !reflect.DeepEqual(agg.Countries, want) {
		t.Errorf("Countries = %v, want %v", agg.Countries, want)
	}
}

func TestAggregateCustomCountryTable(t *testing.T) {
	iso := DefaultCountryISO()
	iso["Atlantis"] = "ATL"

	agg, err := NewAggregator(iso).Aggregate(trafficFixture(t))
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}

	for _, c := range agg.Countries {
		if c.Country == "Atlantis" && c.ISO != "ATL" {
			t.Errorf("Atlantis ISO = %q, want ATL", c.ISO)
		}
	}
}

func TestDefaultCountryISOCopies(t *testing.T) {
	first := DefaultCountryISO()
	first["New Zealand"] = "XXX"

	if second := DefaultCountryISO(); second["New Zealand"] != "NZL" {
		t.Error("DefaultCountryISO must return a fresh copy every call")
	}
}
