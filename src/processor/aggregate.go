// aggregate.go
package processor

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
)

// RouteSeparator joins an Australian port with a foreign port into
// the synthetic route key.
const RouteSeparator = " - "

// rankSize is how many groups the top rankings keep.
const rankSize = 10

// YearTraffic is one row of the yearly aggregate.
type YearTraffic struct {
	Year       int
	Passengers float64
	Freight    float64
	Mail       float64
}

// RankEntry is one row of a top-N ranking.
type RankEntry struct {
	Name       string
	Passengers float64
}

// CountryTraffic is one row of the map table. ISO is empty when the
// country has no mapping; such rows stay in the table but are left
// off the map chart.
type CountryTraffic struct {
	Country    string
	ISO        string
	Passengers float64
}

// Aggregates holds every figure the report shows, derived once from
// the cleaned table and never mutated afterwards.
type Aggregates struct {
	TotalPassengers float64
	TotalFreight    float64
	TotalMail       float64
	NumYears        int
	StartYear       int
	EndYear         int
	Yearly          []YearTraffic
	TopPorts        []RankEntry
	TopCountries    []RankEntry
	TopRoutes       []RankEntry
	Countries       []CountryTraffic
}

// Aggregator computes report aggregates. The country table is fixed
// at construction and never modified.
type Aggregator struct {
	countryISO map[string]string
}

// NewAggregator returns an Aggregator using the given country to ISO3
// table, or the built-in table when countryISO is nil.
func NewAggregator(countryISO map[string]string) *Aggregator {
	if countryISO == nil {
		countryISO = DefaultCountryISO()
	}
	return &Aggregator{countryISO: countryISO}
}

// Aggregate derives all report figures from a table cleaned by
// CleanColumns.
func (a *Aggregator) Aggregate(df dataframe.DataFrame) (*Aggregates, error) {
	if df.Error() != nil {
		return nil, df.Error()
	}

	// 1. Pull out the columns the aggregates read.
	ports := df.Col("AustralianPort").Records()
	foreignPorts := df.Col("ForeignPort").Records()
	countries := df.Col("Country").Records()
	passengers := df.Col("Passengers_Total").Float()
	freight := df.Col("Freight_Total").Float()
	mail := df.Col("Mail_Total").Float()

	years, err := intColumn(df, "Year")
	if err != nil {
		return nil, err
	}

	agg := &Aggregates{}

	// 2. Scalar KPIs.
	for i := range years {
		agg.TotalPassengers += passengers[i]
		agg.TotalFreight += freight[i]
		agg.TotalMail += mail[i]
	}

	// 3. Traffic per year, ascending.
	byYear := make(map[int]*YearTraffic)
	for i, y := range years {
		t := byYear[y]
		if t == nil {
			t = &YearTraffic{Year: y}
			byYear[y] = t
		}
		t.Passengers += passengers[i]
		t.Freight += freight[i]
		t.Mail += mail[i]
	}
	yearKeys := make([]int, 0, len(byYear))
	for y := range byYear {
		yearKeys = append(yearKeys, y)
	}
	sort.Ints(yearKeys)
	agg.Yearly = make([]YearTraffic, 0, len(yearKeys))
	for _, y := range yearKeys {
		agg.Yearly = append(agg.Yearly, *byYear[y])
	}
	if len(yearKeys) > 0 {
		agg.NumYears = len(yearKeys)
		agg.StartYear = yearKeys[0]
		agg.EndYear = yearKeys[len(yearKeys)-1]
	}

	// 4. Top rankings by passenger total.
	routes := make([]string, len(ports))
	for i := range ports {
		routes[i] = ports[i] + RouteSeparator + foreignPorts[i]
	}
	agg.TopPorts = topByPassengers(ports, passengers)
	agg.TopCountries = topByPassengers(countries, passengers)
	agg.TopRoutes = topByPassengers(routes, passengers)

	// 5. Map table: passengers per country joined with the ISO codes.
	countrySums := make(map[string]float64)
	for i, c := range countries {
		countrySums[c] += passengers[i]
	}
	countryNames := make([]string, 0, len(countrySums))
	for c := range countrySums {
		countryNames = append(countryNames, c)
	}
	sort.Strings(countryNames)
	agg.Countries = make([]CountryTraffic, 0, len(countryNames))
	for _, c := range countryNames {
		agg.Countries = append(agg.Countries, CountryTraffic{
			Country:    c,
			ISO:        a.countryISO[c],
			Passengers: countrySums[c],
		})
	}

	return agg, nil
}

// topByPassengers groups the keys, sums their passenger totals, keeps
// the ten largest and returns them ascending by value, so the largest
// bar renders on top. Equal sums rank by first appearance in the
// input; both sorting passes are stable.
func topByPassengers(keys []string, values []float64) []RankEntry {
	sums := make(map[string]float64, len(keys))
	order := make([]string, 0, len(keys))
	for i, k := range keys {
		if _, ok := sums[k]; !ok {
			order = append(order, k)
		}
		sums[k] += values[i]
	}

	entries := make([]RankEntry, 0, len(order))
	for _, k := range order {
		entries = append(entries, RankEntry{Name: k, Passengers: sums[k]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Passengers > entries[j].Passengers
	})
	if len(entries) > rankSize {
		entries = entries[:rankSize]
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Passengers < entries[j].Passengers
	})
	return entries
}

func intColumn(df dataframe.DataFrame, name string) ([]int, error) {
	records := df.Col(name).Records()
	out := make([]int, len(records))
	for i, rec := range records {
		v, err := strconv.Atoi(strings.TrimSpace(rec))
		if err != nil {
			return nil, &SchemaError{Reason: fmt.Sprintf("row %d: %s %q is not an integer", i+1, name, rec)}
		}
		out[i] = v
	}
	return out, nil
}
