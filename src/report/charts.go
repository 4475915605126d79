// charts.go
package report

import (
	"encoding/json"
	"fmt"
	"html/template"
	"strings"

	"AeroDashboard/src/processor"
)

// Chart colors, one fixed hex per chart.
const (
	colorPassengers     = "#007bff"
	fillPassengers      = "rgba(0,123,255,0.2)"
	colorFreight        = "#28a745"
	fillFreight         = "rgba(40,167,69,0.2)"
	colorPorts          = "#17a2b8"
	colorCountries      = "#ffc107"
	colorRoutes         = "#dc3545"
	colorBackground     = "#ffffff"
	barValueTemplate    = "%{x:.2s}"
	categoryOrderTotals = "total ascending"
)

// plasmaScale is the 10-stop Plasma sequential palette used by the
// map chart.
var plasmaScale = []string{
	"#0d0887", "#46039f", "#7201a8", "#9c179e", "#bd3786",
	"#d8576b", "#ed7953", "#fb9f3a", "#fdca26", "#f0f921",
}

// chartConfig disables the hover toolbar on every chart.
const chartConfig = `{"displayModeBar":false}`

// Section keys, shared between chart ids and insight lookups.
const (
	SectionPassengers = "pasajeros-anual"
	SectionFreight    = "carga-anual"
	SectionMap        = "mapa"
	SectionPorts      = "puertos"
	SectionCountries  = "paises"
	SectionRoutes     = "rutas"
)

// Figure is one renderable chart: plotly traces plus layout, bound to
// a fixed element id so identical input yields identical markup.
type Figure struct {
	Section string
	ID      string
	Data    []interface{}
	Layout  Layout
}

// ChartSet carries the six report figures.
type ChartSet struct {
	Passengers Figure
	Freight    Figure
	Map        Figure
	Ports      Figure
	Countries  Figure
	Routes     Figure
}

// Layout mirrors the subset of the plotly layout object the report
// uses.
type Layout struct {
	Title        TitleText  `json:"title"`
	XAxis        *Axis      `json:"xaxis,omitempty"`
	YAxis        *Axis      `json:"yaxis,omitempty"`
	Geo          *GeoLayout `json:"geo,omitempty"`
	PaperBGColor string     `json:"paper_bgcolor"`
	PlotBGColor  string     `json:"plot_bgcolor"`
}

type TitleText struct {
	Text string `json:"text"`
}

type Axis struct {
	Title         TitleText `json:"title"`
	CategoryOrder string    `json:"categoryorder,omitempty"`
}

type GeoLayout struct {
	ShowFrame      bool       `json:"showframe"`
	ShowCoastlines bool       `json:"showcoastlines"`
	Projection     Projection `json:"projection"`
}

type Projection struct {
	Type string `json:"type"`
}

type lineStyle struct {
	Color string `json:"color"`
}

type markerStyle struct {
	Color string `json:"color"`
}

type areaTrace struct {
	Type      string    `json:"type"`
	Mode      string    `json:"mode"`
	X         []int     `json:"x"`
	Y         []float64 `json:"y"`
	Fill      string    `json:"fill"`
	FillColor string    `json:"fillcolor"`
	Line      lineStyle `json:"line"`
}

type barTrace struct {
	Type         string      `json:"type"`
	Orientation  string      `json:"orientation"`
	X            []float64   `json:"x"`
	Y            []string    `json:"y"`
	Marker       markerStyle `json:"marker"`
	TextTemplate string      `json:"texttemplate"`
	TextPosition string      `json:"textposition"`
}

type choroplethTrace struct {
	Type       string      `json:"type"`
	Locations  []string    `json:"locations"`
	Z          []float64   `json:"z"`
	Text       []string    `json:"text"`
	ColorScale []scaleStop `json:"colorscale"`
	ColorBar   colorBar    `json:"colorbar"`
}

// scaleStop marshals as a [fraction, color] pair.
type scaleStop [2]interface{}

type colorBar struct {
	Title string `json:"title"`
}

// BuildCharts arranges the aggregates into the six report figures. No
// computation happens here beyond reshaping already-aggregated data.
func BuildCharts(agg *processor.Aggregates) ChartSet {
	return ChartSet{
		Passengers: areaFigure(SectionPassengers,
			"Evolución Anual del Tráfico de Pasajeros",
			"Total de Pasajeros",
			colorPassengers, fillPassengers,
			agg.Yearly, func(y processor.YearTraffic) float64 { return y.Passengers }),
		Freight: areaFigure(SectionFreight,
			"Evolución Anual del Tráfico de Carga (toneladas)",
			"Total de Carga (toneladas)",
			colorFreight, fillFreight,
			agg.Yearly, func(y processor.YearTraffic) float64 { return y.Freight }),
		Map: choroplethFigure(SectionMap,
			"Distribución Geográfica de Pasajeros",
			agg.Countries),
		Ports: barFigure(SectionPorts,
			"Top 10 Puertos Australianos por Pasajeros",
			"Puerto Australiano",
			colorPorts, agg.TopPorts),
		Countries: barFigure(SectionCountries,
			"Top 10 Países por Pasajeros",
			"País",
			colorCountries, agg.TopCountries),
		Routes: barFigure(SectionRoutes,
			"Top 10 Rutas por Pasajeros",
			"Ruta",
			colorRoutes, agg.TopRoutes),
	}
}

func areaFigure(section, title, yTitle, lineColor, fillColor string, yearly []processor.YearTraffic, metric func(processor.YearTraffic) float64) Figure {
	years := make([]int, len(yearly))
	values := make([]float64, len(yearly))
	for i, y := range yearly {
		years[i] = y.Year
		values[i] = metric(y)
	}

	return Figure{
		Section: section,
		ID:      "grafica-" + section,
		Data: []interface{}{areaTrace{
			Type:      "scatter",
			Mode:      "lines",
			X:         years,
			Y:         values,
			Fill:      "tozeroy",
			FillColor: fillColor,
			Line:      lineStyle{Color: lineColor},
		}},
		Layout: Layout{
			Title:        TitleText{Text: title},
			XAxis:        &Axis{Title: TitleText{Text: "Año"}},
			YAxis:        &Axis{Title: TitleText{Text: yTitle}},
			PaperBGColor: colorBackground,
			PlotBGColor:  colorBackground,
		},
	}
}

func barFigure(section, title, yTitle, color string, entries []processor.RankEntry) Figure {
	values := make([]float64, len(entries))
	names := make([]string, len(entries))
	for i, e := range entries {
		values[i] = e.Passengers
		names[i] = e.Name
	}

	return Figure{
		Section: section,
		ID:      "grafica-" + section,
		Data: []interface{}{barTrace{
			Type:         "bar",
			Orientation:  "h",
			X:            values,
			Y:            names,
			Marker:       markerStyle{Color: color},
			TextTemplate: barValueTemplate,
			TextPosition: "outside",
		}},
		Layout: Layout{
			Title:        TitleText{Text: title},
			XAxis:        &Axis{Title: TitleText{Text: "Total de Pasajeros"}},
			YAxis:        &Axis{Title: TitleText{Text: yTitle}, CategoryOrder: categoryOrderTotals},
			PaperBGColor: colorBackground,
			PlotBGColor:  colorBackground,
		},
	}
}

func choroplethFigure(section, title string, countries []processor.CountryTraffic) Figure {
	// Rows without an ISO code stay out of the plotted arrays.
	var locations []string
	var values []float64
	var names []string
	for _, c := range countries {
		if c.ISO == "" {
			continue
		}
		locations = append(locations, c.ISO)
		values = append(values, c.Passengers)
		names = append(names, c.Country)
	}

	scale := make([]scaleStop, len(plasmaScale))
	for i, color := range plasmaScale {
		scale[i] = scaleStop{float64(i) / float64(len(plasmaScale)-1), color}
	}

	return Figure{
		Section: section,
		ID:      "grafica-" + section,
		Data: []interface{}{choroplethTrace{
			Type:       "choropleth",
			Locations:  locations,
			Z:          values,
			Text:       names,
			ColorScale: scale,
			ColorBar:   colorBar{Title: "Total de Pasajeros"},
		}},
		Layout: Layout{
			Title: TitleText{Text: title},
			Geo: &GeoLayout{
				ShowFrame:      false,
				ShowCoastlines: false,
				Projection:     Projection{Type: "equirectangular"},
			},
			PaperBGColor: colorBackground,
			PlotBGColor:  colorBackground,
		},
	}
}

// Fragment renders the figure as embeddable markup: a placeholder div
// plus the script that draws into it. The plotly runtime itself is
// not included, the page loads it once from the CDN.
func (f Figure) Fragment() (template.HTML, error) {
	data, err := json.Marshal(f.Data)
	if err != nil {
		return "", fmt.Errorf("encoding chart %s data: %w", f.ID, err)
	}
	layout, err := json.Marshal(f.Layout)
	if err != nil {
		return "", fmt.Errorf("encoding chart %s layout: %w", f.ID, err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<div id=%q class=\"plotly-graph-div\" style=\"height:450px; width:100%%;\"></div>\n", f.ID)
	fmt.Fprintf(&b, "<script type=\"text/javascript\">Plotly.newPlot(%q, %s, %s, %s);</script>", f.ID, data, layout, chartConfig)
	return template.HTML(b.String()), nil
}
