// assemble.go
package report

import (
	"bytes"
	"fmt"
	"html/template"
	"math"
	"os"
	"path/filepath"

	"AeroDashboard/src/processor"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	pageTitle    = "Dashboard Ejecutivo de Tráfico Aéreo"
	pageHeader   = "Dashboard Ejecutivo: Análisis de Tráfico Aéreo"
	subtitleText = "Resumen del Tráfico Internacional de Australia (%d-%d)"
)

const cssStyle = `
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif; margin: 0; background-color: #f8f9fa; color: #212529; }
.header { background-color: #343a40; color: white; padding: 20px 40px; text-align: center; }
.header h1 { margin: 0; font-size: 2.5rem; }
.header p { margin: 5px 0 0; font-size: 1.2rem; color: #adb5bd; }
.container { padding: 20px; }
.kpi-container { display: flex; justify-content: space-around; flex-wrap: wrap; gap: 20px; margin-bottom: 30px; }
.kpi { background-color: white; border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); padding: 20px; text-align: center; flex-grow: 1; }
.kpi h3 { margin: 0 0 10px; font-size: 1.2rem; color: #6c757d; }
.kpi .value { font-size: 2.5rem; font-weight: bold; color: #007bff; }
.grid-container { display: grid; grid-template-columns: repeat(auto-fit, minmax(48%, 1fr)); gap: 20px; }
.grid-item { background-color: white; border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); padding: 20px; }
.full-width { grid-column: 1 / -1; }
.insight { padding: 15px; background-color: #e9ecef; border-left: 5px solid #007bff; margin-top: 15px; border-radius: 4px; }
.insight b { color: #0056b3; }
`

const htmlTemplate = `<!DOCTYPE html>
<html lang="es">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <script src="https://cdn.plot.ly/plotly-latest.min.js"></script>
    <style>{{.Style}}</style>
</head>
<body>
    <div class="header">
        <h1>{{.Header}}</h1>
        <p>{{.Subtitle}}</p>
    </div>

    <div class="container">
        <div class="kpi-container">
{{- range .KPIs}}
            <div class="kpi">
                <h3>{{.Label}}</h3>
                <p class="value">{{.Value}}</p>
            </div>
{{- end}}
        </div>

        <div class="grid-container">
{{- range .Sections}}
            <div class="grid-item{{if .FullWidth}} full-width{{end}}">
                {{.Fragment}}
                <div class="insight">
                    <b>Análisis Destacado:</b> {{.Insight}}
                </div>
            </div>
{{- end}}
        </div>
    </div>
</body>
</html>
`

type pageData struct {
	Style    template.CSS
	Title    string
	Header   string
	Subtitle string
	KPIs     []kpiCard
	Sections []sectionData
}

type kpiCard struct {
	Label string
	Value string
}

type sectionData struct {
	Fragment  template.HTML
	Insight   string
	FullWidth bool
}

// WriteError reports a failure to persist a generated artifact.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// Assembler combines the KPI numbers, the chart fragments and the
// insight paragraphs into the final HTML document. KPI values are
// grouped with comma thousands separators, matching the report's
// original number style.
type Assembler struct {
	insights InsightSource
	printer  *message.Printer
}

// NewAssembler builds an Assembler. A nil insights source falls back
// to the fixed default paragraphs.
func NewAssembler(insights InsightSource) *Assembler {
	if insights == nil {
		insights = DefaultInsights()
	}
	return &Assembler{
		insights: insights,
		printer:  message.NewPrinter(language.English),
	}
}

// BuildHTML renders the full dashboard document. The result embeds no
// timestamps: identical aggregates produce identical bytes.
func (a *Assembler) BuildHTML(agg *processor.Aggregates, charts ChartSet) ([]byte, error) {
	layout := []struct {
		fig       Figure
		fullWidth bool
	}{
		{charts.Passengers, false},
		{charts.Freight, false},
		{charts.Map, true},
		{charts.Ports, false},
		{charts.Countries, false},
		{charts.Routes, true},
	}

	data := pageData{
		Style:    template.CSS(cssStyle),
		Title:    pageTitle,
		Header:   pageHeader,
		Subtitle: fmt.Sprintf(subtitleText, agg.StartYear, agg.EndYear),
		KPIs: []kpiCard{
			{Label: "Total Pasajeros", Value: a.FormatCount(agg.TotalPassengers)},
			{Label: "Total Carga (toneladas)", Value: a.FormatCount(agg.TotalFreight)},
			{Label: "Total Correo (toneladas)", Value: a.FormatCount(agg.TotalMail)},
		},
	}

	for _, item := range layout {
		frag, err := item.fig.Fragment()
		if err != nil {
			return nil, err
		}
		data.Sections = append(data.Sections, sectionData{
			Fragment:  frag,
			Insight:   a.insights.Insight(item.fig.Section),
			FullWidth: item.fullWidth,
		})
	}

	tmpl, err := template.New("dashboard").Parse(htmlTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing report template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("rendering report template: %w", err)
	}
	return buf.Bytes(), nil
}

// FormatCount renders a metric total with thousands separators and no
// decimals.
func (a *Assembler) FormatCount(v float64) string {
	return a.printer.Sprintf("%d", int64(math.Round(v)))
}

// WriteReport persists the document atomically: the content lands in
// a temp file in the target directory and is renamed over the final
// path, so a failed run never leaves a partial report behind.
func WriteReport(path string, content []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".dashboard-*.html")
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return &WriteError{Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return &WriteError{Path: path, Err: err}
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		os.Remove(tmp.Name())
		return &WriteError{Path: path, Err: err}
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return &WriteError{Path: path, Err: err}
	}
	return nil
}
