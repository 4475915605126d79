package report

// InsightSource supplies the narrative paragraph shown under a chart
// section. Implementations may derive text from the data; the default
// source returns fixed prose.
type InsightSource interface {
	Insight(section string) string
}

// StaticInsights serves fixed paragraphs keyed by section.
type StaticInsights map[string]string

func (s StaticInsights) Insight(section string) string {
	return s[section]
}

// DefaultInsights returns the hand-written analysis paragraphs. They
// do not follow the data: if the input changes, the prose stays the
// same.
func DefaultInsights() StaticInsights {
	return StaticInsights{
		SectionPassengers: "Se observa un crecimiento sostenido en el número de pasajeros a lo largo de los años, indicando una expansión saludable del mercado. La demanda muestra una tendencia alcista constante.",
		SectionFreight:    "El transporte de carga también muestra una clara tendencia al alza, lo que refleja un aumento en el comercio y la logística internacional a través de los puertos aéreos australianos.",
		SectionMap:        "El mapa ilustra la concentración del tráfico de pasajeros en regiones clave como Norteamérica, Europa Occidental y, de manera muy destacada, el Sudeste Asiático y Oceanía. Nueva Zelanda y EE. UU. son los mercados internacionales más importantes.",
		SectionPorts:      "El puerto de Sídney es, con diferencia, el principal punto de entrada y salida internacional de Australia, seguido por Melbourne y Brisbane. Esto subraya su rol como el hub aéreo más crítico del país.",
		SectionCountries:  "Nueva Zelanda, Estados Unidos y el Reino Unido constituyen los tres principales mercados de pasajeros, lo que evidencia fuertes lazos económicos y culturales. Singapur y Japón también son socios estratégicos clave en Asia.",
		SectionRoutes:     "La ruta Sídney-Auckland es la más transitada, consolidándose como el corredor aéreo más importante. Las rutas hacia Singapur desde Sídney y Melbourne también son vitales, actuando como puentes hacia el resto de Asia y Europa.",
	}
}
