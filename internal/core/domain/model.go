package domain

type Message struct {
	ID       int
	ChatID   int64
	Username string
	Text     string
}

type Action string

const (
	Typing       Action = "typing"
	SendingPhoto Action = "upload_photo"
)

type ChartKind string

const (
	BarChart       ChartKind = "bar"
	LineChart      ChartKind = "line"
	PieChart       ChartKind = "pie"
	HistogramChart ChartKind = "histogram"
	ScatterChart   ChartKind = "scatter"
	AreaChart      ChartKind = "area"
)

// ChartKinds lists the supported chart types in the order they are matched against a prompt.
var ChartKinds = []ChartKind{BarChart, LineChart, PieChart, HistogramChart, ScatterChart, AreaChart}

// DataPoint is a single labelled value of a chart, kept in prompt order.
type DataPoint struct {
	Label string
	Value float64
}

type Chart struct {
	Kind   ChartKind
	Title  string
	Points []DataPoint
}

type Answer struct {
	Text  string
	Score float64
}
