package renderer

import (
	"bytes"
	"errors"
	"fmt"
	"gadgetbot/internal/core/domain"
	"io"
	"math"

	"github.com/wcharczuk/go-chart/v2"
)

const (
	chartWidth  = 1024
	chartHeight = 640
)

var ErrUnsupportedChart = errors.New("unsupported chart type")

// Chart renders domain charts with go-chart.
type Chart struct{}

func NewChart() *Chart {
	return &Chart{}
}

type renderable interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

func (c *Chart) RenderChart(ch domain.Chart) ([]byte, error) {
	if len(ch.Points) == 0 {
		return nil, errors.New("chart has no data")
	}

	for _, p := range ch.Points {
		if math.IsInf(p.Value, 0) || math.IsNaN(p.Value) {
			return nil, fmt.Errorf("value for %q is not a finite number", p.Label)
		}
	}

	var r renderable
	switch ch.Kind {
	case domain.BarChart:
		r = barChart(ch.Title, ch.Points)
	case domain.HistogramChart:
		r = barChart(ch.Title, histogram(ch.Points, len(ch.Points)))
	case domain.PieChart:
		pie, err := pieChart(ch)
		if err != nil {
			return nil, err
		}
		r = pie
	case domain.LineChart, domain.ScatterChart, domain.AreaChart:
		r = seriesChart(ch)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedChart, ch.Kind)
	}

	buf := new(bytes.Buffer)
	if err := r.Render(chart.PNG, buf); err != nil {
		return nil, fmt.Errorf("error rendering %s chart: %w", ch.Kind, err)
	}

	return buf.Bytes(), nil
}

func barChart(title string, points []domain.DataPoint) *chart.BarChart {
	bars := make([]chart.Value, len(points))
	for i, p := range points {
		bars[i] = chart.Value{Label: p.Label, Value: p.Value}
	}

	bc := &chart.BarChart{
		Title:      title,
		Width:      chartWidth,
		Height:     chartHeight,
		BarWidth:   max(8, chartWidth/(2*len(points)+2)),
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		Bars:       bars,
	}

	minV, maxV := valueRange(points)
	minV = math.Min(0, minV)
	bc.YAxis.Range = &chart.ContinuousRange{Min: minV, Max: math.Max(maxV, minV+1)}

	return bc
}

func pieChart(ch domain.Chart) (*chart.PieChart, error) {
	values := make([]chart.Value, 0, len(ch.Points))
	for _, p := range ch.Points {
		if p.Value < 0 {
			return nil, fmt.Errorf("pie chart value for %q must not be negative", p.Label)
		}
		if p.Value == 0 {
			continue
		}
		values = append(values, chart.Value{Label: p.Label, Value: p.Value})
	}

	if len(values) == 0 {
		return nil, errors.New("pie chart needs at least one positive value")
	}

	return &chart.PieChart{
		Title:  ch.Title,
		Width:  chartHeight,
		Height: chartHeight,
		Values: values,
	}, nil
}

// seriesChart plots the points in prompt order at x = 0..n-1 with their labels as ticks.
func seriesChart(ch domain.Chart) *chart.Chart {
	n := len(ch.Points)
	xs := make([]float64, n)
	ys := make([]float64, n)
	ticks := make([]chart.Tick, 0, n+2)

	ticks = append(ticks, chart.Tick{Value: -0.5})
	for i, p := range ch.Points {
		xs[i] = float64(i)
		ys[i] = p.Value
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: p.Label})
	}
	ticks = append(ticks, chart.Tick{Value: float64(n) - 0.5})

	style := chart.Style{
		StrokeColor: chart.ColorBlue,
		StrokeWidth: 2,
	}

	switch ch.Kind {
	case domain.ScatterChart:
		style.StrokeWidth = chart.Disabled
		style.DotWidth = 6
		style.DotColor = chart.ColorBlue
	case domain.AreaChart:
		style.FillColor = chart.ColorBlue.WithAlpha(64)
	}

	c := &chart.Chart{
		Title:      ch.Title,
		Width:      chartWidth,
		Height:     chartHeight,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 20, Right: 20}},
		XAxis:      chart.XAxis{Ticks: ticks},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Style:   style,
				XValues: xs,
				YValues: ys,
			},
		},
	}

	minV, maxV := valueRange(ch.Points)
	if ch.Kind == domain.AreaChart {
		minV = math.Min(0, minV)
	}
	if minV == maxV {
		minV, maxV = minV-1, maxV+1
	}
	c.YAxis.Range = &chart.ContinuousRange{Min: minV, Max: maxV}

	return c
}

// histogram sorts the values into bins equal-width buckets spanning their range.
func histogram(points []domain.DataPoint, bins int) []domain.DataPoint {
	minV, maxV := valueRange(points)
	width := (maxV - minV) / float64(bins)

	counts := make([]float64, bins)
	for _, p := range points {
		i := bins - 1
		if width > 0 {
			i = min(int((p.Value-minV)/width), bins-1)
		}
		counts[i]++
	}

	out := make([]domain.DataPoint, bins)
	for i := range counts {
		lo := minV + float64(i)*width
		out[i] = domain.DataPoint{
			Label: fmt.Sprintf("%.4g-%.4g", lo, lo+width),
			Value: counts[i],
		}
	}

	return out
}

func valueRange(points []domain.DataPoint) (float64, float64) {
	minV, maxV := math.Inf(1), math.Inf(-1)
	for _, p := range points {
		minV = math.Min(minV, p.Value)
		maxV = math.Max(maxV, p.Value)
	}

	return minV, maxV
}
