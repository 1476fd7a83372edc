package render

import (
	"bikeshare/internal/views"
	"bytes"
	"fmt"
	"math"
	"strings"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Format selects the go-chart output backend.
type Format string

const (
	SVG Format = "svg"
	PNG Format = "png"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case SVG, PNG:
		return f, nil
	default:
		return "", fmt.Errorf("unknown chart format %q", s)
	}
}

func (f Format) MIME() string {
	if f == PNG {
		return "image/png"
	}
	return "image/svg+xml"
}

func (f Format) provider() chart.RendererProvider {
	if f == PNG {
		return chart.PNG
	}
	return chart.SVG
}

// Artifact is one rendered chart. Blank artifacts carry no image and stand
// for a chart without data.
type Artifact struct {
	Name  string
	Title string
	MIME  string
	Image []byte
	Blank bool
}

var (
	barPadding  = chart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16}
	linePadding = chart.Box{Top: 24, Left: 16, Right: 24, Bottom: 16}
)

func (p *Page) barChart(c views.BarChart, width int) (Artifact, error) {
	a := Artifact{Name: c.Name, Title: c.Title, MIME: p.format.MIME()}
	if len(c.Bars) == 0 {
		a.Blank = true
		return a, nil
	}

	bars := c.Bars
	if c.Mirrored {
		// highlighted end sits against the right edge
		bars = make([]views.Bar, len(c.Bars))
		for i, b := range c.Bars {
			bars[len(bars)-1-i] = b
		}
	}

	values := make([]chart.Value, 0, len(bars))
	var max float64
	for _, b := range bars {
		color := c.Color
		if b.Highlight && c.HighlightColor != "" {
			color = c.HighlightColor
		}
		values = append(values, chart.Value{
			Label: b.Label,
			Value: b.Value,
			Style: chart.Style{FillColor: hex(color), StrokeColor: hex(color)},
		})
		max = math.Max(max, b.Value)
	}

	graph := chart.BarChart{
		Title:      c.Title,
		TitleStyle: chart.Style{FontSize: p.theme.FontSize * 1.5},
		Width:      width,
		Height:     p.theme.Height,
		BarWidth:   48,
		BarSpacing: 24,
		Background: chart.Style{Padding: barPadding},
		XAxis:      chart.Style{FontSize: p.theme.FontSize},
		YAxis: chart.YAxis{
			Style:          chart.Style{FontSize: p.theme.FontSize},
			Range:          &chart.ContinuousRange{Min: 0, Max: ceiling(max)},
			ValueFormatter: countFormatter,
		},
		Bars: values,
	}
	var buf bytes.Buffer
	if err := graph.Render(p.format.provider(), &buf); err != nil {
		return a, fmt.Errorf("render %s: %w", c.Name, err)
	}
	a.Image = buf.Bytes()
	return a, nil
}

func (p *Page) lineChart(c views.LineChart) (Artifact, error) {
	a := Artifact{Name: c.Name, Title: c.Title, MIME: p.format.MIME()}
	if len(c.Points) == 0 {
		a.Blank = true
		return a, nil
	}

	xs := make([]time.Time, len(c.Points))
	ys := make([]float64, len(c.Points))
	first, last := c.Points[0].Date, c.Points[0].Date
	var max float64
	for i, pt := range c.Points {
		xs[i], ys[i] = pt.Date, pt.Value
		if pt.Date.Before(first) {
			first = pt.Date
		}
		if pt.Date.After(last) {
			last = pt.Date
		}
		max = math.Max(max, pt.Value)
	}
	// go-chart rejects a zero-width x range; widen a single day by half a day
	// on each side.
	if !last.After(first) {
		first, last = first.Add(-12*time.Hour), last.Add(12*time.Hour)
	}

	color := hex(c.Color)
	graph := chart.Chart{
		Width:      p.theme.Width,
		Height:     p.theme.Height,
		Background: chart.Style{Padding: linePadding},
		XAxis: chart.XAxis{
			Style:          chart.Style{FontSize: p.theme.FontSize},
			ValueFormatter: chart.TimeDateValueFormatter,
			Range: &chart.ContinuousRange{
				Min: chart.TimeToFloat64(first),
				Max: chart.TimeToFloat64(last),
			},
		},
		YAxis: chart.YAxis{
			Style:          chart.Style{FontSize: p.theme.FontSize},
			ValueFormatter: countFormatter,
			Range:          &chart.ContinuousRange{Min: 0, Max: ceiling(max)},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name: c.Title,
				Style: chart.Style{
					StrokeColor: color,
					StrokeWidth: 2,
					DotColor:    color,
					DotWidth:    3,
				},
				XValues: xs,
				YValues: ys,
			},
		},
	}
	var buf bytes.Buffer
	if err := graph.Render(p.format.provider(), &buf); err != nil {
		return a, fmt.Errorf("render %s: %w", c.Name, err)
	}
	a.Image = buf.Bytes()
	return a, nil
}

// ceiling leaves some headroom above the tallest value.
func ceiling(max float64) float64 {
	if max <= 0 {
		return 1
	}
	return max * 1.1
}

// countFormatter prints axis ticks as grouped integers, never in scientific
// notation.
func countFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return views.FormatCount(int64(math.Round(f)))
	}
	return ""
}

func hex(c string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(c, "#"))
}
