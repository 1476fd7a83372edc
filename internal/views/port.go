package views

import "time"

// Section identifies where an artifact goes on the page.
type Section string

const (
	SectionDaily        Section = "daily"
	SectionSeason       Section = "season"
	SectionDemographics Section = "demographics"
	SectionMonth        Section = "month"
)

// Bar is one bar of a bar chart.
type Bar struct {
	Label     string
	Value     float64
	Highlight bool
}

type BarChart struct {
	Name  string
	Title string
	Bars  []Bar
	// Color fills regular bars, HighlightColor the highlighted ones.
	Color          string
	HighlightColor string
	// Mirrored charts grow from the right edge.
	Mirrored bool
}

type Point struct {
	Date  time.Time
	Value float64
}

type LineChart struct {
	Name   string
	Title  string
	Points []Point
	Color  string
}

// Port is the rendering collaborator. Implementations must accept empty bar
// and point lists and draw a blank chart for them.
type Port interface {
	RenderBarPair(s Section, left, right BarChart) error
	RenderBar(s Section, chart BarChart) error
	RenderLine(s Section, chart LineChart) error
	RenderMetric(s Section, label, value string) error
}
