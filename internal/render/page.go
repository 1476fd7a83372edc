package render

import (
	"bikeshare/internal/models"
	"bikeshare/internal/views"
	"embed"
	"encoding/base64"
	"html/template"
	"io"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.New("dashboard.html").Funcs(template.FuncMap{
	"dataURI": dataURI,
	"isoDate": func(t time.Time) string { return t.Format(time.DateOnly) },
}).ParseFS(templateFS, "templates/dashboard.html"))

var headings = map[views.Section]string{
	views.SectionDaily:        "Daily Orders",
	views.SectionSeason:       "Best and Worst Performing Season by Number of Sharing Bike",
	views.SectionDemographics: "Customer Demographics",
	views.SectionMonth:        "Number of Bike Sharing by Month",
}

type Metric struct {
	Label string
	Value string
}

// Block is one page section: up to two charts side by side plus metrics.
type Block struct {
	Section views.Section
	Heading string
	Charts  []Artifact
	Metrics []Metric
}

// Page collects everything the views draw during one render cycle. It
// implements views.Port.
type Page struct {
	theme  views.Theme
	format Format
	blocks []*Block
}

var _ views.Port = (*Page)(nil)

func NewPage(theme views.Theme, format Format) *Page {
	return &Page{theme: theme, format: format}
}

func (p *Page) RenderBarPair(s views.Section, left, right views.BarChart) error {
	l, err := p.barChart(left, p.theme.PairWidth)
	if err != nil {
		return err
	}
	r, err := p.barChart(right, p.theme.PairWidth)
	if err != nil {
		return err
	}
	b := p.block(s)
	b.Charts = append(b.Charts, l, r)
	return nil
}

func (p *Page) RenderBar(s views.Section, c views.BarChart) error {
	a, err := p.barChart(c, p.theme.Width)
	if err != nil {
		return err
	}
	b := p.block(s)
	b.Charts = append(b.Charts, a)
	return nil
}

func (p *Page) RenderLine(s views.Section, c views.LineChart) error {
	a, err := p.lineChart(c)
	if err != nil {
		return err
	}
	b := p.block(s)
	b.Charts = append(b.Charts, a)
	return nil
}

func (p *Page) RenderMetric(s views.Section, label, value string) error {
	b := p.block(s)
	b.Metrics = append(b.Metrics, Metric{Label: label, Value: value})
	return nil
}

// Blocks returns sections in the order they were first drawn.
func (p *Page) Blocks() []*Block {
	return p.blocks
}

// Chart finds a rendered chart by name.
func (p *Page) Chart(name string) (Artifact, bool) {
	for _, b := range p.blocks {
		for _, a := range b.Charts {
			if a.Name == name {
				return a, true
			}
		}
	}
	return Artifact{}, false
}

func (p *Page) block(s views.Section) *Block {
	for _, b := range p.blocks {
		if b.Section == s {
			return b
		}
	}
	b := &Block{Section: s, Heading: headings[s]}
	p.blocks = append(p.blocks, b)
	return b
}

// Meta is the page chrome around the charts: the date picker and sidebar.
type Meta struct {
	Title   string
	Range   models.DateRange
	Bounds  models.DateRange
	Empty   bool
	HasLogo bool
}

// HTML writes the full dashboard document.
func (p *Page) HTML(w io.Writer, meta Meta) error {
	return pageTemplate.Execute(w, struct {
		Meta
		Blocks []*Block
	}{meta, p.blocks})
}

func dataURI(a Artifact) template.URL {
	return template.URL("data:" + a.MIME + ";base64," + base64.StdEncoding.EncodeToString(a.Image))
}
