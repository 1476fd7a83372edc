package render

import (
	"bikeshare/internal/models"
	"bikeshare/internal/views"
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	d, _ := time.Parse(time.DateOnly, s)
	return d
}

func dashboard() *models.Dashboard {
	return &models.Dashboard{
		Range:  models.DateRange{Start: day("2011-01-01"), End: day("2011-01-03")},
		Bounds: models.DateRange{Start: day("2011-01-01"), End: day("2012-12-31")},
		Season: []models.AggregateRow{{Key: 1, Label: "Spring", Sum: 3135}},
		Year:   []models.AggregateRow{{Key: 0, Label: "2011", Sum: 3135}},
		Month:  []models.AggregateRow{{Key: 1, Label: "Jan", Sum: 3135}},
		Weekday: []models.AggregateRow{
			{Key: 1, Label: "Mon", Sum: 1349},
			{Key: 6, Label: "Sat", Sum: 985},
			{Key: 0, Label: "Sun", Sum: 801},
		},
		Daily: []models.DailyRow{
			{Date: day("2011-01-01"), Sum: 985},
			{Date: day("2011-01-02"), Sum: 801},
			{Date: day("2011-01-03"), Sum: 1349},
		},
		TotalOrders: 3135,
	}
}

func TestPageRendersEveryChart(t *testing.T) {
	page := NewPage(views.DefaultTheme(), SVG)
	require.NoError(t, views.Render(page, views.DefaultTheme(), dashboard()))

	for _, name := range []string{"daily", "season-best", "season-worst", "year", "weekday", "month"} {
		a, ok := page.Chart(name)
		require.True(t, ok, name)
		require.False(t, a.Blank, name)
		require.Equal(t, "image/svg+xml", a.MIME)
		require.Contains(t, string(a.Image), "<svg", name)
	}

	blocks := page.Blocks()
	require.Len(t, blocks, 4)
	require.Equal(t, views.SectionDaily, blocks[0].Section)
	require.Equal(t, []Metric{{Label: views.TotalOrdersLabel, Value: "3,135"}}, blocks[0].Metrics)
	require.Len(t, blocks[1].Charts, 2)
}

func TestPageSingleDay(t *testing.T) {
	data := dashboard()
	data.Daily = data.Daily[:1]

	page := NewPage(views.DefaultTheme(), PNG)
	require.NoError(t, views.Render(page, views.DefaultTheme(), data))

	a, ok := page.Chart("daily")
	require.True(t, ok)
	require.Equal(t, "image/png", a.MIME)
	require.True(t, bytes.HasPrefix(a.Image, []byte("\x89PNG")))
}

func TestPageEmptySelectionIsBlank(t *testing.T) {
	page := NewPage(views.DefaultTheme(), SVG)
	require.NoError(t, views.Render(page, views.DefaultTheme(), &models.Dashboard{Empty: true}))

	for _, b := range page.Blocks() {
		for _, a := range b.Charts {
			require.True(t, a.Blank, a.Name)
			require.Empty(t, a.Image)
		}
	}
	require.Equal(t, "0", page.Blocks()[0].Metrics[0].Value)
}

func TestPageHTML(t *testing.T) {
	data := dashboard()
	page := NewPage(views.DefaultTheme(), SVG)
	require.NoError(t, views.Render(page, views.DefaultTheme(), data))

	var buf strings.Builder
	require.NoError(t, page.HTML(&buf, Meta{
		Title:   "Bike Sharing Dashboard",
		Range:   data.Range,
		Bounds:  data.Bounds,
		HasLogo: true,
	}))
	html := buf.String()
	require.Contains(t, html, "<h1>Bike Sharing Dashboard</h1>")
	require.Contains(t, html, `min="2011-01-01"`)
	require.Contains(t, html, `max="2012-12-31"`)
	require.Contains(t, html, `value="2011-01-03"`)
	require.Contains(t, html, "data:image/svg")
	require.Contains(t, html, ";base64,")
	require.Contains(t, html, `src="/logo"`)
	require.Contains(t, html, "3,135")
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("PNG")
	require.NoError(t, err)
	require.Equal(t, PNG, f)

	_, err = ParseFormat("gif")
	require.Error(t, err)
}
