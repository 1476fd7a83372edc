package views

import (
	"bikeshare/internal/models"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type call struct {
	section Section
	kind    string
	charts  []BarChart
	line    LineChart
	label   string
	value   string
}

// recorder is a Port that keeps every call.
type recorder struct {
	calls []call
	fail  error
}

func (r *recorder) RenderBarPair(s Section, left, right BarChart) error {
	r.calls = append(r.calls, call{section: s, kind: "pair", charts: []BarChart{left, right}})
	return r.fail
}

func (r *recorder) RenderBar(s Section, c BarChart) error {
	r.calls = append(r.calls, call{section: s, kind: "bar", charts: []BarChart{c}})
	return r.fail
}

func (r *recorder) RenderLine(s Section, c LineChart) error {
	r.calls = append(r.calls, call{section: s, kind: "line", line: c})
	return r.fail
}

func (r *recorder) RenderMetric(s Section, label, value string) error {
	r.calls = append(r.calls, call{section: s, kind: "metric", label: label, value: value})
	return r.fail
}

func labels(c BarChart) []string {
	out := make([]string, len(c.Bars))
	for i, b := range c.Bars {
		out[i] = b.Label
	}
	return out
}

func day(s string) time.Time {
	d, _ := time.Parse(time.DateOnly, s)
	return d
}

func sample() *models.Dashboard {
	return &models.Dashboard{
		Season: []models.AggregateRow{
			{Key: 3, Label: "Fall", Sum: 400},
			{Key: 2, Label: "Summer", Sum: 300},
			{Key: 4, Label: "Winter", Sum: 200},
			{Key: 1, Label: "Spring", Sum: 100},
		},
		Year: []models.AggregateRow{
			{Key: 1, Label: "2012", Sum: 600},
			{Key: 0, Label: "2011", Sum: 400},
		},
		Month: []models.AggregateRow{
			{Key: 6, Label: "Jun", Sum: 500},
			{Key: 1, Label: "Jan", Sum: 100},
			{Key: 3, Label: "Mar", Sum: 300},
		},
		Weekday: []models.AggregateRow{
			{Key: 6, Label: "Sat", Sum: 500},
			{Key: 0, Label: "Sun", Sum: 300},
			{Key: 3, Label: "Wed", Sum: 200},
		},
		Daily: []models.DailyRow{
			{Date: day("2011-01-01"), Sum: 985},
			{Date: day("2011-01-02"), Sum: 801},
		},
		TotalOrders: 1786,
	}
}

func TestRenderOrder(t *testing.T) {
	rec := &recorder{}
	require.NoError(t, Render(rec, DefaultTheme(), sample()))

	var kinds []string
	for _, c := range rec.calls {
		kinds = append(kinds, string(c.section)+"/"+c.kind)
	}
	require.Equal(t, []string{
		"daily/line",
		"daily/metric",
		"season/pair",
		"demographics/pair",
		"month/bar",
	}, kinds)
}

func TestDaily(t *testing.T) {
	rec := &recorder{}
	data := sample()
	require.NoError(t, Daily(rec, DefaultTheme(), data.Daily, data.TotalOrders))

	line := rec.calls[0].line
	require.Equal(t, []Point{
		{Date: day("2011-01-01"), Value: 985},
		{Date: day("2011-01-02"), Value: 801},
	}, line.Points)
	require.Equal(t, TotalOrdersLabel, rec.calls[1].label)
	require.Equal(t, "1,786", rec.calls[1].value)
}

func TestSeason(t *testing.T) {
	rec := &recorder{}
	theme := DefaultTheme()
	require.NoError(t, Season(rec, theme, sample().Season))

	best, worst := rec.calls[0].charts[0], rec.calls[0].charts[1]
	require.Equal(t, []string{"Fall", "Summer", "Winter", "Spring"}, labels(best))
	require.True(t, best.Bars[0].Highlight)
	require.False(t, best.Bars[1].Highlight)

	require.Equal(t, []string{"Spring", "Winter", "Summer", "Fall"}, labels(worst))
	require.True(t, worst.Bars[0].Highlight)
	require.True(t, worst.Mirrored)
	require.Equal(t, theme.Highlight, worst.HighlightColor)
}

func TestDemographics(t *testing.T) {
	rec := &recorder{}
	data := sample()
	require.NoError(t, Demographics(rec, DefaultTheme(), data.Year, data.Weekday))

	year, weekday := rec.calls[0].charts[0], rec.calls[0].charts[1]
	require.Equal(t, []string{"2012", "2011"}, labels(year))
	require.True(t, year.Bars[1].Highlight)
	require.Equal(t, []string{"Sun", "Wed", "Sat"}, labels(weekday))
}

func TestMonthCalendarOrder(t *testing.T) {
	rec := &recorder{}
	require.NoError(t, Month(rec, DefaultTheme(), sample().Month))
	require.Equal(t, []string{"Jan", "Mar", "Jun"}, labels(rec.calls[0].charts[0]))
}

func TestRenderEmpty(t *testing.T) {
	rec := &recorder{}
	require.NoError(t, Render(rec, DefaultTheme(), &models.Dashboard{Empty: true}))

	require.Len(t, rec.calls, 5)
	require.Empty(t, rec.calls[0].line.Points)
	require.Equal(t, "0", rec.calls[1].value)
	for _, c := range rec.calls[2:] {
		for _, chart := range c.charts {
			require.Empty(t, chart.Bars)
		}
	}
}

func TestRenderJoinsErrors(t *testing.T) {
	boom := errors.New("boom")
	err := Render(&recorder{fail: boom}, DefaultTheme(), sample())
	require.ErrorIs(t, err, boom)
}

func TestFormatCount(t *testing.T) {
	require.Equal(t, "150", FormatCount(150))
	require.Equal(t, "1,234,567", FormatCount(1234567))
	require.Equal(t, "0", FormatCount(0))
}
