// Package views turns dashboard aggregates into chart descriptions and hands
// them to a rendering Port. Views never fail on empty data: they pass empty
// charts through and the Port draws them blank.
package views

import (
	"bikeshare/internal/engine"
	"bikeshare/internal/models"
	"errors"
	"sort"

	"github.com/dustin/go-humanize"
)

const TotalOrdersLabel = "Total orders"

// Render draws the whole page in order: daily, season, demographics, month.
func Render(p Port, theme Theme, data *models.Dashboard) error {
	return errors.Join(
		Daily(p, theme, data.Daily, data.TotalOrders),
		Season(p, theme, data.Season),
		Demographics(p, theme, data.Year, data.Weekday),
		Month(p, theme, data.Month),
	)
}

// Daily draws the chronological line chart and the total orders metric.
func Daily(p Port, theme Theme, daily []models.DailyRow, total int64) error {
	points := make([]Point, 0, len(daily))
	for _, d := range daily {
		points = append(points, Point{Date: d.Date, Value: float64(d.Sum)})
	}
	if err := p.RenderLine(SectionDaily, LineChart{
		Name:   "daily",
		Title:  "Daily Orders",
		Points: points,
		Color:  theme.Line,
	}); err != nil {
		return err
	}
	return p.RenderMetric(SectionDaily, TotalOrdersLabel, FormatCount(total))
}

// Season draws best and worst performers side by side. rows must be sorted by
// sum, highest first, as BySeason returns them.
func Season(p Port, theme Theme, rows []models.AggregateRow) error {
	best := bars(rows, 0)

	worst := make([]models.AggregateRow, len(rows))
	copy(worst, rows)
	sort.SliceStable(worst, func(i, j int) bool { return worst[i].Sum < worst[j].Sum })

	return p.RenderBarPair(SectionSeason,
		BarChart{
			Name:           "season-best",
			Title:          "Best Performing Season",
			Bars:           best,
			Color:          theme.Muted,
			HighlightColor: theme.Highlight,
		},
		BarChart{
			Name:           "season-worst",
			Title:          "Worst Performing Season",
			Bars:           bars(worst, 0),
			Color:          theme.Muted,
			HighlightColor: theme.Highlight,
			Mirrored:       true,
		},
	)
}

// Demographics draws totals by year (latest year first) next to totals by
// weekday (Sunday first).
func Demographics(p Port, theme Theme, years, weekdays []models.AggregateRow) error {
	return p.RenderBarPair(SectionDemographics,
		BarChart{
			Name:           "year",
			Title:          "Number of Customer by Year",
			Bars:           bars(engine.SortByKey(years, true), 1),
			Color:          theme.Muted,
			HighlightColor: theme.Accent,
		},
		BarChart{
			Name:  "weekday",
			Title: "Number of Customer by Day",
			Bars:  bars(engine.SortByKey(weekdays, false), -1),
			Color: theme.Highlight,
		},
	)
}

// Month draws totals per month in calendar order.
func Month(p Port, theme Theme, rows []models.AggregateRow) error {
	return p.RenderBar(SectionMonth, BarChart{
		Name:  "month",
		Title: "Number of Bike Sharing by Month",
		Bars:  bars(engine.SortByKey(rows, false), -1),
		Color: theme.Accent,
	})
}

// FormatCount renders n with thousands separators, e.g. 1,234,567.
func FormatCount(n int64) string {
	return humanize.Comma(n)
}

// bars converts rows in order and highlights position hl (none when out of
// range).
func bars(rows []models.AggregateRow, hl int) []Bar {
	out := make([]Bar, 0, len(rows))
	for i, r := range rows {
		out = append(out, Bar{Label: r.Label, Value: float64(r.Sum), Highlight: i == hl})
	}
	return out
}
