package engine

import (
	"bikeshare/internal/models"
	"context"

	"golang.org/x/sync/errgroup"
)

// Run filters base to r and computes every aggregate of the dashboard. The
// reducers only read the filtered view, so they run concurrently.
func Run(ctx context.Context, base *Table, r models.DateRange) (*models.Dashboard, error) {
	bounds, _ := base.Bounds()
	filtered := Filter(base, r)

	data := &models.Dashboard{
		Range:  r,
		Bounds: bounds,
		Empty:  filtered.Len() == 0,
	}

	g, ctx := errgroup.WithContext(ctx)
	reduce := func(dst *[]models.AggregateRow, fn func(*Table) []models.AggregateRow) {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			*dst = fn(filtered)
			return nil
		})
	}
	reduce(&data.Season, BySeason)
	reduce(&data.Year, ByYear)
	reduce(&data.Month, ByMonth)
	reduce(&data.Weekday, ByWeekday)
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		data.Daily = ByDay(filtered)
		data.TotalOrders = Total(filtered)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return data, nil
}
