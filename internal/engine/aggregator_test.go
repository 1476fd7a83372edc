package engine

import (
	"bikeshare/internal/models"
	"testing"

	"github.com/stretchr/testify/require"
)

// fixture builds a table over n consecutive days starting 2011-01-01.
func fixture(n int) *Table {
	start := date("2011-01-01")
	records := make([]models.RentalRecord, n)
	for i := range records {
		d := start.AddDate(0, 0, i)
		records[i] = models.RentalRecord{
			Date:    d,
			Season:  (int(d.Month())-1)/3 + 1,
			Year:    d.Year() - models.BaseYear,
			Month:   int(d.Month()),
			Weekday: int(d.Weekday()),
			Count:   int64(100 + (i*37)%500),
		}
	}
	return NewTable(records)
}

func sumRows(rows []models.AggregateRow) int64 {
	var n int64
	for _, r := range rows {
		n += r.Sum
	}
	return n
}

func TestAggregate(t *testing.T) {
	// Scenario:
	// 2011-01-01: season 1, yr 0, Jan, Sat, 100
	// 2011-01-02: season 1, yr 0, Jan, Sun, 50
	store := NewTable([]models.RentalRecord{
		{Date: date("2011-01-02"), Season: 1, Year: 0, Month: 1, Weekday: 0, Count: 50},
		{Date: date("2011-01-01"), Season: 1, Year: 0, Month: 1, Weekday: 6, Count: 100},
	})

	require.Equal(t, []models.AggregateRow{{Key: 1, Label: "Spring", Sum: 150}}, BySeason(store))
	require.Equal(t, []models.AggregateRow{{Key: 0, Label: "2011", Sum: 150}}, ByYear(store))
	require.Equal(t, []models.AggregateRow{{Key: 1, Label: "Jan", Sum: 150}}, ByMonth(store))
	require.Equal(t, []models.AggregateRow{
		{Key: 6, Label: "Sat", Sum: 100},
		{Key: 0, Label: "Sun", Sum: 50},
	}, ByWeekday(store))
	require.Equal(t, []models.DailyRow{
		{Date: date("2011-01-01"), Sum: 100},
		{Date: date("2011-01-02"), Sum: 50},
	}, ByDay(store))
	require.EqualValues(t, 150, Total(store))
}

func TestAggregateConservesTotal(t *testing.T) {
	store := fixture(731)
	total := Total(store)
	for name, reduce := range map[string]func(*Table) []models.AggregateRow{
		"season":  BySeason,
		"year":    ByYear,
		"month":   ByMonth,
		"weekday": ByWeekday,
	} {
		t.Run(name, func(t *testing.T) {
			rows := reduce(store)
			require.Equal(t, total, sumRows(rows))
			for i := 1; i < len(rows); i++ {
				require.GreaterOrEqual(t, rows[i-1].Sum, rows[i].Sum, "rows must be sorted by sum, highest first")
			}
		})
	}
	require.Len(t, BySeason(store), 4)
	require.Len(t, ByYear(store), 2)
	require.Len(t, ByMonth(store), 12)
	require.Len(t, ByWeekday(store), 7)
}

func TestAggregateTiesKeepKeyOrder(t *testing.T) {
	store := NewTable([]models.RentalRecord{
		{Date: date("2011-03-01"), Season: 3, Count: 10},
		{Date: date("2011-03-02"), Season: 1, Count: 10},
		{Date: date("2011-03-03"), Season: 2, Count: 20},
	})
	rows := BySeason(store)
	require.Equal(t, []int{2, 1, 3}, []int{rows[0].Key, rows[1].Key, rows[2].Key})
}

func TestByDayIsChronological(t *testing.T) {
	rows := ByDay(fixture(400))
	require.Len(t, rows, 400)
	for i := 1; i < len(rows); i++ {
		require.True(t, rows[i-1].Date.Before(rows[i].Date))
	}
}

func TestAggregateEmpty(t *testing.T) {
	empty := Filter(fixture(10), models.DateRange{Start: date("2020-01-01"), End: date("2020-12-31")})
	require.Equal(t, 0, empty.Len())

	require.NotNil(t, BySeason(empty))
	require.Empty(t, BySeason(empty))
	require.Empty(t, ByYear(empty))
	require.Empty(t, ByMonth(empty))
	require.Empty(t, ByWeekday(empty))
	require.NotNil(t, ByDay(empty))
	require.Empty(t, ByDay(empty))
	require.Zero(t, Total(empty))
}

func TestSortByKey(t *testing.T) {
	rows := ByMonth(fixture(365))
	asc := SortByKey(rows, false)
	for i, r := range asc {
		require.Equal(t, i+1, r.Key)
	}
	desc := SortByKey(rows, true)
	require.Equal(t, 12, desc[0].Key)
	require.Equal(t, 1, desc[11].Key)

	// input order untouched
	require.Equal(t, ByMonth(fixture(365)), rows)
}

func TestSumByWideKeys(t *testing.T) {
	rows := sumBy([]int32{0, 1 << 20, 0}, []int64{1, 5, 2}, models.YearLabel)
	require.Equal(t, []int{1 << 20, 0}, []int{rows[0].Key, rows[1].Key})
	require.EqualValues(t, 3, rows[1].Sum)
}
