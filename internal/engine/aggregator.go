package engine

import (
	"bikeshare/internal/models"
	"sort"
)

// Keys spread wider than this are summed through a map instead of a dense
// array.
const maxDenseKeys = 1 << 16

func BySeason(t *Table) []models.AggregateRow {
	return sumBy(t.Seasons, t.Counts, models.SeasonLabel)
}

func ByYear(t *Table) []models.AggregateRow {
	return sumBy(t.Years, t.Counts, models.YearLabel)
}

func ByMonth(t *Table) []models.AggregateRow {
	return sumBy(t.Months, t.Counts, models.MonthLabel)
}

func ByWeekday(t *Table) []models.AggregateRow {
	return sumBy(t.Weekdays, t.Counts, models.WeekdayLabel)
}

// ByDay sums counts per calendar day in chronological order. It feeds the
// time-series chart and is never re-ordered by sum.
func ByDay(t *Table) []models.DailyRow {
	rows := make([]models.DailyRow, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		d := t.Dates[i]
		if n := len(rows); n > 0 && rows[n-1].Date.Equal(d) {
			rows[n-1].Sum += t.Counts[i]
			continue
		}
		rows = append(rows, models.DailyRow{Date: d, Sum: t.Counts[i]})
	}
	return rows
}

// Total is the sum of counts over the whole table.
func Total(t *Table) int64 {
	var n int64
	for i := 0; i < t.Len(); i++ {
		n += t.Counts[i]
	}
	return n
}

// SortByKey returns a copy of rows ordered by key.
func SortByKey(rows []models.AggregateRow, desc bool) []models.AggregateRow {
	out := make([]models.AggregateRow, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return out[i].Key > out[j].Key
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// sumBy groups counts by key. Rows come out highest sum first; equal sums
// keep ascending key order.
func sumBy(keys []int32, counts []int64, label func(int) string) []models.AggregateRow {
	rows := make([]models.AggregateRow, 0)
	if len(keys) == 0 {
		return rows
	}

	// 1. Dimensions
	lo, hi := keys[0], keys[0]
	for _, k := range keys {
		if k < lo {
			lo = k
		}
		if k > hi {
			hi = k
		}
	}

	// 2. Sum. Array indexing on (key - lo) when the spread is small.
	if int64(hi)-int64(lo) < maxDenseKeys {
		sums := make([]int64, int(hi-lo)+1)
		seen := make([]bool, len(sums))
		for j, k := range keys {
			idx := k - lo
			sums[idx] += counts[j]
			seen[idx] = true
		}
		for i, s := range sums {
			if seen[i] {
				key := int(lo) + i
				rows = append(rows, models.AggregateRow{Key: key, Label: label(key), Sum: s})
			}
		}
	} else {
		sums := make(map[int32]int64)
		for j, k := range keys {
			sums[k] += counts[j]
		}
		for k, s := range sums {
			rows = append(rows, models.AggregateRow{Key: int(k), Label: label(int(k)), Sum: s})
		}
		sort.Slice(rows, func(i, j int) bool { return rows[i].Key < rows[j].Key })
	}

	// 3. Sort
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Sum > rows[j].Sum })
	return rows
}
