package engine

import (
	"bikeshare/internal/models"
	"fmt"
	"sort"
	"time"
)

// NewDateRange truncates both bounds to the day in UTC and checks that
// start is not after end.
func NewDateRange(start, end time.Time) (models.DateRange, error) {
	r := models.DateRange{Start: day(start), End: day(end)}
	if r.Start.After(r.End) {
		return models.DateRange{}, ErrInvalidRange.New(fmt.Sprintf("start %s is after end %s",
			r.Start.Format(time.DateOnly), r.End.Format(time.DateOnly)))
	}
	return r, nil
}

// ParseDateRange parses YYYY-MM-DD bounds. An empty bound falls back to the
// matching side of defaults, which is how the date picker starts out.
func ParseDateRange(start, end string, defaults models.DateRange) (models.DateRange, error) {
	s, e := defaults.Start, defaults.End
	var err error
	if start != "" {
		if s, err = time.Parse(time.DateOnly, start); err != nil {
			return models.DateRange{}, ErrInvalidRange.New(fmt.Sprintf("start %q", start))
		}
	}
	if end != "" {
		if e, err = time.Parse(time.DateOnly, end); err != nil {
			return models.DateRange{}, ErrInvalidRange.New(fmt.Sprintf("end %q", end))
		}
	}
	return NewDateRange(s, e)
}

// Filter returns the rows with r.Start <= date <= r.End. The table is sorted
// by date so the match is one contiguous block, found by binary search. The
// result shares storage with t and must be treated as read-only.
func Filter(t *Table, r models.DateRange) *Table {
	if t.Len() == 0 {
		return newTable(0)
	}
	start, end := day(r.Start), day(r.End)
	lo := sort.Search(t.Len(), func(i int) bool { return !t.Dates[i].Before(start) })
	hi := sort.Search(t.Len(), func(i int) bool { return t.Dates[i].After(end) })
	if lo >= hi {
		return newTable(0)
	}
	return t.slice(lo, hi)
}
