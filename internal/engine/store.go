package engine

import (
	"bikeshare/internal/models"
	"sort"
	"time"

	"github.com/jinzhu/now"
)

// Table holds the daily rentals in Struct-of-Arrays format.
// Every column has the same length and rows are ordered by date.
type Table struct {
	Dates    []time.Time
	Seasons  []int32
	Years    []int32
	Months   []int32
	Weekdays []int32
	Counts   []int64
}

func newTable(n int) *Table {
	return &Table{
		Dates:    make([]time.Time, 0, n),
		Seasons:  make([]int32, 0, n),
		Years:    make([]int32, 0, n),
		Months:   make([]int32, 0, n),
		Weekdays: make([]int32, 0, n),
		Counts:   make([]int64, 0, n),
	}
}

// NewTable builds a table from records, sorted ascending by date.
func NewTable(records []models.RentalRecord) *Table {
	t := newTable(len(records))
	for _, r := range records {
		t.append(r)
	}
	sort.Stable(byDate{t})
	return t
}

func (t *Table) append(r models.RentalRecord) {
	t.Dates = append(t.Dates, day(r.Date))
	t.Seasons = append(t.Seasons, int32(r.Season))
	t.Years = append(t.Years, int32(r.Year))
	t.Months = append(t.Months, int32(r.Month))
	t.Weekdays = append(t.Weekdays, int32(r.Weekday))
	t.Counts = append(t.Counts, r.Count)
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Dates)
}

// Record returns row i as a RentalRecord.
func (t *Table) Record(i int) models.RentalRecord {
	return models.RentalRecord{
		Date:    t.Dates[i],
		Season:  int(t.Seasons[i]),
		Year:    int(t.Years[i]),
		Month:   int(t.Months[i]),
		Weekday: int(t.Weekdays[i]),
		Count:   t.Counts[i],
	}
}

// Records copies the table out as rows.
func (t *Table) Records() []models.RentalRecord {
	out := make([]models.RentalRecord, t.Len())
	for i := range out {
		out[i] = t.Record(i)
	}
	return out
}

// Bounds returns the first and last date of the table. ok is false when the
// table is empty.
func (t *Table) Bounds() (r models.DateRange, ok bool) {
	if t.Len() == 0 {
		return r, false
	}
	return models.DateRange{Start: t.Dates[0], End: t.Dates[len(t.Dates)-1]}, true
}

// slice returns rows [lo, hi) sharing the backing arrays. Capacities are
// capped so appends on the view never write into the parent.
func (t *Table) slice(lo, hi int) *Table {
	return &Table{
		Dates:    t.Dates[lo:hi:hi],
		Seasons:  t.Seasons[lo:hi:hi],
		Years:    t.Years[lo:hi:hi],
		Months:   t.Months[lo:hi:hi],
		Weekdays: t.Weekdays[lo:hi:hi],
		Counts:   t.Counts[lo:hi:hi],
	}
}

// byDate sorts every column together by the date column.
type byDate struct{ t *Table }

func (b byDate) Len() int           { return len(b.t.Dates) }
func (b byDate) Less(i, j int) bool { return b.t.Dates[i].Before(b.t.Dates[j]) }
func (b byDate) Swap(i, j int) {
	t := b.t
	t.Dates[i], t.Dates[j] = t.Dates[j], t.Dates[i]
	t.Seasons[i], t.Seasons[j] = t.Seasons[j], t.Seasons[i]
	t.Years[i], t.Years[j] = t.Years[j], t.Years[i]
	t.Months[i], t.Months[j] = t.Months[j], t.Months[i]
	t.Weekdays[i], t.Weekdays[j] = t.Weekdays[j], t.Weekdays[i]
	t.Counts[i], t.Counts[j] = t.Counts[j], t.Counts[i]
}

// day truncates ts to midnight UTC.
func day(ts time.Time) time.Time {
	return now.With(ts.UTC()).BeginningOfDay()
}
