package engine

import (
	"bikeshare/internal/models"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/csv"
	"github.com/apache/arrow/go/v18/arrow/memory"
)

// Column names of the cleaned daily dataset.
const (
	ColDate    = "dteday"
	ColSeason  = "season"
	ColYear    = "yr"
	ColMonth   = "mnth"
	ColWeekday = "weekday"
	ColCount   = "cnt"
)

var columns = []string{ColDate, ColSeason, ColYear, ColMonth, ColWeekday, ColCount}

var columnTypes = map[string]arrow.DataType{
	ColDate:    arrow.BinaryTypes.String,
	ColSeason:  arrow.PrimitiveTypes.Int64,
	ColYear:    arrow.PrimitiveTypes.Int64,
	ColMonth:   arrow.PrimitiveTypes.Int64,
	ColWeekday: arrow.PrimitiveTypes.Int64,
	ColCount:   arrow.PrimitiveTypes.Int64,
}

// Accepted dteday layouts. The second one is what pandas writes after
// to_datetime.
var dateLayouts = []string{
	time.DateOnly,
	time.DateTime,
	time.RFC3339,
}

const chunkRows = 512

// Source provides the base table for one render cycle.
type Source interface {
	Load(ctx context.Context) (*Table, error)
}

// FileSource reads the dataset from a CSV file on every Load.
type FileSource struct {
	Path string
}

func (f FileSource) Load(ctx context.Context) (*Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Load(f.Path)
}

// Load reads the CSV at path into a date-sorted Table.
func Load(path string) (*Table, error) {
	start := time.Now()
	file, err := os.Open(path)
	if err != nil {
		return nil, ErrDataUnavailable.Wrap(err, path)
	}
	defer file.Close()

	t, err := LoadReader(file)
	if err != nil {
		return nil, err
	}
	slog.Debug("Loaded dataset", "path", path, "rows", t.Len(), "elapsed", time.Since(start))
	return t, nil
}

// LoadReader decodes CSV data with a header row. Only the dashboard columns
// are materialised; any other column is skipped by the reader.
func LoadReader(r io.Reader) (t *Table, err error) {
	// The inferring reader panics on a header without data rows.
	defer func() {
		if p := recover(); p != nil {
			t, err = nil, ErrDataUnavailable.New(fmt.Sprintf("no rows (%v)", p))
		}
	}()

	reader := csv.NewInferringReader(r,
		csv.WithAllocator(memory.NewGoAllocator()),
		csv.WithHeader(true),
		csv.WithChunk(chunkRows),
		csv.WithIncludeColumns(columns),
		csv.WithColumnTypes(columnTypes),
	)
	defer reader.Release()

	t = newTable(chunkRows)
	row := 0
	for reader.Next() {
		if err := t.appendRecord(reader.Record(), row); err != nil {
			return nil, err
		}
		row += int(reader.Record().NumRows())
	}
	if err = reader.Err(); err != nil {
		return nil, ErrDataUnavailable.Wrap(err, "reading csv")
	}
	if t.Len() == 0 {
		return nil, ErrDataUnavailable.New("no rows")
	}

	// Normalise: chronological order for every consumer
	sort.Stable(byDate{t})
	return t, nil
}

// appendRecord copies one arrow record batch into the table. base is the
// number of data rows already consumed, used for error positions.
func (t *Table) appendRecord(rec arrow.Record, base int) error {
	idx := make(map[string]int, len(columns))
	for _, name := range columns {
		fi := rec.Schema().FieldIndices(name)
		if len(fi) == 0 {
			return ErrDataUnavailable.New(fmt.Sprintf("missing column %q", name))
		}
		idx[name] = fi[0]
	}

	dates, ok := rec.Column(idx[ColDate]).(*array.String)
	if !ok {
		return ErrDataUnavailable.New(fmt.Sprintf("column %q is not text", ColDate))
	}
	ints := make(map[string]*array.Int64, len(columns)-1)
	for _, name := range columns[1:] {
		a, ok := rec.Column(idx[name]).(*array.Int64)
		if !ok {
			return ErrDataUnavailable.New(fmt.Sprintf("column %q is not an integer", name))
		}
		ints[name] = a
	}

	for i := 0; i < int(rec.NumRows()); i++ {
		line := base + i + 1
		if dates.IsNull(i) {
			return ErrMalformedDate.New("", line)
		}
		d, err := parseDate(dates.Value(i))
		if err != nil {
			return ErrMalformedDate.New(dates.Value(i), line)
		}
		for _, name := range columns[1:] {
			if ints[name].IsNull(i) {
				return ErrDataUnavailable.New(fmt.Sprintf("missing or non-integer %s on row %d", name, line))
			}
		}
		cnt := ints[ColCount].Value(i)
		if cnt < 0 {
			return ErrDataUnavailable.New(fmt.Sprintf("negative %s on row %d", ColCount, line))
		}
		t.append(models.RentalRecord{
			Date:    d,
			Season:  int(ints[ColSeason].Value(i)),
			Year:    int(ints[ColYear].Value(i)),
			Month:   int(ints[ColMonth].Value(i)),
			Weekday: int(ints[ColWeekday].Value(i)),
			Count:   cnt,
		})
	}
	return nil
}

func parseDate(s string) (time.Time, error) {
	var err error
	for _, layout := range dateLayouts {
		var d time.Time
		if d, err = time.Parse(layout, s); err == nil {
			return day(d), nil
		}
	}
	return time.Time{}, err
}
