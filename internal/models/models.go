package models

import (
	"strconv"
	"time"
)

// RentalRecord is one day of the base table.
type RentalRecord struct {
	Date    time.Time `json:"date"`
	Season  int       `json:"season"`
	Year    int       `json:"yr"`
	Month   int       `json:"mnth"`
	Weekday int       `json:"weekday"`
	Count   int64     `json:"cnt"`
}

// DateRange is an inclusive range of calendar days in UTC.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether d falls inside the range, bounds included.
func (r DateRange) Contains(d time.Time) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

type AggregateRow struct {
	Key   int    `json:"key"`
	Label string `json:"label"`
	Sum   int64  `json:"sum"`
}

type DailyRow struct {
	Date time.Time `json:"date"`
	Sum  int64     `json:"sum"`
}

// Dashboard carries every aggregate of one render cycle.
type Dashboard struct {
	Range       DateRange      `json:"range"`
	Bounds      DateRange      `json:"bounds"`
	Season      []AggregateRow `json:"by_season"`
	Year        []AggregateRow `json:"by_year"`
	Month       []AggregateRow `json:"by_month"`
	Weekday     []AggregateRow `json:"by_weekday"`
	Daily       []DailyRow     `json:"by_day"`
	TotalOrders int64          `json:"total_orders"`
	Empty       bool           `json:"empty"`
}

var seasonNames = map[int]string{1: "Spring", 2: "Summer", 3: "Fall", 4: "Winter"}

// BaseYear is the calendar year encoded as yr=0.
const BaseYear = 2011

func SeasonLabel(code int) string {
	if s, ok := seasonNames[code]; ok {
		return s
	}
	return strconv.Itoa(code)
}

// YearLabel maps the 0-based yr code to a calendar year. Codes that already
// hold a calendar year pass through.
func YearLabel(code int) string {
	if code >= BaseYear {
		return strconv.Itoa(code)
	}
	return strconv.Itoa(BaseYear + code)
}

func MonthLabel(code int) string {
	if code < 1 || code > 12 {
		return strconv.Itoa(code)
	}
	return time.Month(code).String()[:3]
}

func WeekdayLabel(code int) string {
	if code < 0 || code > 6 {
		return strconv.Itoa(code)
	}
	return time.Weekday(code).String()[:3]
}
