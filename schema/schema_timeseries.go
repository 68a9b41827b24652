package schema

import (
	"fmt"
	"strconv"
	"time"
)

// Bucket is a (year, week) key produced by a calendar policy.
type Bucket struct {
	Year int `json:"year"`
	Week int `json:"week"`
}

// Before reports whether b sorts strictly before o.
func (b Bucket) Before(o Bucket) bool {
	if b.Year != o.Year {
		return b.Year < o.Year
	}
	return b.Week < o.Week
}

// String renders the bucket as YYYY-Www.
func (b Bucket) String() string {
	return fmt.Sprintf("%04d-W%02d", b.Year, b.Week)
}

// WeekCount is one entry of the dense weekly series.
type WeekCount struct {
	Bucket Bucket
	Start  time.Time
	End    time.Time
	Count  int
}

// WindowCount is the forward sum over Period weeks. Sum is nil when the window
// runs past the end of the series.
type WindowCount struct {
	Period int
	Sum    *int
}

// Defined reports whether the window could be computed.
func (w WindowCount) Defined() bool { return w.Sum != nil }

// FutureRow carries a week's own count plus its forward window sums.
type FutureRow struct {
	WeekCount
	Windows []WindowCount
}

// Stamp formats a bucket boundary as YYYYMMDD.
func Stamp(t time.Time) string { return t.Format(StampLayout) }

// StampRange formats the YYYYMMDD-YYYYMMDD token used to join series rows.
func StampRange(start, end time.Time) string { return Stamp(start) + "-" + Stamp(end) }

// WeeklyHeader returns the column names of the weekly series.
func WeeklyHeader() []string {
	return []string{"week_start", "week_end", "count"}
}

// FutureHeader returns the column names of the future series for periods.
func FutureHeader(periods []int) []string {
	header := []string{"week_start", "week_end", "count_0wk"}
	for _, p := range periods {
		header = append(header, "count_"+strconv.Itoa(p)+"wk")
	}
	return header
}

// FormatSum renders an optional window sum, empty when undefined.
func FormatSum(sum *int) string {
	if sum == nil {
		return ""
	}
	return strconv.Itoa(*sum)
}
