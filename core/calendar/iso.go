package calendar

import (
	"time"

	"github.com/huangsam/confcast/schema"
)

// ISO numbers weeks per ISO-8601. Week 1 holds the year's first Thursday.
type ISO struct{}

// Bucket implements Policy.
func (ISO) Bucket(t time.Time) schema.Bucket {
	year, week := t.ISOWeek()
	return schema.Bucket{Year: year, Week: week}
}

// Range implements Policy.
func (ISO) Range(b schema.Bucket) (time.Time, time.Time) {
	jan4 := dateOf(b.Year, time.January, 4)
	offset := (int(jan4.Weekday()) + 6) % 7 // days since Monday
	start := addDays(jan4, 7*(b.Week-1)-offset)
	return start, addDays(start, 6)
}

// Next implements Policy.
func (p ISO) Next(b schema.Bucket) schema.Bucket {
	if b.Week >= p.WeeksInYear(b.Year) {
		return schema.Bucket{Year: b.Year + 1, Week: 1}
	}
	return schema.Bucket{Year: b.Year, Week: b.Week + 1}
}

// WeeksInYear implements Policy. December 28 always falls in the last week.
func (ISO) WeeksInYear(year int) int {
	_, week := dateOf(year, time.December, 28).ISOWeek()
	return week
}
