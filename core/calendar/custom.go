package calendar

import (
	"time"

	"github.com/huangsam/confcast/schema"
)

// WeeksPerYear is the fixed bucket count of the custom calendar.
const WeeksPerYear = 52

// Custom starts week 1 on January 1. Days past the 52nd full week are folded
// into week 52, so every year has exactly 52 buckets.
type Custom struct{}

func customWeek(t time.Time) (int, int) {
	days := t.YearDay() - 1
	week, dow := days/7+1, days%7+1
	if week > WeeksPerYear {
		week = WeeksPerYear
		dow += 7
	}
	return week, dow
}

// Bucket implements Policy.
func (Custom) Bucket(t time.Time) schema.Bucket {
	week, _ := customWeek(t)
	return schema.Bucket{Year: t.Year(), Week: week}
}

// DayOfWeek returns the 1-based position of t inside its week. Folded days
// at the end of the year report 8 or 9.
func (Custom) DayOfWeek(t time.Time) int {
	_, dow := customWeek(t)
	return dow
}

// Range implements Policy. Week 52 ends on December 31.
func (Custom) Range(b schema.Bucket) (time.Time, time.Time) {
	start := addDays(dateOf(b.Year, time.January, 1), 7*(b.Week-1))
	if b.Week >= WeeksPerYear {
		return start, dateOf(b.Year, time.December, 31)
	}
	return start, addDays(start, 6)
}

// Next implements Policy.
func (Custom) Next(b schema.Bucket) schema.Bucket {
	if b.Week >= WeeksPerYear {
		return schema.Bucket{Year: b.Year + 1, Week: 1}
	}
	return schema.Bucket{Year: b.Year, Week: b.Week + 1}
}

// WeeksInYear implements Policy.
func (Custom) WeeksInYear(int) int { return WeeksPerYear }
