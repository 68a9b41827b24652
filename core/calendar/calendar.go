// Package calendar maps dates to week buckets and back.
package calendar

import (
	"fmt"
	"time"

	"github.com/huangsam/confcast/schema"
)

// Policy numbers the weeks of a year.
type Policy interface {
	// Bucket returns the week containing t.
	Bucket(t time.Time) schema.Bucket

	// Range returns the first and last day of a bucket.
	Range(b schema.Bucket) (time.Time, time.Time)

	// Next returns the bucket after b.
	Next(b schema.Bucket) schema.Bucket

	// WeeksInYear returns the number of buckets in a year.
	WeeksInYear(year int) int
}

// PolicyFor returns the policy registered under name.
func PolicyFor(name schema.CalendarPolicy) (Policy, error) {
	switch name {
	case schema.CustomPolicy, "":
		return Custom{}, nil
	case schema.ISOPolicy:
		return ISO{}, nil
	default:
		return nil, fmt.Errorf("unknown calendar policy %q", name)
	}
}

func dateOf(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func addDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}
