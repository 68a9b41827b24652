package calendar

import (
	"fmt"
	"slices"
	"time"

	"github.com/huangsam/confcast/schema"
)

// Group holds the records that fall in one bucket.
type Group struct {
	Bucket  schema.Bucket
	Records []schema.Record
}

// DateOf returns the date stored in field, failing when it is absent or not
// a date.
func DateOf(rec schema.Record, field string) (time.Time, error) {
	v, ok := rec.Get(field)
	if !ok {
		return time.Time{}, fmt.Errorf("record has no field %s", field)
	}
	if v.Kind != schema.DateKind {
		return time.Time{}, fmt.Errorf("field %s holds %s, not a date", field, v.Kind)
	}
	return v.Date, nil
}

// SortByDate orders records by field ascending. Records on the same day keep
// their file order.
func SortByDate(records []schema.Record, field string) error {
	type dated struct {
		t   time.Time
		rec schema.Record
	}
	items := make([]dated, len(records))
	for i, rec := range records {
		t, err := DateOf(rec, field)
		if err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		items[i] = dated{t: t, rec: rec}
	}

	slices.SortStableFunc(items, func(a, b dated) int {
		return a.t.Compare(b.t)
	})
	for i := range items {
		records[i] = items[i].rec
	}
	return nil
}

// GroupByBucket partitions records by the bucket of their field date. Groups
// come back in chronological order and keep record order within a bucket.
func GroupByBucket(records []schema.Record, field string, p Policy) ([]Group, error) {
	index := make(map[schema.Bucket]int)
	var groups []Group
	for i, rec := range records {
		t, err := DateOf(rec, field)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		b := p.Bucket(t)
		pos, ok := index[b]
		if !ok {
			pos = len(groups)
			index[b] = pos
			groups = append(groups, Group{Bucket: b})
		}
		groups[pos].Records = append(groups[pos].Records, rec)
	}

	slices.SortFunc(groups, func(a, b Group) int {
		switch {
		case a.Bucket.Before(b.Bucket):
			return -1
		case b.Bucket.Before(a.Bucket):
			return 1
		default:
			return 0
		}
	})
	return groups, nil
}
