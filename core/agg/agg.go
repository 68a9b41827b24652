// Package agg has aggregation logic for weekly conference counts.
package agg

import (
	"errors"

	"github.com/huangsam/confcast/core/calendar"
	"github.com/huangsam/confcast/schema"
)

// ErrEmptySeries is returned when there is nothing to count.
var ErrEmptySeries = errors.New("no occupied buckets to count")

// CountByWeek turns occupied buckets into a dense series. Every week from the
// first to the last occupied bucket is present, with zero counts filled in.
// Groups must be in chronological order.
func CountByWeek(groups []calendar.Group, p calendar.Policy) ([]schema.WeekCount, error) {
	if len(groups) == 0 {
		return nil, ErrEmptySeries
	}

	counts := make(map[schema.Bucket]int, len(groups))
	for _, g := range groups {
		counts[g.Bucket] += len(g.Records)
	}
	first, last := groups[0].Bucket, groups[len(groups)-1].Bucket

	var series []schema.WeekCount
	for b := first; !last.Before(b); b = p.Next(b) {
		start, end := p.Range(b)
		series = append(series, schema.WeekCount{
			Bucket: b,
			Start:  start,
			End:    end,
			Count:  counts[b],
		})
	}
	return series, nil
}

// Total sums the counts of a series.
func Total(series []schema.WeekCount) int {
	total := 0
	for _, wc := range series {
		total += wc.Count
	}
	return total
}
