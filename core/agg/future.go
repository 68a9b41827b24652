package agg

import (
	"fmt"

	"github.com/huangsam/confcast/schema"
)

// ValidatePeriods checks that window lengths are positive and distinct.
func ValidatePeriods(periods []int) error {
	if len(periods) == 0 {
		return fmt.Errorf("at least one period is required")
	}
	seen := make(map[int]struct{}, len(periods))
	for _, p := range periods {
		if p <= 0 {
			return fmt.Errorf("period must be positive (received %d)", p)
		}
		if _, dup := seen[p]; dup {
			return fmt.Errorf("duplicate period %d", p)
		}
		seen[p] = struct{}{}
	}
	return nil
}

// Future computes, for each week i and period p, the sum of the p counts
// strictly after i. The sum is nil when fewer than p weeks follow i.
func Future(series []schema.WeekCount, periods []int) ([]schema.FutureRow, error) {
	if err := ValidatePeriods(periods); err != nil {
		return nil, err
	}

	// prefix[k] is the sum of the first k counts
	prefix := make([]int, len(series)+1)
	for i, wc := range series {
		prefix[i+1] = prefix[i] + wc.Count
	}

	rows := make([]schema.FutureRow, len(series))
	for i, wc := range series {
		windows := make([]schema.WindowCount, len(periods))
		for j, p := range periods {
			windows[j].Period = p
			if p < len(series)-i {
				sum := prefix[i+p+1] - prefix[i+1]
				windows[j].Sum = &sum
			}
		}
		rows[i] = schema.FutureRow{WeekCount: wc, Windows: windows}
	}
	return rows, nil
}
