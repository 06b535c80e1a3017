package analytics

import (
	"sort"
	"time"
)

// CurrentStreak counts consecutive active days ending at the most recent
// check-in date. The streak is broken (0) when that date is older than the
// day before today. Dates are compared as UTC calendar days; input order and
// duplicates do not matter.
func CurrentStreak(dates []time.Time, today time.Time) int {
	days := distinctDays(dates)
	if len(days) == 0 {
		return 0
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	yesterday := civilDay(today).AddDate(0, 0, -1)
	if days[0].Before(yesterday) {
		return 0
	}

	streak := 0
	expected := days[0]
	for _, d := range days {
		if !d.Equal(expected) {
			break
		}
		streak++
		expected = expected.AddDate(0, 0, -1)
	}
	return streak
}

// LongestStreak returns the longest run of consecutive active days.
func LongestStreak(dates []time.Time) int {
	days := distinctDays(dates)
	if len(days) == 0 {
		return 0
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i].Equal(days[i-1].AddDate(0, 0, 1)) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}

func distinctDays(dates []time.Time) []time.Time {
	seen := make(map[time.Time]struct{}, len(dates))
	out := make([]time.Time, 0, len(dates))
	for _, t := range dates {
		d := civilDay(t)
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	return out
}
