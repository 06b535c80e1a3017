package analytics

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var today = time.Date(2026, 3, 14, 15, 30, 0, 0, time.UTC)

func daysAgo(n int) time.Time { return today.AddDate(0, 0, -n) }

func TestCurrentStreak(t *testing.T) {
	cases := []struct {
		name  string
		dates []time.Time
		want  int
	}{
		{"empty", nil, 0},
		{"today only", []time.Time{daysAgo(0)}, 1},
		{"three consecutive ending today", []time.Time{daysAgo(0), daysAgo(1), daysAgo(2)}, 3},
		{"ending yesterday still counts", []time.Time{daysAgo(1), daysAgo(2)}, 2},
		{"gap at today and yesterday", []time.Time{daysAgo(2), daysAgo(3)}, 0},
		{"gap inside run", []time.Time{daysAgo(0), daysAgo(1), daysAgo(3), daysAgo(4)}, 2},
		{"duplicates same day", []time.Time{today, today.Add(-time.Hour), daysAgo(1)}, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CurrentStreak(tc.dates, today))
		})
	}
}

func TestCurrentStreak_OrderIndependent(t *testing.T) {
	dates := []time.Time{daysAgo(0), daysAgo(1), daysAgo(2), daysAgo(3), daysAgo(6), daysAgo(7)}
	want := CurrentStreak(dates, today)
	assert.Equal(t, 4, want)

	r := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := append([]time.Time(nil), dates...)
		r.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		assert.Equal(t, want, CurrentStreak(shuffled, today))
	}
}

func TestCurrentStreak_UsesUTCCalendarDays(t *testing.T) {
	// 23:30 the previous day in UTC, even though it is "today" in UTC+2
	tz := time.FixedZone("UTC+2", 2*60*60)
	lateYesterday := time.Date(2026, 3, 14, 1, 30, 0, 0, tz)
	assert.Equal(t, 2, CurrentStreak([]time.Time{lateYesterday, daysAgo(2)}, today))
}

func TestLongestStreak(t *testing.T) {
	assert.Equal(t, 0, LongestStreak(nil))
	assert.Equal(t, 1, LongestStreak([]time.Time{daysAgo(5)}))
	dates := []time.Time{daysAgo(0), daysAgo(10), daysAgo(11), daysAgo(12), daysAgo(13), daysAgo(1), daysAgo(12)}
	assert.Equal(t, 4, LongestStreak(dates))
}
