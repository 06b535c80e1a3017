package genai

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// DailyQuota caps provider calls per user per UTC day.
// A non-positive limit disables the guard.
type DailyQuota struct {
	limit int
	clock clockwork.Clock

	mu     sync.Mutex
	day    time.Time
	counts map[string]int
}

func NewDailyQuota(limit int, clock clockwork.Clock) *DailyQuota {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &DailyQuota{limit: limit, clock: clock, counts: make(map[string]int)}
}

// Allow records one call for userID and reports whether it is within quota.
func (q *DailyQuota) Allow(userID string) bool {
	if q == nil || q.limit <= 0 {
		return true
	}
	now := q.clock.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	q.mu.Lock()
	defer q.mu.Unlock()
	if !today.Equal(q.day) {
		q.day = today
		q.counts = make(map[string]int)
	}
	if q.counts[userID] >= q.limit {
		return false
	}
	q.counts[userID]++
	return true
}

// Remaining returns how many calls userID has left today.
func (q *DailyQuota) Remaining(userID string) int {
	if q == nil || q.limit <= 0 {
		return -1
	}
	now := q.clock.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	q.mu.Lock()
	defer q.mu.Unlock()
	if !today.Equal(q.day) {
		return q.limit
	}
	return q.limit - q.counts[userID]
}
