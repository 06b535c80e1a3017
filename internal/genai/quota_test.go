package genai

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
)

func TestDailyQuota_ResetsAtUTCMidnight(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2026, 4, 1, 23, 0, 0, 0, time.UTC))
	q := NewDailyQuota(2, clock)

	assert.True(t, q.Allow("u"))
	assert.True(t, q.Allow("u"))
	assert.False(t, q.Allow("u"))
	assert.Equal(t, 0, q.Remaining("u"))
	assert.Equal(t, 2, q.Remaining("v"))

	clock.Advance(2 * time.Hour)
	assert.Equal(t, 2, q.Remaining("u"))
	assert.True(t, q.Allow("u"))
	assert.Equal(t, 1, q.Remaining("u"))
}

func TestDailyQuota_Disabled(t *testing.T) {
	q := NewDailyQuota(0, nil)
	for i := 0; i < 1000; i++ {
		assert.True(t, q.Allow("u"))
	}
	assert.Equal(t, -1, q.Remaining("u"))
}
