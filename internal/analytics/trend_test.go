package analytics

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imanelbaz22-debug/serene-app/internal/model"
)

var now = time.Date(2026, 5, 20, 12, 0, 0, 0, time.UTC)

func moodAt(mood int, ts time.Time) model.CheckIn {
	return model.CheckIn{UserID: "u1", Mood: mood, Timestamp: ts}
}

func TestForecast_PerfectLinearTrend(t *testing.T) {
	var cs []model.CheckIn
	for i, m := range []int{4, 5, 6, 7} {
		cs = append(cs, moodAt(m, now.AddDate(0, 0, i-4)))
	}
	got, err := Forecast(cs, 30, now)
	require.NoError(t, err)
	assert.Equal(t, TrendResult{
		DaysUsed:          30,
		NumPoints:         4,
		NumActiveDays:     4,
		TrendSlope:        1.0,
		R2Score:           1.0,
		NextDayPrediction: 8.0,
	}, got)
}

func TestForecast_AveragesSameDayCheckIns(t *testing.T) {
	day := func(n int, hour int) time.Time {
		return time.Date(2026, 5, 10+n, hour, 0, 0, 0, time.UTC)
	}
	// daily means 4, 5, 6
	cs := []model.CheckIn{
		moodAt(2, day(0, 8)), moodAt(6, day(0, 20)),
		moodAt(5, day(1, 9)),
		moodAt(5, day(2, 7)), moodAt(7, day(2, 13)), moodAt(6, day(2, 22)),
	}
	got, err := Forecast(cs, 30, now)
	require.NoError(t, err)
	assert.Equal(t, 6, got.NumPoints)
	assert.Equal(t, 3, got.NumActiveDays)
	assert.Equal(t, 1.0, got.TrendSlope)
	assert.Equal(t, 1.0, got.R2Score)
	assert.Equal(t, 7.0, got.NextDayPrediction)
}

func TestForecast_ActivityGapsAreNotIndexGaps(t *testing.T) {
	cs := []model.CheckIn{
		moodAt(3, now.AddDate(0, 0, -20)),
		moodAt(5, now.AddDate(0, 0, -2)),
		moodAt(7, now.AddDate(0, 0, -1)),
	}
	got, err := Forecast(cs, 30, now)
	require.NoError(t, err)
	assert.Equal(t, 2.0, got.TrendSlope)
	assert.Equal(t, 9.0, got.NextDayPrediction)
}

func TestForecast_NoisyFitRounding(t *testing.T) {
	var cs []model.CheckIn
	for i, m := range []int{5, 7, 6, 8} {
		cs = append(cs, moodAt(m, now.AddDate(0, 0, i-4)))
	}
	got, err := Forecast(cs, 30, now)
	require.NoError(t, err)
	// slope = 4/5, intercept = 5.3, ssRes = 1.8, ssTot = 5
	assert.Equal(t, 0.8, got.TrendSlope)
	assert.Equal(t, 0.64, got.R2Score)
	assert.Equal(t, 8.5, got.NextDayPrediction)
}

func TestForecast_ConstantMood(t *testing.T) {
	cs := []model.CheckIn{
		moodAt(6, now.AddDate(0, 0, -3)),
		moodAt(6, now.AddDate(0, 0, -2)),
		moodAt(6, now.AddDate(0, 0, -1)),
	}
	got, err := Forecast(cs, 30, now)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got.TrendSlope)
	assert.Equal(t, 1.0, got.R2Score)
	assert.Equal(t, 6.0, got.NextDayPrediction)
}

func TestForecast_WindowFiltersOldCheckIns(t *testing.T) {
	cs := []model.CheckIn{
		moodAt(1, now.AddDate(0, 0, -40)),
		moodAt(1, now.AddDate(0, 0, -35)),
		moodAt(5, now.AddDate(0, 0, -3)),
		moodAt(6, now.AddDate(0, 0, -2)),
		moodAt(7, now.AddDate(0, 0, -1)),
	}
	got, err := Forecast(cs, 30, now)
	require.NoError(t, err)
	assert.Equal(t, 3, got.NumPoints)
	assert.Equal(t, 1.0, got.TrendSlope)
}

func TestForecast_InsufficientData(t *testing.T) {
	t.Run("no check-ins", func(t *testing.T) {
		_, err := Forecast(nil, 30, now)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInsufficientData))
		var ide *InsufficientDataError
		require.ErrorAs(t, err, &ide)
		assert.Equal(t, 0, ide.CheckIns)
		assert.Contains(t, err.Error(), "No check-ins found in last 30 days")
	})

	t.Run("only outside window", func(t *testing.T) {
		cs := []model.CheckIn{moodAt(5, now.AddDate(0, 0, -8)), moodAt(5, now.AddDate(0, 0, -9)), moodAt(5, now.AddDate(0, 0, -10))}
		_, err := Forecast(cs, 7, now)
		assert.ErrorIs(t, err, ErrInsufficientData)
	})

	t.Run("two active days many check-ins", func(t *testing.T) {
		var cs []model.CheckIn
		for h := 0; h < 12; h++ {
			cs = append(cs, moodAt(5, time.Date(2026, 5, 18, h, 0, 0, 0, time.UTC)))
			cs = append(cs, moodAt(7, time.Date(2026, 5, 19, h, 0, 0, 0, time.UTC)))
		}
		_, err := Forecast(cs, 30, now)
		var ide *InsufficientDataError
		require.ErrorAs(t, err, &ide)
		assert.Equal(t, 24, ide.CheckIns)
		assert.Equal(t, 2, ide.ActiveDays)
	})
}

func TestBucketByDay_MissingMetricHasNoAggregate(t *testing.T) {
	sleep := 6.0
	cs := []model.CheckIn{
		{Mood: 4, Timestamp: time.Date(2026, 5, 2, 9, 0, 0, 0, time.UTC), SleepHours: &sleep},
		{Mood: 8, Timestamp: time.Date(2026, 5, 2, 21, 0, 0, 0, time.UTC)},
		{Mood: 5, Timestamp: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)},
	}
	buckets := BucketByDay(cs)
	require.Len(t, buckets, 2)
	assert.Equal(t, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), buckets[0].Date)

	_, ok := buckets[0].MeanSleep()
	assert.False(t, ok)

	m, ok := buckets[1].MeanMood()
	require.True(t, ok)
	assert.Equal(t, 6.0, m)

	s, ok := buckets[1].MeanSleep()
	require.True(t, ok)
	assert.Equal(t, 6.0, s)
}
