package analytics

import (
	"sort"
	"time"

	"github.com/imanelbaz22-debug/serene-app/internal/model"
)

// DailyBucket groups the raw metric values of one UTC calendar day.
type DailyBucket struct {
	Date     time.Time
	Moods    []float64
	Energies []float64
	Sleeps   []float64
}

// MeanMood returns the average mood of the day; ok is false for an empty bucket.
func (b DailyBucket) MeanMood() (float64, bool) { return mean(b.Moods) }

// MeanEnergy returns the average of the energy values recorded that day.
func (b DailyBucket) MeanEnergy() (float64, bool) { return mean(b.Energies) }

// MeanSleep returns the average of the sleep values recorded that day.
func (b DailyBucket) MeanSleep() (float64, bool) { return mean(b.Sleeps) }

// BucketByDay groups check-ins by UTC calendar date, oldest day first.
func BucketByDay(checkins []model.CheckIn) []DailyBucket {
	byDay := make(map[time.Time]*DailyBucket)
	for _, c := range checkins {
		day := civilDay(c.Timestamp)
		b, ok := byDay[day]
		if !ok {
			b = &DailyBucket{Date: day}
			byDay[day] = b
		}
		b.Moods = append(b.Moods, float64(c.Mood))
		if c.Energy != nil {
			b.Energies = append(b.Energies, float64(*c.Energy))
		}
		if c.SleepHours != nil {
			b.Sleeps = append(b.Sleeps, *c.SleepHours)
		}
	}

	out := make([]DailyBucket, 0, len(byDay))
	for _, b := range byDay {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// civilDay truncates t to midnight of its UTC calendar date.
func civilDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mean(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), true
}
