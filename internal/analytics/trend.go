package analytics

import (
	"math"
	"time"

	"github.com/imanelbaz22-debug/serene-app/internal/model"
)

// DefaultTrendDays is the lookback window used when a caller gives none.
const DefaultTrendDays = 30

// TrendResult is a linear mood trend over a user's active days.
type TrendResult struct {
	DaysUsed          int     `json:"days_used"`
	NumPoints         int     `json:"num_points"`
	NumActiveDays     int     `json:"num_active_days"`
	TrendSlope        float64 `json:"trend_slope"`
	R2Score           float64 `json:"r2_score"`
	NextDayPrediction float64 `json:"next_day_prediction"`
}

// Forecast fits mood ≈ slope·x + intercept over the daily mean moods of the
// last `days` days, where x is the index of the active day (gaps in activity
// are not gaps in x), and predicts the value one active day ahead.
//
// checkins must belong to a single user. now anchors the window.
func Forecast(checkins []model.CheckIn, days int, now time.Time) (TrendResult, error) {
	cutoff := now.Add(-time.Duration(days) * 24 * time.Hour)

	inWindow := make([]model.CheckIn, 0, len(checkins))
	for _, c := range checkins {
		if !c.Timestamp.Before(cutoff) {
			inWindow = append(inWindow, c)
		}
	}
	if len(inWindow) == 0 {
		return TrendResult{}, &InsufficientDataError{Days: days}
	}

	buckets := BucketByDay(inWindow)
	ys := make([]float64, 0, len(buckets))
	for _, b := range buckets {
		if m, ok := b.MeanMood(); ok {
			ys = append(ys, m)
		}
	}
	if len(ys) < MinActiveDays {
		return TrendResult{}, &InsufficientDataError{Days: days, CheckIns: len(inWindow), ActiveDays: len(ys)}
	}

	fit := fitLine(ys)
	return TrendResult{
		DaysUsed:          days,
		NumPoints:         len(inWindow),
		NumActiveDays:     len(ys),
		TrendSlope:        round(fit.slope, 3),
		R2Score:           round(fit.r2, 3),
		NextDayPrediction: round(fit.predict(float64(len(ys))), 2),
	}, nil
}

type lineFit struct {
	slope     float64
	intercept float64
	r2        float64
}

func (f lineFit) predict(x float64) float64 { return f.slope*x + f.intercept }

// fitLine performs ordinary least squares of ys against x = 0..n-1.
// Requires len(ys) >= 2.
func fitLine(ys []float64) lineFit {
	n := float64(len(ys))
	meanX := (n - 1) / 2
	meanY, _ := mean(ys)

	var sxx, sxy float64
	for i, y := range ys {
		dx := float64(i) - meanX
		sxx += dx * dx
		sxy += dx * (y - meanY)
	}
	f := lineFit{slope: sxy / sxx}
	f.intercept = meanY - f.slope*meanX

	var ssRes, ssTot float64
	for i, y := range ys {
		r := y - f.predict(float64(i))
		ssRes += r * r
		ssTot += (y - meanY) * (y - meanY)
	}
	switch {
	case ssTot > 0:
		f.r2 = 1 - ssRes/ssTot
	case ssRes == 0:
		// constant series, fitted exactly
		f.r2 = 1
	}
	return f
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
