package services

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/imanelbaz22-debug/serene-app/internal/analytics"
	"github.com/imanelbaz22-debug/serene-app/internal/metrics"
	"github.com/imanelbaz22-debug/serene-app/internal/model"
	"github.com/imanelbaz22-debug/serene-app/internal/store"
)

// AnalyticsService answers trend, insight and streak queries for one user.
type AnalyticsService struct {
	store store.Store
	clock clockwork.Clock
}

func NewAnalyticsService(s store.Store, clock clockwork.Clock) *AnalyticsService {
	return &AnalyticsService{store: s, clock: clock}
}

// Forecast returns the mood trend over the last days days. Too little data
// yields an *analytics.InsufficientDataError.
func (s *AnalyticsService) Forecast(ctx context.Context, userID string, days int) (analytics.TrendResult, error) {
	now := s.clock.Now()
	since := now.Add(-time.Duration(days) * 24 * time.Hour)
	checkins, err := s.store.CheckIns().ListSince(ctx, userID, &since)
	if err != nil {
		return analytics.TrendResult{}, err
	}
	return analytics.Forecast(checkins, days, now)
}

// LatestInsights analyzes the user's most recent check-in.
// It returns model.ErrNotFound when there is none.
func (s *AnalyticsService) LatestInsights(ctx context.Context, userID string) (analytics.InsightResult, error) {
	latest, err := s.store.CheckIns().Latest(ctx, userID)
	if err != nil {
		return analytics.InsightResult{}, err
	}
	res := analytics.Analyze(*latest)
	for _, r := range res.Reasons {
		metrics.InsightReasonsTotal.WithLabelValues(r).Inc()
	}
	return res, nil
}

func (s *AnalyticsService) Streak(ctx context.Context, userID string) (model.Streak, error) {
	dates, err := s.store.CheckIns().Dates(ctx, userID)
	if err != nil {
		return model.Streak{}, err
	}
	return model.Streak{
		Current: analytics.CurrentStreak(dates, s.clock.Now()),
		Longest: analytics.LongestStreak(dates),
	}, nil
}
