package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/imanelbaz22-debug/serene-app/internal/analytics"
	"github.com/imanelbaz22-debug/serene-app/internal/genai"
	"github.com/imanelbaz22-debug/serene-app/internal/metrics"
	"github.com/imanelbaz22-debug/serene-app/internal/model"
	"github.com/imanelbaz22-debug/serene-app/internal/store"
)

const reportWindow = 7 * 24 * time.Hour

// ReportService writes the weekly wellness report.
type ReportService struct {
	store store.Store
	ai    Generator
	clock clockwork.Clock
	log   zerolog.Logger
}

func NewReportService(s store.Store, ai Generator, clock clockwork.Clock, log zerolog.Logger) *ReportService {
	return &ReportService{store: s, ai: ai, clock: clock, log: log}
}

// weekStats is the aggregate fed to the model.
type weekStats struct {
	AvgMood    float64
	AvgSleep   float64
	HasSleep   bool
	CheckIns   int
	ActiveDays int
}

func summarizeWeek(checkins []model.CheckIn) weekStats {
	st := weekStats{CheckIns: len(checkins)}
	var moodSum, sleepSum float64
	var sleepDays int
	for _, b := range analytics.BucketByDay(checkins) {
		st.ActiveDays++
		if m, ok := b.MeanMood(); ok {
			moodSum += m
		}
		if s, ok := b.MeanSleep(); ok {
			sleepSum += s
			sleepDays++
		}
	}
	if st.ActiveDays > 0 {
		st.AvgMood = moodSum / float64(st.ActiveDays)
	}
	if sleepDays > 0 {
		st.AvgSleep = sleepSum / float64(sleepDays)
		st.HasSleep = true
	}
	return st
}

func (st weekStats) prompt() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Average Mood: %.1f/10\n", st.AvgMood)
	if st.HasSleep {
		fmt.Fprintf(&sb, "Average Sleep: %.1f hours\n", st.AvgSleep)
	} else {
		sb.WriteString("Average Sleep: not tracked\n")
	}
	fmt.Fprintf(&sb, "Total Check-ins: %d\n", st.CheckIns)
	fmt.Fprintf(&sb, "Active Days: %d of 7\n", st.ActiveDays)
	return sb.String()
}

// Weekly summarizes the last seven days. AI failures never surface as errors;
// a canned report is returned instead.
func (s *ReportService) Weekly(ctx context.Context, userID string) (model.WeeklyReport, error) {
	since := s.clock.Now().Add(-reportWindow)
	checkins, err := s.store.CheckIns().ListSince(ctx, userID, &since)
	if err != nil {
		return model.WeeklyReport{}, err
	}
	if len(checkins) == 0 {
		return reportNoData, nil
	}
	st := summarizeWeek(checkins)

	raw, err := s.ai.Generate(ctx, genai.Request{
		UserID: userID,
		System: reportSystemPrompt,
		Turns:  []genai.Turn{{Role: model.RoleUser, Text: "User Data Summary:\n" + st.prompt()}},
		JSON:   true,
	})
	if err != nil {
		metrics.AIFallbacksTotal.WithLabelValues("report").Inc()
		if errors.Is(err, genai.ErrQuotaExceeded) {
			return reportQuota, nil
		}
		s.log.Warn().Err(err).Str("user_id", userID).Msg("weekly report generation failed")
		return reportGeneric(st.AvgMood), nil
	}

	var out struct {
		Summary flexText `json:"summary"`
		Win     flexText `json:"win"`
		Focus   flexText `json:"focus"`
	}
	if err := decodeModelJSON(raw, &out); err != nil || out.Summary == "" {
		metrics.AIFallbacksTotal.WithLabelValues("report").Inc()
		s.log.Warn().Err(err).Str("user_id", userID).Msg("weekly report was not usable json")
		return reportGeneric(st.AvgMood), nil
	}
	return model.WeeklyReport{Summary: string(out.Summary), Win: string(out.Win), Focus: string(out.Focus)}, nil
}
