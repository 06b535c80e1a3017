package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imanelbaz22-debug/serene-app/internal/analytics"
	"github.com/imanelbaz22-debug/serene-app/internal/genai"
	"github.com/imanelbaz22-debug/serene-app/internal/model"
	"github.com/imanelbaz22-debug/serene-app/internal/store"
	"github.com/imanelbaz22-debug/serene-app/internal/store/sqlite"
)

type fakeGenerator struct {
	text  string
	err   error
	calls []genai.Request
}

func (f *fakeGenerator) Generate(_ context.Context, req genai.Request) (string, error) {
	f.calls = append(f.calls, req)
	return f.text, f.err
}

type fixture struct {
	store store.Store
	clock *clockwork.FakeClock
	ai    *fakeGenerator
	user  string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := sqlite.Open(sqlite.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, sqlite.EnsureSchema(context.Background(), db))
	s := sqlite.NewWithDB(db)

	u, err := s.Users().GetOrCreateByExternalID(context.Background(), "ext_1", nil)
	require.NoError(t, err)
	return &fixture{
		store: s,
		clock: clockwork.NewFakeClockAt(time.Date(2026, 6, 10, 18, 0, 0, 0, time.UTC)),
		ai:    &fakeGenerator{},
		user:  u.UserID,
	}
}

func (f *fixture) checkIn(t *testing.T, mood int, daysAgo int, sleep *float64) {
	t.Helper()
	_, err := f.store.CheckIns().Create(context.Background(), &model.CheckIn{
		UserID:     f.user,
		Mood:       mood,
		SleepHours: sleep,
		Timestamp:  f.clock.Now().AddDate(0, 0, -daysAgo),
	})
	require.NoError(t, err)
}

func TestCheckInService_StampsCurrentTime(t *testing.T) {
	f := newFixture(t)
	svc := NewCheckInService(f.store, f.clock)

	out, err := svc.Create(context.Background(), &model.CheckIn{UserID: f.user, Mood: 7})
	require.NoError(t, err)
	assert.NotEmpty(t, out.ID)
	assert.True(t, out.Timestamp.Equal(f.clock.Now()))
}

func TestAnalyticsService(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := NewAnalyticsService(f.store, f.clock)

	_, err := svc.LatestInsights(ctx, f.user)
	assert.True(t, model.IsNotFoundError(err))

	_, err = svc.Forecast(ctx, f.user, 30)
	assert.ErrorIs(t, err, analytics.ErrInsufficientData)

	for i, m := range []int{4, 5, 6} {
		f.checkIn(t, m, 2-i, nil)
	}

	trend, err := svc.Forecast(ctx, f.user, 30)
	require.NoError(t, err)
	assert.Equal(t, 1.0, trend.TrendSlope)
	assert.Equal(t, 7.0, trend.NextDayPrediction)

	streak, err := svc.Streak(ctx, f.user)
	require.NoError(t, err)
	assert.Equal(t, model.Streak{Current: 3, Longest: 3}, streak)

	insights, err := svc.LatestInsights(ctx, f.user)
	require.NoError(t, err)
	assert.NotNil(t, insights.Reasons)
}

func TestReportService_Weekly(t *testing.T) {
	ctx := context.Background()
	sleep := 6.0

	t.Run("no data skips the model", func(t *testing.T) {
		f := newFixture(t)
		got, err := NewReportService(f.store, f.ai, f.clock, zerolog.Nop()).Weekly(ctx, f.user)
		require.NoError(t, err)
		assert.Equal(t, reportNoData, got)
		assert.Empty(t, f.ai.calls)
	})

	t.Run("model answer", func(t *testing.T) {
		f := newFixture(t)
		f.checkIn(t, 6, 1, &sleep)
		f.checkIn(t, 8, 0, nil)
		f.checkIn(t, 1, 10, nil)
		f.ai.text = "```json\n{\"summary\":\"Solid week\",\"win\":\"Consistency\",\"focus\":\"Sleep\"}\n```"

		got, err := NewReportService(f.store, f.ai, f.clock, zerolog.Nop()).Weekly(ctx, f.user)
		require.NoError(t, err)
		assert.Equal(t, model.WeeklyReport{Summary: "Solid week", Win: "Consistency", Focus: "Sleep"}, got)

		require.Len(t, f.ai.calls, 1)
		req := f.ai.calls[0]
		assert.True(t, req.JSON)
		assert.Equal(t, f.user, req.UserID)
		assert.Contains(t, req.Turns[0].Text, "Average Mood: 7.0/10")
		assert.Contains(t, req.Turns[0].Text, "Average Sleep: 6.0 hours")
		assert.Contains(t, req.Turns[0].Text, "Total Check-ins: 2")
	})

	t.Run("quota", func(t *testing.T) {
		f := newFixture(t)
		f.checkIn(t, 6, 0, nil)
		f.ai.err = genai.ErrQuotaExceeded
		got, err := NewReportService(f.store, f.ai, f.clock, zerolog.Nop()).Weekly(ctx, f.user)
		require.NoError(t, err)
		assert.Equal(t, reportQuota, got)
	})

	t.Run("bad json", func(t *testing.T) {
		f := newFixture(t)
		f.checkIn(t, 5, 0, nil)
		f.checkIn(t, 6, 1, nil)
		f.ai.text = "not json"
		got, err := NewReportService(f.store, f.ai, f.clock, zerolog.Nop()).Weekly(ctx, f.user)
		require.NoError(t, err)
		assert.Equal(t, "Your week had an average mood of 5.5. You're doing your best!", got.Summary)
	})
}

func TestJournalService_Create(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		name string
		text string
		err  error
		want model.JournalAnalysis
	}{
		{"string advice", `{"summary":"s","advice":"• a\n• b"}`, nil, model.JournalAnalysis{Summary: "s", Advice: "• a\n• b"}},
		{"list advice", `{"summary":"s","advice":["a","• b"]}`, nil, model.JournalAnalysis{Summary: "s", Advice: "• a\n• b"}},
		{"invalid json", `{"summary":`, nil, journalInvalidFallback},
		{"quota", "", genai.ErrQuotaExceeded, journalQuotaFallback},
		{"empty", "", genai.ErrEmptyResponse, journalEmptyFallback},
		{"provider error", "", &genai.APIError{StatusCode: 500}, journalEmptyFallback},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			f.ai.text, f.ai.err = tc.text, tc.err
			svc := NewJournalService(f.store, f.ai, f.clock, zerolog.Nop())

			e, err := svc.Create(ctx, f.user, "long day")
			require.NoError(t, err)
			require.NotNil(t, e.Summary)
			require.NotNil(t, e.Advice)
			assert.Equal(t, tc.want, model.JournalAnalysis{Summary: *e.Summary, Advice: *e.Advice})
		})
	}
}

func TestJournalService_HistoryAndDelete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.ai.text = `{"summary":"s","advice":"a"}`
	journal := NewJournalService(f.store, f.ai, f.clock, zerolog.Nop())
	chat := NewChatService(f.store, f.ai, f.clock, zerolog.Nop())

	e, err := journal.Create(ctx, f.user, "first entry")
	require.NoError(t, err)
	f.clock.Advance(time.Minute)
	_, err = chat.Reply(ctx, f.user, "hi")
	require.NoError(t, err)

	items, err := journal.History(ctx, f.user)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, model.HistoryChat, items[0].Type)
	assert.Equal(t, model.RoleModel, items[0].Role)
	assert.Equal(t, model.RoleUser, items[1].Role)
	assert.Equal(t, "journal_"+e.EntryID, items[2].ID)
	assert.Equal(t, e.EntryID, items[2].DBID)

	require.NoError(t, journal.Delete(ctx, f.user, e.EntryID))
	assert.True(t, model.IsNotFoundError(journal.Delete(ctx, f.user, e.EntryID)))
}

func TestChatService_Greeting(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := NewChatService(f.store, f.ai, f.clock, zerolog.Nop())

	got, err := svc.Reply(ctx, f.user, "  Thank you!! ")
	require.NoError(t, err)
	assert.Equal(t, greetings["thank you"], got)
	assert.Empty(t, f.ai.calls)

	msgs, err := f.store.Chat().List(ctx, f.user)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, model.RoleUser, msgs[0].Role)
	assert.Equal(t, got, msgs[1].Content)
}

func TestChatService_SendsHistoryAndJournalContext(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, err := f.store.Journal().Create(ctx, &model.JournalEntry{UserID: f.user, Content: "rough week", Timestamp: f.clock.Now()})
	require.NoError(t, err)
	svc := NewChatService(f.store, f.ai, f.clock, zerolog.Nop())

	f.ai.text = "first answer"
	_, err = svc.Reply(ctx, f.user, "what should I do")
	require.NoError(t, err)
	f.ai.text = "second answer"
	got, err := svc.Reply(ctx, f.user, "and then?")
	require.NoError(t, err)
	assert.Equal(t, "second answer", got)

	require.Len(t, f.ai.calls, 2)
	turns := f.ai.calls[1].Turns
	require.Len(t, turns, 5)
	assert.Contains(t, turns[0].Text, "- [2026-06-10 18:00] rough week")
	assert.Equal(t, journalContextAck, turns[1].Text)
	assert.Equal(t, genai.Turn{Role: model.RoleUser, Text: "what should I do"}, turns[2])
	assert.Equal(t, genai.Turn{Role: model.RoleModel, Text: "first answer"}, turns[3])
	assert.Equal(t, "and then?", turns[4].Text)
	assert.Equal(t, chatSystemPrompt, f.ai.calls[1].System)
}

func TestChatService_Fallbacks(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		name    string
		err     error
		message string
		want    string
	}{
		{"quota work", genai.ErrQuotaExceeded, "my boss is awful", "Pomodoro"},
		{"quota sleep", genai.ErrQuotaExceeded, "I can't sleep", "4-7-8"},
		{"quota relationship first", genai.ErrQuotaExceeded, "fight about work", "relationship stress"},
		{"quota negative", genai.ErrQuotaExceeded, "I feel so sad", "rough time"},
		{"quota neutral", genai.ErrQuotaExceeded, "tell me a story", "Lite Mode"},
		{"other error", errors.New("boom"), "tell me a story", snagReply},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			f.ai.err = tc.err
			got, err := NewChatService(f.store, f.ai, f.clock, zerolog.Nop()).Reply(ctx, f.user, tc.message)
			require.NoError(t, err)
			assert.Contains(t, got, tc.want)
			if errors.Is(tc.err, genai.ErrQuotaExceeded) {
				assert.True(t, len(got) > len(liteModeIntro))
				assert.Equal(t, liteModeIntro, got[:len(liteModeIntro)])
			}
		})
	}
}

func TestStripFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripFences(`  {"a":1} `))
}
