package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imanelbaz22-debug/serene-app/internal/model"
	"github.com/imanelbaz22-debug/serene-app/internal/store"
)

// Run exercises the compliance suite against a store.Store implementation.
// makeStore may return a shared store; every subtest uses fresh user ids.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	s := makeStore(t)

	t.Run("Users", func(t *testing.T) { testUsers(t, s) })
	t.Run("CheckIns", func(t *testing.T) { testCheckIns(t, s) })
	t.Run("Journal", func(t *testing.T) { testJournal(t, s) })
	t.Run("Chat", func(t *testing.T) { testChat(t, s) })
}

func newUser(t *testing.T, s store.Store) *model.User {
	t.Helper()
	u, err := s.Users().GetOrCreateByExternalID(context.Background(), "ext-"+uuid.New().String(), nil)
	require.NoError(t, err)
	return u
}

func testUsers(t *testing.T, s store.Store) {
	ctx := context.Background()
	ext := "ext-" + uuid.New().String()
	name := "MockBestie"

	u1, err := s.Users().GetOrCreateByExternalID(ctx, ext, &name)
	require.NoError(t, err)
	require.NotEmpty(t, u1.UserID)
	assert.Equal(t, ext, u1.ExternalID)
	require.NotNil(t, u1.Username)
	assert.Equal(t, name, *u1.Username)
	assert.False(t, u1.CreationTime.IsZero())

	// second call returns the same row
	u2, err := s.Users().GetOrCreateByExternalID(ctx, ext, nil)
	require.NoError(t, err)
	assert.Equal(t, u1.UserID, u2.UserID)

	got, err := s.Users().Get(ctx, u1.UserID)
	require.NoError(t, err)
	assert.Equal(t, ext, got.ExternalID)

	_, err = s.Users().Get(ctx, "missing-"+uuid.New().String())
	assert.True(t, model.IsNotFoundError(err), "got %v", err)
}

func testCheckIns(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := newUser(t, s)
	base := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)

	_, err := s.CheckIns().Latest(ctx, u.UserID)
	assert.True(t, model.IsNotFoundError(err), "got %v", err)

	text := "long day at work"
	energy := 4
	sleep := 6.5
	created, err := s.CheckIns().Create(ctx, &model.CheckIn{
		UserID: u.UserID, Mood: 5, Text: &text, Energy: &energy, SleepHours: &sleep,
		Timestamp: base.AddDate(0, 0, -2),
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	for _, ts := range []time.Time{base, base.Add(3 * time.Hour), base.AddDate(0, 0, -1)} {
		_, err := s.CheckIns().Create(ctx, &model.CheckIn{UserID: u.UserID, Mood: 7, Timestamp: ts})
		require.NoError(t, err)
	}

	all, err := s.CheckIns().ListSince(ctx, u.UserID, nil)
	require.NoError(t, err)
	require.Len(t, all, 4)
	for i := 1; i < len(all); i++ {
		assert.False(t, all[i].Timestamp.Before(all[i-1].Timestamp), "not ascending at %d", i)
	}
	first := all[0]
	assert.Equal(t, created.ID, first.ID)
	require.NotNil(t, first.Text)
	assert.Equal(t, text, *first.Text)
	require.NotNil(t, first.Energy)
	assert.Equal(t, 4, *first.Energy)
	require.NotNil(t, first.SleepHours)
	assert.InDelta(t, 6.5, *first.SleepHours, 1e-9)
	assert.True(t, first.Timestamp.Equal(base.AddDate(0, 0, -2)))
	assert.Nil(t, all[1].Energy)
	assert.Nil(t, all[1].Text)

	since := base.AddDate(0, 0, -1)
	recent, err := s.CheckIns().ListSince(ctx, u.UserID, &since)
	require.NoError(t, err)
	assert.Len(t, recent, 3)

	latest, err := s.CheckIns().Latest(ctx, u.UserID)
	require.NoError(t, err)
	assert.True(t, latest.Timestamp.Equal(base.Add(3*time.Hour)))

	dates, err := s.CheckIns().Dates(ctx, u.UserID)
	require.NoError(t, err)
	require.Len(t, dates, 3)
	assert.ElementsMatch(t, []time.Time{
		time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 8, 0, 0, 0, 0, time.UTC),
	}, utcDays(dates))

	// other users see nothing
	other := newUser(t, s)
	none, err := s.CheckIns().ListSince(ctx, other.UserID, nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func utcDays(ts []time.Time) []time.Time {
	out := make([]time.Time, len(ts))
	for i, t := range ts {
		t = t.UTC()
		out[i] = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
	return out
}

func testJournal(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := newUser(t, s)
	base := time.Date(2026, 2, 1, 20, 0, 0, 0, time.UTC)

	summary := "a calm day"
	var ids []string
	for i, content := range []string{"first", "second", "third", "fourth"} {
		e := &model.JournalEntry{UserID: u.UserID, Content: content, Timestamp: base.Add(time.Duration(i) * time.Hour)}
		if i == 0 {
			e.Summary = &summary
		}
		created, err := s.Journal().Create(ctx, e)
		require.NoError(t, err)
		require.NotEmpty(t, created.EntryID)
		ids = append(ids, created.EntryID)
	}

	list, err := s.Journal().List(ctx, u.UserID)
	require.NoError(t, err)
	require.Len(t, list, 4)
	assert.Equal(t, "fourth", list[0].Content)
	assert.Equal(t, "first", list[3].Content)
	require.NotNil(t, list[3].Summary)
	assert.Equal(t, summary, *list[3].Summary)
	assert.Nil(t, list[3].Advice)

	recent, err := s.Journal().Recent(ctx, u.UserID, 3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, []string{"second", "third", "fourth"}, []string{recent[0].Content, recent[1].Content, recent[2].Content})

	// deleting someone else's entry is indistinguishable from a missing one
	other := newUser(t, s)
	err = s.Journal().Delete(ctx, other.UserID, ids[0])
	assert.True(t, model.IsNotFoundError(err), "got %v", err)

	require.NoError(t, s.Journal().Delete(ctx, u.UserID, ids[0]))
	err = s.Journal().Delete(ctx, u.UserID, ids[0])
	assert.True(t, model.IsNotFoundError(err), "got %v", err)

	list, err = s.Journal().List(ctx, u.UserID)
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func testChat(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := newUser(t, s)
	base := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 6; i++ {
		ts := base.Add(time.Duration(i) * time.Minute)
		// both turns share a timestamp; insertion order must survive
		err := s.Chat().Append(ctx,
			&model.ChatMessage{UserID: u.UserID, Role: model.RoleUser, Content: "q" + string(rune('0'+i)), Timestamp: ts},
			&model.ChatMessage{UserID: u.UserID, Role: model.RoleModel, Content: "a" + string(rune('0'+i)), Timestamp: ts},
		)
		require.NoError(t, err)
	}

	all, err := s.Chat().List(ctx, u.UserID)
	require.NoError(t, err)
	require.Len(t, all, 12)
	assert.Equal(t, "q0", all[0].Content)
	assert.Equal(t, "a0", all[1].Content)
	assert.NotEmpty(t, all[0].MessageID)

	recent, err := s.Chat().Recent(ctx, u.UserID, 4)
	require.NoError(t, err)
	require.Len(t, recent, 4)
	got := []string{recent[0].Content, recent[1].Content, recent[2].Content, recent[3].Content}
	assert.Equal(t, []string{"q4", "a4", "q5", "a5"}, got)
	assert.Equal(t, model.RoleModel, recent[3].Role)

	empty, err := s.Chat().Recent(ctx, newUser(t, s).UserID, 10)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
