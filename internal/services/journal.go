package services

import (
	"context"
	"errors"
	"sort"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/imanelbaz22-debug/serene-app/internal/genai"
	"github.com/imanelbaz22-debug/serene-app/internal/metrics"
	"github.com/imanelbaz22-debug/serene-app/internal/model"
	"github.com/imanelbaz22-debug/serene-app/internal/store"
)

// JournalService stores journal entries with an AI takeaway and serves the
// combined journal and chat history.
type JournalService struct {
	store store.Store
	ai    Generator
	clock clockwork.Clock
	log   zerolog.Logger
}

func NewJournalService(s store.Store, ai Generator, clock clockwork.Clock, log zerolog.Logger) *JournalService {
	return &JournalService{store: s, ai: ai, clock: clock, log: log}
}

// Summarize asks the model for a takeaway and advice. It always returns a
// usable analysis.
func (s *JournalService) Summarize(ctx context.Context, userID, content string) model.JournalAnalysis {
	raw, err := s.ai.Generate(ctx, genai.Request{
		UserID: userID,
		System: journalSystemPrompt,
		Turns:  []genai.Turn{{Role: model.RoleUser, Text: content}},
		JSON:   true,
	})
	switch {
	case errors.Is(err, genai.ErrQuotaExceeded):
		metrics.AIFallbacksTotal.WithLabelValues("journal").Inc()
		return journalQuotaFallback
	case err != nil:
		metrics.AIFallbacksTotal.WithLabelValues("journal").Inc()
		s.log.Warn().Err(err).Str("user_id", userID).Msg("journal summary failed")
		return journalEmptyFallback
	}

	var out struct {
		Summary flexText `json:"summary"`
		Advice  flexText `json:"advice"`
	}
	if err := decodeModelJSON(raw, &out); err != nil || out.Summary == "" {
		metrics.AIFallbacksTotal.WithLabelValues("journal").Inc()
		s.log.Warn().Err(err).Str("user_id", userID).Msg("journal summary was not usable json")
		return journalInvalidFallback
	}
	return model.JournalAnalysis{Summary: string(out.Summary), Advice: string(out.Advice)}
}

// Create summarizes and stores a journal entry. content must already be validated.
func (s *JournalService) Create(ctx context.Context, userID, content string) (*model.JournalEntry, error) {
	analysis := s.Summarize(ctx, userID, content)
	return s.store.Journal().Create(ctx, &model.JournalEntry{
		UserID:    userID,
		Content:   content,
		Summary:   &analysis.Summary,
		Advice:    &analysis.Advice,
		Timestamp: s.clock.Now(),
	})
}

// History merges journal entries and chat messages, newest first.
func (s *JournalService) History(ctx context.Context, userID string) ([]model.HistoryItem, error) {
	entries, err := s.store.Journal().List(ctx, userID)
	if err != nil {
		return nil, err
	}
	msgs, err := s.store.Chat().List(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]model.HistoryItem, 0, len(entries)+len(msgs))
	for _, e := range entries {
		items = append(items, model.HistoryItem{
			ID:        "journal_" + e.EntryID,
			DBID:      e.EntryID,
			Type:      model.HistoryJournal,
			Content:   e.Content,
			Summary:   e.Summary,
			Advice:    e.Advice,
			Role:      model.RoleUser,
			Timestamp: e.Timestamp,
		})
	}
	// newest first so that turns sharing a timestamp keep reply-above-prompt order
	for i := len(msgs) - 1; i >= 0; i-- {
		m := msgs[i]
		items = append(items, model.HistoryItem{
			ID:        "chat_" + m.MessageID,
			DBID:      m.MessageID,
			Type:      model.HistoryChat,
			Content:   m.Content,
			Role:      m.Role,
			Timestamp: m.Timestamp,
		})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Timestamp.After(items[j].Timestamp)
	})
	return items, nil
}

// Delete removes one of the user's entries. Missing entries yield model.ErrNotFound.
func (s *JournalService) Delete(ctx context.Context, userID, entryID string) error {
	return s.store.Journal().Delete(ctx, userID, entryID)
}
