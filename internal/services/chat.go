package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/imanelbaz22-debug/serene-app/internal/genai"
	"github.com/imanelbaz22-debug/serene-app/internal/metrics"
	"github.com/imanelbaz22-debug/serene-app/internal/model"
	"github.com/imanelbaz22-debug/serene-app/internal/store"
)

const (
	chatHistoryTurns   = 10
	chatJournalContext = 3
)

// ChatService runs the "AI bestie" conversation.
type ChatService struct {
	store store.Store
	ai    Generator
	clock clockwork.Clock
	log   zerolog.Logger
}

func NewChatService(s store.Store, ai Generator, clock clockwork.Clock, log zerolog.Logger) *ChatService {
	return &ChatService{store: s, ai: ai, clock: clock, log: log}
}

// Reply answers message and stores both turns. Model failures are answered
// with a canned reply rather than an error.
func (s *ChatService) Reply(ctx context.Context, userID, message string) (string, error) {
	reply, ok := localGreeting(message)
	if !ok {
		var err error
		reply, err = s.generate(ctx, userID, message)
		if err != nil {
			return "", err
		}
	}

	now := s.clock.Now()
	err := s.store.Chat().Append(ctx,
		&model.ChatMessage{UserID: userID, Role: model.RoleUser, Content: message, Timestamp: now},
		&model.ChatMessage{UserID: userID, Role: model.RoleModel, Content: reply, Timestamp: now},
	)
	if err != nil {
		return "", err
	}
	return reply, nil
}

func (s *ChatService) generate(ctx context.Context, userID, message string) (string, error) {
	turns, err := s.contextTurns(ctx, userID)
	if err != nil {
		return "", err
	}
	turns = append(turns, genai.Turn{Role: model.RoleUser, Text: message})

	text, err := s.ai.Generate(ctx, genai.Request{UserID: userID, System: chatSystemPrompt, Turns: turns})
	switch {
	case err == nil:
		return text, nil
	case errors.Is(err, genai.ErrQuotaExceeded):
		metrics.AIFallbacksTotal.WithLabelValues("chat").Inc()
		return liteReply(message), nil
	default:
		metrics.AIFallbacksTotal.WithLabelValues("chat").Inc()
		s.log.Warn().Err(err).Str("user_id", userID).Msg("chat generation failed")
		return snagReply, nil
	}
}

// contextTurns builds the recent journal preamble followed by the last chat turns.
func (s *ChatService) contextTurns(ctx context.Context, userID string) ([]genai.Turn, error) {
	entries, err := s.store.Journal().Recent(ctx, userID, chatJournalContext)
	if err != nil {
		return nil, err
	}
	history, err := s.store.Chat().Recent(ctx, userID, chatHistoryTurns)
	if err != nil {
		return nil, err
	}

	turns := make([]genai.Turn, 0, len(history)+3)
	if len(entries) > 0 {
		var sb strings.Builder
		sb.WriteString(journalContextIntro)
		sb.WriteString("Recent Journal Entries:\n")
		for _, e := range entries {
			fmt.Fprintf(&sb, "- [%s] %s\n", e.Timestamp.UTC().Format("2006-01-02 15:04"), e.Content)
		}
		turns = append(turns,
			genai.Turn{Role: model.RoleUser, Text: sb.String()},
			genai.Turn{Role: model.RoleModel, Text: journalContextAck},
		)
	}
	for _, m := range history {
		turns = append(turns, genai.Turn{Role: m.Role, Text: m.Content})
	}
	return turns, nil
}
