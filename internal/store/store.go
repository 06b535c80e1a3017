package store

import (
	"context"
	"time"

	"github.com/imanelbaz22-debug/serene-app/internal/model"
)

// Store exposes persistence operations required by services.
// Implementations live under internal/store/<driver>/ (postgres, sqlite).
type Store interface {
	Users() Users
	CheckIns() CheckIns
	Journal() Journal
	Chat() Chat
}

type Users interface {
	// GetOrCreateByExternalID returns the user bound to an identity-provider
	// subject, creating it on first sight. username is only used on create.
	GetOrCreateByExternalID(ctx context.Context, externalID string, username *string) (*model.User, error)
	Get(ctx context.Context, userID string) (*model.User, error)
}

type CheckIns interface {
	Create(ctx context.Context, c *model.CheckIn) (*model.CheckIn, error)
	// ListSince returns the user's check-ins at or after since, oldest first.
	// A nil since returns all of them.
	ListSince(ctx context.Context, userID string, since *time.Time) ([]model.CheckIn, error)
	// Latest returns model.ErrNotFound when the user has no check-ins.
	Latest(ctx context.Context, userID string) (*model.CheckIn, error)
	// Dates returns the distinct UTC calendar days the user checked in on.
	Dates(ctx context.Context, userID string) ([]time.Time, error)
}

type Journal interface {
	Create(ctx context.Context, e *model.JournalEntry) (*model.JournalEntry, error)
	// List returns all entries, newest first.
	List(ctx context.Context, userID string) ([]model.JournalEntry, error)
	// Recent returns up to n of the newest entries in chronological order.
	Recent(ctx context.Context, userID string, n int) ([]model.JournalEntry, error)
	// Delete returns model.ErrNotFound when the entry is absent or belongs to another user.
	Delete(ctx context.Context, userID, entryID string) error
}

type Chat interface {
	// Append stores messages in argument order.
	Append(ctx context.Context, msgs ...*model.ChatMessage) error
	// Recent returns up to n of the newest messages in chronological order.
	Recent(ctx context.Context, userID string, n int) ([]model.ChatMessage, error)
	List(ctx context.Context, userID string) ([]model.ChatMessage, error)
}
