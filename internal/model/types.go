package model

import "time"

// User is an account resolved from an identity-provider token subject.
type User struct {
	UserID       string    `json:"user_id"`
	ExternalID   string    `json:"external_id"`
	Username     *string   `json:"username,omitempty"`
	Email        *string   `json:"email,omitempty"`
	CreationTime time.Time `json:"created_at"`
}

// CheckIn is a short structured snapshot of how a user feels.
// Mood is 1..10; Energy (1..10) and SleepHours (>= 0) are optional.
type CheckIn struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Mood       int       `json:"mood"`
	Text       *string   `json:"text,omitempty"`
	Energy     *int      `json:"energy,omitempty"`
	SleepHours *float64  `json:"sleep_hours,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// JournalEntry is a long-form entry with an optional AI summary and advice.
type JournalEntry struct {
	EntryID   string    `json:"id"`
	UserID    string    `json:"user_id"`
	Content   string    `json:"content"`
	Summary   *string   `json:"summary,omitempty"`
	Advice    *string   `json:"advice,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Chat roles as stored and as sent to the AI provider.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// ChatMessage is one turn of the conversation with the assistant.
type ChatMessage struct {
	MessageID string    `json:"id"`
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// History item kinds.
const (
	HistoryJournal = "journal"
	HistoryChat    = "chat"
)

// HistoryItem is the unified journal + chat feed entry.
type HistoryItem struct {
	ID        string    `json:"id"`
	DBID      string    `json:"db_id"`
	Type      string    `json:"type"`
	Content   string    `json:"content"`
	Summary   *string   `json:"summary"`
	Advice    *string   `json:"advice"`
	Role      string    `json:"role"`
	Timestamp time.Time `json:"timestamp"`
}

// JournalAnalysis is the AI summarization of a journal entry.
type JournalAnalysis struct {
	Summary string `json:"summary"`
	Advice  string `json:"advice"`
}

// WeeklyReport is the AI-written summary of the last seven days.
type WeeklyReport struct {
	Summary string `json:"summary"`
	Win     string `json:"win"`
	Focus   string `json:"focus"`
}

// Streak is the engagement streak payload.
type Streak struct {
	Current int `json:"streak"`
	Longest int `json:"longest_streak"`
}
