package validate

import (
	"strconv"
	"strings"

	"github.com/imanelbaz22-debug/serene-app/internal/model"
)

const (
	MaxCheckInText   = 2000
	MaxJournalLength = 20000
	MaxChatLength    = 4000
	MaxTrendDays     = 365
)

func NonEmpty(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return model.NewValidationError(field, "is required")
	}
	return nil
}

func MaxLen(field string, v *string, limit int) error {
	if v == nil {
		return nil
	}
	if len(*v) > limit {
		return model.NewValidationError(field, "exceeds "+strconv.Itoa(limit)+" characters")
	}
	return nil
}

// Scale checks a 1..10 rating.
func Scale(field string, v int) error {
	if v < 1 || v > 10 {
		return model.NewValidationError(field, "must be between 1 and 10")
	}
	return nil
}

// CheckIn validates a new check-in.
func CheckIn(c *model.CheckIn) error {
	if err := Scale("mood", c.Mood); err != nil {
		return err
	}
	if c.Energy != nil {
		if err := Scale("energy", *c.Energy); err != nil {
			return err
		}
	}
	if c.SleepHours != nil && (*c.SleepHours < 0 || *c.SleepHours > 24) {
		return model.NewValidationError("sleep_hours", "must be between 0 and 24")
	}
	return MaxLen("text", c.Text, MaxCheckInText)
}

func JournalContent(content string) error {
	if err := NonEmpty("content", content); err != nil {
		return model.NewValidationError("content", "Journal content cannot be empty")
	}
	return MaxLen("content", &content, MaxJournalLength)
}

func ChatMessage(message string) error {
	if err := NonEmpty("message", message); err != nil {
		return err
	}
	return MaxLen("message", &message, MaxChatLength)
}

// TrendDays parses the optional days query value; empty yields def.
func TrendDays(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, model.NewValidationError("days", "must be an integer")
	}
	if n < 1 || n > MaxTrendDays {
		return 0, model.NewValidationError("days", "must be between 1 and "+strconv.Itoa(MaxTrendDays))
	}
	return n, nil
}
