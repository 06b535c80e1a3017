package main

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

type checkInArgs struct {
	Mood       int
	Text       string
	Energy     int
	SleepHours float64
}

func runCheckIn(c *apiClient, a checkInArgs, out io.Writer) error {
	if a.Mood < 1 || a.Mood > 10 {
		return fmt.Errorf("--mood must be between 1 and 10")
	}
	body := map[string]any{"mood": a.Mood}
	if a.Text != "" {
		body["text"] = a.Text
	}
	if a.Energy > 0 {
		body["energy"] = a.Energy
	}
	if a.SleepHours >= 0 {
		body["sleep_hours"] = a.SleepHours
	}
	return c.do(http.MethodPost, "/api/checkins", nil, body, out)
}

func runForecast(c *apiClient, days int, out io.Writer) error {
	return c.do(http.MethodGet, "/api/analytics/mood-forecast", map[string]string{"days": strconv.Itoa(days)}, nil, out)
}

func runGet(c *apiClient, path string, out io.Writer) error {
	return c.do(http.MethodGet, path, nil, nil, out)
}

func runChat(c *apiClient, message string, out io.Writer) error {
	if message == "" {
		return fmt.Errorf("message cannot be empty")
	}
	return c.do(http.MethodPost, "/api/chat/message", nil, map[string]string{"message": message}, out)
}

func runJournalAdd(c *apiClient, content string, out io.Writer) error {
	if content == "" {
		return fmt.Errorf("content cannot be empty")
	}
	return c.do(http.MethodPost, "/api/journal", nil, map[string]string{"content": content}, out)
}

func runJournalDelete(c *apiClient, id string, out io.Writer) error {
	return c.do(http.MethodDelete, "/api/journal/"+id, nil, nil, out)
}

const defaultTimeout = 60 * time.Second
