package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	method string
	path   string
	query  string
	auth   string
	body   map[string]any
}

func fakeAPI(t *testing.T, status int, reply string) (*httptest.Server, *recorded) {
	t.Helper()
	rec := &recorded{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method, rec.path, rec.query = r.Method, r.URL.Path, r.URL.RawQuery
		rec.auth = r.Header.Get("Authorization")
		b, _ := io.ReadAll(r.Body)
		if len(b) > 0 {
			_ = json.Unmarshal(b, &rec.body)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

func TestRunCheckIn(t *testing.T) {
	srv, rec := fakeAPI(t, http.StatusCreated, `{"message":"check-in saved","id":"c1"}`)
	var out bytes.Buffer

	err := runCheckIn(newAPIClient(srv.URL, "tok", defaultTimeout), checkInArgs{Mood: 7, Energy: 5, SleepHours: -1}, &out)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/api/checkins", rec.path)
	assert.Equal(t, "Bearer tok", rec.auth)
	assert.Equal(t, map[string]any{"mood": 7.0, "energy": 5.0}, rec.body)
	assert.Contains(t, out.String(), `"id": "c1"`)
}

func TestRunCheckIn_RejectsBadMood(t *testing.T) {
	err := runCheckIn(newAPIClient("http://unused", "", defaultTimeout), checkInArgs{Mood: 11}, io.Discard)
	assert.Error(t, err)
}

func TestRunForecast_PassesDays(t *testing.T) {
	srv, rec := fakeAPI(t, http.StatusOK, `{"trend_slope":1}`)
	require.NoError(t, runForecast(newAPIClient(srv.URL, "", defaultTimeout), 14, io.Discard))
	assert.Equal(t, "/api/analytics/mood-forecast", rec.path)
	assert.Equal(t, "days=14", rec.query)
}

func TestClient_SurfacesErrorDetail(t *testing.T) {
	srv, _ := fakeAPI(t, http.StatusNotFound, `{"error":"Not Found","code":404,"detail":"No check-ins found to analyze"}`)
	err := runGet(newAPIClient(srv.URL, "", defaultTimeout), "/api/analytics/insights/latest", io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No check-ins found to analyze")
}

func TestRootCmd_JournalDelete(t *testing.T) {
	srv, rec := fakeAPI(t, http.StatusOK, `{"message":"Journal entry deleted"}`)
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--api", srv.URL, "--token", "tok", "journal", "delete", "abc"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, http.MethodDelete, rec.method)
	assert.Equal(t, "/api/journal/abc", rec.path)
	assert.Contains(t, out.String(), "Journal entry deleted")
}

func TestRootCmd_Chat(t *testing.T) {
	srv, rec := fakeAPI(t, http.StatusOK, `{"response":"hey"}`)
	cmd := newRootCmd()
	cmd.SetOut(io.Discard)
	cmd.SetArgs([]string{"--api", srv.URL, "chat", "how", "are", "you"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, map[string]any{"message": "how are you"}, rec.body)
}
