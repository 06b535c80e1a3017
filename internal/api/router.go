package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/imanelbaz22-debug/serene-app/internal/api/recovery"
	"github.com/imanelbaz22-debug/serene-app/internal/auth"
	"github.com/imanelbaz22-debug/serene-app/internal/services"
)

// Deps is everything the router needs.
type Deps struct {
	Auth      *auth.Authenticator
	CheckIns  *services.CheckInService
	Analytics *services.AnalyticsService
	Reports   *services.ReportService
	Journal   *services.JournalService
	Chat      *services.ChatService
	Health    *HealthHandler
	// Metrics exposes /metrics when true.
	Metrics bool
}

// NewRouter wires HTTP routes to handlers.
func NewRouter(d Deps) *mux.Router {
	root := mux.NewRouter()
	root.Use(recovery.Middleware, instrument)

	root.HandleFunc("/api/health", d.Health.CheckHealth).Methods("GET")
	if d.Metrics {
		root.Handle("/metrics", promhttp.Handler()).Methods("GET")
	}

	authed := root.PathPrefix("/api").Subrouter()
	authed.Use(d.Auth.Middleware)

	checkins := NewCheckInHandler(d.CheckIns)
	authed.HandleFunc("/checkins", checkins.CreateCheckIn).Methods("POST")

	analytics := NewAnalyticsHandler(d.Analytics, d.Reports)
	authed.HandleFunc("/analytics/mood-forecast", analytics.MoodForecast).Methods("GET")
	authed.HandleFunc("/analytics/insights/latest", analytics.LatestInsights).Methods("GET")
	authed.HandleFunc("/analytics/streak", analytics.Streak).Methods("GET")
	authed.HandleFunc("/analytics/reports/weekly", analytics.WeeklyReport).Methods("GET")

	chat := NewChatHandler(d.Chat)
	authed.HandleFunc("/chat/message", chat.SendMessage).Methods("POST")

	journal := NewJournalHandler(d.Journal)
	authed.HandleFunc("/journal", journal.CreateEntry).Methods("POST")
	authed.HandleFunc("/journal", journal.ListHistory).Methods("GET")
	authed.HandleFunc("/journal/{entryId}", journal.DeleteEntry).Methods("DELETE")

	root.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeNotFound(w, "route not found")
	})
	return root
}
