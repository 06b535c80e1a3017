package api

import (
	"net/http"

	"github.com/imanelbaz22-debug/serene-app/internal/analytics"
	respond "github.com/imanelbaz22-debug/serene-app/internal/api/respond"
	"github.com/imanelbaz22-debug/serene-app/internal/api/validate"
	"github.com/imanelbaz22-debug/serene-app/internal/model"
	"github.com/imanelbaz22-debug/serene-app/internal/services"
)

type AnalyticsHandler struct {
	analytics *services.AnalyticsService
	reports   *services.ReportService
}

func NewAnalyticsHandler(a *services.AnalyticsService, r *services.ReportService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: a, reports: r}
}

// MoodForecast GET /api/analytics/mood-forecast?days=30
func (h *AnalyticsHandler) MoodForecast(w http.ResponseWriter, r *http.Request) {
	days, err := validate.TrendDays(r.URL.Query().Get("days"), analytics.DefaultTrendDays)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	res, err := h.analytics.Forecast(r.Context(), currentUserID(r), days)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, res)
}

// LatestInsights GET /api/analytics/insights/latest
func (h *AnalyticsHandler) LatestInsights(w http.ResponseWriter, r *http.Request) {
	res, err := h.analytics.LatestInsights(r.Context(), currentUserID(r))
	if model.IsNotFoundError(err) {
		respond.WriteNotFound(w, "No check-ins found to analyze")
		return
	}
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, res)
}

// Streak GET /api/analytics/streak
func (h *AnalyticsHandler) Streak(w http.ResponseWriter, r *http.Request) {
	res, err := h.analytics.Streak(r.Context(), currentUserID(r))
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, res)
}

// WeeklyReport GET /api/analytics/reports/weekly
func (h *AnalyticsHandler) WeeklyReport(w http.ResponseWriter, r *http.Request) {
	res, err := h.reports.Weekly(r.Context(), currentUserID(r))
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, res)
}
