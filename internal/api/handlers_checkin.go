package api

import (
	"net/http"
	"time"

	respond "github.com/imanelbaz22-debug/serene-app/internal/api/respond"
	"github.com/imanelbaz22-debug/serene-app/internal/api/validate"
	"github.com/imanelbaz22-debug/serene-app/internal/model"
	"github.com/imanelbaz22-debug/serene-app/internal/services"
)

type CheckInHandler struct {
	svc *services.CheckInService
}

func NewCheckInHandler(svc *services.CheckInService) *CheckInHandler {
	return &CheckInHandler{svc: svc}
}

type createCheckInRequest struct {
	Mood       int        `json:"mood"`
	Text       *string    `json:"text"`
	Energy     *int       `json:"energy"`
	SleepHours *float64   `json:"sleep_hours"`
	Timestamp  *time.Time `json:"timestamp"`
}

// CreateCheckIn POST /api/checkins
func (h *CheckInHandler) CreateCheckIn(w http.ResponseWriter, r *http.Request) {
	var req createCheckInRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	c := &model.CheckIn{
		UserID:     currentUserID(r),
		Mood:       req.Mood,
		Text:       req.Text,
		Energy:     req.Energy,
		SleepHours: req.SleepHours,
	}
	if req.Timestamp != nil {
		c.Timestamp = *req.Timestamp
	}
	if err := validate.CheckIn(c); err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	out, err := h.svc.Create(r.Context(), c)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message":   "check-in saved",
		"id":        out.ID,
		"timestamp": out.Timestamp.UTC().Format(time.RFC3339Nano),
	})
}
