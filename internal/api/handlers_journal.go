package api

import (
	"net/http"

	"github.com/gorilla/mux"

	respond "github.com/imanelbaz22-debug/serene-app/internal/api/respond"
	"github.com/imanelbaz22-debug/serene-app/internal/api/validate"
	"github.com/imanelbaz22-debug/serene-app/internal/model"
	"github.com/imanelbaz22-debug/serene-app/internal/services"
)

type JournalHandler struct {
	svc *services.JournalService
}

func NewJournalHandler(svc *services.JournalService) *JournalHandler {
	return &JournalHandler{svc: svc}
}

// CreateEntry POST /api/journal
func (h *JournalHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content string `json:"content"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validate.JournalContent(req.Content); err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	e, err := h.svc.Create(r.Context(), currentUserID(r), req.Content)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, e)
}

// ListHistory GET /api/journal
func (h *JournalHandler) ListHistory(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.History(r.Context(), currentUserID(r))
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, items)
}

// DeleteEntry DELETE /api/journal/{entryId}
func (h *JournalHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	err := h.svc.Delete(r.Context(), currentUserID(r), mux.Vars(r)["entryId"])
	if model.IsNotFoundError(err) {
		respond.WriteNotFound(w, "Journal entry not found")
		return
	}
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]string{"message": "Journal entry deleted"})
}
