package api

import (
	"net/http"

	respond "github.com/imanelbaz22-debug/serene-app/internal/api/respond"
	"github.com/imanelbaz22-debug/serene-app/internal/api/validate"
	"github.com/imanelbaz22-debug/serene-app/internal/services"
)

type ChatHandler struct {
	svc *services.ChatService
}

func NewChatHandler(svc *services.ChatService) *ChatHandler { return &ChatHandler{svc: svc} }

// SendMessage POST /api/chat/message
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string `json:"message"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validate.ChatMessage(req.Message); err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	reply, err := h.svc.Reply(r.Context(), currentUserID(r), req.Message)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]string{"response": reply})
}
