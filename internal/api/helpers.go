package api

import (
	"encoding/json"
	"net/http"

	respond "github.com/imanelbaz22-debug/serene-app/internal/api/respond"
	"github.com/imanelbaz22-debug/serene-app/internal/auth"
)

const maxBodyBytes = 1 << 20

// currentUserID returns the id of the authenticated user. The auth
// middleware guarantees presence on every handler that calls it.
func currentUserID(r *http.Request) string {
	u, _ := auth.UserFromContext(r.Context())
	if u == nil {
		return ""
	}
	return u.UserID
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return false
	}
	return true
}

func writeNotFound(w http.ResponseWriter, detail string) { respond.WriteNotFound(w, detail) }
