package roster

import (
	"encoding/json"
	"net/http"

	"github.com/MenteSana-Clinic/intake-service/internal/auth"
)

type Handler struct {
	roster *Roster
}

func NewHandler(roster *Roster) *Handler {
	return &Handler{roster: roster}
}

// ListResponse wraps the professional listing
type ListResponse struct {
	Success       bool           `json:"success"`
	Professionals []Professional `json:"professionals"`
	Total         int            `json:"total"`
}

// ListProfessionals handles GET /roster/professionals
func (h *Handler) ListProfessionals(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.FromContext(r.Context()); !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error":   "unauthenticated",
			"message": "User not authenticated",
		})
		return
	}

	professionals := h.roster.Professionals()
	if professionals == nil {
		professionals = []Professional{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ListResponse{
		Success:       true,
		Professionals: professionals,
		Total:         len(professionals),
	})
}
