package api

import (
	"net/http"

	"github.com/okian/halloffame/internal/domain/hackathon"
)

// HackathonsHandler lists the known hackathons.
type HackathonsHandler struct{}

// NewHackathonsHandler creates a new hackathons handler.
func NewHackathonsHandler() *HackathonsHandler {
	return &HackathonsHandler{}
}

// HandleHackathons handles GET /hackathons requests.
func (h *HackathonsHandler) HandleHackathons(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, hackathon.Options())
}
