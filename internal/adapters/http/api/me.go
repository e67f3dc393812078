package api

import (
	"context"
	"net/http"

	service "github.com/okian/halloffame/internal/app"
	"github.com/okian/halloffame/internal/domain/model"
)

// ProfileDependencies defines the profile read.
type ProfileDependencies interface {
	Profile(ctx context.Context, sess service.Session) (model.Profile, error)
}

// MeHandler returns the caller's profile.
type MeHandler struct {
	deps ProfileDependencies
}

// NewMeHandler creates a new profile handler.
func NewMeHandler(deps ProfileDependencies) *MeHandler {
	return &MeHandler{deps: deps}
}

// HandleMe handles GET /me requests.
func (h *MeHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	const op = "api.me"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	p, err := h.deps.Profile(r.Context(), SessionFrom(r.Context()))
	if err != nil {
		fail(w, r, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, p)
}
