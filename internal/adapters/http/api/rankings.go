package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/okian/halloffame/internal/domain/types"
)

// RankingDependencies defines the team read operations.
type RankingDependencies interface {
	Teams(ctx context.Context) ([]string, error)
	TeamRankings(ctx context.Context, limit int) ([]types.TeamEntry, error)
}

// TeamsHandler handles team list requests.
type TeamsHandler struct {
	deps RankingDependencies
}

// NewTeamsHandler creates a new teams handler.
func NewTeamsHandler(deps RankingDependencies) *TeamsHandler {
	return &TeamsHandler{deps: deps}
}

// HandleTeams handles GET /teams requests.
func (h *TeamsHandler) HandleTeams(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_teams"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	teams, err := h.deps.Teams(r.Context())
	if err != nil {
		fail(w, r, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, teams)
}

// RankingsHandler handles team leaderboard requests.
type RankingsHandler struct {
	deps     RankingDependencies
	maxLimit int
}

// NewRankingsHandler creates a new rankings handler.
func NewRankingsHandler(deps RankingDependencies, maxLimit int) *RankingsHandler {
	return &RankingsHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

// HandleRankings handles GET /rankings[?limit=N] requests. Without a limit
// every team is returned.
func (h *RankingsHandler) HandleRankings(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_rankings"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			fail(w, r, NewKind(op, ErrBadRequest))
			return
		}
		if n > h.maxLimit {
			fail(w, r, NewKind(op, ErrLimitExceeded))
			return
		}
		limit = n
	}
	entries, err := h.deps.TeamRankings(r.Context(), limit)
	if err != nil {
		fail(w, r, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
