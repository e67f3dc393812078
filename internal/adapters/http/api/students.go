package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/okian/halloffame/internal/domain/hackathon"
	"github.com/okian/halloffame/internal/domain/model"
	"github.com/okian/halloffame/internal/domain/roster"
	"github.com/okian/halloffame/internal/domain/types"
)

// RosterDependencies defines the read operations on students.
type RosterDependencies interface {
	DefaultCriteria() roster.Criteria
	Roster(ctx context.Context, c roster.Criteria) (roster.View, error)
	Student(ctx context.Context, id string) (model.Student, error)
	Teams(ctx context.Context) ([]string, error)
}

// StudentsHandler handles roster requests.
type StudentsHandler struct {
	deps RosterDependencies
}

// NewStudentsHandler creates a new students handler.
func NewStudentsHandler(deps RosterDependencies) *StudentsHandler {
	return &StudentsHandler{deps: deps}
}

// HandleList handles GET /students?q=&team=&min=&max=&hackathon= requests.
func (h *StudentsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_students"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	c, err := parseCriteria(r.URL.Query(), h.deps.DefaultCriteria())
	if err != nil {
		fail(w, r, WrapKind(op, ErrBadRequest, err))
		return
	}
	view, err := h.deps.Roster(r.Context(), c)
	if err != nil {
		fail(w, r, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, types.NewRosterPage(view))
}

// HandleGet handles GET /students/{id} requests.
func (h *StudentsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_student"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	id, ok := pathID(r.URL.Path, "/students/")
	if !ok {
		fail(w, r, NewKind(op, ErrBadRequest))
		return
	}
	st, err := h.deps.Student(r.Context(), id)
	if err != nil {
		fail(w, r, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, types.NewStudentEntry(st))
}

// parseCriteria overlays query parameters on base.
func parseCriteria(q url.Values, base roster.Criteria) (roster.Criteria, error) {
	c := base
	c.NameQuery = q.Get("q")
	c.Team = q.Get("team")
	if v := q.Get("min"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return roster.Criteria{}, fmt.Errorf("invalid min %q", v)
		}
		c.ScoreRange.Min = n
	}
	if v := q.Get("max"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return roster.Criteria{}, fmt.Errorf("invalid max %q", v)
		}
		c.ScoreRange.Max = n
	}
	tag, err := hackathon.ParseTag(q.Get("hackathon"))
	if err != nil {
		return roster.Criteria{}, err
	}
	c.Hackathon = tag
	return c, nil
}

// pathID returns the single path segment after prefix.
func pathID(path, prefix string) (string, bool) {
	id := strings.TrimPrefix(path, prefix)
	if id == "" || id == path || strings.Contains(id, "/") {
		return "", false
	}
	return id, true
}
