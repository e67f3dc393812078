package api

import (
	"context"
	"net/http"

	service "github.com/okian/halloffame/internal/app"
	"github.com/okian/halloffame/internal/domain/model"
	"github.com/okian/halloffame/internal/domain/types"
)

// AdminDependencies defines the roster mutations.
type AdminDependencies interface {
	AddStudent(ctx context.Context, sess service.Session, in model.NewStudent) (model.Student, error)
	UpdateStudent(ctx context.Context, sess service.Session, id string, patch model.StudentPatch) (model.Student, error)
	DeleteStudent(ctx context.Context, sess service.Session, id string) error
	DeleteStudents(ctx context.Context, sess service.Session, ids []string) (int, error)
	DeleteAllStudents(ctx context.Context, sess service.Session) (int, error)
}

type deleteRequest struct {
	IDs []string `json:"ids"`
}

type deleteResponse struct {
	Deleted int `json:"deleted"`
}

// AdminStudentsHandler handles roster mutations.
type AdminStudentsHandler struct {
	deps     AdminDependencies
	maxBytes int64
}

// NewAdminStudentsHandler creates a new admin handler.
func NewAdminStudentsHandler(deps AdminDependencies, maxBytes int64) *AdminStudentsHandler {
	return &AdminStudentsHandler{deps: deps, maxBytes: maxBytes}
}

// HandleCollection handles POST /admin/students and DELETE /admin/students.
func (h *AdminStudentsHandler) HandleCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.add(w, r)
	case http.MethodDelete:
		h.deleteMany(w, r)
	default:
		methodNotAllowed(w, r, "api.admin_students", http.MethodPost, http.MethodDelete)
	}
}

// HandleItem handles PUT and DELETE /admin/students/{id}.
func (h *AdminStudentsHandler) HandleItem(w http.ResponseWriter, r *http.Request) {
	const op = "api.admin_student"
	id, ok := pathID(r.URL.Path, "/admin/students/")
	if !ok {
		fail(w, r, NewKind(op, ErrBadRequest))
		return
	}
	switch r.Method {
	case http.MethodPut, http.MethodPatch:
		h.update(w, r, id)
	case http.MethodDelete:
		h.deleteOne(w, r, id)
	default:
		methodNotAllowed(w, r, op, http.MethodPut, http.MethodPatch, http.MethodDelete)
	}
}

func (h *AdminStudentsHandler) add(w http.ResponseWriter, r *http.Request) {
	const op = "api.add_student"
	var in model.NewStudent
	if err := decodeJSON(w, r, h.maxBytes, op, &in); err != nil {
		fail(w, r, err)
		return
	}
	st, err := h.deps.AddStudent(r.Context(), SessionFrom(r.Context()), in)
	if err != nil {
		fail(w, r, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusCreated, types.NewStudentEntry(st))
}

func (h *AdminStudentsHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	const op = "api.update_student"
	var patch model.StudentPatch
	if err := decodeJSON(w, r, h.maxBytes, op, &patch); err != nil {
		fail(w, r, err)
		return
	}
	st, err := h.deps.UpdateStudent(r.Context(), SessionFrom(r.Context()), id, patch)
	if err != nil {
		fail(w, r, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, types.NewStudentEntry(st))
}

func (h *AdminStudentsHandler) deleteOne(w http.ResponseWriter, r *http.Request, id string) {
	const op = "api.delete_student"
	if err := h.deps.DeleteStudent(r.Context(), SessionFrom(r.Context()), id); err != nil {
		fail(w, r, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, deleteResponse{Deleted: 1})
}

// deleteMany removes the ids in the body, or everything with ?all=true.
func (h *AdminStudentsHandler) deleteMany(w http.ResponseWriter, r *http.Request) {
	const op = "api.delete_students"
	sess := SessionFrom(r.Context())

	if r.URL.Query().Get("all") == "true" {
		n, err := h.deps.DeleteAllStudents(r.Context(), sess)
		if err != nil {
			fail(w, r, Wrap(op, err))
			return
		}
		writeJSON(w, http.StatusOK, deleteResponse{Deleted: n})
		return
	}

	var req deleteRequest
	if err := decodeJSON(w, r, h.maxBytes, op, &req); err != nil {
		fail(w, r, err)
		return
	}
	n, err := h.deps.DeleteStudents(r.Context(), sess, req.IDs)
	if err != nil {
		fail(w, r, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, deleteResponse{Deleted: n})
}
