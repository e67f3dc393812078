package api

import (
	"context"
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/okian/halloffame/internal/adapters/csvimport"
	service "github.com/okian/halloffame/internal/app"
	"github.com/okian/halloffame/internal/domain/types"
)

const templateFilename = "students_template.csv"

// ImportDependencies defines the bulk import.
type ImportDependencies interface {
	ImportCSV(ctx context.Context, sess service.Session, r io.Reader) (types.ImportReport, error)
}

// ImportHandler handles CSV uploads and the template download.
type ImportHandler struct {
	deps     ImportDependencies
	maxBytes int64
}

// NewImportHandler creates a new import handler.
func NewImportHandler(deps ImportDependencies, maxBytes int64) *ImportHandler {
	return &ImportHandler{deps: deps, maxBytes: maxBytes}
}

// HandleImport handles POST /admin/import. The CSV is either the raw body or
// the "file" part of a multipart form.
func (h *ImportHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	const op = "api.import"
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, op, http.MethodPost)
		return
	}
	sess := SessionFrom(r.Context())
	if !sess.IsAdmin() {
		// Refuse before reading a possibly large upload.
		kind := service.ErrForbidden
		if !sess.Authenticated() {
			kind = service.ErrUnauthenticated
		}
		fail(w, r, NewKind(op, kind))
		return
	}

	body := http.MaxBytesReader(w, r.Body, h.maxBytes)
	var src io.Reader = body
	if mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type")); mediaType == "multipart/form-data" {
		r.Body = body
		file, _, err := r.FormFile("file")
		if err != nil {
			if isTooLarge(err) {
				fail(w, r, WrapKind(op, ErrBodyTooLarge, err))
				return
			}
			fail(w, r, WrapKind(op, ErrBadRequest, err))
			return
		}
		defer func() { _ = file.Close() }()
		src = file
	}

	report, err := h.deps.ImportCSV(r.Context(), sess, src)
	if err != nil {
		if isTooLarge(err) {
			fail(w, r, WrapKind(op, ErrBodyTooLarge, err))
			return
		}
		fail(w, r, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// HandleTemplate handles GET /admin/import/template.
func (h *ImportHandler) HandleTemplate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": templateFilename}))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(csvimport.Template())
}

// isTooLarge reports whether err came from exceeding the upload limit.
func isTooLarge(err error) bool {
	var tooLarge *http.MaxBytesError
	return errors.As(err, &tooLarge)
}
