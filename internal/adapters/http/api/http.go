// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	service "github.com/okian/halloffame/internal/app"
	"github.com/okian/halloffame/internal/domain/model"
	"github.com/okian/halloffame/pkg/logger"
)

const (
	defaultMaxRankingsLimit = 100
	defaultMaxJSONBytes     = 1 << 20
	defaultMaxImportBytes   = 8 << 20
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	StatsProvider
	RosterDependencies
	RankingDependencies
	ProfileDependencies
	AdminDependencies
	ImportDependencies
}

// Authenticator resolves an Authorization header to a session.
type Authenticator interface {
	Authenticate(ctx context.Context, header string) (service.Session, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	authn  Authenticator
	logger logger.Logger

	maxRankingsLimit int
	maxJSONBytes     int64
	maxImportBytes   int64

	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	studentsHandler   *StudentsHandler
	teamsHandler      *TeamsHandler
	rankingsHandler   *RankingsHandler
	hackathonsHandler *HackathonsHandler
	meHandler         *MeHandler
	adminHandler      *AdminStudentsHandler
	importHandler     *ImportHandler
}

// Option configures the Server.
type Option func(*Server)

// WithMaxRankingsLimit caps GET /rankings?limit.
func WithMaxRankingsLimit(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxRankingsLimit = n
		}
	}
}

// WithMaxImportBytes caps the size of a CSV upload.
func WithMaxImportBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxImportBytes = n
		}
	}
}

// WithLogger sets the request logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer creates a new API server with all handlers. authn may be nil,
// in which case every caller is anonymous.
func NewServer(deps Dependencies, authn Authenticator, opts ...Option) *Server {
	s := &Server{
		authn:            authn,
		logger:           logger.Nop(),
		maxRankingsLimit: defaultMaxRankingsLimit,
		maxJSONBytes:     defaultMaxJSONBytes,
		maxImportBytes:   defaultMaxImportBytes,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.healthHandler = NewHealthHandler()
	s.statsHandler = NewStatsHandler(deps)
	s.studentsHandler = NewStudentsHandler(deps)
	s.teamsHandler = NewTeamsHandler(deps)
	s.rankingsHandler = NewRankingsHandler(deps, s.maxRankingsLimit)
	s.hackathonsHandler = NewHackathonsHandler()
	s.meHandler = NewMeHandler(deps)
	s.adminHandler = NewAdminStudentsHandler(deps, s.maxJSONBytes)
	s.importHandler = NewImportHandler(deps, s.maxImportBytes)
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	// Public reads
	mux.HandleFunc("/healthz", s.route("healthz", s.healthHandler.HandleHealth))
	mux.HandleFunc("/stats", s.route("stats", s.statsHandler.HandleStats))
	mux.HandleFunc("/students", s.route("students", s.studentsHandler.HandleList))
	mux.HandleFunc("/students/", s.route("student", s.studentsHandler.HandleGet))
	mux.HandleFunc("/teams", s.route("teams", s.teamsHandler.HandleTeams))
	mux.HandleFunc("/rankings", s.route("rankings", s.rankingsHandler.HandleRankings))
	mux.HandleFunc("/hackathons", s.route("hackathons", s.hackathonsHandler.HandleHackathons))
	mux.HandleFunc("/admin/import/template", s.route("import_template", s.importHandler.HandleTemplate))

	// Session-aware
	mux.HandleFunc("/me", s.route("me", s.withSession(s.meHandler.HandleMe)))
	mux.HandleFunc("/admin/students", s.route("admin_students", s.withSession(s.adminHandler.HandleCollection)))
	mux.HandleFunc("/admin/students/", s.route("admin_student", s.withSession(s.adminHandler.HandleItem)))
	mux.HandleFunc("/admin/import", s.route("admin_import", s.withSession(s.importHandler.HandleImport)))
}

// route wraps a handler with metrics and the request logger.
func (s *Server) route(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return MetricsMiddleware(s.withLogger(next), endpoint)
}

type errorResponse struct {
	Code    string             `json:"code"`
	Message string             `json:"message"`
	Fields  []model.FieldError `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	resp := errorResponse{Code: code, Message: msg}
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		resp.Fields = verr.Fields
	}
	writeJSON(w, status, resp)
}

// fail classifies err and writes the matching error response. Internal
// causes are logged and replaced by the status text.
func fail(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classify(err)
	if status >= http.StatusInternalServerError {
		loggerFrom(r.Context()).Error(r.Context(), "request failed",
			logger.String("method", r.Method),
			logger.String("path", r.URL.Path),
			logger.Error(err),
		)
		writeError(w, status, code, nil)
		return
	}
	writeError(w, status, code, err)
}

// methodNotAllowed answers a request for a known path with the wrong method.
func methodNotAllowed(w http.ResponseWriter, r *http.Request, op string, allow ...string) {
	for _, m := range allow {
		w.Header().Add("Allow", m)
	}
	fail(w, r, NewKind(op, ErrMethodNotAllow))
}

// decodeJSON reads a JSON body of at most limit bytes into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, limit int64, op string, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, limit))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return WrapKind(op, ErrBodyTooLarge, err)
		}
		return WrapKind(op, ErrBadRequest, err)
	}
	return nil
}
