package service

import "github.com/okian/halloffame/internal/domain/model"

// Session is the identity of the caller of one request. A zero Session is
// an anonymous caller.
type Session struct {
	UserID string
	Email  string
	Role   model.Role
}

// Authenticated reports whether the session belongs to a signed-in user.
func (s Session) Authenticated() bool { return s.UserID != "" }

// IsAdmin reports whether the session may change the roster.
func (s Session) IsAdmin() bool { return s.Authenticated() && s.Role.IsAdmin() }
