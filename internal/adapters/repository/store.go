// Package repository persists students and profiles.
package repository

import (
	"context"
	"strings"

	"github.com/okian/halloffame/internal/domain/model"
)

// Store provides read/write access to the roster.
type Store interface {
	// List returns every student ordered by score desc; equal scores keep
	// insertion order.
	List(ctx context.Context) ([]model.Student, error)

	// Get returns one student. Returns ErrNotFound if the id is unknown.
	Get(ctx context.Context, id string) (model.Student, error)

	// FindByNameTeam looks a student up by name and team, ignoring case.
	// Returns ErrNotFound when there is no such pair.
	FindByNameTeam(ctx context.Context, name, team string) (model.Student, error)

	// Insert adds s. Returns ErrAlreadyExists if the id is taken.
	Insert(ctx context.Context, s model.Student) error

	// Update replaces the stored record with the same id.
	Update(ctx context.Context, s model.Student) error

	// Delete removes one student.
	Delete(ctx context.Context, id string) error

	// DeleteAll removes every student and returns how many were removed.
	DeleteAll(ctx context.Context) (int, error)

	// Count returns the number of stored students.
	Count(ctx context.Context) (int, error)

	// Profile returns the profile of a user. Returns ErrNotFound if unknown.
	Profile(ctx context.Context, userID string) (model.Profile, error)

	// UpsertProfile creates or replaces a profile.
	UpsertProfile(ctx context.Context, p model.Profile) error

	// Close releases the underlying resources.
	Close() error
}

// matchKey is the form name and team are compared in by FindByNameTeam.
func matchKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
