package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/okian/halloffame/internal/adapters/repository"
	"github.com/okian/halloffame/internal/domain/model"
	"github.com/okian/halloffame/pkg/logger"
	"github.com/okian/halloffame/pkg/metrics"
)

// AddStudent validates in and stores it as a new student. A (name, team)
// pair already on the roster, compared without case, is rejected with
// ErrDuplicateStudent.
func (s *Service) AddStudent(ctx context.Context, sess Session, in model.NewStudent) (model.Student, error) {
	if err := s.authorize(ctx, sess, "add"); err != nil {
		return model.Student{}, err
	}

	s.writeMu.Lock()
	st, err := s.addLocked(ctx, in)
	s.writeMu.Unlock()
	if err != nil {
		return model.Student{}, err
	}

	s.refreshGauges(ctx)
	s.logger.Info(ctx, "student added",
		logger.String("id", st.ID),
		logger.String("name", st.Name),
		logger.String("team", st.TeamName),
		logger.String("by", sess.UserID),
	)
	return st, nil
}

// addLocked runs the ingestion rules. Callers must hold writeMu.
func (s *Service) addLocked(ctx context.Context, in model.NewStudent) (model.Student, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return model.Student{}, err
	}
	if err := s.checkUnique(ctx, "", in.Name, in.TeamName); err != nil {
		return model.Student{}, err
	}

	st := in.Student(s.newID(), s.now().UTC())
	if err := s.store.Insert(ctx, st); err != nil {
		s.logger.Error(ctx, "insert student failed", logger.String("id", st.ID), logger.Error(err))
		return model.Student{}, err
	}
	metrics.RecordStudentsAdded(1)
	return st, nil
}

// checkUnique fails when another student than selfID holds (name, team).
func (s *Service) checkUnique(ctx context.Context, selfID, name, team string) error {
	existing, err := s.store.FindByNameTeam(ctx, name, team)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID == selfID {
		return nil
	}
	metrics.RecordDuplicateRejected()
	return fmt.Errorf("%w: %q in team %q", ErrDuplicateStudent, name, team)
}

// UpdateStudent applies patch to the student with the given id.
func (s *Service) UpdateStudent(ctx context.Context, sess Session, id string, patch model.StudentPatch) (model.Student, error) {
	if err := s.authorize(ctx, sess, "update"); err != nil {
		return model.Student{}, err
	}
	if patch.Empty() {
		return model.Student{}, ErrEmptyPatch
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	current, err := s.Student(ctx, id)
	if err != nil {
		return model.Student{}, err
	}

	next := patch.Apply(current).Normalize()
	if err := next.Validate(); err != nil {
		return model.Student{}, err
	}
	if !strings.EqualFold(next.Name, current.Name) || !strings.EqualFold(next.TeamName, current.TeamName) {
		if err := s.checkUnique(ctx, current.ID, next.Name, next.TeamName); err != nil {
			return model.Student{}, err
		}
	}

	updated := next.Student(current.ID, current.CreatedAt)
	updated.UpdatedAt = s.now().UTC()
	if err := s.store.Update(ctx, updated); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Student{}, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return model.Student{}, err
	}
	metrics.RecordStudentUpdated()
	s.refreshGauges(ctx)
	s.logger.Info(ctx, "student updated", logger.String("id", id), logger.String("by", sess.UserID))
	return updated, nil
}

// DeleteStudent removes one student.
func (s *Service) DeleteStudent(ctx context.Context, sess Session, id string) error {
	if err := s.authorize(ctx, sess, "delete"); err != nil {
		return err
	}

	s.writeMu.Lock()
	err := s.store.Delete(ctx, id)
	s.writeMu.Unlock()
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return err
	}

	metrics.RecordStudentsDeleted(1)
	s.refreshGauges(ctx)
	s.logger.Info(ctx, "student deleted", logger.String("id", id), logger.String("by", sess.UserID))
	return nil
}

// DeleteStudents removes a selection of students and returns how many
// existed. Unknown ids are ignored.
func (s *Service) DeleteStudents(ctx context.Context, sess Session, ids []string) (int, error) {
	if err := s.authorize(ctx, sess, "delete_selected"); err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, ErrEmptySelection
	}

	s.writeMu.Lock()
	seen := make(map[string]struct{}, len(ids))
	deleted := 0
	var failure error
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		err := s.store.Delete(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			continue
		}
		if err != nil {
			failure = err
			break
		}
		deleted++
	}
	s.writeMu.Unlock()

	metrics.RecordStudentsDeleted(deleted)
	s.refreshGauges(ctx)
	if failure != nil {
		s.logger.Error(ctx, "bulk delete failed", logger.Int("deleted", deleted), logger.Error(failure))
		return deleted, failure
	}
	s.logger.Info(ctx, "students deleted",
		logger.Int("requested", len(ids)),
		logger.Int("deleted", deleted),
		logger.String("by", sess.UserID),
	)
	return deleted, nil
}

// DeleteAllStudents empties the roster and returns how many were removed.
func (s *Service) DeleteAllStudents(ctx context.Context, sess Session) (int, error) {
	if err := s.authorize(ctx, sess, "delete_all"); err != nil {
		return 0, err
	}

	s.writeMu.Lock()
	n, err := s.store.DeleteAll(ctx)
	s.writeMu.Unlock()
	if err != nil {
		s.logger.Error(ctx, "delete all failed", logger.Error(err))
		return 0, err
	}

	metrics.RecordStudentsDeleted(n)
	s.refreshGauges(ctx)
	s.logger.Warn(ctx, "roster cleared", logger.Int("deleted", n), logger.String("by", sess.UserID))
	return n, nil
}

// Seed adds students on behalf of the system, skipping duplicates, and
// returns how many were added.
func (s *Service) Seed(ctx context.Context, students []model.NewStudent) (int, error) {
	s.writeMu.Lock()
	added := 0
	for _, in := range students {
		_, err := s.addLocked(ctx, in)
		if errors.Is(err, ErrDuplicateStudent) {
			continue
		}
		if err != nil {
			s.writeMu.Unlock()
			return added, fmt.Errorf("seed %q: %w", in.Name, err)
		}
		added++
	}
	s.writeMu.Unlock()

	s.refreshGauges(ctx)
	s.logger.Info(ctx, "roster seeded", logger.Int("added", added))
	return added, nil
}
