// Package service provides the roster service that implements the
// dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/halloffame/internal/adapters/repository"
	"github.com/okian/halloffame/internal/domain/model"
	"github.com/okian/halloffame/internal/domain/roster"
	"github.com/okian/halloffame/internal/domain/types"
	"github.com/okian/halloffame/pkg/logger"
	"github.com/okian/halloffame/pkg/metrics"
)

const (
	defaultMaxImportRows    = 5_000
	defaultImportDedupeSize = 10_000
)

// Service orchestrates the store, the roster aggregator and the ingestion
// rules.
type Service struct {
	// writeMu serializes mutations so a duplicate check and the following
	// insert cannot interleave with another write.
	writeMu sync.Mutex

	store  repository.Store
	logger logger.Logger
	now    func() time.Time
	newID  func() string

	scoreRange       roster.ScoreRange
	maxImportRows    int
	importDedupeSize int
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the backing store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock sets the time source used for record timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator sets the function that names new students.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// WithDefaultScoreRange sets the score range of an unfiltered view.
func WithDefaultScoreRange(minScore, maxScore int) Option {
	return func(s *Service) {
		if minScore <= maxScore {
			s.scoreRange = roster.ScoreRange{Min: minScore, Max: maxScore}
		}
	}
}

// WithMaxImportRows bounds the number of rows accepted by one import.
func WithMaxImportRows(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxImportRows = n
		}
	}
}

// WithImportDedupeSize sets how many (name, team) keys one import remembers.
func WithImportDedupeSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.importDedupeSize = n
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		logger:           logger.Nop(),
		now:              time.Now,
		newID:            uuid.NewString,
		scoreRange:       roster.DefaultCriteria().ScoreRange,
		maxImportRows:    defaultMaxImportRows,
		importDedupeSize: defaultImportDedupeSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.store == nil {
		s.store = repository.NewMemoryStore()
	}
	return s
}

// Close releases the store.
func (s *Service) Close() error {
	return s.store.Close()
}

// DefaultCriteria returns criteria that match the whole roster.
func (s *Service) DefaultCriteria() roster.Criteria {
	c := roster.DefaultCriteria()
	c.ScoreRange = s.scoreRange
	return c
}

// Roster returns the students matching c with the counts for the
// "N of M shown" indicator.
func (s *Service) Roster(ctx context.Context, c roster.Criteria) (roster.View, error) {
	all, err := s.store.List(ctx)
	if err != nil {
		s.logger.Error(ctx, "list students failed", logger.Error(err))
		return roster.View{}, err
	}
	view := roster.Summarize(all, c)
	metrics.RecordRosterView(view.Shown, view.Total)
	s.logger.Debug(ctx, "roster view",
		logger.Int("shown", view.Shown),
		logger.Int("total", view.Total),
		logger.Bool("filtered", view.Filtered),
	)
	return view, nil
}

// Student returns one student by id.
func (s *Service) Student(ctx context.Context, id string) (model.Student, error) {
	st, err := s.store.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return model.Student{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return model.Student{}, err
	}
	return st, nil
}

// Teams returns the distinct non-empty team names.
func (s *Service) Teams(ctx context.Context) ([]string, error) {
	all, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return roster.DistinctTeams(all), nil
}

// TeamRankings returns the ranked teams. limit <= 0 returns all of them.
func (s *Service) TeamRankings(ctx context.Context, limit int) ([]types.TeamEntry, error) {
	all, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	entries := types.RankTeams(roster.ComputeTeamRankings(all), limit)
	s.logger.Debug(ctx, "team rankings",
		logger.Int("students", len(all)),
		logger.Int("teams", len(entries)),
	)
	return entries, nil
}

// Profile returns the caller's profile. Users without a stored profile are
// members.
func (s *Service) Profile(ctx context.Context, sess Session) (model.Profile, error) {
	if !sess.Authenticated() {
		return model.Profile{}, ErrUnauthenticated
	}
	p, err := s.store.Profile(ctx, sess.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return model.Profile{ID: sess.UserID, Email: sess.Email, Role: model.RoleMember}, nil
	}
	if err != nil {
		return model.Profile{}, err
	}
	if p.Email == "" {
		p.Email = sess.Email
	}
	return p, nil
}

// BootstrapAdmins grants the admin role to the given users.
func (s *Service) BootstrapAdmins(ctx context.Context, userIDs []string) error {
	for _, id := range userIDs {
		p, err := s.store.Profile(ctx, id)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		p.ID = id
		p.Role = model.RoleAdmin
		if err := s.store.UpsertProfile(ctx, p); err != nil {
			return fmt.Errorf("bootstrap admin %s: %w", id, err)
		}
		s.logger.Info(ctx, "admin profile ensured", logger.String("user_id", id))
	}
	return nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	ctx := context.Background()
	stats := map[string]interface{}{
		"maxImportRows":    s.maxImportRows,
		"importDedupeSize": s.importDedupeSize,
		"scoreRange":       map[string]int{"min": s.scoreRange.Min, "max": s.scoreRange.Max},
	}

	all, err := s.store.List(ctx)
	if err != nil {
		s.logger.Warn(ctx, "stats unavailable", logger.Error(err))
		stats["error"] = err.Error()
		return stats
	}
	teams := len(roster.DistinctTeams(all))
	total := 0
	for _, st := range all {
		total += st.Score
	}
	stats["totalStudents"] = len(all)
	stats["totalTeams"] = teams
	stats["averageScore"] = roster.Average(total, len(all))
	metrics.SetRosterSize(len(all), teams)
	return stats
}

// refreshGauges updates the roster size metrics after a write.
func (s *Service) refreshGauges(ctx context.Context) {
	all, err := s.store.List(ctx)
	if err != nil {
		return
	}
	metrics.SetRosterSize(len(all), len(roster.DistinctTeams(all)))
}

func (s *Service) authorize(ctx context.Context, sess Session, op string) error {
	if !sess.Authenticated() {
		s.logger.Warn(ctx, "anonymous write rejected", logger.String("op", op))
		return ErrUnauthenticated
	}
	if !sess.IsAdmin() {
		s.logger.Warn(ctx, "write rejected",
			logger.String("op", op),
			logger.String("user_id", sess.UserID),
			logger.String("role", string(sess.Role)),
		)
		return ErrForbidden
	}
	return nil
}
