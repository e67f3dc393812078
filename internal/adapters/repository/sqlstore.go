package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"  // postgres driver
	_ "modernc.org/sqlite" // sqlite driver

	"github.com/okian/halloffame/internal/domain/model"
)

// Storage drivers accepted by Open.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

func init() { //nolint:gochecknoinits // teach sqlx the bindvar of the modernc driver name
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)
}

type studentRow struct {
	ID             string `db:"id"`
	Seq            int64  `db:"seq"`
	Name           string `db:"name"`
	NameKey        string `db:"name_key"`
	Score          int    `db:"score"`
	TeamName       string `db:"team_name"`
	TeamKey        string `db:"team_key"`
	ImageURL       string `db:"image_url"`
	ProjectLink    string `db:"project_link"`
	HackathonCount int    `db:"hackathon_count"`
	College        string `db:"college"`
	CreatedAt      int64  `db:"created_at"`
	UpdatedAt      int64  `db:"updated_at"`
}

func toRow(s model.Student) studentRow {
	return studentRow{
		ID:             s.ID,
		Name:           s.Name,
		NameKey:        matchKey(s.Name),
		Score:          s.Score,
		TeamName:       s.TeamName,
		TeamKey:        matchKey(s.TeamName),
		ImageURL:       s.ImageURL,
		ProjectLink:    s.ProjectLink,
		HackathonCount: s.HackathonCount,
		College:        s.College,
		CreatedAt:      s.CreatedAt.UTC().UnixNano(),
		UpdatedAt:      s.UpdatedAt.UTC().UnixNano(),
	}
}

func (r studentRow) student() model.Student {
	return model.Student{
		ID:             r.ID,
		Name:           r.Name,
		Score:          r.Score,
		TeamName:       r.TeamName,
		ImageURL:       r.ImageURL,
		ProjectLink:    r.ProjectLink,
		HackathonCount: r.HackathonCount,
		College:        r.College,
		CreatedAt:      time.Unix(0, r.CreatedAt).UTC(),
		UpdatedAt:      time.Unix(0, r.UpdatedAt).UTC(),
	}
}

type profileRow struct {
	ID    string `db:"id"`
	Email string `db:"email"`
	Role  string `db:"role"`
}

const studentColumns = `id, seq, name, score, team_name, image_url, project_link,
	hackathon_count, college, created_at, updated_at`

// SQLStore is a Store backed by database/sql through sqlx. Queries are
// written with ? placeholders and rebound for the connected driver.
type SQLStore struct {
	db           *sqlx.DB
	maxOpenConns int
	migrate      bool
}

// NewSQLStore wraps an open connection and applies the schema.
func NewSQLStore(ctx context.Context, db *sqlx.DB, opts ...Option) (*SQLStore, error) {
	s := &SQLStore{db: db, migrate: true}
	if db.DriverName() == DriverSQLite {
		s.maxOpenConns = defaultSQLiteOpenConns
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.maxOpenConns > 0 {
		db.SetMaxOpenConns(s.maxOpenConns)
	}
	if s.migrate {
		if err := applyMigrations(ctx, db); err != nil {
			return nil, err
		}
		if err := s.fillMatchKeys(ctx); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Open returns the Store for driver. The memory driver ignores dsn.
func Open(ctx context.Context, driver, dsn string, opts ...Option) (Store, error) {
	switch driver {
	case DriverMemory, "":
		return NewMemoryStore(), nil
	case DriverSQLite, DriverPostgres:
		db, err := sqlx.ConnectContext(ctx, driver, dsn)
		if err != nil {
			return nil, fmt.Errorf("connect %s: %w", driver, err)
		}
		s, err := NewSQLStore(ctx, db, opts...)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
}

func (s *SQLStore) List(ctx context.Context) (out []model.Student, err error) {
	defer func(start time.Time) { observe("list", start, err) }(time.Now())

	var rows []studentRow
	q := `SELECT ` + studentColumns + ` FROM students ORDER BY score DESC, seq ASC`
	if err = s.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	out = make([]model.Student, len(rows))
	for i, r := range rows {
		out[i] = r.student()
	}
	return out, nil
}

func (s *SQLStore) Get(ctx context.Context, id string) (model.Student, error) {
	start := time.Now()
	var row studentRow
	q := s.db.Rebind(`SELECT ` + studentColumns + ` FROM students WHERE id = ?`)
	err := s.db.GetContext(ctx, &row, q, id)
	if errors.Is(err, sql.ErrNoRows) {
		observe("get", start, nil)
		return model.Student{}, fmt.Errorf("student %s: %w", id, ErrNotFound)
	}
	observe("get", start, err)
	if err != nil {
		return model.Student{}, fmt.Errorf("get student %s: %w", id, err)
	}
	return row.student(), nil
}

func (s *SQLStore) FindByNameTeam(ctx context.Context, name, team string) (model.Student, error) {
	start := time.Now()
	var row studentRow
	q := s.db.Rebind(`SELECT ` + studentColumns + ` FROM students
		WHERE name_key = ? AND team_key = ?
		ORDER BY seq ASC LIMIT 1`)
	err := s.db.GetContext(ctx, &row, q, matchKey(name), matchKey(team))
	if errors.Is(err, sql.ErrNoRows) {
		observe("find", start, nil)
		return model.Student{}, fmt.Errorf("student %q in team %q: %w", name, team, ErrNotFound)
	}
	observe("find", start, err)
	if err != nil {
		return model.Student{}, fmt.Errorf("find student: %w", err)
	}
	return row.student(), nil
}

func (s *SQLStore) Insert(ctx context.Context, st model.Student) (err error) {
	defer func(start time.Time) { observe("insert", start, err) }(time.Now())

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin insert: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var exists int
	err = tx.GetContext(ctx, &exists, tx.Rebind(`SELECT COUNT(*) FROM students WHERE id = ?`), st.ID)
	if err != nil {
		return fmt.Errorf("check student %s: %w", st.ID, err)
	}
	if exists > 0 {
		return fmt.Errorf("student %s: %w", st.ID, ErrAlreadyExists)
	}

	var seq int64
	if err = tx.GetContext(ctx, &seq, `SELECT COALESCE(MAX(seq), 0) + 1 FROM students`); err != nil {
		return fmt.Errorf("next seq: %w", err)
	}
	row := toRow(st)
	row.Seq = seq
	_, err = tx.NamedExecContext(ctx, `INSERT INTO students (`+studentColumns+`, name_key, team_key)
		VALUES (:id, :seq, :name, :score, :team_name, :image_url, :project_link,
			:hackathon_count, :college, :created_at, :updated_at, :name_key, :team_key)`, row)
	if err != nil {
		return fmt.Errorf("insert student %s: %w", st.ID, err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit insert: %w", err)
	}
	return nil
}

func (s *SQLStore) Update(ctx context.Context, st model.Student) (err error) {
	defer func(start time.Time) { observe("update", start, err) }(time.Now())

	res, err := s.db.NamedExecContext(ctx, `UPDATE students SET
		name = :name, name_key = :name_key, score = :score,
		team_name = :team_name, team_key = :team_key, image_url = :image_url,
		project_link = :project_link, hackathon_count = :hackathon_count,
		college = :college, updated_at = :updated_at
		WHERE id = :id`, toRow(st))
	if err != nil {
		return fmt.Errorf("update student %s: %w", st.ID, err)
	}
	return expectOne(res, "student "+st.ID)
}

func (s *SQLStore) Delete(ctx context.Context, id string) (err error) {
	defer func(start time.Time) { observe("delete", start, err) }(time.Now())

	res, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM students WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete student %s: %w", id, err)
	}
	return expectOne(res, "student "+id)
}

func (s *SQLStore) DeleteAll(ctx context.Context) (n int, err error) {
	defer func(start time.Time) { observe("delete_all", start, err) }(time.Now())

	res, err := s.db.ExecContext(ctx, `DELETE FROM students`)
	if err != nil {
		return 0, fmt.Errorf("delete students: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete students: %w", err)
	}
	return int(affected), nil
}

func (s *SQLStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM students`); err != nil {
		return 0, fmt.Errorf("count students: %w", err)
	}
	return n, nil
}

func (s *SQLStore) Profile(ctx context.Context, userID string) (model.Profile, error) {
	var row profileRow
	err := s.db.GetContext(ctx, &row, s.db.Rebind(`SELECT id, email, role FROM profiles WHERE id = ?`), userID)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Profile{}, fmt.Errorf("profile %s: %w", userID, ErrNotFound)
	}
	if err != nil {
		return model.Profile{}, fmt.Errorf("get profile %s: %w", userID, err)
	}
	role, err := model.ParseRole(row.Role)
	if err != nil {
		return model.Profile{}, fmt.Errorf("profile %s: %w", userID, err)
	}
	return model.Profile{ID: row.ID, Email: row.Email, Role: role}, nil
}

func (s *SQLStore) UpsertProfile(ctx context.Context, p model.Profile) error {
	_, err := s.db.NamedExecContext(ctx, `INSERT INTO profiles (id, email, role)
		VALUES (:id, :email, :role)
		ON CONFLICT (id) DO UPDATE SET email = excluded.email, role = excluded.role`,
		profileRow{ID: p.ID, Email: p.Email, Role: string(p.Role)})
	if err != nil {
		return fmt.Errorf("upsert profile %s: %w", p.ID, err)
	}
	return nil
}

// fillMatchKeys computes name_key and team_key for rows written before
// those columns existed. A stored name is never blank, so an empty
// name_key marks a row that still needs its keys.
func (s *SQLStore) fillMatchKeys(ctx context.Context) error {
	var rows []studentRow
	err := s.db.SelectContext(ctx, &rows, `SELECT id, name, team_name FROM students WHERE name_key = ''`)
	if err != nil {
		return fmt.Errorf("select unkeyed students: %w", err)
	}
	q := s.db.Rebind(`UPDATE students SET name_key = ?, team_key = ? WHERE id = ?`)
	for _, r := range rows {
		if _, err := s.db.ExecContext(ctx, q, matchKey(r.Name), matchKey(r.TeamName), r.ID); err != nil {
			return fmt.Errorf("key student %s: %w", r.ID, err)
		}
	}
	return nil
}

// Close closes the connection pool.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

func expectOne(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", what, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}
