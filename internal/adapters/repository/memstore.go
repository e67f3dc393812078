package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/okian/halloffame/internal/domain/model"
)

type memRecord struct {
	seq     uint64
	student model.Student
}

// MemoryStore is a mutex-guarded, in-process Store.
type MemoryStore struct {
	mu       sync.RWMutex
	seq      uint64
	students map[string]memRecord
	profiles map[string]model.Profile
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		students: make(map[string]memRecord),
		profiles: make(map[string]model.Profile),
	}
}

// sorted returns the records by score desc, then insertion order.
// Callers must hold at least a read lock.
func (m *MemoryStore) sorted() []memRecord {
	out := make([]memRecord, 0, len(m.students))
	for _, r := range m.students {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].student.Score != out[j].student.Score {
			return out[i].student.Score > out[j].student.Score
		}
		return out[i].seq < out[j].seq
	})
	return out
}

func (m *MemoryStore) List(_ context.Context) ([]model.Student, error) {
	start := time.Now()
	m.mu.RLock()
	records := m.sorted()
	m.mu.RUnlock()

	out := make([]model.Student, len(records))
	for i, r := range records {
		out[i] = r.student
	}
	observe("list", start, nil)
	return out, nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (model.Student, error) {
	start := time.Now()
	m.mu.RLock()
	r, ok := m.students[id]
	m.mu.RUnlock()
	if !ok {
		err := fmt.Errorf("student %s: %w", id, ErrNotFound)
		observe("get", start, err)
		return model.Student{}, err
	}
	observe("get", start, nil)
	return r.student, nil
}

func (m *MemoryStore) FindByNameTeam(_ context.Context, name, team string) (model.Student, error) {
	start := time.Now()
	nameKey, teamKey := matchKey(name), matchKey(team)

	m.mu.RLock()
	defer m.mu.RUnlock()

	var (
		found memRecord
		ok    bool
	)
	for _, r := range m.students {
		if matchKey(r.student.Name) != nameKey || matchKey(r.student.TeamName) != teamKey {
			continue
		}
		if !ok || r.seq < found.seq {
			found, ok = r, true
		}
	}
	if !ok {
		observe("find", start, nil)
		return model.Student{}, fmt.Errorf("student %q in team %q: %w", name, team, ErrNotFound)
	}
	observe("find", start, nil)
	return found.student, nil
}

func (m *MemoryStore) Insert(_ context.Context, s model.Student) error {
	start := time.Now()
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.students[s.ID]; ok {
		err := fmt.Errorf("student %s: %w", s.ID, ErrAlreadyExists)
		observe("insert", start, err)
		return err
	}
	m.seq++
	m.students[s.ID] = memRecord{seq: m.seq, student: s}
	observe("insert", start, nil)
	return nil
}

func (m *MemoryStore) Update(_ context.Context, s model.Student) error {
	start := time.Now()
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.students[s.ID]
	if !ok {
		err := fmt.Errorf("student %s: %w", s.ID, ErrNotFound)
		observe("update", start, err)
		return err
	}
	r.student = s
	m.students[s.ID] = r
	observe("update", start, nil)
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	start := time.Now()
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.students[id]; !ok {
		err := fmt.Errorf("student %s: %w", id, ErrNotFound)
		observe("delete", start, err)
		return err
	}
	delete(m.students, id)
	observe("delete", start, nil)
	return nil
}

func (m *MemoryStore) DeleteAll(_ context.Context) (int, error) {
	start := time.Now()
	m.mu.Lock()
	defer m.mu.Unlock()

	n := len(m.students)
	m.students = make(map[string]memRecord)
	observe("delete_all", start, nil)
	return n, nil
}

func (m *MemoryStore) Count(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.students), nil
}

func (m *MemoryStore) Profile(_ context.Context, userID string) (model.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.profiles[userID]
	if !ok {
		return model.Profile{}, fmt.Errorf("profile %s: %w", userID, ErrNotFound)
	}
	return p, nil
}

func (m *MemoryStore) UpsertProfile(_ context.Context, p model.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[p.ID] = p
	return nil
}

// Close is a no-op.
func (m *MemoryStore) Close() error { return nil }
