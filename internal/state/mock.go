package state

import (
	"slices"
	"sync"
	"time"
)

// Mock is an in-memory Interface for tests.
type Mock struct {
	mu        sync.Mutex
	last      *LastWorkout
	sessions  []Session // newest last
	recordErr error
	closed    bool
}

// NewMock creates a new mock state manager for testing.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) GetLastWorkout() (*LastWorkout, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last, nil
}

func (m *Mock) SaveLastWorkout(w LastWorkout) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.last = &w
}

func (m *Mock) RecordSession(s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.recordErr != nil {
		return m.recordErr
	}
	m.sessions = append(m.sessions, s)
	return nil
}

func (m *Mock) RecentSessions(limit int) ([]Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := slices.Clone(m.sessions)
	slices.Reverse(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *Mock) Totals() (Totals, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var t Totals
	for _, s := range m.sessions {
		t.Sessions++
		if s.Completed {
			t.Completed++
		}
		t.WorkTime += s.WorkTime()
		if s.StartedAt.After(t.Last) {
			t.Last = s.StartedAt
		}
	}
	return t, nil
}

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Test helpers

func (m *Mock) SetRecordError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recordErr = err
}

func (m *Mock) Sessions() []Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.sessions)
}

func (m *Mock) LastWorkout() *LastWorkout {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last
}

// AddSession appends a session started at the given time.
func (m *Mock) AddSession(s Session, startedAt time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.StartedAt = startedAt
	m.sessions = append(m.sessions, s)
}

func (m *Mock) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
