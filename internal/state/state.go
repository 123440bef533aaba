// Package state persists the last selected workout and the session history
// in a small sqlite database under the XDG data directory.
package state

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	appName      = "tabata"
	dbFileName   = "tabata.db"
	saveDebounce = 500 * time.Millisecond
)

type Manager struct {
	db        *sql.DB
	saveMu    sync.Mutex
	saveTimer *time.Timer
	pending   *LastWorkout
}

// Open opens the database at the default XDG location.
func Open() (*Manager, error) {
	dbPath, err := getDBPath()
	if err != nil {
		return nil, err
	}
	return OpenPath(dbPath)
}

// OpenPath opens (creating if needed) the database at path. ":memory:" is
// accepted for tests.
func OpenPath(path string) (*Manager, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// A single connection keeps an in-memory database alive and serializes writers.
	db.SetMaxOpenConns(1)

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Manager{db: db}, nil
}

// Close flushes a pending SaveLastWorkout and closes the database.
func (m *Manager) Close() error {
	m.saveMu.Lock()
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	pending := m.pending
	m.pending = nil
	m.saveMu.Unlock()

	if pending != nil {
		_ = saveLastWorkout(m.db, *pending)
	}

	return m.db.Close()
}

func (m *Manager) GetLastWorkout() (*LastWorkout, error) {
	return getLastWorkout(m.db)
}

// SaveLastWorkout stores w after a short delay. Calls in quick succession,
// as when cycling through presets, only write the last one.
func (m *Manager) SaveLastWorkout(w LastWorkout) {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	m.pending = &w

	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}

	m.saveTimer = time.AfterFunc(saveDebounce, func() {
		m.saveMu.Lock()
		pending := m.pending
		m.pending = nil
		m.saveMu.Unlock()

		if pending != nil {
			_ = saveLastWorkout(m.db, *pending)
		}
	})
}

func (m *Manager) RecordSession(s Session) error {
	return recordSession(m.db, s)
}

func (m *Manager) RecentSessions(limit int) ([]Session, error) {
	return recentSessions(m.db, limit)
}

func (m *Manager) Totals() (Totals, error) {
	return totals(m.db)
}

func getDBPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}
