package state

import (
	"database/sql"
	"time"

	dbutil "github.com/llehouerou/tabata/internal/db"
	"github.com/llehouerou/tabata/internal/workout"
)

// maxSessions bounds the history table; older rows are pruned on insert.
const maxSessions = 500

// Session is one started workout, finished or stopped early.
type Session struct {
	StartedAt  time.Time
	EndedAt    time.Time
	Preset     string
	Workout    workout.Config
	RoundsDone int
	Completed  bool
}

// WorkTime is the time spent in work rounds.
func (s Session) WorkTime() time.Duration {
	return s.Workout.Round * time.Duration(s.RoundsDone)
}

// Totals aggregates the whole history.
type Totals struct {
	Sessions  int
	Completed int
	WorkTime  time.Duration
	Last      time.Time // zero when there is no history
}

func recordSession(sqlDB *sql.DB, s Session) error {
	return dbutil.WithTx(sqlDB, func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO sessions (started_at, ended_at, preset, rounds, round_ms, rest_ms, rounds_done, completed)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, s.StartedAt.Unix(), s.EndedAt.Unix(), dbutil.NullString(s.Preset),
			s.Workout.Rounds, dbutil.Millis(s.Workout.Round), dbutil.Millis(s.Workout.Rest),
			s.RoundsDone, s.Completed)
		if err != nil {
			return err
		}

		_, err = tx.Exec(`
			DELETE FROM sessions WHERE id NOT IN (
				SELECT id FROM sessions ORDER BY started_at DESC, id DESC LIMIT ?
			)
		`, maxSessions)
		return err
	})
}

func recentSessions(db *sql.DB, limit int) ([]Session, error) {
	rows, err := db.Query(`
		SELECT started_at, ended_at, preset, rounds, round_ms, rest_ms, rounds_done, completed
		FROM sessions
		ORDER BY started_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var s Session
		var startedAt, endedAt, roundMS, restMS int64
		var preset sql.NullString

		err := rows.Scan(&startedAt, &endedAt, &preset, &s.Workout.Rounds, &roundMS, &restMS,
			&s.RoundsDone, &s.Completed)
		if err != nil {
			return nil, err
		}

		s.StartedAt = time.Unix(startedAt, 0)
		s.EndedAt = time.Unix(endedAt, 0)
		s.Preset = dbutil.NullStringValue(preset)
		s.Workout.Round = dbutil.FromMillis(roundMS)
		s.Workout.Rest = dbutil.FromMillis(restMS)
		sessions = append(sessions, s)
	}

	return sessions, rows.Err()
}

func totals(db *sql.DB) (Totals, error) {
	var t Totals
	var workMS int64
	var last sql.NullInt64

	err := db.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(completed), 0), COALESCE(SUM(rounds_done * round_ms), 0), MAX(started_at)
		FROM sessions
	`).Scan(&t.Sessions, &t.Completed, &workMS, &last)
	if err != nil {
		return Totals{}, err
	}

	t.WorkTime = dbutil.FromMillis(workMS)
	if last.Valid {
		t.Last = time.Unix(last.Int64, 0)
	}
	return t, nil
}
