package state

import (
	"database/sql"
	"errors"

	dbutil "github.com/llehouerou/tabata/internal/db"
	"github.com/llehouerou/tabata/internal/workout"
)

// LastWorkout is the workout selected when the app last exited.
type LastWorkout struct {
	Workout workout.Config
	Preset  string // empty for a custom workout
}

func getLastWorkout(db *sql.DB) (*LastWorkout, error) {
	row := db.QueryRow(`
		SELECT rounds, round_ms, rest_ms, background_track, preset
		FROM last_workout WHERE id = 1
	`)

	var w LastWorkout
	var roundMS, restMS int64
	var track, preset sql.NullString

	err := row.Scan(&w.Workout.Rounds, &roundMS, &restMS, &track, &preset)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // nothing saved yet on first run
	}
	if err != nil {
		return nil, err
	}

	w.Workout.Round = dbutil.FromMillis(roundMS)
	w.Workout.Rest = dbutil.FromMillis(restMS)
	w.Workout.BackgroundTrack = dbutil.NullStringValue(track)
	w.Preset = dbutil.NullStringValue(preset)

	return &w, nil
}

func saveLastWorkout(db *sql.DB, w LastWorkout) error {
	_, err := db.Exec(`
		INSERT INTO last_workout (id, rounds, round_ms, rest_ms, background_track, preset)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			rounds = excluded.rounds,
			round_ms = excluded.round_ms,
			rest_ms = excluded.rest_ms,
			background_track = excluded.background_track,
			preset = excluded.preset
	`, w.Workout.Rounds, dbutil.Millis(w.Workout.Round), dbutil.Millis(w.Workout.Rest),
		dbutil.NullString(w.Workout.BackgroundTrack), dbutil.NullString(w.Preset))

	return err
}
