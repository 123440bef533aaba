package state

import (
	"database/sql"
)

const currentSchemaVersion = 1

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS last_workout (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			rounds INTEGER NOT NULL,
			round_ms INTEGER NOT NULL,
			rest_ms INTEGER NOT NULL,
			background_track TEXT,
			preset TEXT
		);

		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at INTEGER NOT NULL,
			ended_at INTEGER NOT NULL,
			preset TEXT,
			rounds INTEGER NOT NULL,
			round_ms INTEGER NOT NULL,
			rest_ms INTEGER NOT NULL,
			rounds_done INTEGER NOT NULL,
			completed INTEGER NOT NULL DEFAULT 0
		);

		CREATE INDEX IF NOT EXISTS idx_sessions_started_at ON sessions(started_at DESC);
	`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		INSERT OR IGNORE INTO schema_version (version) VALUES (?)
	`, currentSchemaVersion)
	return err
}
