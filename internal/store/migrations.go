package store

import (
	"database/sql"
	"fmt"
)

// migrate creates the schema if it doesn't exist and applies any
// pending migrations. Versioning is a simple user_version pragma.
func migrate(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}

	for v := version; v < len(migrations); v++ {
		if _, err := db.Exec(migrations[v]); err != nil {
			return fmt.Errorf("applying migration %d: %w", v+1, err)
		}
		if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", v+1)); err != nil {
			return fmt.Errorf("bumping schema version to %d: %w", v+1, err)
		}
	}

	return nil
}

var migrations = []string{
	`
CREATE TABLE IF NOT EXISTS auth (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	access_token TEXT NOT NULL,
	refresh_token TEXT NOT NULL,
	expires_at INTEGER NOT NULL,
	athlete_id INTEGER NOT NULL,
	athlete_name TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS activities (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	sport_type TEXT NOT NULL,
	start_date TEXT NOT NULL,
	start_date_local TEXT NOT NULL,
	distance REAL NOT NULL,
	moving_time INTEGER NOT NULL,
	elapsed_time INTEGER NOT NULL,
	total_elevation_gain REAL NOT NULL,
	average_heartrate REAL,
	max_heartrate REAL,
	average_speed REAL NOT NULL DEFAULT 0,
	synced_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_activities_start_date_local
	ON activities(start_date_local);

CREATE TABLE IF NOT EXISTS activity_loads (
	activity_id INTEGER PRIMARY KEY REFERENCES activities(id) ON DELETE CASCADE,
	trimp REAL NOT NULL,
	hrss REAL NOT NULL,
	computed_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS sync_state (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`,
}
