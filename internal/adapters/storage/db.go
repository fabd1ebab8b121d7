package storage

import (
	"database/sql"
	"fmt"
)

// InitDB initializes the database schema.
// PRE: db is a valid database connection
// POST: All tables are created, WAL mode enabled
func InitDB(db *sql.DB) error {
	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	// Enable foreign key enforcement
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Create tables
	schema := `
	CREATE TABLE IF NOT EXISTS feis (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		date TEXT NOT NULL,
		venue TEXT NOT NULL DEFAULT '',
		organizer_email TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		venue_open TEXT NOT NULL DEFAULT '',
		venue_close TEXT NOT NULL DEFAULT '',
		lunch_window_start TEXT NOT NULL DEFAULT '',
		lunch_window_end TEXT NOT NULL DEFAULT '',
		lunch_duration_minutes INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS stage (
		id TEXT PRIMARY KEY,
		feis_id TEXT NOT NULL,
		name TEXT NOT NULL,
		sequence INTEGER NOT NULL DEFAULT 0,
		FOREIGN KEY (feis_id) REFERENCES feis(id)
	);

	CREATE TABLE IF NOT EXISTS adjudicator (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		school_id TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS judge_coverage (
		id TEXT PRIMARY KEY,
		stage_id TEXT NOT NULL,
		adjudicator_id TEXT NOT NULL,
		day TEXT NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		FOREIGN KEY (stage_id) REFERENCES stage(id),
		FOREIGN KEY (adjudicator_id) REFERENCES adjudicator(id)
	);

	CREATE TABLE IF NOT EXISTS adjudicator_availability (
		id TEXT PRIMARY KEY,
		adjudicator_id TEXT NOT NULL,
		day TEXT NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		type TEXT NOT NULL,
		FOREIGN KEY (adjudicator_id) REFERENCES adjudicator(id)
	);

	CREATE TABLE IF NOT EXISTS dancer (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		parent_id TEXT NOT NULL,
		school_id TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS competition (
		id TEXT PRIMARY KEY,
		feis_id TEXT NOT NULL,
		name TEXT NOT NULL,
		min_age INTEGER NOT NULL,
		max_age INTEGER NOT NULL,
		level TEXT NOT NULL,
		gender TEXT NOT NULL DEFAULT '',
		dance_type TEXT NOT NULL DEFAULT '',
		scoring_method TEXT NOT NULL,
		bars INTEGER NOT NULL DEFAULT 0,
		tempo_bpm INTEGER NOT NULL DEFAULT 0,
		stage_id TEXT NOT NULL DEFAULT '',
		scheduled_start TEXT NOT NULL DEFAULT '',
		duration_minutes INTEGER NOT NULL DEFAULT 0,
		adjudicator_id TEXT NOT NULL DEFAULT '',
		FOREIGN KEY (feis_id) REFERENCES feis(id)
	);

	CREATE TABLE IF NOT EXISTS entry (
		id TEXT PRIMARY KEY,
		competition_id TEXT NOT NULL,
		dancer_id TEXT NOT NULL,
		FOREIGN KEY (competition_id) REFERENCES competition(id),
		FOREIGN KEY (dancer_id) REFERENCES dancer(id)
	);

	CREATE INDEX IF NOT EXISTS idx_stage_feis ON stage(feis_id);
	CREATE INDEX IF NOT EXISTS idx_coverage_stage ON judge_coverage(stage_id);
	CREATE INDEX IF NOT EXISTS idx_availability_adjudicator ON adjudicator_availability(adjudicator_id);
	CREATE INDEX IF NOT EXISTS idx_competition_feis ON competition(feis_id);
	CREATE INDEX IF NOT EXISTS idx_entry_competition ON entry(competition_id);
	CREATE INDEX IF NOT EXISTS idx_entry_dancer ON entry(dancer_id);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}
