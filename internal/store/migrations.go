package store

import "fmt"

// currentSchemaVersion is the latest schema version.
const currentSchemaVersion = 1

// Migrate runs forward migrations to bring the database schema up to date.
func (db *DB) Migrate() error {
	// Create the schema_version table if it does not exist.
	if _, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	version := 0
	row := db.conn.QueryRow("SELECT version FROM schema_version LIMIT 1")
	if err := row.Scan(&version); err != nil {
		// No rows means version 0 (fresh database).
		version = 0
	}

	if version < 1 {
		if err := db.migrateV1(); err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
	}

	return nil
}

// migrateV1 creates all initial tables and indexes.
func (db *DB) migrateV1() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS members (
			id    TEXT PRIMARY KEY,
			name  TEXT NOT NULL,
			email TEXT,
			phone TEXT
		)`,

		`CREATE TABLE IF NOT EXISTS member_interactions (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			member_id        TEXT NOT NULL REFERENCES members(id),
			interaction_type TEXT,
			interaction_date TEXT,
			created_at       TEXT
		)`,

		`CREATE TABLE IF NOT EXISTS member_activities (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			member_id     TEXT NOT NULL REFERENCES members(id),
			activity_type TEXT,
			created_at    TEXT
		)`,

		`CREATE TABLE IF NOT EXISTS member_analysis (
			member_id                 TEXT PRIMARY KEY REFERENCES members(id),
			member_name               TEXT NOT NULL,
			email                     TEXT,
			phone                     TEXT,
			engagement_score          REAL NOT NULL,
			engagement_level          TEXT NOT NULL,
			activity_patterns         TEXT NOT NULL,
			last_activity_date        TEXT,
			days_since_last_activity  INTEGER,
			weeks_since_last_activity INTEGER,
			analysis_date             TEXT NOT NULL
		)`,

		// Indexes.
		`CREATE INDEX IF NOT EXISTS idx_interactions_member ON member_interactions(member_id)`,
		`CREATE INDEX IF NOT EXISTS idx_activities_member ON member_activities(member_id)`,
		`CREATE INDEX IF NOT EXISTS idx_analysis_level ON member_analysis(engagement_level)`,
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("executing %q: %w", stmt[:40], err)
		}
	}

	// Set schema version.
	if _, err := tx.Exec("DELETE FROM schema_version"); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", currentSchemaVersion); err != nil {
		return err
	}

	return tx.Commit()
}
