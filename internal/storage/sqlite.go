// Package storage provides SQLite-based persistence for play sessions.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for session persistence.
type Store struct {
	db *sql.DB
}

// SessionEntry represents one recorded crawl through a level.
type SessionEntry struct {
	ID       int64
	LevelID  string
	Frames   int
	Duration time.Duration
	PlayedAt time.Time
}

// LevelStats contains aggregated statistics for one level.
type LevelStats struct {
	LevelID    string
	Sessions   int
	TotalTime  time.Duration
	LongestRun time.Duration
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level_id TEXT NOT NULL,
			frames INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL,
			played_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_level_id ON sessions(level_id);
		CREATE INDEX IF NOT EXISTS idx_sessions_longest ON sessions(level_id, duration_ms DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordSession saves a finished crawl.
// Returns the ID of the inserted record.
func (s *Store) RecordSession(levelID string, frames int, duration time.Duration) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO sessions (level_id, frames, duration_ms) VALUES (?, ?, ?)",
		levelID, frames, duration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentSessions retrieves the most recently played sessions across all
// levels, newest first.
func (s *Store) RecentSessions(limit int) ([]SessionEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	return s.querySessions(
		`SELECT id, level_id, frames, duration_ms, played_at
		 FROM sessions
		 ORDER BY played_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
}

// LongestRuns retrieves the longest sessions for the given level.
// Results are ordered by duration descending.
func (s *Store) LongestRuns(levelID string, limit int) ([]SessionEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	return s.querySessions(
		`SELECT id, level_id, frames, duration_ms, played_at
		 FROM sessions
		 WHERE level_id = ?
		 ORDER BY duration_ms DESC
		 LIMIT ?`,
		levelID, limit,
	)
}

// querySessions runs a query returning full session rows.
func (s *Store) querySessions(query string, args ...any) ([]SessionEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var entries []SessionEntry
	for rows.Next() {
		var e SessionEntry
		var durationMS int64
		var playedAt any
		if err := rows.Scan(&e.ID, &e.LevelID, &e.Frames, &durationMS, &playedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Duration = time.Duration(durationMS) * time.Millisecond
		e.PlayedAt = parseTimestamp(playedAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// LevelTotals retrieves aggregated statistics for every level that has
// been played.
func (s *Store) LevelTotals() (map[string]*LevelStats, error) {
	rows, err := s.db.Query(
		`SELECT level_id, COUNT(*), SUM(duration_ms), MAX(duration_ms), MAX(played_at)
		 FROM sessions
		 GROUP BY level_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query level totals: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*LevelStats)
	for rows.Next() {
		var ls LevelStats
		var totalMS, longestMS int64
		var lastPlayed any
		if err := rows.Scan(&ls.LevelID, &ls.Sessions, &totalMS, &longestMS, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		ls.TotalTime = time.Duration(totalMS) * time.Millisecond
		ls.LongestRun = time.Duration(longestMS) * time.Millisecond
		ls.LastPlayed = parseTimestamp(lastPlayed)
		stats[ls.LevelID] = &ls
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// parseTimestamp converts a scanned played_at value.
// The driver may hand back either time.Time or the raw string.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
