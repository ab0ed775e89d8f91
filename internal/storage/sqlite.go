// Package storage provides SQLite-based persistence for player stats, run
// history and the editor's custom level.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Counter names stored in the counters table.
const (
	counterJumps    = "jumps"
	counterDeaths   = "deaths"
	counterAttempts = "attempts"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// RunEntry is one finished run: a crash or a completed level.
type RunEntry struct {
	ID       int64
	LevelID  int
	Percent  int
	Victory  bool
	PlayedAt time.Time
}

// LevelStats contains aggregated statistics for a level.
type LevelStats struct {
	LevelID    int
	Runs       int
	Victories  int
	Best       int
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

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
// Timestamps are unix seconds.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS counters (
			name TEXT PRIMARY KEY,
			value INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS progress (
			level_id INTEGER PRIMARY KEY,
			best INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS achievements (
			id TEXT PRIMARY KEY,
			unlocked_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level_id INTEGER NOT NULL,
			percent INTEGER NOT NULL,
			victory INTEGER NOT NULL DEFAULT 0,
			played_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_level_id ON runs(level_id);
		CREATE INDEX IF NOT EXISTS idx_runs_played_at ON runs(played_at DESC);

		CREATE TABLE IF NOT EXISTS custom_level (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			data BLOB NOT NULL,
			updated_at INTEGER NOT NULL
		);
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

// Counters returns the lifetime jump, death and attempt counts.
func (s *Store) Counters() (jumps, deaths, attempts int, err error) {
	rows, err := s.db.Query("SELECT name, value FROM counters")
	if err != nil {
		return 0, 0, 0, fmt.Errorf("storage: cannot query counters: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		var value int
		if err := rows.Scan(&name, &value); err != nil {
			return 0, 0, 0, fmt.Errorf("storage: cannot scan counter: %w", err)
		}
		switch name {
		case counterJumps:
			jumps = value
		case counterDeaths:
			deaths = value
		case counterAttempts:
			attempts = value
		}
	}
	if err := rows.Err(); err != nil {
		return 0, 0, 0, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return jumps, deaths, attempts, nil
}

// SaveCounters overwrites the lifetime counters.
func (s *Store) SaveCounters(jumps, deaths, attempts int) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	for _, c := range []struct {
		name  string
		value int
	}{
		{counterJumps, jumps},
		{counterDeaths, deaths},
		{counterAttempts, attempts},
	} {
		_, err := tx.Exec(
			`INSERT INTO counters (name, value) VALUES (?, ?)
			 ON CONFLICT(name) DO UPDATE SET value = excluded.value`,
			c.name, c.value,
		)
		if err != nil {
			return fmt.Errorf("storage: cannot save counter %s: %w", c.name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit counters: %w", err)
	}
	return nil
}

// Progress returns the best percent per level id.
func (s *Store) Progress() (map[int]int, error) {
	rows, err := s.db.Query("SELECT level_id, best FROM progress")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query progress: %w", err)
	}
	defer rows.Close()

	progress := make(map[int]int)
	for rows.Next() {
		var id, best int
		if err := rows.Scan(&id, &best); err != nil {
			return nil, fmt.Errorf("storage: cannot scan progress: %w", err)
		}
		progress[id] = best
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return progress, nil
}

// SaveProgress records a percent for a level. The stored best never
// decreases.
func (s *Store) SaveProgress(levelID, percent int) error {
	_, err := s.db.Exec(
		`INSERT INTO progress (level_id, best) VALUES (?, ?)
		 ON CONFLICT(level_id) DO UPDATE SET best = MAX(best, excluded.best)`,
		levelID, percent,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save progress: %w", err)
	}
	return nil
}

// Achievements returns unlocked achievement ids with their unlock time.
func (s *Store) Achievements() (map[string]time.Time, error) {
	rows, err := s.db.Query("SELECT id, unlocked_at FROM achievements")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query achievements: %w", err)
	}
	defer rows.Close()

	unlocked := make(map[string]time.Time)
	for rows.Next() {
		var id string
		var at int64
		if err := rows.Scan(&id, &at); err != nil {
			return nil, fmt.Errorf("storage: cannot scan achievement: %w", err)
		}
		unlocked[id] = time.Unix(at, 0)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return unlocked, nil
}

// UnlockAchievement stores an unlock. The first unlock time is kept.
func (s *Store) UnlockAchievement(id string, at time.Time) error {
	_, err := s.db.Exec(
		"INSERT OR IGNORE INTO achievements (id, unlocked_at) VALUES (?, ?)",
		id, at.Unix(),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot unlock achievement: %w", err)
	}
	return nil
}

// RecordRun appends a finished run to the history.
func (s *Store) RecordRun(levelID, percent int, victory bool, at time.Time) error {
	_, err := s.db.Exec(
		"INSERT INTO runs (level_id, percent, victory, played_at) VALUES (?, ?, ?, ?)",
		levelID, percent, victory, at.Unix(),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot record run: %w", err)
	}
	return nil
}

// RecentRuns retrieves the most recent runs, newest first.
func (s *Store) RecentRuns(limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, level_id, percent, victory, played_at
		 FROM runs
		 ORDER BY played_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var entries []RunEntry
	for rows.Next() {
		var e RunEntry
		var playedAt int64
		if err := rows.Scan(&e.ID, &e.LevelID, &e.Percent, &e.Victory, &playedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.PlayedAt = time.Unix(playedAt, 0)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// LevelSummaries retrieves run statistics for every level that has been
// played, keyed by level id.
func (s *Store) LevelSummaries() (map[int]*LevelStats, error) {
	rows, err := s.db.Query(
		`SELECT level_id, COUNT(*), COALESCE(SUM(victory), 0), MAX(percent), MAX(played_at)
		 FROM runs
		 GROUP BY level_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[int]*LevelStats)
	for rows.Next() {
		var ls LevelStats
		var lastPlayed int64
		if err := rows.Scan(&ls.LevelID, &ls.Runs, &ls.Victories, &ls.Best, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		ls.LastPlayed = time.Unix(lastPlayed, 0)
		stats[ls.LevelID] = &ls
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// SaveCustomLevel stores the editor level document, replacing the
// previous one.
func (s *Store) SaveCustomLevel(data []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO custom_level (id, data, updated_at) VALUES (1, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		data, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save custom level: %w", err)
	}
	return nil
}

// CustomLevel returns the stored editor level document, or nil if none
// has been saved.
func (s *Store) CustomLevel() ([]byte, error) {
	var data []byte
	err := s.db.QueryRow("SELECT data FROM custom_level WHERE id = 1").Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot load custom level: %w", err)
	}
	return data, nil
}

// Reset deletes all stats and run history. The custom level is kept.
func (s *Store) Reset() error {
	_, err := s.db.Exec(`
		DELETE FROM counters;
		DELETE FROM progress;
		DELETE FROM achievements;
		DELETE FROM runs;
	`)
	if err != nil {
		return fmt.Errorf("storage: cannot reset stats: %w", err)
	}
	return nil
}
