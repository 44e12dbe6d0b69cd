// Package storage provides SQLite-based persistence for play sessions and
// the virtual-device command archive.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/app4dog/game-play/internal/bluetooth"
	"github.com/app4dog/game-play/internal/sim"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// SessionEntry represents one finished play session.
type SessionEntry struct {
	ID           int64
	CritterID    string
	Score        int
	Level        int
	Interactions int64
	SoundsPlayed int64
	Ticks        int64
	CreatedAt    time.Time
}

// CommandEntry represents one archived virtual-device command.
type CommandEntry struct {
	ID        int64
	DeviceID  string
	Command   string
	Response  string
	CreatedAt time.Time
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
			critter_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			level INTEGER NOT NULL DEFAULT 1,
			interactions INTEGER NOT NULL DEFAULT 0,
			sounds_played INTEGER NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_critter_id ON sessions(critter_id);
		CREATE INDEX IF NOT EXISTS idx_sessions_top ON sessions(critter_id, score DESC);

		CREATE TABLE IF NOT EXISTS device_commands (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			device_id TEXT NOT NULL,
			command TEXT NOT NULL,
			response TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_device_commands_device_id ON device_commands(device_id);
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

// SaveSession records a finished play session.
// Returns the ID of the inserted record.
func (s *Store) SaveSession(critterID string, stats sim.SessionStats) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO sessions (critter_id, score, level, interactions, sounds_played, ticks)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		critterID, stats.Score, stats.Level,
		int64(stats.Interactions), int64(stats.SoundsPlayed), int64(stats.Ticks),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopSessions retrieves the highest-scoring sessions for the given critter.
// Results are ordered by score descending.
func (s *Store) TopSessions(critterID string, limit int) ([]SessionEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, critter_id, score, level, interactions, sounds_played, ticks, created_at
		 FROM sessions
		 WHERE critter_id = ?
		 ORDER BY score DESC
		 LIMIT ?`,
		critterID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	return scanSessions(rows)
}

// RecentSessions retrieves the most recent sessions across all critters.
func (s *Store) RecentSessions(limit int) ([]SessionEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, critter_id, score, level, interactions, sounds_played, ticks, created_at
		 FROM sessions
		 ORDER BY created_at DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	return scanSessions(rows)
}

func scanSessions(rows *sql.Rows) ([]SessionEntry, error) {
	var entries []SessionEntry
	for rows.Next() {
		var e SessionEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.CritterID, &e.Score, &e.Level,
			&e.Interactions, &e.SoundsPlayed, &e.Ticks, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseCreatedAt(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the highest score recorded for the given critter.
// Returns 0 if no sessions exist.
func (s *Store) HighScore(critterID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM sessions WHERE critter_id = ?",
		critterID,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearSessions deletes all sessions for the given critter.
func (s *Store) ClearSessions(critterID string) error {
	_, err := s.db.Exec("DELETE FROM sessions WHERE critter_id = ?", critterID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear sessions: %w", err)
	}
	return nil
}

// ArchiveCommands appends the virtual-device command log to the archive.
func (s *Store) ArchiveCommands(entries []bluetooth.CommandLogEntry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	stmt, err := tx.Prepare(
		"INSERT INTO device_commands (device_id, command, response) VALUES (?, ?, ?)")
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("storage: cannot prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.Exec(string(e.DeviceID), e.Command, e.Response); err != nil {
			tx.Rollback()
			return fmt.Errorf("storage: cannot archive command: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit archive: %w", err)
	}
	return nil
}

// DeviceCommands retrieves archived commands for one device, newest first.
func (s *Store) DeviceCommands(deviceID string, limit int) ([]CommandEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(
		`SELECT id, device_id, command, response, created_at
		 FROM device_commands
		 WHERE device_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		deviceID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query device commands: %w", err)
	}
	defer rows.Close()

	var entries []CommandEntry
	for rows.Next() {
		var e CommandEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.DeviceID, &e.Command, &e.Response, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseCreatedAt(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// CritterStats contains aggregated statistics for one critter.
type CritterStats struct {
	CritterID    string
	Sessions     int
	HighScore    int
	AvgScore     float64
	Interactions int64
	LastPlayed   time.Time
}

// GetCritterStats retrieves aggregated statistics for a specific critter.
func (s *Store) GetCritterStats(critterID string) (*CritterStats, error) {
	stats := &CritterStats{CritterID: critterID}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COALESCE(SUM(interactions), 0)
		 FROM sessions WHERE critter_id = ?`,
		critterID,
	).Scan(&stats.Sessions, &stats.HighScore, &stats.AvgScore, &stats.Interactions)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get critter stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM sessions WHERE critter_id = ? ORDER BY created_at DESC LIMIT 1`,
		critterID,
	).Scan(&lastPlayed)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseCreatedAt(lastPlayed)
	}

	return stats, nil
}

// GetAllCritterStats retrieves statistics for every critter that has been
// played.
func (s *Store) GetAllCritterStats() (map[string]*CritterStats, error) {
	rows, err := s.db.Query(
		`SELECT critter_id, COUNT(*), MAX(score), AVG(score), SUM(interactions), MAX(created_at)
		 FROM sessions
		 GROUP BY critter_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all critter stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*CritterStats)
	for rows.Next() {
		var c CritterStats
		var lastPlayed any
		if err := rows.Scan(&c.CritterID, &c.Sessions, &c.HighScore, &c.AvgScore, &c.Interactions, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		c.LastPlayed = parseCreatedAt(lastPlayed)
		stats[c.CritterID] = &c
	}

	return stats, nil
}

// parseCreatedAt handles both time.Time and string datetime values.
func parseCreatedAt(v any) time.Time {
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
