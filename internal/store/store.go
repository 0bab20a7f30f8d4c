// Package store persists symbol rows, whitelist entries, and feedback
// records in a SQLite database under .symguard/. Symbol rows are keyed by
// file fingerprint so a fresh process can warm-start without re-parsing
// unchanged files.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"symguard/internal/logging"
	"symguard/internal/types"
)

// Store wraps the SQLite handle. All methods are safe for concurrent use.
type Store struct {
	db     *sql.DB
	mu     sync.RWMutex
	dbPath string
}

// Open initializes the SQLite database at the given path.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db, dbPath: path}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	logging.Store("Opened symbol store at %s", path)
	return s, nil
}

// initialize creates the required tables.
func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS symbol_files (
		path TEXT PRIMARY KEY,
		fingerprint TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS symbols (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		path TEXT NOT NULL,
		name TEXT NOT NULL,
		line INTEGER NOT NULL,
		kind TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_symbols_path ON symbols(path);
	CREATE INDEX IF NOT EXISTS idx_symbols_name ON symbols(name);

	CREATE TABLE IF NOT EXISTS whitelist (
		name TEXT PRIMARY KEY,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS feedback (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		name TEXT NOT NULL,
		verdict TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_feedback_name ON feedback(name);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// SaveFileSymbols replaces the stored symbol rows for a file and records
// its fingerprint.
func (s *Store) SaveFileSymbols(path, fingerprint string, defs map[string][]types.SymbolLocation) error {
	timer := logging.StartTimer(logging.CategoryStore, "SaveFileSymbols")
	defer timer.Stop()

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM symbols WHERE path = ?", path); err != nil {
		return err
	}
	if _, err := tx.Exec(
		`INSERT INTO symbol_files (path, fingerprint, updated_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(path) DO UPDATE SET
		   fingerprint = excluded.fingerprint,
		   updated_at = CURRENT_TIMESTAMP`,
		path, fingerprint,
	); err != nil {
		return err
	}

	stmt, err := tx.Prepare("INSERT INTO symbols (path, name, line, kind) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for name, locs := range defs {
		for _, loc := range locs {
			if _, err := stmt.Exec(path, name, loc.Line, string(loc.Kind)); err != nil {
				return err
			}
		}
	}
	return tx.Commit()
}

// LoadFileSymbols returns the stored symbols for a file when its stored
// fingerprint matches. A fingerprint mismatch means the rows are stale and
// reports found=false.
func (s *Store) LoadFileSymbols(path, fingerprint string) (map[string][]types.SymbolLocation, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var stored string
	err := s.db.QueryRow("SELECT fingerprint FROM symbol_files WHERE path = ?", path).Scan(&stored)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if stored != fingerprint {
		return nil, false, nil
	}

	rows, err := s.db.Query("SELECT name, line, kind FROM symbols WHERE path = ?", path)
	if err != nil {
		return nil, false, err
	}
	defer rows.Close()

	defs := make(map[string][]types.SymbolLocation)
	for rows.Next() {
		var name, kind string
		var line int
		if err := rows.Scan(&name, &line, &kind); err != nil {
			continue
		}
		defs[name] = append(defs[name], types.SymbolLocation{
			File: path,
			Line: line,
			Kind: types.SymbolKind(kind),
		})
	}
	return defs, true, nil
}

// DeleteFileSymbols drops a file's rows, forcing a re-parse next scan.
func (s *Store) DeleteFileSymbols(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM symbols WHERE path = ?", path); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM symbol_files WHERE path = ?", path); err != nil {
		return err
	}
	return tx.Commit()
}

// AddWhitelist persists a name so it survives across sessions.
func (s *Store) AddWhitelist(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("INSERT OR IGNORE INTO whitelist (name) VALUES (?)", name)
	return err
}

// LoadWhitelist returns every persisted whitelist name.
func (s *Store) LoadWhitelist() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT name FROM whitelist ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			continue
		}
		out = append(out, name)
	}
	return out, nil
}

// RecordFeedback appends a feedback row for audit.
func (s *Store) RecordFeedback(sessionID, name string, verdict types.Verdict) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		"INSERT INTO feedback (session_id, name, verdict) VALUES (?, ?, ?)",
		sessionID, name, string(verdict),
	)
	return err
}

// FeedbackCounts returns how many times each verdict was recorded for a
// name, for audit queries.
func (s *Store) FeedbackCounts(name string) (map[types.Verdict]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT verdict, COUNT(*) FROM feedback WHERE name = ? GROUP BY verdict", name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[types.Verdict]int)
	for rows.Next() {
		var verdict string
		var n int
		if err := rows.Scan(&verdict, &n); err != nil {
			continue
		}
		out[types.Verdict(verdict)] = n
	}
	return out, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
