// ABOUTME: SQLite-backed storage substrate (pure Go, no CGO).
// ABOUTME: One records table keyed by (partition, id); failures swallowed.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// sqliteKV keeps all partitions in one table. WAL mode gives atomic
// per-write durability, which is all the adapter contract needs.
type sqliteKV struct {
	db *sql.DB
}

// OpenSQLite opens or creates a SQLite database at dbPath and returns an
// adapter over it.
func OpenSQLite(dbPath string) (Adapter, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("execute %s: %w", pragma, err)
		}
	}

	schema := `
	CREATE TABLE IF NOT EXISTS records (
		partition TEXT NOT NULL,
		id TEXT NOT NULL,
		value BLOB NOT NULL,
		PRIMARY KEY (partition, id)
	);`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return newAdapter(&sqliteKV{db: db}), nil
}

func (s *sqliteKV) get(partition, id string) ([]byte, bool) {
	var value []byte
	err := s.db.QueryRow(
		"SELECT value FROM records WHERE partition = ? AND id = ?",
		partition, id,
	).Scan(&value)
	if err != nil {
		return nil, false
	}
	return value, true
}

func (s *sqliteKV) getAll(partition string) [][]byte {
	rows, err := s.db.Query("SELECT value FROM records WHERE partition = ?", partition)
	if err != nil {
		return nil
	}
	defer rows.Close()

	var out [][]byte
	for rows.Next() {
		var value []byte
		if err := rows.Scan(&value); err != nil {
			return nil
		}
		out = append(out, value)
	}
	if rows.Err() != nil {
		return nil
	}
	return out
}

func (s *sqliteKV) put(partition, id string, value []byte) {
	_, _ = s.db.Exec(
		"INSERT INTO records (partition, id, value) VALUES (?, ?, ?) ON CONFLICT (partition, id) DO UPDATE SET value = excluded.value",
		partition, id, value,
	)
}

func (s *sqliteKV) delete(partition, id string) {
	_, _ = s.db.Exec("DELETE FROM records WHERE partition = ? AND id = ?", partition, id)
}

func (s *sqliteKV) clear(partition string) {
	_, _ = s.db.Exec("DELETE FROM records WHERE partition = ?", partition)
}

func (s *sqliteKV) close() error { return s.db.Close() }
