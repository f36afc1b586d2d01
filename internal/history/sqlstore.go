package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schemaVersion = 1

var schema = `
CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL);
CREATE TABLE IF NOT EXISTS detections (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	file_name  TEXT NOT NULL,
	sha256     TEXT NOT NULL,
	format     TEXT NOT NULL,
	confidence REAL NOT NULL,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_detections_created ON detections(created_at);
`

// nowUTC returns the current UTC time as an ISO 8601 string.
func nowUTC() string { return time.Now().UTC().Format(time.RFC3339) }

// SqlStore implements Store with SQLite.
type SqlStore struct {
	db *sql.DB
}

// Open opens or creates a SQLite DB at path and runs migrations.
// Creates the parent directory (e.g. .testmorph) if it does not exist.
func Open(path string) (*SqlStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	s := &SqlStore{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SqlStore) migrate() error {
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	var version int
	err := s.db.QueryRow(`SELECT version FROM schema_version LIMIT 1`).Scan(&version)
	switch {
	case err == sql.ErrNoRows:
		if _, err := s.db.Exec(`INSERT INTO schema_version (version) VALUES (?)`, schemaVersion); err != nil {
			return fmt.Errorf("record schema version: %w", err)
		}
	case err != nil:
		return fmt.Errorf("read schema version: %w", err)
	case version > schemaVersion:
		return fmt.Errorf("history db schema v%d is newer than this build (v%d)", version, schemaVersion)
	}
	return nil
}

// SaveDetection inserts one record and returns its row id.
func (s *SqlStore) SaveDetection(rec *Record) (int64, error) {
	createdAt := rec.CreatedAt
	if createdAt == "" {
		createdAt = nowUTC()
	}
	res, err := s.db.Exec(
		`INSERT INTO detections (file_name, sha256, format, confidence, created_at) VALUES (?, ?, ?, ?, ?)`,
		rec.FileName, rec.SHA256, rec.Format, rec.Confidence, createdAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert detection: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("detection id: %w", err)
	}
	return id, nil
}

// ListRecent returns up to limit records, newest first. limit <= 0 means all.
func (s *SqlStore) ListRecent(limit int) ([]*Record, error) {
	q := `SELECT id, file_name, sha256, format, confidence, created_at FROM detections ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("list detections: %w", err)
	}
	defer rows.Close()

	var out []*Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.FileName, &r.SHA256, &r.Format, &r.Confidence, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan detection: %w", err)
		}
		out = append(out, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate detections: %w", err)
	}
	return out, nil
}

// Close releases the underlying DB handle.
func (s *SqlStore) Close() error { return s.db.Close() }
