package registry

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when no record exists for the requested document.
var ErrNotFound = errors.New("document not found")

// Record tracks one ingested document. The vector index stores the chunks;
// this registry is the authoritative list of what was ingested, used for
// document listing, stats, and skip-unchanged re-ingestion.
type Record struct {
	Filename   string
	FileHash   string
	FileType   string
	FileSize   int64
	ChunkCount int
	Language   string
	IngestedAt time.Time
}

// Registry is a SQLite-backed document catalog.
type Registry struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS documents (
    filename TEXT PRIMARY KEY,
    file_hash TEXT NOT NULL,
    file_type TEXT NOT NULL DEFAULT '',
    file_size INTEGER NOT NULL DEFAULT 0,
    chunk_count INTEGER NOT NULL DEFAULT 0,
    language TEXT NOT NULL DEFAULT '',
    ingested_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_documents_hash ON documents(file_hash);
`

// Open creates or opens the registry database at the given path.
func Open(path string) (*Registry, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating registry directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening registry: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging registry: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating registry: %w", err)
	}

	return &Registry{db: db}, nil
}

// OpenMemory creates an in-memory registry (useful for testing).
func OpenMemory() (*Registry, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory registry: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating registry: %w", err)
	}
	return &Registry{db: db}, nil
}

func (r *Registry) Close() error {
	return r.db.Close()
}

// Upsert records a document, replacing any existing record for the same
// filename.
func (r *Registry) Upsert(rec Record) error {
	if rec.IngestedAt.IsZero() {
		rec.IngestedAt = time.Now().UTC()
	}

	_, err := r.db.Exec(`
		INSERT INTO documents (filename, file_hash, file_type, file_size, chunk_count, language, ingested_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(filename) DO UPDATE SET
			file_hash = excluded.file_hash,
			file_type = excluded.file_type,
			file_size = excluded.file_size,
			chunk_count = excluded.chunk_count,
			language = excluded.language,
			ingested_at = excluded.ingested_at`,
		rec.Filename, rec.FileHash, rec.FileType, rec.FileSize,
		rec.ChunkCount, rec.Language, rec.IngestedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("upserting document %s: %w", rec.Filename, err)
	}
	return nil
}

// Get returns the record for a filename, or ErrNotFound.
func (r *Registry) Get(filename string) (Record, error) {
	row := r.db.QueryRow(`
		SELECT filename, file_hash, file_type, file_size, chunk_count, language, ingested_at
		FROM documents WHERE filename = ?`, filename)
	return scanRecord(row)
}

// List returns all records ordered by filename.
func (r *Registry) List() ([]Record, error) {
	rows, err := r.db.Query(`
		SELECT filename, file_hash, file_type, file_size, chunk_count, language, ingested_at
		FROM documents ORDER BY filename`)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Delete removes a record and reports whether it existed.
func (r *Registry) Delete(filename string) (bool, error) {
	res, err := r.db.Exec(`DELETE FROM documents WHERE filename = ?`, filename)
	if err != nil {
		return false, fmt.Errorf("deleting document %s: %w", filename, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Unchanged reports whether a document with this filename was already
// ingested with the same content hash.
func (r *Registry) Unchanged(filename, fileHash string) (bool, error) {
	rec, err := r.Get(filename)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return rec.FileHash == fileHash, nil
}

// Stats summarizes the registry contents.
type Stats struct {
	Documents   int   `json:"documents"`
	TotalChunks int   `json:"total_chunks"`
	TotalBytes  int64 `json:"total_bytes"`
}

func (r *Registry) Stats() (Stats, error) {
	var s Stats
	err := r.db.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(chunk_count), 0), COALESCE(SUM(file_size), 0)
		FROM documents`).Scan(&s.Documents, &s.TotalChunks, &s.TotalBytes)
	if err != nil {
		return s, fmt.Errorf("computing stats: %w", err)
	}
	return s, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (Record, error) {
	var rec Record
	var ingested string
	err := s.Scan(&rec.Filename, &rec.FileHash, &rec.FileType, &rec.FileSize,
		&rec.ChunkCount, &rec.Language, &ingested)
	if errors.Is(err, sql.ErrNoRows) {
		return rec, ErrNotFound
	}
	if err != nil {
		return rec, fmt.Errorf("scanning document record: %w", err)
	}
	if t, perr := time.Parse(time.RFC3339, ingested); perr == nil {
		rec.IngestedAt = t
	}
	return rec, nil
}
