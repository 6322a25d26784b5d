// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citations

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Cache stores fetched citation counts in a SQLite database so repeated
// searches within the TTL do not re-query Semantic Scholar.
type Cache struct {
	db *sql.DB
}

// DefaultCacheTTL is how long a cached citation count stays fresh.
const DefaultCacheTTL = 7 * 24 * time.Hour

// OpenCache opens or creates the citation cache database at path, creating
// parent directories as needed.
func OpenCache(path string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening citation cache: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS citations (
		arxiv_id TEXT PRIMARY KEY,
		citation_count INTEGER NOT NULL,
		fetched_at TEXT NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close releases the database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Get returns the cached count for id if an entry exists and is younger
// than ttl. A zero ttl uses DefaultCacheTTL.
func (c *Cache) Get(ctx context.Context, id string, ttl time.Duration) (int, bool) {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}

	var count int
	var fetchedAt string
	err := c.db.QueryRowContext(ctx,
		`SELECT citation_count, fetched_at FROM citations WHERE arxiv_id = ?`, id,
	).Scan(&count, &fetchedAt)
	if err != nil {
		return 0, false
	}

	t, err := time.Parse(time.RFC3339Nano, fetchedAt)
	if err != nil || time.Since(t) > ttl {
		return 0, false
	}
	return count, true
}

// Put upserts the count for id with the current timestamp.
func (c *Cache) Put(ctx context.Context, id string, count int) error {
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO citations (arxiv_id, citation_count, fetched_at) VALUES (?, ?, ?)
		 ON CONFLICT(arxiv_id) DO UPDATE SET
			citation_count=excluded.citation_count, fetched_at=excluded.fetched_at`,
		id, count, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("upserting citation count: %w", err)
	}
	return nil
}

// DefaultCachePath returns the citation cache location under the user
// cache directory, or empty when no cache directory is available.
func DefaultCachePath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "renderarxiv", "citations.db")
}
