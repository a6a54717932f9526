package geo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// SQLiteCache keeps resolved geocodes in a single-table SQLite file.
type SQLiteCache struct {
	db *sql.DB
}

// OpenSQLiteCache opens (creating if needed) the cache database at path.
func OpenSQLiteCache(path string) (*SQLiteCache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("geocache: create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("geocache: open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS geocodes (
		address    TEXT PRIMARY KEY,
		lat        REAL NOT NULL,
		lng        REAL NOT NULL,
		updated_at INTEGER NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("geocache: create table: %w", err)
	}
	return &SQLiteCache{db: db}, nil
}

func (s *SQLiteCache) LoadAll(ctx context.Context) (map[string]Point, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT address, lat, lng FROM geocodes`)
	if err != nil {
		return nil, fmt.Errorf("geocache: select: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make(map[string]Point)
	for rows.Next() {
		var addr string
		var pt Point
		if err := rows.Scan(&addr, &pt.Lat, &pt.Lng); err != nil {
			return nil, fmt.Errorf("geocache: scan: %w", err)
		}
		out[addr] = pt
	}
	return out, rows.Err()
}

func (s *SQLiteCache) Put(ctx context.Context, address string, pt Point) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO geocodes (address, lat, lng, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(address) DO UPDATE SET lat = excluded.lat, lng = excluded.lng, updated_at = excluded.updated_at`,
		address, pt.Lat, pt.Lng, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("geocache: upsert: %w", err)
	}
	return nil
}

func (s *SQLiteCache) Close() error {
	return s.db.Close()
}
