package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/hetulpatel/moviecatalog/internal/logging"
)

const (
	defaultPath = "data/movies.db"
)

// Tables in dependency order: parents before the tables referencing them.
var Tables = []string{"directors", "genres", "movies", "movie_genres"}

// Store wraps a single SQLite connection.
type Store struct {
	path string
	abs  string
	db   *sql.DB
}

type options struct {
	foreignKeys bool
}

// Option tweaks how Open prepares the connection.
type Option func(*options)

// WithForeignKeys turns on SQLite foreign key enforcement for the connection.
func WithForeignKeys(on bool) Option {
	return func(o *options) {
		o.foreignKeys = on
	}
}

// Open creates (if needed) and opens the SQLite database. Every failure is a *ConnectionError.
func Open(path string, opts ...Option) (*Store, error) {
	if path == "" {
		path = defaultPath
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, &ConnectionError{Path: path, Err: fmt.Errorf("ensure data dir: %w", err)}
	}
	// Pin the file now so a later chdir cannot redirect a reconnect.
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, &ConnectionError{Path: path, Err: fmt.Errorf("resolve path: %w", err)}
	}
	db, err := sql.Open("sqlite", abs)
	if err != nil {
		return nil, &ConnectionError{Path: path, Err: fmt.Errorf("open sqlite: %w", err)}
	}
	// One connection for the whole run; pragmas below stick to it.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, &ConnectionError{Path: path, Err: err}
	}
	if o.foreignKeys {
		if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
			db.Close()
			return nil, &ConnectionError{Path: path, Err: fmt.Errorf("enable foreign keys: %w", err)}
		}
	}
	logging.Debugf("[sqlite] opened %s (foreign_keys=%t)", abs, o.foreignKeys)
	return &Store{path: path, abs: abs, db: db}, nil
}

func ensureWAL(db *sql.DB) error {
	const (
		maxAttempts = 5
		delay       = 200 * time.Millisecond
	)
	for i := 0; i < maxAttempts; i++ {
		if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			if strings.Contains(err.Error(), "database is locked") {
				time.Sleep(delay)
				continue
			}
			return err
		}
		return nil
	}
	return fmt.Errorf("database is locked after retries")
}

// Fingerprint identifies the database file and its current on-disk state:
// the absolute path resolved at Open plus size and mtime of the main file
// and its WAL. Any committed write changes it.
func (s *Store) Fingerprint() (string, error) {
	parts := []string{s.abs}
	for _, p := range []string{s.abs, s.abs + "-wal"} {
		info, err := os.Stat(p)
		if errors.Is(err, os.ErrNotExist) {
			parts = append(parts, "-")
			continue
		}
		if err != nil {
			return "", fmt.Errorf("stat %s: %w", p, err)
		}
		parts = append(parts, fmt.Sprintf("%d:%d", info.Size(), info.ModTime().UnixNano()))
	}
	return strings.Join(parts, "|"), nil
}

// Path returns the path backing the store.
func (s *Store) Path() string {
	return s.path
}

// Close closes the DB.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// CreateTables ensures the movie schema exists. Safe to call on every startup.
// It also switches the file to WAL; Open alone never changes the journal mode.
func (s *Store) CreateTables(ctx context.Context) error {
	if err := ensureWAL(s.db); err != nil {
		return fmt.Errorf("set WAL mode: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}

// DropTables removes every table, children first.
func (s *Store) DropTables(ctx context.Context) error {
	for i := len(Tables) - 1; i >= 0; i-- {
		if _, err := s.db.ExecContext(ctx, "DROP TABLE IF EXISTS "+Tables[i]+";"); err != nil {
			return fmt.Errorf("drop %s: %w", Tables[i], err)
		}
	}
	return nil
}

// ClearTables deletes all rows, children first, keeping the schema.
func (s *Store) ClearTables(ctx context.Context) error {
	for i := len(Tables) - 1; i >= 0; i-- {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+Tables[i]+";"); err != nil {
			return fmt.Errorf("clear %s: %w", Tables[i], err)
		}
	}
	return nil
}

// Counts returns the number of rows in each table.
func (s *Store) Counts(ctx context.Context) (map[string]int64, error) {
	out := make(map[string]int64, len(Tables))
	for _, table := range Tables {
		var n int64
		if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
			return nil, fmt.Errorf("count %s: %w", table, err)
		}
		out[table] = n
	}
	return out, nil
}

// tagline and vote_average are nullable; the example catalog filters on them.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS directors (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL UNIQUE
);
CREATE TABLE IF NOT EXISTS movies (
	id INTEGER PRIMARY KEY,
	title TEXT,
	director_id INTEGER,
	release_date TEXT,
	budget INTEGER,
	tagline TEXT,
	vote_average REAL,
	FOREIGN KEY(director_id) REFERENCES directors(id)
);
CREATE TABLE IF NOT EXISTS genres (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL UNIQUE
);
CREATE TABLE IF NOT EXISTS movie_genres (
	movie_id INTEGER,
	genre_id INTEGER,
	FOREIGN KEY(movie_id) REFERENCES movies(id),
	FOREIGN KEY(genre_id) REFERENCES genres(id)
);
`
