package folio

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/unknownriver/folio/cms"
)

// ErrNoSnapshot is returned when no post listing has been saved yet.
var ErrNoSnapshot = errors.New("folio: no post snapshot")

const snapshotName = "posts"

// Store wraps a SQLite database holding the last good post listing.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and creates the schema.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS snapshots (
    name TEXT PRIMARY KEY,
    fetched_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS snapshot_posts (
    position INTEGER PRIMARY KEY,
    id INTEGER NOT NULL,
    slug TEXT NOT NULL,
    title TEXT NOT NULL,
    excerpt TEXT NOT NULL,
    link TEXT NOT NULL
);
`)
	return err
}

// SaveSnapshot replaces the stored listing with posts, keeping their order.
func (s *Store) SaveSnapshot(ctx context.Context, posts []cms.Post, fetchedAt time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM snapshot_posts`); err != nil {
		return err
	}
	for i, p := range posts {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO snapshot_posts (position, id, slug, title, excerpt, link) VALUES (?, ?, ?, ?, ?, ?)`,
			i, p.ID, p.Slug, p.Title, p.Excerpt, p.Link); err != nil {
			return fmt.Errorf("insert post %q: %w", p.Slug, err)
		}
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO snapshots (name, fetched_at) VALUES (?, ?)`,
		snapshotName, fetchedAt.UTC().Format(time.RFC3339Nano)); err != nil {
		return err
	}
	return tx.Commit()
}

// LoadSnapshot returns the stored listing in its original order and when it
// was fetched. It returns ErrNoSnapshot if nothing has been saved.
func (s *Store) LoadSnapshot(ctx context.Context) ([]cms.Post, time.Time, error) {
	var stamp string
	err := s.db.QueryRowContext(ctx, `SELECT fetched_at FROM snapshots WHERE name = ?`, snapshotName).Scan(&stamp)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, time.Time{}, ErrNoSnapshot
	}
	if err != nil {
		return nil, time.Time{}, err
	}
	fetchedAt, err := time.Parse(time.RFC3339Nano, stamp)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("parse snapshot time: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT id, slug, title, excerpt, link FROM snapshot_posts ORDER BY position`)
	if err != nil {
		return nil, time.Time{}, err
	}
	defer rows.Close()

	posts := []cms.Post{}
	for rows.Next() {
		var p cms.Post
		if err := rows.Scan(&p.ID, &p.Slug, &p.Title, &p.Excerpt, &p.Link); err != nil {
			return nil, time.Time{}, err
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, time.Time{}, err
	}
	return posts, fetchedAt, nil
}
