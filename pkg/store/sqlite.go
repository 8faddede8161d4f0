package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"tableflip.dev/bnote/pkg/entry"
	"tableflip.dev/bnote/pkg/glyph"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS entries (
	namespace    TEXT    NOT NULL,
	position     INTEGER NOT NULL,
	id           TEXT    NOT NULL,
	batch_id     TEXT    NOT NULL DEFAULT '',
	content      TEXT    NOT NULL,
	type         TEXT    NOT NULL,
	is_completed INTEGER,
	created_at   INTEGER NOT NULL,
	PRIMARY KEY (namespace, position)
);
CREATE TABLE IF NOT EXISTS drafts (
	namespace TEXT PRIMARY KEY,
	content   TEXT NOT NULL
);
`

// SQLite stores entries as rows ordered by position, namespaced by the key
// prefix so several journals can share a database file.
type SQLite struct {
	db        *sql.DB
	path      string
	namespace string
}

// NewSQLite opens (creating if needed) the database at path. Paths ending
// in ".db" or ".sqlite" name the file; any other path is a directory that
// gets a "bnote.db" file.
func NewSQLite(path, prefix string) (*SQLite, error) {
	if path == "" {
		return nil, unavailable("open", errors.New("store: database path unknown"))
	}
	if path != ":memory:" {
		switch filepath.Ext(path) {
		case ".db", ".sqlite":
		default:
			path = filepath.Join(path, "bnote.db")
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, unavailable("open", err)
		}
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, unavailable("open", fmt.Errorf("open database: %w", err))
	}
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, unavailable("open", fmt.Errorf("init schema: %w", err))
	}
	return &SQLite{db: db, path: path, namespace: strings.TrimSpace(prefix)}, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) Describe() string {
	return fmt.Sprintf("sqlite:%s", s.path)
}

func (s *SQLite) SaveEntries(ctx context.Context, entries []entry.Entry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return operationFailed(OpSaveEntries, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM entries WHERE namespace = ?", s.namespace); err != nil {
		return operationFailed(OpSaveEntries, err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO entries
		(namespace, position, id, batch_id, content, type, is_completed, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return operationFailed(OpSaveEntries, err)
	}
	defer stmt.Close()

	for i, e := range entries {
		var completed sql.NullBool
		if e.IsCompleted != nil {
			completed = sql.NullBool{Bool: *e.IsCompleted, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx,
			s.namespace, i, e.ID, e.BatchID, e.Content, string(e.Type), completed, e.Created.Millis(),
		); err != nil {
			return operationFailed(OpSaveEntries, fmt.Errorf("insert entry %s: %w", e.ID, err))
		}
	}
	if err := tx.Commit(); err != nil {
		return operationFailed(OpSaveEntries, err)
	}
	return nil
}

func (s *SQLite) LoadEntries(ctx context.Context) ([]entry.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, batch_id, content, type, is_completed, created_at
		FROM entries WHERE namespace = ? ORDER BY position`, s.namespace)
	if err != nil {
		return nil, operationFailed(OpLoadEntries, err)
	}
	defer rows.Close()

	out := []entry.Entry{}
	for rows.Next() {
		var (
			e         entry.Entry
			typ       string
			completed sql.NullBool
			created   int64
		)
		if err := rows.Scan(&e.ID, &e.BatchID, &e.Content, &typ, &completed, &created); err != nil {
			return nil, operationFailed(OpLoadEntries, err)
		}
		if e.Type, err = glyph.ParseType(typ); err != nil {
			return nil, decodeFailed(OpLoadEntries, err)
		}
		if completed.Valid {
			done := completed.Bool
			e.IsCompleted = &done
		}
		e.Created = entry.FromMillis(created)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, operationFailed(OpLoadEntries, err)
	}
	return out, nil
}

func (s *SQLite) SaveDraft(ctx context.Context, text string) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO drafts (namespace, content) VALUES (?, ?)
		ON CONFLICT(namespace) DO UPDATE SET content = excluded.content`, s.namespace, text)
	if err != nil {
		return operationFailed(OpSaveDraft, err)
	}
	return nil
}

func (s *SQLite) LoadDraft(ctx context.Context) (string, error) {
	var text string
	err := s.db.QueryRowContext(ctx, "SELECT content FROM drafts WHERE namespace = ?", s.namespace).Scan(&text)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", operationFailed(OpLoadDraft, err)
	}
	return text, nil
}

func (s *SQLite) ClearAll(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return operationFailed(OpClearAll, err)
	}
	defer func() { _ = tx.Rollback() }()
	for _, q := range []string{
		"DELETE FROM entries WHERE namespace = ?",
		"DELETE FROM drafts WHERE namespace = ?",
	} {
		if _, err := tx.ExecContext(ctx, q, s.namespace); err != nil {
			return operationFailed(OpClearAll, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return operationFailed(OpClearAll, err)
	}
	return nil
}

func (s *SQLite) ClearEntries(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM entries WHERE namespace = ?", s.namespace); err != nil {
		return operationFailed(OpClearEntries, err)
	}
	return nil
}

func (s *SQLite) ClearDraft(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM drafts WHERE namespace = ?", s.namespace); err != nil {
		return operationFailed(OpClearDraft, err)
	}
	return nil
}
