// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps a SQLite record of published documents.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/promptdoc/pkg/types"
)

const (
	dbFile       = "history.db"
	defaultLimit = 20
)

// ErrNotFound is returned by Get for an unknown record ID.
var ErrNotFound = errors.New("history record not found")

// Store manages the history database.
type Store struct {
	db *sql.DB
}

// Open opens or creates dir/history.db and its schema.
func Open(cfg types.HistoryConfig) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", filepath.Join(dir, dbFile)+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			id TEXT PRIMARY KEY,
			doc_id TEXT NOT NULL,
			kind TEXT NOT NULL,
			topic TEXT NOT NULL,
			title TEXT NOT NULL,
			url TEXT NOT NULL,
			lines INTEGER NOT NULL,
			skipped INTEGER NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_created_at ON documents(created_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores doc, filling in ID and CreatedAt when they are unset.
func (s *Store) Record(ctx context.Context, doc *types.PublishedDoc) error {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO documents (id, doc_id, kind, topic, title, url, lines, skipped, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		doc.ID, doc.DocID, string(doc.Kind), doc.Topic, doc.Title, doc.URL,
		doc.Lines, doc.Skipped, doc.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("recording document %s: %w", doc.DocID, err)
	}
	return nil
}

const selectColumns = `SELECT id, doc_id, kind, topic, title, url, lines, skipped, created_at FROM documents`

// List returns up to limit records, newest first. A limit of zero or less
// uses the default of 20.
func (s *Store) List(ctx context.Context, limit int) ([]types.PublishedDoc, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	rows, err := s.db.QueryContext(ctx, selectColumns+` ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()
	return scanAll(rows)
}

// Get returns the record with the given ID.
func (s *Store) Get(ctx context.Context, id string) (*types.PublishedDoc, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id)
	doc, err := scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reading document %s: %w", id, err)
	}
	return &doc, nil
}

// Export writes every record, oldest first, to w as a YAML list.
func (s *Store) Export(ctx context.Context, w io.Writer) error {
	rows, err := s.db.QueryContext(ctx, selectColumns+` ORDER BY created_at, id`)
	if err != nil {
		return fmt.Errorf("querying for export: %w", err)
	}
	defer rows.Close()

	docs, err := scanAll(rows)
	if err != nil {
		return err
	}
	if docs == nil {
		docs = []types.PublishedDoc{}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(docs); err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return enc.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(sc scanner) (types.PublishedDoc, error) {
	var (
		doc     types.PublishedDoc
		kind    string
		created string
	)
	if err := sc.Scan(&doc.ID, &doc.DocID, &kind, &doc.Topic, &doc.Title, &doc.URL,
		&doc.Lines, &doc.Skipped, &created); err != nil {
		return doc, err
	}
	doc.Kind = types.DocumentKind(kind)
	t, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return doc, fmt.Errorf("parsing created_at %q: %w", created, err)
	}
	doc.CreatedAt = t
	return doc, nil
}

func scanAll(rows *sql.Rows) ([]types.PublishedDoc, error) {
	var docs []types.PublishedDoc
	for rows.Next() {
		doc, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}
