// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog keeps extracted documents in a SQLite database so the
// text of past runs can be searched without re-reading the JSON aggregate.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/pdftext/pkg/types"
)

const (
	defaultMaxResults = 20
	snippetRadius     = 60
)

// Store manages the catalog SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// Open opens or creates the database at cfg.DBPath and creates the schema
// if it does not exist.
func Open(cfg types.CatalogConfig) (*Store, error) {
	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating catalog directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.DBPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{db: db, maxResults: maxResults}
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
			filename TEXT PRIMARY KEY,
			content TEXT NOT NULL,
			chars INTEGER NOT NULL,
			indexed_at TEXT NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// IndexSummary holds counts from an indexing run.
type IndexSummary struct {
	Added   int
	Updated int
}

// Index upserts records in one transaction. An existing document with the
// same filename is replaced.
func (s *Store) Index(ctx context.Context, records []types.Record, w io.Writer) (IndexSummary, error) {
	var summary IndexSummary

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return summary, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	exists, err := tx.PrepareContext(ctx, `SELECT count(*) FROM documents WHERE filename = ?`)
	if err != nil {
		return summary, fmt.Errorf("preparing lookup: %w", err)
	}
	defer exists.Close()

	upsert, err := tx.PrepareContext(ctx,
		`INSERT INTO documents (filename, content, chars, indexed_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(filename) DO UPDATE SET
			content=excluded.content, chars=excluded.chars, indexed_at=excluded.indexed_at`)
	if err != nil {
		return summary, fmt.Errorf("preparing upsert: %w", err)
	}
	defer upsert.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, r := range records {
		var n int
		if err := exists.QueryRowContext(ctx, r.Filename).Scan(&n); err != nil {
			return summary, fmt.Errorf("looking up %s: %w", r.Filename, err)
		}
		if _, err := upsert.ExecContext(ctx, r.Filename, r.Content, len([]rune(r.Content)), now); err != nil {
			return summary, fmt.Errorf("indexing %s: %w", r.Filename, err)
		}
		if n > 0 {
			fmt.Fprintf(w, "updated  %s\n", r.Filename)
			summary.Updated++
		} else {
			fmt.Fprintf(w, "indexed  %s\n", r.Filename)
			summary.Added++
		}
	}

	if err := tx.Commit(); err != nil {
		return summary, fmt.Errorf("committing: %w", err)
	}
	fmt.Fprintf(w, "\nindexed: %d, updated: %d\n", summary.Added, summary.Updated)
	return summary, nil
}

// Count returns the number of documents in the catalog.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM documents`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting documents: %w", err)
	}
	return n, nil
}

// Get returns the stored record for filename.
func (s *Store) Get(ctx context.Context, filename string) (types.Record, error) {
	r := types.Record{Filename: filename}
	err := s.db.QueryRowContext(ctx,
		`SELECT content FROM documents WHERE filename = ?`, filename,
	).Scan(&r.Content)
	if err != nil {
		if err == sql.ErrNoRows {
			return r, fmt.Errorf("document %s not found", filename)
		}
		return r, fmt.Errorf("looking up document: %w", err)
	}
	return r, nil
}

// SearchResult is one catalog hit with a snippet around the first match.
type SearchResult struct {
	Filename string `json:"filename"`
	Chars    int    `json:"chars"`
	Snippet  string `json:"snippet"`
}

// Search returns documents whose content contains query, ignoring ASCII
// case, ordered by filename. A limit of zero uses the store default.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("empty search query")
	}
	if limit <= 0 {
		limit = s.maxResults
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT filename, content, chars FROM documents
		 WHERE instr(lower(content), lower(?)) > 0
		 ORDER BY filename
		 LIMIT ?`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("querying catalog: %w", err)
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var (
			r       SearchResult
			content string
		)
		if err := rows.Scan(&r.Filename, &content, &r.Chars); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		r.Snippet = snippet(content, query)
		results = append(results, r)
	}
	return results, rows.Err()
}

// snippet returns the text around the first case-insensitive match of
// query, with newlines flattened to spaces.
func snippet(content, query string) string {
	idx := strings.Index(asciiLower(content), asciiLower(query))
	if idx < 0 {
		return ""
	}
	start := max(idx-snippetRadius, 0)
	end := min(idx+len(query)+snippetRadius, len(content))
	// Keep the cut on rune boundaries.
	for start > 0 && !isRuneStart(content[start]) {
		start--
	}
	for end < len(content) && !isRuneStart(content[end]) {
		end++
	}

	out := strings.Join(strings.Fields(content[start:end]), " ")
	if start > 0 {
		out = "..." + out
	}
	if end < len(content) {
		out += "..."
	}
	return out
}

// asciiLower lowercases A-Z only, matching SQLite's lower() and keeping
// byte offsets stable.
func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
