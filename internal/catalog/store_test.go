// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdftext/pkg/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	cfg := types.CatalogConfig{
		DBPath:     filepath.Join(t.TempDir(), "index", "pdftext.db"),
		MaxResults: 20,
	}
	s, err := Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleRecords() []types.Record {
	return []types.Record{
		{Filename: "invoice.pdf", Content: "Invoice number 42\nTotal due: 100 EUR"},
		{Filename: "contract.PDF", Content: "This CONTRACT is made between the parties."},
		{Filename: "notes.pdf", Content: "Meeting notes. The contract draft is attached."},
	}
}

func TestIndex(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	var log bytes.Buffer
	summary, err := s.Index(ctx, sampleRecords(), &log)
	require.NoError(t, err)
	assert.Equal(t, IndexSummary{Added: 3}, summary)
	assert.Contains(t, log.String(), "indexed  invoice.pdf")

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	// Re-indexing replaces documents instead of duplicating them.
	log.Reset()
	updated := []types.Record{{Filename: "invoice.pdf", Content: "Invoice number 43"}}
	summary, err = s.Index(ctx, updated, &log)
	require.NoError(t, err)
	assert.Equal(t, IndexSummary{Updated: 1}, summary)
	assert.Contains(t, log.String(), "updated  invoice.pdf")

	n, err = s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	got, err := s.Get(ctx, "invoice.pdf")
	require.NoError(t, err)
	assert.Equal(t, "Invoice number 43", got.Content)
}

func TestGetMissing(t *testing.T) {
	s := testStore(t)
	_, err := s.Get(context.Background(), "ghost.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSearch(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	var log bytes.Buffer
	_, err := s.Index(ctx, sampleRecords(), &log)
	require.NoError(t, err)

	tests := []struct {
		name      string
		query     string
		limit     int
		wantFiles []string
	}{
		{name: "case-insensitive match", query: "contract", wantFiles: []string{"contract.PDF", "notes.pdf"}},
		{name: "limit applied", query: "contract", limit: 1, wantFiles: []string{"contract.PDF"}},
		{name: "no match", query: "zebra", wantFiles: nil},
		{name: "match across newline content", query: "total due", wantFiles: []string{"invoice.pdf"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := s.Search(ctx, tt.query, tt.limit)
			require.NoError(t, err)
			var files []string
			for _, r := range results {
				files = append(files, r.Filename)
				assert.Contains(t, strings.ToLower(r.Snippet), strings.ToLower(tt.query))
			}
			assert.Equal(t, tt.wantFiles, files)
		})
	}

	_, err = s.Search(ctx, "  ", 0)
	require.Error(t, err)
}

func TestSnippet(t *testing.T) {
	long := strings.Repeat("a ", 100) + "needle" + strings.Repeat(" b", 100)
	got := snippet(long, "NEEDLE")
	assert.True(t, strings.HasPrefix(got, "..."))
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.Contains(t, got, "needle")

	assert.Equal(t, "short needle text", snippet("short\nneedle\ttext", "needle"))
	assert.Equal(t, "", snippet("nothing here", "needle"))
}
