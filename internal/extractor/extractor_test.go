// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extractor

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdftext/internal/secrets"
	"github.com/pdiddy/pdftext/pkg/types"
)

func TestNativeExtract(t *testing.T) {
	ex := NewNativeExtractor(nil)

	t.Run("single page", func(t *testing.T) {
		text, err := ex.Extract(tempPDF(t, "a.pdf", "Hello"))
		require.NoError(t, err)
		assert.Contains(t, text, "Hello")
	})

	t.Run("pages concatenated in order", func(t *testing.T) {
		text, err := ex.Extract(tempPDF(t, "multi.pdf", "First", "Second", "Third"))
		require.NoError(t, err)
		first := strings.Index(text, "First")
		second := strings.Index(text, "Second")
		third := strings.Index(text, "Third")
		require.True(t, first >= 0 && second >= 0 && third >= 0, "missing page text in %q", text)
		assert.Less(t, first, second)
		assert.Less(t, second, third)
	})

	t.Run("page without text layer", func(t *testing.T) {
		text, err := ex.Extract(tempPDF(t, "blank.pdf", ""))
		require.NoError(t, err)
		assert.Empty(t, strings.TrimSpace(text))
	})

	t.Run("corrupt file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "broken.pdf")
		require.NoError(t, os.WriteFile(path, []byte("this is not a pdf"), 0o644))
		_, err := ex.Extract(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), path)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ex.Extract(filepath.Join(t.TempDir(), "nope.pdf"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "opening PDF")
	})
}

func TestPasswordFunc(t *testing.T) {
	ex := NewNativeExtractor(secrets.Passwords{"locked": "pw"})

	pw := ex.passwordFunc("/in/locked.pdf")
	assert.Equal(t, "pw", pw())
	assert.Equal(t, "", pw(), "password is offered only once")

	none := ex.passwordFunc("/in/open.pdf")
	assert.Equal(t, "", none())
}

// mockExecutor records invocations and returns output per page number.
type mockExecutor struct {
	onPath bool
	pages  map[string]string
	err    error
	calls  [][]string
}

func (m *mockExecutor) LookPath(file string) (string, error) {
	if m.onPath {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found: " + file)
}

func (m *mockExecutor) RunPiped(name string, args []string, stdout io.Writer) error {
	m.calls = append(m.calls, args)
	if m.err != nil {
		return m.err
	}
	// args[1] is the first page passed with -f.
	_, err := io.WriteString(stdout, m.pages[args[1]])
	return err
}

func fixedPages(n int, err error) func(string) (int, error) {
	return func(string) (int, error) { return n, err }
}

func TestPdftotextExtract(t *testing.T) {
	tests := []struct {
		name      string
		exec      *mockExecutor
		pageCount func(string) (int, error)
		want      string
		wantCalls int
		wantErr   string
	}{
		{
			name: "drops only the trailing form feed of each page",
			exec: &mockExecutor{onPath: true, pages: map[string]string{
				"1": "Hello\f",
				"2": "Wor\fld\f",
			}},
			pageCount: fixedPages(2, nil),
			want:      "HelloWor\fld",
			wantCalls: 2,
		},
		{
			name:      "page without trailing form feed",
			exec:      &mockExecutor{onPath: true, pages: map[string]string{"1": "plain"}},
			pageCount: fixedPages(1, nil),
			want:      "plain",
			wantCalls: 1,
		},
		{
			name:      "command failure is wrapped",
			exec:      &mockExecutor{onPath: true, err: errors.New("exit status 1")},
			pageCount: fixedPages(3, nil),
			wantErr:   "converting page 1 of in.pdf with pdftotext",
		},
		{
			name:      "page count failure",
			exec:      &mockExecutor{onPath: true},
			pageCount: fixedPages(0, errors.New("xref table corrupt")),
			wantErr:   "counting pages of in.pdf",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ex, err := newPdftotextExtractor(tt.exec, tt.pageCount)
			require.NoError(t, err)

			got, err := ex.Extract("in.pdf")
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			require.Len(t, tt.exec.calls, tt.wantCalls)
			assert.Equal(t, []string{"-f", "1", "-l", "1", "-enc", "UTF-8", "in.pdf", "-"}, tt.exec.calls[0])
			for _, args := range tt.exec.calls {
				assert.NotContains(t, args, "-layout")
			}
		})
	}
}

func TestPdftotextMissingBinary(t *testing.T) {
	_, err := newPdftotextExtractor(&mockExecutor{}, fixedPages(1, nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pdftotext not found")
}

type stubExtractor struct {
	text  string
	calls int
}

func (s *stubExtractor) Extract(string) (string, error) {
	s.calls++
	return s.text, nil
}

func TestValidatingExtractor(t *testing.T) {
	t.Run("valid file reaches wrapped extractor", func(t *testing.T) {
		next := &stubExtractor{text: "ok"}
		v := &ValidatingExtractor{next: next, validate: func(string) error { return nil }}

		got, err := v.Extract("doc.pdf")
		require.NoError(t, err)
		assert.Equal(t, "ok", got)
		assert.Equal(t, 1, next.calls)
	})

	t.Run("invalid file is rejected before extraction", func(t *testing.T) {
		next := &stubExtractor{text: "unused"}
		v := &ValidatingExtractor{next: next, validate: func(string) error { return errors.New("xref corrupt") }}

		_, err := v.Extract("doc.pdf")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "validating doc.pdf")
		assert.Zero(t, next.calls)
	})

	t.Run("pdfcpu rejects garbage", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "garbage.pdf")
		require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o644))
		next := &stubExtractor{}

		_, err := NewValidatingExtractor(next).Extract(path)
		require.Error(t, err)
		assert.Zero(t, next.calls)
	})
}

func TestNew(t *testing.T) {
	ex, err := New(types.ExtractionConfig{}, nil)
	require.NoError(t, err)
	assert.IsType(t, &NativeExtractor{}, ex)

	ex, err = New(types.ExtractionConfig{Backend: types.BackendNative, Validate: true}, nil)
	require.NoError(t, err)
	assert.IsType(t, &ValidatingExtractor{}, ex)

	_, err = New(types.ExtractionConfig{Backend: "ocr"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported backend "ocr"`)
}
