// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extractor

import (
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/pdiddy/pdftext/internal/secrets"
)

// NativeExtractor reads PDFs in-process with github.com/ledongthuc/pdf.
// Only the embedded text layer is read; image-only pages yield no text.
type NativeExtractor struct {
	passwords secrets.Passwords
}

// NewNativeExtractor returns an extractor that tries the matching password
// from passwords when a document is encrypted. A nil map is allowed.
func NewNativeExtractor(passwords secrets.Passwords) *NativeExtractor {
	return &NativeExtractor{passwords: passwords}
}

// Extract opens the PDF, reads pages 1..N in order and closes the file
// before returning. Null page objects contribute nothing.
func (n *NativeExtractor) Extract(pdfPath string) (text string, err error) {
	// The reader panics on some malformed object graphs.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("parsing %s: %v", pdfPath, r)
		}
	}()

	f, err := os.Open(pdfPath)
	if err != nil {
		return "", fmt.Errorf("opening PDF %s: %w", pdfPath, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", pdfPath, err)
	}

	r, err := pdf.NewReaderEncrypted(f, info.Size(), n.passwordFunc(pdfPath))
	if err != nil {
		return "", fmt.Errorf("reading PDF %s: %w", pdfPath, err)
	}

	fonts := make(map[string]*pdf.Font)
	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}

		for _, name := range p.Fonts() {
			if _, ok := fonts[name]; !ok {
				font := p.Font(name)
				fonts[name] = &font
			}
		}

		pageText, err := p.GetPlainText(fonts)
		if err != nil {
			return "", fmt.Errorf("reading page %d of %s: %w", i, pdfPath, err)
		}
		b.WriteString(pageText)
	}

	return b.String(), nil
}

// passwordFunc yields the configured password once, then the empty string,
// which tells the reader to stop trying.
func (n *NativeExtractor) passwordFunc(pdfPath string) func() string {
	pw, ok := n.passwords.For(pdfPath)
	tried := !ok
	return func() string {
		if tried {
			return ""
		}
		tried = true
		return pw
	}
}
