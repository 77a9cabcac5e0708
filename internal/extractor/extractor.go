// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extractor turns a single PDF file into plain text. Backends share
// the Extractor interface so the batch converter does not depend on how the
// text layer is read.
package extractor

import (
	"fmt"

	"github.com/pdiddy/pdftext/internal/secrets"
	"github.com/pdiddy/pdftext/pkg/types"
)

// Extractor reads the text layer of a PDF.
type Extractor interface {
	// Extract returns the text of every page of the PDF at pdfPath,
	// concatenated in page order with no separator.
	Extract(pdfPath string) (string, error)
}

// New builds the extractor chain described by cfg. Passwords are used by
// the native backend to open encrypted documents.
func New(cfg types.ExtractionConfig, passwords secrets.Passwords) (Extractor, error) {
	var ex Extractor
	switch cfg.Backend {
	case types.BackendNative, "":
		ex = NewNativeExtractor(passwords)
	case types.BackendPdftotext:
		p, err := NewPdftotextExtractor()
		if err != nil {
			return nil, err
		}
		ex = p
	default:
		return nil, fmt.Errorf("unsupported backend %q: use %s or %s",
			cfg.Backend, types.BackendNative, types.BackendPdftotext)
	}

	if cfg.Validate {
		ex = NewValidatingExtractor(ex)
	}
	return ex, nil
}
