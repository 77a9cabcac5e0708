// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extractor

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ValidatingExtractor checks each file's PDF structure with pdfcpu before
// handing it to the wrapped extractor. Files that fail validation are
// reported with pdfcpu's diagnosis instead of a generic parse error.
type ValidatingExtractor struct {
	next     Extractor
	validate func(path string) error
}

// NewValidatingExtractor wraps next with pdfcpu validation in relaxed mode,
// which accepts the common spec deviations most readers tolerate.
func NewValidatingExtractor(next Extractor) *ValidatingExtractor {
	api.DisableConfigDir()
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &ValidatingExtractor{
		next: next,
		validate: func(path string) error {
			return api.ValidateFile(path, conf)
		},
	}
}

// Extract validates pdfPath, then delegates.
func (v *ValidatingExtractor) Extract(pdfPath string) (string, error) {
	if err := v.validate(pdfPath); err != nil {
		return "", fmt.Errorf("validating %s: %w", pdfPath, err)
	}
	return v.next.Extract(pdfPath)
}
