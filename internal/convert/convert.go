// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert implements the batch PDF-to-text conversion loop: list
// the PDFs in a folder, extract each one, write a .txt file per document
// and one aggregate JSON array at the end of the run.
package convert

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pdiddy/pdftext/internal/extractor"
	"github.com/pdiddy/pdftext/internal/report"
	"github.com/pdiddy/pdftext/pkg/types"
)

const pdfExt = ".pdf"

// ErrInputNotFound is returned when the input folder is missing. No output
// location has been touched when it is returned.
var ErrInputNotFound = errors.New("input folder does not exist")

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	InputDir   string              `yaml:"input_dir"`
	OutputJSON string              `yaml:"output_json"`
	TextDir    string              `yaml:"text_dir"`
	StartedAt  time.Time           `yaml:"started_at"`
	Duration   time.Duration       `yaml:"duration"`
	Converted  int                 `yaml:"converted"`
	Empty      int                 `yaml:"empty"`
	Failed     int                 `yaml:"failed"`
	SaveFailed int                 `yaml:"save_failed"`
	Files      []types.FileOutcome `yaml:"files"`

	// Records is the aggregate written to OutputJSON, in processing order.
	Records []types.Record `yaml:"-"`
}

// Total returns the number of PDFs attempted.
func (r BatchResult) Total() int {
	return r.Converted + r.Empty + r.Failed
}

// HasFailures reports whether any PDF failed extraction or any text file
// failed to save.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0 || r.SaveFailed > 0
}

// IsPDF reports whether name carries a .pdf extension, ignoring case.
func IsPDF(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), pdfExt)
}

// Stem returns name with its extension removed ("b.PDF" -> "b"). Leading
// dots do not start an extension, so ".pdf" is its own stem.
func Stem(name string) string {
	ext := filepath.Ext(strings.TrimLeft(name, "."))
	if ext == "" {
		return name
	}
	return strings.TrimSuffix(name, ext)
}

// ListPDFs returns the names of regular files in dir ending in .pdf
// (case-insensitive), sorted lexicographically so runs are reproducible.
func ListPDFs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading input folder %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !IsPDF(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// CheckInput verifies that dir exists and is a folder.
func CheckInput(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrInputNotFound, dir)
		}
		return fmt.Errorf("checking input folder %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("input path %s is not a folder", dir)
	}
	return nil
}

// SaveText writes text to outputDir/baseName.txt, creating outputDir if
// needed and overwriting any existing file. It returns the written path.
func SaveText(text, outputDir, baseName string) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", outputDir, err)
	}
	path := filepath.Join(outputDir, baseName+".txt")
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// ProcessFolder runs one conversion pass over cfg.InputDir. Extraction
// failures and save failures are reported through p and do not stop the
// batch. The JSON aggregate is written only after every file has been
// attempted; a cancelled context returns before it is written.
func ProcessFolder(ctx context.Context, ex extractor.Extractor, cfg types.ExtractionConfig, p *report.Printer) (BatchResult, error) {
	result := BatchResult{
		InputDir:   cfg.InputDir,
		OutputJSON: cfg.OutputJSON,
		TextDir:    cfg.TextDir,
		StartedAt:  time.Now().UTC(),
		Records:    []types.Record{},
	}

	if err := CheckInput(cfg.InputDir); err != nil {
		return result, err
	}

	names, err := ListPDFs(cfg.InputDir)
	if err != nil {
		return result, err
	}

	if err := os.MkdirAll(cfg.TextDir, 0o755); err != nil {
		return result, fmt.Errorf("creating text folder %s: %w", cfg.TextDir, err)
	}

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		outcome, record := processFile(ex, cfg, name, p)
		switch outcome.Status {
		case types.StatusConverted:
			result.Converted++
		case types.StatusEmpty:
			result.Empty++
		case types.StatusFailed:
			result.Failed++
		}
		if outcome.SaveError != "" {
			result.SaveFailed++
		}
		if record != nil {
			result.Records = append(result.Records, *record)
		}
		result.Files = append(result.Files, outcome)
	}

	if err := WriteJSON(cfg.OutputJSON, result.Records); err != nil {
		return result, err
	}
	result.Duration = time.Since(result.StartedAt)

	if cfg.SummaryPath != "" {
		if err := WriteSummary(cfg.SummaryPath, result); err != nil {
			p.Warn("run summary not written: %v", err)
		}
	}

	p.Done(cfg.OutputJSON, cfg.TextDir, result.Converted, result.Empty, result.Failed)
	return result, nil
}

// processFile extracts one PDF and saves its text. The returned record is
// nil when the file contributes nothing to the aggregate.
func processFile(ex extractor.Extractor, cfg types.ExtractionConfig, name string, p *report.Printer) (types.FileOutcome, *types.Record) {
	pdfPath := filepath.Join(cfg.InputDir, name)
	outcome := types.FileOutcome{Filename: name}
	p.Processing(pdfPath)

	text, err := ex.Extract(pdfPath)
	if err != nil {
		p.ExtractFailed(pdfPath, err)
		outcome.Status = types.StatusFailed
		outcome.Error = err.Error()
		return outcome, nil
	}

	if text == "" {
		outcome.Status = types.StatusEmpty
		p.Empty(pdfPath, cfg.KeepEmpty)
		if !cfg.KeepEmpty {
			return outcome, nil
		}
	} else {
		outcome.Status = types.StatusConverted
		outcome.Chars = len([]rune(text))
	}

	record := &types.Record{Filename: name, Content: text}

	stem := Stem(name)
	path, err := SaveText(text, cfg.TextDir, stem)
	if err != nil {
		p.SaveFailed(stem, err)
		outcome.SaveError = err.Error()
		return outcome, record
	}
	outcome.TextPath = path
	return outcome, record
}
