// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extractor

import (
	"bytes"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

const binPdftotext = "pdftotext"

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunPiped(name string, args []string, stdout io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunPiped(name string, args []string, stdout io.Writer) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = stdout
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}

var defaultExec executor = &osExecutor{}

// PdftotextExtractor converts PDFs with the poppler pdftotext binary in its
// default reading-order mode. Each page is converted on its own so that only
// the form feed pdftotext appends after a page is dropped; form feeds inside
// the page text are kept.
type PdftotextExtractor struct {
	exec      executor
	pageCount func(path string) (int, error)
}

// NewPdftotextExtractor verifies that pdftotext is on PATH. Page counts are
// read with pdfcpu.
func NewPdftotextExtractor() (*PdftotextExtractor, error) {
	api.DisableConfigDir()
	return newPdftotextExtractor(defaultExec, api.PageCountFile)
}

func newPdftotextExtractor(exec executor, pageCount func(string) (int, error)) (*PdftotextExtractor, error) {
	if _, err := exec.LookPath(binPdftotext); err != nil {
		return nil, fmt.Errorf("%s not found on PATH: %w", binPdftotext, err)
	}
	return &PdftotextExtractor{exec: exec, pageCount: pageCount}, nil
}

// Extract runs pdftotext once per page and concatenates the results with no
// separator.
func (p *PdftotextExtractor) Extract(pdfPath string) (string, error) {
	n, err := p.pageCount(pdfPath)
	if err != nil {
		return "", fmt.Errorf("counting pages of %s: %w", pdfPath, err)
	}

	var b strings.Builder
	for i := 1; i <= n; i++ {
		var out bytes.Buffer
		page := strconv.Itoa(i)
		args := []string{"-f", page, "-l", page, "-enc", "UTF-8", pdfPath, "-"}
		if err := p.exec.RunPiped(binPdftotext, args, &out); err != nil {
			return "", fmt.Errorf("converting page %d of %s with %s: %w", i, pdfPath, binPdftotext, err)
		}
		b.WriteString(strings.TrimSuffix(out.String(), "\f"))
	}
	return b.String(), nil
}
