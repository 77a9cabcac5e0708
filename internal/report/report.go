// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report prints operator feedback for a conversion run: one line
// per file attempted, error lines, and the closing summary.
package report

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Printer writes status lines to w, colored when enabled.
type Printer struct {
	w      io.Writer
	info   *color.Color
	ok     *color.Color
	warn   *color.Color
	failed *color.Color
}

// New returns a Printer writing to w. Colors are disabled when noColor is
// set or w is not a terminal.
func New(w io.Writer, noColor bool) *Printer {
	p := &Printer{
		w:      w,
		info:   color.New(color.FgCyan),
		ok:     color.New(color.FgGreen),
		warn:   color.New(color.FgYellow),
		failed: color.New(color.FgRed),
	}
	if noColor || !isTerminal(w) {
		for _, c := range []*color.Color{p.info, p.ok, p.warn, p.failed} {
			c.DisableColor()
		}
	}
	return p
}

// isTerminal reports whether w is a file attached to a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Processing announces that a PDF is about to be extracted.
func (p *Printer) Processing(path string) {
	p.info.Fprintf(p.w, "Processing: %s\n", path)
}

// ExtractFailed reports a file skipped because extraction failed.
func (p *Printer) ExtractFailed(path string, err error) {
	p.failed.Fprintf(p.w, "Error reading %s: %v\n", path, err)
}

// SaveFailed reports a text file that could not be written.
func (p *Printer) SaveFailed(name string, err error) {
	p.failed.Fprintf(p.w, "Error saving text to %s.txt: %v\n", name, err)
}

// Empty reports a PDF that parsed but produced no text.
func (p *Printer) Empty(path string, kept bool) {
	if kept {
		p.warn.Fprintf(p.w, "No text found in %s (kept)\n", path)
		return
	}
	p.warn.Fprintf(p.w, "Skipping empty document %s\n", path)
}

// Warn prints a non-fatal problem unrelated to a specific file.
func (p *Printer) Warn(format string, args ...any) {
	p.warn.Fprintf(p.w, "warning: "+format+"\n", args...)
}

// Done prints the closing line naming both output locations.
func (p *Printer) Done(jsonPath, textDir string, converted, empty, failed int) {
	fmt.Fprintf(p.w, "\nconverted: %d, empty: %d, failed: %d\n", converted, empty, failed)
	p.ok.Fprintf(p.w, "Data successfully saved to %s and %s.\n", jsonPath, textDir)
}
