// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Record is one entry of the aggregate JSON output: the original PDF
// filename (extension included) and the full extracted text.
type Record struct {
	// Filename is the source PDF name as it appears in the input folder.
	Filename string `json:"filename" yaml:"filename"`

	// Content is the concatenated page text, pages joined with no separator.
	Content string `json:"content" yaml:"content"`
}

// FileStatus indicates what happened to a single PDF during a run.
type FileStatus string

const (
	// StatusConverted means text was extracted and a Record was produced.
	StatusConverted FileStatus = "converted"

	// StatusEmpty means the PDF parsed but yielded no text.
	StatusEmpty FileStatus = "empty"

	// StatusFailed means extraction failed and the file was skipped.
	StatusFailed FileStatus = "failed"
)

// FileOutcome records the result of processing one PDF.
type FileOutcome struct {
	// Filename is the PDF name within the input folder.
	Filename string `json:"filename" yaml:"filename"`

	// Status is converted, empty, or failed.
	Status FileStatus `json:"status" yaml:"status"`

	// TextPath is the written .txt path. Empty when nothing was written.
	TextPath string `json:"text_path,omitempty" yaml:"text_path,omitempty"`

	// Chars is the number of characters extracted.
	Chars int `json:"chars" yaml:"chars"`

	// Error holds the extraction failure message, if any.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`

	// SaveError holds the text-file write failure, if any. A save failure
	// does not remove the Record from the aggregate output.
	SaveError string `json:"save_error,omitempty" yaml:"save_error,omitempty"`
}
