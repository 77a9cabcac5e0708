package types

// ExtractionBackend identifies the PDF text-extraction tool.
type ExtractionBackend string

const (
	// BackendNative extracts text in-process with the ledongthuc/pdf reader.
	BackendNative ExtractionBackend = "native"

	// BackendPdftotext shells out to the poppler pdftotext binary.
	BackendPdftotext ExtractionBackend = "pdftotext"
)

// Default locations used when no flag, env var, or config key overrides them.
const (
	DefaultInputDir   = "pdf_file"
	DefaultOutputJSON = "extracted_data.json"
	DefaultTextDir    = "extracted_txt_files"
	DefaultSecretsDir = ".secrets/"
	DefaultDBPath     = "pdftext.db"
)

// ExtractionConfig holds settings for a batch conversion run.
type ExtractionConfig struct {
	// InputDir is the folder scanned for .pdf files.
	InputDir string `json:"input_dir" yaml:"input_dir"`

	// OutputJSON is the path of the aggregate JSON array.
	OutputJSON string `json:"output_json" yaml:"output_json"`

	// TextDir is the folder receiving one .txt file per converted PDF.
	TextDir string `json:"text_dir" yaml:"text_dir"`

	// Backend selects the extraction tool: native or pdftotext.
	Backend ExtractionBackend `json:"backend" yaml:"backend"`

	// KeepEmpty includes PDFs that parsed but yielded no text. When false,
	// such files are skipped like extraction failures.
	KeepEmpty bool `json:"keep_empty" yaml:"keep_empty"`

	// Validate runs a structural check on each PDF before extraction.
	Validate bool `json:"validate" yaml:"validate"`

	// SummaryPath, when set, receives a YAML summary of the run.
	SummaryPath string `json:"summary_path,omitempty" yaml:"summary_path,omitempty"`

	// SecretsDir holds password files for encrypted PDFs.
	SecretsDir string `json:"secrets_dir" yaml:"secrets_dir"`
}

// CatalogConfig holds settings for the SQLite document catalog.
type CatalogConfig struct {
	// DBPath is the SQLite database file.
	DBPath string `json:"db_path" yaml:"db_path"`

	// MaxResults is the default maximum number of search results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}
