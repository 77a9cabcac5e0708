package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdftext/internal/catalog"
	"github.com/pdiddy/pdftext/internal/convert"
	"github.com/pdiddy/pdftext/internal/extractor"
	"github.com/pdiddy/pdftext/internal/report"
	"github.com/pdiddy/pdftext/internal/secrets"
	"github.com/pdiddy/pdftext/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Extract text from every PDF in the input folder",
	Long: `Convert lists the .pdf files in the input folder (extension matched
case-insensitively, names processed in sorted order), extracts each one,
writes <stem>.txt into the text folder, and finally writes the JSON array.

Files that cannot be parsed are reported and skipped. A text file that
cannot be written is reported but its record stays in the JSON output.`,
	Args: cobra.NoArgs,
	RunE: runConvert,
}

// convertFlags maps viper keys to the conversion flags shared by the root
// command and convert.
var convertFlags = map[string]string{
	"input_dir":   "input",
	"output_json": "output-json",
	"text_dir":    "text-dir",
	"backend":     "backend",
	"keep_empty":  "keep-empty",
	"validate":    "validate",
	"summary":     "summary",
	"secrets_dir": "secrets-dir",
	"index":       "index",
}

func init() {
	addConvertFlags(rootCmd)
	addConvertFlags(convertCmd)
	rootCmd.AddCommand(convertCmd)
}

func addConvertFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("input", types.DefaultInputDir, "folder containing the PDF files")
	f.String("output-json", types.DefaultOutputJSON, "path of the aggregate JSON file")
	f.String("text-dir", types.DefaultTextDir, "folder for the per-document .txt files")
	f.String("backend", string(types.BackendNative), "extraction backend: native or pdftotext")
	f.Bool("keep-empty", false, "keep PDFs that parse but contain no text")
	f.Bool("validate", false, "check PDF structure with pdfcpu before extracting")
	f.String("summary", "", "write a YAML run summary to this path")
	f.String("secrets-dir", types.DefaultSecretsDir, "directory of password files for encrypted PDFs")
	f.Bool("index", false, "add the converted documents to the catalog database")
}

// bindConvertFlags points the viper keys at the flags of the command being
// run. A key holds one flag binding, so this happens at run time rather than
// in init.
func bindConvertFlags(cmd *cobra.Command) error {
	for key, name := range convertFlags {
		if err := viper.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
			return fmt.Errorf("binding --%s: %w", name, err)
		}
	}
	return nil
}

// extractionConfig assembles the run configuration from flags, env vars,
// config file and defaults, in that order of precedence.
func extractionConfig() types.ExtractionConfig {
	return types.ExtractionConfig{
		InputDir:    viper.GetString("input_dir"),
		OutputJSON:  viper.GetString("output_json"),
		TextDir:     viper.GetString("text_dir"),
		Backend:     types.ExtractionBackend(viper.GetString("backend")),
		KeepEmpty:   viper.GetBool("keep_empty"),
		Validate:    viper.GetBool("validate"),
		SummaryPath: viper.GetString("summary"),
		SecretsDir:  viper.GetString("secrets_dir"),
	}
}

func runConvert(cmd *cobra.Command, args []string) error {
	if err := bindConvertFlags(cmd); err != nil {
		return err
	}
	cfg := extractionConfig()
	out := cmd.OutOrStdout()
	p := report.New(out, viper.GetBool("no_color"))

	// Fail before building backends or touching any output location.
	if err := convert.CheckInput(cfg.InputDir); err != nil {
		if errors.Is(err, convert.ErrInputNotFound) {
			fmt.Fprintf(out, "Folder '%s' does not exist. Please check the path.\n", cfg.InputDir)
		}
		return err
	}

	passwords, err := secrets.Load(cfg.SecretsDir)
	if err != nil {
		return err
	}
	ex, err := extractor.New(cfg, passwords)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := convert.ProcessFolder(ctx, ex, cfg, p)
	if err != nil {
		return err
	}

	if viper.GetBool("index") {
		if err := indexRecords(ctx, result.Records, out); err != nil {
			p.Warn("catalog not updated: %v", err)
		}
	}
	return nil
}

func indexRecords(ctx context.Context, records []types.Record, w io.Writer) error {
	store, err := catalog.Open(catalogConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = store.Index(ctx, records, w)
	return err
}
