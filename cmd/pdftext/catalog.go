// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdftext/internal/catalog"
	"github.com/pdiddy/pdftext/internal/convert"
	"github.com/pdiddy/pdftext/pkg/types"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Index extracted documents in SQLite and search them",
	Long: `Catalog keeps the documents produced by convert in a local SQLite
database. Use subcommands to load a JSON aggregate, search its text, or
print one stored document.`,
}

// --- index subcommand ---

var catalogIndexCmd = &cobra.Command{
	Use:   "index [json-file]",
	Short: "Load an extracted_data.json file into the catalog",
	Long: `Index reads the JSON array written by convert (default: the configured
output JSON path) and upserts every record into the catalog. Documents with
the same filename are replaced.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCatalogIndex,
}

func runCatalogIndex(cmd *cobra.Command, args []string) error {
	path := viper.GetString("output_json")
	if len(args) == 1 {
		path = args[0]
	}

	records, err := convert.ReadJSON(path)
	if err != nil {
		return err
	}

	store, err := catalog.Open(catalogConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = store.Index(context.Background(), records, cmd.OutOrStdout())
	return err
}

// --- search subcommand ---

var catalogSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Find catalog documents containing a phrase",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCatalogSearch,
}

func runCatalogSearch(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	store, err := catalog.Open(catalogConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	results, err := store.Search(context.Background(), strings.Join(args, " "), limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Fprintln(out, "No results found.")
		return nil
	}
	for i, r := range results {
		fmt.Fprintf(out, "%3d  %-30s  %6d chars  %s\n", i+1, r.Filename, r.Chars, r.Snippet)
	}
	fmt.Fprintf(out, "\n%d results\n", len(results))
	return nil
}

// --- show subcommand ---

var catalogShowCmd = &cobra.Command{
	Use:   "show <filename>",
	Short: "Print the stored text of one catalog document",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogShow,
}

func runCatalogShow(cmd *cobra.Command, args []string) error {
	store, err := catalog.Open(catalogConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	record, err := store.Get(context.Background(), args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(record)
	}
	_, err = io.WriteString(out, record.Content)
	return err
}

func catalogConfig() types.CatalogConfig {
	return types.CatalogConfig{
		DBPath:     viper.GetString("catalog.db_path"),
		MaxResults: viper.GetInt("catalog.max_results"),
	}
}

func init() {
	catalogCmd.PersistentFlags().String("db", types.DefaultDBPath, "catalog SQLite database")
	_ = viper.BindPFlag("catalog.db_path", catalogCmd.PersistentFlags().Lookup("db"))

	catalogSearchCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	catalogSearchCmd.Flags().Bool("json", false, "output results as JSON")

	catalogCmd.AddCommand(catalogIndexCmd)
	catalogShowCmd.Flags().Bool("json", false, "output the record as JSON")

	catalogCmd.AddCommand(catalogSearchCmd)
	catalogCmd.AddCommand(catalogShowCmd)

	rootCmd.AddCommand(catalogCmd)
}
