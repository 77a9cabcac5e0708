// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pdftext CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdftext/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command. Run without a subcommand it converts the
// configured input folder, exactly like "pdftext convert".
var rootCmd = &cobra.Command{
	Use:   "pdftext",
	Short: "Batch-convert a folder of PDFs into plain text and JSON",
	Long: `pdftext reads every .pdf file in an input folder, extracts the text of
each page in order, and writes one .txt file per document plus a single JSON
array of {filename, content} records.

Paths default to pdf_file/, extracted_txt_files/ and extracted_data.json and
can be changed with flags, PDFTEXT_* environment variables, or pdftext.yaml.`,
	SilenceUsage: true,
	RunE:         runConvert,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pdftext.yaml or ~/.config/pdftext/config.yaml)")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	_ = viper.BindPFlag("no_color", rootCmd.PersistentFlags().Lookup("no-color"))

	viper.SetDefault("input_dir", types.DefaultInputDir)
	viper.SetDefault("output_json", types.DefaultOutputJSON)
	viper.SetDefault("text_dir", types.DefaultTextDir)
	viper.SetDefault("backend", string(types.BackendNative))
	viper.SetDefault("secrets_dir", types.DefaultSecretsDir)
	viper.SetDefault("catalog.db_path", types.DefaultDBPath)
	viper.SetDefault("catalog.max_results", 20)
}

func initConfig() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintln(os.Stderr, "warning: reading .env:", err)
	}

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pdftext")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pdftext"))
		}
	}

	viper.SetEnvPrefix("PDFTEXT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
