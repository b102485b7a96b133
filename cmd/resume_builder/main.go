// Package main provides the entry point for the resume builder CLI and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "resume_builder",
	Short:        "Resume builder",
	Long:         "Resume builder edits structured resume documents section by section, from the command line or over a REST API.",
	SilenceUsage: true,
}

var (
	configPath  string
	storageFlag string
	documentDir string
	databaseURL string
	logMode     string
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Path to JSON config file (comments allowed)")
	flags.StringVar(&storageFlag, "storage", "", "Storage backend: memory, file or postgres")
	flags.StringVar(&documentDir, "dir", "", "Directory of resume documents for file storage")
	flags.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL")
	flags.StringVar(&logMode, "log-mode", "", "Log mode: dev or prod")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
