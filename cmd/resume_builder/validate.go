package main

import (
	"fmt"

	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a resume document file",
	Long:  "Validates a JSON resume document against the built-in document schema, or against --schema when given.",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

var validateSchema string

func init() {
	validateCmd.Flags().StringVar(&validateSchema, "schema", "", "Path to a JSON schema to validate against instead")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	var err error
	if validateSchema != "" {
		err = schemas.ValidateJSON(validateSchema, args[0])
	} else {
		err = schemas.ValidateDocumentFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s is valid\n", args[0])
	return err
}
