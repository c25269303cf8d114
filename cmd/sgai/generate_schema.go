package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/ternarybob/sgai/internal/sgai"
)

var generateSchemaCmd = &cobra.Command{
	Use:   "generate-schema <prompt>",
	Short: "Generate a JSON schema from a description",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runGenerateSchema,
}

func init() {
	generateSchemaCmd.Flags().String("existing-schema", "", "Schema to refine (as JSON string)")
}

func runGenerateSchema(cmd *cobra.Command, args []string) error {
	existing, err := jsonObjectFlag(cmd, "existing-schema")
	if err != nil {
		return err
	}

	params := sgai.GenerateSchemaParams{
		UserPrompt:     strings.Join(args, " "),
		ExistingSchema: existing,
	}

	key, err := creds.Resolve(cmd.Context())
	if err != nil {
		return err
	}
	return finish(service.GenerateSchema(cmd.Context(), key, params, progress("Generating schema")))
}
