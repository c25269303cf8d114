package main

import (
	"github.com/spf13/cobra"

	"github.com/ternarybob/sgai/internal/sgai"
)

var agenticScraperCmd = &cobra.Command{
	Use:   "agentic-scraper <url>",
	Short: "Run browser automation steps, then optionally extract data",
	Args:  cobra.ExactArgs(1),
	RunE:  runAgenticScraper,
}

func init() {
	f := agenticScraperCmd.Flags()
	f.StringSliceP("steps", "s", nil, `Browser steps, comma separated (e.g. "Click login,Type email")`)
	f.String("prompt", "", "Extraction prompt applied after the steps")
	f.String("schema", "", "Output JSON schema (as JSON string)")
	f.Bool("ai-extraction", false, "Extract data with AI after the steps")
	f.Bool("use-session", false, "Reuse the browser session between calls")
}

func runAgenticScraper(cmd *cobra.Command, args []string) error {
	docs("agenticscraper")

	schema, err := jsonObjectFlag(cmd, "schema")
	if err != nil {
		return err
	}

	steps, _ := cmd.Flags().GetStringSlice("steps")
	prompt, _ := cmd.Flags().GetString("prompt")
	params := sgai.AgenticScraperParams{
		URL:          args[0],
		Steps:        steps,
		UserPrompt:   prompt,
		OutputSchema: schema,
		AIExtraction: trueFlag(cmd, "ai-extraction"),
		UseSession:   trueFlag(cmd, "use-session"),
	}

	key, err := creds.Resolve(cmd.Context())
	if err != nil {
		return err
	}
	return finish(service.AgenticScraper(cmd.Context(), key, params, progress("Running steps")))
}
