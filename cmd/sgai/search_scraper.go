package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/ternarybob/sgai/internal/sgai"
)

var searchScraperCmd = &cobra.Command{
	Use:   "search-scraper <prompt>",
	Short: "Search the web and extract data with AI",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearchScraper,
}

func init() {
	f := searchScraperCmd.Flags()
	f.Int("num-results", 0, "Number of websites to search (3-20)")
	f.Bool("no-extraction", false, "Return markdown only (2 credits/site instead of 10)")
	f.String("schema", "", "Output JSON schema (as JSON string)")
	f.Bool("stealth", false, "Bypass bot detection (+4 credits)")
	f.String("headers", "", "Custom headers as JSON object string")
	f.String("webhook-url", "", "URL notified when the job completes")
}

func runSearchScraper(cmd *cobra.Command, args []string) error {
	docs("searchscraper")

	schema, err := jsonObjectFlag(cmd, "schema")
	if err != nil {
		return err
	}
	headers, err := stringMapFlag(cmd, "headers")
	if err != nil {
		return err
	}

	webhook, _ := cmd.Flags().GetString("webhook-url")
	params := sgai.SearchScraperParams{
		UserPrompt:     strings.Join(args, " "),
		NumResults:     intFlag(cmd, "num-results"),
		ExtractionMode: falseWhenSet(cmd, "no-extraction"),
		OutputSchema:   schema,
		Stealth:        trueFlag(cmd, "stealth"),
		Headers:        headers,
		WebhookURL:     webhook,
	}

	key, err := creds.Resolve(cmd.Context())
	if err != nil {
		return err
	}
	return finish(service.SearchScraper(cmd.Context(), key, params, progress("Searching")))
}
