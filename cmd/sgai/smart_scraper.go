package main

import (
	"github.com/spf13/cobra"

	"github.com/ternarybob/sgai/internal/sgai"
)

var smartScraperCmd = &cobra.Command{
	Use:   "smart-scraper <url>",
	Short: "Extract structured data from a URL using AI",
	Args:  cobra.ExactArgs(1),
	RunE:  runSmartScraper,
}

func init() {
	f := smartScraperCmd.Flags()
	f.StringP("prompt", "p", "", "Extraction prompt (required)")
	f.String("schema", "", "Output JSON schema (as JSON string)")
	f.Int("scrolls", 0, "Number of infinite scrolls (0-100)")
	f.Int("pages", 0, "Total pages to scrape (1-100)")
	f.Bool("render-js", false, "Enable heavy JS rendering (+1 credit)")
	f.Bool("stealth", false, "Bypass bot detection (+4 credits)")
	f.String("cookies", "", "Cookies as JSON object string")
	f.String("headers", "", "Custom headers as JSON object string")
	f.Bool("plain-text", false, "Return plain text instead of JSON")
	f.String("webhook-url", "", "URL notified when the job completes")
	_ = smartScraperCmd.MarkFlagRequired("prompt")
}

func runSmartScraper(cmd *cobra.Command, args []string) error {
	docs("smartscraper")

	schema, err := jsonObjectFlag(cmd, "schema")
	if err != nil {
		return err
	}
	cookies, err := stringMapFlag(cmd, "cookies")
	if err != nil {
		return err
	}
	headers, err := stringMapFlag(cmd, "headers")
	if err != nil {
		return err
	}

	prompt, _ := cmd.Flags().GetString("prompt")
	webhook, _ := cmd.Flags().GetString("webhook-url")
	params := sgai.SmartScraperParams{
		WebsiteURL:      args[0],
		UserPrompt:      prompt,
		OutputSchema:    schema,
		NumberOfScrolls: intFlag(cmd, "scrolls"),
		TotalPages:      intFlag(cmd, "pages"),
		RenderHeavyJS:   trueFlag(cmd, "render-js"),
		Stealth:         trueFlag(cmd, "stealth"),
		Cookies:         cookies,
		Headers:         headers,
		PlainText:       trueFlag(cmd, "plain-text"),
		WebhookURL:      webhook,
	}

	key, err := creds.Resolve(cmd.Context())
	if err != nil {
		return err
	}
	return finish(service.SmartScraper(cmd.Context(), key, params, progress("Scraping")))
}
