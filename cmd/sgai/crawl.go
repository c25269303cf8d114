package main

import (
	"github.com/spf13/cobra"

	"github.com/ternarybob/sgai/internal/sgai"
)

var crawlCmd = &cobra.Command{
	Use:   "crawl <url>",
	Short: "Crawl and extract data from multiple pages",
	Args:  cobra.ExactArgs(1),
	RunE:  runCrawl,
}

func init() {
	f := crawlCmd.Flags()
	f.StringP("prompt", "p", "", "Extraction prompt (required when extraction mode is on)")
	f.Bool("no-extraction", false, "Return markdown only (2 credits/page instead of 10)")
	f.Int("max-pages", 0, "Maximum pages to crawl (default 10)")
	f.Int("depth", 0, "Crawl depth (default 1)")
	f.String("schema", "", "Output JSON schema (as JSON string)")
	f.String("rules", "", "Crawl rules as JSON object string")
	f.Bool("no-sitemap", false, "Disable sitemap-based URL discovery")
	f.Bool("render-js", false, "Enable heavy JS rendering (+1 credit/page)")
	f.Bool("stealth", false, "Bypass bot detection (+4 credits)")
	f.String("webhook-url", "", "URL notified when the job completes")
}

func runCrawl(cmd *cobra.Command, args []string) error {
	docs("smartcrawler")

	schema, err := jsonObjectFlag(cmd, "schema")
	if err != nil {
		return err
	}
	rules, err := jsonObjectFlag(cmd, "rules")
	if err != nil {
		return err
	}

	prompt, _ := cmd.Flags().GetString("prompt")
	webhook, _ := cmd.Flags().GetString("webhook-url")
	params := sgai.CrawlParams{
		URL:            args[0],
		Prompt:         prompt,
		ExtractionMode: falseWhenSet(cmd, "no-extraction"),
		MaxPages:       intFlag(cmd, "max-pages"),
		Depth:          intFlag(cmd, "depth"),
		Schema:         schema,
		Rules:          rules,
		Sitemap:        falseWhenSet(cmd, "no-sitemap"),
		RenderHeavyJS:  trueFlag(cmd, "render-js"),
		Stealth:        trueFlag(cmd, "stealth"),
		WebhookURL:     webhook,
	}

	key, err := creds.Resolve(cmd.Context())
	if err != nil {
		return err
	}
	return finish(service.Crawl(cmd.Context(), key, params, progress("Crawling")))
}
