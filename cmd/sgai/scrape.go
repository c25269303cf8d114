package main

import (
	"github.com/spf13/cobra"

	"github.com/ternarybob/sgai/internal/services/render"
	"github.com/ternarybob/sgai/internal/sgai"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape <url>",
	Short: "Get the raw HTML of a webpage",
	Args:  cobra.ExactArgs(1),
	RunE:  runScrape,
}

func init() {
	f := scrapeCmd.Flags()
	f.Bool("render-js", false, "Enable heavy JS rendering (+1 credit)")
	f.Bool("stealth", false, "Bypass bot detection (+4 credits)")
	f.Bool("branding", false, "Extract branding info (+2 credits)")
	f.String("country-code", "", "ISO country code for geo-targeting")
	f.Bool("markdown", false, "Convert the scraped HTML to markdown locally")
}

func runScrape(cmd *cobra.Command, args []string) error {
	docs("scrape")

	countryCode, _ := cmd.Flags().GetString("country-code")
	params := sgai.ScrapeParams{
		WebsiteURL:    args[0],
		RenderHeavyJS: trueFlag(cmd, "render-js"),
		Stealth:       trueFlag(cmd, "stealth"),
		Branding:      trueFlag(cmd, "branding"),
		CountryCode:   countryCode,
	}

	key, err := creds.Resolve(cmd.Context())
	if err != nil {
		return err
	}
	result := service.Scrape(cmd.Context(), key, params, progress("Scraping"))

	if asMarkdown, _ := cmd.Flags().GetBool("markdown"); asMarkdown && result.OK() {
		result = toMarkdown(result, args[0])
	}
	return finish(result)
}

// toMarkdown replaces the scraped HTML with its markdown rendition and a
// short page summary. Results without HTML pass through unchanged.
func toMarkdown(result sgai.Result, pageURL string) sgai.Result {
	html, ok := render.ScrapedHTML(result.Data)
	if !ok {
		logger.Warn().Str("url", pageURL).Msg("Scrape result carries no HTML, skipping markdown conversion")
		return result
	}

	converter := render.NewConverter(logger)
	data := sgai.JobResponse{}
	for k, v := range result.Data {
		if k != "html" && k != "result" {
			data[k] = v
		}
	}
	data["markdown"] = converter.HTMLToMarkdown(html, pageURL)
	if summary, err := converter.Summarize(html, pageURL); err == nil {
		data["page"] = summary
	} else {
		logger.Warn().Err(err).Msg("Failed to summarize scraped page")
	}

	result.Data = data
	return result
}
