package main

import (
	"github.com/spf13/cobra"

	"github.com/ternarybob/sgai/internal/sgai"
)

var sitemapCmd = &cobra.Command{
	Use:   "sitemap <url>",
	Short: "Get all URLs from a website's sitemap",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		docs("sitemap")

		key, err := creds.Resolve(cmd.Context())
		if err != nil {
			return err
		}
		if !quiet {
			status.Notice("Fetching sitemap…")
		}
		return finish(service.Sitemap(cmd.Context(), key, sgai.SitemapParams{WebsiteURL: args[0]}))
	},
}
