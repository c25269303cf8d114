package main

import (
	"github.com/spf13/cobra"

	"github.com/ternarybob/sgai/internal/sgai"
)

var markdownifyCmd = &cobra.Command{
	Use:   "markdownify <url>",
	Short: "Convert a webpage to clean markdown",
	Args:  cobra.ExactArgs(1),
	RunE:  runMarkdownify,
}

func init() {
	f := markdownifyCmd.Flags()
	f.Bool("render-js", false, "Enable heavy JS rendering (+1 credit)")
	f.Bool("stealth", false, "Bypass bot detection (+4 credits)")
	f.String("headers", "", "Custom headers as JSON object string")
	f.String("webhook-url", "", "URL notified when the job completes")
}

func runMarkdownify(cmd *cobra.Command, args []string) error {
	docs("markdownify")

	headers, err := stringMapFlag(cmd, "headers")
	if err != nil {
		return err
	}

	webhook, _ := cmd.Flags().GetString("webhook-url")
	params := sgai.MarkdownifyParams{
		WebsiteURL:    args[0],
		RenderHeavyJS: trueFlag(cmd, "render-js"),
		Stealth:       trueFlag(cmd, "stealth"),
		Headers:       headers,
		WebhookURL:    webhook,
	}

	key, err := creds.Resolve(cmd.Context())
	if err != nil {
		return err
	}
	return finish(service.Markdownify(cmd.Context(), key, params, progress("Converting")))
}
