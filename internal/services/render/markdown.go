package render

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/sgai/internal/sgai"
)

// PageSummary describes a fetched HTML page.
type PageSummary struct {
	Title         string `json:"title"`
	Links         int    `json:"links"`
	InternalLinks int    `json:"internal_links"`
	Images        int    `json:"images"`
	Bytes         int    `json:"bytes"`
}

// Converter turns HTML returned by the scrape job into local markdown.
type Converter struct {
	logger arbor.ILogger
}

// NewConverter creates a Converter.
func NewConverter(logger arbor.ILogger) *Converter {
	if logger == nil {
		logger = arbor.NewLogger()
	}
	return &Converter{logger: logger}
}

// ScrapedHTML returns the page HTML carried by a scrape result: the "html"
// field, or a string "result" field.
func ScrapedHTML(data sgai.JobResponse) (string, bool) {
	if html := data.String("html"); html != "" {
		return html, true
	}
	if html := data.String("result"); html != "" {
		return html, true
	}
	return "", false
}

// HTMLToMarkdown converts HTML to markdown; baseURL resolves relative links.
// When conversion fails or yields nothing the stripped text is returned.
func (c *Converter) HTMLToMarkdown(html string, baseURL string) string {
	if html == "" {
		return ""
	}

	c.logger.Debug().
		Int("html_length", len(html)).
		Str("base_url", baseURL).
		Msg("Converting HTML to markdown")

	converted, err := md.NewConverter(hostOf(baseURL), true, nil).ConvertString(html)
	if err != nil {
		c.logger.Warn().Err(err).Msg("HTML to markdown conversion failed, using fallback")
		return stripHTMLTags(html)
	}

	if strings.TrimSpace(converted) == "" {
		c.logger.Warn().
			Int("html_length", len(html)).
			Msg("HTML to markdown conversion produced empty output, applying fallback")
		return stripHTMLTags(html)
	}

	return converted
}

// Summarize extracts the title and counts links and images of an HTML page.
func (c *Converter) Summarize(html string, pageURL string) (PageSummary, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return PageSummary{}, fmt.Errorf("failed to parse HTML: %w", err)
	}

	summary := PageSummary{
		Title:  extractTitle(doc),
		Images: doc.Find("img").Length(),
		Bytes:  len(html),
	}

	host := ""
	if u, err := url.Parse(pageURL); err == nil {
		host = u.Host
	}
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "javascript:") {
			return
		}
		summary.Links++
		u, err := url.Parse(href)
		if err != nil {
			return
		}
		if u.Host == "" || u.Host == host {
			summary.InternalLinks++
		}
	})

	c.logger.Debug().
		Str("title", summary.Title).
		Int("links", summary.Links).
		Int("bytes", summary.Bytes).
		Msg("Summarized scraped page")

	return summary, nil
}

func extractTitle(doc *goquery.Document) string {
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return title
	}
	if ogTitle, exists := doc.Find("meta[property='og:title']").Attr("content"); exists && strings.TrimSpace(ogTitle) != "" {
		return strings.TrimSpace(ogTitle)
	}
	if h1 := strings.TrimSpace(doc.Find("h1").First().Text()); h1 != "" {
		return h1
	}
	return "Untitled"
}

// hostOf returns the domain html-to-markdown expects for resolving links.
func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Scheme + "://" + u.Host
}

var (
	tagPattern   = regexp.MustCompile(`<[^>]*>`)
	spacePattern = regexp.MustCompile(`\s+`)
)

func stripHTMLTags(html string) string {
	stripped := tagPattern.ReplaceAllString(html, "")
	cleaned := spacePattern.ReplaceAllString(stripped, " ")
	cleaned = strings.NewReplacer("&amp;", "&", "&lt;", "<", "&gt;", ">", "&quot;", `"`, "&#39;", "'", "&nbsp;", " ").Replace(cleaned)
	return strings.TrimSpace(cleaned)
}
