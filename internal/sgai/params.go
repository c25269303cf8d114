package sgai

// Request parameters for each job type. Optional fields are pointers or
// omitempty collections so the JSON body holds exactly what the caller set.

// SmartScraperParams extracts structured data from a page using a prompt.
type SmartScraperParams struct {
	WebsiteURL      string            `json:"website_url,omitempty" validate:"omitempty,http_url"`
	WebsiteHTML     string            `json:"website_html,omitempty"`
	WebsiteMarkdown string            `json:"website_markdown,omitempty"`
	UserPrompt      string            `json:"user_prompt" validate:"required"`
	OutputSchema    map[string]any    `json:"output_schema,omitempty"`
	NumberOfScrolls *int              `json:"number_of_scrolls,omitempty" validate:"omitempty,min=0,max=100"`
	TotalPages      *int              `json:"total_pages,omitempty" validate:"omitempty,min=1,max=100"`
	RenderHeavyJS   *bool             `json:"render_heavy_js,omitempty"`
	Stealth         *bool             `json:"stealth,omitempty"`
	Cookies         map[string]string `json:"cookies,omitempty"`
	Headers         map[string]string `json:"headers,omitempty"`
	PlainText       *bool             `json:"plain_text,omitempty"`
	WebhookURL      string            `json:"webhook_url,omitempty" validate:"omitempty,http_url"`
}

// SearchScraperParams searches the web and extracts data from the results.
type SearchScraperParams struct {
	UserPrompt     string            `json:"user_prompt" validate:"required"`
	NumResults     *int              `json:"num_results,omitempty" validate:"omitempty,min=3,max=20"`
	ExtractionMode *bool             `json:"extraction_mode,omitempty"`
	OutputSchema   map[string]any    `json:"output_schema,omitempty"`
	Stealth        *bool             `json:"stealth,omitempty"`
	Headers        map[string]string `json:"headers,omitempty"`
	WebhookURL     string            `json:"webhook_url,omitempty" validate:"omitempty,http_url"`
}

// MarkdownifyParams converts a page to markdown.
type MarkdownifyParams struct {
	WebsiteURL    string            `json:"website_url" validate:"required,http_url"`
	RenderHeavyJS *bool             `json:"render_heavy_js,omitempty"`
	Stealth       *bool             `json:"stealth,omitempty"`
	Headers       map[string]string `json:"headers,omitempty"`
	WebhookURL    string            `json:"webhook_url,omitempty" validate:"omitempty,http_url"`
}

// ScrapeParams fetches the raw HTML of a page.
type ScrapeParams struct {
	WebsiteURL    string `json:"website_url" validate:"required,http_url"`
	RenderHeavyJS *bool  `json:"render_heavy_js,omitempty"`
	Stealth       *bool  `json:"stealth,omitempty"`
	Branding      *bool  `json:"branding,omitempty"`
	CountryCode   string `json:"country_code,omitempty"`
}

// CrawlParams crawls several pages starting from URL.
type CrawlParams struct {
	URL            string         `json:"url" validate:"required,http_url"`
	Prompt         string         `json:"prompt,omitempty"`
	ExtractionMode *bool          `json:"extraction_mode,omitempty"`
	MaxPages       *int           `json:"max_pages,omitempty" validate:"omitempty,min=1"`
	Depth          *int           `json:"depth,omitempty" validate:"omitempty,min=1"`
	Schema         map[string]any `json:"schema,omitempty"`
	Rules          map[string]any `json:"rules,omitempty"`
	Sitemap        *bool          `json:"sitemap,omitempty"`
	RenderHeavyJS  *bool          `json:"render_heavy_js,omitempty"`
	Stealth        *bool          `json:"stealth,omitempty"`
	WebhookURL     string         `json:"webhook_url,omitempty" validate:"omitempty,http_url"`
}

// AgenticScraperParams drives a remote browser through a list of steps.
type AgenticScraperParams struct {
	URL          string         `json:"url" validate:"required,http_url"`
	Steps        []string       `json:"steps,omitempty"`
	UserPrompt   string         `json:"user_prompt,omitempty"`
	OutputSchema map[string]any `json:"output_schema,omitempty"`
	AIExtraction *bool          `json:"ai_extraction,omitempty"`
	UseSession   *bool          `json:"use_session,omitempty"`
}

// GenerateSchemaParams asks the API for a JSON schema matching a description.
type GenerateSchemaParams struct {
	UserPrompt     string         `json:"user_prompt" validate:"required"`
	ExistingSchema map[string]any `json:"existing_schema,omitempty"`
}

// SitemapParams lists the URLs of a site's sitemap.
type SitemapParams struct {
	WebsiteURL string `json:"website_url" validate:"required,http_url"`
}

// HistoryServices are the services that keep a request history.
var HistoryServices = []string{
	"markdownify",
	"smartscraper",
	"searchscraper",
	"scrape",
	"crawl",
	"agentic-scraper",
	"sitemap",
}

// Default history paging.
const (
	DefaultHistoryPage     = 1
	DefaultHistoryPageSize = 10
	MaxHistoryPageSize     = 100
)

// HistoryParams selects a page of the request history of one service.
// Zero Page and PageSize take their defaults.
type HistoryParams struct {
	Service  string `json:"service" validate:"required,oneof=markdownify smartscraper searchscraper scrape crawl agentic-scraper sitemap"`
	Page     int    `json:"page" validate:"min=1"`
	PageSize int    `json:"page_size" validate:"min=1,max=100"`
}

func (p HistoryParams) withDefaults() HistoryParams {
	if p.Page == 0 {
		p.Page = DefaultHistoryPage
	}
	if p.PageSize == 0 {
		p.PageSize = DefaultHistoryPageSize
	}
	return p
}

// Int returns a pointer to v, for optional numeric parameters.
func Int(v int) *int {
	return &v
}

// Bool returns a pointer to v, for optional boolean parameters.
func Bool(v bool) *bool {
	return &v
}
