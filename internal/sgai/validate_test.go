package sgai

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_Validate(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name     string
		params   any
		wantErr  bool
		contains []string
	}{
		{
			name:   "smart scraper valid",
			params: SmartScraperParams{WebsiteURL: "https://example.com", UserPrompt: "Extract prices"},
		},
		{
			name:     "smart scraper missing prompt",
			params:   SmartScraperParams{WebsiteURL: "https://example.com"},
			wantErr:  true,
			contains: []string{"user_prompt is required"},
		},
		{
			name:     "smart scraper bad url and scrolls",
			params:   SmartScraperParams{WebsiteURL: "not a url", UserPrompt: "x", NumberOfScrolls: Int(101)},
			wantErr:  true,
			contains: []string{"website_url must be a valid URL", "number_of_scrolls must be <= 100"},
		},
		{
			name:   "smart scraper zero scrolls allowed",
			params: SmartScraperParams{WebsiteHTML: "<p>x</p>", UserPrompt: "x", NumberOfScrolls: Int(0)},
		},
		{
			name:     "search scraper too few results",
			params:   SearchScraperParams{UserPrompt: "x", NumResults: Int(2)},
			wantErr:  true,
			contains: []string{"num_results must be >= 3"},
		},
		{
			name:     "markdownify requires url",
			params:   MarkdownifyParams{},
			wantErr:  true,
			contains: []string{"website_url is required"},
		},
		{
			name:     "crawl max pages",
			params:   CrawlParams{URL: "https://example.com", MaxPages: Int(0)},
			wantErr:  true,
			contains: []string{"max_pages must be >= 1"},
		},
		{
			name:     "history unknown service",
			params:   HistoryParams{Service: "nope", Page: 1, PageSize: 10},
			wantErr:  true,
			contains: []string{"service must be one of: markdownify, smartscraper"},
		},
		{
			name:     "history page size",
			params:   HistoryParams{Service: "crawl", Page: 1, PageSize: 101},
			wantErr:  true,
			contains: []string{"page_size must be <= 100"},
		},
		{
			name:   "generate schema valid",
			params: GenerateSchemaParams{UserPrompt: "A product with name and price"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.params)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.Contains(t, validationErr.Message, "Invalid parameters: ")
			for _, fragment := range tt.contains {
				assert.Contains(t, validationErr.Message, fragment)
			}
		})
	}
}

func TestHistoryParams_WithDefaults(t *testing.T) {
	p := HistoryParams{Service: "scrape"}.withDefaults()
	assert.Equal(t, DefaultHistoryPage, p.Page)
	assert.Equal(t, DefaultHistoryPageSize, p.PageSize)

	p = HistoryParams{Service: "scrape", Page: 3, PageSize: 50}.withDefaults()
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 50, p.PageSize)
}
