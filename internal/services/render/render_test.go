package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"gopkg.in/yaml.v3"

	"github.com/ternarybob/sgai/internal/sgai"
)

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		ms   int64
		want string
	}{
		{0, "0ms"},
		{999, "999ms"},
		{1000, "1.0s"},
		{2345, "2.3s"},
		{61000, "61.0s"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatElapsed(tt.ms))
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	f, err = ParseFormat("YAML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}

func TestPrinter_DataJSONPlain(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out)

	require.NoError(t, p.Data(sgai.JobResponse{"status": "completed", "count": 2}))
	assert.Equal(t, "{\n  \"count\": 2,\n  \"status\": \"completed\"\n}\n", out.String())
}

func TestPrinter_DataYAML(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out, WithFormat(FormatYAML))

	result := sgai.Result{Status: sgai.ResultSuccess, Data: sgai.JobResponse{"urls": []any{"https://example.com/a"}}, ElapsedMs: 12}
	require.NoError(t, p.Data(result))

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, "success", decoded["status"])
	assert.Equal(t, 12, decoded["elapsedMs"])
	assert.NotContains(t, decoded, "error")
}

func TestHighlight(t *testing.T) {
	in := "{\n  \"name\": \"sgai\",\n  \"count\": 3,\n  \"ok\": true\n}"
	out := Highlight(in)

	assert.NotEqual(t, in, out)
	assert.Contains(t, out, "\x1b[")
	for _, fragment := range []string{`"name"`, `"sgai"`, "3", "true"} {
		assert.Contains(t, out, fragment)
	}
}

func TestPrinter_History(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out)

	rows := []sgai.JobResponse{
		{"request_id": "0123456789abcdef", "status": "completed", "website_url": "https://example.com", "created_at": "2025-01-02T03:04:05Z"},
		{"crawl_id": "c-1", "status": "failed", "url": "https://example.org"},
	}
	p.History("smartscraper", 1, rows, true)

	rendered := out.String()
	assert.Contains(t, rendered, "smartscraper history, page 1")
	assert.Contains(t, rendered, "0123456789a…")
	assert.Contains(t, rendered, "c-1")
	assert.Contains(t, rendered, "https://example.org")
	assert.Contains(t, rendered, "--page 2")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 12))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
}

func TestConverter_HTMLToMarkdown(t *testing.T) {
	c := NewConverter(arbor.NewLogger())

	markdown := c.HTMLToMarkdown(`<h1>Prices</h1><p>See <a href="/list">the list</a></p>`, "https://example.com/page")
	assert.Contains(t, markdown, "# Prices")
	assert.Contains(t, markdown, "[the list](")
	assert.Contains(t, markdown, "/list)")

	assert.Empty(t, c.HTMLToMarkdown("", ""))
}

func TestConverter_Summarize(t *testing.T) {
	c := NewConverter(nil)
	html := `<html><head><title> Shop </title></head><body>
<a href="/a">a</a><a href="https://example.com/b">b</a><a href="https://other.org">c</a><a href="#top">top</a>
<img src="x.png"></body></html>`

	summary, err := c.Summarize(html, "https://example.com/")
	require.NoError(t, err)
	assert.Equal(t, "Shop", summary.Title)
	assert.Equal(t, 3, summary.Links)
	assert.Equal(t, 2, summary.InternalLinks)
	assert.Equal(t, 1, summary.Images)
	assert.Equal(t, len(html), summary.Bytes)
}

func TestScrapedHTML(t *testing.T) {
	html, ok := ScrapedHTML(sgai.JobResponse{"html": "<p>x</p>"})
	assert.True(t, ok)
	assert.Equal(t, "<p>x</p>", html)

	html, ok = ScrapedHTML(sgai.JobResponse{"result": "<p>y</p>"})
	assert.True(t, ok)
	assert.Equal(t, "<p>y</p>", html)

	_, ok = ScrapedHTML(sgai.JobResponse{"result": map[string]any{}})
	assert.False(t, ok)
}

func TestStripHTMLTags(t *testing.T) {
	assert.Equal(t, "a & b", stripHTMLTags("<p>a &amp;   <b>b</b></p>"))
	assert.True(t, strings.HasPrefix(stripHTMLTags("<div>  hi</div>"), "hi"))
}

func TestPrinter_StatusLines(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out)

	p.Done(1500)
	p.Docs("https://docs.scrapegraphai.com/services/sitemap")
	p.Error("")

	assert.Equal(t, "Done in 1.5s\nDocs: https://docs.scrapegraphai.com/services/sitemap\n✖ Unknown error\n", out.String())
}
