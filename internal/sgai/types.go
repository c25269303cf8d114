package sgai

import (
	"encoding/json"
	"fmt"
	"time"
)

// Job status values reported by the API.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusDone      = "done"
	StatusFailed    = "failed"
)

// Identifier fields used by the API to reference an asynchronous job.
const (
	IDFieldRequest = "request_id"
	IDFieldCrawl   = "crawl_id"
)

// JobResponse is the decoded JSON object returned by the API.
// Only the status, identifier and failure reason are interpreted; the rest is
// passed through to the caller untouched.
type JobResponse map[string]any

// Status returns the reported job status, or "" when absent.
func (r JobResponse) Status() string {
	return r.String("status")
}

// String returns a string field, or "" when the field is missing or not a string.
func (r JobResponse) String(field string) string {
	if r == nil {
		return ""
	}
	s, _ := r[field].(string)
	return s
}

// IsSuccess reports whether status is one of the success synonyms.
func IsSuccess(status string) bool {
	return status == StatusCompleted || status == StatusDone
}

// IsFailure reports whether status is the terminal failure status.
func IsFailure(status string) bool {
	return status == StatusFailed
}

// Exchange is the outcome of a single HTTP round trip.
type Exchange struct {
	Body    JobResponse
	Raw     json.RawMessage
	Elapsed time.Duration
}

// ResultStatus discriminates a Result.
type ResultStatus string

const (
	ResultSuccess ResultStatus = "success"
	ResultError   ResultStatus = "error"
)

// Result is the envelope returned by every Service operation.
// Exactly one of Data and Error is populated.
type Result struct {
	Status    ResultStatus `json:"status"`
	Data      JobResponse  `json:"data"`
	Error     string       `json:"error,omitempty"`
	ElapsedMs int64        `json:"elapsedMs"`
}

// OK reports whether the result is a success envelope.
func (r Result) OK() bool {
	return r.Status == ResultSuccess
}

func okResult(data JobResponse, elapsed time.Duration) Result {
	if data == nil {
		data = JobResponse{}
	}
	return Result{Status: ResultSuccess, Data: data, ElapsedMs: elapsed.Milliseconds()}
}

func errorResult(err error) Result {
	return Result{Status: ResultError, Data: nil, Error: Classify(err), ElapsedMs: 0}
}

// JobSpec parameterises the Engine for one asynchronous job type.
type JobSpec struct {
	Name    string
	Path    string
	IDField string
}

// PollPath returns the status path for a submitted job.
func (s JobSpec) PollPath(id string) string {
	return fmt.Sprintf("%s/%s", s.Path, id)
}

// Asynchronous job types.
var (
	SmartScraperJob   = JobSpec{Name: "smartscraper", Path: "/smartscraper", IDField: IDFieldRequest}
	SearchScraperJob  = JobSpec{Name: "searchscraper", Path: "/searchscraper", IDField: IDFieldRequest}
	MarkdownifyJob    = JobSpec{Name: "markdownify", Path: "/markdownify", IDField: IDFieldRequest}
	ScrapeJob         = JobSpec{Name: "scrape", Path: "/scrape", IDField: IDFieldRequest}
	CrawlJob          = JobSpec{Name: "crawl", Path: "/crawl", IDField: IDFieldCrawl}
	AgenticScraperJob = JobSpec{Name: "agentic-scraper", Path: "/agentic-scrapper", IDField: IDFieldRequest}
	GenerateSchemaJob = JobSpec{Name: "generate-schema", Path: "/generate_schema", IDField: IDFieldRequest}
)

// Synchronous endpoint paths.
const (
	SitemapPath = "/sitemap"
	CreditsPath = "/credits"
	HealthPath  = "/healthz"
	HistoryPath = "/history"
)

// ProgressFunc receives the status reported by each poll.
type ProgressFunc func(status string)

// HistoryPage is one page of the request history listing.
type HistoryPage struct {
	Requests []JobResponse `json:"requests"`
	NextKey  string        `json:"next_key,omitempty"`
}

// HasMore reports whether the API advertised a further page.
func (p HistoryPage) HasMore() bool {
	return p.NextKey != ""
}

// DecodeHistoryPage converts the data of a History result into a HistoryPage.
func DecodeHistoryPage(data JobResponse) (HistoryPage, error) {
	var page HistoryPage
	raw, err := json.Marshal(data)
	if err != nil {
		return page, fmt.Errorf("failed to encode history data: %w", err)
	}
	if err := json.Unmarshal(raw, &page); err != nil {
		return page, &ProtocolError{Message: fmt.Sprintf("malformed history response: %v", err)}
	}
	return page, nil
}

// RequestID returns the identifier of a history record.
func RequestID(row JobResponse) string {
	for _, field := range []string{IDFieldRequest, IDFieldCrawl, "id"} {
		if v, ok := row[field]; ok && v != nil {
			return fmt.Sprint(v)
		}
	}
	return "unknown"
}

// FindRequest returns the history record with the given identifier.
func FindRequest(rows []JobResponse, id string) (JobResponse, bool) {
	for _, row := range rows {
		if RequestID(row) == id {
			return row, true
		}
	}
	return nil, false
}
