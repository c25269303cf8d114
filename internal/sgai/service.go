package sgai

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/ternarybob/arbor"
)

// Service exposes one operation per API endpoint. Every operation validates
// its parameters, talks to the API and folds any failure into the returned
// Result; none of them returns an error.
type Service struct {
	sender       Sender
	validator    *Validator
	logger       arbor.ILogger
	budget       time.Duration
	pollInterval time.Duration
	engine       *Engine
}

// ServiceOption configures the Service.
type ServiceOption func(*Service)

// WithTimeBudget sets the per-operation time budget.
func WithTimeBudget(budget time.Duration) ServiceOption {
	return func(s *Service) {
		if budget > 0 {
			s.budget = budget
		}
	}
}

// WithPollInterval sets the pause between status polls.
func WithPollInterval(interval time.Duration) ServiceOption {
	return func(s *Service) {
		if interval > 0 {
			s.pollInterval = interval
		}
	}
}

// WithServiceLogger sets a logger.
func WithServiceLogger(logger arbor.ILogger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService creates a Service sending its requests through sender.
func NewService(sender Sender, opts ...ServiceOption) *Service {
	s := &Service{
		sender:       sender,
		validator:    NewValidator(),
		budget:       DefaultTimeout,
		pollInterval: DefaultPollInterval,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = arbor.NewLogger()
	}
	s.engine = NewEngine(sender, s.budget, s.pollInterval, s.logger)

	return s
}

// SmartScraper extracts structured data from a page.
func (s *Service) SmartScraper(ctx context.Context, apiKey string, params SmartScraperParams, onProgress ProgressFunc) Result {
	return s.runJob(ctx, SmartScraperJob, apiKey, params, onProgress)
}

// SearchScraper searches the web and extracts data from the results.
func (s *Service) SearchScraper(ctx context.Context, apiKey string, params SearchScraperParams, onProgress ProgressFunc) Result {
	return s.runJob(ctx, SearchScraperJob, apiKey, params, onProgress)
}

// Markdownify converts a page to markdown.
func (s *Service) Markdownify(ctx context.Context, apiKey string, params MarkdownifyParams, onProgress ProgressFunc) Result {
	return s.runJob(ctx, MarkdownifyJob, apiKey, params, onProgress)
}

// Scrape fetches the raw HTML of a page.
func (s *Service) Scrape(ctx context.Context, apiKey string, params ScrapeParams, onProgress ProgressFunc) Result {
	return s.runJob(ctx, ScrapeJob, apiKey, params, onProgress)
}

// Crawl crawls and extracts data from several pages.
func (s *Service) Crawl(ctx context.Context, apiKey string, params CrawlParams, onProgress ProgressFunc) Result {
	return s.runJob(ctx, CrawlJob, apiKey, params, onProgress)
}

// AgenticScraper runs browser automation steps and optionally extracts data.
func (s *Service) AgenticScraper(ctx context.Context, apiKey string, params AgenticScraperParams, onProgress ProgressFunc) Result {
	return s.runJob(ctx, AgenticScraperJob, apiKey, params, onProgress)
}

// GenerateSchema generates a JSON schema from a description.
func (s *Service) GenerateSchema(ctx context.Context, apiKey string, params GenerateSchemaParams, onProgress ProgressFunc) Result {
	return s.runJob(ctx, GenerateSchemaJob, apiKey, params, onProgress)
}

// Sitemap lists the URLs of a site's sitemap. It does not poll.
func (s *Service) Sitemap(ctx context.Context, apiKey string, params SitemapParams) Result {
	if err := s.validator.Validate(params); err != nil {
		return s.fail(SitemapPath, err)
	}
	return s.call(ctx, http.MethodPost, SitemapPath, apiKey, params)
}

// Credits returns the remaining credit balance.
func (s *Service) Credits(ctx context.Context, apiKey string) Result {
	return s.call(ctx, http.MethodGet, CreditsPath, apiKey, nil)
}

// Health checks the API and the validity of apiKey.
func (s *Service) Health(ctx context.Context, apiKey string) Result {
	return s.call(ctx, http.MethodGet, HealthPath, apiKey, nil)
}

// History returns one page of the request history of a service.
func (s *Service) History(ctx context.Context, apiKey string, params HistoryParams) Result {
	params = params.withDefaults()
	if err := s.validator.Validate(params); err != nil {
		return s.fail(HistoryPath, err)
	}

	query := url.Values{}
	query.Set("page", strconv.Itoa(params.Page))
	query.Set("page_size", strconv.Itoa(params.PageSize))
	path := fmt.Sprintf("%s/%s?%s", HistoryPath, params.Service, query.Encode())

	return s.call(ctx, http.MethodGet, path, apiKey, nil)
}

// runJob is the shared validate → submit/poll → envelope path of the asynchronous jobs.
func (s *Service) runJob(ctx context.Context, spec JobSpec, apiKey string, params any, onProgress ProgressFunc) Result {
	if err := s.validator.Validate(params); err != nil {
		return s.fail(spec.Name, err)
	}

	outcome, err := s.engine.Run(ctx, spec, apiKey, params, onProgress)
	if err != nil {
		s.logger.Debug().
			Str("job", spec.Name).
			Str("state", outcome.State().String()).
			Int("polls", outcome.Polls).
			Err(err).
			Msg("Job did not complete")
		return errorResult(err)
	}

	return okResult(outcome.Response, outcome.Elapsed)
}

// call performs a single synchronous exchange bounded by the time budget.
func (s *Service) call(ctx context.Context, method, path, apiKey string, body any) Result {
	ctx, cancel := context.WithTimeout(ctx, s.budget)
	defer cancel()

	exchange, err := s.sender.Send(ctx, method, path, apiKey, body)
	if err != nil {
		return s.fail(path, err)
	}
	return okResult(exchange.Body, exchange.Elapsed)
}

func (s *Service) fail(operation string, err error) Result {
	s.logger.Debug().Str("operation", operation).Err(err).Msg("Request failed")
	return errorResult(err)
}
