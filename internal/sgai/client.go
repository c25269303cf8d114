// Package sgai provides a client for the ScrapeGraph AI API together with the
// job engine that submits and polls its asynchronous jobs.
package sgai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the base URL for the ScrapeGraph AI API.
	DefaultBaseURL = "https://api.scrapegraphai.com/v1"

	// DefaultTimeout is the default time budget for a single call.
	DefaultTimeout = 120 * time.Second

	// DefaultRateLimit is the default client-side rate limit (requests per second).
	DefaultRateLimit = 10

	// APIKeyHeader carries the API key on every request.
	APIKeyHeader = "SGAI-APIKEY"
)

// Sender performs one exchange with the API.
type Sender interface {
	Send(ctx context.Context, method, path, apiKey string, body any) (*Exchange, error)
}

// Client is a ScrapeGraph AI API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     arbor.ILogger
	limiter    *rate.Limiter
	timeout    time.Duration
	userAgent  string
	debug      bool
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger sets a logger.
func WithLogger(logger arbor.ILogger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets a custom rate limit.
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		if requestsPerSecond <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the budget applied to a call whose context has no deadline.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(userAgent string) ClientOption {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithDebug enables request/response tracing at debug level.
func WithDebug(debug bool) ClientOption {
	return func(c *Client) {
		c.debug = debug
	}
}

// NewClient creates a new ScrapeGraph AI API client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{},
		limiter:    rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		timeout:    DefaultTimeout,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Send performs exactly one exchange. POST bodies are JSON encoded. The
// exchange is aborted when ctx expires; without a deadline on ctx the client
// timeout applies.
func (c *Client) Send(ctx context.Context, method, path, apiKey string, body any) (*Exchange, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, &ValidationError{Message: fmt.Sprintf("Invalid parameters: %v", err)}
		}
	}

	// Limiter wait happens before the exchange starts and is not timed.
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &TransportTimeoutError{Method: method, Path: path}
	}

	reqURL := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, reqURL, bytes.NewReader(payload))
	if err != nil {
		return nil, &NetworkError{Message: fmt.Sprintf("failed to create request: %v", err), Err: err}
	}
	req.Header.Set(APIKeyHeader, apiKey)
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.trace(fmt.Sprintf("→ %s %s", method, reqURL), payload)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.transportError(ctx, method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.transportError(ctx, method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.trace(fmt.Sprintf("← %d", resp.StatusCode), raw)
		return nil, &HTTPError{
			StatusCode: resp.StatusCode,
			Detail:     errorDetail(raw),
			Endpoint:   path,
		}
	}

	decoded := JobResponse{}
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &decoded); err != nil {
			return nil, &ProtocolError{Message: fmt.Sprintf("failed to decode response from %s: %v", path, err)}
		}
	}
	elapsed := time.Since(start)

	c.trace(fmt.Sprintf("← %d (%dms)", resp.StatusCode, elapsed.Milliseconds()), raw)

	return &Exchange{Body: decoded, Raw: raw, Elapsed: elapsed}, nil
}

// transportError maps a failed round trip onto the timeout or network kind.
func (c *Client) transportError(ctx context.Context, method, path string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &TransportTimeoutError{Method: method, Path: path}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &TransportTimeoutError{Method: method, Path: path}
	}

	msg := err.Error()
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		msg = urlErr.Err.Error()
	}
	return &NetworkError{Message: msg, Err: err}
}

// trace writes one request/response line when debug tracing is enabled.
func (c *Client) trace(label string, payload []byte) {
	if !c.debug || c.logger == nil {
		return
	}
	if len(payload) > 0 {
		c.logger.Debug().Str("payload", string(payload)).Msg(label)
		return
	}
	c.logger.Debug().Msg(label)
}

// errorDetail extracts the "detail" field of a JSON error body, if any.
func errorDetail(raw []byte) string {
	var body struct {
		Detail any `json:"detail"`
	}
	if err := json.Unmarshal(raw, &body); err != nil || body.Detail == nil {
		return ""
	}
	if s, ok := body.Detail.(string); ok {
		return s
	}
	encoded, err := json.Marshal(body.Detail)
	if err != nil {
		return ""
	}
	return string(encoded)
}
