package sgai

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "401", err: &HTTPError{StatusCode: 401}, want: "Invalid or missing API key"},
		{name: "402", err: &HTTPError{StatusCode: 402}, want: "Insufficient credits — purchase more credits"},
		{name: "422", err: &HTTPError{StatusCode: 422}, want: "Invalid parameters — check your request"},
		{name: "429", err: &HTTPError{StatusCode: 429}, want: "Rate limited — slow down and retry"},
		{name: "500", err: &HTTPError{StatusCode: 500}, want: "Server error — try again later"},
		{name: "503", err: &HTTPError{StatusCode: 503}, want: "HTTP 503"},
		{name: "404 with detail", err: &HTTPError{StatusCode: 404, Detail: "Not found"}, want: "HTTP 404: Not found"},
		{name: "401 with detail", err: &HTTPError{StatusCode: 401, Detail: "Key revoked"}, want: "Invalid or missing API key: Key revoked"},
		{name: "transport timeout", err: &TransportTimeoutError{Method: "GET", Path: "/credits"}, want: "Request timed out"},
		{name: "deadline exceeded", err: context.DeadlineExceeded, want: "Request timed out"},
		{name: "polling timeout", err: &PollingTimeoutError{Path: "/crawl/c-1"}, want: "Polling timed out"},
		{name: "network", err: &NetworkError{Message: "connection refused"}, want: "connection refused"},
		{name: "validation", err: &ValidationError{Message: "Invalid parameters: url is required"}, want: "Invalid parameters: url is required"},
		{name: "job failed with reason", err: &JobFailedError{Reason: "Website blocked"}, want: "Website blocked"},
		{name: "job failed blank reason", err: &JobFailedError{Reason: "  "}, want: "Job failed"},
		{name: "protocol", err: missingIDError(IDFieldCrawl), want: "Missing crawl_id in response"},
		{name: "wrapped", err: fmt.Errorf("poll /scrape/1: %w", &HTTPError{StatusCode: 429}), want: "Rate limited — slow down and retry"},
		{name: "unknown", err: errors.New("boom"), want: "Unknown error"},
		{name: "nil", err: nil, want: "Unknown error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestHTTPStatusMessage(t *testing.T) {
	assert.Equal(t, "HTTP 418", HTTPStatusMessage(418))
	assert.Equal(t, MsgUnauthorized, HTTPStatusMessage(401))
}
