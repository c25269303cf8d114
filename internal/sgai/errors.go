package sgai

import (
	"fmt"
	"strings"
)

// ValidationError is returned when request parameters fail their schema.
// It is raised before any network I/O.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// HTTPError represents a non-2xx response from the API.
type HTTPError struct {
	StatusCode int
	Detail     string
	Endpoint   string
}

func (e *HTTPError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("HTTP %d from %s: %s", e.StatusCode, e.Endpoint, e.Detail)
	}
	return fmt.Sprintf("HTTP %d from %s", e.StatusCode, e.Endpoint)
}

// NetworkError means the exchange could not complete and no response was received.
type NetworkError struct {
	Message string
	Err     error
}

func (e *NetworkError) Error() string {
	return e.Message
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// TransportTimeoutError means a single exchange exceeded the remaining time budget.
type TransportTimeoutError struct {
	Method string
	Path   string
}

func (e *TransportTimeoutError) Error() string {
	return fmt.Sprintf("%s %s timed out", e.Method, e.Path)
}

// PollingTimeoutError means the submit+poll session ran out of budget
// before the job reached a terminal status.
type PollingTimeoutError struct {
	Path       string
	LastStatus string
	Polls      int
}

func (e *PollingTimeoutError) Error() string {
	return "Polling timed out"
}

// JobFailedError carries the reason reported by the API for a failed job.
type JobFailedError struct {
	Reason string
}

func (e *JobFailedError) Error() string {
	if strings.TrimSpace(e.Reason) == "" {
		return "Job failed"
	}
	return e.Reason
}

// ProtocolError means the API answered with a response that cannot be interpreted.
type ProtocolError struct {
	Message string
}

func (e *ProtocolError) Error() string {
	return e.Message
}

func missingIDError(field string) *ProtocolError {
	return &ProtocolError{Message: fmt.Sprintf("Missing %s in response", field)}
}
