package sgai

import (
	"context"
	"errors"
	"fmt"
)

// Messages produced by Classify.
const (
	MsgUnauthorized        = "Invalid or missing API key"
	MsgInsufficientCredits = "Insufficient credits — purchase more credits"
	MsgInvalidParameters   = "Invalid parameters — check your request"
	MsgRateLimited         = "Rate limited — slow down and retry"
	MsgServerError         = "Server error — try again later"
	MsgTimedOut            = "Request timed out"
	MsgJobFailed           = "Job failed"
	MsgUnknown             = "Unknown error"
)

// HTTPStatusMessage maps an HTTP status code to its user-facing prefix.
func HTTPStatusMessage(status int) string {
	switch status {
	case 401:
		return MsgUnauthorized
	case 402:
		return MsgInsufficientCredits
	case 422:
		return MsgInvalidParameters
	case 429:
		return MsgRateLimited
	case 500:
		return MsgServerError
	default:
		return fmt.Sprintf("HTTP %d", status)
	}
}

// Classify turns any error raised by the validator, transport or engine into
// the single message surfaced in a Result. It never panics.
func Classify(err error) string {
	if err == nil {
		return MsgUnknown
	}

	var (
		validationErr *ValidationError
		httpErr       *HTTPError
		timeoutErr    *TransportTimeoutError
		pollingErr    *PollingTimeoutError
		jobErr        *JobFailedError
		networkErr    *NetworkError
		protocolErr   *ProtocolError
	)

	switch {
	case errors.As(err, &validationErr):
		return validationErr.Message
	case errors.As(err, &httpErr):
		msg := HTTPStatusMessage(httpErr.StatusCode)
		if httpErr.Detail != "" {
			msg = fmt.Sprintf("%s: %s", msg, httpErr.Detail)
		}
		return msg
	case errors.As(err, &timeoutErr):
		return MsgTimedOut
	case errors.As(err, &pollingErr):
		return pollingErr.Error()
	case errors.As(err, &jobErr):
		return jobErr.Error()
	case errors.As(err, &networkErr):
		if networkErr.Message == "" {
			return MsgUnknown
		}
		return networkErr.Message
	case errors.As(err, &protocolErr):
		return protocolErr.Message
	case errors.Is(err, context.DeadlineExceeded):
		return MsgTimedOut
	default:
		return MsgUnknown
	}
}
