package common

import (
	"github.com/google/uuid"
)

// NewCorrelationID generates the id attached to every log line of one invocation
// Format: cli_<uuid>
func NewCorrelationID() string {
	return "cli_" + uuid.New().String()
}
