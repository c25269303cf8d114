package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ternarybob/sgai/internal/sgai"
)

const docsBaseURL = "https://docs.scrapegraphai.com/services/"

// resultError carries an already classified message out of a command.
type resultError struct {
	message string
}

func (e *resultError) Error() string {
	return e.message
}

// progress returns the status sink for a polling job. Consecutive repeats of
// the same status are printed once.
func progress(action string) sgai.ProgressFunc {
	if quiet {
		return nil
	}
	status.Notice(action + "…")

	last := ""
	return func(s string) {
		if s == last {
			return
		}
		last = s
		status.Notice("Status: " + s)
	}
}

// finish prints a Result: the data on stdout and the timing on stderr, or the
// error message and a non-zero exit.
func finish(result sgai.Result) error {
	if !result.OK() {
		return &resultError{message: result.Error}
	}
	if !quiet {
		status.Done(result.ElapsedMs)
	}
	return printer.Data(result.Data)
}

func docs(service string) {
	if !quiet {
		status.Docs(docsBaseURL + service)
	}
}

// jsonObjectFlag decodes a flag holding a JSON object. A bad value is a
// parameter error raised before any request is made.
func jsonObjectFlag(cmd *cobra.Command, name string) (map[string]any, error) {
	raw, _ := cmd.Flags().GetString(name)
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		return nil, &sgai.ValidationError{Message: fmt.Sprintf("Invalid parameters: --%s must be a JSON object: %v", name, err)}
	}
	return obj, nil
}

// stringMapFlag decodes a flag holding a JSON object of strings.
func stringMapFlag(cmd *cobra.Command, name string) (map[string]string, error) {
	raw, _ := cmd.Flags().GetString(name)
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var obj map[string]string
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		return nil, &sgai.ValidationError{Message: fmt.Sprintf("Invalid parameters: --%s must be a JSON object of strings: %v", name, err)}
	}
	return obj, nil
}

// intFlag returns a pointer to the flag value when the flag was set.
func intFlag(cmd *cobra.Command, name string) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetInt(name)
	return sgai.Int(v)
}

// trueFlag returns a pointer to true when the boolean flag was set.
func trueFlag(cmd *cobra.Command, name string) *bool {
	if v, _ := cmd.Flags().GetBool(name); v {
		return sgai.Bool(true)
	}
	return nil
}

// falseWhenSet returns a pointer to false when a --no-* flag was set.
func falseWhenSet(cmd *cobra.Command, name string) *bool {
	if v, _ := cmd.Flags().GetBool(name); v {
		return sgai.Bool(false)
	}
	return nil
}
