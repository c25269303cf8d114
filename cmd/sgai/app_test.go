package main

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/sgai/internal/services/render"
	"github.com/ternarybob/sgai/internal/sgai"
)

func newFlagCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("schema", "", "")
	cmd.Flags().String("headers", "", "")
	cmd.Flags().Int("pages", 0, "")
	cmd.Flags().Bool("stealth", false, "")
	cmd.Flags().Bool("no-sitemap", false, "")
	require.NoError(t, cmd.Flags().Parse(args))
	return cmd
}

func TestJSONObjectFlag(t *testing.T) {
	cmd := newFlagCommand(t, "--schema", `{"type":"object"}`)
	obj, err := jsonObjectFlag(cmd, "schema")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"type": "object"}, obj)

	obj, err = jsonObjectFlag(newFlagCommand(t), "schema")
	require.NoError(t, err)
	assert.Nil(t, obj)

	_, err = jsonObjectFlag(newFlagCommand(t, "--schema", "[1,2]"), "schema")
	var validationErr *sgai.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Message, "--schema must be a JSON object")
}

func TestStringMapFlag(t *testing.T) {
	headers, err := stringMapFlag(newFlagCommand(t, "--headers", `{"X-Test":"1"}`), "headers")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"X-Test": "1"}, headers)

	_, err = stringMapFlag(newFlagCommand(t, "--headers", `{"X-Test":1}`), "headers")
	assert.Error(t, err)
}

func TestOptionalFlags(t *testing.T) {
	unset := newFlagCommand(t)
	assert.Nil(t, intFlag(unset, "pages"))
	assert.Nil(t, trueFlag(unset, "stealth"))
	assert.Nil(t, falseWhenSet(unset, "no-sitemap"))

	set := newFlagCommand(t, "--pages", "0", "--stealth", "--no-sitemap")
	require.NotNil(t, intFlag(set, "pages"))
	assert.Equal(t, 0, *intFlag(set, "pages"))
	assert.True(t, *trueFlag(set, "stealth"))
	assert.False(t, *falseWhenSet(set, "no-sitemap"))
}

func TestProgress_DeduplicatesStatuses(t *testing.T) {
	var out bytes.Buffer
	status = render.NewPrinter(&out)
	quiet = false
	t.Cleanup(func() { status = nil })

	onProgress := progress("Scraping")
	for _, s := range []string{"queued", "queued", "processing", "processing", "completed"} {
		onProgress(s)
	}

	assert.Equal(t, "Scraping…\nStatus: queued\nStatus: processing\nStatus: completed\n", out.String())
}

func TestProgress_QuietIsNil(t *testing.T) {
	quiet = true
	t.Cleanup(func() { quiet = false })
	assert.Nil(t, progress("Scraping"))
}

func TestFinish(t *testing.T) {
	var out, errOut bytes.Buffer
	printer = render.NewPrinter(&out)
	status = render.NewPrinter(&errOut)
	quiet = false
	t.Cleanup(func() { printer, status = nil, nil })

	err := finish(sgai.Result{Status: sgai.ResultError, Error: "Insufficient credits"})
	var resultErr *resultError
	require.ErrorAs(t, err, &resultErr)
	assert.Equal(t, "Insufficient credits", resultErr.Error())
	assert.Empty(t, out.String())

	require.NoError(t, finish(sgai.Result{Status: sgai.ResultSuccess, Data: sgai.JobResponse{"ok": true}, ElapsedMs: 40}))
	assert.Equal(t, "{\n  \"ok\": true\n}\n", out.String())
	assert.Equal(t, "Done in 40ms\n", errOut.String())
}
