package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv removes the SGAI_* variables for the duration of a test
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{"SGAI_API_KEY", "SGAI_API_URL", "SGAI_CLI_TIMEOUT_S", "SGAI_CLI_DEBUG", "SGAI_LOG_LEVEL"} {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFromFiles_Defaults(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	config, err := LoadFromFiles(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)

	assert.Equal(t, "https://api.scrapegraphai.com/v1", config.API.BaseURL)
	assert.Equal(t, 120*time.Second, config.TimeBudget())
	assert.Equal(t, 3*time.Second, config.PollInterval())
	assert.Equal(t, 10, config.API.RateLimit)
	assert.False(t, config.Debug)
	assert.Empty(t, config.APIKey)
}

func TestLoadFromFiles_FileThenEnv(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	base := writeConfig(t, `
api_key = "sgai-from-file"

[api]
timeout_seconds = 30
poll_interval = "500ms"

[logging]
level = "info"
`)
	override := writeConfig(t, `
[api]
rate_limit = 2
`)

	config, err := LoadFromFiles(base, override)
	require.NoError(t, err)
	assert.Equal(t, "sgai-from-file", config.APIKey)
	assert.Equal(t, 30*time.Second, config.TimeBudget())
	assert.Equal(t, 500*time.Millisecond, config.PollInterval())
	assert.Equal(t, 2, config.API.RateLimit)
	assert.Equal(t, "info", config.LogLevel())

	t.Setenv("SGAI_API_KEY", " sgai-from-env ")
	t.Setenv("SGAI_CLI_TIMEOUT_S", "45")
	t.Setenv("SGAI_CLI_DEBUG", "1")
	t.Setenv("SGAI_API_URL", "http://localhost:9999/v1")

	config, err = LoadFromFiles(base)
	require.NoError(t, err)
	assert.Equal(t, "sgai-from-env", config.APIKey)
	assert.Equal(t, 45*time.Second, config.TimeBudget())
	assert.True(t, config.Debug)
	assert.Equal(t, "debug", config.LogLevel())
	assert.Equal(t, "http://localhost:9999/v1", config.API.BaseURL)
}

func TestLoadFromFiles_IgnoresInvalidTimeoutEnv(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	for _, value := range []string{"0", "-5", "abc"} {
		t.Setenv("SGAI_CLI_TIMEOUT_S", value)
		config, err := LoadFromFiles()
		require.NoError(t, err)
		assert.Equal(t, 120, config.API.TimeoutSeconds, "value %q", value)
	}
}

func TestLoadFromFiles_DotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SGAI_API_KEY=sgai-dotenv\nSGAI_CLI_TIMEOUT_S=15\n"), 0o600))
	t.Cleanup(func() {
		_ = os.Unsetenv("SGAI_API_KEY")
		_ = os.Unsetenv("SGAI_CLI_TIMEOUT_S")
	})

	config, err := LoadFromFiles()
	require.NoError(t, err)
	assert.Equal(t, "sgai-dotenv", config.APIKey)
	assert.Equal(t, 15*time.Second, config.TimeBudget())
}

func TestLoadFromFiles_InvalidValues(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	tests := []struct {
		name    string
		content string
	}{
		{name: "zero timeout", content: "[api]\ntimeout_seconds = 0\n"},
		{name: "bad poll interval", content: "[api]\npoll_interval = \"soon\"\n"},
		{name: "negative rate limit", content: "[api]\nrate_limit = -1\n"},
		{name: "malformed toml", content: "api_key = \n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFiles(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestApplyFlagOverrides(t *testing.T) {
	config := NewDefaultConfig()
	ApplyFlagOverrides(config, 0, false)
	assert.Equal(t, 120, config.API.TimeoutSeconds)
	assert.False(t, config.Debug)

	ApplyFlagOverrides(config, 10, true)
	assert.Equal(t, 10*time.Second, config.TimeBudget())
	assert.True(t, config.Debug)
}
