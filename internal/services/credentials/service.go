// Package credentials resolves the ScrapeGraph AI API key for one CLI invocation.
package credentials

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"
	"github.com/ternarybob/arbor"
)

// EnvAPIKey is the environment variable holding the API key.
const EnvAPIKey = "SGAI_API_KEY"

// Source tells where a resolved key came from.
type Source string

const (
	SourceNone   Source = ""
	SourceEnv    Source = "env"
	SourceConfig Source = "config"
	SourcePrompt Source = "prompt"
)

// ErrNoAPIKey is returned when no key is configured and none was entered.
var ErrNoAPIKey = errors.New("API key is required")

// Service resolves the API key with priority: environment → config file →
// interactive prompt. A prompted key is persisted into the config file.
// The first resolved key is reused for the lifetime of the Service.
type Service struct {
	configPath string
	lookupEnv  func(string) string
	in         io.Reader
	out        io.Writer
	logger     arbor.ILogger

	mu     sync.Mutex
	key    string
	source Source
}

// Option configures the Service.
type Option func(*Service)

// WithPrompt sets the streams used to ask for a key. A nil reader disables prompting.
func WithPrompt(in io.Reader, out io.Writer) Option {
	return func(s *Service) {
		s.in = in
		s.out = out
	}
}

// WithEnv replaces os.Getenv.
func WithEnv(lookup func(string) string) Option {
	return func(s *Service) {
		s.lookupEnv = lookup
	}
}

// WithLogger sets a logger.
func WithLogger(logger arbor.ILogger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService creates a credential Service backed by the TOML file at configPath.
func NewService(configPath string, opts ...Option) *Service {
	s := &Service{
		configPath: configPath,
		lookupEnv:  os.Getenv,
		in:         os.Stdin,
		out:        os.Stderr,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = arbor.NewLogger()
	}
	return s
}

// Resolve returns the API key, prompting for it when neither the environment
// nor the config file provides one.
func (s *Service) Resolve(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.key != "" {
		return s.key, nil
	}

	if key := strings.TrimSpace(s.lookupEnv(EnvAPIKey)); key != "" {
		return s.remember(key, SourceEnv), nil
	}

	settings, err := s.readSettings()
	if err != nil {
		return "", err
	}
	if key, ok := settings["api_key"].(string); ok && strings.TrimSpace(key) != "" {
		return s.remember(strings.TrimSpace(key), SourceConfig), nil
	}

	key, err := s.prompt(ctx)
	if err != nil {
		return "", err
	}
	if err := s.save(settings, key); err != nil {
		// The key is still usable for this invocation
		s.logger.Warn().Err(err).Str("path", s.configPath).Msg("Failed to persist API key")
	} else {
		fmt.Fprintf(s.out, "API key saved to %s\n", s.configPath)
	}
	return s.remember(key, SourcePrompt), nil
}

// Source reports where the last resolved key came from.
func (s *Service) Source() Source {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.source
}

// Store writes key into the config file, keeping the other settings, and
// makes it the resolved key.
func (s *Service) Store(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrNoAPIKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	settings, err := s.readSettings()
	if err != nil {
		return err
	}
	if err := s.save(settings, key); err != nil {
		return err
	}
	s.remember(key, SourceConfig)
	return nil
}

func (s *Service) remember(key string, source Source) string {
	s.key = key
	s.source = source
	s.logger.Debug().Str("source", string(source)).Msg("API key resolved")
	return key
}

// readSettings decodes the config file into a generic map so that unrelated
// settings survive a rewrite. A missing file yields an empty map.
func (s *Service) readSettings() (map[string]any, error) {
	settings := map[string]any{}
	if s.configPath == "" {
		return settings, nil
	}

	data, err := os.ReadFile(s.configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", s.configPath, err)
	}
	if err := toml.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", s.configPath, err)
	}
	return settings, nil
}

func (s *Service) save(settings map[string]any, key string) error {
	if s.configPath == "" {
		return errors.New("no config file path")
	}
	settings["api_key"] = key

	data, err := toml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.configPath), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(s.configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", s.configPath, err)
	}
	return nil
}

// prompt reads one line from the prompt reader. Reading happens in its own
// goroutine so that an expired ctx is not blocked by a silent terminal.
func (s *Service) prompt(ctx context.Context) (string, error) {
	if s.in == nil {
		return "", ErrNoAPIKey
	}

	fmt.Fprintf(s.out, "Enter your ScrapeGraph AI API key (from https://dashboard.scrapegraphai.com): ")

	type line struct {
		text string
		err  error
	}
	lines := make(chan line, 1)
	go func() {
		text, err := bufio.NewReader(s.in).ReadString('\n')
		lines <- line{text: text, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case l := <-lines:
		key := strings.TrimSpace(l.text)
		if key == "" {
			if l.err != nil && !errors.Is(l.err, io.EOF) {
				return "", fmt.Errorf("failed to read API key: %w", l.err)
			}
			return "", ErrNoAPIKey
		}
		return key, nil
	}
}
