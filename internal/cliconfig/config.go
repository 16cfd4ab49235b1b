package cliconfig

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/bft-labs/whyql/pkg/fetch"
)

// DefaultEndpoint is the URL requested when none is configured.
const DefaultEndpoint = "http://localhost:8000/a.json"

// ErrInvalidConfig is returned when configuration validation fails.
var ErrInvalidConfig = errors.New("whyql: invalid configuration")

// Config holds CLI configuration for whyql.
type Config struct {
	Endpoint string

	Method  string
	Headers []string // "Name: value"
	Mode    string
	Cache   string
	Body    string

	// Timeout bounds the whole request. Zero leaves it to the transport.
	Timeout time.Duration

	LogLevel    string
	JSON        bool
	Watch       bool
	FailOnError bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Endpoint: DefaultEndpoint,
		Method:   "GET",
		Mode:     string(fetch.ModeNoCORS),
		Cache:    string(fetch.CacheDefault),
		LogLevel: "info",
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Endpoint) == "" {
		return fmt.Errorf("%w: endpoint is required", ErrInvalidConfig)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("%w: timeout must not be negative", ErrInvalidConfig)
	}
	if _, err := fetch.ParseMode(c.Mode); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := fetch.ParseCacheMode(c.Cache); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := c.Level(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := ParseHeaders(c.Headers); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Level parses LogLevel. An empty level means info.
func (c *Config) Level() (zerolog.Level, error) {
	if c.LogLevel == "" {
		return zerolog.InfoLevel, nil
	}
	return zerolog.ParseLevel(strings.ToLower(c.LogLevel))
}

// RequestOptions builds the per-call options for the executor.
func (c *Config) RequestOptions() (fetch.Options, error) {
	headers, err := ParseHeaders(c.Headers)
	if err != nil {
		return fetch.Options{}, err
	}
	mode, err := fetch.ParseMode(c.Mode)
	if err != nil {
		return fetch.Options{}, err
	}
	cache, err := fetch.ParseCacheMode(c.Cache)
	if err != nil {
		return fetch.Options{}, err
	}

	opts := fetch.Options{
		Method:  c.Method,
		Headers: headers,
		Mode:    mode,
		Cache:   cache,
	}
	if c.Body != "" {
		opts.Body = []byte(c.Body)
	}
	return opts, nil
}

// ParseHeaders parses curl-style "Name: value" lines, keeping their order.
func ParseHeaders(lines []string) ([]fetch.Header, error) {
	headers := make([]fetch.Header, 0, len(lines))
	for _, line := range lines {
		name, value, ok := strings.Cut(line, ":")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("malformed header %q (want \"Name: value\")", line)
		}
		headers = append(headers, fetch.Header{Name: name, Value: strings.TrimSpace(value)})
	}
	return headers, nil
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setStrings replaces a list if the source is non-empty and flag not changed.
func (s *configSetter) setStrings(flag string, value []string, dst *[]string) {
	if len(value) == 0 || s.changed[flag] {
		return
	}
	*dst = append([]string(nil), value...)
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setBoolFromString parses a bool from an environment variable.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = b
	return nil
}
