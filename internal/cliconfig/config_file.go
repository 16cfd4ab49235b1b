package cliconfig

import (
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	Endpoint    string   `toml:"endpoint"`
	Method      string   `toml:"method"`
	Headers     []string `toml:"headers"`
	Mode        string   `toml:"mode"`
	Cache       string   `toml:"cache"`
	Body        string   `toml:"body"`
	Timeout     string   `toml:"timeout"`
	LogLevel    string   `toml:"log_level"`
	JSON        *bool    `toml:"json"`
	FailOnError *bool    `toml:"fail_on_error"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns ~/.whyql/config.toml, or "" if the home
// directory cannot be determined.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".whyql", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("endpoint", fc.Endpoint, &cfg.Endpoint)
	s.setString("method", fc.Method, &cfg.Method)
	s.setStrings("header", fc.Headers, &cfg.Headers)
	s.setString("mode", fc.Mode, &cfg.Mode)
	s.setString("cache", fc.Cache, &cfg.Cache)
	s.setString("data", fc.Body, &cfg.Body)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)

	if err := s.setDuration("timeout", fc.Timeout, &cfg.Timeout); err != nil {
		return err
	}

	s.setBool("json", fc.JSON, &cfg.JSON)
	s.setBool("fail-on-error", fc.FailOnError, &cfg.FailOnError)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

// ResolveConfigPath returns the config file to use. An empty flagPath falls
// back to DefaultConfigPath, which may be absent; an explicit flagPath must
// exist.
func ResolveConfigPath(flagPath string) (string, error) {
	if flagPath == "" {
		return DefaultConfigPath(), nil
	}
	if !FileExists(flagPath) {
		return "", fmt.Errorf("%w: config file %s not found", ErrInvalidConfig, flagPath)
	}
	return flagPath, nil
}
