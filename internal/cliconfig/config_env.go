package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (WHYQL_*).
// It respects flags that have been explicitly set (changed map).
// Headers are not read from the environment.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("endpoint", os.Getenv("WHYQL_ENDPOINT"), &cfg.Endpoint)
	s.setString("method", os.Getenv("WHYQL_METHOD"), &cfg.Method)
	s.setString("mode", os.Getenv("WHYQL_MODE"), &cfg.Mode)
	s.setString("cache", os.Getenv("WHYQL_CACHE"), &cfg.Cache)
	s.setString("data", os.Getenv("WHYQL_BODY"), &cfg.Body)
	s.setString("log-level", os.Getenv("WHYQL_LOG_LEVEL"), &cfg.LogLevel)

	if err := s.setDuration("timeout", os.Getenv("WHYQL_TIMEOUT"), &cfg.Timeout); err != nil {
		return err
	}

	if err := s.setBoolFromString("json", os.Getenv("WHYQL_JSON"), &cfg.JSON); err != nil {
		return err
	}
	if err := s.setBoolFromString("fail-on-error", os.Getenv("WHYQL_FAIL_ON_ERROR"), &cfg.FailOnError); err != nil {
		return err
	}

	return nil
}
