package cliconfig

import "fmt"

// Load layers the config file at path (if it exists) and WHYQL_* variables
// over base, then validates the result. base is expected to already hold
// defaults and flag values; changed names the flags the user set, which
// neither the file nor the environment may override.
func Load(base Config, path string, changed map[string]bool) (Config, error) {
	cfg := base
	cfg.Headers = append([]string(nil), base.Headers...)

	if path != "" && FileExists(path) {
		fc, err := LoadFileConfig(path)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		if err := ApplyFileConfig(&cfg, fc, changed); err != nil {
			return cfg, err
		}
	}

	if err := ApplyEnvConfig(&cfg, changed); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
