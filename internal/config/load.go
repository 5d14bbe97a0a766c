package config

import (
	"errors"
	"fmt"
	"os"

	"scorecard/internal/spec"
)

// Load reads, parses, applies environment overrides, normalizes, and
// validates a config file. Overrides come from the process environment and
// then from a .env file in the repo root.
func Load(path string) (spec.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return spec.Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := spec.ParseConfig(data)
	if err != nil {
		return spec.Config{}, err
	}
	root := RepoRootFromConfigPath(path)
	dotEnv, err := LoadDotEnv(root)
	if err != nil {
		return spec.Config{}, err
	}
	ApplyEnv(&cfg, WithDotEnv(os.LookupEnv, dotEnv))
	Normalize(&cfg)
	if err := Validate(&cfg, root); err != nil {
		var validation *ValidationError
		if errors.As(err, &validation) {
			validation.Path = path
		}
		return spec.Config{}, err
	}
	return cfg, nil
}
