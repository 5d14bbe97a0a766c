package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"scorecard/internal/config"
	"scorecard/internal/spec"
)

// resolveSpecPath normalizes a config path or finds it from CWD.
func resolveSpecPath(specPath string) (string, error) {
	if strings.TrimSpace(specPath) == "" {
		return config.FindConfigPath("")
	}
	abs, err := filepath.Abs(specPath)
	if err != nil {
		return "", fmt.Errorf("resolve spec path: %w", err)
	}
	return abs, nil
}

// loadedConfig is a validated config and the repo root its paths are
// relative to.
type loadedConfig struct {
	Config   spec.Config
	Path     string
	RepoRoot string
}

// loadConfig resolves and loads the config named by --spec.
func loadConfig(specPath string) (loadedConfig, error) {
	resolved, err := resolveSpecPath(specPath)
	if err != nil {
		return loadedConfig{}, err
	}
	cfg, err := config.Load(resolved)
	if err != nil {
		return loadedConfig{}, err
	}
	return loadedConfig{
		Config:   cfg,
		Path:     resolved,
		RepoRoot: config.RepoRootFromConfigPath(resolved),
	}, nil
}
