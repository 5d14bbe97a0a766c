package config

import (
	"fmt"
	"strings"

	"scorecard/internal/spec"
)

// Validate checks a config for correctness and referenced files.
func Validate(cfg *spec.Config, baseDir string) error {
	collector := &issueCollector{}

	if cfg.Version == 0 {
		collector.add("version", "is required")
	} else if cfg.Version != 1 {
		collector.add("version", fmt.Sprintf("unsupported version %d", cfg.Version))
	}

	if strings.TrimSpace(cfg.Report.OutputDir) == "" {
		collector.add("report.output_dir", "is required")
	}

	if baseDir == "" {
		baseDir = "."
	}

	validateInputs(cfg, baseDir, collector.add)
	validateThresholds(cfg, collector.add)
	validateLeaderboard(cfg, collector.add)

	if cfg.Runner.Workers < 1 {
		collector.add("runner.workers", "must be >= 1")
	}

	return collector.result()
}
