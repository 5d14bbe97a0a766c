package config

import (
	"fmt"
	"os"
	"path/filepath"

	"scorecard/internal/spec"
)

// validateInputs checks that the bank, taxonomy, and submissions directory exist.
func validateInputs(cfg *spec.Config, baseDir string, add issueAdder) {
	requireFile("inputs.questions", cfg.Inputs.Questions, baseDir, add)
	requireFile("inputs.metadata", cfg.Inputs.Metadata, baseDir, add)

	dir := cfg.Inputs.SubmissionsDir
	if dir == "" {
		add("inputs.submissions_dir", "is required")
	} else {
		info, err := os.Stat(ResolvePath(baseDir, dir))
		switch {
		case err != nil:
			add("inputs.submissions_dir", fmt.Sprintf("path not found at %q", dir))
		case !info.IsDir():
			add("inputs.submissions_dir", fmt.Sprintf("path %q is not a directory", dir))
		}
	}

	if _, err := filepath.Match(cfg.Inputs.SubmissionsGlob, ""); err != nil {
		add("inputs.submissions_glob", fmt.Sprintf("invalid pattern %q", cfg.Inputs.SubmissionsGlob))
	}
}

func requireFile(field, path, baseDir string, add issueAdder) {
	if path == "" {
		add(field, "is required")
		return
	}
	info, err := os.Stat(ResolvePath(baseDir, path))
	if err != nil {
		add(field, fmt.Sprintf("file not found at %q", path))
		return
	}
	if info.IsDir() {
		add(field, fmt.Sprintf("path %q is a directory", path))
	}
}

func validateThresholds(cfg *spec.Config, add issueAdder) {
	thresholds := cfg.Assessment.Thresholds
	if thresholds.WeakSkipped < 0 {
		add("assessment.thresholds.weak_skipped", "must be >= 0")
	}
	if thresholds.WeakAccuracy < 0 || thresholds.WeakAccuracy > 100 {
		add("assessment.thresholds.weak_accuracy", "must be between 0 and 100")
	}
	if thresholds.StrengthAccuracy < 0 || thresholds.StrengthAccuracy > 100 {
		add("assessment.thresholds.strength_accuracy", "must be between 0 and 100")
	}
}

func validateLeaderboard(cfg *spec.Config, add issueAdder) {
	switch cfg.Leaderboard.Backend {
	case BackendDuckDB, BackendSQLite:
		if cfg.Leaderboard.Path == "" {
			add("leaderboard.path", "is required")
		}
	case BackendMemory:
	default:
		add("leaderboard.backend", fmt.Sprintf("unsupported backend %q", cfg.Leaderboard.Backend))
	}
	if cfg.Leaderboard.DisplayCap < 0 {
		add("leaderboard.display_cap", "must be >= 0")
	}
}
