package config

import (
	"path/filepath"
	"strings"

	"scorecard/internal/assessment"
	"scorecard/internal/leaderboard"
	"scorecard/internal/spec"
	"scorecard/internal/submission"
)

// Defaults applied by Normalize.
const (
	DefaultReportTitle = "Performance Report"
	DefaultTestName    = "Assessment"
	DefaultBackend     = BackendDuckDB
	DefaultWorkers     = 4
)

// Leaderboard backends.
const (
	BackendDuckDB = "duckdb"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Normalize trims values and fills defaults.
func Normalize(cfg *spec.Config) {
	cfg.Report.Title = strings.TrimSpace(cfg.Report.Title)
	cfg.Report.TestName = strings.TrimSpace(cfg.Report.TestName)
	cfg.Report.TestDate = strings.TrimSpace(cfg.Report.TestDate)
	cfg.Report.GeneratedAt = strings.TrimSpace(cfg.Report.GeneratedAt)
	cfg.Report.OutputDir = strings.TrimSpace(cfg.Report.OutputDir)
	if cfg.Report.Title == "" {
		cfg.Report.Title = DefaultReportTitle
	}
	if cfg.Report.TestName == "" {
		cfg.Report.TestName = DefaultTestName
	}
	if cfg.Report.OutputDir == "" {
		cfg.Report.OutputDir = DefaultOutputDir
	}

	cfg.Inputs.Questions = strings.TrimSpace(cfg.Inputs.Questions)
	cfg.Inputs.Metadata = strings.TrimSpace(cfg.Inputs.Metadata)
	cfg.Inputs.SubmissionsDir = strings.TrimSpace(cfg.Inputs.SubmissionsDir)
	cfg.Inputs.SubmissionsGlob = strings.TrimSpace(cfg.Inputs.SubmissionsGlob)
	if cfg.Inputs.SubmissionsGlob == "" {
		cfg.Inputs.SubmissionsGlob = submission.DefaultPattern
	}

	// A thresholds block left out entirely takes the defaults; a partial
	// block is used as written.
	if cfg.Assessment.Thresholds == (assessment.Thresholds{}) {
		cfg.Assessment.Thresholds = assessment.DefaultThresholds()
	}

	cfg.Leaderboard.Backend = strings.ToLower(strings.TrimSpace(cfg.Leaderboard.Backend))
	if cfg.Leaderboard.Backend == "" {
		cfg.Leaderboard.Backend = DefaultBackend
	}
	cfg.Leaderboard.Path = strings.TrimSpace(cfg.Leaderboard.Path)
	if cfg.Leaderboard.Path == "" {
		switch cfg.Leaderboard.Backend {
		case BackendDuckDB:
			cfg.Leaderboard.Path = filepath.Join(cfg.Report.OutputDir, "leaderboard.duckdb")
		case BackendSQLite:
			cfg.Leaderboard.Path = filepath.Join(cfg.Report.OutputDir, "leaderboard.db")
		}
	}
	if cfg.Leaderboard.DisplayCap == 0 {
		cfg.Leaderboard.DisplayCap = leaderboard.DefaultDisplayCap
	}

	if cfg.Runner.Workers == 0 {
		cfg.Runner.Workers = DefaultWorkers
	}
}
