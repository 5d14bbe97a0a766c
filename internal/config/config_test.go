package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"scorecard/internal/assessment"
	"scorecard/internal/leaderboard"
	"scorecard/internal/spec"
	"scorecard/internal/submission"
)

func TestNormalizeDefaults(t *testing.T) {
	cfg := spec.Config{Version: 1}
	Normalize(&cfg)

	if cfg.Report.Title != DefaultReportTitle || cfg.Report.TestName != DefaultTestName {
		t.Fatalf("unexpected report defaults %+v", cfg.Report)
	}
	if cfg.Report.OutputDir != DefaultOutputDir {
		t.Fatalf("expected output dir %q, got %q", DefaultOutputDir, cfg.Report.OutputDir)
	}
	if cfg.Inputs.SubmissionsGlob != submission.DefaultPattern {
		t.Fatalf("unexpected glob %q", cfg.Inputs.SubmissionsGlob)
	}
	if cfg.Assessment.Thresholds != assessment.DefaultThresholds() {
		t.Fatalf("unexpected thresholds %+v", cfg.Assessment.Thresholds)
	}
	if cfg.Leaderboard.Backend != BackendDuckDB {
		t.Fatalf("unexpected backend %q", cfg.Leaderboard.Backend)
	}
	if cfg.Leaderboard.Path != filepath.Join(DefaultOutputDir, "leaderboard.duckdb") {
		t.Fatalf("unexpected leaderboard path %q", cfg.Leaderboard.Path)
	}
	if cfg.Leaderboard.DisplayCap != leaderboard.DefaultDisplayCap {
		t.Fatalf("unexpected display cap %d", cfg.Leaderboard.DisplayCap)
	}
	if cfg.Runner.Workers != DefaultWorkers {
		t.Fatalf("unexpected workers %d", cfg.Runner.Workers)
	}
}

func TestNormalizeKeepsPartialThresholds(t *testing.T) {
	cfg := spec.Config{Version: 1}
	cfg.Assessment.Thresholds = assessment.Thresholds{WeakAccuracy: 30}
	Normalize(&cfg)
	if cfg.Assessment.Thresholds.WeakAccuracy != 30 || cfg.Assessment.Thresholds.StrengthAccuracy != 0 {
		t.Fatalf("expected partial thresholds to be kept, got %+v", cfg.Assessment.Thresholds)
	}
}

func TestNormalizeSQLitePath(t *testing.T) {
	cfg := spec.Config{Version: 1, Report: spec.ReportConfig{OutputDir: "out"}}
	cfg.Leaderboard.Backend = " SQLite "
	Normalize(&cfg)
	if cfg.Leaderboard.Backend != BackendSQLite {
		t.Fatalf("expected backend to be lowercased, got %q", cfg.Leaderboard.Backend)
	}
	if cfg.Leaderboard.Path != filepath.Join("out", "leaderboard.db") {
		t.Fatalf("unexpected path %q", cfg.Leaderboard.Path)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	cfg := spec.Config{Version: 1}
	cfg.Report.Title = "Original"
	env := map[string]string{
		EnvReportTitle:    "Override Title",
		EnvTestName:       "  Mock Test ",
		EnvQuotesPath:     "quotes.json",
		EnvStudentDataDir: "answers",
		EnvOutputDir:      "",
	}
	ApplyEnv(&cfg, func(key string) (string, bool) {
		value, ok := env[key]
		return value, ok
	})

	if cfg.Report.Title != "Override Title" {
		t.Fatalf("unexpected title %q", cfg.Report.Title)
	}
	if cfg.Report.TestName != "Mock Test" {
		t.Fatalf("unexpected test name %q", cfg.Report.TestName)
	}
	if cfg.Insights.Quotes != "quotes.json" || cfg.Inputs.SubmissionsDir != "answers" {
		t.Fatalf("unexpected overrides %+v %+v", cfg.Insights, cfg.Inputs)
	}
	if cfg.Report.OutputDir != "" {
		t.Fatalf("empty override should be ignored, got %q", cfg.Report.OutputDir)
	}
}

func TestValidateAcceptsValidConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := validConfig(t, dir)
	if err := Validate(&cfg, dir); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestValidateReportsIssues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(cfg *spec.Config)
		field  string
	}{
		{"missing version", func(cfg *spec.Config) { cfg.Version = 0 }, "version"},
		{"unsupported version", func(cfg *spec.Config) { cfg.Version = 2 }, "version"},
		{"missing questions", func(cfg *spec.Config) { cfg.Inputs.Questions = "" }, "inputs.questions"},
		{"absent metadata", func(cfg *spec.Config) { cfg.Inputs.Metadata = "nope.json" }, "inputs.metadata"},
		{"submissions is file", func(cfg *spec.Config) { cfg.Inputs.SubmissionsDir = "questions.json" }, "inputs.submissions_dir"},
		{"bad glob", func(cfg *spec.Config) { cfg.Inputs.SubmissionsGlob = "[" }, "inputs.submissions_glob"},
		{"bad accuracy", func(cfg *spec.Config) { cfg.Assessment.Thresholds.WeakAccuracy = 120 }, "assessment.thresholds.weak_accuracy"},
		{"bad backend", func(cfg *spec.Config) { cfg.Leaderboard.Backend = "excel" }, "leaderboard.backend"},
		{"missing store path", func(cfg *spec.Config) { cfg.Leaderboard.Path = "" }, "leaderboard.path"},
		{"bad workers", func(cfg *spec.Config) { cfg.Runner.Workers = -1 }, "runner.workers"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			cfg := validConfig(t, dir)
			tc.mutate(&cfg)
			err := Validate(&cfg, dir)
			if err == nil {
				t.Fatalf("expected validation error")
			}
			if !hasIssue(err, tc.field) {
				t.Fatalf("expected issue for %s, got %v", tc.field, err)
			}
		})
	}
}

func TestValidateMemoryBackendNeedsNoPath(t *testing.T) {
	dir := t.TempDir()
	cfg := validConfig(t, dir)
	cfg.Leaderboard.Backend = BackendMemory
	cfg.Leaderboard.Path = ""
	if err := Validate(&cfg, dir); err != nil {
		t.Fatalf("expected memory backend to validate, got %v", err)
	}
}

func TestLoadResolvesRelativeToRepoRoot(t *testing.T) {
	root := t.TempDir()
	writeInputs(t, root)
	configPath := ConfigPath(root)
	writeFile(t, configPath, `version: 1
inputs:
  questions: questions.json
  metadata: metadata.json
  submissions_dir: student_data
leaderboard:
  backend: memory
`)
	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Leaderboard.Backend != BackendMemory {
		t.Fatalf("unexpected backend %q", cfg.Leaderboard.Backend)
	}
}

func TestLoadReadsDotEnvFromRepoRoot(t *testing.T) {
	root := t.TempDir()
	writeInputs(t, root)
	configPath := ConfigPath(root)
	writeFile(t, configPath, `version: 1
report:
  title: From Config
inputs:
  questions: questions.json
  metadata: metadata.json
  submissions_dir: student_data
leaderboard:
  backend: memory
`)
	writeFile(t, filepath.Join(root, DotEnvFileName), "# exam settings\nSCORECARD_TEST_NAME=\"Mock Test 3\"\nSCORECARD_REPORT_TITLE=From DotEnv\n")
	t.Setenv(EnvReportTitle, "From Process")

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Report.TestName != "Mock Test 3" {
		t.Fatalf("expected test name from .env, got %q", cfg.Report.TestName)
	}
	if cfg.Report.Title != "From Process" {
		t.Fatalf("expected process env to win over .env, got %q", cfg.Report.Title)
	}
}

func TestLoadDotEnvMissingFile(t *testing.T) {
	values, err := LoadDotEnv(t.TempDir())
	if err != nil || len(values) != 0 {
		t.Fatalf("expected no values, got %v err=%v", values, err)
	}
}

func TestLoadReturnsValidationError(t *testing.T) {
	root := t.TempDir()
	configPath := ConfigPath(root)
	writeFile(t, configPath, "version: 1\n")
	_, err := Load(configPath)
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "inputs.questions: is required") {
		t.Fatalf("unexpected error text %q", err.Error())
	}
	if validationErr.Path != configPath || !strings.HasPrefix(err.Error(), "invalid config "+configPath+":") {
		t.Fatalf("expected error to name %s, got %q", configPath, err.Error())
	}
}

func TestFindConfigPathSearchesUpward(t *testing.T) {
	root := t.TempDir()
	configPath := ConfigPath(root)
	writeFile(t, configPath, "version: 1\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	found, err := FindConfigPath(nested)
	if err != nil {
		t.Fatalf("find config: %v", err)
	}
	want, _ := filepath.EvalSymlinks(configPath)
	got, _ := filepath.EvalSymlinks(found)
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if RepoRootFromConfigPath(found) != filepath.Dir(filepath.Dir(found)) {
		t.Fatalf("unexpected repo root for %q", found)
	}
}

func TestFindConfigPathMissingFile(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(ConfigDir(root), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if _, err := FindConfigPath(root); err == nil {
		t.Fatalf("expected error when config dir has no config file")
	}
}

func TestResolvePath(t *testing.T) {
	if got := ResolvePath("/repo", "data/q.json"); got != filepath.Join("/repo", "data/q.json") {
		t.Fatalf("unexpected resolved path %q", got)
	}
	if got := ResolvePath("/repo", ""); got != "" {
		t.Fatalf("expected empty path to stay empty, got %q", got)
	}
}

func TestScaffoldWritesLoadableConfig(t *testing.T) {
	root := t.TempDir()
	paths, err := Scaffold(ConfigPath(root), "")
	if err != nil {
		t.Fatalf("scaffold: %v", err)
	}
	for _, path := range []string{paths.Config, paths.Questions, paths.Metadata} {
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("expected %s to exist: %v", path, err)
		}
	}
	cfg, err := Load(paths.Config)
	if err != nil {
		t.Fatalf("load scaffolded config: %v", err)
	}
	if cfg.Inputs.Questions != ".scorecard/questions.json" {
		t.Fatalf("unexpected questions path %q", cfg.Inputs.Questions)
	}
	if _, err := Scaffold(paths.Config, ""); err == nil {
		t.Fatalf("expected scaffold to refuse existing config")
	}
}
