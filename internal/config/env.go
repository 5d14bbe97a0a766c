package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"scorecard/internal/spec"
)

// DotEnvFileName is read from the repo root before overrides are applied.
const DotEnvFileName = ".env"

// Environment variables that override config values.
const (
	EnvReportTitle    = "SCORECARD_REPORT_TITLE"
	EnvTestName       = "SCORECARD_TEST_NAME"
	EnvTestDate       = "SCORECARD_TEST_DATE"
	EnvReportTime     = "SCORECARD_REPORT_TIME"
	EnvQuestionsPath  = "SCORECARD_QUESTIONS_PATH"
	EnvMetadataPath   = "SCORECARD_METADATA_PATH"
	EnvQuotesPath     = "SCORECARD_QUOTES_PATH"
	EnvStudentDataDir = "SCORECARD_STUDENT_DATA_DIR"
	EnvOutputDir      = "SCORECARD_OUTPUT_DIR"
)

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// LoadDotEnv reads <root>/.env. A missing file yields no values.
func LoadDotEnv(root string) (map[string]string, error) {
	path := filepath.Join(root, DotEnvFileName)
	values, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return values, nil
}

// WithDotEnv falls back to values for keys lookup does not know, so the
// process environment wins over .env.
func WithDotEnv(lookup LookupFunc, values map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		if lookup != nil {
			if value, ok := lookup(key); ok {
				return value, true
			}
		}
		value, ok := values[key]
		return value, ok
	}
}

// ApplyEnv replaces config values with non-empty environment overrides.
func ApplyEnv(cfg *spec.Config, lookup LookupFunc) {
	if cfg == nil || lookup == nil {
		return
	}
	overrides := []struct {
		key    string
		target *string
	}{
		{EnvReportTitle, &cfg.Report.Title},
		{EnvTestName, &cfg.Report.TestName},
		{EnvTestDate, &cfg.Report.TestDate},
		{EnvReportTime, &cfg.Report.GeneratedAt},
		{EnvQuestionsPath, &cfg.Inputs.Questions},
		{EnvMetadataPath, &cfg.Inputs.Metadata},
		{EnvQuotesPath, &cfg.Insights.Quotes},
		{EnvStudentDataDir, &cfg.Inputs.SubmissionsDir},
		{EnvOutputDir, &cfg.Report.OutputDir},
	}
	for _, override := range overrides {
		value, ok := lookup(override.key)
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		*override.target = value
	}
}
