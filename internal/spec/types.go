package spec

import "scorecard/internal/assessment"

type Config struct {
	Version     int               `yaml:"version"`
	Report      ReportConfig      `yaml:"report"`
	Inputs      InputsConfig      `yaml:"inputs"`
	Insights    InsightsConfig    `yaml:"insights"`
	Assessment  AssessmentConfig  `yaml:"assessment"`
	Taxonomy    TaxonomyConfig    `yaml:"taxonomy"`
	Leaderboard LeaderboardConfig `yaml:"leaderboard"`
	Runner      RunnerConfig      `yaml:"runner"`
}

type ReportConfig struct {
	Title       string `yaml:"title"`
	TestName    string `yaml:"test_name"`
	TestDate    string `yaml:"test_date"`
	GeneratedAt string `yaml:"generated_at"`
	OutputDir   string `yaml:"output_dir"`
}

type InputsConfig struct {
	Questions       string `yaml:"questions"`
	Metadata        string `yaml:"metadata"`
	SubmissionsDir  string `yaml:"submissions_dir"`
	SubmissionsGlob string `yaml:"submissions_glob"`
}

// InsightsConfig points at optional content files; empty paths use the
// embedded defaults.
type InsightsConfig struct {
	Tips            string `yaml:"tips"`
	Quotes          string `yaml:"quotes"`
	Badges          string `yaml:"badges"`
	InstructorNotes string `yaml:"instructor_notes"`
}

type AssessmentConfig struct {
	ImplicitSkips *bool                 `yaml:"implicit_skips"`
	Thresholds    assessment.Thresholds `yaml:"thresholds"`
}

type TaxonomyConfig struct {
	Strict *bool `yaml:"strict"`
}

type LeaderboardConfig struct {
	Backend    string `yaml:"backend"`
	Path       string `yaml:"path"`
	DisplayCap int    `yaml:"display_cap"`
}

type RunnerConfig struct {
	Workers int `yaml:"workers"`
}

// ImplicitSkipsEnabled reports whether absent questions count as skipped.
func (c AssessmentConfig) ImplicitSkipsEnabled() bool {
	return c.ImplicitSkips == nil || *c.ImplicitSkips
}

// StrictEnabled reports whether the taxonomy is validated at load time.
func (c TaxonomyConfig) StrictEnabled() bool {
	return c.Strict == nil || *c.Strict
}
