package config

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
)

type scaffoldValues struct {
	OutputDir      string
	Questions      string
	Metadata       string
	SubmissionsDir string
}

// ScaffoldConfig renders the starter config YAML.
func ScaffoldConfig(values scaffoldValues) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `version: 1
report:
  title: %q
  test_name: %q
  test_date: ""
  output_dir: %q
inputs:
  questions: %q
  metadata: %q
  submissions_dir: %q
  submissions_glob: "student_answers_*.json"
assessment:
  implicit_skips: true
  thresholds:
    weak_skipped: 2
    weak_accuracy: 50
    strength_accuracy: 80
taxonomy:
  strict: true
leaderboard:
  backend: duckdb
  display_cap: 100
runner:
  workers: 4
`, DefaultReportTitle, DefaultTestName, values.OutputDir, values.Questions, values.Metadata, values.SubmissionsDir)
		return err
	})
}

// renderScaffoldConfig builds the scaffold YAML via the component.
func renderScaffoldConfig(values scaffoldValues) (string, error) {
	var builder strings.Builder
	if err := ScaffoldConfig(values).Render(context.Background(), &builder); err != nil {
		return "", err
	}
	return builder.String(), nil
}
