package config

import (
	"os"
	"path/filepath"
	"testing"

	"scorecard/internal/spec"
)

// validConfig returns a normalized config whose inputs exist under dir.
func validConfig(t *testing.T, dir string) spec.Config {
	t.Helper()
	writeInputs(t, dir)
	cfg := spec.Config{
		Version: 1,
		Report: spec.ReportConfig{
			OutputDir: "./out",
		},
		Inputs: spec.InputsConfig{
			Questions:      "questions.json",
			Metadata:       "metadata.json",
			SubmissionsDir: "student_data",
		},
	}
	Normalize(&cfg)
	return cfg
}

func writeInputs(t *testing.T, dir string) {
	t.Helper()
	writeFile(t, filepath.Join(dir, "questions.json"), `[{"id": 1, "answer": "A"}]`)
	writeFile(t, filepath.Join(dir, "metadata.json"), `{"total_questions": 1, "sections": {"S": {"range": [1, 1], "topics": {"1": "T"}}}}`)
	if err := os.MkdirAll(filepath.Join(dir, "student_data"), 0o755); err != nil {
		t.Fatalf("mkdir submissions: %v", err)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func hasIssue(err error, field string) bool {
	validationErr, ok := err.(*ValidationError)
	return ok && validationErr.HasField(field)
}
