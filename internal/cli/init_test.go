package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func withInitInput(t *testing.T, input string) {
	t.Helper()
	original := initInput
	initInput = strings.NewReader(input)
	t.Cleanup(func() { initInput = original })
}

func TestInitCommandCreatesFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir .git: %v", err)
	}
	specPath := filepath.Join(dir, ".scorecard", "config.yml")
	withInitInput(t, "\n\n\n")

	var out, err bytes.Buffer
	code := Run([]string{"init", "--spec", specPath}, &out, &err)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d (stderr %q)", ExitOK, code, err.String())
	}
	if err.Len() != 0 {
		t.Fatalf("expected no stderr output, got %q", err.String())
	}
	for _, path := range []string{
		specPath,
		filepath.Join(dir, ".scorecard", "questions.json"),
		filepath.Join(dir, ".scorecard", "metadata.json"),
	} {
		if _, statErr := os.Stat(path); statErr != nil {
			t.Fatalf("expected %s to exist: %v", path, statErr)
		}
		if !strings.Contains(out.String(), "Wrote "+path) {
			t.Fatalf("expected output to mention %s, got %q", path, out.String())
		}
	}
	if info, statErr := os.Stat(filepath.Join(dir, "student_data")); statErr != nil || !info.IsDir() {
		t.Fatalf("expected submissions dir, got %v", statErr)
	}

	out.Reset()
	err.Reset()
	if code := Run([]string{"validate", "--spec", specPath}, &out, &err); code != ExitOK {
		t.Fatalf("expected scaffold to validate, got %d: %s", code, err.String())
	}
}

func TestInitCommandUpdatesGitignore(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir .git: %v", err)
	}
	specPath := filepath.Join(dir, ".scorecard", "config.yml")
	withInitInput(t, "y\nout/reports\ny\n")

	var out, err bytes.Buffer
	if code := Run([]string{"init", "--spec", specPath}, &out, &err); code != ExitOK {
		t.Fatalf("expected exit %d, got %d (stderr %q)", ExitOK, code, err.String())
	}
	data, readErr := os.ReadFile(filepath.Join(dir, ".gitignore"))
	if readErr != nil {
		t.Fatalf("read .gitignore: %v", readErr)
	}
	if strings.TrimSpace(string(data)) != "/out/reports/" {
		t.Fatalf("unexpected .gitignore: %q", string(data))
	}
}

func TestInitCommandCancelled(t *testing.T) {
	dir := t.TempDir()
	specPath := filepath.Join(dir, ".scorecard", "config.yml")
	withInitInput(t, "n\n")

	var out, err bytes.Buffer
	if code := Run([]string{"init", "--spec", specPath}, &out, &err); code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if !strings.Contains(err.String(), "cancelled") {
		t.Fatalf("expected cancel message, got %q", err.String())
	}
	if _, statErr := os.Stat(specPath); !os.IsNotExist(statErr) {
		t.Fatalf("expected no config written, got %v", statErr)
	}
}

func TestInitCommandRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	specPath := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(specPath, []byte("version: 1\n"), 0o644); err != nil {
		t.Fatalf("write spec: %v", err)
	}
	withInitInput(t, "\n\n")

	var out, err bytes.Buffer
	code := Run([]string{"init", "--spec", specPath}, &out, &err)
	if code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no stdout output, got %q", out.String())
	}
	if !strings.Contains(err.String(), "already exists") {
		t.Fatalf("expected overwrite warning, got %q", err.String())
	}
}

func TestInitRejectsExtraArgs(t *testing.T) {
	var out, err bytes.Buffer
	if code := Run([]string{"init", "extra"}, &out, &err); code != ExitUsage {
		t.Fatalf("expected exit %d, got %d", ExitUsage, code)
	}
	if !strings.Contains(err.String(), "unexpected arguments: extra") {
		t.Fatalf("unexpected stderr %q", err.String())
	}
}

func TestDiscoverGitRoot(t *testing.T) {
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir .git: %v", err)
	}
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir nested: %v", err)
	}
	if got := discoverGitRoot(nested); got != root {
		t.Fatalf("expected %s, got %s", root, got)
	}
}

func TestReportsIgnorePattern(t *testing.T) {
	root := t.TempDir()
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "reports", want: "/reports/"},
		{in: "./out/reports/", want: "/out/reports/"},
		{in: filepath.Join(root, "abs"), want: "/abs/"},
		{in: "../outside", wantErr: true},
		{in: ".", wantErr: true},
		{in: " ", wantErr: true},
	}
	for _, tc := range cases {
		got, err := reportsIgnorePattern(root, tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("%q: expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("%q: expected %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestIgnoreReportsDirSkipsEquivalentPattern(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, ".gitignore")
	if err := os.WriteFile(path, []byte("*.log\nreports"), 0o644); err != nil {
		t.Fatalf("write .gitignore: %v", err)
	}
	changed, err := ignoreReportsDir(root, "reports")
	if err != nil || changed {
		t.Fatalf("expected no change, got changed=%v err=%v", changed, err)
	}
	changed, err = ignoreReportsDir(root, "out")
	if err != nil || !changed {
		t.Fatalf("expected change, got changed=%v err=%v", changed, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read .gitignore: %v", err)
	}
	if string(data) != "*.log\nreports\n/out/\n" {
		t.Fatalf("unexpected .gitignore %q", string(data))
	}
}

func TestAnswerReader(t *testing.T) {
	var out bytes.Buffer
	answers := newAnswerReader(strings.NewReader("maybe\nYES\n\n"), &out)
	ok, err := answers.confirm("Proceed?", false)
	if err != nil || !ok {
		t.Fatalf("expected yes after retry, got %v err=%v", ok, err)
	}
	if !strings.Contains(out.String(), "Answer y or n.") {
		t.Fatalf("expected retry hint, got %q", out.String())
	}
	dir, err := answers.text("Reports folder", "reports")
	if err != nil || dir != "reports" {
		t.Fatalf("expected fallback, got %q err=%v", dir, err)
	}
	if _, err := answers.text("Title", ""); err == nil {
		t.Fatalf("expected error when input runs out without a fallback")
	}
}
