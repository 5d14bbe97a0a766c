package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"scorecard/internal/runner"
	"scorecard/internal/spec"
	"scorecard/internal/testutil"
)

func TestReportCommandWritesReports(t *testing.T) {
	exam := testutil.WriteExam(t)
	exam.AddSubmission(t, "1", "Ada", "A", "B", "C", "D")
	exam.AddSubmission(t, "2", "Grace", "A", "A", "", "D")
	specPath := writeConfig(t, exam, "memory")

	var out, err bytes.Buffer
	code := Run([]string{"report", "--spec", specPath, "--ui", "plain"}, &out, &err)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d (stderr %q)", ExitOK, code, err.String())
	}
	output := out.String()
	for _, want := range []string{"Scoring 2 submissions for Midterm", "done", "Submissions: 2 done, 0 failed, 2 total", "Average: 75.00%"} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected %q in output, got %q", want, output)
		}
	}
	reports, globErr := filepath.Glob(filepath.Join(exam.Root, "reports", "*.html"))
	if globErr != nil || len(reports) != 2 {
		t.Fatalf("expected two reports, got %v (%v)", reports, globErr)
	}
	results, globErr := filepath.Glob(filepath.Join(exam.Root, "reports", "runs", "*", "results.json"))
	if globErr != nil || len(results) != 1 {
		t.Fatalf("expected results.json, got %v (%v)", results, globErr)
	}
}

func TestReportCommandFailsOnBadSubmission(t *testing.T) {
	exam := testutil.WriteExam(t)
	exam.AddSubmission(t, "1", "Ada", "A", "B", "C", "D")
	testutil.WriteFile(t, filepath.Join(exam.SubmissionsDir, "student_answers_2.json"), `{not json`)
	specPath := writeConfig(t, exam, "memory")

	var out, err bytes.Buffer
	code := Run([]string{"report", "--spec", specPath, "--ui", "plain", "--output-dir", "custom"}, &out, &err)
	if code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if !strings.Contains(out.String(), "failed  ") || !strings.Contains(out.String(), "1 failed") {
		t.Fatalf("expected failure line, got %q", out.String())
	}
	if !strings.Contains(err.String(), "warning:") {
		t.Fatalf("expected warning on stderr, got %q", err.String())
	}
	if _, statErr := os.Stat(filepath.Join(exam.Root, "custom")); statErr != nil {
		t.Fatalf("expected output dir override: %v", statErr)
	}
}

func TestReportCommandPassesFlags(t *testing.T) {
	exam := testutil.WriteExam(t)
	specPath := writeConfig(t, exam, "memory")

	original := runAndWrite
	t.Cleanup(func() { runAndWrite = original })
	var got runner.RunParams
	runAndWrite = func(_ context.Context, _ spec.Config, params runner.RunParams) (runner.Results, runner.OutputPaths, error) {
		got = params
		return runner.Results{}, runner.OutputPaths{}, errors.New("boom")
	}

	var out, err bytes.Buffer
	code := Run([]string{"report", "--spec", specPath, "--verbose", "--no-color", "--output-dir", "elsewhere"}, &out, &err)
	if code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if !strings.Contains(err.String(), "Report failed: boom") {
		t.Fatalf("unexpected stderr %q", err.String())
	}
	if !got.Verbose || !got.NoColor || got.OutputDir != "elsewhere" || got.RepoRoot != exam.Root {
		t.Fatalf("unexpected params: %+v", got)
	}
	if got.Observer != nil {
		t.Fatalf("expected verbose mode to skip the progress observer")
	}
}

func TestReportCommandRejectsUIMode(t *testing.T) {
	var out, err bytes.Buffer
	if code := Run([]string{"report", "--ui", "fancy"}, &out, &err); code != ExitUsage {
		t.Fatalf("expected exit %d, got %d", ExitUsage, code)
	}
	if !strings.Contains(err.String(), "invalid ui mode") {
		t.Fatalf("unexpected stderr %q", err.String())
	}
}

type fakeLive struct {
	runner.RunObserver
	closed, waited bool
}

func (f *fakeLive) Close() { f.closed = true }
func (f *fakeLive) Wait()  { f.waited = true }

func TestReportCommandUsesLiveUI(t *testing.T) {
	exam := testutil.WriteExam(t)
	specPath := writeConfig(t, exam, "memory")

	originalTerminal := isTerminal
	originalStart := startLiveUI
	originalRun := runAndWrite
	t.Cleanup(func() {
		isTerminal = originalTerminal
		startLiveUI = originalStart
		runAndWrite = originalRun
	})
	isTerminal = func(io.Writer) bool { return true }
	fake := &fakeLive{RunObserver: &plainObserver{out: io.Discard}}
	startLiveUI = func(io.Writer, bool) liveController { return fake }
	var got runner.RunParams
	runAndWrite = func(_ context.Context, _ spec.Config, params runner.RunParams) (runner.Results, runner.OutputPaths, error) {
		got = params
		paths, _ := runner.NewOutputPaths(filepath.Join(exam.Root, "reports"), "run-1")
		return runner.Results{RunID: "run-1"}, paths, nil
	}

	var out, err bytes.Buffer
	if code := Run([]string{"report", "--spec", specPath}, &out, &err); code != ExitOK {
		t.Fatalf("expected exit %d, got %d (stderr %q)", ExitOK, code, err.String())
	}
	if got.Observer != fake {
		t.Fatalf("expected live controller as observer")
	}
	if got.WarningWriter != nil {
		t.Fatalf("expected warnings to be suppressed under the live UI")
	}
	if !fake.closed || !fake.waited {
		t.Fatalf("expected controller to be closed and awaited")
	}
	if !strings.Contains(out.String(), "Run run-1 completed") {
		t.Fatalf("unexpected stdout %q", out.String())
	}
}
