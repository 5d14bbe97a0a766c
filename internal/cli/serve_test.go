package cli

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"scorecard/internal/reportserver"
	"scorecard/internal/testutil"
)

func TestServeCommandBuildsConfig(t *testing.T) {
	exam := testutil.WriteExam(t)
	specPath := writeConfig(t, exam, "memory")
	store := stubStore(t)

	original := serveReport
	t.Cleanup(func() { serveReport = original })
	var got reportserver.Config
	serveReport = func(_ context.Context, cfg reportserver.Config) error {
		got = cfg
		return nil
	}

	var out, err bytes.Buffer
	code := Run([]string{"serve", "--spec", specPath, "--addr", "127.0.0.1:0", "--cors-origins", "http://a.test, http://b.test"}, &out, &err)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d (stderr %q)", ExitOK, code, err.String())
	}
	if got.Addr != "127.0.0.1:0" || got.Title != "Progress Report" {
		t.Fatalf("unexpected config: %+v", got)
	}
	if got.ReportsDir != filepath.Join(exam.Root, "reports") {
		t.Fatalf("unexpected reports dir %q", got.ReportsDir)
	}
	if got.Store != store {
		t.Fatalf("expected the opened store to be served")
	}
	if len(got.AllowedOrigins) != 2 || got.AllowedOrigins[1] != "http://b.test" {
		t.Fatalf("unexpected origins %v", got.AllowedOrigins)
	}
	if !strings.Contains(out.String(), "Serving reports at http://127.0.0.1:0") {
		t.Fatalf("unexpected stdout %q", out.String())
	}
}

func TestServeCommandReportsServerError(t *testing.T) {
	exam := testutil.WriteExam(t)
	specPath := writeConfig(t, exam, "memory")
	stubStore(t)

	original := serveReport
	t.Cleanup(func() { serveReport = original })
	serveReport = func(context.Context, reportserver.Config) error { return errors.New("address in use") }

	var out, err bytes.Buffer
	if code := Run([]string{"serve", "--spec", specPath}, &out, &err); code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if !strings.Contains(err.String(), "Server error: address in use") {
		t.Fatalf("unexpected stderr %q", err.String())
	}
}

func TestServeCommandRequiresAddr(t *testing.T) {
	var out, err bytes.Buffer
	if code := Run([]string{"serve", "--addr", " "}, &out, &err); code != ExitUsage {
		t.Fatalf("expected exit %d, got %d", ExitUsage, code)
	}
}
