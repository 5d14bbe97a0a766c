package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"scorecard/internal/duckdb"
	"scorecard/internal/leaderboard"
	"scorecard/internal/spec"
	"scorecard/internal/testutil"
)

// writeConfig writes .scorecard/config.yml for exam and returns its path.
func writeConfig(t *testing.T, exam testutil.ExamDir, backend string) string {
	t.Helper()
	path := filepath.Join(exam.Root, ".scorecard", "config.yml")
	testutil.WriteFile(t, path, fmt.Sprintf(`version: 1
report:
  title: "Progress Report"
  test_name: "Midterm"
  test_date: "2025-06-05"
  generated_at: "06:48 PM UTC on June 05, 2025"
  output_dir: "reports"
inputs:
  questions: "questions.json"
  metadata: "metadata.json"
  submissions_dir: "student_data"
leaderboard:
  backend: %q
runner:
  workers: 2
`, backend))
	return path
}

// stubStore replaces the leaderboard seam with a prefilled memory store.
func stubStore(t *testing.T, entries ...leaderboard.Entry) *leaderboard.MemoryStore {
	t.Helper()
	store := leaderboard.NewMemoryStore()
	for _, entry := range entries {
		if err := store.Upsert(context.Background(), entry); err != nil {
			t.Fatalf("seed store: %v", err)
		}
	}
	original := openStore
	openStore = func(context.Context, spec.Config, string, duckdb.Exam) (leaderboard.Store, error) {
		return store, nil
	}
	t.Cleanup(func() { openStore = original })
	return store
}
