package runner

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// TestWriteRunOutputs verifies results.json lands under runs/<run-id>.
func TestWriteRunOutputs(t *testing.T) {
	root := t.TempDir()
	results := Results{
		RunID:       "run-1",
		TestName:    "Entry Test",
		Submissions: []SubmissionResult{{StudentID: "s1", Status: StatusDone, Percentage: 50}},
	}
	paths, err := WriteRunOutputs(results, root)
	if err != nil {
		t.Fatalf("write outputs: %v", err)
	}
	expectedDir := filepath.Join(root, "runs", "run-1")
	if paths.RunDir() != expectedDir {
		t.Fatalf("unexpected run dir: %s", paths.RunDir())
	}
	data, err := os.ReadFile(paths.ResultsPath())
	if err != nil {
		t.Fatalf("missing results.json: %v", err)
	}
	var decoded Results
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decode results: %v", err)
	}
	if decoded.RunID != "run-1" || len(decoded.Submissions) != 1 {
		t.Fatalf("unexpected decoded results %+v", decoded)
	}
}

func TestWriteRunOutputsRequiresRunID(t *testing.T) {
	if _, err := WriteRunOutputs(Results{}, t.TempDir()); err == nil {
		t.Fatalf("expected error for empty run id")
	}
	if _, err := WriteRunOutputs(Results{RunID: "x"}, ""); err == nil {
		t.Fatalf("expected error for empty output dir")
	}
}
