package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// ExamQuestions is a four-question bank with answers A, B, C, D.
const ExamQuestions = `[
  {"id": 1, "question": "One", "answer": "A"},
  {"id": 2, "question": "Two", "answer": "B"},
  {"id": 3, "question": "Three", "correct_answer": "C"},
  {"id": 4, "question": "Four", "answer": "D"}
]`

// ExamMetadata splits ExamQuestions into two sections of two questions.
const ExamMetadata = `{
  "total_questions": 4,
  "sections": {
    "Mathematics": {"range": [1, 2], "topics": {"1": "Algebra", "2": "Geometry"}},
    "English": {"range": [3, 4], "topics": {"3-4": "Grammar"}}
  }
}`

// ExamDir is a scratch exam laid out the way the default config expects.
type ExamDir struct {
	Root           string
	Questions      string
	Metadata       string
	SubmissionsDir string
}

// WriteExam writes the sample bank and taxonomy under a temp root and
// creates an empty submissions directory.
func WriteExam(t testing.TB) ExamDir {
	t.Helper()
	root := t.TempDir()
	exam := ExamDir{
		Root:           root,
		Questions:      filepath.Join(root, "questions.json"),
		Metadata:       filepath.Join(root, "metadata.json"),
		SubmissionsDir: filepath.Join(root, "student_data"),
	}
	WriteFile(t, exam.Questions, ExamQuestions)
	WriteFile(t, exam.Metadata, ExamMetadata)
	if err := os.MkdirAll(exam.SubmissionsDir, 0o755); err != nil {
		t.Fatalf("create submissions dir: %v", err)
	}
	return exam
}

// AddSubmission writes student_answers_<id>.json with the given options in
// question order. An empty option is written as null.
func (e ExamDir) AddSubmission(t testing.TB, id, name string, options ...string) string {
	t.Helper()
	body := fmt.Sprintf(`{"name": %q, "answers": [`, name)
	for i, option := range options {
		if i > 0 {
			body += ", "
		}
		if option == "" {
			body += fmt.Sprintf(`{"id": %d, "selected_option": null}`, i+1)
		} else {
			body += fmt.Sprintf(`{"id": %d, "selected_option": %q}`, i+1, option)
		}
	}
	body += "]}"
	path := filepath.Join(e.SubmissionsDir, "student_answers_"+id+".json")
	WriteFile(t, path, body)
	return path
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(t testing.TB, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
