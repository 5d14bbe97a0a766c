package submission

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"scorecard/internal/assessment"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// TestLoadSubmission decodes names, ids, and skipped answers.
func TestLoadSubmission(t *testing.T) {
	path := writeFile(t, t.TempDir(), "student_answers_1042_mock.json", `{
  "name": " Ayesha Khan ",
  "answers": [
    {"id": 1, "selected_option": "A"},
    {"id": "2", "selected_option": "skipped"},
    {"id": 3},
    {"id": 4, "selected_option": null}
  ]
}`)
	sub, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if sub.Name != "Ayesha Khan" {
		t.Fatalf("unexpected name %q", sub.Name)
	}
	if sub.StudentID != "1042" {
		t.Fatalf("expected student id from file name, got %q", sub.StudentID)
	}
	answers, err := sub.StudentAnswers()
	if err != nil {
		t.Fatalf("answers: %v", err)
	}
	want := []assessment.StudentAnswer{
		{QuestionID: 1, SelectedOption: "A"},
		{QuestionID: 2, SelectedOption: assessment.SkippedOption},
		{QuestionID: 3, SelectedOption: assessment.SkippedOption},
		{QuestionID: 4, SelectedOption: assessment.SkippedOption},
	}
	if len(answers) != len(want) {
		t.Fatalf("expected %d answers, got %d", len(want), len(answers))
	}
	for i := range want {
		if answers[i] != want[i] {
			t.Fatalf("answer %d = %+v, want %+v", i, answers[i], want[i])
		}
	}
}

// TestLoadPrefersDocumentStudentID keeps an explicit id over the file name.
func TestLoadPrefersDocumentStudentID(t *testing.T) {
	path := writeFile(t, t.TempDir(), "student_answers_7.json", `{"student_id": 2231, "answers": []}`)
	sub, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if sub.StudentID != "2231" {
		t.Fatalf("expected numeric student id, got %q", sub.StudentID)
	}
	if sub.DisplayName("Student") != "Student" {
		t.Fatalf("expected fallback display name")
	}
}

// TestParseSchemaViolations reports every schema problem.
func TestParseSchemaViolations(t *testing.T) {
	cases := map[string]string{
		"missing answers":   `{"name": "A"}`,
		"answers not array": `{"answers": {"id": 1}}`,
		"bad id":            `{"answers": [{"id": "x1", "selected_option": "A"}]}`,
		"zero id":           `{"answers": [{"id": 0, "selected_option": "A"}]}`,
		"option not string": `{"answers": [{"id": 1, "selected_option": 3}]}`,
	}
	for name, body := range cases {
		_, err := Parse([]byte(body))
		var validation *ValidationError
		if !errors.As(err, &validation) {
			t.Fatalf("%s: expected ValidationError, got %v", name, err)
		}
		if len(validation.Issues) == 0 {
			t.Fatalf("%s: expected issues", name)
		}
	}
}

// TestParseMalformedJSON surfaces decode failures as plain errors.
func TestParseMalformedJSON(t *testing.T) {
	_, err := Parse([]byte(`{"answers": [`))
	if err == nil {
		t.Fatalf("expected error")
	}
	var validation *ValidationError
	if errors.As(err, &validation) {
		t.Fatalf("malformed json should not be a schema violation")
	}
}

// TestStudentAnswersMissingID is fatal for the submission.
func TestStudentAnswersMissingID(t *testing.T) {
	sub, err := Parse([]byte(`{"answers": [{"id": 1, "selected_option": "A"}, {"selected_option": "B"}]}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := sub.StudentAnswers(); !errors.Is(err, ErrMissingQuestionID) {
		t.Fatalf("expected ErrMissingQuestionID, got %v", err)
	}
}

// TestStudentAnswersFloatIDAndPaddedOption covers ids written as 1.0 and
// options padded with spaces.
func TestStudentAnswersFloatIDAndPaddedOption(t *testing.T) {
	sub, err := Parse([]byte(`{"answers": [{"id": 1.0, "selected_option": " A "}, {"id": 2, "selected_option": "b"}]}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	answers, err := sub.StudentAnswers()
	if err != nil {
		t.Fatalf("answers: %v", err)
	}
	want := []assessment.StudentAnswer{{QuestionID: 1, SelectedOption: "A"}, {QuestionID: 2, SelectedOption: "b"}}
	if len(answers) != len(want) || answers[0] != want[0] || answers[1] != want[1] {
		t.Fatalf("unexpected answers %+v", answers)
	}
	summary := assessment.Assess(answers, assessment.AnswerKey{1: "A", 2: "B"}, 2)
	if summary.Correct != 1 || summary.Incorrect != 1 {
		t.Fatalf("expected padded option correct and lowercase incorrect, got %+v", summary)
	}
}

// TestLoadValidationErrorCarriesPath names the offending file.
func TestLoadValidationErrorCarriesPath(t *testing.T) {
	path := writeFile(t, t.TempDir(), "student_answers_9.json", `{"answers": 1}`)
	_, err := Load(path)
	var validation *ValidationError
	if !errors.As(err, &validation) || validation.Path != path {
		t.Fatalf("expected ValidationError with path, got %v", err)
	}
}
