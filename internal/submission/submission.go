package submission

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"scorecard/internal/assessment"
	"scorecard/internal/question"
)

// ErrMissingQuestionID is returned when a submission answer has no id.
var ErrMissingQuestionID = errors.New("submission answer is missing its question id")

// Submission is one student's answer sheet.
type Submission struct {
	Name      string   `json:"name"`
	StudentID string   `json:"student_id"`
	Answers   []Answer `json:"answers"`
	Path      string   `json:"-"`
}

// Answer is one raw submission entry. A nil SelectedOption means skipped.
type Answer struct {
	ID             *question.ID `json:"id"`
	SelectedOption *string      `json:"selected_option"`
}

type document struct {
	Name      *string         `json:"name"`
	StudentID json.RawMessage `json:"student_id"`
	Answers   []Answer        `json:"answers"`
}

// Load reads a submission, validates it against the schema, and decodes it.
// A missing student_id falls back to the id embedded in the file name.
func Load(path string) (Submission, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Submission{}, fmt.Errorf("read submission: %w", err)
	}
	sub, err := Parse(data)
	if err != nil {
		var validation *ValidationError
		if errors.As(err, &validation) {
			validation.Path = path
		}
		return Submission{}, err
	}
	sub.Path = path
	if sub.StudentID == "" {
		sub.StudentID = StudentIDFromPath(path)
	}
	return sub, nil
}

// Parse validates and decodes a submission document.
func Parse(data []byte) (Submission, error) {
	if err := ValidateDocument(data); err != nil {
		return Submission{}, err
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Submission{}, fmt.Errorf("decode submission: %w", err)
	}
	studentID, err := decodeStudentID(doc.StudentID)
	if err != nil {
		return Submission{}, err
	}
	sub := Submission{StudentID: studentID, Answers: doc.Answers}
	if doc.Name != nil {
		sub.Name = strings.TrimSpace(*doc.Name)
	}
	return sub, nil
}

// StudentAnswers converts raw entries for the assessor. Selected options are
// trimmed the same way bank answers are, and matching stays case-sensitive.
func (s Submission) StudentAnswers() ([]assessment.StudentAnswer, error) {
	answers := make([]assessment.StudentAnswer, 0, len(s.Answers))
	for i, answer := range s.Answers {
		if answer.ID == nil {
			return nil, fmt.Errorf("%w: answers[%d]", ErrMissingQuestionID, i)
		}
		selected := assessment.SkippedOption
		if answer.SelectedOption != nil {
			selected = strings.TrimSpace(*answer.SelectedOption)
		}
		answers = append(answers, assessment.StudentAnswer{QuestionID: int(*answer.ID), SelectedOption: selected})
	}
	return answers, nil
}

// DisplayName returns the student's name, or fallback when none was given.
func (s Submission) DisplayName(fallback string) string {
	if s.Name == "" {
		return fallback
	}
	return s.Name
}

func decodeStudentID(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return "", fmt.Errorf("decode student_id: %w", err)
		}
		return strings.TrimSpace(text), nil
	}
	var number json.Number
	if err := json.Unmarshal(raw, &number); err != nil {
		return "", fmt.Errorf("decode student_id: %w", err)
	}
	return number.String(), nil
}
