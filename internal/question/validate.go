package question

import (
	"fmt"
	"strings"
)

// Issue captures a validation problem in a question bank.
type Issue struct {
	Field   string
	Message string
}

// ValidationError reports one or more validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error returns a readable message for validation failures.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return ""
	}
	parts := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return fmt.Sprintf("question bank validation failed: %s", strings.Join(parts, "; "))
}

type issueCollector struct {
	issues []Issue
}

func (collector *issueCollector) add(field, message string) {
	collector.issues = append(collector.issues, Issue{Field: field, Message: message})
}

func (collector *issueCollector) result() error {
	if len(collector.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: collector.issues}
}

// NormalizeBank trims whitespace, resolves the answer alias, and validates a bank.
func NormalizeBank(bank Bank) (Bank, error) {
	collector := &issueCollector{}
	if len(bank.Questions) == 0 {
		collector.add("questions", "must include at least one entry")
	}

	seenIDs := map[ID]struct{}{}
	for i, question := range bank.Questions {
		prefix := fmt.Sprintf("[%d]", i)
		if question.ID <= 0 {
			collector.add(prefix+".id", fmt.Sprintf("must be positive, got %d", question.ID))
		} else if _, exists := seenIDs[question.ID]; exists {
			collector.add(prefix+".id", fmt.Sprintf("duplicate id %d", question.ID))
		} else {
			seenIDs[question.ID] = struct{}{}
		}

		question.Prompt = strings.TrimSpace(question.Prompt)
		question.Answer = strings.TrimSpace(question.Answer)
		question.CorrectAnswer = strings.TrimSpace(question.CorrectAnswer)
		if question.Answer == "" {
			question.Answer = question.CorrectAnswer
		}
		switch {
		case question.Answer == "":
			collector.add(prefix+".answer", "is required")
		case question.CorrectAnswer != "" && question.CorrectAnswer != question.Answer:
			collector.add(prefix+".correct_answer", fmt.Sprintf("conflicts with answer %q", question.Answer))
		}
		bank.Questions[i] = question
	}

	if err := collector.result(); err != nil {
		return Bank{}, err
	}
	return bank, nil
}
