package config

import (
	"fmt"
	"strings"
)

// Issue is one problem with a config field, e.g. {"leaderboard.backend",
// "must be one of duckdb, sqlite, memory"}.
type Issue struct {
	Field   string
	Message string
}

// ValidationError lists every issue found in a config. Path names the file
// when the config was loaded from disk.
type ValidationError struct {
	Path   string
	Issues []Issue
}

func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "config validation failed"
	}
	lines := make([]string, 0, len(err.Issues)+1)
	if err.Path != "" {
		lines = append(lines, fmt.Sprintf("invalid config %s:", err.Path))
	}
	for _, issue := range err.Issues {
		lines = append(lines, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return strings.Join(lines, "\n")
}

// HasField reports whether any issue names field.
func (err *ValidationError) HasField(field string) bool {
	if err == nil {
		return false
	}
	for _, issue := range err.Issues {
		if issue.Field == field {
			return true
		}
	}
	return false
}

type issueAdder func(field, message string)

type issueCollector struct {
	issues []Issue
}

func (c *issueCollector) add(field, message string) {
	c.issues = append(c.issues, Issue{Field: field, Message: message})
}

func (c *issueCollector) result() error {
	if len(c.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: c.issues}
}
