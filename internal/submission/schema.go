package submission

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed submission.schema.json
var schemaJSON []byte

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaJSON))
	})
	return schema, schemaErr
}

// Issue captures one schema violation in a submission document.
type Issue struct {
	Field   string
	Message string
}

// ValidationError reports schema violations in a submission document.
type ValidationError struct {
	Path   string
	Issues []Issue
}

// Error returns a readable message for validation failures.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "submission validation failed"
	}
	parts := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	prefix := "submission validation failed"
	if err.Path != "" {
		prefix = fmt.Sprintf("submission %s validation failed", err.Path)
	}
	return fmt.Sprintf("%s: %s", prefix, strings.Join(parts, "; "))
}

// ValidateDocument checks raw JSON against the embedded submission schema.
func ValidateDocument(data []byte) error {
	compiled, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile submission schema: %w", err)
	}
	result, err := compiled.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("parse submission: %w", err)
	}
	if result.Valid() {
		return nil
	}
	issues := make([]Issue, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		issues = append(issues, Issue{Field: desc.Field(), Message: desc.Description()})
	}
	return &ValidationError{Issues: issues}
}
