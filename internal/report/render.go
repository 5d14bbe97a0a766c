package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// RenderHTML renders the report page into a string.
func RenderHTML(ctx context.Context, m Model) (string, error) {
	var builder strings.Builder
	if err := Page(m).Render(ctx, &builder); err != nil {
		return "", err
	}
	return builder.String(), nil
}

// FileName returns the report file name for a student, e.g.
// "MUET_Report_Ayesha_Khan_1042.html". The student id keeps names that
// sanitise alike apart.
func FileName(testName, studentName, studentID string) string {
	return fmt.Sprintf("%s_Report_%s_%s.html", sanitizeFileComponent(testName), sanitizeFileComponent(studentName), sanitizeFileComponent(studentID))
}

// Write renders the report into dir and returns the written path.
func Write(ctx context.Context, dir string, m Model) (string, error) {
	html, err := RenderHTML(ctx, m)
	if err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	path := filepath.Join(dir, FileName(m.TestName, m.StudentName, m.StudentID))
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}
