package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ignoreReportsDir appends the reports folder to <repoRoot>/.gitignore
// unless an equivalent pattern is already listed. It reports whether the
// file changed.
func ignoreReportsDir(repoRoot, reportsDir string) (bool, error) {
	pattern, err := reportsIgnorePattern(repoRoot, reportsDir)
	if err != nil {
		return false, err
	}
	path := filepath.Join(repoRoot, ".gitignore")
	existing, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return false, fmt.Errorf("read .gitignore: %w", err)
	}
	content := string(existing)
	for _, line := range strings.Split(content, "\n") {
		if samePattern(line, pattern) {
			return false, nil
		}
	}
	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	content += pattern + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return false, fmt.Errorf("write .gitignore: %w", err)
	}
	return true, nil
}

// reportsIgnorePattern anchors reportsDir to the repo root as a directory
// pattern, e.g. "/out/reports/".
func reportsIgnorePattern(repoRoot, reportsDir string) (string, error) {
	if strings.TrimSpace(reportsDir) == "" {
		return "", fmt.Errorf("reports folder is empty")
	}
	rel := filepath.Clean(reportsDir)
	if filepath.IsAbs(rel) {
		var err error
		rel, err = filepath.Rel(repoRoot, rel)
		if err != nil {
			return "", fmt.Errorf("resolve reports folder: %w", err)
		}
	}
	rel = filepath.ToSlash(rel)
	if rel == "." || rel == ".." || strings.HasPrefix(rel, "../") {
		return "", fmt.Errorf("reports folder %q is outside the repo root", reportsDir)
	}
	return "/" + rel + "/", nil
}

func samePattern(line, pattern string) bool {
	trim := func(s string) string { return strings.Trim(strings.TrimSpace(s), "/") }
	return trim(line) != "" && trim(line) == trim(pattern)
}
