package submission

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultPattern matches submission files in a data directory.
const DefaultPattern = "student_answers_*.json"

const filePrefix = "student_answers_"

// Discover lists submission files in dir that match pattern, sorted by path.
func Discover(dir, pattern string) ([]string, error) {
	if strings.TrimSpace(pattern) == "" {
		pattern = DefaultPattern
	}
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("discover submissions: %w", err)
	}
	sort.Strings(matches)
	return matches, nil
}

// StudentIDFromPath extracts the id segment from student_answers_<id>[_...].json.
// It returns an empty string for files that do not follow the convention.
func StudentIDFromPath(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	rest, ok := strings.CutPrefix(base, filePrefix)
	if !ok {
		return ""
	}
	id, _, _ := strings.Cut(rest, "_")
	return id
}
