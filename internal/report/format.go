package report

import (
	"strconv"
	"strings"
)

// formatPercent renders a percentage with two decimals.
func formatPercent(value float64) string {
	return strconv.FormatFloat(value, 'f', 2, 64)
}

// sanitizeFileComponent replaces characters that are unsafe in file names.
func sanitizeFileComponent(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "Unknown"
	}
	var builder strings.Builder
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			builder.WriteRune(r)
		default:
			builder.WriteRune('_')
		}
	}
	return builder.String()
}
