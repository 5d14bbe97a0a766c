package live

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"

	"scorecard/internal/runner"
)

// formatStudent returns the display label for a submission row.
func formatStudent(row SubmissionRow) string {
	if row.StudentID != "" {
		return row.StudentID
	}
	return "#" + fmtInt(row.Index+1)
}

// fmtInt converts an int to string.
func fmtInt(value int) string {
	return strconv.Itoa(value)
}

func formatPercent(value float64) string {
	return fmt.Sprintf("%.2f%%", value)
}

// formatScore renders the percentage once a row has been assessed.
func formatScore(row SubmissionRow) string {
	switch row.Status {
	case runner.SubmissionQueued, runner.SubmissionAssessing, runner.SubmissionFailed:
		return ""
	}
	return formatPercent(row.Percentage)
}

// formatRank renders "3/40" or an empty cell for unranked rows.
func formatRank(row SubmissionRow) string {
	if row.Standing == nil {
		return ""
	}
	return fmtInt(row.Standing.Rank) + "/" + fmtInt(row.Standing.Total)
}

// formatStatus renders a status string for a row.
func formatStatus(row SubmissionRow, noColor bool) string {
	text := string(row.Status)
	if row.Status == runner.SubmissionFailed && row.Error != "" {
		text += ": " + truncate(row.Error, 60)
	}
	if noColor {
		return text
	}
	return statusStyle(row.Status).Render(text)
}

// formatRowDuration returns elapsed or total time for a row.
func formatRowDuration(row SubmissionRow, now time.Time) string {
	if !row.FinishedAt.IsZero() && !row.StartedAt.IsZero() {
		return row.FinishedAt.Sub(row.StartedAt).Round(time.Millisecond).String()
	}
	if !row.StartedAt.IsZero() {
		return now.Sub(row.StartedAt).Round(100 * time.Millisecond).String()
	}
	return ""
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit-3]) + "..."
}

// statusStyle selects a style for a given status.
func statusStyle(status runner.SubmissionEventType) lipgloss.Style {
	color := lipgloss.Color("244")
	switch status {
	case runner.SubmissionDone:
		color = lipgloss.Color("42")
	case runner.SubmissionFailed:
		color = lipgloss.Color("196")
	case runner.SubmissionAssessing:
		color = lipgloss.Color("33")
	case runner.SubmissionAssessed:
		color = lipgloss.Color("39")
	case runner.SubmissionRendering:
		color = lipgloss.Color("201")
	case runner.SubmissionQueued:
		color = lipgloss.Color("246")
	}
	return lipgloss.NewStyle().Foreground(color)
}
