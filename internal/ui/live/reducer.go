package live

import (
	"fmt"
	"path/filepath"

	"scorecard/internal/runner"
	"scorecard/internal/submission"
)

// Seed creates one queued row per discovered submission.
func Seed(state State, paths []string) State {
	rows := make([]SubmissionRow, len(paths))
	for i, path := range paths {
		rows[i] = SubmissionRow{
			Index:     i,
			Path:      path,
			StudentID: submission.StudentIDFromPath(path),
			Status:    runner.SubmissionQueued,
		}
	}
	state.Rows = rows
	state.Counts = recount(rows)
	return state
}

// Reduce applies a submission event to the UI state.
func Reduce(state State, event runner.SubmissionEvent) State {
	state = ensureRow(state, event)
	state = applySubmissionEvent(state, event)
	state.Counts = recount(state.Rows)
	if message := formatLastEvent(event); message != "" {
		state.LastEvent = message
	}
	return state
}

// ensureRow grows the state rows to include the target index.
func ensureRow(state State, event runner.SubmissionEvent) State {
	if event.Index < 0 || event.Index < len(state.Rows) {
		return state
	}
	rows := make([]SubmissionRow, event.Index+1)
	copy(rows, state.Rows)
	for i := len(state.Rows); i < len(rows); i++ {
		rows[i] = SubmissionRow{Index: i, Status: runner.SubmissionQueued}
	}
	state.Rows = rows
	return state
}

// applySubmissionEvent updates a row with the given event.
func applySubmissionEvent(state State, event runner.SubmissionEvent) State {
	if event.Index < 0 || event.Index >= len(state.Rows) {
		return state
	}
	row := state.Rows[event.Index]
	if event.Path != "" {
		row.Path = event.Path
	}
	if event.StudentID != "" {
		row.StudentID = event.StudentID
	}
	if event.Name != "" {
		row.Name = event.Name
	}
	row.Status = event.Type
	if event.Type == runner.SubmissionAssessing && row.StartedAt.IsZero() {
		row.StartedAt = event.EmittedAt
	}
	if event.Percentage > 0 || event.Type == runner.SubmissionAssessed {
		row.Percentage = event.Percentage
	}
	if event.Standing != nil {
		standing := *event.Standing
		row.Standing = &standing
	}
	if isTerminalStatus(event.Type) {
		row.FinishedAt = event.EmittedAt
		row.Error = event.Error
	}
	state.Rows[event.Index] = row
	return state
}

// isTerminalStatus reports whether a status is final.
func isTerminalStatus(status runner.SubmissionEventType) bool {
	return status == runner.SubmissionDone || status == runner.SubmissionFailed
}

// recount recomputes status counts for the current rows.
func recount(rows []SubmissionRow) StatusCounts {
	var counts StatusCounts
	for _, row := range rows {
		switch row.Status {
		case runner.SubmissionQueued:
			counts.Queued++
		case runner.SubmissionAssessing:
			counts.Assessing++
		case runner.SubmissionAssessed:
			counts.Assessed++
		case runner.SubmissionRendering:
			counts.Rendering++
		case runner.SubmissionDone:
			counts.Done++
		case runner.SubmissionFailed:
			counts.Failed++
		}
	}
	return counts
}

// formatLastEvent creates a short footer message for the event.
func formatLastEvent(event runner.SubmissionEvent) string {
	who := event.StudentID
	if who == "" {
		who = filepath.Base(event.Path)
	}
	switch event.Type {
	case runner.SubmissionAssessed:
		return fmt.Sprintf("%s scored %s", who, formatPercent(event.Percentage))
	case runner.SubmissionDone:
		return fmt.Sprintf("%s report written to %s", who, filepath.Base(event.ReportPath))
	case runner.SubmissionFailed:
		return fmt.Sprintf("%s failed: %s", who, event.Error)
	}
	return ""
}
