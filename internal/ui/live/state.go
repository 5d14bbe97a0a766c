package live

import (
	"time"

	"scorecard/internal/leaderboard"
	"scorecard/internal/runner"
)

// SubmissionRow holds UI state for a single submission.
type SubmissionRow struct {
	Index      int
	Path       string
	StudentID  string
	Name       string
	Status     runner.SubmissionEventType
	Percentage float64
	Standing   *leaderboard.Standing
	StartedAt  time.Time
	FinishedAt time.Time
	Error      string
}

// StatusCounts aggregates counts by status bucket.
type StatusCounts struct {
	Queued    int
	Assessing int
	Assessed  int
	Rendering int
	Done      int
	Failed    int
}

// State captures the live UI state for a run.
type State struct {
	RunID     string
	TestName  string
	StartedAt time.Time
	LastEvent string
	Rows      []SubmissionRow
	Counts    StatusCounts
	Summary   *runner.RunSummary
}
