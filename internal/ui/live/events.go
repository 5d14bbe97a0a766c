package live

import "scorecard/internal/runner"

// EventKind identifies the type of live UI event.
type EventKind int

const (
	// EventRunStart signals the start of a run.
	EventRunStart EventKind = iota
	// EventSubmission delivers a submission status update.
	EventSubmission
	// EventRunEnd signals run completion.
	EventRunEnd
)

// Event carries a UI update payload.
type Event struct {
	Kind        EventKind
	RunID       string
	TestName    string
	Submissions []string
	Submission  runner.SubmissionEvent
	Summary     *runner.RunSummary
}
