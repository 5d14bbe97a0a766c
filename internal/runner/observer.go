package runner

import (
	"sync"
	"time"

	"scorecard/internal/leaderboard"
)

// SubmissionEventType identifies a submission status update for observers.
type SubmissionEventType string

const (
	// SubmissionQueued marks a discovered submission not yet started.
	SubmissionQueued SubmissionEventType = "queued"
	// SubmissionAssessing marks loading and scoring in progress.
	SubmissionAssessing SubmissionEventType = "assessing"
	// SubmissionAssessed marks a scored submission waiting for its rank.
	SubmissionAssessed SubmissionEventType = "assessed"
	// SubmissionRendering marks report rendering in progress.
	SubmissionRendering SubmissionEventType = "rendering"
	// SubmissionDone marks a written report.
	SubmissionDone SubmissionEventType = "done"
	// SubmissionFailed marks a submission that could not be processed.
	SubmissionFailed SubmissionEventType = "failed"
)

// SubmissionEvent carries a single status update for a submission.
type SubmissionEvent struct {
	Index      int
	Path       string
	StudentID  string
	Name       string
	Type       SubmissionEventType
	Percentage float64
	Standing   *leaderboard.Standing
	ReportPath string
	Error      string
	EmittedAt  time.Time
}

// RunObserver receives run lifecycle events for UI or logging.
type RunObserver interface {
	// OnRunStart signals the start of a run.
	OnRunStart(runID string, testName string, submissions []string)
	// OnSubmissionEvent delivers a submission status update.
	OnSubmissionEvent(event SubmissionEvent)
	// OnRunEnd signals run completion.
	OnRunEnd(results Results)
}

// eventEmitter serializes observer calls from concurrent workers.
type eventEmitter struct {
	mu       sync.Mutex
	observer RunObserver
	now      func() time.Time
}

func (e *eventEmitter) emit(event SubmissionEvent) {
	if e == nil || e.observer == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	event.EmittedAt = e.now()
	e.observer.OnSubmissionEvent(event)
}

func (e *eventEmitter) start(runID, testName string, submissions []string) {
	if e == nil || e.observer == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.observer.OnRunStart(runID, testName, submissions)
}

func (e *eventEmitter) end(results Results) {
	if e == nil || e.observer == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.observer.OnRunEnd(results)
}
