package live

import (
	"strings"
	"testing"
	"time"

	"scorecard/internal/leaderboard"
	"scorecard/internal/runner"
	"scorecard/internal/testutil"
)

// TestReduceSubmissionLifecycle verifies status transitions are recorded.
func TestReduceSubmissionLifecycle(t *testing.T) {
	runWithTimeout(t, time.Second, func() {
		start := time.Now()
		state := Seed(State{}, []string{"data/student_answers_1001.json", "data/student_answers_1002.json"})
		if state.Counts.Queued != 2 || state.Rows[1].StudentID != "1002" {
			t.Fatalf("unexpected seeded state %+v", state)
		}
		state = Reduce(state, event(0, runner.SubmissionAssessing, start))
		assessed := event(0, runner.SubmissionAssessed, start.Add(50*time.Millisecond))
		assessed.Percentage = 75
		state = Reduce(state, assessed)
		rendering := event(0, runner.SubmissionRendering, start.Add(60*time.Millisecond))
		rendering.Percentage = 75
		rendering.Standing = &leaderboard.Standing{Rank: 1, Total: 2}
		state = Reduce(state, rendering)
		done := event(0, runner.SubmissionDone, start.Add(100*time.Millisecond))
		done.Percentage = 75
		done.ReportPath = "reports/Test_Report_Ayesha.html"
		state = Reduce(state, done)

		row := state.Rows[0]
		if row.Status != runner.SubmissionDone || row.Percentage != 75 {
			t.Fatalf("unexpected row %+v", row)
		}
		if formatRank(row) != "1/2" {
			t.Fatalf("unexpected rank cell %q", formatRank(row))
		}
		if formatRowDuration(row, time.Now()) != "100ms" {
			t.Fatalf("unexpected duration %q", formatRowDuration(row, time.Now()))
		}
		if state.Counts.Done != 1 || state.Counts.Queued != 1 {
			t.Fatalf("unexpected counts %+v", state.Counts)
		}
		if !strings.Contains(state.LastEvent, "Test_Report_Ayesha.html") {
			t.Fatalf("unexpected last event %q", state.LastEvent)
		}
	})
}

// TestReduceFailure verifies failures keep their error text.
func TestReduceFailure(t *testing.T) {
	runWithTimeout(t, time.Second, func() {
		state := State{}
		failed := event(2, runner.SubmissionFailed, time.Now())
		failed.Error = "schema violation"
		state = Reduce(state, failed)
		if len(state.Rows) != 3 {
			t.Fatalf("expected rows to grow to index, got %d", len(state.Rows))
		}
		if state.Rows[2].Error != "schema violation" || state.Counts.Failed != 1 || state.Counts.Queued != 2 {
			t.Fatalf("unexpected state %+v", state)
		}
		if formatScore(state.Rows[2]) != "" {
			t.Fatalf("failed rows have no score")
		}
		if got := formatStatus(state.Rows[2], true); got != "failed: schema violation" {
			t.Fatalf("unexpected status %q", got)
		}
	})
}

// TestModelAppliesEvents verifies the model folds run events into state.
func TestModelAppliesEvents(t *testing.T) {
	model := NewModel(nil, Options{NoColor: true})
	model = applyEvent(model, Event{Kind: EventRunStart, RunID: "run-1", TestName: "Entry Test", Submissions: []string{"student_answers_7.json"}})
	model = applyEvent(model, Event{Kind: EventSubmission, Submission: event(0, runner.SubmissionAssessing, time.Now())})
	model = applyEvent(model, Event{Kind: EventRunEnd, Summary: &runner.RunSummary{SubmissionsTotal: 1, AveragePercentage: 50}})

	state := model.State()
	if state.RunID != "run-1" || state.Counts.Assessing != 1 || state.Summary == nil {
		t.Fatalf("unexpected state %+v", state)
	}
	view := model.View()
	if !strings.Contains(view, "Entry Test") || !strings.Contains(view, "Average: 50.00%") {
		t.Fatalf("unexpected view:\n%s", view)
	}
}

// event builds a SubmissionEvent for testing.
func event(index int, kind runner.SubmissionEventType, when time.Time) runner.SubmissionEvent {
	return runner.SubmissionEvent{
		Index:     index,
		StudentID: "100" + fmtInt(index+1),
		Type:      kind,
		EmittedAt: when,
	}
}

// runWithTimeout executes a test body with a timeout.
func runWithTimeout(t *testing.T, timeout time.Duration, fn func()) {
	t.Helper()
	ctx := testutil.Context(t, timeout)
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn()
	}()
	select {
	case <-done:
	case <-ctx.Done():
		t.Fatalf("test timed out")
	}
}
