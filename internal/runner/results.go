package runner

import (
	"time"

	"scorecard/internal/assessment"
	"scorecard/internal/leaderboard"
)

// Submission statuses recorded in results.json.
const (
	StatusDone   = "done"
	StatusFailed = "failed"
)

type Results struct {
	RunID       string             `json:"run_id"`
	TestName    string             `json:"test_name"`
	ExamKey     string             `json:"exam_key,omitempty"`
	StartedAt   time.Time          `json:"started_at"`
	FinishedAt  time.Time          `json:"finished_at"`
	Submissions []SubmissionResult `json:"submissions"`
	Summary     RunSummary         `json:"summary"`
}

type SubmissionResult struct {
	Path          string                `json:"path"`
	StudentID     string                `json:"student_id"`
	Name          string                `json:"name"`
	Status        string                `json:"status"`
	FailureReason *string               `json:"failure_reason"`
	Percentage    float64               `json:"percentage"`
	Standing      *leaderboard.Standing `json:"standing,omitempty"`
	ReportPath    string                `json:"report_path,omitempty"`
	Result        *assessment.Result    `json:"result,omitempty"`
}

type RunSummary struct {
	SubmissionsTotal  int     `json:"submissions_total"`
	SubmissionsDone   int     `json:"submissions_done"`
	SubmissionsFailed int     `json:"submissions_failed"`
	AveragePercentage float64 `json:"average_percentage"`
	TopicIssues       int     `json:"topic_issues"`
}

func summarize(submissions []SubmissionResult) RunSummary {
	summary := RunSummary{SubmissionsTotal: len(submissions)}
	var total float64
	for _, sub := range submissions {
		if sub.Status != StatusDone {
			summary.SubmissionsFailed++
			continue
		}
		summary.SubmissionsDone++
		total += sub.Percentage
		if sub.Result != nil {
			summary.TopicIssues += len(sub.Result.Breakdown.Issues)
		}
	}
	if summary.SubmissionsDone > 0 {
		summary.AveragePercentage = assessment.Round2(total / float64(summary.SubmissionsDone))
	}
	return summary
}
