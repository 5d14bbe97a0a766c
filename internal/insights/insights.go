package insights

import (
	"scorecard/internal/assessment"
	"scorecard/internal/leaderboard"
)

// Input is everything needed to personalise one student's report.
type Input struct {
	StudentID  string
	Name       string
	Result     assessment.Result
	Thresholds assessment.Thresholds
	// Standing is nil when the student is unranked or beyond the display cap.
	Standing *leaderboard.Standing
}

// SectionHighlight names a section and its accuracy.
type SectionHighlight struct {
	Section  string  `json:"section"`
	Accuracy float64 `json:"accuracy"`
}

// Insights is the personalised text for a report.
type Insights struct {
	Percentage     float64               `json:"percentage"`
	Message        string                `json:"message"`
	Tips           []Tip                 `json:"tips"`
	Quotes         []string              `json:"quotes"`
	Weak           []assessment.Area     `json:"weak"`
	Strengths      []assessment.Area     `json:"strengths"`
	Highest        *SectionHighlight     `json:"highest,omitempty"`
	Critical       *assessment.Area      `json:"critical,omitempty"`
	Standing       *leaderboard.Standing `json:"standing,omitempty"`
	Badge          *Badge                `json:"badge,omitempty"`
	InstructorNote string                `json:"instructor_note,omitempty"`
}

// Build derives every insight for one student from the library.
func (l Library) Build(input Input) Insights {
	summary := input.Result.Summary
	percentage := leaderboard.Percentage(summary.Correct, summary.TotalQuestions)
	weak := input.Result.Breakdown.WeakAreas(input.Thresholds)
	out := Insights{
		Percentage: percentage,
		Message:    SummaryMessage(percentage, input.Name),
		Tips: l.Tips.SelectTips(TipInput{
			StudentID:      input.StudentID,
			Percentage:     percentage,
			Skipped:        summary.Skipped,
			TotalQuestions: summary.TotalQuestions,
			Weak:           weak,
		}),
		Quotes:    l.Quotes.Personalised(percentage, input.Name),
		Weak:      weak,
		Strengths: input.Result.Breakdown.StrengthAreas(input.Thresholds),
		Highest:   highestSection(input.Result.Breakdown),
		Critical:  mostCritical(weak),
	}
	if input.Standing != nil {
		standing := *input.Standing
		out.Standing = &standing
		if badge, ok := BadgeFor(l.Badges, standing.Rank); ok {
			out.Badge = &badge
		}
	}
	if note, ok := NoteFor(l.Notes, input.StudentID); ok {
		out.InstructorNote = note
	}
	return out
}

func highestSection(breakdown assessment.Breakdown) *SectionHighlight {
	var best *SectionHighlight
	for _, section := range breakdown.Sections {
		if best == nil || section.Stats.Accuracy > best.Accuracy {
			best = &SectionHighlight{Section: section.Name, Accuracy: section.Stats.Accuracy}
		}
	}
	return best
}

func mostCritical(weak []assessment.Area) *assessment.Area {
	var worst *assessment.Area
	for i := range weak {
		if worst == nil || weak[i].Stats.Accuracy < worst.Stats.Accuracy {
			area := weak[i]
			worst = &area
		}
	}
	return worst
}
