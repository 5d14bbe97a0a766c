package report

import (
	"scorecard/internal/assessment"
	"scorecard/internal/insights"
)

// Input is the assessed data for one student's report.
type Input struct {
	Title       string
	TestName    string
	TestDate    string
	GeneratedAt string
	StudentID   string
	StudentName string
	Result      assessment.Result
	Insights    insights.Insights
}

// Model is the view model rendered by Page.
type Model struct {
	Title       string
	TestName    string
	TestDate    string
	GeneratedAt string
	StudentID   string
	StudentName string
	Summary     SummaryView
	Message     string
	Sections    []SectionView
	Tips        []insights.Tip
	Quotes      []string
	Rank        *RankView
	Note        string
	Highest     *insights.SectionHighlight
	Critical    *assessment.Area
	Strengths   []assessment.Area
	Weak        []assessment.Area
	Warnings    []string
	Charts      Charts
}

// SummaryView holds the overall counts.
type SummaryView struct {
	Total      int
	Attempted  int
	Correct    int
	Incorrect  int
	Skipped    int
	Percentage float64
}

// SectionView is one row of the section table with its topics.
type SectionView struct {
	Name   string
	Color  string
	Range  string
	Stats  assessment.Stats
	Topics []TopicView
}

// TopicView is one topic row.
type TopicView struct {
	Name     string
	Spec     string
	Stats    assessment.Stats
	Weak     bool
	Strength bool
}

// RankView is the displayed rank and badge.
type RankView struct {
	Rank             int
	Total            int
	BadgeText        string
	BadgeColor       string
	BadgeDescription string
}

// BuildModel shapes assessment results and insights for rendering.
func BuildModel(input Input) Model {
	summary := input.Result.Summary
	ins := input.Insights
	model := Model{
		Title:       input.Title,
		TestName:    input.TestName,
		TestDate:    input.TestDate,
		GeneratedAt: input.GeneratedAt,
		StudentID:   input.StudentID,
		StudentName: input.StudentName,
		Summary: SummaryView{
			Total:      summary.TotalQuestions,
			Attempted:  summary.Attempted,
			Correct:    summary.Correct,
			Incorrect:  summary.Incorrect,
			Skipped:    summary.Skipped,
			Percentage: ins.Percentage,
		},
		Message:   ins.Message,
		Tips:      ins.Tips,
		Quotes:    ins.Quotes,
		Note:      ins.InstructorNote,
		Highest:   ins.Highest,
		Critical:  ins.Critical,
		Strengths: ins.Strengths,
		Weak:      ins.Weak,
	}

	weak := areaSet(ins.Weak)
	strong := areaSet(ins.Strengths)
	for _, section := range input.Result.Breakdown.Sections {
		view := SectionView{
			Name:  section.Name,
			Color: SectionColor(section.Name),
			Range: section.Range.String(),
			Stats: section.Stats,
		}
		for _, topic := range section.Topics {
			key := areaKey{section: section.Name, topic: topic.Name}
			view.Topics = append(view.Topics, TopicView{
				Name:     topic.Name,
				Spec:     topic.Spec,
				Stats:    topic.Stats,
				Weak:     weak[key],
				Strength: strong[key],
			})
		}
		model.Sections = append(model.Sections, view)
	}

	for _, issue := range input.Result.Breakdown.Issues {
		model.Warnings = append(model.Warnings, "Topic "+issue.Topic+" in "+issue.Section+" was skipped: "+issue.Message)
	}

	if ins.Standing != nil {
		rank := &RankView{Rank: ins.Standing.Rank, Total: ins.Standing.Total}
		if ins.Badge != nil {
			rank.BadgeText = ins.Badge.Text
			rank.BadgeColor = ins.Badge.Color
			rank.BadgeDescription = ins.Badge.Description
		}
		model.Rank = rank
	}

	model.Charts = buildCharts(model)
	return model
}

type areaKey struct {
	section string
	topic   string
}

func areaSet(areas []assessment.Area) map[areaKey]bool {
	set := make(map[areaKey]bool, len(areas))
	for _, area := range areas {
		set[areaKey{section: area.Section, topic: area.Topic}] = true
	}
	return set
}
