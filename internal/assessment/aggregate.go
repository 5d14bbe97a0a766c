package assessment

import (
	"scorecard/internal/taxonomy"
)

// TopicResult is the rollup for one topic of a section.
type TopicResult struct {
	Name  string         `json:"name"`
	Spec  string         `json:"spec"`
	Range taxonomy.Range `json:"range"`
	Stats Stats          `json:"stats"`
}

// SectionResult is the rollup for one section and its topics.
type SectionResult struct {
	Name   string         `json:"name"`
	Range  taxonomy.Range `json:"range"`
	Stats  Stats          `json:"stats"`
	Topics []TopicResult  `json:"topics"`
}

// TopicIssue records a topic skipped during aggregation.
type TopicIssue struct {
	Section string `json:"section"`
	Topic   string `json:"topic"`
	Spec    string `json:"spec"`
	Message string `json:"message"`
}

// Breakdown is the section and topic rollup of a summary.
type Breakdown struct {
	Sections []SectionResult `json:"sections"`
	Issues   []TopicIssue    `json:"issues,omitempty"`
}

// Result combines a summary and its breakdown.
type Result struct {
	Summary   Summary   `json:"summary"`
	Breakdown Breakdown `json:"breakdown"`
}

// Aggregate rolls answered records up into sections and topics in taxonomy
// order. A topic whose spec cannot be parsed is left out and reported in
// Issues; aggregation of the remaining topics continues.
func Aggregate(summary Summary, tax taxonomy.Taxonomy) Breakdown {
	records := summary.Records()
	breakdown := Breakdown{Sections: make([]SectionResult, 0, len(tax.Sections))}
	for _, section := range tax.Sections {
		selected := filter(records, section.Range)
		result := SectionResult{
			Name:   section.Name,
			Range:  section.Range,
			Stats:  rollup(selected),
			Topics: make([]TopicResult, 0, len(section.Topics)),
		}
		for _, topic := range section.Topics {
			r, err := taxonomy.ParseRange(topic.Spec)
			if err != nil {
				breakdown.Issues = append(breakdown.Issues, TopicIssue{
					Section: section.Name,
					Topic:   topic.Name,
					Spec:    topic.Spec,
					Message: err.Error(),
				})
				continue
			}
			result.Topics = append(result.Topics, TopicResult{
				Name:  topic.Name,
				Spec:  topic.Spec,
				Range: r,
				Stats: rollup(filter(selected, r)),
			})
		}
		breakdown.Sections = append(breakdown.Sections, result)
	}
	return breakdown
}

// Evaluate assesses a submission and aggregates it against the taxonomy.
func Evaluate(answers []StudentAnswer, key AnswerKey, tax taxonomy.Taxonomy, opts Options) Result {
	summary := AssessWithOptions(answers, key, tax.TotalQuestions, opts)
	return Result{Summary: summary, Breakdown: Aggregate(summary, tax)}
}

// Section returns the named section result.
func (b Breakdown) Section(name string) (SectionResult, bool) {
	for _, section := range b.Sections {
		if section.Name == name {
			return section, true
		}
	}
	return SectionResult{}, false
}

func filter(records []AnsweredRecord, r taxonomy.Range) []AnsweredRecord {
	var out []AnsweredRecord
	for _, record := range records {
		if r.Contains(record.QuestionID) {
			out = append(out, record)
		}
	}
	return out
}

func rollup(records []AnsweredRecord) Stats {
	var stats Stats
	for _, record := range records {
		stats.add(record)
	}
	stats.finish()
	return stats
}
