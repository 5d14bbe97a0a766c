package insights

import (
	"fmt"
	"hash/fnv"

	"scorecard/internal/assessment"
)

// MaxTips caps the number of tips shown on a report.
const MaxTips = 3

const (
	defaultRangeCategory   = "general"
	defaultSkippedCategory = "moderate"
	defaultSectionCategory = "critical"
)

// Tip is one piece of advice with a display category.
type Tip struct {
	Text     string `json:"text"`
	Category string `json:"category"`
}

// TipInput is what tip selection looks at.
type TipInput struct {
	StudentID      string
	Percentage     float64
	Skipped        int
	TotalQuestions int
	Weak           []assessment.Area
}

// SelectTips picks score, skip, and weak-topic tips, removes duplicate
// texts keeping the first category, and returns at most MaxTips.
func (b TipBook) SelectTips(input TipInput) []Tip {
	var tips []Tip
	for _, r := range b.ScoreRanges {
		if r.Min <= input.Percentage && input.Percentage <= r.Max {
			if len(r.Tips) > 0 {
				tips = append(tips, Tip{
					Text:     pick(r.Tips, input.StudentID, fmt.Sprintf("range:%v-%v", r.Min, r.Max)),
					Category: orDefault(r.Category, defaultRangeCategory),
				})
			}
			break
		}
	}

	if float64(input.Skipped) > float64(input.TotalQuestions)*(b.SkippedThreshold/100) && len(b.SkippedTips) > 0 {
		tips = append(tips, Tip{
			Text:     pick(b.SkippedTips, input.StudentID, "skipped"),
			Category: orDefault(b.SkippedCategory, defaultSkippedCategory),
		})
	}

	for _, area := range input.Weak {
		advice, ok := b.SectionTips[area.Section]
		if !ok || advice.LowAccuracy == "" {
			continue
		}
		tips = append(tips, Tip{
			Text:     fmt.Sprintf("%s (Topic: %s)", advice.LowAccuracy, area.Topic),
			Category: orDefault(b.SectionCategory, defaultSectionCategory),
		})
	}
	return dedupeTips(tips, MaxTips)
}

func dedupeTips(tips []Tip, limit int) []Tip {
	seen := map[string]struct{}{}
	out := make([]Tip, 0, limit)
	for _, tip := range tips {
		if _, ok := seen[tip.Text]; ok {
			continue
		}
		seen[tip.Text] = struct{}{}
		out = append(out, tip)
		if len(out) == limit {
			break
		}
	}
	return out
}

// pick chooses one option, stable for a given student and slot.
func pick(options []string, studentID, slot string) string {
	hash := fnv.New32a()
	hash.Write([]byte(studentID))
	hash.Write([]byte{0})
	hash.Write([]byte(slot))
	return options[hash.Sum32()%uint32(len(options))]
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
