package runner

import (
	"fmt"
	"strconv"
	"strings"

	"scorecard/internal/assessment"
	"scorecard/internal/config"
	"scorecard/internal/duckdb"
	"scorecard/internal/insights"
	"scorecard/internal/question"
	"scorecard/internal/spec"
	"scorecard/internal/taxonomy"
)

// Inputs are the exam-wide files a run scores against.
type Inputs struct {
	Bank     question.Bank
	Key      assessment.AnswerKey
	Taxonomy taxonomy.Taxonomy
	Library  insights.Library
	// Unscored lists bank ids outside 1..total_questions. They are left out
	// of Key so a score never exceeds the question count.
	Unscored []int
}

// KeyWarning describes the unscored bank ids, or returns "" when there are none.
func (in Inputs) KeyWarning() string {
	if len(in.Unscored) == 0 {
		return ""
	}
	ids := make([]string, 0, len(in.Unscored))
	for i, id := range in.Unscored {
		if i == 10 {
			ids = append(ids, "...")
			break
		}
		ids = append(ids, strconv.Itoa(id))
	}
	return fmt.Sprintf("question bank has %d ids outside 1..%d, not scored: %s",
		len(in.Unscored), in.Taxonomy.TotalQuestions, strings.Join(ids, ", "))
}

// Exam returns the identity used to scope leaderboard rows.
func (in Inputs) Exam(name string) duckdb.Exam {
	return duckdb.Exam{
		Name: name,
		Spec: duckdb.ExamSpec{AnswerKey: in.Key, Taxonomy: in.Taxonomy},
	}
}

// LoadInputs loads the question bank, taxonomy, and insight library named
// by cfg. Paths are resolved against repoRoot.
func LoadInputs(cfg spec.Config, repoRoot string) (Inputs, error) {
	bank, err := question.LoadBank(config.ResolvePath(repoRoot, cfg.Inputs.Questions))
	if err != nil {
		return Inputs{}, err
	}

	metadataPath := config.ResolvePath(repoRoot, cfg.Inputs.Metadata)
	var tax taxonomy.Taxonomy
	if cfg.Taxonomy.StrictEnabled() {
		tax, err = taxonomy.Load(metadataPath)
	} else {
		tax, err = taxonomy.LoadUnchecked(metadataPath)
	}
	if err != nil {
		return Inputs{}, err
	}

	library, err := insights.LoadLibrary(insights.Paths{
		Tips:   config.ResolvePath(repoRoot, cfg.Insights.Tips),
		Quotes: config.ResolvePath(repoRoot, cfg.Insights.Quotes),
		Badges: config.ResolvePath(repoRoot, cfg.Insights.Badges),
		Notes:  config.ResolvePath(repoRoot, cfg.Insights.InstructorNotes),
	})
	if err != nil {
		return Inputs{}, err
	}

	key, unscored := assessment.AnswerKey(bank.AnswerKey()).Within(tax.TotalQuestions)
	return Inputs{
		Bank:     bank,
		Key:      key,
		Taxonomy: tax,
		Library:  library,
		Unscored: unscored,
	}, nil
}
