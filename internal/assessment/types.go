package assessment

import (
	"math"
	"sort"
)

// SkippedOption is the selected_option value recording a skipped question.
const SkippedOption = "skipped"

// Correctness classifies one answered question.
type Correctness string

const (
	Correct   Correctness = "correct"
	Incorrect Correctness = "incorrect"
	Skipped   Correctness = "skipped"
)

// StudentAnswer is one entry of a student's submission.
type StudentAnswer struct {
	QuestionID     int    `json:"question_id"`
	SelectedOption string `json:"selected_option"`
}

// AnswerKey maps question ids to their correct option.
type AnswerKey map[int]string

// Within returns the entries with ids in [1, total] and the ascending ids
// that fall outside.
func (k AnswerKey) Within(total int) (AnswerKey, []int) {
	kept := make(AnswerKey, len(k))
	var dropped []int
	for id, option := range k {
		if id < 1 || id > total {
			dropped = append(dropped, id)
			continue
		}
		kept[id] = option
	}
	sort.Ints(dropped)
	return kept, dropped
}

// AnsweredRecord is the classification of one submitted answer.
type AnsweredRecord struct {
	QuestionID     int         `json:"question_id"`
	SelectedOption string      `json:"selected_option"`
	Correctness    Correctness `json:"correctness"`
	// Implicit marks a skip synthesised for an id missing from the submission.
	Implicit bool `json:"implicit,omitempty"`
}

// Summary holds overall counts and per-question records for one submission.
type Summary struct {
	TotalQuestions int                    `json:"total_questions"`
	Attempted      int                    `json:"attempted"`
	Correct        int                    `json:"correct"`
	Incorrect      int                    `json:"incorrect"`
	Skipped        int                    `json:"skipped"`
	Answers        map[int]AnsweredRecord `json:"answers"`
}

// Records returns the answered records ordered by question id.
func (s Summary) Records() []AnsweredRecord {
	records := make([]AnsweredRecord, 0, len(s.Answers))
	for _, record := range s.Answers {
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].QuestionID < records[j].QuestionID })
	return records
}

// Stats are the rollup counts for a section or topic.
type Stats struct {
	Attempted int     `json:"attempted"`
	Correct   int     `json:"correct"`
	Incorrect int     `json:"incorrect"`
	Skipped   int     `json:"skipped"`
	Accuracy  float64 `json:"accuracy"`
}

func (s *Stats) add(record AnsweredRecord) {
	switch record.Correctness {
	case Correct:
		s.Correct++
		s.Attempted++
	case Incorrect:
		s.Incorrect++
		s.Attempted++
	case Skipped:
		s.Skipped++
	}
}

func (s *Stats) finish() {
	s.Accuracy = Accuracy(s.Correct, s.Attempted)
}

// Accuracy returns correct/attempted as a percentage rounded to two places,
// or 0 when nothing was attempted.
func Accuracy(correct, attempted int) float64 {
	if attempted <= 0 {
		return 0
	}
	return Round2(float64(correct) / float64(attempted) * 100)
}

// Round2 rounds to two decimal places.
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}
