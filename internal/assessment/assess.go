package assessment

// Options tunes assessment beyond the plain contract.
type Options struct {
	// ImplicitSkips records every key id in [1, total] that the submission
	// omits as a skipped answer.
	ImplicitSkips bool
}

// Assess classifies each submitted answer against the key. Answers for ids
// not in the key are ignored. When an id appears more than once the last
// entry wins.
func Assess(answers []StudentAnswer, key AnswerKey, totalQuestions int) Summary {
	return AssessWithOptions(answers, key, totalQuestions, Options{})
}

// AssessWithOptions is Assess with optional reconciliation against totalQuestions.
func AssessWithOptions(answers []StudentAnswer, key AnswerKey, totalQuestions int, opts Options) Summary {
	records := make(map[int]AnsweredRecord, len(answers))
	for _, answer := range answers {
		expected, ok := key[answer.QuestionID]
		if !ok {
			continue
		}
		records[answer.QuestionID] = AnsweredRecord{
			QuestionID:     answer.QuestionID,
			SelectedOption: answer.SelectedOption,
			Correctness:    classify(answer.SelectedOption, expected),
		}
	}
	if opts.ImplicitSkips {
		for id := 1; id <= totalQuestions; id++ {
			if _, ok := key[id]; !ok {
				continue
			}
			if _, seen := records[id]; seen {
				continue
			}
			records[id] = AnsweredRecord{
				QuestionID:     id,
				SelectedOption: SkippedOption,
				Correctness:    Skipped,
				Implicit:       true,
			}
		}
	}

	var totals Stats
	for _, record := range records {
		totals.add(record)
	}
	return Summary{
		TotalQuestions: totalQuestions,
		Attempted:      totals.Attempted,
		Correct:        totals.Correct,
		Incorrect:      totals.Incorrect,
		Skipped:        totals.Skipped,
		Answers:        records,
	}
}

func classify(selected, expected string) Correctness {
	switch selected {
	case SkippedOption:
		return Skipped
	case expected:
		return Correct
	default:
		return Incorrect
	}
}
