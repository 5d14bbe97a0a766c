package question

// Bank is the question bank loaded from a flat JSON or YAML array.
type Bank struct {
	Questions []Question
}

// Question is a single bank entry. The correct answer is read from "answer"
// and falls back to "correct_answer".
type Question struct {
	ID            ID     `json:"id" yaml:"id"`
	Prompt        string `json:"question,omitempty" yaml:"question,omitempty"`
	Answer        string `json:"answer,omitempty" yaml:"answer,omitempty"`
	CorrectAnswer string `json:"correct_answer,omitempty" yaml:"correct_answer,omitempty"`
}

// AnswerKey returns the question id to correct answer mapping.
func (b Bank) AnswerKey() map[int]string {
	key := make(map[int]string, len(b.Questions))
	for _, q := range b.Questions {
		key[int(q.ID)] = q.Answer
	}
	return key
}

// Len returns the number of questions in the bank.
func (b Bank) Len() int {
	return len(b.Questions)
}
