package insights

import (
	"fmt"
	"strconv"
	"strings"
)

// Quote bands.
const (
	QuoteLow      = "low"
	QuoteModerate = "moderate"
	QuoteHigh     = "high"
)

// MaxQuotes caps the number of quotes shown on a report.
const MaxQuotes = 2

// QuoteCategory maps an overall percentage to a quote band.
func QuoteCategory(percentage float64) string {
	switch {
	case percentage < 40:
		return QuoteLow
	case percentage <= 70:
		return QuoteModerate
	default:
		return QuoteHigh
	}
}

// Personalised returns the first quotes of the band addressed to name.
func (q QuoteBook) Personalised(percentage float64, name string) []string {
	var source []string
	switch QuoteCategory(percentage) {
	case QuoteLow:
		source = q.Low
	case QuoteModerate:
		source = q.Moderate
	default:
		source = q.High
	}
	if len(source) > MaxQuotes {
		source = source[:MaxQuotes]
	}
	out := make([]string, 0, len(source))
	for _, quote := range source {
		out = append(out, personalise(quote, name))
	}
	return out
}

func personalise(quote, name string) string {
	if strings.Contains(quote, "You're") {
		return strings.ReplaceAll(quote, "You're", name+", you're")
	}
	return name + ", " + quote
}

// SummaryMessage greets the student according to their overall percentage.
func SummaryMessage(percentage float64, name string) string {
	switch {
	case percentage > 70:
		return fmt.Sprintf("Great job, %s!", name)
	case percentage < 40:
		return fmt.Sprintf("Keep improving, %s!", name)
	default:
		return fmt.Sprintf("Good effort, %s! Let's target those weak areas.", name)
	}
}

// BadgeFor returns the first badge covering rank with {rank} filled in.
func BadgeFor(badges []Badge, rank int) (Badge, bool) {
	for _, badge := range badges {
		if badge.MinRank <= rank && rank <= badge.MaxRank {
			badge.Text = strings.ReplaceAll(badge.Text, "{rank}", strconv.Itoa(rank))
			return badge, true
		}
	}
	return Badge{}, false
}

// NoteFor returns the first instructor message for the student.
func NoteFor(notes []Note, studentID string) (string, bool) {
	if studentID == "" {
		return "", false
	}
	for _, note := range notes {
		if string(note.StudentID) == studentID {
			return note.Message, true
		}
	}
	return "", false
}
