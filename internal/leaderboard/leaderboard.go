package leaderboard

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"scorecard/internal/assessment"
)

// DefaultDisplayCap limits how many ranks are shown to students.
const DefaultDisplayCap = 100

// ErrEmptyStudentNumber is returned when an entry has no student number.
var ErrEmptyStudentNumber = errors.New("leaderboard entry has no student number")

// Entry is one student's overall score on an exam.
type Entry struct {
	StudentNumber string    `json:"student_number"`
	Name          string    `json:"name"`
	Correct       int       `json:"correct"`
	Total         int       `json:"total"`
	Percentage    float64   `json:"percentage"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewEntry builds an entry with its percentage derived from correct/total.
func NewEntry(number, name string, correct, total int, at time.Time) Entry {
	return Entry{
		StudentNumber: strings.TrimSpace(number),
		Name:          strings.TrimSpace(name),
		Correct:       correct,
		Total:         total,
		Percentage:    Percentage(correct, total),
		UpdatedAt:     at.UTC(),
	}
}

// Percentage returns correct/total*100 rounded to two places, 0 for an empty exam.
func Percentage(correct, total int) float64 {
	if total <= 0 {
		return 0
	}
	return assessment.Round2(float64(correct) / float64(total) * 100)
}

// SectionScore is a per-section result stored alongside an entry.
type SectionScore struct {
	Section   string  `json:"section"`
	Attempted int     `json:"attempted"`
	Correct   int     `json:"correct"`
	Incorrect int     `json:"incorrect"`
	Skipped   int     `json:"skipped"`
	Accuracy  float64 `json:"accuracy"`
}

// SectionScores flattens a breakdown into storable rows.
func SectionScores(breakdown assessment.Breakdown) []SectionScore {
	scores := make([]SectionScore, 0, len(breakdown.Sections))
	for _, section := range breakdown.Sections {
		scores = append(scores, SectionScore{
			Section:   section.Name,
			Attempted: section.Stats.Attempted,
			Correct:   section.Stats.Correct,
			Incorrect: section.Stats.Incorrect,
			Skipped:   section.Stats.Skipped,
			Accuracy:  section.Stats.Accuracy,
		})
	}
	return scores
}

// Store persists leaderboard entries keyed by student number.
type Store interface {
	// Upsert inserts the entry or replaces the stored scores and name.
	Upsert(ctx context.Context, entry Entry) error
	Entries(ctx context.Context) ([]Entry, error)
	Close() error
}

// SectionRecorder is implemented by stores that keep per-section scores.
type SectionRecorder interface {
	RecordSections(ctx context.Context, studentNumber string, scores []SectionScore) error
}

// Standing is a student's displayed rank.
type Standing struct {
	Rank  int `json:"rank"`
	Total int `json:"total"`
}

// Sort orders entries by percentage descending, then student number.
func Sort(entries []Entry) []Entry {
	sorted := append([]Entry(nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Percentage != sorted[j].Percentage {
			return sorted[i].Percentage > sorted[j].Percentage
		}
		return sorted[i].StudentNumber < sorted[j].StudentNumber
	})
	return sorted
}

// Rank returns the 1-based position of number. When more than displayCap
// students are ranked, positions beyond the cap are hidden and the total is
// reported as the cap. A non-positive cap disables capping.
func Rank(entries []Entry, number string, displayCap int) (Standing, bool) {
	sorted := Sort(entries)
	for i, entry := range sorted {
		if entry.StudentNumber != number {
			continue
		}
		standing := Standing{Rank: i + 1, Total: len(sorted)}
		if displayCap > 0 && standing.Total > displayCap {
			if standing.Rank > displayCap {
				return Standing{}, false
			}
			standing.Total = displayCap
		}
		return standing, true
	}
	return Standing{}, false
}

// RankedEntry is an entry with its displayed position.
type RankedEntry struct {
	Rank int `json:"rank"`
	Entry
}

// Ranked returns the sorted leaderboard truncated to displayCap rows. A
// non-positive cap returns every row.
func Ranked(entries []Entry, displayCap int) []RankedEntry {
	sorted := Sort(entries)
	if displayCap > 0 && len(sorted) > displayCap {
		sorted = sorted[:displayCap]
	}
	out := make([]RankedEntry, 0, len(sorted))
	for i, entry := range sorted {
		out = append(out, RankedEntry{Rank: i + 1, Entry: entry})
	}
	return out
}
