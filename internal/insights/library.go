package insights

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

//go:embed defaults/*.json
var defaultFiles embed.FS

// ScoreRange selects tips for an overall percentage within [Min, Max].
type ScoreRange struct {
	Min      float64  `json:"min"`
	Max      float64  `json:"max"`
	Tips     []string `json:"tips"`
	Category string   `json:"category"`
}

// SectionTip holds advice for one section.
type SectionTip struct {
	LowAccuracy string `json:"low_accuracy"`
}

// TipBook is the tips.json document.
type TipBook struct {
	ScoreRanges      []ScoreRange          `json:"score_ranges"`
	SkippedThreshold float64               `json:"skipped_threshold"`
	SkippedTips      []string              `json:"skipped_tips"`
	SkippedCategory  string                `json:"skipped_category"`
	SectionTips      map[string]SectionTip `json:"section_tips"`
	SectionCategory  string                `json:"section_category"`
}

// QuoteBook groups motivational quotes by performance band.
type QuoteBook struct {
	Low      []string `json:"low"`
	Moderate []string `json:"moderate"`
	High     []string `json:"high"`
}

// Badge decorates a rank range.
type Badge struct {
	MinRank     int    `json:"min_rank"`
	MaxRank     int    `json:"max_rank"`
	Text        string `json:"text"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

// Note is an instructor message for one student.
type Note struct {
	StudentID studentID `json:"student_id"`
	Message   string    `json:"message"`
}

// Library bundles every text source used to personalise a report.
type Library struct {
	Tips   TipBook
	Quotes QuoteBook
	Badges []Badge
	Notes  []Note
}

// Paths locates library files. Empty or missing files use the embedded defaults.
type Paths struct {
	Tips   string
	Quotes string
	Badges string
	Notes  string
}

// DefaultLibrary returns the embedded library.
func DefaultLibrary() (Library, error) {
	return LoadLibrary(Paths{})
}

// LoadLibrary reads each library file, falling back to the embedded copy
// when a path is empty or the file does not exist.
func LoadLibrary(paths Paths) (Library, error) {
	var lib Library
	if err := loadJSON(paths.Tips, "tips.json", &lib.Tips); err != nil {
		return Library{}, err
	}
	if err := loadJSON(paths.Quotes, "quotes.json", &lib.Quotes); err != nil {
		return Library{}, err
	}
	if err := loadJSON(paths.Badges, "badges.json", &lib.Badges); err != nil {
		return Library{}, err
	}
	notes, err := loadNotes(paths.Notes)
	if err != nil {
		return Library{}, err
	}
	lib.Notes = notes
	return lib, nil
}

func readOrDefault(path, name string) ([]byte, error) {
	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
	}
	data, err := defaultFiles.ReadFile("defaults/" + name)
	if err != nil {
		return nil, fmt.Errorf("read default %s: %w", name, err)
	}
	return data, nil
}

func loadJSON(path, name string, target any) error {
	data, err := readOrDefault(path, name)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

// loadNotes accepts either a bare array or {"notes": [...]}.
func loadNotes(path string) ([]Note, error) {
	data, err := readOrDefault(path, "instructor_notes.json")
	if err != nil {
		return nil, err
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var wrapped struct {
			Notes []Note `json:"notes"`
		}
		if err := json.Unmarshal(trimmed, &wrapped); err != nil {
			return nil, fmt.Errorf("parse instructor_notes.json: %w", err)
		}
		return wrapped.Notes, nil
	}
	var notes []Note
	if err := json.Unmarshal(trimmed, &notes); err != nil {
		return nil, fmt.Errorf("parse instructor_notes.json: %w", err)
	}
	return notes, nil
}

// studentID decodes either a JSON string or number.
type studentID string

func (id *studentID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*id = studentID(strings.TrimSpace(text))
		return nil
	}
	var number json.Number
	if err := json.Unmarshal(data, &number); err != nil {
		return fmt.Errorf("student_id: %w", err)
	}
	*id = studentID(number.String())
	return nil
}
