package taxonomy

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleJSON = `{
  "total_questions": 10,
  "sections": {
    "Physics": {"range": [1, 5], "topics": {"1-2": "Motion", "5": "Optics", "3-4": "Heat"}},
    "Mathematics": {"range": [6, 10], "topics": {"6-10": "Algebra"}}
  }
}`

const sampleYAML = `total_questions: 10
sections:
  Physics:
    range: [1, 5]
    topics:
      "1-2": Motion
      "5": Optics
      "3-4": Heat
  Mathematics:
    range: [6, 10]
    topics:
      "6-10": Algebra
`

// TestParsePreservesDocumentOrder checks section and topic order survives decoding.
func TestParsePreservesDocumentOrder(t *testing.T) {
	for ext, data := range map[string]string{".json": sampleJSON, ".yml": sampleYAML} {
		tax, err := Parse([]byte(data), ext)
		if err != nil {
			t.Fatalf("%s: parse: %v", ext, err)
		}
		if tax.TotalQuestions != 10 {
			t.Fatalf("%s: expected total 10, got %d", ext, tax.TotalQuestions)
		}
		if got := strings.Join(tax.SectionNames(), ","); got != "Physics,Mathematics" {
			t.Fatalf("%s: unexpected section order %q", ext, got)
		}
		physics, ok := tax.Section("Physics")
		if !ok {
			t.Fatalf("%s: missing Physics", ext)
		}
		if physics.Range != (Range{Start: 1, End: 5}) {
			t.Fatalf("%s: unexpected range %+v", ext, physics.Range)
		}
		var specs []string
		for _, topic := range physics.Topics {
			specs = append(specs, topic.Spec+"="+topic.Name)
		}
		if got := strings.Join(specs, ","); got != "1-2=Motion,5=Optics,3-4=Heat" {
			t.Fatalf("%s: unexpected topic order %q", ext, got)
		}
		if err := Validate(tax); err != nil {
			t.Fatalf("%s: validate: %v", ext, err)
		}
	}
}

// TestSectionsMarshalRoundTripOrder ensures marshalling keeps slice order.
func TestSectionsMarshalRoundTripOrder(t *testing.T) {
	tax, err := Parse([]byte(sampleJSON), ".json")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	data, err := json.Marshal(tax)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Index(string(data), "Physics") > strings.Index(string(data), "Mathematics") {
		t.Fatalf("expected Physics before Mathematics: %s", data)
	}
	if !strings.Contains(string(data), `"range":[1,5]`) {
		t.Fatalf("expected range pair in output: %s", data)
	}
}

// TestParseRejectsMultipleDocuments matches the single-document rule.
func TestParseRejectsMultipleDocuments(t *testing.T) {
	if _, err := Parse([]byte(sampleYAML+"---\n"+sampleYAML), ".yaml"); err == nil {
		t.Fatalf("expected error for multiple yaml documents")
	}
	if _, err := Parse([]byte(sampleJSON+sampleJSON), ".json"); err == nil {
		t.Fatalf("expected error for multiple json documents")
	}
}

// TestParseRejectsBadRangePair requires exactly two range values.
func TestParseRejectsBadRangePair(t *testing.T) {
	data := `{"total_questions": 3, "sections": {"A": {"range": [1], "topics": {}}}}`
	if _, err := Parse([]byte(data), ".json"); err == nil {
		t.Fatalf("expected error for single-value range")
	}
}

// TestLoadValidatesButLoadUncheckedDoesNot separates strict and lenient loading.
func TestLoadValidatesButLoadUncheckedDoesNot(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "metadata.json")
	data := `{"total_questions": 5, "sections": {"A": {"range": [1, 5], "topics": {"abc": "Broken", "1-2": "Fine"}}}}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected validation error")
	} else {
		var validation *ValidationError
		if !errors.As(err, &validation) {
			t.Fatalf("expected ValidationError, got %T", err)
		}
	}
	tax, err := LoadUnchecked(path)
	if err != nil {
		t.Fatalf("load unchecked: %v", err)
	}
	if len(tax.Sections) != 1 || len(tax.Sections[0].Topics) != 2 {
		t.Fatalf("unexpected taxonomy %+v", tax)
	}
}

// TestLoadMissingFile wraps the read error.
func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil || !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}
