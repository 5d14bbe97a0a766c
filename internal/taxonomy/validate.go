package taxonomy

import (
	"fmt"
	"sort"
	"strings"
)

// Issue captures a validation problem in a taxonomy.
type Issue struct {
	Field   string
	Message string
}

// ValidationError reports load-time taxonomy problems. It is distinct from the
// per-topic issues recorded while aggregating.
type ValidationError struct {
	Issues []Issue
}

// Error returns a readable message for validation failures.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "taxonomy validation failed"
	}
	parts := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return fmt.Sprintf("taxonomy validation failed: %s", strings.Join(parts, "; "))
}

type issueCollector struct {
	issues []Issue
}

func (c *issueCollector) add(field, message string) {
	c.issues = append(c.issues, Issue{Field: field, Message: message})
}

func (c *issueCollector) result() error {
	if len(c.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: c.issues}
}

// Validate checks that sections partition 1..total_questions and that every
// topic spec parses, lies inside its section, and does not overlap a sibling.
func Validate(t Taxonomy) error {
	collector := &issueCollector{}
	if t.TotalQuestions <= 0 {
		collector.add("total_questions", "must be positive")
	}
	if len(t.Sections) == 0 {
		collector.add("sections", "must include at least one entry")
	}

	names := map[string]struct{}{}
	var spans []namedRange
	for i, section := range t.Sections {
		field := sectionField(i, section.Name)
		if section.Name == "" {
			collector.add(field+".name", "is required")
		} else if _, exists := names[section.Name]; exists {
			collector.add(field, "duplicate section name")
		} else {
			names[section.Name] = struct{}{}
		}

		if validateSectionRange(section.Range, t.TotalQuestions, field, collector.add) {
			spans = append(spans, namedRange{name: field, rng: section.Range})
		}
		validateTopics(section, field, collector.add)
	}
	if t.TotalQuestions > 0 && len(spans) == len(t.Sections) {
		validateCoverage(spans, t.TotalQuestions, collector.add)
	}
	return collector.result()
}

type namedRange struct {
	name string
	rng  Range
}

func sectionField(index int, name string) string {
	if name == "" {
		return fmt.Sprintf("sections[%d]", index)
	}
	return fmt.Sprintf("sections[%q]", name)
}

func validateSectionRange(r Range, total int, field string, add func(field, message string)) bool {
	ok := true
	if r.Start < 1 {
		add(field+".range", fmt.Sprintf("start %d must be >= 1", r.Start))
		ok = false
	}
	if r.End < r.Start {
		add(field+".range", fmt.Sprintf("end %d is before start %d", r.End, r.Start))
		ok = false
	}
	if total > 0 && r.End > total {
		add(field+".range", fmt.Sprintf("end %d exceeds total_questions %d", r.End, total))
		ok = false
	}
	return ok
}

// validateCoverage requires sorted section ranges to tile 1..total with no
// overlap and no gap.
func validateCoverage(spans []namedRange, total int, add func(field, message string)) {
	sorted := append([]namedRange(nil), spans...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].rng.Start < sorted[j].rng.Start })
	next := 1
	for i, span := range sorted {
		switch {
		case span.rng.Start < next && i > 0:
			add(span.name+".range", fmt.Sprintf("overlaps %s", sorted[i-1].name))
		case span.rng.Start > next:
			add("sections", fmt.Sprintf("questions %s are not covered by any section", Range{Start: next, End: span.rng.Start - 1}))
		}
		if span.rng.End+1 > next {
			next = span.rng.End + 1
		}
	}
	if next <= total {
		add("sections", fmt.Sprintf("questions %s are not covered by any section", Range{Start: next, End: total}))
	}
}

func validateTopics(section Section, field string, add func(field, message string)) {
	names := map[string]struct{}{}
	var parsed []namedRange
	for _, topic := range section.Topics {
		topicField := fmt.Sprintf("%s.topics[%q]", field, topic.Spec)
		if topic.Name == "" {
			add(topicField, "name is required")
		} else if _, exists := names[topic.Name]; exists {
			add(topicField, fmt.Sprintf("duplicate topic name %q", topic.Name))
		} else {
			names[topic.Name] = struct{}{}
		}
		r, err := ParseRange(topic.Spec)
		if err != nil {
			add(topicField, err.Error())
			continue
		}
		if !r.Within(section.Range) {
			add(topicField, fmt.Sprintf("range %s lies outside section range %s", r, section.Range))
		}
		parsed = append(parsed, namedRange{name: topicField, rng: r})
	}
	sort.SliceStable(parsed, func(i, j int) bool { return parsed[i].rng.Start < parsed[j].rng.Start })
	for i := 1; i < len(parsed); i++ {
		if parsed[i].rng.Overlaps(parsed[i-1].rng) {
			add(parsed[i].name, fmt.Sprintf("overlaps %s", parsed[i-1].name))
		}
	}
}
