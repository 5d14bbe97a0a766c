package duckdb_test

import (
	"testing"

	"scorecard/internal/assessment"
	"scorecard/internal/duckdb"
	"scorecard/internal/taxonomy"
)

func sampleExam(name string) duckdb.Exam {
	return duckdb.Exam{
		Name: name,
		Spec: duckdb.ExamSpec{
			AnswerKey: assessment.AnswerKey{1: "A", 2: "B", 3: "C"},
			Taxonomy: taxonomy.Taxonomy{
				TotalQuestions: 3,
				Sections: taxonomy.Sections{
					{Name: "Physics", Range: taxonomy.Range{Start: 1, End: 2}, Topics: taxonomy.Topics{{Spec: "1-2", Name: "Motion"}}},
					{Name: "English", Range: taxonomy.Range{Start: 3, End: 3}},
				},
			},
		},
	}
}

func mustExamKey(t *testing.T, spec duckdb.ExamSpec) string {
	t.Helper()
	key, err := duckdb.ExamKey(spec)
	if err != nil {
		t.Fatalf("exam key: %v", err)
	}
	return key
}
