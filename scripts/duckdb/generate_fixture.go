// Command generate_fixture writes a DuckDB leaderboard populated with
// synthetic students, for exercising the report server and leaderboard
// views against large classes.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"scorecard/internal/assessment"
	"scorecard/internal/duckdb"
	"scorecard/internal/leaderboard"
	"scorecard/internal/taxonomy"
)

// fixtureConfig defines the JSON config for generating a leaderboard fixture.
type fixtureConfig struct {
	Name      string `json:"name"`
	Students  int    `json:"students"`
	Questions int    `json:"questions"`
	Sections  int    `json:"sections"`
	Seed      uint64 `json:"seed"`
}

func main() {
	configPath := flag.String("config", "", "path to fixture config JSON")
	outPath := flag.String("out", "", "output duckdb file path")
	flag.Parse()
	if *configPath == "" || *outPath == "" {
		fmt.Fprintln(os.Stderr, "usage: generate_fixture --config <path> --out <duckdb file>")
		os.Exit(2)
	}
	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "mkdir output dir: %v\n", err)
		os.Exit(1)
	}
	if err := os.Remove(*outPath); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "remove old fixture: %v\n", err)
		os.Exit(1)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	if err := generateFixture(ctx, *outPath, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "generate fixture: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (fixtureConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fixtureConfig{}, err
	}
	var cfg fixtureConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return fixtureConfig{}, err
	}
	if cfg.Students <= 0 || cfg.Questions <= 0 {
		return fixtureConfig{}, fmt.Errorf("students and questions must be positive")
	}
	if cfg.Sections <= 0 || cfg.Sections > cfg.Questions {
		cfg.Sections = 1
	}
	return cfg, nil
}

// generateFixture answers the exam at random for every student and records
// the scores through the regular store.
func generateFixture(ctx context.Context, path string, cfg fixtureConfig) error {
	key, tax := syntheticExam(cfg)
	store, err := duckdb.Open(ctx, path, duckdb.Exam{
		Name: "fixture-" + cfg.Name,
		Spec: duckdb.ExamSpec{AnswerKey: key, Taxonomy: tax},
	})
	if err != nil {
		return err
	}
	defer store.Close()

	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	options := []string{"A", "B", "C", "D", assessment.SkippedOption}
	at := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < cfg.Students; i++ {
		answers := make([]assessment.StudentAnswer, 0, cfg.Questions)
		for id := 1; id <= cfg.Questions; id++ {
			answers = append(answers, assessment.StudentAnswer{QuestionID: id, SelectedOption: options[rng.IntN(len(options))]})
		}
		result := assessment.Evaluate(answers, key, tax, assessment.Options{ImplicitSkips: true})
		number := strconv.Itoa(100000 + i)
		entry := leaderboard.NewEntry(number, "Student "+number, result.Summary.Correct, result.Summary.TotalQuestions, at.Add(time.Duration(i)*time.Second))
		if err := store.Upsert(ctx, entry); err != nil {
			return err
		}
		if err := store.RecordSections(ctx, number, leaderboard.SectionScores(result.Breakdown)); err != nil {
			return err
		}
	}
	return nil
}

// syntheticExam splits the question ids evenly across sections and cycles
// the answer key through A to D.
func syntheticExam(cfg fixtureConfig) (assessment.AnswerKey, taxonomy.Taxonomy) {
	key := make(assessment.AnswerKey, cfg.Questions)
	for id := 1; id <= cfg.Questions; id++ {
		key[id] = string(rune('A' + (id-1)%4))
	}
	tax := taxonomy.Taxonomy{TotalQuestions: cfg.Questions}
	per := cfg.Questions / cfg.Sections
	start := 1
	for s := 0; s < cfg.Sections; s++ {
		end := start + per - 1
		if s == cfg.Sections-1 {
			end = cfg.Questions
		}
		spec := fmt.Sprintf("%d-%d", start, end)
		tax.Sections = append(tax.Sections, taxonomy.Section{
			Name:   fmt.Sprintf("Section %d", s+1),
			Range:  taxonomy.Range{Start: start, End: end},
			Topics: taxonomy.Topics{{Spec: spec, Name: "All"}},
		})
		start = end + 1
	}
	return key, tax
}
