package duckdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/google/uuid"

	"scorecard/internal/leaderboard"
)

// Store is a leaderboard backed by a DuckDB file, scoped to one exam.
type Store struct {
	db      *sql.DB
	examID  string
	examKey string
}

// Exam identifies the paper whose scores the store tracks.
type Exam struct {
	Name string
	Spec ExamSpec
}

// Open opens (or creates) the database at path and registers the exam.
// An empty path opens an in-memory database.
func Open(ctx context.Context, path string, exam Exam) (*Store, error) {
	if ctx == nil {
		return nil, errors.New("duckdb: context is nil")
	}
	dsn := strings.TrimSpace(path)
	if dsn == ":memory:" {
		dsn = ""
	}
	db, err := sql.Open("duckdb", dsn)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping duckdb: %w", err)
	}
	if err := EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	examID, examKey, err := UpsertExam(ctx, db, exam)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db, examID: examID, examKey: examKey}, nil
}

// UpsertExam inserts the exam if its key is new and returns its id and key.
func UpsertExam(ctx context.Context, db *sql.DB, exam Exam) (string, string, error) {
	if db == nil {
		return "", "", errors.New("duckdb: db is nil")
	}
	canonical, err := CanonicalJSON(exam.Spec)
	if err != nil {
		return "", "", err
	}
	key := fingerprintBytes(canonical)
	if _, err := db.ExecContext(
		ctx,
		`INSERT INTO exams (exam_id, exam_key, name, spec, created_at)
		 VALUES (?, ?, ?, ?, now())
		 ON CONFLICT (exam_key) DO NOTHING`,
		uuid.NewString(),
		key,
		nullableString(exam.Name),
		string(canonical),
	); err != nil {
		return "", "", fmt.Errorf("upsert exam: %w", err)
	}
	id, err := lookupID(ctx, db, "exams", "exam_id", "exam_key", key)
	if err != nil {
		return "", "", fmt.Errorf("lookup exam id: %w", err)
	}
	return id, key, nil
}

// ExamKey returns the fingerprint of the exam this store is scoped to.
func (s *Store) ExamKey() string {
	return s.examKey
}

// Upsert inserts the entry or replaces the stored name and scores.
func (s *Store) Upsert(ctx context.Context, entry leaderboard.Entry) error {
	if entry.StudentNumber == "" {
		return leaderboard.ErrEmptyStudentNumber
	}
	updatedAt := entry.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}
	if _, err := s.db.ExecContext(
		ctx,
		`INSERT INTO scores (score_id, exam_id, student_number, name, correct, total, percentage, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (exam_id, student_number) DO UPDATE SET
		   name = EXCLUDED.name,
		   correct = EXCLUDED.correct,
		   total = EXCLUDED.total,
		   percentage = EXCLUDED.percentage,
		   updated_at = EXCLUDED.updated_at`,
		uuid.NewString(),
		s.examID,
		entry.StudentNumber,
		nullableString(entry.Name),
		entry.Correct,
		entry.Total,
		entry.Percentage,
		updatedAt.UTC(),
	); err != nil {
		return fmt.Errorf("upsert score: %w", err)
	}
	return nil
}

// Entries returns every score for the exam ordered by student number.
func (s *Store) Entries(ctx context.Context) ([]leaderboard.Entry, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT student_number, COALESCE(name, ''), correct, total, percentage, updated_at
		 FROM scores WHERE exam_id = ? ORDER BY student_number`,
		s.examID,
	)
	if err != nil {
		return nil, fmt.Errorf("query scores: %w", err)
	}
	defer rows.Close()
	var entries []leaderboard.Entry
	for rows.Next() {
		var entry leaderboard.Entry
		if err := rows.Scan(&entry.StudentNumber, &entry.Name, &entry.Correct, &entry.Total, &entry.Percentage, &entry.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		entry.UpdatedAt = entry.UpdatedAt.UTC()
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scores: %w", err)
	}
	return entries, nil
}

// RecordSections replaces the section scores stored for a student.
func (s *Store) RecordSections(ctx context.Context, studentNumber string, scores []leaderboard.SectionScore) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin section scores: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	if _, err := tx.ExecContext(ctx, `DELETE FROM section_scores WHERE exam_id = ? AND student_number = ?`, s.examID, studentNumber); err != nil {
		return fmt.Errorf("clear section scores: %w", err)
	}
	for i, score := range scores {
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO section_scores (exam_id, student_number, section, position, attempted, correct, incorrect, skipped, accuracy)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			s.examID,
			studentNumber,
			score.Section,
			i,
			score.Attempted,
			score.Correct,
			score.Incorrect,
			score.Skipped,
			score.Accuracy,
		); err != nil {
			return fmt.Errorf("insert section score %q: %w", score.Section, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit section scores: %w", err)
	}
	return nil
}

// Sections returns the stored section scores for a student in taxonomy order.
func (s *Store) Sections(ctx context.Context, studentNumber string) ([]leaderboard.SectionScore, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT section, attempted, correct, incorrect, skipped, accuracy
		 FROM section_scores WHERE exam_id = ? AND student_number = ? ORDER BY position`,
		s.examID,
		studentNumber,
	)
	if err != nil {
		return nil, fmt.Errorf("query section scores: %w", err)
	}
	defer rows.Close()
	var scores []leaderboard.SectionScore
	for rows.Next() {
		var score leaderboard.SectionScore
		if err := rows.Scan(&score.Section, &score.Attempted, &score.Correct, &score.Incorrect, &score.Skipped, &score.Accuracy); err != nil {
			return nil, fmt.Errorf("scan section score: %w", err)
		}
		scores = append(scores, score)
	}
	return scores, rows.Err()
}

// SectionAverages returns the mean accuracy per section across all students.
func (s *Store) SectionAverages(ctx context.Context) (map[string]float64, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT section, round(avg(accuracy), 2) FROM section_scores WHERE exam_id = ? GROUP BY section`,
		s.examID,
	)
	if err != nil {
		return nil, fmt.Errorf("query section averages: %w", err)
	}
	defer rows.Close()
	out := map[string]float64{}
	for rows.Next() {
		var section string
		var avg float64
		if err := rows.Scan(&section, &avg); err != nil {
			return nil, fmt.Errorf("scan section average: %w", err)
		}
		out[section] = avg
	}
	return out, rows.Err()
}

// Close releases the database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
