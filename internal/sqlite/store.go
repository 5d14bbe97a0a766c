package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"scorecard/internal/leaderboard"
)

// Store is a leaderboard kept in a SQLite file, scoped by exam key.
type Store struct {
	db      *sql.DB
	examKey string
}

// Open opens the database at path, creates tables, and scopes the store to examKey.
func Open(ctx context.Context, path, examKey string) (*Store, error) {
	if path == "" {
		return nil, errors.New("sqlite: path is empty")
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	store := &Store{db: db, examKey: examKey}
	if err := store.createTables(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *Store) createTables(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS scores (
			exam_key TEXT NOT NULL,
			student_number TEXT NOT NULL,
			name TEXT NOT NULL DEFAULT '',
			correct INTEGER NOT NULL,
			total INTEGER NOT NULL,
			percentage REAL NOT NULL,
			updated_at TEXT NOT NULL,
			PRIMARY KEY (exam_key, student_number)
		)`,
		`CREATE TABLE IF NOT EXISTS section_scores (
			exam_key TEXT NOT NULL,
			student_number TEXT NOT NULL,
			section TEXT NOT NULL,
			position INTEGER NOT NULL,
			attempted INTEGER NOT NULL,
			correct INTEGER NOT NULL,
			incorrect INTEGER NOT NULL,
			skipped INTEGER NOT NULL,
			accuracy REAL NOT NULL,
			PRIMARY KEY (exam_key, student_number, section)
		)`,
	}
	for _, query := range queries {
		if _, err := s.db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("create sqlite tables: %w", err)
		}
	}
	return nil
}

// Upsert inserts the entry or replaces the stored name and scores.
func (s *Store) Upsert(ctx context.Context, entry leaderboard.Entry) error {
	if entry.StudentNumber == "" {
		return leaderboard.ErrEmptyStudentNumber
	}
	updatedAt := entry.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO scores (exam_key, student_number, name, correct, total, percentage, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (exam_key, student_number) DO UPDATE SET
		   name = excluded.name,
		   correct = excluded.correct,
		   total = excluded.total,
		   percentage = excluded.percentage,
		   updated_at = excluded.updated_at`,
		s.examKey, entry.StudentNumber, entry.Name, entry.Correct, entry.Total, entry.Percentage,
		updatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("upsert score: %w", err)
	}
	return nil
}

// Entries returns every score for the exam ordered by student number.
func (s *Store) Entries(ctx context.Context) ([]leaderboard.Entry, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT student_number, name, correct, total, percentage, updated_at
		 FROM scores WHERE exam_key = ? ORDER BY student_number`,
		s.examKey,
	)
	if err != nil {
		return nil, fmt.Errorf("query scores: %w", err)
	}
	defer rows.Close()
	var entries []leaderboard.Entry
	for rows.Next() {
		var entry leaderboard.Entry
		var updatedAt string
		if err := rows.Scan(&entry.StudentNumber, &entry.Name, &entry.Correct, &entry.Total, &entry.Percentage, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		entry.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt)
		if err != nil {
			return nil, fmt.Errorf("parse updated_at for %s: %w", entry.StudentNumber, err)
		}
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
	defer tx.Rollback()
	if _, err := tx.ExecContext(ctx, `DELETE FROM section_scores WHERE exam_key = ? AND student_number = ?`, s.examKey, studentNumber); err != nil {
		return fmt.Errorf("clear section scores: %w", err)
	}
	for i, score := range scores {
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO section_scores (exam_key, student_number, section, position, attempted, correct, incorrect, skipped, accuracy)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			s.examKey, studentNumber, score.Section, i, score.Attempted, score.Correct, score.Incorrect, score.Skipped, score.Accuracy,
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
		 FROM section_scores WHERE exam_key = ? AND student_number = ? ORDER BY position`,
		s.examKey, studentNumber,
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

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
