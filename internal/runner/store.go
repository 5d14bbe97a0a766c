package runner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"scorecard/internal/config"
	"scorecard/internal/duckdb"
	"scorecard/internal/leaderboard"
	"scorecard/internal/spec"
	"scorecard/internal/sqlite"
)

// StoreFactory opens the leaderboard store for an exam.
type StoreFactory func(ctx context.Context, cfg spec.Config, repoRoot string, exam duckdb.Exam) (leaderboard.Store, error)

// OpenStore opens the configured leaderboard backend.
func OpenStore(ctx context.Context, cfg spec.Config, repoRoot string, exam duckdb.Exam) (leaderboard.Store, error) {
	backend := cfg.Leaderboard.Backend
	if backend == config.BackendMemory {
		return leaderboard.NewMemoryStore(), nil
	}
	path := config.ResolvePath(repoRoot, cfg.Leaderboard.Path)
	if path == "" {
		return nil, fmt.Errorf("leaderboard path is required for backend %q", backend)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create leaderboard dir: %w", err)
	}
	switch backend {
	case config.BackendDuckDB:
		return duckdb.Open(ctx, path, exam)
	case config.BackendSQLite:
		key, err := duckdb.ExamKey(exam.Spec)
		if err != nil {
			return nil, fmt.Errorf("exam key: %w", err)
		}
		return sqlite.Open(ctx, path, key)
	default:
		return nil, fmt.Errorf("unsupported leaderboard backend %q", backend)
	}
}
