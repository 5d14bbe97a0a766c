package duckdbtesting

import (
	"context"
	"testing"
	"time"

	"scorecard/internal/duckdb"
	"scorecard/internal/testutil"
)

const (
	defaultTimeout = 2 * time.Second
)

// Open opens an in-memory store for the exam and closes it with the test.
func Open(t testing.TB, exam duckdb.Exam) (*duckdb.Store, context.Context) {
	t.Helper()
	ctx := testutil.Context(t, defaultTimeout)
	store, err := duckdb.Open(ctx, ":memory:", exam)
	if err != nil {
		t.Fatalf("open duckdb: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store, ctx
}
