package reportserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"scorecard/internal/leaderboard"
	"scorecard/internal/testutil"
)

func newTestStore(t *testing.T) *leaderboard.MemoryStore {
	t.Helper()
	store := leaderboard.NewMemoryStore()
	at := time.Date(2025, 5, 24, 9, 0, 0, 0, time.UTC)
	ctx := context.Background()
	for _, entry := range []leaderboard.Entry{
		leaderboard.NewEntry("1002", "Bilal", 2, 4, at),
		leaderboard.NewEntry("1001", "Ayesha", 4, 4, at),
		leaderboard.NewEntry("1003", "Sara", 1, 4, at),
	} {
		if err := store.Upsert(ctx, entry); err != nil {
			t.Fatalf("upsert: %v", err)
		}
	}
	return store
}

func newTestHandler(t *testing.T, cfg Config) (http.Handler, string) {
	t.Helper()
	if cfg.ReportsDir == "" {
		cfg.ReportsDir = t.TempDir()
	}
	if cfg.Store == nil {
		cfg.Store = newTestStore(t)
	}
	handler, err := NewHandler(cfg)
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}
	return handler, cfg.ReportsDir
}

func get(handler http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	return resp
}

// TestNewHandlerListsReports ensures the index links every HTML report.
func TestNewHandlerListsReports(t *testing.T) {
	handler, dir := newTestHandler(t, Config{Title: "Entry <Test>"})
	testutil.WriteFile(t, filepath.Join(dir, "Entry_Report_B.html"), "<p>b</p>")
	testutil.WriteFile(t, filepath.Join(dir, "Entry_Report_A.html"), "<p>a</p>")
	testutil.WriteFile(t, filepath.Join(dir, "leaderboard.duckdb"), "db")

	resp := get(handler, "/")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	body := resp.Body.String()
	first := strings.Index(body, "/reports/Entry_Report_A.html")
	second := strings.Index(body, "/reports/Entry_Report_B.html")
	if first < 0 || second < 0 || first > second {
		t.Fatalf("expected sorted report links, got %s", body)
	}
	if strings.Contains(body, "leaderboard.duckdb") {
		t.Fatalf("non-report files must not be listed")
	}
	if !strings.Contains(body, "Entry &lt;Test&gt;") {
		t.Fatalf("expected escaped title in index")
	}
}

// TestNewHandlerServesReport ensures a report file is returned verbatim.
func TestNewHandlerServesReport(t *testing.T) {
	handler, dir := newTestHandler(t, Config{})
	testutil.WriteFile(t, filepath.Join(dir, "Entry_Report_A.html"), "<p>report a</p>")

	resp := get(handler, "/reports/Entry_Report_A.html")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if got := resp.Body.String(); got != "<p>report a</p>" {
		t.Fatalf("unexpected report payload: %s", got)
	}
	if ct := resp.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("unexpected content type %q", ct)
	}
}

// TestNewHandlerRejectsUnknownReports covers missing and non-HTML names.
func TestNewHandlerRejectsUnknownReports(t *testing.T) {
	handler, dir := newTestHandler(t, Config{})
	testutil.WriteFile(t, filepath.Join(dir, "notes.txt"), "secret")
	for _, path := range []string{"/reports/missing.html", "/reports/notes.txt"} {
		if resp := get(handler, path); resp.Code != http.StatusNotFound {
			t.Fatalf("%s: expected 404, got %d", path, resp.Code)
		}
	}
}

// TestNewHandlerRejectsWrongMethod verifies routes are GET only.
func TestNewHandlerRejectsWrongMethod(t *testing.T) {
	handler, _ := newTestHandler(t, Config{})
	req := httptest.NewRequest(http.MethodPost, "/api/leaderboard", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", resp.Code)
	}
}

// TestNewHandlerServesLeaderboard verifies ranking and the display cap.
func TestNewHandlerServesLeaderboard(t *testing.T) {
	handler, _ := newTestHandler(t, Config{DisplayCap: 2})
	resp := get(handler, "/api/leaderboard")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var payload leaderboardResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload.Total != 3 || len(payload.Entries) != 2 {
		t.Fatalf("unexpected payload %+v", payload)
	}
	if payload.Entries[0].StudentNumber != "1001" || payload.Entries[0].Rank != 1 || payload.Entries[1].StudentNumber != "1002" {
		t.Fatalf("unexpected ranking %+v", payload.Entries)
	}
}

// TestNewHandlerLogsRequests verifies combined access logging.
func TestNewHandlerLogsRequests(t *testing.T) {
	var logs bytes.Buffer
	handler, _ := newTestHandler(t, Config{LogWriter: &logs})
	get(handler, "/api/leaderboard")
	if !strings.Contains(logs.String(), "GET /api/leaderboard") {
		t.Fatalf("expected access log line, got %q", logs.String())
	}
}

// TestNewHandlerRequiresConfig verifies required settings.
func TestNewHandlerRequiresConfig(t *testing.T) {
	if _, err := NewHandler(Config{Store: leaderboard.NewMemoryStore()}); err == nil {
		t.Fatalf("expected error without reports dir")
	}
	if _, err := NewHandler(Config{ReportsDir: t.TempDir()}); err == nil {
		t.Fatalf("expected error without store")
	}
}

// TestServeShutsDownOnCancel starts a real listener and stops it.
func TestServeShutsDownOnCancel(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("reserve port: %v", err)
	}
	addr := listener.Addr().String()
	listener.Close()

	dir := t.TempDir()
	testutil.WriteFile(t, filepath.Join(dir, "Entry_Report_A.html"), "<p>a</p>")
	ctx, cancel := context.WithCancel(testutil.Context(t, 10*time.Second))
	store := newTestStore(t)
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, Config{Addr: addr, ReportsDir: dir, Store: store})
	}()

	testutil.Eventually(t, 5*time.Second, func() error {
		resp, err := http.Get(fmt.Sprintf("http://%s/reports/Entry_Report_A.html", addr))
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("status %d", resp.StatusCode)
		}
		return nil
	})

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("serve did not stop after cancel")
	}
}

func TestServeRequiresAddr(t *testing.T) {
	if err := Serve(context.Background(), Config{}); err == nil {
		t.Fatalf("expected error without addr")
	}
}
