package reportserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"scorecard/internal/leaderboard"
)

// Config captures the settings for serving generated reports.
type Config struct {
	Addr       string
	Title      string
	ReportsDir string
	Store      leaderboard.Store
	DisplayCap int
	// AllowedOrigins enables CORS on every route when non-empty.
	AllowedOrigins []string
	// LogWriter receives Apache combined-format access logs when set.
	LogWriter io.Writer
}

type server struct {
	cfg Config
}

// leaderboardResponse is the /api/leaderboard payload.
type leaderboardResponse struct {
	Total   int                       `json:"total"`
	Entries []leaderboard.RankedEntry `json:"entries"`
}

// NewHandler builds the HTTP handler for the report index, individual
// reports, and the leaderboard API.
func NewHandler(cfg Config) (http.Handler, error) {
	if strings.TrimSpace(cfg.ReportsDir) == "" {
		return nil, errors.New("reportserver: reports dir is required")
	}
	if cfg.Store == nil {
		return nil, errors.New("reportserver: leaderboard store is required")
	}
	if cfg.Title == "" {
		cfg.Title = "Reports"
	}
	s := &server{cfg: cfg}

	r := mux.NewRouter()
	r.HandleFunc("/", s.serveIndex).Methods(http.MethodGet)
	r.HandleFunc("/reports/{name}", s.serveReport).Methods(http.MethodGet)
	r.HandleFunc("/api/leaderboard", s.serveLeaderboard).Methods(http.MethodGet)

	var handler http.Handler = r
	if len(cfg.AllowedOrigins) > 0 {
		handler = handlers.CORS(
			handlers.AllowedOrigins(cfg.AllowedOrigins),
			handlers.AllowedMethods([]string{http.MethodGet, http.MethodOptions}),
		)(handler)
	}
	handler = handlers.RecoveryHandler()(handler)
	if cfg.LogWriter != nil {
		handler = handlers.CombinedLoggingHandler(cfg.LogWriter, handler)
	}
	return handler, nil
}

// serveIndex lists the HTML reports in the reports directory.
func (s *server) serveIndex(w http.ResponseWriter, r *http.Request) {
	names, err := listReports(s.cfg.ReportsDir)
	if err != nil {
		http.Error(w, "list reports: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = indexPage(s.cfg.Title, names).Render(r.Context(), w)
}

// serveReport serves one generated report by file name.
func (s *server) serveReport(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	if name != filepath.Base(name) || !strings.EqualFold(filepath.Ext(name), ".html") {
		http.NotFound(w, r)
		return
	}
	path := filepath.Join(s.cfg.ReportsDir, name)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	http.ServeFile(w, r, path)
}

// serveLeaderboard writes the ranked leaderboard as JSON.
func (s *server) serveLeaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := s.cfg.Store.Entries(r.Context())
	if err != nil {
		http.Error(w, "read leaderboard: "+err.Error(), http.StatusInternalServerError)
		return
	}
	payload := leaderboardResponse{
		Total:   len(entries),
		Entries: leaderboard.Ranked(entries, s.cfg.DisplayCap),
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}

func listReports(dir string) ([]string, error) {
	items, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var names []string
	for _, item := range items {
		if item.IsDir() || !strings.EqualFold(filepath.Ext(item.Name()), ".html") {
			continue
		}
		names = append(names, item.Name())
	}
	sort.Strings(names)
	return names, nil
}
