package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"scorecard/internal/config"
	"scorecard/internal/reportserver"
	"scorecard/internal/runner"
)

// serveReport is a test seam for running the report server.
var serveReport = reportserver.Serve

// runServe builds the handler for the serve command.
func runServe(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		specPath := fs.String("spec", "", "Path to config file (default: search for .scorecard/config.yml)")
		addr := fs.String("addr", reportserver.DefaultAddr, "Address to listen on")
		origins := fs.String("cors-origins", "", "Comma-separated origins allowed to call the API")
		if code, done := parseFlags(cmd, fs, args, stdout, stderr, 0); done {
			return code
		}
		if strings.TrimSpace(*addr) == "" {
			fmt.Fprintln(stderr, "Missing --addr")
			return ExitUsage
		}

		loaded, err := loadConfig(*specPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
			return ExitError
		}
		inputs, err := runner.LoadInputs(loaded.Config, loaded.RepoRoot)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load inputs: %v\n", err)
			return ExitError
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		store, err := openStore(ctx, loaded.Config, loaded.RepoRoot, inputs.Exam(loaded.Config.Report.TestName))
		if err != nil {
			fmt.Fprintf(stderr, "Failed to open leaderboard: %v\n", err)
			return ExitError
		}
		defer store.Close()

		cfg := reportserver.Config{
			Addr:           *addr,
			Title:          loaded.Config.Report.Title,
			ReportsDir:     config.ResolvePath(loaded.RepoRoot, loaded.Config.Report.OutputDir),
			Store:          store,
			DisplayCap:     loaded.Config.Leaderboard.DisplayCap,
			AllowedOrigins: splitList(*origins),
			LogWriter:      stderr,
		}
		fmt.Fprintf(stdout, "Serving reports at http://%s\n", cfg.Addr)
		if err := serveReport(ctx, cfg); err != nil {
			fmt.Fprintf(stderr, "Server error: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
