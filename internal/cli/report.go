package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"scorecard/internal/runner"
	"scorecard/internal/ui/live"
)

// runAndWrite is a test seam for the report pipeline.
var runAndWrite = runner.RunAndWrite

// startLiveUI is a test seam for the live UI controller.
var startLiveUI = func(stdout io.Writer, noColor bool) liveController {
	return live.Start(stdout, live.Options{NoColor: noColor})
}

// liveController is the part of the live UI the report command drives.
type liveController interface {
	runner.RunObserver
	Close()
	Wait()
}

// runReport builds the handler for the report command.
func runReport(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		specPath := flags.String("spec", "", "Path to config file (default: search for .scorecard/config.yml)")
		outputDir := flags.String("output-dir", "", "Override the reports directory")
		uiMode := flags.String("ui", "auto", "Progress display: auto, live, or plain")
		verbose := flags.Bool("verbose", false, "Log pipeline steps to stderr")
		noColor := flags.Bool("no-color", false, "Disable colored output")
		if code, done := parseFlags(cmd, flags, args, stdout, stderr, 0); done {
			return code
		}

		useLive, notice, err := chooseProgress(*uiMode, *verbose, stdout)
		if err != nil {
			fmt.Fprintln(stderr, err)
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		if notice != "" {
			fmt.Fprintln(stderr, notice)
		}

		loaded, err := loadConfig(*specPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
			return ExitError
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		params := runner.RunParams{
			RepoRoot:      loaded.RepoRoot,
			OutputDir:     *outputDir,
			Verbose:       *verbose,
			VerboseWriter: stderr,
			NoColor:       *noColor,
			WarningWriter: stderr,
		}
		var controller liveController
		if useLive {
			controller = startLiveUI(stdout, *noColor)
			params.Observer = controller
			// The live UI owns the terminal; warnings would tear the table.
			params.WarningWriter = nil
		} else if !*verbose {
			params.Observer = &plainObserver{out: stdout}
		}

		results, paths, err := runAndWrite(ctx, loaded.Config, params)
		if controller != nil {
			controller.Close()
			controller.Wait()
		}
		if err != nil {
			fmt.Fprintf(stderr, "Report failed: %v\n", err)
			return ExitError
		}

		summary := results.Summary
		fmt.Fprintf(stdout, "Run %s completed\n", results.RunID)
		fmt.Fprintf(stdout, "Submissions: %d done, %d failed, %d total\n", summary.SubmissionsDone, summary.SubmissionsFailed, summary.SubmissionsTotal)
		fmt.Fprintf(stdout, "Average: %.2f%%\n", summary.AveragePercentage)
		fmt.Fprintf(stdout, "Reports: %s\n", paths.ReportsDir())
		fmt.Fprintf(stdout, "Results: %s\n", paths.ResultsPath())
		if summary.SubmissionsFailed > 0 {
			return ExitError
		}
		return ExitOK
	}
}

// plainObserver prints one line per finished submission.
type plainObserver struct {
	mu  sync.Mutex
	out io.Writer
}

func (o *plainObserver) OnRunStart(runID string, testName string, submissions []string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fmt.Fprintf(o.out, "Scoring %d submissions for %s (run %s)\n", len(submissions), testName, runID)
}

func (o *plainObserver) OnSubmissionEvent(event runner.SubmissionEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	switch event.Type {
	case runner.SubmissionDone:
		rank := "-"
		if event.Standing != nil {
			rank = fmt.Sprintf("%d/%d", event.Standing.Rank, event.Standing.Total)
		}
		fmt.Fprintf(o.out, "  done    %-12s %6.2f%%  rank %s\n", event.StudentID, event.Percentage, rank)
	case runner.SubmissionFailed:
		fmt.Fprintf(o.out, "  failed  %s: %s\n", event.Path, event.Error)
	}
}

func (o *plainObserver) OnRunEnd(runner.Results) {}
