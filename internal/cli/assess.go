package cli

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"scorecard/internal/assessment"
	"scorecard/internal/leaderboard"
	"scorecard/internal/runner"
	"scorecard/internal/submission"
)

// assessOutput is the JSON printed by the assess command.
type assessOutput struct {
	StudentID  string            `json:"student_id"`
	Name       string            `json:"name"`
	Percentage float64           `json:"percentage"`
	Result     assessment.Result `json:"result"`
}

// runAssess builds the handler for the assess command.
func runAssess(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		specPath := flags.String("spec", "", "Path to config file (default: search for .scorecard/config.yml)")
		if code, done := parseFlags(cmd, flags, args, stdout, stderr, 1); done {
			return code
		}
		if flags.NArg() != 1 {
			fmt.Fprintln(stderr, "Missing <submission.json>")
			printCommandUsage(cmd, stderr)
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
		if warning := inputs.KeyWarning(); warning != "" {
			fmt.Fprintf(stderr, "warning: %s\n", warning)
		}

		sub, err := submission.Load(flags.Arg(0))
		if err != nil {
			fmt.Fprintf(stderr, "Assessment failed: %v\n", err)
			return ExitError
		}
		answers, err := sub.StudentAnswers()
		if err != nil {
			fmt.Fprintf(stderr, "Assessment failed: %v\n", err)
			return ExitError
		}
		opts := assessment.Options{ImplicitSkips: loaded.Config.Assessment.ImplicitSkipsEnabled()}
		result := assessment.Evaluate(answers, inputs.Key, inputs.Taxonomy, opts)
		for _, issue := range result.Breakdown.Issues {
			fmt.Fprintf(stderr, "warning: skipped topic %q in section %q (%s): %s\n", issue.Topic, issue.Section, issue.Spec, issue.Message)
		}

		payload, err := json.MarshalIndent(assessOutput{
			StudentID:  sub.StudentID,
			Name:       sub.DisplayName(sub.StudentID),
			Percentage: leaderboard.Percentage(result.Summary.Correct, result.Summary.TotalQuestions),
			Result:     result,
		}, "", "  ")
		if err != nil {
			fmt.Fprintf(stderr, "Failed to encode result: %v\n", err)
			return ExitError
		}
		fmt.Fprintln(stdout, string(payload))
		return ExitOK
	}
}
