package cli

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"scorecard/internal/leaderboard"
	"scorecard/internal/runner"
)

// openStore is a test seam for the leaderboard backend.
var openStore runner.StoreFactory = runner.OpenStore

// runLeaderboard builds the handler for the leaderboard command.
func runLeaderboard(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		specPath := flags.String("spec", "", "Path to config file (default: search for .scorecard/config.yml)")
		asJSON := flags.Bool("json", false, "Print the leaderboard as JSON")
		if code, done := parseFlags(cmd, flags, args, stdout, stderr, 0); done {
			return code
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

		ctx := context.Background()
		store, err := openStore(ctx, loaded.Config, loaded.RepoRoot, inputs.Exam(loaded.Config.Report.TestName))
		if err != nil {
			fmt.Fprintf(stderr, "Failed to open leaderboard: %v\n", err)
			return ExitError
		}
		defer store.Close()

		entries, err := store.Entries(ctx)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to read leaderboard: %v\n", err)
			return ExitError
		}
		ranked := leaderboard.Ranked(entries, loaded.Config.Leaderboard.DisplayCap)

		if *asJSON {
			payload, err := json.MarshalIndent(ranked, "", "  ")
			if err != nil {
				fmt.Fprintf(stderr, "Failed to encode leaderboard: %v\n", err)
				return ExitError
			}
			fmt.Fprintln(stdout, string(payload))
			return ExitOK
		}
		if len(ranked) == 0 {
			fmt.Fprintln(stdout, "Leaderboard is empty.")
			return ExitOK
		}
		fmt.Fprintln(stdout, renderLeaderboard(ranked))
		fmt.Fprintf(stdout, "%d of %d students shown\n", len(ranked), len(entries))
		return ExitOK
	}
}

func renderLeaderboard(ranked []leaderboard.RankedEntry) string {
	rows := make([][]string, 0, len(ranked))
	for _, entry := range ranked {
		rows = append(rows, []string{
			strconv.Itoa(entry.Rank),
			entry.StudentNumber,
			entry.Name,
			fmt.Sprintf("%d/%d", entry.Correct, entry.Total),
			fmt.Sprintf("%.2f%%", entry.Percentage),
		})
	}
	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Rank", "Student", "Name", "Score", "Percent").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		}).
		String()
}
