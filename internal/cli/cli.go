package cli

import (
	"fmt"
	"io"
)

const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

type Command struct {
	Name    string
	Summary string
	Usage   []string
	Run     func(args []string, stdout, stderr io.Writer) int
}

func Run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stdout)
		return ExitUsage
	}
	if isHelpArg(args[0]) {
		printUsage(stdout)
		return ExitOK
	}

	cmd := findCommand(args[0])
	if cmd == nil {
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", args[0])
		printUsage(stderr)
		return ExitUsage
	}

	return cmd.Run(args[1:], stdout, stderr)
}

func findCommand(name string) *Command {
	for _, cmd := range commands {
		if cmd.Name == name {
			return cmd
		}
	}
	return nil
}

func isHelpArg(arg string) bool {
	switch arg {
	case "-h", "--help", "help":
		return true
	default:
		return false
	}
}

func wantsHelp(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "-h", "--help":
			return true
		}
	}
	return false
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  scorecard <command> [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-12s %s\n", cmd.Name, cmd.Summary)
	}
	fmt.Fprintln(w, "\nUse \"scorecard <command> --help\" for more information.")
}

func printCommandUsage(cmd *Command, w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	for _, line := range cmd.Usage {
		fmt.Fprintf(w, "  %s\n", line)
	}
	if cmd.Summary != "" {
		fmt.Fprintf(w, "\n%s\n", cmd.Summary)
	}
}

func runNotImplemented(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fmt.Fprintf(stderr, "scorecard %s is not implemented yet\n", cmd.Name)
		return ExitError
	}
}

func command(name, summary string, usage []string, runner func(cmd *Command) func(args []string, stdout, stderr io.Writer) int) *Command {
	cmd := &Command{
		Name:    name,
		Summary: summary,
		Usage:   usage,
	}
	if runner == nil {
		cmd.Run = runNotImplemented(cmd)
	} else {
		cmd.Run = runner(cmd)
	}
	return cmd
}

var commands = []*Command{
	command("init", "Scaffold .scorecard/config.yml and sample inputs", []string{
		"scorecard init [--spec <path>]",
	}, runInit),
	command("validate", "Validate the config, question bank, and taxonomy", []string{
		"scorecard validate [--spec <path>]",
	}, runValidate),
	command("assess", "Score one submission and print the result as JSON", []string{
		"scorecard assess [--spec <path>] <submission.json>",
	}, runAssess),
	command("report", "Score every submission and write HTML reports", []string{
		"scorecard report [--spec <path>] [--output-dir <dir>] [--ui auto|live|plain] [--verbose] [--no-color]",
	}, runReport),
	command("leaderboard", "Print the ranked leaderboard", []string{
		"scorecard leaderboard [--spec <path>] [--json]",
	}, runLeaderboard),
	command("serve", "Serve generated reports and the leaderboard API", []string{
		"scorecard serve [--spec <path>] [--addr 127.0.0.1:5000]",
	}, runServe),
}
