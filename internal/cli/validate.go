package cli

import (
	"flag"
	"fmt"
	"io"

	"scorecard/internal/config"
	"scorecard/internal/runner"
	"scorecard/internal/submission"
)

// runValidate builds the handler for the validate command.
func runValidate(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		specPath := flags.String("spec", "", "Path to config file (default: search for .scorecard/config.yml)")
		if code, done := parseFlags(cmd, flags, args, stdout, stderr, 0); done {
			return code
		}

		loaded, err := loadConfig(*specPath)
		if err != nil {
			fmt.Fprintf(stderr, "Validation failed:\n%s\n", err.Error())
			return ExitError
		}
		inputs, err := runner.LoadInputs(loaded.Config, loaded.RepoRoot)
		if err != nil {
			fmt.Fprintf(stderr, "Validation failed:\n%s\n", err.Error())
			return ExitError
		}
		paths, err := submission.Discover(config.ResolvePath(loaded.RepoRoot, loaded.Config.Inputs.SubmissionsDir), loaded.Config.Inputs.SubmissionsGlob)
		if err != nil {
			fmt.Fprintf(stderr, "Validation failed:\n%s\n", err.Error())
			return ExitError
		}

		if warning := inputs.KeyWarning(); warning != "" {
			fmt.Fprintf(stderr, "warning: %s\n", warning)
		}
		fmt.Fprintln(stdout, "Config OK")
		fmt.Fprintf(stdout, "Questions: %d\n", inputs.Bank.Len())
		fmt.Fprintf(stdout, "Sections: %d\n", len(inputs.Taxonomy.Sections))
		fmt.Fprintf(stdout, "Submissions: %d\n", len(paths))
		return ExitOK
	}
}
