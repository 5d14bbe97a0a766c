package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"
)

// parseFlags parses args and reports the exit code to return when parsing
// did not succeed. done is true when the caller should return code.
func parseFlags(cmd *Command, flags *flag.FlagSet, args []string, stdout, stderr io.Writer, maxArgs int) (code int, done bool) {
	if err := flags.Parse(args); err != nil {
		if err == flag.ErrHelp {
			printCommandUsage(cmd, stdout)
			return ExitOK, true
		}
		fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
		printCommandUsage(cmd, stderr)
		return ExitUsage, true
	}
	if flags.NArg() > maxArgs {
		fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(flags.Args()[maxArgs:], " "))
		printCommandUsage(cmd, stderr)
		return ExitUsage, true
	}
	return ExitOK, false
}
