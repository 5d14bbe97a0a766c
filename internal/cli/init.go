package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"scorecard/internal/config"
)

// runInit builds the handler for the init command.
func runInit(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		specPath := flags.String("spec", "", "Path to config file (default: .scorecard/config.yml under the git root)")
		if code, done := parseFlags(cmd, flags, args, stdout, stderr, 0); done {
			return code
		}

		in := initInput
		if in == nil {
			in = os.Stdin
		}
		answers := newAnswerReader(in, stdout)

		var targetSpecPath string
		var repoRoot string

		specPathValue := strings.TrimSpace(*specPath)
		if specPathValue == "" {
			wd, err := os.Getwd()
			if err != nil {
				fmt.Fprintf(stderr, "Init failed: %v\n", err)
				return ExitError
			}
			repoRoot = discoverGitRoot(wd)
			baseDir := repoRoot
			if baseDir == "" {
				baseDir = wd
			}
			targetSpecPath = config.ConfigPath(baseDir)
		} else {
			absSpec, err := filepath.Abs(specPathValue)
			if err != nil {
				fmt.Fprintf(stderr, "Init failed: %v\n", err)
				return ExitError
			}
			targetSpecPath = absSpec
			repoRoot = discoverGitRoot(config.RepoRootFromConfigPath(targetSpecPath))
		}
		configDir := filepath.Dir(targetSpecPath)

		if info, err := os.Stat(configDir); err == nil && !info.IsDir() {
			fmt.Fprintf(stderr, "Init failed: config directory %q is not a directory\n", configDir)
			return ExitError
		}
		if info, err := os.Stat(targetSpecPath); err == nil {
			if info.IsDir() {
				fmt.Fprintf(stderr, "Init failed: spec path %q is a directory\n", targetSpecPath)
				return ExitError
			}
			fmt.Fprintf(stderr, "Init failed: spec file already exists at %q\n", targetSpecPath)
			return ExitError
		} else if !os.IsNotExist(err) {
			fmt.Fprintf(stderr, "Init failed: stat spec file: %v\n", err)
			return ExitError
		}

		confirm, err := answers.confirm(fmt.Sprintf("Initialize scorecard config in %s?", configDir), true)
		if err != nil {
			fmt.Fprintf(stderr, "Init failed: %v\n", err)
			return ExitError
		}
		if !confirm {
			fmt.Fprintln(stderr, "Init cancelled.")
			return ExitError
		}

		outputDir, err := answers.text("Reports folder", config.DefaultOutputDir)
		if err != nil {
			fmt.Fprintf(stderr, "Init failed: %v\n", err)
			return ExitError
		}

		addGitignore := false
		if repoRoot != "" {
			answer, err := answers.confirm("Add reports folder to .gitignore?", true)
			if err != nil {
				fmt.Fprintf(stderr, "Init failed: %v\n", err)
				return ExitError
			}
			addGitignore = answer
		}

		written, err := config.Scaffold(targetSpecPath, outputDir)
		if err != nil {
			fmt.Fprintf(stderr, "Init failed: %v\n", err)
			return ExitError
		}

		fmt.Fprintf(stdout, "Wrote %s\n", written.Config)
		fmt.Fprintf(stdout, "Wrote %s\n", written.Questions)
		fmt.Fprintf(stdout, "Wrote %s\n", written.Metadata)
		fmt.Fprintf(stdout, "Created %s\n", written.SubmissionsDir)
		if addGitignore {
			updated, err := ignoreReportsDir(repoRoot, outputDir)
			if err != nil {
				fmt.Fprintf(stderr, "Init failed: update .gitignore: %v\n", err)
				return ExitError
			}
			if updated {
				fmt.Fprintf(stdout, "Updated %s\n", filepath.Join(repoRoot, ".gitignore"))
			}
		}
		return ExitOK
	}
}

// initInput allows tests to override stdin for init prompts.
var initInput io.Reader = os.Stdin

// discoverGitRoot walks up from startDir to the first directory holding a
// .git entry. It returns empty when none is found.
func discoverGitRoot(startDir string) string {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return ""
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
