package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Values of the report command's --ui flag.
const (
	progressAuto  = "auto"
	progressLive  = "live"
	progressPlain = "plain"
)

// isTerminal reports whether w is a TTY. Tests replace it.
var isTerminal = func(w io.Writer) bool {
	fd, ok := w.(interface{ Fd() uintptr })
	return ok && w != (*os.File)(nil) && term.IsTerminal(int(fd.Fd()))
}

// chooseProgress decides between the live table and plain progress lines.
// Verbose logging always gets plain lines. notice explains a live request
// that cannot be honoured.
func chooseProgress(flagValue string, verbose bool, stdout io.Writer) (live bool, notice string, err error) {
	mode := strings.ToLower(strings.TrimSpace(flagValue))
	switch mode {
	case "", progressAuto:
		return !verbose && isTerminal(stdout), "", nil
	case progressLive:
		if verbose {
			return false, "", nil
		}
		if !isTerminal(stdout) {
			return false, "stdout is not a terminal; showing plain progress instead of the live table", nil
		}
		return true, "", nil
	case progressPlain:
		return false, "", nil
	}
	return false, "", fmt.Errorf("invalid ui mode %q (expected %s, %s or %s)", flagValue, progressAuto, progressLive, progressPlain)
}
