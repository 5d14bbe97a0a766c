package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// answerReader collects the answers to init's questions one line at a time.
type answerReader struct {
	in  *bufio.Reader
	out io.Writer
}

func newAnswerReader(in io.Reader, out io.Writer) *answerReader {
	return &answerReader{in: bufio.NewReader(in), out: out}
}

// next returns the next trimmed line. eof is set when input ran out.
func (a *answerReader) next() (line string, eof bool, err error) {
	raw, err := a.in.ReadString('\n')
	if errors.Is(err, io.EOF) {
		return strings.TrimSpace(raw), true, nil
	}
	if err != nil {
		return "", false, err
	}
	return strings.TrimSpace(raw), false, nil
}

// text asks for a value. An empty answer takes fallback when there is one.
func (a *answerReader) text(label, fallback string) (string, error) {
	for {
		if fallback != "" {
			fmt.Fprintf(a.out, "%s [%s]: ", label, fallback)
		} else {
			fmt.Fprintf(a.out, "%s: ", label)
		}
		line, eof, err := a.next()
		if err != nil {
			return "", err
		}
		switch {
		case line != "":
			return line, nil
		case fallback != "":
			return fallback, nil
		case eof:
			return "", fmt.Errorf("no answer for %q", label)
		}
	}
}

// confirm asks a yes/no question. An empty answer takes fallback.
func (a *answerReader) confirm(label string, fallback bool) (bool, error) {
	choices := "y/N"
	if fallback {
		choices = "Y/n"
	}
	for {
		fmt.Fprintf(a.out, "%s [%s]: ", label, choices)
		line, eof, err := a.next()
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "":
			return fallback, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		if eof {
			return false, fmt.Errorf("unrecognised answer %q for %q", line, label)
		}
		fmt.Fprintln(a.out, "Answer y or n.")
	}
}
